package hostval

import (
	"errors"
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

func TestScValRLPRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sv   ScVal
	}{
		{"void", ScvVoid{}},
		{"false", ScvBool(false)},
		{"true", ScvBool(true)},
		{"status", ScvError{Status: Status{Type: StatusHostStorageError, Code: 5}}},
		{"unserializable status", ScvError{Status: Status{Type: StatusType(math.MaxUint32), Code: math.MaxUint32}}},
		{"u32", ScvU32(math.MaxUint32)},
		{"i32", ScvI32(math.MinInt32)},
		{"u64 zero", ScvU64(0)},
		{"i64", ScvI64(-1)},
		{"timepoint", ScvTimepoint(1700000000)},
		{"duration", ScvDuration(60)},
		{"u128", ScvU128{Hi: 1, Lo: 0}},
		{"i128", ScvI128{Hi: math.MinInt64, Lo: math.MaxUint64}},
		{"u256", ScvU256{HiHi: 1, HiLo: 2, LoHi: 3, LoLo: 4}},
		{"i256", ScvI256{HiHi: -1, LoLo: 1}},
		{"bytes", ScvBytes{0, 0x7f, 0x80, 0xff}},
		{"string", ScvString("hello, world")},
		{"symbol", ScvSymbol("SYM_9")},
		{"invalid symbol survives", ScvSymbol("not a symbol")},
		{"address", ScvAddress{ContractID: common.HexToHash("0xabcdef")}},
		{"absent vec", ScvVec{}},
		{"empty vec", NewScVec()},
		{"absent map", ScvMap{}},
		{"empty map", NewScMap()},
		{"nested", NewScVec(
			NewScMap(
				ScMapEntry{Key: ScvSymbol("a"), Val: NewScVec(ScvVec{}, ScvU32(1))},
				ScMapEntry{Key: ScvSymbol("a"), Val: ScvMap{}},
			),
			ScvVoid{},
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalScVal(tt.sv)
			if err != nil {
				t.Fatalf("Unexpected marshal error: %v", err)
			}
			got, err := UnmarshalScVal(data)
			if err != nil {
				t.Fatalf("Unexpected unmarshal error: %v", err)
			}
			if !EqualScVal(got, tt.sv) {
				t.Errorf("Expected %#v, got %#v", tt.sv, got)
			}
		})
	}
}

func TestScValRLPLayout(t *testing.T) {
	data, err := MarshalScVal(ScvU32(5))
	if err != nil {
		t.Fatal(err)
	}
	// [3, 5]
	want := []byte{0xc2, 0x03, 0x05}
	if string(data) != string(want) {
		t.Errorf("Expected %x, got %x", want, data)
	}

	absent, _ := MarshalScVal(ScvVec{})
	empty, _ := MarshalScVal(NewScVec())
	if string(absent) == string(empty) {
		t.Error("Expected absent and empty vec to encode differently")
	}
}

func TestMarshalScValNil(t *testing.T) {
	if _, err := MarshalScVal(NewScVec(nil)); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Expected ErrInvalidEncoding, got %v", err)
	}
}

func TestUnmarshalScValInvalid(t *testing.T) {
	encode := func(v interface{}) []byte {
		data, err := rlp.EncodeToBytes(v)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	deep := []interface{}{uint64(ScvVoidType)}
	for i := 0; i <= MaxDepth+1; i++ {
		deep = []interface{}{uint64(ScvVecType), []interface{}{deep}}
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"not a list", encode(uint64(3))},
		{"empty list", encode([]interface{}{})},
		{"unknown type", encode([]interface{}{uint64(NumScValTypes)})},
		{"type is a list", encode([]interface{}{[]interface{}{}})},
		{"leading zero", encode([]interface{}{uint64(ScvU64Type), []byte{0, 1}})},
		{"integer too wide", encode([]interface{}{uint64(ScvU64Type), make([]byte, 9)})},
		{"u32 overflow", encode([]interface{}{uint64(ScvU32Type), uint64(1 << 32)})},
		{"bool overflow", encode([]interface{}{uint64(ScvBoolType), uint64(2)})},
		{"status code overflow", encode([]interface{}{uint64(ScvErrorType), uint64(0), uint64(1 << 32)})},
		{"missing payload", encode([]interface{}{uint64(ScvU64Type)})},
		{"extra payload", encode([]interface{}{uint64(ScvVoidType), uint64(0)})},
		{"u256 short", encode([]interface{}{uint64(ScvU256Type), uint64(1), uint64(2)})},
		{"bytes as list", encode([]interface{}{uint64(ScvBytesType), []interface{}{}})},
		{"short address", encode([]interface{}{uint64(ScvAddressType), make([]byte, 20)})},
		{"vec payload not list", encode([]interface{}{uint64(ScvVecType), []byte{1}})},
		{"vec extra items", encode([]interface{}{uint64(ScvVecType), []interface{}{}, []interface{}{}})},
		{"map entry not pair", encode([]interface{}{uint64(ScvMapType), []interface{}{[]interface{}{[]interface{}{uint64(0)}}}})},
		{"nested too deep", encode(deep)},
		{"trailing bytes", append(encode([]interface{}{uint64(ScvVoidType)}), 0x80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalScVal(tt.data)
			if !errors.Is(err, ErrInvalidEncoding) {
				t.Errorf("Expected ErrInvalidEncoding, got %v", err)
			}
		})
	}
}
