package hostval

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestScValTypeString(t *testing.T) {
	tests := []struct {
		typ  ScValType
		want string
	}{
		{ScvVoidType, "Void"},
		{ScvTimepointType, "Timepoint"},
		{ScvI256Type, "I256"},
		{ScvAddressType, "Address"},
		{ScValType(-1), "ScValType(-1)"},
		{ScValType(NumScValTypes), "ScValType(19)"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestScValTypeIsBigInt(t *testing.T) {
	for typ := ScValType(0); int(typ) < NumScValTypes; typ++ {
		want := typ >= ScvU128Type && typ <= ScvI256Type
		if got := typ.IsBigInt(); got != want {
			t.Errorf("%s: expected %t, got %t", typ, want, got)
		}
	}
}

func TestCompareScVal(t *testing.T) {
	tests := []struct {
		name string
		a, b ScVal
		want int
	}{
		{"rank before content", ScvBool(true), ScvU32(0), -1},
		{"u64 numeric", ScvU64(10), ScvU64(9), 1},
		{"i64 signed", ScvI64(-10), ScvI64(9), -1},
		{"i128 signed high limb", ScvI128{Hi: -1}, ScvI128{Hi: 0}, -1},
		{"i128 low limb unsigned", ScvI128{Hi: 0, Lo: 1 << 63}, ScvI128{Hi: 0, Lo: 1}, 1},
		{"u256 limbs in order", ScvU256{HiLo: 1}, ScvU256{LoHi: 9, LoLo: 9}, 1},
		{"i256 negative", ScvI256{HiHi: -1, LoLo: 5}, ScvI256{LoLo: 1}, -1},
		{"absent vec first", ScvVec{}, NewScVec(), -1},
		{"absent map first", ScvMap{}, NewScMap(), -1},
		{"absent equal", ScvMap{}, ScvMap{}, 0},
		{"vec prefix", NewScVec(ScvU32(0)), NewScVec(ScvU32(0), ScvU32(1)), -1},
		{"vec element", NewScVec(ScvU32(2)), NewScVec(ScvU32(0), ScvU32(1)), 1},
		{"map key", NewScMap(ScMapEntry{Key: ScvU32(1), Val: ScvU32(5)}), NewScMap(ScMapEntry{Key: ScvU32(2), Val: ScvU32(0)}), -1},
		{"map val", NewScMap(ScMapEntry{Key: ScvU32(1), Val: ScvU32(5)}), NewScMap(ScMapEntry{Key: ScvU32(1), Val: ScvU32(0)}), 1},
		{"bytes", ScvBytes{1, 2}, ScvBytes{1, 3}, -1},
		{"symbol", ScvSymbol("b"), ScvSymbol("ab"), 1},
		{"status", ScvError{Status: Status{Type: StatusVmError, Code: 1}}, ScvError{Status: Status{Type: StatusVmError, Code: 0}}, 1},
		{"address", ScvAddress{ContractID: common.Hash{2}}, ScvAddress{ContractID: common.Hash{1}}, 1},
		{"nil first", nil, ScvVoid{}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareScVal(tt.a, tt.b); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
			if got := CompareScVal(tt.b, tt.a); got != -tt.want {
				t.Errorf("Expected reverse %d, got %d", -tt.want, got)
			}
			if eq := EqualScVal(tt.a, tt.b); eq != (tt.want == 0) {
				t.Errorf("Expected equality %t, got %t", tt.want == 0, eq)
			}
		})
	}
}

func TestEqualScVal(t *testing.T) {
	tests := []struct {
		name string
		a, b ScVal
		want bool
	}{
		{"nil bytes equal empty", ScvBytes(nil), ScvBytes{}, true},
		{"absent vec differs from empty", ScvVec{}, NewScVec(), false},
		{"nested maps", NewScMap(ScMapEntry{Key: ScvU32(1), Val: NewScVec(ScvVoid{})}), NewScMap(ScMapEntry{Key: ScvU32(1), Val: NewScVec(ScvVoid{})}), true},
		{"map order matters", NewScMap(ScMapEntry{Key: ScvU32(1)}, ScMapEntry{Key: ScvU32(2)}), NewScMap(ScMapEntry{Key: ScvU32(2)}, ScMapEntry{Key: ScvU32(1)}), false},
		{"different variants", ScvU64(1), ScvTimepoint(1), false},
		{"both nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EqualScVal(tt.a, tt.b); got != tt.want {
				t.Errorf("Expected %t, got %t", tt.want, got)
			}
		})
	}
}

func TestPartialCompareScVal(t *testing.T) {
	t.Run("comparable", func(t *testing.T) {
		c, ok := PartialCompareScVal(NewScVec(ScvU32(1)), NewScVec(ScvU32(2)))
		if !ok {
			t.Fatal("Expected a result")
		}
		if c != -1 {
			t.Errorf("Expected -1, got %d", c)
		}
	})

	t.Run("nil inside container", func(t *testing.T) {
		if _, ok := PartialCompareScVal(NewScVec(nil), NewScVec()); ok {
			t.Error("Expected no result for a nil element")
		}
		if _, ok := PartialCompareScVal(ScvVoid{}, NewScMap(ScMapEntry{Key: ScvVoid{}})); ok {
			t.Error("Expected no result for a nil map value")
		}
	})
}
