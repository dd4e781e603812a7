package hostval

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Wire format: every external value is an RLP list whose first item is
// the ScValType and whose remaining items are the payload.
//
//	Void                   [t]
//	Bool U32 U64 ...       [t, n]        signed kinds as two's complement
//	Error                  [t, type, code]
//	U128 I128              [t, hi, lo]
//	U256 I256              [t, hihi, hilo, lohi, lolo]
//	Bytes String Symbol    [t, bytes]
//	Address                [t, 32 bytes]
//	Vec                    [t] absent, [t, [elem...]] present
//	Map                    [t] absent, [t, [[key, val]...]] present

// payloadItems lists the fixed payload item counts other than 1.
var payloadItems = map[ScValType]int{
	ScvVoidType:  0,
	ScvErrorType: 2,
	ScvU128Type:  2,
	ScvI128Type:  2,
	ScvU256Type:  4,
	ScvI256Type:  4,
}

// MarshalScVal encodes an external value in the RLP wire format.
func MarshalScVal(sv ScVal) ([]byte, error) {
	tree, err := scValTree(sv)
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(tree)
}

func scValTree(sv ScVal) ([]interface{}, error) {
	if sv == nil {
		return nil, fmt.Errorf("%w: nil value", ErrInvalidEncoding)
	}
	t := uint64(sv.Type())

	switch x := sv.(type) {
	case ScvVoid:
		return []interface{}{t}, nil
	case ScvBool:
		if x {
			return []interface{}{t, uint64(1)}, nil
		}
		return []interface{}{t, uint64(0)}, nil
	case ScvError:
		return []interface{}{t, uint64(x.Status.Type), uint64(x.Status.Code)}, nil
	case ScvU32:
		return []interface{}{t, uint64(x)}, nil
	case ScvI32:
		return []interface{}{t, uint64(uint32(x))}, nil
	case ScvU64:
		return []interface{}{t, uint64(x)}, nil
	case ScvI64:
		return []interface{}{t, uint64(x)}, nil
	case ScvTimepoint:
		return []interface{}{t, uint64(x)}, nil
	case ScvDuration:
		return []interface{}{t, uint64(x)}, nil
	case ScvU128:
		return []interface{}{t, x.Hi, x.Lo}, nil
	case ScvI128:
		return []interface{}{t, uint64(x.Hi), x.Lo}, nil
	case ScvU256:
		return []interface{}{t, x.HiHi, x.HiLo, x.LoHi, x.LoLo}, nil
	case ScvI256:
		return []interface{}{t, uint64(x.HiHi), x.HiLo, x.LoHi, x.LoLo}, nil
	case ScvBytes:
		return []interface{}{t, []byte(x)}, nil
	case ScvString:
		return []interface{}{t, []byte(x)}, nil
	case ScvSymbol:
		return []interface{}{t, []byte(x)}, nil
	case ScvAddress:
		return []interface{}{t, x.ContractID.Bytes()}, nil

	case ScvVec:
		if x.Vec == nil {
			return []interface{}{t}, nil
		}
		elems := make([]interface{}, len(*x.Vec))
		for i, elem := range *x.Vec {
			tree, err := scValTree(elem)
			if err != nil {
				return nil, err
			}
			elems[i] = tree
		}
		return []interface{}{t, elems}, nil

	case ScvMap:
		if x.Map == nil {
			return []interface{}{t}, nil
		}
		entries := make([]interface{}, len(*x.Map))
		for i, entry := range *x.Map {
			key, err := scValTree(entry.Key)
			if err != nil {
				return nil, err
			}
			val, err := scValTree(entry.Val)
			if err != nil {
				return nil, err
			}
			entries[i] = []interface{}{key, val}
		}
		return []interface{}{t, entries}, nil
	}
	return nil, fmt.Errorf("%w: unknown type %s", ErrInvalidEncoding, sv.Type())
}

// UnmarshalScVal decodes an external value from the RLP wire format.
// Integers must be canonical and nesting at most MaxDepth deep. The
// decoded value is not checked for a tagged counterpart; FromScVal does
// that.
func UnmarshalScVal(data []byte) (ScVal, error) {
	var raw interface{}
	if err := rlp.DecodeBytes(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return parseScVal(raw, 0)
}

// encodingError reports malformed input.
func encodingError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidEncoding, fmt.Sprintf(format, args...))
}

func parseScVal(raw interface{}, depth int) (ScVal, error) {
	if depth > MaxDepth {
		return nil, encodingError("nested deeper than %d", MaxDepth)
	}
	items, ok := raw.([]interface{})
	if !ok || len(items) == 0 {
		return nil, encodingError("value is not a non-empty list")
	}
	t, err := parseUint(items[0], 32)
	if err != nil {
		return nil, err
	}
	typ := ScValType(t)
	if int(typ) >= NumScValTypes {
		return nil, encodingError("unknown type %d", t)
	}
	args := items[1:]

	// Containers are the only kinds with a variable item count.
	switch typ {
	case ScvVecType:
		return parseVec(args, depth)
	case ScvMapType:
		return parseMap(args, depth)
	}

	n, ok := payloadItems[typ]
	if !ok {
		n = 1
	}
	if len(args) != n {
		return nil, encodingError("%s has %d items, expected %d", typ, len(args), n)
	}

	switch typ {
	case ScvVoidType:
		return ScvVoid{}, nil
	case ScvBytesType, ScvStringType, ScvSymbolType, ScvAddressType:
		b, ok := args[0].([]byte)
		if !ok {
			return nil, encodingError("%s payload is not a string", typ)
		}
		switch typ {
		case ScvBytesType:
			return ScvBytes(b), nil
		case ScvStringType:
			return ScvString(b), nil
		case ScvSymbolType:
			return ScvSymbol(b), nil
		}
		if len(b) != common.HashLength {
			return nil, encodingError("address has %d bytes, expected %d", len(b), common.HashLength)
		}
		return ScvAddress{ContractID: common.BytesToHash(b)}, nil
	}

	bits := uint(64)
	switch typ {
	case ScvBoolType:
		bits = 1
	case ScvU32Type, ScvI32Type:
		bits = 32
	}
	nums := make([]uint64, len(args))
	for i, arg := range args {
		if nums[i], err = parseUint(arg, bits); err != nil {
			return nil, err
		}
	}
	if typ == ScvErrorType {
		if nums[1] > 1<<32-1 {
			return nil, encodingError("status code %d overflows 32 bits", nums[1])
		}
		if nums[0] > 1<<32-1 {
			return nil, encodingError("status type %d overflows 32 bits", nums[0])
		}
	}

	switch typ {
	case ScvBoolType:
		return ScvBool(nums[0] == 1), nil
	case ScvErrorType:
		return ScvError{Status: Status{Type: StatusType(nums[0]), Code: uint32(nums[1])}}, nil
	case ScvU32Type:
		return ScvU32(nums[0]), nil
	case ScvI32Type:
		return ScvI32(int32(uint32(nums[0]))), nil
	case ScvU64Type:
		return ScvU64(nums[0]), nil
	case ScvI64Type:
		return ScvI64(int64(nums[0])), nil
	case ScvTimepointType:
		return ScvTimepoint(nums[0]), nil
	case ScvDurationType:
		return ScvDuration(nums[0]), nil
	case ScvU128Type:
		return ScvU128{Hi: nums[0], Lo: nums[1]}, nil
	case ScvI128Type:
		return ScvI128{Hi: int64(nums[0]), Lo: nums[1]}, nil
	case ScvU256Type:
		return ScvU256{HiHi: nums[0], HiLo: nums[1], LoHi: nums[2], LoLo: nums[3]}, nil
	}
	return ScvI256{HiHi: int64(nums[0]), HiLo: nums[1], LoHi: nums[2], LoLo: nums[3]}, nil
}

func parseVec(args []interface{}, depth int) (ScVal, error) {
	switch len(args) {
	case 0:
		return ScvVec{}, nil
	case 1:
	default:
		return nil, encodingError("Vec has %d items, expected at most 1", len(args))
	}
	items, ok := args[0].([]interface{})
	if !ok {
		return nil, encodingError("Vec payload is not a list")
	}
	elems := make(ScVec, len(items))
	for i, item := range items {
		elem, err := parseScVal(item, depth+1)
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return ScvVec{Vec: &elems}, nil
}

func parseMap(args []interface{}, depth int) (ScVal, error) {
	switch len(args) {
	case 0:
		return ScvMap{}, nil
	case 1:
	default:
		return nil, encodingError("Map has %d items, expected at most 1", len(args))
	}
	items, ok := args[0].([]interface{})
	if !ok {
		return nil, encodingError("Map payload is not a list")
	}
	entries := make(ScMap, len(items))
	for i, item := range items {
		pair, ok := item.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, encodingError("Map entry %d is not a pair", i)
		}
		key, err := parseScVal(pair[0], depth+1)
		if err != nil {
			return nil, err
		}
		val, err := parseScVal(pair[1], depth+1)
		if err != nil {
			return nil, err
		}
		entries[i] = ScMapEntry{Key: key, Val: val}
	}
	return ScvMap{Map: &entries}, nil
}

// parseUint decodes a canonical RLP integer of at most bits bits.
func parseUint(raw interface{}, bits uint) (uint64, error) {
	b, ok := raw.([]byte)
	switch {
	case !ok:
		return 0, encodingError("integer is a list")
	case len(b) > 8:
		return 0, encodingError("integer has %d bytes", len(b))
	case len(b) > 0 && b[0] == 0:
		return 0, encodingError("integer has leading zero bytes")
	}
	var x uint64
	for _, c := range b {
		x = x<<8 | uint64(c)
	}
	if bits < 64 && x>>bits != 0 {
		return 0, encodingError("integer %d overflows %d bits", x, bits)
	}
	return x, nil
}
