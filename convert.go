package hostval

import (
	"fmt"

	"github.com/holiman/uint256"
)

const (
	opToExternal   = "to external"
	opFromExternal = "from external"
)

// ToScVal converts a value of this environment to its external form.
//
// Conversion fails with ErrNotSerializable if the value, or anything it
// contains, is an Error whose status has no external representation or a
// container nested deeper than MaxDepth. It fails with ErrUnresolvableHandle
// or ErrInvalidTag for malformed input. Map entries are emitted in key order.
func (e *Env) ToScVal(v Val) (ScVal, error) {
	sv, err := e.toScVal(v, 0)
	if err != nil {
		typ, _ := v.Type()
		e.log.Debug("Conversion to external form failed", "val", v, "err", err)
		return nil, &ConversionError{Op: opToExternal, Type: typ, Err: err}
	}
	return sv, nil
}

func (e *Env) toScVal(v Val, depth int) (ScVal, error) {
	e.budget.Charge(CostConvert, 1)
	// Same bound as fromScVal, so every converted value converts back.
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: nested deeper than %d", ErrNotSerializable, MaxDepth)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	typ, _ := v.Type()

	switch typ {
	case ScvVoidType:
		return ScvVoid{}, nil
	case ScvBoolType:
		b, _ := v.Bool()
		return ScvBool(b), nil
	case ScvErrorType:
		s, _ := v.Status()
		if !s.Serializable() {
			return nil, &StatusError{Status: s}
		}
		return ScvError{Status: s}, nil
	case ScvU32Type:
		x, _ := v.U32()
		return ScvU32(x), nil
	case ScvI32Type:
		x, _ := v.I32()
		return ScvI32(x), nil

	case ScvU64Type, ScvI64Type, ScvTimepointType, ScvDurationType,
		ScvU128Type, ScvI128Type, ScvU256Type, ScvI256Type:
		_, x, err := e.IntOf(v)
		if err != nil {
			return nil, err
		}
		return intToScVal(typ, x), nil

	case ScvBytesType:
		b, err := e.BytesOf(v)
		if err != nil {
			return nil, err
		}
		return ScvBytes(b), nil
	case ScvStringType:
		s, err := e.StringOf(v)
		if err != nil {
			return nil, err
		}
		return ScvString(s), nil
	case ScvSymbolType:
		s, err := e.SymbolOf(v)
		if err != nil {
			return nil, err
		}
		return ScvSymbol(s), nil
	case ScvAddressType:
		h, err := e.AddressOf(v)
		if err != nil {
			return nil, err
		}
		return ScvAddress{ContractID: h}, nil

	case ScvVecType:
		elems, err := e.VecElems(v)
		if err != nil {
			return nil, err
		}
		out := make(ScVec, len(elems))
		for i, elem := range elems {
			if out[i], err = e.toScVal(elem, depth+1); err != nil {
				return nil, err
			}
		}
		return ScvVec{Vec: &out}, nil

	case ScvMapType:
		entries, err := e.MapEntries(v)
		if err != nil {
			return nil, err
		}
		out := make(ScMap, len(entries))
		for i, entry := range entries {
			if out[i].Key, err = e.toScVal(entry.Key, depth+1); err != nil {
				return nil, err
			}
			if out[i].Val, err = e.toScVal(entry.Val, depth+1); err != nil {
				return nil, err
			}
		}
		return ScvMap{Map: &out}, nil
	}
	return nil, &InvalidTagError{Tag: v.Tag()}
}

// intToScVal splits a 256-bit two's complement value into the limbs of
// its external type.
func intToScVal(typ ScValType, x *uint256.Int) ScVal {
	switch typ {
	case ScvU64Type:
		return ScvU64(x[0])
	case ScvI64Type:
		return ScvI64(int64(x[0]))
	case ScvTimepointType:
		return ScvTimepoint(x[0])
	case ScvDurationType:
		return ScvDuration(x[0])
	case ScvU128Type:
		return ScvU128{Hi: x[1], Lo: x[0]}
	case ScvI128Type:
		return ScvI128{Hi: int64(x[1]), Lo: x[0]}
	case ScvU256Type:
		return ScvU256{HiHi: x[3], HiLo: x[2], LoHi: x[1], LoLo: x[0]}
	}
	return ScvI256{HiHi: int64(x[3]), HiLo: x[2], LoHi: x[1], LoLo: x[0]}
}

// FromScVal converts an external value into a value of this environment.
//
// Conversion fails with ErrInvalidShape for external values that have no
// tagged counterpart: an absent vec or map, an illegal symbol, a map whose
// keys are duplicated or out of order, a status outside its code set,
// nesting deeper than MaxDepth, or a container holding any of these.
func (e *Env) FromScVal(sv ScVal) (Val, error) {
	v, err := e.fromScVal(sv, 0)
	if err != nil {
		typ := ScValType(-1)
		if sv != nil {
			typ = sv.Type()
		}
		e.log.Debug("Conversion from external form failed", "type", typ, "err", err)
		return 0, &ConversionError{Op: opFromExternal, Type: typ, Err: err}
	}
	return v, nil
}

func (e *Env) fromScVal(sv ScVal, depth int) (Val, error) {
	e.budget.Charge(CostConvert, 1)
	if depth > MaxDepth {
		return 0, fmt.Errorf("%w: nested deeper than %d", ErrInvalidShape, MaxDepth)
	}

	switch x := sv.(type) {
	case nil:
		return 0, fmt.Errorf("%w: nil value", ErrInvalidShape)
	case ScvVoid:
		return Void, nil
	case ScvBool:
		return BoolVal(bool(x)), nil
	case ScvError:
		s := x.Status
		if !s.Serializable() {
			return 0, &ShapeError{Type: ScvErrorType, Reason: fmt.Sprintf("status %s outside its code set", s)}
		}
		return NewErrorVal(s)
	case ScvU32:
		return U32Val(uint32(x)), nil
	case ScvI32:
		return I32Val(int32(x)), nil
	case ScvU64:
		return e.U64(uint64(x)), nil
	case ScvI64:
		return e.I64(int64(x)), nil
	case ScvTimepoint:
		return e.Timepoint(uint64(x)), nil
	case ScvDuration:
		return e.Duration(uint64(x)), nil
	case ScvU128:
		return e.U128(x.Hi, x.Lo), nil
	case ScvI128:
		return e.I128(x.Hi, x.Lo), nil
	case ScvU256:
		return e.U256(&uint256.Int{x.LoLo, x.LoHi, x.HiLo, x.HiHi}), nil
	case ScvI256:
		return e.I256(&uint256.Int{x.LoLo, x.LoHi, x.HiLo, uint64(x.HiHi)}), nil
	case ScvBytes:
		return e.Bytes(x), nil
	case ScvString:
		return e.String(string(x)), nil
	case ScvSymbol:
		return e.Symbol(string(x))
	case ScvAddress:
		return e.Address(x.ContractID), nil

	case ScvVec:
		if x.Vec == nil {
			return 0, &ShapeError{Type: ScvVecType, Reason: "absent vec"}
		}
		elems := make([]Val, len(*x.Vec))
		for i, elem := range *x.Vec {
			v, err := e.fromScVal(elem, depth+1)
			if err != nil {
				return 0, err
			}
			elems[i] = v
		}
		return e.push(VecObject(elems)), nil

	case ScvMap:
		if x.Map == nil {
			return 0, &ShapeError{Type: ScvMapType, Reason: "absent map"}
		}
		entries := make(MapObject, len(*x.Map))
		for i, entry := range *x.Map {
			k, err := e.fromScVal(entry.Key, depth+1)
			if err != nil {
				return 0, err
			}
			v, err := e.fromScVal(entry.Val, depth+1)
			if err != nil {
				return 0, err
			}
			entries[i] = MapEntry{Key: k, Val: v}
			if i == 0 {
				continue
			}
			c, err := e.Compare(entries[i-1].Key, k)
			if err != nil {
				return 0, err
			}
			switch {
			case c == 0:
				return 0, &ShapeError{Type: ScvMapType, Reason: fmt.Sprintf("duplicate key at entry %d", i)}
			case c > 0:
				return 0, &ShapeError{Type: ScvMapType, Reason: fmt.Sprintf("key at entry %d out of order", i)}
			}
		}
		return e.push(entries), nil
	}
	return 0, &ShapeError{Type: sv.Type(), Reason: "unknown variant"}
}
