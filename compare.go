package hostval

import (
	"bytes"
	"cmp"
	"strings"
)

// Compare orders two values of this environment, returning -1, 0 or 1.
//
// Values order by type rank first, so inline and object forms of the same
// type compare by content. Integers compare numerically, symbols, strings,
// bytes and addresses by content. Vecs order lexicographically with a
// proper prefix first; maps order entry by entry, key before value, then
// by length. The order agrees with CompareScVal on converted values.
//
// Compare fails if a value is malformed or holds a handle that does not
// resolve in this environment.
func (e *Env) Compare(a, b Val) (int, error) {
	e.budget.Charge(CostCompare, 1)

	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	ta, _ := a.Type()
	tb, _ := b.Type()
	if c := cmp.Compare(ta, tb); c != 0 {
		return c, nil
	}

	switch ta {
	case ScvVoidType:
		return 0, nil

	case ScvBoolType:
		return cmp.Compare(a.Body(), b.Body()), nil

	case ScvErrorType:
		sa, _ := a.Status()
		sb, _ := b.Status()
		return compareStatus(sa, sb), nil

	case ScvU32Type:
		return cmp.Compare(uint32(a.Body()), uint32(b.Body())), nil

	case ScvI32Type:
		return cmp.Compare(int32(uint32(a.Body())), int32(uint32(b.Body()))), nil

	case ScvU64Type, ScvI64Type, ScvTimepointType, ScvDurationType,
		ScvU128Type, ScvI128Type, ScvU256Type, ScvI256Type:
		return e.compareInts(a, b)

	case ScvBytesType:
		xa, err := e.BytesOf(a)
		if err != nil {
			return 0, err
		}
		xb, err := e.BytesOf(b)
		if err != nil {
			return 0, err
		}
		return bytes.Compare(xa, xb), nil

	case ScvStringType:
		xa, err := e.StringOf(a)
		if err != nil {
			return 0, err
		}
		xb, err := e.StringOf(b)
		if err != nil {
			return 0, err
		}
		return strings.Compare(xa, xb), nil

	case ScvSymbolType:
		// Inline and object symbols order by content.
		xa, err := e.SymbolOf(a)
		if err != nil {
			return 0, err
		}
		xb, err := e.SymbolOf(b)
		if err != nil {
			return 0, err
		}
		return strings.Compare(xa, xb), nil

	case ScvVecType:
		return e.compareVecs(a, b)

	case ScvMapType:
		return e.compareMaps(a, b)

	case ScvAddressType:
		xa, err := e.AddressOf(a)
		if err != nil {
			return 0, err
		}
		xb, err := e.AddressOf(b)
		if err != nil {
			return 0, err
		}
		return bytes.Compare(xa[:], xb[:]), nil
	}
	return 0, &InvalidTagError{Tag: a.Tag()}
}

// compareInts compares two integers of the same type. Signed types
// compare as two's complement, not limb by limb.
func (e *Env) compareInts(a, b Val) (int, error) {
	typ, xa, err := e.IntOf(a)
	if err != nil {
		return 0, err
	}
	_, xb, err := e.IntOf(b)
	if err != nil {
		return 0, err
	}
	if _, signed, _ := intWidth(typ); !signed {
		return xa.Cmp(xb), nil
	}
	switch {
	case xa.Slt(xb):
		return -1, nil
	case xa.Sgt(xb):
		return 1, nil
	}
	return 0, nil
}

func (e *Env) compareVecs(a, b Val) (int, error) {
	xs, err := e.VecElems(a)
	if err != nil {
		return 0, err
	}
	ys, err := e.VecElems(b)
	if err != nil {
		return 0, err
	}
	for i := 0; i < len(xs) && i < len(ys); i++ {
		if c, err := e.Compare(xs[i], ys[i]); c != 0 || err != nil {
			return c, err
		}
	}
	return cmp.Compare(len(xs), len(ys)), nil
}

func (e *Env) compareMaps(a, b Val) (int, error) {
	xs, err := e.MapEntries(a)
	if err != nil {
		return 0, err
	}
	ys, err := e.MapEntries(b)
	if err != nil {
		return 0, err
	}
	for i := 0; i < len(xs) && i < len(ys); i++ {
		if c, err := e.Compare(xs[i].Key, ys[i].Key); c != 0 || err != nil {
			return c, err
		}
		if c, err := e.Compare(xs[i].Val, ys[i].Val); c != 0 || err != nil {
			return c, err
		}
	}
	return cmp.Compare(len(xs), len(ys)), nil
}

// Equal reports whether two values compare equal.
func (e *Env) Equal(a, b Val) (bool, error) {
	c, err := e.Compare(a, b)
	return c == 0, err
}
