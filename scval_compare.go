package hostval

import (
	"bytes"
	"cmp"
	"strings"
)

// CompareScVal orders external values structurally: by variant rank, then
// by the variant's fields in declaration order. Absent containers order
// before present ones; sequences order lexicographically with a proper
// prefix first. A nil ScVal orders before everything.
func CompareScVal(a, b ScVal) int {
	return compareScVal(a, b, nil)
}

// PartialCompareScVal is CompareScVal for callers that must handle
// incomparable values. It reports false only if a nil value is reached.
func PartialCompareScVal(a, b ScVal) (int, bool) {
	if hasNil(a) || hasNil(b) {
		return 0, false
	}
	return CompareScVal(a, b), true
}

// compareScVal implements CompareScVal, invoking visit on every node pair.
func compareScVal(a, b ScVal, visit func()) int {
	if visit != nil {
		visit()
	}
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := cmp.Compare(a.Type(), b.Type()); c != 0 {
		return c
	}

	switch x := a.(type) {
	case ScvVoid:
		return 0
	case ScvBool:
		return compareBool(bool(x), bool(b.(ScvBool)))
	case ScvError:
		return compareStatus(x.Status, b.(ScvError).Status)
	case ScvU32:
		return cmp.Compare(x, b.(ScvU32))
	case ScvI32:
		return cmp.Compare(x, b.(ScvI32))
	case ScvU64:
		return cmp.Compare(x, b.(ScvU64))
	case ScvI64:
		return cmp.Compare(x, b.(ScvI64))
	case ScvTimepoint:
		return cmp.Compare(x, b.(ScvTimepoint))
	case ScvDuration:
		return cmp.Compare(x, b.(ScvDuration))
	case ScvU128:
		y := b.(ScvU128)
		if c := cmp.Compare(x.Hi, y.Hi); c != 0 {
			return c
		}
		return cmp.Compare(x.Lo, y.Lo)
	case ScvI128:
		y := b.(ScvI128)
		if c := cmp.Compare(x.Hi, y.Hi); c != 0 {
			return c
		}
		return cmp.Compare(x.Lo, y.Lo)
	case ScvU256:
		y := b.(ScvU256)
		return compareLimbs(x.HiHi, y.HiHi, x.HiLo, y.HiLo, x.LoHi, y.LoHi, x.LoLo, y.LoLo)
	case ScvI256:
		y := b.(ScvI256)
		if c := cmp.Compare(x.HiHi, y.HiHi); c != 0 {
			return c
		}
		return compareLimbs(x.HiLo, y.HiLo, x.LoHi, y.LoHi, x.LoLo, y.LoLo)
	case ScvBytes:
		return bytes.Compare(x, b.(ScvBytes))
	case ScvString:
		return strings.Compare(string(x), string(b.(ScvString)))
	case ScvSymbol:
		return strings.Compare(string(x), string(b.(ScvSymbol)))
	case ScvVec:
		y := b.(ScvVec)
		if c := compareAbsent(x.Vec == nil, y.Vec == nil); c != 0 || x.Vec == nil {
			return c
		}
		xs, ys := *x.Vec, *y.Vec
		for i := 0; i < len(xs) && i < len(ys); i++ {
			if c := compareScVal(xs[i], ys[i], visit); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(xs), len(ys))
	case ScvMap:
		y := b.(ScvMap)
		if c := compareAbsent(x.Map == nil, y.Map == nil); c != 0 || x.Map == nil {
			return c
		}
		xs, ys := *x.Map, *y.Map
		for i := 0; i < len(xs) && i < len(ys); i++ {
			if c := compareScVal(xs[i].Key, ys[i].Key, visit); c != 0 {
				return c
			}
			if c := compareScVal(xs[i].Val, ys[i].Val, visit); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(xs), len(ys))
	case ScvAddress:
		y := b.(ScvAddress)
		return bytes.Compare(x.ContractID[:], y.ContractID[:])
	}
	return 0
}

// compareLimbs compares unsigned limbs given as (a0, b0, a1, b1, ...) pairs,
// most significant first.
func compareLimbs(pairs ...uint64) int {
	for i := 0; i+1 < len(pairs); i += 2 {
		if c := cmp.Compare(pairs[i], pairs[i+1]); c != 0 {
			return c
		}
	}
	return 0
}

// compareAbsent orders an absent container before a present one.
func compareAbsent(aAbsent, bAbsent bool) int {
	switch {
	case aAbsent == bAbsent:
		return 0
	case aAbsent:
		return -1
	}
	return 1
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

// EqualScVal reports structural equality of two external values.
func EqualScVal(a, b ScVal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case ScvBytes:
		y, ok := b.(ScvBytes)
		return ok && bytes.Equal(x, y)
	case ScvVec:
		y, ok := b.(ScvVec)
		if !ok || (x.Vec == nil) != (y.Vec == nil) {
			return false
		}
		if x.Vec == nil {
			return true
		}
		if len(*x.Vec) != len(*y.Vec) {
			return false
		}
		for i := range *x.Vec {
			if !EqualScVal((*x.Vec)[i], (*y.Vec)[i]) {
				return false
			}
		}
		return true
	case ScvMap:
		y, ok := b.(ScvMap)
		if !ok || (x.Map == nil) != (y.Map == nil) {
			return false
		}
		if x.Map == nil {
			return true
		}
		if len(*x.Map) != len(*y.Map) {
			return false
		}
		for i, e := range *x.Map {
			f := (*y.Map)[i]
			if !EqualScVal(e.Key, f.Key) || !EqualScVal(e.Val, f.Val) {
				return false
			}
		}
		return true
	}
	// Every remaining variant is a comparable Go value.
	return a == b
}

// hasNil reports whether v or anything it contains is a nil ScVal.
func hasNil(v ScVal) bool {
	switch x := v.(type) {
	case nil:
		return true
	case ScvVec:
		if x.Vec != nil {
			for _, e := range *x.Vec {
				if hasNil(e) {
					return true
				}
			}
		}
	case ScvMap:
		if x.Map != nil {
			for _, e := range *x.Map {
				if hasNil(e.Key) || hasNil(e.Val) {
					return true
				}
			}
		}
	}
	return false
}
