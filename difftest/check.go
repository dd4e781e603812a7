// Package difftest checks the tagged and external value forms against each
// other.
//
// Every check realises its inputs in both forms and verifies that the two
// comparators, the budgeted comparator and both conversion directions agree.
// A violation is reported as a *Divergence; inputs with no counterpart in
// the other form are reported as ErrSkipped.
package difftest

import (
	"fmt"

	fuzz "github.com/google/gofuzz"

	hostval "github.com/branched-services/go-hostval"
	"github.com/branched-services/go-hostval/arbitrary"
)

// CheckVals checks a pair of tagged values.
func CheckVals(env *hostval.Env, a, b hostval.Val) error {
	c, err := env.Compare(a, b)
	if err != nil {
		return fmt.Errorf("compare tagged: %w", err)
	}

	sa, err := env.ToScVal(a)
	if err != nil {
		if ConversionMightFail(err) {
			return skipped(err)
		}
		return err
	}
	sb, err := env.ToScVal(b)
	if err != nil {
		if ConversionMightFail(err) {
			return skipped(err)
		}
		return err
	}

	diverge := func(prop, format string, args ...any) *Divergence {
		return &Divergence{
			Property: prop,
			Detail:   fmt.Sprintf(format, args...),
			Tagged:   []hostval.Val{a, b},
			External: []hostval.ScVal{sa, sb},
		}
	}

	if err := checkExternalOrder(sa, sb, diverge); err != nil {
		return err
	}
	if sc := hostval.CompareScVal(sa, sb); c != sc {
		return diverge(PropCompareConsistency, "tagged %d, external %d", c, sc)
	}
	if eq := hostval.EqualScVal(sa, sb); eq != (c == 0) {
		return diverge(PropEqualCoherence, "tagged compare %d, external equality %t", c, eq)
	}

	for i, v := range []hostval.Val{a, b} {
		sv := sa
		if i == 1 {
			sv = sb
		}
		back, err := env.FromScVal(sv)
		if err != nil {
			return diverge(PropRoundTrip, "%s does not convert back: %v", v, err)
		}
		if rc, err := env.Compare(v, back); err != nil || rc != 0 {
			return diverge(PropRoundTrip, "%s converted back to %s (compare %d, err %v)", v, back, rc, err)
		}
	}
	return nil
}

// CheckScVals checks a pair of external values.
func CheckScVals(env *hostval.Env, x, y hostval.ScVal) error {
	diverge := func(prop, format string, args ...any) *Divergence {
		return &Divergence{
			Property: prop,
			Detail:   fmt.Sprintf(format, args...),
			External: []hostval.ScVal{x, y},
		}
	}

	if err := checkExternalOrder(x, y, diverge); err != nil {
		return err
	}

	a, err := env.FromScVal(x)
	if err != nil {
		if ConversionMightFail(err) {
			return skipped(err)
		}
		return err
	}
	b, err := env.FromScVal(y)
	if err != nil {
		if ConversionMightFail(err) {
			return skipped(err)
		}
		return err
	}

	diverge = func(prop, format string, args ...any) *Divergence {
		return &Divergence{
			Property: prop,
			Detail:   fmt.Sprintf(format, args...),
			Tagged:   []hostval.Val{a, b},
			External: []hostval.ScVal{x, y},
		}
	}

	c, err := env.Compare(a, b)
	if err != nil {
		return fmt.Errorf("compare tagged: %w", err)
	}
	if sc := hostval.CompareScVal(x, y); c != sc {
		return diverge(PropCompareConsistency, "tagged %d, external %d", c, sc)
	}
	if eq := hostval.EqualScVal(x, y); eq != (c == 0) {
		return diverge(PropEqualCoherence, "tagged compare %d, external equality %t", c, eq)
	}

	for i, v := range []hostval.Val{a, b} {
		orig := x
		if i == 1 {
			orig = y
		}
		back, err := env.ToScVal(v)
		if err != nil {
			return diverge(PropReverseRoundTrip, "%s does not convert back: %v", v, err)
		}
		if !hostval.EqualScVal(orig, back) {
			return diverge(PropReverseRoundTrip, "converted back to %#v", back)
		}
	}
	return nil
}

// checkExternalOrder verifies that the partial and budgeted comparators
// agree with CompareScVal.
func checkExternalOrder(x, y hostval.ScVal, diverge func(prop, format string, args ...any) *Divergence) error {
	sc := hostval.CompareScVal(x, y)

	pc, ok := hostval.PartialCompareScVal(x, y)
	if !ok {
		return diverge(PropPartialTotal, "incomparable")
	}
	if pc != sc {
		return diverge(PropPartialTotal, "partial %d, total %d", pc, sc)
	}

	bc, err := hostval.NewBudget().Compare(x, y)
	if err != nil {
		return diverge(PropBudgetCompare, "%v", err)
	}
	if bc != sc {
		return diverge(PropBudgetCompare, "budget %d, total %d", bc, sc)
	}
	return nil
}

// CheckValPair generates two tagged values from f and checks them. About a
// quarter of the pairs are equal values held by distinct objects.
func CheckValPair(f *fuzz.Fuzzer, env *hostval.Env) error {
	p := arbitrary.Generate[arbitrary.Val](f)
	q := p
	if arbitrary.Generate[uint8](f) >= 64 {
		q = arbitrary.Generate[arbitrary.Val](f)
	}

	a, err := p.IntoVal(env)
	if err != nil {
		return fmt.Errorf("realise %v: %w", p, err)
	}
	b, err := q.IntoVal(env)
	if err != nil {
		return fmt.Errorf("realise %v: %w", q, err)
	}
	return CheckVals(env, a, b)
}

// CheckScValPair generates two external values from f and checks them.
func CheckScValPair(f *fuzz.Fuzzer, env *hostval.Env) error {
	x := arbitrary.Generate[arbitrary.ScVal](f)
	y := x
	if arbitrary.Generate[uint8](f) >= 64 {
		y = arbitrary.Generate[arbitrary.ScVal](f)
	}
	return CheckScVals(env, x.Value(), y.Value())
}
