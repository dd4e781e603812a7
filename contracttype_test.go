package hostval

import (
	"errors"
	"fmt"
	"testing"
)

// point is a user-defined record converted through Struct.
type point struct {
	X uint32
	Y int32
}

func (p point) IntoVal(env *Env) (Val, error) {
	return env.Struct(
		StructField{Name: "x", Value: U32Val(p.X)},
		StructField{Name: "y", Value: I32Val(p.Y)},
	)
}

func (p *point) TryFromVal(env *Env, v Val) error {
	x, err := env.Field(v, "x")
	if err != nil {
		return err
	}
	y, err := env.Field(v, "y")
	if err != nil {
		return err
	}
	if p.X, err = x.U32(); err != nil {
		return err
	}
	if p.Y, err = y.I32(); err != nil {
		return err
	}
	return nil
}

// failing never converts.
type failing struct{}

func (failing) IntoVal(*Env) (Val, error) {
	return 0, fmt.Errorf("failing: %w", ErrOverflow)
}

func TestStruct(t *testing.T) {
	env := NewEnv()

	t.Run("fields keyed by symbol in order", func(t *testing.T) {
		v, err := env.Struct(
			StructField{Name: "zeta", Value: U32Val(1)},
			StructField{Name: "alpha", Value: BoolVal(true)},
		)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if v.Tag() != TagMapObject {
			t.Fatalf("Expected a map, got %s", v.Tag())
		}
		fields, err := env.StructFields(v)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(fields) != 2 || fields[0].Name != "alpha" || fields[1].Name != "zeta" {
			t.Errorf("Expected fields alpha, zeta; got %+v", fields)
		}
	})

	t.Run("external form is a symbol-keyed map", func(t *testing.T) {
		v, _ := env.Struct(StructField{Name: "a", Value: U32Val(1)})
		sv, err := env.ToScVal(v)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		want := NewScMap(ScMapEntry{Key: ScvSymbol("a"), Val: ScvU32(1)})
		if !EqualScVal(sv, want) {
			t.Errorf("Expected %#v, got %#v", want, sv)
		}
	})

	t.Run("duplicate field", func(t *testing.T) {
		_, err := env.Struct(
			StructField{Name: "a", Value: Void},
			StructField{Name: "a", Value: Void},
		)
		if !errors.Is(err, ErrInvalidShape) {
			t.Errorf("Expected ErrInvalidShape, got %v", err)
		}
	})

	t.Run("illegal field name", func(t *testing.T) {
		_, err := env.Struct(StructField{Name: "a.b", Value: Void})
		if !errors.Is(err, ErrInvalidShape) {
			t.Errorf("Expected ErrInvalidShape, got %v", err)
		}
	})

	t.Run("missing field", func(t *testing.T) {
		v, _ := env.Struct(StructField{Name: "a", Value: Void})
		if _, err := env.Field(v, "b"); !errors.Is(err, ErrInvalidShape) {
			t.Errorf("Expected ErrInvalidShape, got %v", err)
		}
	})
}

func TestTuple(t *testing.T) {
	env := NewEnv()

	v, err := env.Tuple(U32Val(1), env.MustSymbol("b"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	sv, _ := env.ToScVal(v)
	want := NewScVec(ScvU32(1), ScvSymbol("b"))
	if !EqualScVal(sv, want) {
		t.Errorf("Expected %#v, got %#v", want, sv)
	}
}

func TestEnumVariant(t *testing.T) {
	env := NewEnv()

	t.Run("round trip", func(t *testing.T) {
		v, err := env.EnumVariant("Transfer", U32Val(5), BoolVal(false))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		name, fields, err := env.EnumVariantOf(v)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if name != "Transfer" {
			t.Errorf("Expected Transfer, got %s", name)
		}
		if len(fields) != 2 || fields[0] != U32Val(5) {
			t.Errorf("Expected fields [U32(5) Bool(false)], got %v", fields)
		}
	})

	t.Run("unit variant", func(t *testing.T) {
		v, _ := env.EnumVariant("None")
		sv, _ := env.ToScVal(v)
		if !EqualScVal(sv, NewScVec(ScvSymbol("None"))) {
			t.Errorf("Expected [None], got %#v", sv)
		}
	})

	t.Run("empty vec is not a variant", func(t *testing.T) {
		v, _ := env.Vec()
		if _, _, err := env.EnumVariantOf(v); !errors.Is(err, ErrInvalidShape) {
			t.Errorf("Expected ErrInvalidShape, got %v", err)
		}
	})

	t.Run("head must be a symbol", func(t *testing.T) {
		v, _ := env.Vec(U32Val(1))
		if _, _, err := env.EnumVariantOf(v); !errors.Is(err, ErrInvalidTag) {
			t.Errorf("Expected ErrInvalidTag, got %v", err)
		}
	})
}

func TestIntoValTryFromVal(t *testing.T) {
	env := NewEnv()

	vals, err := env.IntoVals(point{X: 1, Y: -2}, point{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var got point
	if err := got.TryFromVal(env, vals[0]); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != (point{X: 1, Y: -2}) {
		t.Errorf("Expected {1 -2}, got %+v", got)
	}

	if c, _ := env.Compare(vals[0], vals[1]); c != -1 {
		t.Errorf("Expected first point to order first, got %d", c)
	}

	_, err = env.IntoVals(point{}, failing{})
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("Expected ErrOverflow, got %v", err)
	}
}

var (
	_ IntoVal    = point{}
	_ TryFromVal = (*point)(nil)
)
