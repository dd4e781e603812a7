package arbitrary

import (
	"fmt"

	fuzz "github.com/google/gofuzz"

	hostval "github.com/branched-services/go-hostval"
)

// Field is one named field of a user-defined record.
type Field struct {
	Name  string
	Value Prototype
}

// Record realises fields in declaration order and assembles them into a
// symbol-keyed record.
//
//	type transfer struct {
//		From, To arbitrary.Address
//		Amount   arbitrary.I128
//	}
//
//	func (t transfer) IntoVal(env *hostval.Env) (hostval.Val, error) {
//		return arbitrary.Record(env,
//			arbitrary.Field{Name: "from", Value: t.From},
//			arbitrary.Field{Name: "to", Value: t.To},
//			arbitrary.Field{Name: "amount", Value: t.Amount},
//		)
//	}
func Record(env *hostval.Env, fields ...Field) (hostval.Val, error) {
	out := make([]hostval.StructField, len(fields))
	for i, f := range fields {
		v, err := f.Value.IntoVal(env)
		if err != nil {
			return 0, fmt.Errorf("field %s: %w", f.Name, err)
		}
		out[i] = hostval.StructField{Name: f.Name, Value: v}
	}
	return env.Struct(out...)
}

// Tuple realises positional fields into a vector.
func Tuple(env *hostval.Env, fields ...Prototype) (hostval.Val, error) {
	vals, err := realise(env, fields)
	if err != nil {
		return 0, err
	}
	return env.Tuple(vals...)
}

// Variant realises the fields of one enum variant behind its name.
func Variant(env *hostval.Env, name string, fields ...Prototype) (hostval.Val, error) {
	vals, err := realise(env, fields)
	if err != nil {
		return 0, fmt.Errorf("variant %s: %w", name, err)
	}
	return env.EnumVariant(name, vals...)
}

// ChooseVariant draws the discriminant of an n-variant enum. Callers
// generate only the chosen variant's fields.
//
//	func (a *action) Fuzz(c fuzz.Continue) {
//		a.kind = arbitrary.ChooseVariant(c, 2)
//		if a.kind == 1 {
//			c.Fuzz(&a.transfer)
//		}
//	}
func ChooseVariant(c fuzz.Continue, n int) int {
	if n <= 1 {
		return 0
	}
	return c.Intn(n)
}

func realise(env *hostval.Env, fields []Prototype) ([]hostval.Val, error) {
	items := make([]hostval.IntoVal, len(fields))
	for i, f := range fields {
		items[i] = f
	}
	return env.IntoVals(items...)
}
