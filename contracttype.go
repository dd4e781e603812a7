package hostval

import (
	"fmt"
)

// IntoVal is implemented by user-defined types that convert themselves to a
// Val, typically by composing the conversions of their fields.
type IntoVal interface {
	IntoVal(env *Env) (Val, error)
}

// TryFromVal is implemented by user-defined types that populate themselves
// from a Val.
type TryFromVal interface {
	TryFromVal(env *Env, v Val) error
}

// IntoVals converts each item in order, stopping at the first failure.
func (e *Env) IntoVals(items ...IntoVal) ([]Val, error) {
	vals := make([]Val, len(items))
	for i, item := range items {
		v, err := item.IntoVal(e)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// StructField is a named field of a record value.
type StructField struct {
	Name  string
	Value Val
}

// Struct returns a record with named fields: a Map keyed by the field name
// symbols. Field names must be unique.
func (e *Env) Struct(fields ...StructField) (Val, error) {
	entries := make([]MapEntry, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return 0, &ShapeError{Type: ScvMapType, Reason: fmt.Sprintf("duplicate field %q", f.Name)}
		}
		seen[f.Name] = struct{}{}
		key, err := e.Symbol(f.Name)
		if err != nil {
			return 0, err
		}
		entries[i] = MapEntry{Key: key, Val: f.Value}
	}
	return e.Map(entries)
}

// StructFields returns the fields of a record built by Struct, in key
// order.
func (e *Env) StructFields(v Val) ([]StructField, error) {
	entries, err := e.MapEntries(v)
	if err != nil {
		return nil, err
	}
	fields := make([]StructField, len(entries))
	for i, entry := range entries {
		name, err := e.SymbolOf(entry.Key)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		fields[i] = StructField{Name: name, Value: entry.Val}
	}
	return fields, nil
}

// Tuple returns a record with positional fields: a Vec.
func (e *Env) Tuple(fields ...Val) (Val, error) {
	return e.Vec(fields...)
}

// EnumVariant returns a variant value: a Vec headed by the variant name
// symbol and followed by the variant's fields.
func (e *Env) EnumVariant(name string, fields ...Val) (Val, error) {
	tag, err := e.Symbol(name)
	if err != nil {
		return 0, err
	}
	return e.Vec(append([]Val{tag}, fields...)...)
}

// EnumVariantOf splits a variant value built by EnumVariant into its name
// and fields.
func (e *Env) EnumVariantOf(v Val) (string, []Val, error) {
	elems, err := e.VecElems(v)
	if err != nil {
		return "", nil, err
	}
	if len(elems) == 0 {
		return "", nil, &ShapeError{Type: ScvVecType, Reason: "variant without a name"}
	}
	name, err := e.SymbolOf(elems[0])
	if err != nil {
		return "", nil, err
	}
	return name, elems[1:], nil
}

// Field returns the value of a named field of a record built by Struct.
func (e *Env) Field(v Val, name string) (Val, error) {
	fields, err := e.StructFields(v)
	if err != nil {
		return 0, err
	}
	for _, f := range fields {
		if f.Name == name {
			return f.Value, nil
		}
	}
	return 0, &ShapeError{Type: ScvMapType, Reason: fmt.Sprintf("no field %q", name)}
}
