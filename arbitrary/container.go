package arbitrary

import (
	"fmt"

	fuzz "github.com/google/gofuzz"

	hostval "github.com/branched-services/go-hostval"
)

// Vec generates a vector of uniformly typed elements.
type Vec[T Prototype] []T

func (v Vec[T]) IntoVal(env *hostval.Env) (hostval.Val, error) {
	elems := make([]hostval.Val, len(v))
	for i, p := range v {
		val, err := p.IntoVal(env)
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = val
	}
	return env.Vec(elems...)
}

// Pair is one generated map entry.
type Pair[K, V Prototype] struct {
	Key K
	Val V
}

// Map generates a map from generated entries. Entries may repeat a key; the
// host map keeps the last one.
type Map[K, V Prototype] []Pair[K, V]

func (m Map[K, V]) IntoVal(env *hostval.Env) (hostval.Val, error) {
	entries := make([]hostval.MapEntry, len(m))
	for i, p := range m {
		key, err := p.Key.IntoVal(env)
		if err != nil {
			return 0, fmt.Errorf("key %d: %w", i, err)
		}
		val, err := p.Val.IntoVal(env)
		if err != nil {
			return 0, fmt.Errorf("value %d: %w", i, err)
		}
		entries[i] = hostval.MapEntry{Key: key, Val: val}
	}
	return env.Map(entries)
}

type (
	// ValVec is a vector of values of any kind.
	ValVec = Vec[Val]

	// ValMap is a map between values of any kind.
	ValMap = Map[Val, Val]
)

// valKinds generates one prototype per kind. Typed containers appear next to
// their heterogeneous counterparts.
var valKinds []func(fuzz.Continue) Prototype

func init() {
	valKinds = []func(fuzz.Continue) Prototype{
		gen[Void],
		gen[Bool],
		gen[Status],
		gen[U32],
		gen[I32],
		gen[U64],
		gen[I64],
		gen[Timepoint],
		gen[Duration],
		gen[U128],
		gen[I128],
		gen[U256],
		gen[I256],
		gen[Bytes],
		gen[BytesN],
		gen[String],
		gen[Symbol],
		gen[Address],
		gen[Vec[U32]],
		gen[Vec[Symbol]],
		gen[ValVec],
		gen[Map[Symbol, Val]],
		gen[Map[U32, Bool]],
		gen[ValMap],
	}
}

// Val generates a value of any kind. A Val left unfilled at the depth bound
// realises as Void.
type Val struct {
	inner Prototype
}

func (v *Val) Fuzz(c fuzz.Continue) {
	v.inner = valKinds[c.Intn(len(valKinds))](c)
}

func (v Val) IntoVal(env *hostval.Env) (hostval.Val, error) {
	if v.inner == nil {
		return hostval.Void, nil
	}
	return v.inner.IntoVal(env)
}

func (v Val) String() string {
	if v.inner == nil {
		return "Void{}"
	}
	return fmt.Sprintf("%T%v", v.inner, v.inner)
}
