package arbitrary

import (
	"slices"

	"github.com/ethereum/go-ethereum/common"
	fuzz "github.com/google/gofuzz"

	hostval "github.com/branched-services/go-hostval"
)

// invalidSymbolChars are characters outside the symbol alphabet.
const invalidSymbolChars = " -.$:é\x00"

// ScVal generates external values, including shapes the converter must
// reject: absent containers, illegal symbols, statuses outside their code
// set, and maps whose keys are unsorted or repeated.
type ScVal struct {
	sv hostval.ScVal
}

// NewScVal wraps an existing external value.
func NewScVal(sv hostval.ScVal) ScVal {
	return ScVal{sv: sv}
}

// Value returns the generated external value. A ScVal left unfilled at the
// depth bound is Void.
func (s ScVal) Value() hostval.ScVal {
	if s.sv == nil {
		return hostval.ScvVoid{}
	}
	return s.sv
}

func (s ScVal) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.FromScVal(s.Value())
}

func (s *ScVal) Fuzz(c fuzz.Continue) {
	s.sv = scValKinds[c.Intn(len(scValKinds))](c)
}

var scValKinds []func(fuzz.Continue) hostval.ScVal

func init() {
	scValKinds = []func(fuzz.Continue) hostval.ScVal{
		func(fuzz.Continue) hostval.ScVal { return hostval.ScvVoid{} },
		func(c fuzz.Continue) hostval.ScVal { return hostval.ScvBool(c.RandBool()) },
		func(c fuzz.Continue) hostval.ScVal {
			var st Status
			c.Fuzz(&st)
			return hostval.ScvError{Status: hostval.Status(st)}
		},
		func(c fuzz.Continue) hostval.ScVal { return hostval.ScvU32(c.Uint32()) },
		func(c fuzz.Continue) hostval.ScVal { return hostval.ScvI32(int32(c.Uint32())) },
		func(c fuzz.Continue) hostval.ScVal { return hostval.ScvU64(fuzzUnsigned(c)) },
		func(c fuzz.Continue) hostval.ScVal { return hostval.ScvI64(fuzzSigned(c)) },
		func(c fuzz.Continue) hostval.ScVal { return hostval.ScvTimepoint(fuzzUnsigned(c)) },
		func(c fuzz.Continue) hostval.ScVal { return hostval.ScvDuration(fuzzUnsigned(c)) },
		func(c fuzz.Continue) hostval.ScVal {
			var x U128
			c.Fuzz(&x)
			return hostval.ScvU128(x)
		},
		func(c fuzz.Continue) hostval.ScVal {
			var x I128
			c.Fuzz(&x)
			return hostval.ScvI128(x)
		},
		func(c fuzz.Continue) hostval.ScVal {
			var x U256
			c.Fuzz(&x)
			return hostval.ScvU256(x)
		},
		func(c fuzz.Continue) hostval.ScVal {
			var x I256
			c.Fuzz(&x)
			return hostval.ScvI256(x)
		},
		func(c fuzz.Continue) hostval.ScVal {
			var b []byte
			c.Fuzz(&b)
			return hostval.ScvBytes(b)
		},
		func(c fuzz.Continue) hostval.ScVal { return hostval.ScvString(c.RandString()) },
		fuzzScSymbol,
		func(c fuzz.Continue) hostval.ScVal {
			var a Address
			c.Fuzz(&a)
			return hostval.ScvAddress{ContractID: common.Hash(a)}
		},
		fuzzScVec,
		fuzzScMap,
	}
}

func fuzzScSymbol(c fuzz.Continue) hostval.ScVal {
	var s Symbol
	c.Fuzz(&s)
	switch c.Intn(16) {
	case 0:
		at := c.Intn(len(s) + 1)
		bad := invalidSymbolChars[c.Intn(len(invalidSymbolChars))]
		return hostval.ScvSymbol(string(s[:at]) + string(bad) + string(s[at:]))
	case 1:
		long := make([]byte, hostval.MaxSymbolLen+1)
		for i := range long {
			long[i] = hostval.SymbolAlphabet[c.Intn(len(hostval.SymbolAlphabet))]
		}
		return hostval.ScvSymbol(long)
	}
	return hostval.ScvSymbol(s)
}

func fuzzScVec(c fuzz.Continue) hostval.ScVal {
	if c.Intn(8) == 0 {
		return hostval.ScvVec{}
	}
	var elems []ScVal
	c.Fuzz(&elems)
	vec := make(hostval.ScVec, len(elems))
	for i, e := range elems {
		vec[i] = e.Value()
	}
	return hostval.ScvVec{Vec: &vec}
}

func fuzzScMap(c fuzz.Continue) hostval.ScVal {
	if c.Intn(8) == 0 {
		return hostval.ScvMap{}
	}
	var pairs []Pair[ScVal, ScVal]
	c.Fuzz(&pairs)
	m := make(hostval.ScMap, len(pairs))
	for i, p := range pairs {
		m[i] = hostval.ScMapEntry{Key: p.Key.Value(), Val: p.Val.Value()}
	}
	switch c.Intn(4) {
	case 0, 1:
		m = canonicalScMap(m)
	case 2:
		if len(m) > 0 {
			m = append(m, hostval.ScMapEntry{Key: m[0].Key, Val: hostval.ScvVoid{}})
		}
	}
	return hostval.ScvMap{Map: &m}
}

// canonicalScMap sorts entries by key and keeps the last of each run of
// equal keys.
func canonicalScMap(m hostval.ScMap) hostval.ScMap {
	slices.SortStableFunc(m, func(a, b hostval.ScMapEntry) int {
		return hostval.CompareScVal(a.Key, b.Key)
	})
	out := m[:0]
	for i, e := range m {
		if i+1 < len(m) && hostval.CompareScVal(e.Key, m[i+1].Key) == 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}
