package arbitrary

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"

	hostval "github.com/branched-services/go-hostval"
)

// Void generates the unit value.
type Void struct{}

// IntoVal returns hostval.Void.
func (Void) IntoVal(*hostval.Env) (hostval.Val, error) {
	return hostval.Void, nil
}

// Bool generates either boolean.
type Bool bool

// IntoVal returns the inline Bool value.
func (b Bool) IntoVal(*hostval.Env) (hostval.Val, error) {
	return hostval.BoolVal(bool(b)), nil
}

// Status generates mostly serializable statuses, with the occasional code or
// type outside the defined sets.
type Status hostval.Status

func (s *Status) Fuzz(c fuzz.Continue) {
	s.Type = hostval.StatusType(c.Intn(hostval.NumStatusTypes))
	switch c.Intn(16) {
	case 0:
		s.Type = hostval.StatusType(hostval.NumStatusTypes + c.Intn(64))
		s.Code = c.Uint32()
	case 1:
		s.Code = c.Uint32()
	default:
		s.Code = uint32(c.Uint64() % s.Type.CodeCount())
	}
}

// IntoVal returns the Error value for s. It fails with ErrOverflow for a
// type outside the defined set.
func (s Status) IntoVal(*hostval.Env) (hostval.Val, error) {
	return hostval.NewErrorVal(hostval.Status(s))
}

// U32 generates any uint32.
type U32 uint32

// IntoVal returns the inline U32 value.
func (x U32) IntoVal(*hostval.Env) (hostval.Val, error) {
	return hostval.U32Val(uint32(x)), nil
}

// I32 generates any int32.
type I32 int32

// IntoVal returns the inline I32 value.
func (x I32) IntoVal(*hostval.Env) (hostval.Val, error) {
	return hostval.I32Val(int32(x)), nil
}

// fuzzUnsigned returns a uint64 weighted towards small values and the
// boundary between inline and object storage.
func fuzzUnsigned(c fuzz.Continue) uint64 {
	switch c.Intn(4) {
	case 0:
		return uint64(c.Intn(256))
	case 1:
		return hostval.MaxSmallUnsigned - 1 + uint64(c.Intn(3))
	default:
		return c.Uint64()
	}
}

// fuzzSigned is the signed counterpart of fuzzUnsigned.
func fuzzSigned(c fuzz.Continue) int64 {
	switch c.Intn(4) {
	case 0:
		return int64(c.Intn(256)) - 128
	case 1:
		if c.RandBool() {
			return hostval.MaxSmallSigned - 1 + int64(c.Intn(3))
		}
		return hostval.MinSmallSigned - 1 + int64(c.Intn(3))
	default:
		return int64(c.Uint64())
	}
}

// U64 generates values on both sides of the inline limit.
type U64 uint64

func (x *U64) Fuzz(c fuzz.Continue) { *x = U64(fuzzUnsigned(c)) }

func (x U64) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.U64(uint64(x)), nil
}

// I64 is the signed counterpart of U64.
type I64 int64

func (x *I64) Fuzz(c fuzz.Continue) { *x = I64(fuzzSigned(c)) }

func (x I64) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.I64(int64(x)), nil
}

// Timepoint generates U64-distributed timepoints.
type Timepoint uint64

func (x *Timepoint) Fuzz(c fuzz.Continue) { *x = Timepoint(fuzzUnsigned(c)) }

func (x Timepoint) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.Timepoint(uint64(x)), nil
}

// Duration generates U64-distributed durations.
type Duration uint64

func (x *Duration) Fuzz(c fuzz.Continue) { *x = Duration(fuzzUnsigned(c)) }

func (x Duration) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.Duration(uint64(x)), nil
}

// U128 has the field layout of hostval.ScvU128.
type U128 struct {
	Hi, Lo uint64
}

func (x *U128) Fuzz(c fuzz.Continue) {
	switch c.Intn(3) {
	case 0:
		*x = U128{Lo: fuzzUnsigned(c)}
	case 1:
		*x = U128{Hi: uint64(c.Intn(2)), Lo: c.Uint64()}
	default:
		*x = U128{Hi: c.Uint64(), Lo: c.Uint64()}
	}
}

func (x U128) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.U128(x.Hi, x.Lo), nil
}

// I128 has the field layout of hostval.ScvI128.
type I128 struct {
	Hi int64
	Lo uint64
}

func (x *I128) Fuzz(c fuzz.Continue) {
	if c.RandBool() {
		lo := fuzzSigned(c)
		*x = I128{Hi: lo >> 63, Lo: uint64(lo)}
		return
	}
	*x = I128{Hi: int64(c.Uint64()), Lo: c.Uint64()}
}

func (x I128) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.I128(x.Hi, x.Lo), nil
}

// U256 has the field layout of hostval.ScvU256.
type U256 struct {
	HiHi, HiLo, LoHi, LoLo uint64
}

func (x *U256) Fuzz(c fuzz.Continue) {
	if c.RandBool() {
		*x = U256{LoLo: fuzzUnsigned(c)}
		return
	}
	*x = U256{HiHi: c.Uint64(), HiLo: c.Uint64(), LoHi: c.Uint64(), LoLo: c.Uint64()}
}

func (x U256) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.U256(&uint256.Int{x.LoLo, x.LoHi, x.HiLo, x.HiHi}), nil
}

// I256 has the field layout of hostval.ScvI256.
type I256 struct {
	HiHi             int64
	HiLo, LoHi, LoLo uint64
}

func (x *I256) Fuzz(c fuzz.Continue) {
	if c.RandBool() {
		lo := fuzzSigned(c)
		ext := uint64(lo >> 63)
		*x = I256{HiHi: lo >> 63, HiLo: ext, LoHi: ext, LoLo: uint64(lo)}
		return
	}
	*x = I256{HiHi: int64(c.Uint64()), HiLo: c.Uint64(), LoHi: c.Uint64(), LoLo: c.Uint64()}
}

func (x I256) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.I256(&uint256.Int{x.LoLo, x.LoHi, x.HiLo, uint64(x.HiHi)}), nil
}

// Bytes generates byte strings of any length, including nil.
type Bytes []byte

// IntoVal allocates a Bytes object holding a copy of b.
func (b Bytes) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.Bytes(b), nil
}

// BytesN generates fixed 32-byte values.
type BytesN [32]byte

func (b BytesN) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.Bytes(b[:]), nil
}

// String generates random unicode strings.
type String string

// IntoVal allocates a String object.
func (s String) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.String(string(s)), nil
}

// Symbol generates valid symbols of 0 to MaxSymbolLen characters, so both the
// inline and object forms occur.
type Symbol string

func (s *Symbol) Fuzz(c fuzz.Continue) {
	n := c.Intn(hostval.MaxSymbolLen + 1)
	if c.RandBool() {
		n = c.Intn(hostval.MaxSmallSymbolLen + 1)
	}
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteByte(hostval.SymbolAlphabet[c.Intn(len(hostval.SymbolAlphabet))])
	}
	*s = Symbol(sb.String())
}

// IntoVal returns the inline or object symbol for s.
func (s Symbol) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.Symbol(string(s))
}

// Address generates contract ids.
type Address [32]byte

// IntoVal allocates an Address object.
func (a Address) IntoVal(env *hostval.Env) (hostval.Val, error) {
	return env.Address(common.Hash(a)), nil
}
