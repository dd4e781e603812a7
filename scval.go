package hostval

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// MaxDepth is the deepest container nesting accepted in either direction of
// conversion and by the wire decoder.
const MaxDepth = 128

// ScValType enumerates the external value variants. The order is the
// comparison rank shared by both representations.
type ScValType int32

const (
	ScvVoidType ScValType = iota
	ScvBoolType
	ScvErrorType
	ScvU32Type
	ScvI32Type
	ScvU64Type
	ScvI64Type
	ScvTimepointType
	ScvDurationType
	ScvU128Type
	ScvI128Type
	ScvU256Type
	ScvI256Type
	ScvBytesType
	ScvStringType
	ScvSymbolType
	ScvVecType
	ScvMapType
	ScvAddressType

	// NumScValTypes is the number of external value variants.
	NumScValTypes = int(ScvAddressType) + 1
)

var scValTypeNames = [...]string{
	ScvVoidType:      "Void",
	ScvBoolType:      "Bool",
	ScvErrorType:     "Error",
	ScvU32Type:       "U32",
	ScvI32Type:       "I32",
	ScvU64Type:       "U64",
	ScvI64Type:       "I64",
	ScvTimepointType: "Timepoint",
	ScvDurationType:  "Duration",
	ScvU128Type:      "U128",
	ScvI128Type:      "I128",
	ScvU256Type:      "U256",
	ScvI256Type:      "I256",
	ScvBytesType:     "Bytes",
	ScvStringType:    "String",
	ScvSymbolType:    "Symbol",
	ScvVecType:       "Vec",
	ScvMapType:       "Map",
	ScvAddressType:   "Address",
}

func (t ScValType) String() string {
	if t >= 0 && int(t) < NumScValTypes {
		return scValTypeNames[t]
	}
	return fmt.Sprintf("ScValType(%d)", int32(t))
}

// IsBigInt returns true for the 128- and 256-bit integer types.
func (t ScValType) IsBigInt() bool {
	switch t {
	case ScvU128Type, ScvI128Type, ScvU256Type, ScvI256Type:
		return true
	}
	return false
}

// ScVal is the self-describing external value: every variant is fully
// inlined and independent of any environment.
// This is a sealed interface - only types within this package can implement it.
type ScVal interface {
	// isScVal is unexported to seal the interface.
	isScVal()

	// Type returns the variant discriminant.
	Type() ScValType
}

type (
	// ScvVoid is the unit value.
	ScvVoid struct{}

	// ScvBool is a boolean.
	ScvBool bool

	// ScvU32 is an unsigned 32-bit integer.
	ScvU32 uint32

	// ScvI32 is a signed 32-bit integer.
	ScvI32 int32

	// ScvU64 is an unsigned 64-bit integer.
	ScvU64 uint64

	// ScvI64 is a signed 64-bit integer.
	ScvI64 int64

	// ScvTimepoint is a point in time, in seconds.
	ScvTimepoint uint64

	// ScvDuration is a span of time, in seconds.
	ScvDuration uint64

	// ScvBytes is an opaque byte string.
	ScvBytes []byte

	// ScvString is a text string.
	ScvString string

	// ScvSymbol is a short identifier over SymbolAlphabet.
	ScvSymbol string
)

// ScvError is a status.
type ScvError struct {
	Status Status
}

// ScvU128 is an unsigned 128-bit integer split into 64-bit halves.
type ScvU128 struct {
	Hi uint64
	Lo uint64
}

// ScvI128 is a signed 128-bit integer; the sign lives in Hi.
type ScvI128 struct {
	Hi int64
	Lo uint64
}

// ScvU256 is an unsigned 256-bit integer split into four 64-bit limbs.
type ScvU256 struct {
	HiHi uint64
	HiLo uint64
	LoHi uint64
	LoLo uint64
}

// ScvI256 is a signed 256-bit integer; the sign lives in HiHi.
type ScvI256 struct {
	HiHi int64
	HiLo uint64
	LoHi uint64
	LoLo uint64
}

// ScVec is the element list of a vector.
type ScVec []ScVal

// ScvVec is an optional vector. A nil Vec ("no vec") is distinct from an
// empty one and has no tagged counterpart.
type ScvVec struct {
	Vec *ScVec
}

// ScMapEntry is a key/value pair of a map.
type ScMapEntry struct {
	Key ScVal
	Val ScVal
}

// ScMap is the entry list of a map.
type ScMap []ScMapEntry

// ScvMap is an optional map. A nil Map ("no map") has no tagged counterpart.
type ScvMap struct {
	Map *ScMap
}

// ScvAddress is a contract address.
type ScvAddress struct {
	ContractID common.Hash
}

func (ScvVoid) isScVal()      {}
func (ScvBool) isScVal()      {}
func (ScvError) isScVal()     {}
func (ScvU32) isScVal()       {}
func (ScvI32) isScVal()       {}
func (ScvU64) isScVal()       {}
func (ScvI64) isScVal()       {}
func (ScvTimepoint) isScVal() {}
func (ScvDuration) isScVal()  {}
func (ScvU128) isScVal()      {}
func (ScvI128) isScVal()      {}
func (ScvU256) isScVal()      {}
func (ScvI256) isScVal()      {}
func (ScvBytes) isScVal()     {}
func (ScvString) isScVal()    {}
func (ScvSymbol) isScVal()    {}
func (ScvVec) isScVal()       {}
func (ScvMap) isScVal()       {}
func (ScvAddress) isScVal()   {}

func (ScvVoid) Type() ScValType      { return ScvVoidType }
func (ScvBool) Type() ScValType      { return ScvBoolType }
func (ScvError) Type() ScValType     { return ScvErrorType }
func (ScvU32) Type() ScValType       { return ScvU32Type }
func (ScvI32) Type() ScValType       { return ScvI32Type }
func (ScvU64) Type() ScValType       { return ScvU64Type }
func (ScvI64) Type() ScValType       { return ScvI64Type }
func (ScvTimepoint) Type() ScValType { return ScvTimepointType }
func (ScvDuration) Type() ScValType  { return ScvDurationType }
func (ScvU128) Type() ScValType      { return ScvU128Type }
func (ScvI128) Type() ScValType      { return ScvI128Type }
func (ScvU256) Type() ScValType      { return ScvU256Type }
func (ScvI256) Type() ScValType      { return ScvI256Type }
func (ScvBytes) Type() ScValType     { return ScvBytesType }
func (ScvString) Type() ScValType    { return ScvStringType }
func (ScvSymbol) Type() ScValType    { return ScvSymbolType }
func (ScvVec) Type() ScValType       { return ScvVecType }
func (ScvMap) Type() ScValType       { return ScvMapType }
func (ScvAddress) Type() ScValType   { return ScvAddressType }

// NewScVec returns a present vector holding elems.
func NewScVec(elems ...ScVal) ScvVec {
	vec := ScVec(elems)
	if vec == nil {
		vec = ScVec{}
	}
	return ScvVec{Vec: &vec}
}

// NewScMap returns a present map holding entries in the given order.
func NewScMap(entries ...ScMapEntry) ScvMap {
	m := ScMap(entries)
	if m == nil {
		m = ScMap{}
	}
	return ScvMap{Map: &m}
}
