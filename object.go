package hostval

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// HostObject is a heap value owned by an Env and referenced from a Val by
// handle.
// This is a sealed interface - only types within this package can implement it.
type HostObject interface {
	// isHostObject is unexported to seal the interface.
	isHostObject()

	// Type returns the external type of the object.
	Type() ScValType
}

// IntObject holds an integer too wide for an inline body. Signed values
// are stored in two's complement, sign-extended to 256 bits.
type IntObject struct {
	Kind  ScValType
	Value uint256.Int
}

// BytesObject holds an opaque byte string.
type BytesObject []byte

// StringObject holds a text string.
type StringObject string

// SymbolObject holds a symbol longer than MaxSmallSymbolLen.
type SymbolObject string

// VecObject holds an ordered sequence of values.
type VecObject []Val

// MapEntry is a key/value pair of a MapObject.
type MapEntry struct {
	Key Val
	Val Val
}

// MapObject holds entries in strictly ascending key order.
type MapObject []MapEntry

// AddressObject holds a contract address hash.
type AddressObject common.Hash

func (*IntObject) isHostObject()    {}
func (BytesObject) isHostObject()   {}
func (StringObject) isHostObject()  {}
func (SymbolObject) isHostObject()  {}
func (VecObject) isHostObject()     {}
func (MapObject) isHostObject()     {}
func (AddressObject) isHostObject() {}

func (o *IntObject) Type() ScValType  { return o.Kind }
func (BytesObject) Type() ScValType   { return ScvBytesType }
func (StringObject) Type() ScValType  { return ScvStringType }
func (SymbolObject) Type() ScValType  { return ScvSymbolType }
func (VecObject) Type() ScValType     { return ScvVecType }
func (MapObject) Type() ScValType     { return ScvMapType }
func (AddressObject) Type() ScValType { return ScvAddressType }

// intWidth returns the bit width and signedness of an integer type.
func intWidth(typ ScValType) (bits uint, signed bool, ok bool) {
	switch typ {
	case ScvU64Type, ScvTimepointType, ScvDurationType:
		return 64, false, true
	case ScvI64Type:
		return 64, true, true
	case ScvU128Type:
		return 128, false, true
	case ScvI128Type:
		return 128, true, true
	case ScvU256Type:
		return 256, false, true
	case ScvI256Type:
		return 256, true, true
	}
	return 0, false, false
}

// fitsUnsigned reports whether x < 2^bits.
func fitsUnsigned(x *uint256.Int, bits uint) bool {
	if bits >= 256 {
		return true
	}
	return new(uint256.Int).Rsh(x, bits).IsZero()
}

// fitsSigned reports whether the two's complement x lies in
// [-2^(bits-1), 2^(bits-1)).
func fitsSigned(x *uint256.Int, bits uint) bool {
	if bits >= 256 {
		return true
	}
	rest := new(uint256.Int).SRsh(x, bits-1)
	return rest.IsZero() || rest.Eq(new(uint256.Int).SetAllOne())
}

// fitsInt reports whether x is in range for the integer type.
func fitsInt(typ ScValType, x *uint256.Int, bits uint) bool {
	if _, signed, _ := intWidth(typ); signed {
		return fitsSigned(x, bits)
	}
	return fitsUnsigned(x, bits)
}

// int64ToU256 sign-extends x to 256 bits.
func int64ToU256(x int64) *uint256.Int {
	z := new(uint256.Int).SetUint64(uint64(x))
	if x < 0 {
		z[1], z[2], z[3] = math.MaxUint64, math.MaxUint64, math.MaxUint64
	}
	return z
}

// validateObject checks the invariants of an object about to be stored.
func (e *Env) validateObject(obj HostObject) error {
	switch o := obj.(type) {
	case nil:
		return fmt.Errorf("%w: nil object", ErrInvalidShape)
	case *IntObject:
		bits, _, ok := intWidth(o.Kind)
		if !ok {
			return &ShapeError{Type: o.Kind, Reason: "not an integer type"}
		}
		if !fitsInt(o.Kind, &o.Value, bits) {
			return ErrOverflow
		}
	case SymbolObject:
		return ValidateSymbol(string(o))
	case VecObject:
		for _, v := range o {
			if err := e.checkVal(v); err != nil {
				return err
			}
		}
	case MapObject:
		for i, entry := range o {
			if err := e.checkVal(entry.Key); err != nil {
				return err
			}
			if err := e.checkVal(entry.Val); err != nil {
				return err
			}
			if i == 0 {
				continue
			}
			c, err := e.Compare(o[i-1].Key, entry.Key)
			if err != nil {
				return err
			}
			if c >= 0 {
				return &ShapeError{Type: ScvMapType, Reason: fmt.Sprintf("key %d not above key %d", i, i-1)}
			}
		}
	}
	return nil
}
