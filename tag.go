package hostval

import (
	"fmt"
)

// Val encoding constants.
const (
	// TagBits is the number of low bits of a Val holding its tag.
	TagBits = 8

	// BodyBits is the number of high bits of a Val holding its body.
	BodyBits = 64 - TagBits

	// BodyMask masks a body to BodyBits.
	BodyMask = 1<<BodyBits - 1

	// MaxSmallUnsigned is the largest unsigned integer stored inline.
	MaxSmallUnsigned = 1<<BodyBits - 1

	// MaxSmallSigned is the largest signed integer stored inline.
	MaxSmallSigned = 1<<(BodyBits-1) - 1

	// MinSmallSigned is the smallest signed integer stored inline.
	MinSmallSigned = -1 << (BodyBits - 1)

	// statusTypeShift positions the status type above the 32-bit code.
	statusTypeShift = 32

	// MaxStatusType is the largest status type an inline error can hold.
	MaxStatusType = 1<<(BodyBits-statusTypeShift) - 1
)

// Tag discriminates the interpretation of a Val's body.
type Tag uint8

const (
	TagVoid Tag = iota
	TagBool
	TagError
	TagU32
	TagI32
	TagU64Small
	TagI64Small
	TagTimepointSmall
	TagDurationSmall
	TagU128Small
	TagI128Small
	TagU256Small
	TagI256Small
	TagSymbolSmall

	TagU64Object
	TagI64Object
	TagTimepointObject
	TagDurationObject
	TagU128Object
	TagI128Object
	TagU256Object
	TagI256Object
	TagBytesObject
	TagStringObject
	TagSymbolObject
	TagVecObject
	TagMapObject
	TagAddressObject

	// TagBad is the first unassigned tag.
	TagBad
)

// firstObjectTag is the lowest tag whose body is a Handle.
const firstObjectTag = TagU64Object

var tagNames = [...]string{
	TagVoid:            "Void",
	TagBool:            "Bool",
	TagError:           "Error",
	TagU32:             "U32",
	TagI32:             "I32",
	TagU64Small:        "U64Small",
	TagI64Small:        "I64Small",
	TagTimepointSmall:  "TimepointSmall",
	TagDurationSmall:   "DurationSmall",
	TagU128Small:       "U128Small",
	TagI128Small:       "I128Small",
	TagU256Small:       "U256Small",
	TagI256Small:       "I256Small",
	TagSymbolSmall:     "SymbolSmall",
	TagU64Object:       "U64Object",
	TagI64Object:       "I64Object",
	TagTimepointObject: "TimepointObject",
	TagDurationObject:  "DurationObject",
	TagU128Object:      "U128Object",
	TagI128Object:      "I128Object",
	TagU256Object:      "U256Object",
	TagI256Object:      "I256Object",
	TagBytesObject:     "BytesObject",
	TagStringObject:    "StringObject",
	TagSymbolObject:    "SymbolObject",
	TagVecObject:       "VecObject",
	TagMapObject:       "MapObject",
	TagAddressObject:   "AddressObject",
}

// tagTypes maps each assigned tag to the external type it shares a rank with.
var tagTypes = [...]ScValType{
	TagVoid:            ScvVoidType,
	TagBool:            ScvBoolType,
	TagError:           ScvErrorType,
	TagU32:             ScvU32Type,
	TagI32:             ScvI32Type,
	TagU64Small:        ScvU64Type,
	TagI64Small:        ScvI64Type,
	TagTimepointSmall:  ScvTimepointType,
	TagDurationSmall:   ScvDurationType,
	TagU128Small:       ScvU128Type,
	TagI128Small:       ScvI128Type,
	TagU256Small:       ScvU256Type,
	TagI256Small:       ScvI256Type,
	TagSymbolSmall:     ScvSymbolType,
	TagU64Object:       ScvU64Type,
	TagI64Object:       ScvI64Type,
	TagTimepointObject: ScvTimepointType,
	TagDurationObject:  ScvDurationType,
	TagU128Object:      ScvU128Type,
	TagI128Object:      ScvI128Type,
	TagU256Object:      ScvU256Type,
	TagI256Object:      ScvI256Type,
	TagBytesObject:     ScvBytesType,
	TagStringObject:    ScvStringType,
	TagSymbolObject:    ScvSymbolType,
	TagVecObject:       ScvVecType,
	TagMapObject:       ScvMapType,
	TagAddressObject:   ScvAddressType,
}

// IsValid returns true if the tag is assigned.
func (t Tag) IsValid() bool {
	return t < TagBad
}

// IsObject returns true if values with this tag carry an object handle.
func (t Tag) IsObject() bool {
	return t >= firstObjectTag && t < TagBad
}

// Type returns the external type sharing this tag's comparison rank.
func (t Tag) Type() (ScValType, error) {
	if !t.IsValid() {
		return 0, &InvalidTagError{Tag: t}
	}
	return tagTypes[t], nil
}

func (t Tag) String() string {
	if t.IsValid() {
		return tagNames[t]
	}
	return fmt.Sprintf("Bad(%d)", uint8(t))
}

// smallTagFor returns the inline tag for a numeric type, if it has one.
func smallTagFor(typ ScValType) (Tag, bool) {
	switch typ {
	case ScvU64Type:
		return TagU64Small, true
	case ScvI64Type:
		return TagI64Small, true
	case ScvTimepointType:
		return TagTimepointSmall, true
	case ScvDurationType:
		return TagDurationSmall, true
	case ScvU128Type:
		return TagU128Small, true
	case ScvI128Type:
		return TagI128Small, true
	case ScvU256Type:
		return TagU256Small, true
	case ScvI256Type:
		return TagI256Small, true
	}
	return 0, false
}

// objectTagFor returns the object tag for an external type.
func objectTagFor(typ ScValType) (Tag, bool) {
	switch typ {
	case ScvU64Type:
		return TagU64Object, true
	case ScvI64Type:
		return TagI64Object, true
	case ScvTimepointType:
		return TagTimepointObject, true
	case ScvDurationType:
		return TagDurationObject, true
	case ScvU128Type:
		return TagU128Object, true
	case ScvI128Type:
		return TagI128Object, true
	case ScvU256Type:
		return TagU256Object, true
	case ScvI256Type:
		return TagI256Object, true
	case ScvBytesType:
		return TagBytesObject, true
	case ScvStringType:
		return TagStringObject, true
	case ScvSymbolType:
		return TagSymbolObject, true
	case ScvVecType:
		return TagVecObject, true
	case ScvMapType:
		return TagMapObject, true
	case ScvAddressType:
		return TagAddressObject, true
	}
	return 0, false
}

// Handle is an opaque reference to a host object, valid only in the
// environment that allocated it.
// Format: [env id:24][index:32]
type Handle uint64

const handleIndexBits = 32

func newHandle(envID uint32, index uint32) Handle {
	return Handle(uint64(envID)<<handleIndexBits | uint64(index))
}

// EnvID returns the id of the environment owning the object.
func (h Handle) EnvID() uint32 {
	return uint32(uint64(h) >> handleIndexBits)
}

// Index returns the object's position in its environment's store.
func (h Handle) Index() uint32 {
	return uint32(h)
}

func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.EnvID(), h.Index())
}

// Val is the compact host value: a fixed-width scalar that either embeds a
// small value directly or holds a handle to a host object.
// Format: [body:56][tag:8]
//
// The zero Val is Void.
type Val uint64

// Void is the unit value.
const Void = Val(TagVoid)

// fromBody assembles a Val. The body is truncated to BodyBits.
func fromBody(tag Tag, body uint64) Val {
	return Val(body<<TagBits | uint64(tag))
}

// Tag returns the raw tag, which may be unassigned.
func (v Val) Tag() Tag {
	return Tag(uint8(v))
}

// Body returns the raw body.
func (v Val) Body() uint64 {
	return uint64(v) >> TagBits
}

// IsObject returns true if the value holds an object handle.
func (v Val) IsObject() bool {
	return v.Tag().IsObject()
}

// Type returns the external type sharing this value's comparison rank.
func (v Val) Type() (ScValType, error) {
	return v.Tag().Type()
}

// Handle returns the object handle of an object value.
func (v Val) Handle() (Handle, error) {
	if !v.IsObject() {
		return 0, &InvalidTagError{Tag: v.Tag(), Want: "an object tag"}
	}
	return Handle(v.Body()), nil
}

// Validate checks that the tag is assigned and the body is legal for it.
// Object handles are not resolved.
func (v Val) Validate() error {
	tag := v.Tag()
	body := v.Body()
	switch {
	case !tag.IsValid():
		return &InvalidTagError{Tag: tag}
	case tag == TagVoid && body != 0:
		return &InvalidTagError{Tag: tag, Want: "an empty body"}
	case tag == TagBool && body > 1:
		return &InvalidTagError{Tag: tag, Want: "a body of 0 or 1"}
	case (tag == TagU32 || tag == TagI32) && body>>32 != 0:
		return &InvalidTagError{Tag: tag, Want: "a 32-bit body"}
	case tag == TagSymbolSmall:
		if _, err := decodeSmallSymbol(body); err != nil {
			return err
		}
	}
	return nil
}

// BoolVal returns a Bool value.
func BoolVal(b bool) Val {
	if b {
		return fromBody(TagBool, 1)
	}
	return fromBody(TagBool, 0)
}

// U32Val returns a U32 value.
func U32Val(x uint32) Val {
	return fromBody(TagU32, uint64(x))
}

// I32Val returns an I32 value.
func I32Val(x int32) Val {
	return fromBody(TagI32, uint64(uint32(x)))
}

// NewErrorVal returns an Error value holding a status.
func NewErrorVal(s Status) (Val, error) {
	if uint64(s.Type) > MaxStatusType {
		return 0, ErrOverflow
	}
	return fromBody(TagError, uint64(s.Type)<<statusTypeShift|uint64(s.Code)), nil
}

// MustErrorVal is like NewErrorVal but panics on error.
func MustErrorVal(s Status) Val {
	v, err := NewErrorVal(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Bool returns the payload of a Bool value.
func (v Val) Bool() (bool, error) {
	if v.Tag() != TagBool {
		return false, &InvalidTagError{Tag: v.Tag(), Want: TagBool.String()}
	}
	return v.Body() != 0, nil
}

// U32 returns the payload of a U32 value.
func (v Val) U32() (uint32, error) {
	if v.Tag() != TagU32 {
		return 0, &InvalidTagError{Tag: v.Tag(), Want: TagU32.String()}
	}
	return uint32(v.Body()), nil
}

// I32 returns the payload of an I32 value.
func (v Val) I32() (int32, error) {
	if v.Tag() != TagI32 {
		return 0, &InvalidTagError{Tag: v.Tag(), Want: TagI32.String()}
	}
	return int32(uint32(v.Body())), nil
}

// Status returns the payload of an Error value.
func (v Val) Status() (Status, error) {
	if v.Tag() != TagError {
		return Status{}, &InvalidTagError{Tag: v.Tag(), Want: TagError.String()}
	}
	body := v.Body()
	return Status{Type: StatusType(body >> statusTypeShift), Code: uint32(body)}, nil
}

// SmallU64 returns the payload of an inline unsigned integer.
func (v Val) SmallU64() (uint64, error) {
	switch v.Tag() {
	case TagU64Small, TagTimepointSmall, TagDurationSmall, TagU128Small, TagU256Small:
		return v.Body(), nil
	}
	return 0, &InvalidTagError{Tag: v.Tag(), Want: "an inline unsigned integer"}
}

// SmallI64 returns the payload of an inline signed integer.
func (v Val) SmallI64() (int64, error) {
	switch v.Tag() {
	case TagI64Small, TagI128Small, TagI256Small:
		return signExtend(v.Body()), nil
	}
	return 0, &InvalidTagError{Tag: v.Tag(), Want: "an inline signed integer"}
}

// signExtend widens a BodyBits two's complement body to int64.
func signExtend(body uint64) int64 {
	return int64(body<<TagBits) >> TagBits
}

func (v Val) String() string {
	tag := v.Tag()
	switch {
	case !tag.IsValid():
		return fmt.Sprintf("Bad(0x%016x)", uint64(v))
	case tag == TagVoid:
		return "Void"
	case tag == TagBool:
		return fmt.Sprintf("Bool(%t)", v.Body() != 0)
	case tag == TagError:
		s, _ := v.Status()
		return fmt.Sprintf("Error(%s)", s)
	case tag == TagU32:
		return fmt.Sprintf("U32(%d)", uint32(v.Body()))
	case tag == TagI32:
		return fmt.Sprintf("I32(%d)", int32(uint32(v.Body())))
	case tag == TagSymbolSmall:
		s, err := decodeSmallSymbol(v.Body())
		if err != nil {
			return fmt.Sprintf("SymbolSmall(0x%x)", v.Body())
		}
		return fmt.Sprintf("Symbol(%s)", s)
	case tag.IsObject():
		return fmt.Sprintf("%s(%s)", tag, Handle(v.Body()))
	}
	if x, err := v.SmallI64(); err == nil {
		return fmt.Sprintf("%s(%d)", tag, x)
	}
	return fmt.Sprintf("%s(%d)", tag, v.Body())
}
