package hostval

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidTag indicates a Val whose tag is unassigned or whose body is
	// not legal for its tag.
	ErrInvalidTag = errors.New("hostval: invalid tag")

	// ErrUnresolvableHandle indicates an object handle that is dangling or
	// belongs to a different environment.
	ErrUnresolvableHandle = errors.New("hostval: unresolvable object handle")

	// ErrNotSerializable indicates a Val with no external representation.
	ErrNotSerializable = errors.New("hostval: value has no external representation")

	// ErrInvalidShape indicates an external value with no tagged counterpart.
	ErrInvalidShape = errors.New("hostval: invalid external value shape")

	// ErrOverflow indicates a number that does not fit the space its tag reserves.
	ErrOverflow = errors.New("hostval: value overflows its reserved range")

	// ErrInvalidEncoding indicates malformed wire-encoded external value bytes.
	ErrInvalidEncoding = errors.New("hostval: invalid wire encoding")
)

// InvalidTagError indicates a Val that was interpreted under the wrong or an
// unassigned tag.
type InvalidTagError struct {
	Tag  Tag
	Want string
}

func (e *InvalidTagError) Error() string {
	if e.Want != "" {
		return fmt.Sprintf("hostval: invalid tag: %s, expected %s", e.Tag, e.Want)
	}
	return fmt.Sprintf("hostval: invalid tag: %s", e.Tag)
}

func (e *InvalidTagError) Unwrap() error {
	return ErrInvalidTag
}

// HandleError indicates an object handle that cannot be resolved in the
// environment it was presented to.
type HandleError struct {
	Handle Handle
	EnvID  uint32
}

func (e *HandleError) Error() string {
	if e.Handle.EnvID() != e.EnvID {
		return fmt.Sprintf("hostval: unresolvable object handle %s: owned by env %d, not env %d",
			e.Handle, e.Handle.EnvID(), e.EnvID)
	}
	return fmt.Sprintf("hostval: unresolvable object handle %s: no such object in env %d", e.Handle, e.EnvID)
}

func (e *HandleError) Unwrap() error {
	return ErrUnresolvableHandle
}

// ShapeError indicates an external value that is structurally illegal.
type ShapeError struct {
	Type   ScValType
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("hostval: invalid external value shape for %s: %s", e.Type, e.Reason)
}

func (e *ShapeError) Unwrap() error {
	return ErrInvalidShape
}

// StatusError indicates a status value outside its type's code set.
type StatusError struct {
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hostval: value has no external representation: status %s", e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrNotSerializable
}

// ConversionError wraps a failure converting between the tagged and the
// external representation.
type ConversionError struct {
	Op   string // "to external" or "from external"
	Type ScValType
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("hostval: convert %s %s: %v", e.Type, e.Op, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
