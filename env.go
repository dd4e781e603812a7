package hostval

import (
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// maxEnvID is the largest id a handle can carry.
const maxEnvID = 1<<(BodyBits-handleIndexBits) - 1

var envSeq atomic.Uint32

// nextEnvID returns a non-zero environment id. Ids wrap after maxEnvID
// environments, so handles are only guaranteed foreign between
// environments created less than 2^24 apart.
func nextEnvID() uint32 {
	for {
		id := envSeq.Add(1) & maxEnvID
		if id != 0 {
			return id
		}
	}
}

// Env is an environment instance: it owns the object store every object
// Val resolves against. An Env is not safe for concurrent use.
type Env struct {
	id      uint32
	objects []HostObject
	budget  *Budget
	log     log.Logger
}

// NewEnv creates an empty environment.
func NewEnv(opts ...EnvOption) *Env {
	config := defaultEnvConfig()
	for _, opt := range opts {
		opt(config)
	}
	if config.budget == nil {
		config.budget = NewBudget()
	}

	id := nextEnvID()
	return &Env{
		id:      id,
		objects: make([]HostObject, 0, 16),
		budget:  config.budget,
		log:     config.logger.New("pkg", "hostval", "env", id),
	}
}

// ID returns the environment's id, as carried in its handles.
func (e *Env) ID() uint32 {
	return e.id
}

// Budget returns the budget the environment charges.
func (e *Env) Budget() *Budget {
	return e.budget
}

// ObjectCount returns the number of objects allocated so far.
func (e *Env) ObjectCount() int {
	return len(e.objects)
}

// Allocate stores an object and returns a Val referencing it. Contained
// values must belong to this environment and maps must have strictly
// ascending keys. The store is append-only.
func (e *Env) Allocate(obj HostObject) (Val, error) {
	if err := e.validateObject(obj); err != nil {
		return 0, err
	}
	switch o := obj.(type) {
	case *IntObject:
		obj = &IntObject{Kind: o.Kind, Value: o.Value}
	case BytesObject:
		obj = slices.Clone(o)
	case VecObject:
		obj = slices.Clone(o)
	case MapObject:
		obj = slices.Clone(o)
	}
	return e.push(obj), nil
}

// push stores a validated object.
func (e *Env) push(obj HostObject) Val {
	if uint64(len(e.objects)) > math.MaxUint32 {
		panic(fmt.Sprintf("hostval: object store of env %d exhausted", e.id))
	}
	tag, _ := objectTagFor(obj.Type())
	h := newHandle(e.id, uint32(len(e.objects)))
	e.objects = append(e.objects, obj)
	e.budget.Charge(CostAlloc, 1)
	e.log.Trace("Allocated host object", "handle", h, "tag", tag)
	return fromBody(tag, uint64(h))
}

// ResolveHandle returns the object a handle refers to.
func (e *Env) ResolveHandle(h Handle) (HostObject, error) {
	e.budget.Charge(CostResolve, 1)
	if h.EnvID() != e.id || int(h.Index()) >= len(e.objects) {
		return nil, &HandleError{Handle: h, EnvID: e.id}
	}
	return e.objects[h.Index()], nil
}

// Resolve returns the object an object Val refers to. The object's type
// must match the Val's tag.
func (e *Env) Resolve(v Val) (HostObject, error) {
	h, err := v.Handle()
	if err != nil {
		return nil, err
	}
	obj, err := e.ResolveHandle(h)
	if err != nil {
		return nil, err
	}
	if tag, _ := objectTagFor(obj.Type()); tag != v.Tag() {
		return nil, &InvalidTagError{Tag: v.Tag(), Want: tag.String()}
	}
	return obj, nil
}

// checkVal validates v and, for an object, that it resolves here.
func (e *Env) checkVal(v Val) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if v.IsObject() {
		_, err := e.Resolve(v)
		return err
	}
	return nil
}

// intVal returns x as a value of an integer type, inline when it fits.
// The caller guarantees x is in range for typ.
func (e *Env) intVal(typ ScValType, x *uint256.Int) Val {
	if small, ok := smallTagFor(typ); ok && fitsInt(typ, x, BodyBits) {
		return fromBody(small, x[0]&BodyMask)
	}
	obj := &IntObject{Kind: typ}
	obj.Value.Set(x)
	return e.push(obj)
}

// U64 returns a U64 value.
func (e *Env) U64(x uint64) Val {
	return e.intVal(ScvU64Type, new(uint256.Int).SetUint64(x))
}

// I64 returns an I64 value.
func (e *Env) I64(x int64) Val {
	return e.intVal(ScvI64Type, int64ToU256(x))
}

// Timepoint returns a Timepoint value.
func (e *Env) Timepoint(x uint64) Val {
	return e.intVal(ScvTimepointType, new(uint256.Int).SetUint64(x))
}

// Duration returns a Duration value.
func (e *Env) Duration(x uint64) Val {
	return e.intVal(ScvDurationType, new(uint256.Int).SetUint64(x))
}

// U128 returns the U128 value hi<<64 | lo.
func (e *Env) U128(hi, lo uint64) Val {
	return e.intVal(ScvU128Type, &uint256.Int{lo, hi, 0, 0})
}

// I128 returns the I128 value hi<<64 | lo.
func (e *Env) I128(hi int64, lo uint64) Val {
	x := &uint256.Int{lo, uint64(hi), 0, 0}
	if hi < 0 {
		x[2], x[3] = math.MaxUint64, math.MaxUint64
	}
	return e.intVal(ScvI128Type, x)
}

// U256 returns a U256 value.
func (e *Env) U256(x *uint256.Int) Val {
	return e.intVal(ScvU256Type, x)
}

// I256 returns an I256 value; x is read as two's complement.
func (e *Env) I256(x *uint256.Int) Val {
	return e.intVal(ScvI256Type, x)
}

// Bytes returns a Bytes value holding a copy of b.
func (e *Env) Bytes(b []byte) Val {
	return e.push(BytesObject(slices.Clone(b)))
}

// String returns a String value.
func (e *Env) String(s string) Val {
	return e.push(StringObject(s))
}

// Symbol returns a Symbol value, inline when s has at most
// MaxSmallSymbolLen characters.
func (e *Env) Symbol(s string) (Val, error) {
	if err := ValidateSymbol(s); err != nil {
		return 0, err
	}
	if len(s) <= MaxSmallSymbolLen {
		return fromBody(TagSymbolSmall, encodeSmallSymbol(s)), nil
	}
	return e.push(SymbolObject(s)), nil
}

// MustSymbol is like Symbol but panics on error.
func (e *Env) MustSymbol(s string) Val {
	v, err := e.Symbol(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Address returns an Address value.
func (e *Env) Address(h common.Hash) Val {
	return e.push(AddressObject(h))
}

// Vec returns a Vec value holding elems.
func (e *Env) Vec(elems ...Val) (Val, error) {
	for _, v := range elems {
		if err := e.checkVal(v); err != nil {
			return 0, err
		}
	}
	return e.push(VecObject(slices.Clone(elems))), nil
}

// Map returns a Map value holding entries, sorted by key. When keys
// compare equal the later entry wins.
func (e *Env) Map(entries []MapEntry) (Val, error) {
	for _, entry := range entries {
		if err := e.checkVal(entry.Key); err != nil {
			return 0, err
		}
		if err := e.checkVal(entry.Val); err != nil {
			return 0, err
		}
	}

	sorted := slices.Clone(entries)
	var sortErr error
	slices.SortStableFunc(sorted, func(a, b MapEntry) int {
		c, err := e.Compare(a.Key, b.Key)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return c
	})
	if sortErr != nil {
		return 0, sortErr
	}

	out := make(MapObject, 0, len(sorted))
	for _, entry := range sorted {
		if n := len(out); n > 0 {
			c, err := e.Compare(out[n-1].Key, entry.Key)
			if err != nil {
				return 0, err
			}
			if c == 0 {
				out[n-1] = entry
				continue
			}
		}
		out = append(out, entry)
	}
	return e.push(out), nil
}

// VecElems returns the elements of a Vec value.
func (e *Env) VecElems(v Val) ([]Val, error) {
	obj, err := e.resolveAs(v, TagVecObject)
	if err != nil {
		return nil, err
	}
	return slices.Clone(obj.(VecObject)), nil
}

// MapEntries returns the entries of a Map value in key order.
func (e *Env) MapEntries(v Val) ([]MapEntry, error) {
	obj, err := e.resolveAs(v, TagMapObject)
	if err != nil {
		return nil, err
	}
	return slices.Clone(obj.(MapObject)), nil
}

// BytesOf returns the payload of a Bytes value.
func (e *Env) BytesOf(v Val) ([]byte, error) {
	obj, err := e.resolveAs(v, TagBytesObject)
	if err != nil {
		return nil, err
	}
	return slices.Clone(obj.(BytesObject)), nil
}

// StringOf returns the payload of a String value.
func (e *Env) StringOf(v Val) (string, error) {
	obj, err := e.resolveAs(v, TagStringObject)
	if err != nil {
		return "", err
	}
	return string(obj.(StringObject)), nil
}

// SymbolOf returns the characters of a Symbol value, inline or object.
func (e *Env) SymbolOf(v Val) (string, error) {
	if v.Tag() == TagSymbolSmall {
		return decodeSmallSymbol(v.Body())
	}
	obj, err := e.resolveAs(v, TagSymbolObject)
	if err != nil {
		return "", err
	}
	return string(obj.(SymbolObject)), nil
}

// AddressOf returns the payload of an Address value.
func (e *Env) AddressOf(v Val) (common.Hash, error) {
	obj, err := e.resolveAs(v, TagAddressObject)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(obj.(AddressObject)), nil
}

// IntOf returns the type and 256-bit two's complement value of any
// 64-, 128- or 256-bit integer Val, inline or object.
func (e *Env) IntOf(v Val) (ScValType, *uint256.Int, error) {
	tag := v.Tag()
	switch tag {
	case TagU64Small, TagTimepointSmall, TagDurationSmall, TagU128Small, TagU256Small:
		return tagTypes[tag], new(uint256.Int).SetUint64(v.Body()), nil
	case TagI64Small, TagI128Small, TagI256Small:
		return tagTypes[tag], int64ToU256(signExtend(v.Body())), nil
	case TagU64Object, TagI64Object, TagTimepointObject, TagDurationObject,
		TagU128Object, TagI128Object, TagU256Object, TagI256Object:
		obj, err := e.resolveAs(v, tag)
		if err != nil {
			return 0, nil, err
		}
		x := obj.(*IntObject)
		return x.Kind, x.Value.Clone(), nil
	}
	return 0, nil, &InvalidTagError{Tag: tag, Want: "an integer tag"}
}

// resolveAs resolves v after checking it carries the given object tag.
func (e *Env) resolveAs(v Val, tag Tag) (HostObject, error) {
	if v.Tag() != tag {
		return nil, &InvalidTagError{Tag: v.Tag(), Want: tag.String()}
	}
	return e.Resolve(v)
}
