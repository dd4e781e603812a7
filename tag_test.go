package hostval

import (
	"errors"
	"testing"
)

func TestVoidIsZeroValue(t *testing.T) {
	var v Val
	if v != Void {
		t.Errorf("Expected zero Val to be Void, got %s", v)
	}
	if v.Tag() != TagVoid {
		t.Errorf("Expected tag %s, got %s", TagVoid, v.Tag())
	}
	if err := v.Validate(); err != nil {
		t.Errorf("Expected Void to validate, got %v", err)
	}
}

func TestTagRanks(t *testing.T) {
	t.Run("every assigned tag has a type and a name", func(t *testing.T) {
		for tag := Tag(0); tag < TagBad; tag++ {
			typ, err := tag.Type()
			if err != nil {
				t.Fatalf("Tag %d: unexpected error %v", tag, err)
			}
			if int(typ) >= NumScValTypes {
				t.Errorf("Tag %s: type %d out of range", tag, typ)
			}
			if tag.String() == "" {
				t.Errorf("Tag %d has no name", tag)
			}
		}
	})

	t.Run("every external type has a tag", func(t *testing.T) {
		seen := make(map[ScValType]bool)
		for tag := Tag(0); tag < TagBad; tag++ {
			typ, _ := tag.Type()
			seen[typ] = true
		}
		for typ := ScValType(0); int(typ) < NumScValTypes; typ++ {
			if !seen[typ] {
				t.Errorf("Type %s has no tag", typ)
			}
		}
	})

	t.Run("small and object tags share a type", func(t *testing.T) {
		for typ := ScValType(0); int(typ) < NumScValTypes; typ++ {
			small, hasSmall := smallTagFor(typ)
			object, hasObject := objectTagFor(typ)
			if hasSmall {
				if got, _ := small.Type(); got != typ {
					t.Errorf("Small tag %s: expected type %s, got %s", small, typ, got)
				}
				if small.IsObject() {
					t.Errorf("Small tag %s reports an object", small)
				}
			}
			if hasObject {
				if got, _ := object.Type(); got != typ {
					t.Errorf("Object tag %s: expected type %s, got %s", object, typ, got)
				}
				if !object.IsObject() {
					t.Errorf("Object tag %s does not report an object", object)
				}
			}
		}
	})

	t.Run("unassigned tag", func(t *testing.T) {
		if TagBad.IsValid() {
			t.Error("Expected TagBad to be invalid")
		}
		if _, err := TagBad.Type(); !errors.Is(err, ErrInvalidTag) {
			t.Errorf("Expected ErrInvalidTag, got %v", err)
		}
		if TagBad.String() != "Bad(28)" {
			t.Errorf("Expected Bad(28), got %s", TagBad)
		}
	})
}

func TestScalarVals(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		for _, b := range []bool{false, true} {
			got, err := BoolVal(b).Bool()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != b {
				t.Errorf("Expected %t, got %t", b, got)
			}
		}
	})

	t.Run("u32", func(t *testing.T) {
		for _, x := range []uint32{0, 1, 1 << 31, ^uint32(0)} {
			got, err := U32Val(x).U32()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != x {
				t.Errorf("Expected %d, got %d", x, got)
			}
		}
	})

	t.Run("i32", func(t *testing.T) {
		for _, x := range []int32{0, -1, 1, -1 << 31, 1<<31 - 1} {
			v := I32Val(x)
			if err := v.Validate(); err != nil {
				t.Errorf("I32(%d): unexpected validation error %v", x, err)
			}
			got, err := v.I32()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != x {
				t.Errorf("Expected %d, got %d", x, got)
			}
		}
	})

	t.Run("wrong tag", func(t *testing.T) {
		_, err := U32Val(1).Bool()
		if !errors.Is(err, ErrInvalidTag) {
			t.Errorf("Expected ErrInvalidTag, got %v", err)
		}
		_, err = BoolVal(true).SmallU64()
		if !errors.Is(err, ErrInvalidTag) {
			t.Errorf("Expected ErrInvalidTag, got %v", err)
		}
		_, err = U32Val(1).Handle()
		if !errors.Is(err, ErrInvalidTag) {
			t.Errorf("Expected ErrInvalidTag, got %v", err)
		}
	})

	t.Run("small signed bodies sign-extend", func(t *testing.T) {
		for _, x := range []int64{0, -1, MinSmallSigned, MaxSmallSigned} {
			v := fromBody(TagI64Small, uint64(x))
			got, err := v.SmallI64()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != x {
				t.Errorf("Expected %d, got %d", x, got)
			}
		}
	})
}

func TestErrorVal(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s := Status{Type: StatusContractError, Code: 0xdeadbeef}
		v, err := NewErrorVal(s)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		got, err := v.Status()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != s {
			t.Errorf("Expected %s, got %s", s, got)
		}
	})

	t.Run("status type overflow", func(t *testing.T) {
		_, err := NewErrorVal(Status{Type: MaxStatusType + 1})
		if !errors.Is(err, ErrOverflow) {
			t.Errorf("Expected ErrOverflow, got %v", err)
		}
	})

	t.Run("largest status type fits", func(t *testing.T) {
		v := MustErrorVal(Status{Type: MaxStatusType, Code: 1})
		got, _ := v.Status()
		if got.Type != MaxStatusType {
			t.Errorf("Expected type %d, got %d", MaxStatusType, got.Type)
		}
	})

	t.Run("MustErrorVal panics on overflow", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic")
			}
		}()
		MustErrorVal(Status{Type: MaxStatusType + 1})
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		val   Val
		valid bool
	}{
		{"void", Void, true},
		{"void with body", fromBody(TagVoid, 1), false},
		{"bool true", BoolVal(true), true},
		{"bool body 2", fromBody(TagBool, 2), false},
		{"u32 max", U32Val(^uint32(0)), true},
		{"u32 wide body", fromBody(TagU32, 1<<32), false},
		{"i32 wide body", fromBody(TagI32, 1<<40), false},
		{"small symbol", fromBody(TagSymbolSmall, encodeSmallSymbol("abc")), true},
		{"small symbol gap", fromBody(TagSymbolSmall, 1), false},
		{"unassigned tag", Val(TagBad), false},
		{"object handle", fromBody(TagVecObject, uint64(newHandle(1, 0))), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.val.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidTag) {
				t.Errorf("Expected ErrInvalidTag, got %v", err)
			}
		})
	}
}

func TestHandle(t *testing.T) {
	h := newHandle(maxEnvID, 9)

	if h.EnvID() != maxEnvID {
		t.Errorf("Expected env id %d, got %d", maxEnvID, h.EnvID())
	}
	if h.Index() != 9 {
		t.Errorf("Expected index 9, got %d", h.Index())
	}

	v := fromBody(TagBytesObject, uint64(h))
	got, err := v.Handle()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != h {
		t.Errorf("Expected handle %s, got %s", h, got)
	}
	if !v.IsObject() {
		t.Error("Expected object value")
	}
}

func TestValString(t *testing.T) {
	tests := []struct {
		val  Val
		want string
	}{
		{Void, "Void"},
		{BoolVal(true), "Bool(true)"},
		{U32Val(7), "U32(7)"},
		{I32Val(-7), "I32(-7)"},
		{MustErrorVal(Status{Type: StatusHostValueError, Code: 3}), "Error(HostValueError/3)"},
		{fromBody(TagSymbolSmall, encodeSmallSymbol("hello")), "Symbol(hello)"},
		{fromBody(TagI64Small, uint64(1<<56-1)), "I64Small(-1)"},
		{fromBody(TagU64Small, 42), "U64Small(42)"},
		{fromBody(TagMapObject, uint64(newHandle(2, 5))), "MapObject(2:5)"},
		{Val(0xff), "Bad(0x00000000000000ff)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.val.String(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
