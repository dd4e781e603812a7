package difftest

import (
	"errors"
	"fmt"

	hostval "github.com/branched-services/go-hostval"
)

// VecPrefixScenario checks that [0] orders before [0, 1] in both forms.
func VecPrefixScenario(env *hostval.Env) error {
	short, err := env.Vec(hostval.U32Val(0))
	if err != nil {
		return err
	}
	long, err := env.Vec(hostval.U32Val(0), hostval.U32Val(1))
	if err != nil {
		return err
	}

	c, err := env.Compare(short, long)
	if err != nil {
		return err
	}
	x := hostval.NewScVec(hostval.ScvU32(0))
	y := hostval.NewScVec(hostval.ScvU32(0), hostval.ScvU32(1))
	if sc := hostval.CompareScVal(x, y); c != -1 || sc != -1 {
		return &Divergence{
			Property: PropScenario,
			Detail:   fmt.Sprintf("vec prefix: tagged %d, external %d, want -1", c, sc),
			Tagged:   []hostval.Val{short, long},
			External: []hostval.ScVal{x, y},
		}
	}
	return CheckVals(env, short, long)
}

// AbsentMapScenario checks that an absent map has no tagged counterpart.
func AbsentMapScenario(env *hostval.Env) error {
	return expectInvalidShape(env, "absent map", hostval.ScvMap{})
}

// SymbolAlphabetScenario checks that a symbol with a character outside its
// alphabet is rejected, however far into the symbol it appears.
func SymbolAlphabetScenario(env *hostval.Env) error {
	for _, s := range []string{"a-b", "-", "abcdefgh.", "abcdefghij$", "é", "a b"} {
		if err := expectInvalidShape(env, "symbol "+s, hostval.ScvSymbol(s)); err != nil {
			return err
		}
	}
	return nil
}

// DuplicateKeyScenario checks that a map with comparator-equal keys is
// rejected.
func DuplicateKeyScenario(env *hostval.Env) error {
	dup := hostval.NewScMap(
		hostval.ScMapEntry{Key: hostval.ScvU64(7), Val: hostval.ScvVoid{}},
		hostval.ScMapEntry{Key: hostval.ScvU64(7), Val: hostval.ScvBool(true)},
	)
	if err := expectInvalidShape(env, "duplicate key", dup); err != nil {
		return err
	}
	wide := hostval.NewScMap(
		hostval.ScMapEntry{Key: hostval.ScvU64(hostval.MaxSmallUnsigned + 1), Val: hostval.ScvVoid{}},
		hostval.ScMapEntry{Key: hostval.ScvU64(hostval.MaxSmallUnsigned + 1), Val: hostval.ScvVoid{}},
	)
	return expectInvalidShape(env, "duplicate object key", wide)
}

func expectInvalidShape(env *hostval.Env, name string, sv hostval.ScVal) error {
	v, err := env.FromScVal(sv)
	if errors.Is(err, hostval.ErrInvalidShape) {
		return nil
	}
	d := &Divergence{
		Property: PropScenario,
		Detail:   fmt.Sprintf("%s: want ErrInvalidShape, got %v", name, err),
		External: []hostval.ScVal{sv},
	}
	if err == nil {
		d.Tagged = []hostval.Val{v}
	}
	return d
}
