// Package hostval provides the host value model of a smart-contract
// environment: a compact tagged value, the object store its handles point
// into, and the self-describing external form values are serialised as.
//
// The two representations agree on order and equality, and converting
// between them round-trips. Packages arbitrary, difftest and fuzz check
// exactly that against generated input.
//
// # Basic Usage
//
// Create an environment, build values and compare or convert them:
//
//	env := hostval.NewEnv()
//
//	a, _ := env.Vec(hostval.U32Val(0))
//	b, _ := env.Vec(hostval.U32Val(0), hostval.U32Val(1))
//
//	c, err := env.Compare(a, b) // -1: a proper prefix orders first
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ext, err := env.ToScVal(b)  // ScvVec{U32(0), U32(1)}
//	back, err := env.FromScVal(ext)
//
// # Tagged Values
//
// A Val is 64 bits: an 8-bit tag and a 56-bit body. Void, Bool, Error,
// U32, I32, short symbols and integers that fit 56 bits are stored inline.
// Everything else is a host object in an Env, and the body holds a Handle
// made of the environment id and the object's index:
//
//   - Integers: U64, I64, Timepoint, Duration, U128, I128, U256, I256
//   - Byte strings: Bytes, String, Symbol (longer than 9 characters)
//   - Containers: Vec, Map (sorted by key, keys unique)
//   - Address: a 32-byte contract hash
//
// Handles resolve only in the environment that allocated them; presenting
// one to another environment fails with ErrUnresolvableHandle.
//
// # External Values
//
// ScVal is a sealed interface over fully inlined variants. Its Vec and Map
// variants are optional, and an absent container has no tagged
// counterpart. FromScVal also rejects illegal symbols and maps with
// duplicate or unordered keys. MarshalScVal and UnmarshalScVal move
// external values over an RLP wire format.
//
// # Ordering
//
// Both representations order first by type rank (see ScValType), then by
// content. Env.Compare resolves objects as it goes; CompareScVal and
// Budget.Compare are pure functions of their arguments.
package hostval
