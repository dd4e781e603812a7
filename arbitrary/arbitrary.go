// Package arbitrary generates host values from a byte oracle.
//
// Every generator is a prototype: a plain Go value filled by a gofuzz
// Fuzzer that can later be realised inside a hostval.Env. Prototypes whose
// reflection default would produce uninteresting or invalid data implement
// fuzz.Interface themselves.
//
// # Basic Usage
//
//	f := arbitrary.FromBytes(data)
//	var p arbitrary.Val
//	f.Fuzz(&p)
//
//	env := hostval.NewEnv()
//	v, err := p.IntoVal(env)
//
// User-defined records and variants compose their fields' prototypes, see
// Record, Variant and ChooseVariant.
package arbitrary

import (
	"math/rand"

	fuzz "github.com/google/gofuzz"

	hostval "github.com/branched-services/go-hostval"
)

// Prototype is a generated value that can be realised in an environment.
type Prototype interface {
	hostval.IntoVal
}

// Config bounds the shape of generated values.
type Config struct {
	// MaxDepth bounds container nesting. At the bound, values are left at
	// their zero value, which realises as Void or an empty container.
	MaxDepth int

	// MinElements and MaxElements bound container lengths.
	MinElements int
	MaxElements int

	// NilChance is the probability of a nil slice, realised as an empty
	// container.
	NilChance float64
}

// DefaultConfig returns the bounds used by FromBytes and FromSeed.
func DefaultConfig() Config {
	return Config{
		MaxDepth:    8,
		MinElements: 0,
		MaxElements: 6,
		NilChance:   0.1,
	}
}

// NewFuzzer returns a fuzzer drawing from src under the given bounds. A nil
// src keeps gofuzz's time-seeded source.
func NewFuzzer(cfg Config, src rand.Source) *fuzz.Fuzzer {
	f := fuzz.New()
	if src != nil {
		f = f.RandSource(src)
	}
	return configure(f, cfg)
}

// FromBytes returns a fuzzer that deterministically translates data into
// values. Exhausted input falls back to a source seeded from data.
func FromBytes(data []byte) *fuzz.Fuzzer {
	return configure(fuzz.NewFromGoFuzz(data), DefaultConfig())
}

// FromSeed returns a deterministic fuzzer for seed.
func FromSeed(seed int64) *fuzz.Fuzzer {
	return configure(fuzz.NewWithSeed(seed), DefaultConfig())
}

func configure(f *fuzz.Fuzzer, cfg Config) *fuzz.Fuzzer {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	if cfg.MinElements < 0 {
		cfg.MinElements = 0
	}
	if cfg.MaxElements < cfg.MinElements {
		cfg.MaxElements = cfg.MinElements
	}
	if cfg.NilChance < 0 || cfg.NilChance > 1 {
		cfg.NilChance = 0
	}
	return f.NilChance(cfg.NilChance).
		NumElements(cfg.MinElements, cfg.MaxElements).
		MaxDepth(cfg.MaxDepth)
}

// Generate fills a new T from f.
func Generate[T any](f *fuzz.Fuzzer) T {
	var x T
	f.Fuzz(&x)
	return x
}

// gen fills a new T from the continuation.
func gen[T Prototype](c fuzz.Continue) Prototype {
	var x T
	c.Fuzz(&x)
	return x
}
