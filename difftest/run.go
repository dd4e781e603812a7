package difftest

import (
	"errors"
	"math/rand"
	"testing"

	fuzz "github.com/google/gofuzz"

	hostval "github.com/branched-services/go-hostval"
	"github.com/branched-services/go-hostval/arbitrary"
)

// Check runs one case against a fresh fuzzer and environment.
type Check func(f *fuzz.Fuzzer, env *hostval.Env) error

// Stats counts case outcomes of a Run.
type Stats struct {
	Passed  int
	Skipped int
	Known   int
}

// Run drives check over seeded cases and fails tb on the first error that
// is neither a skip nor a known exception. Panics fail the case.
func Run(tb testing.TB, check Check, opts ...Option) Stats {
	tb.Helper()

	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	gen := arbitrary.Config{
		MaxDepth:    config.maxDepth,
		MaxElements: config.maxElements,
		NilChance:   0.1,
	}

	var stats Stats
	for i := range config.cases {
		seed := config.seed + int64(i)
		f := arbitrary.NewFuzzer(gen, rand.NewSource(seed))
		env := hostval.NewEnv(hostval.WithLogger(config.logger))

		err := arbitrary.Protect(func() error { return check(f, env) })

		var d *Divergence
		switch {
		case err == nil:
			stats.Passed++
		case errors.Is(err, ErrSkipped):
			stats.Skipped++
			config.logger.Trace("Skipped case", "case", i, "seed", seed, "err", err)
		case errors.As(err, &d) && KnownException(d):
			stats.Known++
			config.logger.Warn("Tolerated known divergence", "case", i, "seed", seed, "property", d.Property, "detail", d.Detail)
		default:
			tb.Fatalf("case %d (seed %d): %v", i, seed, err)
			return stats
		}
	}
	return stats
}
