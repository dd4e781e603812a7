package difftest

import (
	"github.com/ethereum/go-ethereum/log"
)

// Option configures Run.
type Option func(*config)

type config struct {
	cases       int
	seed        int64
	maxDepth    int
	maxElements int
	logger      log.Logger
}

func defaultConfig() *config {
	return &config{
		cases:       256,
		seed:        0,
		maxDepth:    8,
		maxElements: 6,
		logger:      log.Root(),
	}
}

// WithCases sets the number of generated cases.
func WithCases(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.cases = n
		}
	}
}

// WithSeed sets the seed of the first case. Case i uses seed+i.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithMaxDepth bounds container nesting of generated values.
func WithMaxDepth(d int) Option {
	return func(c *config) {
		if d > 0 {
			c.maxDepth = d
		}
	}
}

// WithMaxElements bounds container lengths of generated values.
func WithMaxElements(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxElements = n
		}
	}
}

// WithLogger sets the logger for skipped cases and tolerated divergences.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
