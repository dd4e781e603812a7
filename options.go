package hostval

import (
	"github.com/ethereum/go-ethereum/log"
)

// EnvOption configures an Env.
type EnvOption func(*envConfig)

// envConfig holds configuration for NewEnv.
type envConfig struct {
	logger log.Logger
	budget *Budget
}

// defaultEnvConfig returns the default environment configuration.
func defaultEnvConfig() *envConfig {
	return &envConfig{
		logger: log.Root(),
	}
}

// WithLogger sets the logger the environment writes to.
// Default is the root logger.
func WithLogger(logger log.Logger) EnvOption {
	return func(c *envConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBudget sets the budget the environment charges.
// Default is a fresh budget per environment.
func WithBudget(b *Budget) EnvOption {
	return func(c *envConfig) {
		c.budget = b
	}
}
