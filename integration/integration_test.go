package integration

import (
	"os"
	"strconv"
	"testing"

	"github.com/ethereum/go-ethereum/log"

	hostval "github.com/branched-services/go-hostval"
	"github.com/branched-services/go-hostval/difftest"
)

// defaultCases is the sweep length when PROPTEST_CASES is unset.
const defaultCases = 100000

func envInt(t *testing.T, key string, def int64) int64 {
	t.Helper()
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		t.Fatalf("Invalid %s %q: %v", key, s, err)
	}
	return n
}

func skipUnlessIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "1" {
		t.Skip("Set INTEGRATION_TEST=1 to run integration tests")
	}
}

func TestPropertySweep(t *testing.T) {
	skipUnlessIntegration(t)

	cases := int(envInt(t, "PROPTEST_CASES", defaultCases))
	seed := envInt(t, "PROPTEST_SEED", 0)
	logger := log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelWarn, false))

	sweeps := []struct {
		name     string
		check    difftest.Check
		depth    int
		elements int
	}{
		{"tagged pairs", difftest.CheckValPair, 8, 6},
		{"external pairs", difftest.CheckScValPair, 8, 6},
		{"deep tagged pairs", difftest.CheckValPair, 24, 3},
		{"wide external pairs", difftest.CheckScValPair, 4, 32},
	}

	for _, sw := range sweeps {
		t.Run(sw.name, func(t *testing.T) {
			stats := difftest.Run(t, sw.check,
				difftest.WithCases(cases),
				difftest.WithSeed(seed),
				difftest.WithMaxDepth(sw.depth),
				difftest.WithMaxElements(sw.elements),
				difftest.WithLogger(logger),
			)
			t.Logf("%d passed, %d skipped, %d known exceptions", stats.Passed, stats.Skipped, stats.Known)
			if stats.Passed == 0 {
				t.Error("Expected at least one case to pass")
			}
		})
	}
}

func TestScenarios(t *testing.T) {
	skipUnlessIntegration(t)

	scenarios := map[string]func(*hostval.Env) error{
		"vec prefix":      difftest.VecPrefixScenario,
		"absent map":      difftest.AbsentMapScenario,
		"symbol alphabet": difftest.SymbolAlphabetScenario,
		"duplicate key":   difftest.DuplicateKeyScenario,
	}
	for name, fn := range scenarios {
		t.Run(name, func(t *testing.T) {
			if err := fn(hostval.NewEnv()); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestSharedBudget(t *testing.T) {
	skipUnlessIntegration(t)

	// One budget across many environments accumulates every charge
	budget := hostval.NewBudget()
	for i := 0; i < 1000; i++ {
		env := hostval.NewEnv(hostval.WithBudget(budget))
		if err := difftest.VecPrefixScenario(env); err != nil {
			t.Fatal(err)
		}
	}
	t.Logf("Budget after 1000 scenarios: %s", budget)
	if budget.Count(hostval.CostCompare) == 0 || budget.Count(hostval.CostConvert) == 0 {
		t.Errorf("Expected compare and convert charges, got %s", budget)
	}
}
