package harness

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScenarios runs every yaml scenario under testdata/scenarios.
func TestScenarios(t *testing.T) {
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "get current file path")

	scenarioDir := filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "scenarios")
	scenarios := LoadScenarios(t, scenarioDir)
	require.NotEmpty(t, scenarios, "no scenarios found")

	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			t.Parallel()
			Run(t, sc)
		})
	}
}
