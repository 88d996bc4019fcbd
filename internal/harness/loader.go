package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"

	"github.com/stretchr/testify/require"
)

// LoadScenarios reads every *.yaml file under dir, one scenario per file.
// A file without an explicit name gets its base filename as the name.
func LoadScenarios(t *testing.T, dir string) []Scenario {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var scenarios []Scenario
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		scenarios = append(scenarios, loadScenario(t, filepath.Join(dir, entry.Name())))
	}
	return scenarios
}

func loadScenario(t *testing.T, path string) Scenario {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var sc Scenario
	err = yaml.Unmarshal(data, &sc)
	require.NoError(t, err, "parsing %s", path)

	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), ".yaml")
	}
	return sc
}
