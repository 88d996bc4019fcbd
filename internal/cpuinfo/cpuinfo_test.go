package cpuinfo

import (
	"bytes"
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFprint(t *testing.T) {
	var out bytes.Buffer
	Fprint(&out)

	report := out.String()
	require.Contains(t, report, fmt.Sprintf("GOOS: %s\n", runtime.GOOS))
	require.Contains(t, report, fmt.Sprintf("GOARCH: %s\n", runtime.GOARCH))
	require.Contains(t, report, fmt.Sprintf("NumCPU: %d\n", runtime.NumCPU()))

	switch runtime.GOARCH {
	case "arm64":
		require.Contains(t, report, "arm64 vector features:")
		require.Contains(t, report, "SVE:")
	case "amd64":
		require.Contains(t, report, "amd64 vector features:")
		require.Contains(t, report, "AVX2:")
	}
}
