// Package harness provides the yaml-driven scenario harness used to
// validate the benchmark runner end to end: configured runs, final buffer
// contents, and the exact shape of the console output.
package harness

import (
	"bytes"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/stretchr/testify/require"

	"github.com/armperf/vecbench/pkg/bench"
)

// Scenario is a single end-to-end case loaded from a testdata yaml file.
type Scenario struct {
	// Name identifies the scenario in test output.
	Name string `yaml:"name"`

	// Size is the buffer length in elements.
	Size int `yaml:"size"`

	// Iterations is the number of timed passes.
	Iterations int `yaml:"iterations"`

	// Fill is the initial value of every element.
	Fill int32 `yaml:"fill"`

	// Transform is the kernel name; empty selects the default kernel.
	Transform string `yaml:"transform,omitempty"`

	// Expect describes the outcome to verify.
	Expect Expectation `yaml:"expect"`
}

// Expectation describes what a scenario must produce.
type Expectation struct {
	// Element is the value every buffer element must hold after the run.
	Element *int32 `yaml:"element,omitempty"`

	// TimingLines is the exact number of per-iteration output lines.
	TimingLines int `yaml:"timing_lines,omitempty"`

	// Error, when set, means options validation must fail with a message
	// containing this substring; the run is never started.
	Error string `yaml:"error,omitempty"`
}

var (
	pidLineRe     = regexp.MustCompile(`^Process ID \(PID\): \d+$`)
	elapsedLineRe = regexp.MustCompile(`^Elapsed time for iteration (\d+): (\d+\.\d+) seconds$`)
	averageLineRe = regexp.MustCompile(`^Average elapsed time: (\d+\.\d+) seconds$`)
)

// Run executes one scenario and fails the test on any divergence.
func Run(t *testing.T, sc Scenario) {
	t.Helper()

	opts := bench.Options{
		Size:       sc.Size,
		Iterations: sc.Iterations,
		Fill:       sc.Fill,
		Transform:  sc.Transform,
	}

	if sc.Expect.Error != "" {
		err := opts.Validate()
		require.ErrorContains(t, err, sc.Expect.Error)
		return
	}

	var out bytes.Buffer
	runner, err := bench.NewRunner(opts, &out)
	require.NoError(t, err)

	buf := bench.NewBuffer(sc.Size, sc.Fill)
	report, err := runner.RunBuffer(t.Context(), buf)
	require.NoError(t, err)
	require.Len(t, report.Timings, sc.Iterations)

	verifyOutput(t, out.String(), sc, report)
	if sc.Expect.Element != nil {
		verifyBuffer(t, buf, *sc.Expect.Element)
	}
}

// verifyOutput checks the console lines: one PID line, exactly the
// expected number of timing lines with 1-based indices, and an average
// line consistent with the per-iteration values.
func verifyOutput(t *testing.T, output string, sc Scenario, report *bench.Report) {
	t.Helper()

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	wantTimings := sc.Expect.TimingLines
	if wantTimings == 0 {
		wantTimings = sc.Iterations
	}
	require.Len(t, lines, wantTimings+2, "PID line + timing lines + average line")
	require.Regexp(t, pidLineRe, lines[0])

	var total float64
	for i := 1; i <= wantTimings; i++ {
		m := elapsedLineRe.FindStringSubmatch(lines[i])
		require.NotNil(t, m, "line %d: %q", i, lines[i])
		require.Equal(t, strconv.Itoa(i), m[1], "iteration index must be 1-based and sequential")

		seconds, err := strconv.ParseFloat(m[2], 64)
		require.NoError(t, err)
		require.GreaterOrEqual(t, seconds, 0.0)
		total += seconds
	}

	m := averageLineRe.FindStringSubmatch(lines[wantTimings+1])
	require.NotNil(t, m, "last line: %q", lines[wantTimings+1])
	average, err := strconv.ParseFloat(m[1], 64)
	require.NoError(t, err)

	// The printed values are rounded to six decimals, so the recomputed
	// mean can differ from the printed average by a few rounding steps.
	require.InDelta(t, total/float64(wantTimings), average, 1e-4)
	require.InDelta(t, report.AverageSeconds, average, 1e-4)
}

// verifyBuffer checks every element in parallel chunks; scenario buffers
// can be large enough that a single-goroutine scan dominates test time.
func verifyBuffer(t *testing.T, buf []int32, want int32) {
	t.Helper()
	if len(buf) == 0 {
		return
	}

	workers := runtime.NumCPU()
	chunk := (len(buf) + workers - 1) / workers

	var wg errgroup.Group
	for start := 0; start < len(buf); start += chunk {
		end := min(start+chunk, len(buf))
		wg.Go(func() error {
			for i := start; i < end; i++ {
				if buf[i] != want {
					return &elementMismatch{index: i, got: buf[i], want: want}
				}
			}
			return nil
		})
	}
	require.NoError(t, wg.Wait())
}

type elementMismatch struct {
	index     int
	got, want int32
}

func (e *elementMismatch) Error() string {
	return "buffer[" + strconv.Itoa(e.index) + "] = " + strconv.Itoa(int(e.got)) +
		", want " + strconv.Itoa(int(e.want))
}
