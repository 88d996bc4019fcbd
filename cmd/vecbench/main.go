// Package main implements the vecbench CLI driver.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"

	"github.com/armperf/vecbench/internal/cpuinfo"
	"github.com/armperf/vecbench/pkg/bench"
)

// Config holds all command-line configuration options for the benchmark.
type Config struct {
	Size       int    // buffer length in elements
	Iterations int    // number of timed passes
	Fill       int32  // initial value of every element
	Transform  string // kernel to run
	Verbose    bool   // enables slog diagnostics on stderr
	JSON       bool   // emit a JSON report instead of the plain lines
	Profile    bool   // enables CPU and memory profiling
}

const exitError = 2

var (
	// Set via ldflags during build.
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

var cfg Config

func main() {
	var rootCmd = &cobra.Command{
		Use:   "vecbench",
		Short: "Time a vectorizable loop over a large buffer",
		Long: `vecbench measures the wall-clock cost of a branch-free elementwise
transform applied in place to a large int32 buffer, once per iteration.

Build it with different compiler versions or GOARCH/GOAMD64 settings and
compare the reported times to observe the effect of auto-vectorization.
The PID printed at startup lets you attach an external sampling profiler
to the running process.`,
		Example: `  vecbench                                   # canonical run: 100M elements, 5 passes
  vecbench --size 1000000 --iterations 10    # smaller, quicker run
  vecbench --transform triad                 # STREAM-triad-shaped kernel
  vecbench --json > report.json              # machine-readable report
  vecbench cpuinfo                           # show host SIMD features`,
		Args:               cobra.NoArgs,
		RunE:               runCommand,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Version:            version,
	}

	// Set custom version template to include build info.
	rootCmd.SetVersionTemplate(fmt.Sprintf("vecbench version %s\n  commit: %s\n  built:  %s\n", version, gitCommit, buildTime))

	// Define flags.
	rootCmd.Flags().IntVar(&cfg.Size, "size", bench.DefaultSize, "Buffer length in elements")
	rootCmd.Flags().IntVar(&cfg.Iterations, "iterations", bench.DefaultIterations, "Number of timed passes over the buffer")
	rootCmd.Flags().Int32Var(&cfg.Fill, "fill", bench.DefaultFill, "Initial value of every element")
	rootCmd.Flags().StringVar(&cfg.Transform, "transform", bench.DefaultTransform, "Kernel to run (see --help for built-ins)")
	rootCmd.Flags().BoolVar(&cfg.JSON, "json", false, "Output a JSON report instead of the plain measurement lines")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.Profile, "profile", false, "Enable CPU and memory profiling (writes cpu.prof and mem.prof to current directory)")

	rootCmd.AddCommand(cpuinfoCommand())

	if err := rootCmd.Execute(); err != nil {
		_ = teardown(nil, nil)
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(exitError)
	}
}

func runCommand(cmd *cobra.Command, _ []string) error {
	opts := bench.Options{
		Size:       cfg.Size,
		Iterations: cfg.Iterations,
		Fill:       cfg.Fill,
		Transform:  cfg.Transform,
	}

	slog.Info("starting benchmark", "size", opts.Size, "iterations", opts.Iterations,
		"fill", opts.Fill, "transform", opts.Transform)

	runner, err := bench.NewRunner(opts, measurementWriter())
	if err != nil {
		return err
	}

	report, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run benchmark: %w", err)
	}
	slog.Info("benchmark completed",
		"total_seconds", report.TotalSeconds,
		"average_seconds", report.AverageSeconds,
		"min_seconds", report.MinSeconds,
		"max_seconds", report.MaxSeconds)

	if cfg.JSON {
		return writeJSONReport(os.Stdout, report)
	}
	return nil
}

// measurementWriter picks where the plain measurement lines go. In JSON
// mode they are suppressed; the report carries the same data.
func measurementWriter() io.Writer {
	if cfg.JSON {
		return io.Discard
	}
	return os.Stdout
}

// jReport is the JSON output envelope.
type jReport struct {
	Report    *bench.Report `json:"report"`
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
}

func writeJSONReport(out io.Writer, report *bench.Report) error {
	data, err := json.MarshalIndent(jReport{
		Report:    report,
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling json report: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func cpuinfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cpuinfo",
		Short: "Print the host's SIMD feature flags",
		Long: `cpuinfo reports GOOS, GOARCH, the CPU count, and the vector
instruction-set extensions the host exposes (NEON/SVE on arm64, the
SSE/AVX families on amd64). Check it before comparing builds so you know
what vector hardware the results reflect.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cpuinfo.Fprint(os.Stdout)
			return nil
		},
	}
}

var cpuProfile *os.File

func setup(_ *cobra.Command, _ []string) error {
	// Disable logger unless verbose flag is set.
	slog.SetDefault(slog.New(slog.DiscardHandler))
	if cfg.Verbose {
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
		if cfg.JSON {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		}
		logger := slog.New(handler)
		slog.SetDefault(logger)
	}

	if !cfg.Profile {
		return nil
	}

	// Start CPU profiling.
	var err error
	cpuProfile, err = os.Create("cpu.prof")
	if err != nil {
		return fmt.Errorf("creating cpu.prof: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuProfile); err != nil {
		_ = cpuProfile.Close()
		return fmt.Errorf("starting CPU profile: %w", err)
	}
	slog.Info("cpu profiling started", "file", "cpu.prof")
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if !cfg.Profile || cpuProfile == nil {
		return nil
	}

	// Stop CPU profiling and close file.
	pprof.StopCPUProfile()
	defer cpuProfile.Close()
	slog.Info("cpu profiling stopped", "file", "cpu.prof")

	// Write memory profile.
	memFile, err := os.Create("mem.prof")
	if err != nil {
		return fmt.Errorf("creating mem.prof: %w", err)
	}
	defer memFile.Close()
	runtime.GC() // Get up-to-date statistics
	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("writing memory profile: %w", err)
	}
	slog.Info("memory profiling completed", "file", "mem.prof")
	return nil
}
