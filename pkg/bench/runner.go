package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"
)

// Defaults reproduce the canonical run from the Arm vectorization exercise:
// one hundred million int32 elements, doubled in place, five timed passes.
const (
	DefaultSize       = 100_000_000
	DefaultIterations = 5
	DefaultFill       = 1
)

// Options configures a run.
type Options struct {
	Size       int    // buffer length in elements
	Iterations int    // number of timed passes
	Fill       int32  // initial value of every element
	Transform  string // registered kernel name; DefaultTransform if empty
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{
		Size:       DefaultSize,
		Iterations: DefaultIterations,
		Fill:       DefaultFill,
		Transform:  DefaultTransform,
	}
}

// Validate checks the options against the harness invariants: a
// non-negative size, at least one iteration, a known transform, and a
// fill/iteration combination whose result stays within int32.
func (o Options) Validate() error {
	if o.Size < 0 {
		return fmt.Errorf("size must be >= 0, got %d", o.Size)
	}
	if o.Iterations < 1 {
		return fmt.Errorf("iterations must be >= 1, got %d", o.Iterations)
	}
	name := o.Transform
	if name == "" {
		name = DefaultTransform
	}
	tr, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("unknown transform %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	if err := checkOverflow(o.Fill, tr.Growth, o.Iterations); err != nil {
		return err
	}
	return nil
}

// checkOverflow rejects runs where fill·growth^iterations leaves int32.
// Wrapping would break the invariant that every pass measures identical
// work on comparable values, so the bound is enforced up front.
func checkOverflow(fill, growth int32, iterations int) error {
	if fill == 0 || growth == 1 {
		return nil
	}
	v := int64(fill)
	limit := int64(math.MaxInt32)
	if v < 0 {
		v = -v
		limit = -int64(math.MinInt32)
	}
	for i := 1; i <= iterations; i++ {
		v *= int64(growth)
		if v > limit {
			return fmt.Errorf("fill %d with growth factor %d overflows int32 at iteration %d (at most %d iterations fit)",
				fill, growth, i, i-1)
		}
	}
	return nil
}

// Runner executes timed passes of a transform over a sample buffer and
// writes the measurement lines to its output writer. The measured loop is
// single-threaded; nothing else touches the buffer during a run.
type Runner struct {
	opts      Options
	transform Transform
	out       io.Writer
}

// NewRunner validates opts and returns a runner writing its measurement
// lines to out.
func NewRunner(opts Options, out io.Writer) (*Runner, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Transform == "" {
		opts.Transform = DefaultTransform
	}
	tr, _ := Lookup(opts.Transform)
	if out == nil {
		out = io.Discard
	}
	return &Runner{opts: opts, transform: tr, out: out}, nil
}

// Run allocates the buffer, performs the configured number of timed
// passes, and returns the aggregate report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	slog.Debug("allocating sample buffer", "size", r.opts.Size, "fill", r.opts.Fill)
	return r.RunBuffer(ctx, NewBuffer(r.opts.Size, r.opts.Fill))
}

// RunBuffer performs the configured number of timed passes over a buffer
// supplied by the caller, which keeps ownership of it afterwards. The
// buffer's length takes precedence over the configured size. Output lines
// are written as the run progresses so an interrupted run still shows
// completed passes. The context is only consulted between passes; a pass
// in flight always finishes so its timing stays comparable.
func (r *Runner) RunBuffer(ctx context.Context, buf []int32) (*Report, error) {
	report := &Report{
		PID:        os.Getpid(),
		Size:       len(buf),
		Iterations: r.opts.Iterations,
		Fill:       r.opts.Fill,
		Transform:  r.opts.Transform,
		Timings:    make([]Timing, 0, r.opts.Iterations),
	}

	fmt.Fprintf(r.out, "Process ID (PID): %d\n", report.PID)

	for n := 1; n <= r.opts.Iterations; n++ {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("run interrupted before iteration %d: %w", n, err)
		}

		start := time.Now()
		r.transform.Apply(buf)
		end := time.Now()

		t := Timing{
			Iteration: n,
			Start:     start,
			End:       end,
			Seconds:   end.Sub(start).Seconds(),
		}
		report.record(t)
		fmt.Fprintf(r.out, "Elapsed time for iteration %d: %f seconds\n", n, t.Seconds)
	}

	fmt.Fprintf(r.out, "Average elapsed time: %f seconds\n", report.AverageSeconds)
	return report, nil
}

// Run is the convenience entry point: validate opts, run once, report.
func Run(ctx context.Context, opts Options, out io.Writer) (*Report, error) {
	r, err := NewRunner(opts, out)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}
