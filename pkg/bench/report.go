package bench

import (
	"math"
	"time"
)

// Timing is the record of one timed pass: the monotonic start and end
// timestamps and the derived elapsed duration in seconds.
type Timing struct {
	Iteration int       `json:"iteration"` // 1-based
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Seconds   float64   `json:"seconds"`
}

// Report is the aggregate result of a run: the parameters it was run with
// and the per-iteration timings with summary statistics.
type Report struct {
	PID        int      `json:"pid"`
	Size       int      `json:"size"`
	Iterations int      `json:"iterations"`
	Fill       int32    `json:"fill"`
	Transform  string   `json:"transform"`
	Timings    []Timing `json:"timings"`

	TotalSeconds   float64 `json:"total_seconds"`
	AverageSeconds float64 `json:"average_seconds"`
	MinSeconds     float64 `json:"min_seconds"`
	MaxSeconds     float64 `json:"max_seconds"`
}

// record appends one timing and folds it into the summary statistics.
func (r *Report) record(t Timing) {
	r.Timings = append(r.Timings, t)
	r.TotalSeconds += t.Seconds
	r.AverageSeconds = r.TotalSeconds / float64(len(r.Timings))
	if len(r.Timings) == 1 {
		r.MinSeconds = t.Seconds
		r.MaxSeconds = t.Seconds
		return
	}
	r.MinSeconds = math.Min(r.MinSeconds, t.Seconds)
	r.MaxSeconds = math.Max(r.MaxSeconds, t.Seconds)
}
