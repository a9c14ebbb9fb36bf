package solver

import (
	"sort"

	"threadart/pkg/geometry"

	"gonum.org/v1/gonum/stat"
)

// Result is the complete outcome of one solver run. A LineSequence
// shorter than NLines+1 means the run stopped early (candidate
// exhaustion or cancellation); that is a warning, not a failure.
type Result struct {
	Parameters        Params              `json:"parameters"`
	PinCoordinates    []geometry.PointInt `json:"pin_coordinates"`
	LineSequence      []int               `json:"line_sequence"`
	TotalThreadLength float64             `json:"total_thread_length"`
	ProcessingTimeMS  float64             `json:"processing_time_ms"`
	Residual          ResidualStats       `json:"residual"`
}

// Truncated reports whether the run placed fewer lines than requested.
func (r *Result) Truncated() bool {
	return len(r.LineSequence) < r.Parameters.NLines+1
}

// ResidualStats summarises the darkness left unexplained inside the disc
// after the run. Lower numbers mean the thread plan reproduces the image
// more closely.
type ResidualStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	P95    float64 `json:"p95"`
	Max    float64 `json:"max"`
}

// residualStats computes summary statistics over the in-disc residual
// values.
func residualStats(f []float32, mask []uint8) ResidualStats {
	vals := make([]float64, 0, len(f))
	for i, v := range f {
		if mask[i] == 1 {
			vals = append(vals, float64(v))
		}
	}
	if len(vals) == 0 {
		return ResidualStats{}
	}
	sort.Float64s(vals)

	return ResidualStats{
		Mean:   stat.Mean(vals, nil),
		StdDev: stat.StdDev(vals, nil),
		Median: stat.Quantile(0.5, stat.Empirical, vals, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, vals, nil),
		Max:    vals[len(vals)-1],
	}
}
