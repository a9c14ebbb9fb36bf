package solver

import (
	"log"

	"threadart/pkg/geometry"
)

// Progress describes the state of a run after a batch of applied lines.
// CurrentPin is the pin the last segment started from; NextPin is the
// pin it arrived at, which the next segment will start from.
type Progress struct {
	LinesDrawn      int     `json:"lines_drawn"`
	TotalLines      int     `json:"total_lines"`
	PercentComplete float64 `json:"percent_complete"`
	CurrentPin      int     `json:"current_pin"`
	NextPin         int     `json:"next_pin"`
	ThreadLength    float64 `json:"thread_length"`
}

// ProgressFunc receives periodic progress reports together with a
// snapshot of the sequence so far and the pin coordinate table. The
// snapshot is the callback's to keep; the coordinate table is shared and
// must not be mutated.
type ProgressFunc func(p Progress, sequence []int, pinCoords []geometry.PointInt)

// emitProgress invokes the callback with a defensive copy of the
// sequence. A panicking callback is logged and swallowed: UI code must
// not be able to derail the solver.
func emitProgress(fn ProgressFunc, p Progress, seq []int, coords []geometry.PointInt) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("solver: progress callback panicked: %v", r)
		}
	}()
	snapshot := make([]int, len(seq))
	copy(snapshot, seq)
	fn(p, snapshot, coords)
}
