// Package solver implements the greedy thread-path search: starting from
// pin 0 it repeatedly draws the chord that covers the most unexplained
// darkness in the residual field, subtracting each chosen line's weight
// from the pixels it crosses.
package solver

import (
	"context"
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"threadart/internal/canonical"
	"threadart/internal/linecache"
	"threadart/internal/pins"
	"threadart/pkg/geometry"
)

// Tuneables of the greedy loop.
// Options overrides exist so hosts can experiment.
const (
	// RecentWindow is the number of most recently visited pins excluded
	// from candidacy, preventing short A-B-A-B oscillations.
	RecentWindow = 20
	// ProgressInterval is the number of applied lines between progress
	// reports. Bounded and independent of the line count so progress is
	// visible for small and large runs alike.
	ProgressInterval = 10
)

// Options carries construction-time overrides for the solver tuneables.
// The zero value selects the defaults above.
type Options struct {
	RecentWindow     int
	ProgressInterval int
	CacheMaxBytes    int64
}

func (o Options) withDefaults() Options {
	if o.RecentWindow <= 0 {
		o.RecentWindow = RecentWindow
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = ProgressInterval
	}
	return o
}

// Generate runs the full pipeline on a decoded source image: shape
// check, canonicalisation, pin placement, line cache construction, and
// the greedy loop. Cancellation through ctx ends the run early and
// returns the partial plan as a successful result.
func Generate(ctx context.Context, src image.Image, p Params, onProgress ProgressFunc) (*Result, error) {
	return GenerateOpts(ctx, src, p, onProgress, Options{})
}

// GenerateBytes decodes PNG, JPEG or TIFF bytes and runs Generate.
func GenerateBytes(ctx context.Context, data []byte, p Params, onProgress ProgressFunc) (*Result, error) {
	img, err := canonical.Decode(data)
	if err != nil {
		return nil, err
	}
	return Generate(ctx, img, p, onProgress)
}

// GenerateOpts is Generate with explicit tuneable overrides.
func GenerateOpts(ctx context.Context, src image.Image, p Params, onProgress ProgressFunc, opts Options) (*Result, error) {
	if ok, errs := p.Validate(); !ok {
		return nil, fmt.Errorf("solver: invalid parameters: %s", strings.Join(errs, "; "))
	}

	b := src.Bounds()
	if err := canonical.CheckSourceBounds(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}

	img, err := canonical.Canonicalize(src, p.ImgSize)
	if err != nil {
		return nil, err
	}
	return Solve(ctx, img, p, onProgress, opts)
}

// Solve runs pin placement, cache construction and the greedy loop on an
// already canonicalised image.
func Solve(ctx context.Context, img *canonical.Canonical, p Params, onProgress ProgressFunc, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	start := time.Now()

	pinCoords, err := pins.Place(p.NPins, p.ImgSize)
	if err != nil {
		return nil, err
	}

	cache, err := linecache.Build(pinCoords, p.ImgSize, p.MinDistance, linecache.Options{MaxBytes: opts.CacheMaxBytes})
	if err != nil {
		return nil, err
	}

	residual := newResidual(img)
	seq, threadLen := runGreedy(ctx, residual, cache, pinCoords, p, onProgress, opts)

	return &Result{
		Parameters:        p,
		PinCoordinates:    pinCoords,
		LineSequence:      seq,
		TotalThreadLength: threadLen,
		ProcessingTimeMS:  float64(time.Since(start)) / float64(time.Millisecond),
		Residual:          residualStats(residual, img.Mask),
	}, nil
}

// newResidual builds the residual darkness field: 255 − luminance inside
// the disc, zero outside it. The field is the solver's sole mutable
// state; every element stays within [0,255].
func newResidual(img *canonical.Canonical) []float32 {
	f := make([]float32, len(img.Lum))
	for i, l := range img.Lum {
		if img.Mask[i] == 0 {
			continue
		}
		f[i] = float32(255 - int(l))
	}
	return f
}

// runGreedy executes the per-step procedure NLines times, or until the
// candidate set empties or ctx is cancelled. Either early exit truncates
// the sequence; neither is an error.
func runGreedy(ctx context.Context, f []float32, cache *linecache.Cache, pinCoords []geometry.PointInt, p Params, onProgress ProgressFunc, opts Options) ([]int, float64) {
	current := 0 // start pin
	seq := make([]int, 1, p.NLines+1)
	seq[0] = current
	recent := newRecentRing(opts.RecentWindow)
	threadLen := 0.0
	lengthScale := p.HoopDiameter / float64(p.ImgSize)
	weight := float32(p.LineWeight)

	for line := 1; line <= p.NLines; line++ {
		chosen := -1
		var bestScore float32

		// Walk ring offsets outward from the exclusion zone. The first
		// admissible candidate seeds the maximum and the scan keeps the
		// earliest offset on ties via strict >.
		for o := p.MinDistance; o <= p.NPins-p.MinDistance-1; o++ {
			cand := (current + o) % p.NPins
			if recent.contains(cand) {
				continue
			}
			seg := cache.Segment(current, cand)
			if seg == nil {
				continue
			}
			var score float32
			for _, idx := range seg {
				score += f[idx]
			}
			if chosen < 0 || score > bestScore {
				chosen = cand
				bestScore = score
			}
		}

		if chosen < 0 {
			log.Printf("solver: candidate set exhausted after %d of %d lines", line-1, p.NLines)
			break
		}

		for _, idx := range cache.Segment(current, chosen) {
			v := f[idx] - weight
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			f[idx] = v
		}

		seq = append(seq, chosen)
		recent.push(chosen)
		threadLen += lengthScale * pinCoords[current].Distance(pinCoords[chosen])
		from := current
		current = chosen

		if line%opts.ProgressInterval == 0 || line == p.NLines {
			emitProgress(onProgress, Progress{
				LinesDrawn:      line,
				TotalLines:      p.NLines,
				PercentComplete: 100 * float64(line) / float64(p.NLines),
				CurrentPin:      from,
				NextPin:         chosen,
				ThreadLength:    threadLen,
			}, seq, pinCoords)

			select {
			case <-ctx.Done():
				log.Printf("solver: cancelled after %d of %d lines", line, p.NLines)
				return seq, threadLen
			default:
			}
		}
	}
	return seq, threadLen
}

// recentRing is a fixed-size ring buffer over the last K visited pins.
type recentRing struct {
	buf  []int
	head int
	n    int
}

func newRecentRing(k int) *recentRing {
	return &recentRing{buf: make([]int, k)}
}

// push appends a pin, evicting the oldest once the buffer is full.
func (r *recentRing) push(pin int) {
	r.buf[r.head] = pin
	r.head = (r.head + 1) % len(r.buf)
	if r.n < len(r.buf) {
		r.n++
	}
}

// contains reports whether pin is among the retained entries.
func (r *recentRing) contains(pin int) bool {
	for i := 0; i < r.n; i++ {
		if r.buf[i] == pin {
			return true
		}
	}
	return false
}
