// Package linecache precomputes, for every admissible pin pair, the flat
// pixel indices of the discretised chord between them. The greedy solver
// reads these segments millions of times, so they are materialised once
// up front as uint32 index arrays.
package linecache

import (
	"errors"
	"fmt"
	"math"

	"threadart/pkg/geometry"
)

// DefaultMaxBytes bounds the materialised cache. The default admits the
// largest practical runs (360 pins at 500px is roughly 300 MB) with headroom.
const DefaultMaxBytes int64 = 1 << 30

// ErrCacheTooLarge indicates the cache for the requested parameters would
// exceed the configured memory limit. Callers should treat this as a
// parameter problem, not a transient failure.
var ErrCacheTooLarge = errors.New("linecache: estimated cache size exceeds limit")

// Cache holds one pixel-index segment per admissible ordered pin pair.
// Segments for (a,b) and (b,a) share the same backing array, so lookups
// never branch on direction.
type Cache struct {
	nPins    int
	imgSize  int
	minDist  int
	segments [][]uint32 // indexed a*nPins+b; nil for inadmissible pairs
}

// Options configures cache construction.
type Options struct {
	// MaxBytes caps the estimated memory footprint. Zero means
	// DefaultMaxBytes.
	MaxBytes int64
}

// EstimateBytes approximates the cache's memory footprint: every
// unordered admissible pair stores about one uint32 per pixel of chord
// length, and the mean chord of a circle of diameter S is 4S/π.
func EstimateBytes(nPins, imgSize int) int64 {
	pairs := int64(nPins) * int64(nPins-1) / 2
	meanChord := 4 * float64(imgSize) / math.Pi
	return int64(float64(pairs)*meanChord) * 4
}

// Build enumerates the chord segments for all pin pairs whose ring
// distance is at least minDistance.
func Build(pinCoords []geometry.PointInt, imgSize, minDistance int, opts Options) (*Cache, error) {
	nPins := len(pinCoords)
	if nPins < 2 {
		return nil, fmt.Errorf("linecache: need at least 2 pins, got %d", nPins)
	}
	if minDistance < 1 || 2*minDistance >= nPins {
		return nil, fmt.Errorf("linecache: min distance %d out of range [1, %d)", minDistance, (nPins+1)/2)
	}

	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}
	if est := EstimateBytes(nPins, imgSize); est > maxBytes {
		return nil, fmt.Errorf("%w: ~%d MB for %d pins at %dpx", ErrCacheTooLarge, est>>20, nPins, imgSize)
	}

	c := &Cache{
		nPins:    nPins,
		imgSize:  imgSize,
		minDist:  minDistance,
		segments: make([][]uint32, nPins*nPins),
	}

	for a := 0; a < nPins; a++ {
		for b := a + 1; b < nPins; b++ {
			d := b - a
			if wrap := nPins - d; wrap < d {
				d = wrap
			}
			if d < minDistance {
				continue
			}
			seg := tracePixels(pinCoords[a], pinCoords[b], imgSize)
			c.segments[a*nPins+b] = seg
			c.segments[b*nPins+a] = seg
		}
	}
	return c, nil
}

// Segment returns the pixel indices of the chord between pins a and b,
// or nil when the pair is inadmissible or out of range. A nil segment is
// safe to range over.
func (c *Cache) Segment(a, b int) []uint32 {
	if a < 0 || b < 0 || a >= c.nPins || b >= c.nPins {
		return nil
	}
	return c.segments[a*c.nPins+b]
}

// NPins returns the number of pins the cache was built for.
func (c *Cache) NPins() int { return c.nPins }

// MinDistance returns the chord-index exclusion the cache was built with.
func (c *Cache) MinDistance() int { return c.minDist }

// Bytes reports the actual footprint of the stored segments.
func (c *Cache) Bytes() int64 {
	var n int64
	for a := 0; a < c.nPins; a++ {
		for b := a + 1; b < c.nPins; b++ {
			n += int64(len(c.segments[a*c.nPins+b])) * 4
		}
	}
	return n
}

// tracePixels discretises the segment from pa to pb as a floored linear
// interpolation with ⌊euclid(pa,pb)⌋ samples; the sample count doubles
// as the recorded line length. The final sample lands on pb up to one
// pixel of floor noise from the step rounding.
func tracePixels(pa, pb geometry.PointInt, imgSize int) []uint32 {
	dist := int(math.Floor(pa.Distance(pb)))
	if dist < 1 {
		return []uint32{}
	}
	if dist == 1 {
		return []uint32{uint32(pa.Y*imgSize + pa.X)}
	}

	stepX := float64(pb.X-pa.X) / float64(dist-1)
	stepY := float64(pb.Y-pa.Y) / float64(dist-1)

	limit := uint32(imgSize * imgSize)
	seg := make([]uint32, 0, dist)
	for i := 0; i < dist; i++ {
		x := int(math.Floor(float64(pa.X) + stepX*float64(i)))
		y := int(math.Floor(float64(pa.Y) + stepY*float64(i)))
		if x < 0 || y < 0 || x >= imgSize {
			continue
		}
		idx := uint32(y*imgSize + x)
		if idx >= limit {
			continue
		}
		seg = append(seg, idx)
	}
	return seg
}
