// Package pins computes anchor-pin positions on the hoop's inscribed
// circle and the ring-index arithmetic the solver relies on.
package pins

import (
	"errors"
	"fmt"
	"math"

	"threadart/pkg/geometry"
)

// Valid parameter ranges for pin placement.
const (
	MinPins    = 3
	MaxPins    = 1000
	MinImgSize = 100
	MaxImgSize = 2000
)

// Sentinel errors for pin placement.
var (
	// ErrInvalidPinCount indicates a pin count outside [MinPins, MaxPins].
	ErrInvalidPinCount = errors.New("pins: pin count out of range")
	// ErrInvalidImageSize indicates an image size outside [MinImgSize, MaxImgSize].
	ErrInvalidImageSize = errors.New("pins: image size out of range")
)

// Place returns nPins pin coordinates evenly spaced on the circle of
// radius imgSize/2 − 0.5 about the image centre. Pin 0 sits on the
// positive-x axis; indices increase counter-clockwise in image
// coordinates. Each angle is computed directly from the pin index so no
// floating-point drift accumulates around the ring.
func Place(nPins, imgSize int) ([]geometry.PointInt, error) {
	if nPins < MinPins || nPins > MaxPins {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPinCount, nPins)
	}
	if imgSize < MinImgSize || imgSize > MaxImgSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidImageSize, imgSize)
	}

	center := float64(imgSize) / 2
	radius := center - 0.5 // half-pixel inset keeps pins inside the raster

	coords := make([]geometry.PointInt, nPins)
	for i := 0; i < nPins; i++ {
		angle := 2 * math.Pi * float64(i) / float64(nPins)
		coords[i] = geometry.PointInt{
			X: int(math.Floor(center + radius*math.Cos(angle))),
			Y: int(math.Floor(center + radius*math.Sin(angle))),
		}
	}
	return coords, nil
}

// RingDistance returns the shorter arc distance between pin indices a
// and b on a ring of nPins pins.
func RingDistance(a, b, nPins int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if wrap := nPins - d; wrap < d {
		return wrap
	}
	return d
}

// RingOffset returns the pin index reached by walking o steps
// counter-clockwise from pin a.
func RingOffset(a, o, nPins int) int {
	return (a + o) % nPins
}

// ValidTargets returns the pins reachable from current in one thread,
// walking ring offsets minDistance through nPins−minDistance−1 and
// skipping any pin present in exclude. The walk order (smallest offset
// first) is the tie-break order of the greedy scan.
func ValidTargets(current, minDistance, nPins int, exclude []int) []int {
	excluded := make(map[int]bool, len(exclude))
	for _, p := range exclude {
		excluded[p] = true
	}

	var targets []int
	for o := minDistance; o <= nPins-minDistance-1; o++ {
		cand := RingOffset(current, o, nPins)
		if excluded[cand] {
			continue
		}
		targets = append(targets, cand)
	}
	return targets
}
