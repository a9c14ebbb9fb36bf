package solver

import (
	"fmt"
	"math"
)

// Parameter ranges enforced by validation.
const (
	MinPins      = 3
	MaxPins      = 1000
	MinImageSize = 100
	MaxImageSize = 2000
)

// Params is the immutable parameter record for one solver run.
type Params struct {
	NPins        int     `json:"n_pins"`        // pins on the hoop circle
	NLines       int     `json:"n_lines"`       // thread segments to place
	LineWeight   int     `json:"line_weight"`   // darkness removed per line pixel, 1-255
	MinDistance  int     `json:"min_distance"`  // chord-index exclusion around the current pin
	ImgSize      int     `json:"img_size"`      // working raster side in pixels
	HoopDiameter float64 `json:"hoop_diameter"` // physical hoop diameter, scales thread length
}

// DefaultParams returns the built-in default parameter set.
func DefaultParams() Params {
	return Params{
		NPins:        240,
		NLines:       3000,
		LineWeight:   20,
		MinDistance:  20,
		ImgSize:      500,
		HoopDiameter: 0.6,
	}
}

// Validate checks the typed parameter record. It returns whether the
// record is usable plus the full list of user-facing problems, and never
// allocates solver state.
func (p Params) Validate() (bool, []string) {
	var errs []string

	if p.NPins < MinPins {
		errs = append(errs, "Number of pins must be at least 3")
	}
	if p.NPins > MaxPins {
		errs = append(errs, "Number of pins should not exceed 1000 for performance reasons")
	}
	if p.ImgSize < MinImageSize {
		errs = append(errs, "Image size must be at least 100 pixels")
	}
	if p.ImgSize > MaxImageSize {
		errs = append(errs, "Image size should not exceed 2000 pixels for performance reasons")
	}
	if p.NLines < 1 {
		errs = append(errs, "Number of lines must be at least 1")
	}
	if p.LineWeight < 1 || p.LineWeight > 255 {
		errs = append(errs, "Line weight must be between 1 and 255")
	}
	if p.NPins >= MinPins && (p.MinDistance < 1 || 2*p.MinDistance >= p.NPins) {
		errs = append(errs, fmt.Sprintf("Minimum pin distance must be between 1 and %d", (p.NPins-1)/2))
	}
	if !(p.HoopDiameter > 0) {
		errs = append(errs, "Hoop diameter must be positive")
	}

	return len(errs) == 0, errs
}

// ValidateValues validates raw numeric inputs before they are committed
// to a Params record. Host layers that parse user input call this so
// non-integer values produce the dedicated messages instead of being
// silently truncated.
func ValidateValues(nPins, imgSize float64) (bool, []string) {
	var errs []string

	if nPins != math.Trunc(nPins) {
		errs = append(errs, "Number of pins must be an integer")
	} else {
		if nPins < MinPins {
			errs = append(errs, "Number of pins must be at least 3")
		}
		if nPins > MaxPins {
			errs = append(errs, "Number of pins should not exceed 1000 for performance reasons")
		}
	}

	if imgSize != math.Trunc(imgSize) {
		errs = append(errs, "Image size must be an integer")
	} else {
		if imgSize < MinImageSize {
			errs = append(errs, "Image size must be at least 100 pixels")
		}
		if imgSize > MaxImageSize {
			errs = append(errs, "Image size should not exceed 2000 pixels for performance reasons")
		}
	}

	return len(errs) == 0, errs
}
