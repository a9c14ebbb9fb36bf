// Package plan provides the on-disk thread plan document: everything a
// builder needs to string the piece, serialised as versioned JSON.
package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"threadart/internal/solver"
	"threadart/pkg/geometry"
)

// CurrentVersion is the plan document schema version.
const CurrentVersion = 1

// File represents a saved thread plan (.threadplan).
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Source image the plan was generated from, if known.
	SourceImagePath string `json:"source_image,omitempty"`

	// Generation parameters and outputs.
	Parameters        solver.Params        `json:"parameters"`
	PinCoordinates    []geometry.PointInt  `json:"pin_coordinates"`
	LineSequence      []int                `json:"line_sequence"`
	TotalThreadLength float64              `json:"total_thread_length"`
	ProcessingTimeMS  float64              `json:"processing_time_ms"`
	Residual          solver.ResidualStats `json:"residual"`
}

// FromResult wraps a solver result as a plan document.
func FromResult(name, sourcePath string, res *solver.Result) *File {
	now := time.Now()
	return &File{
		Version:           CurrentVersion,
		Name:              name,
		Created:           now,
		Modified:          now,
		SourceImagePath:   sourcePath,
		Parameters:        res.Parameters,
		PinCoordinates:    res.PinCoordinates,
		LineSequence:      res.LineSequence,
		TotalThreadLength: res.TotalThreadLength,
		ProcessingTimeMS:  res.ProcessingTimeMS,
		Residual:          res.Residual,
	}
}

// Load reads a plan from a .threadplan file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("plan: failed to parse %s: %w", path, err)
	}
	if f.Version > CurrentVersion {
		return nil, fmt.Errorf("plan: %s has unsupported version %d", path, f.Version)
	}
	if len(f.LineSequence) > 0 && len(f.PinCoordinates) == 0 {
		return nil, fmt.Errorf("plan: %s has a sequence but no pin coordinates", path)
	}
	return &f, nil
}

// Save writes the plan to a file, updating its modification time.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Lines returns the number of thread segments in the plan.
func (f *File) Lines() int {
	if len(f.LineSequence) == 0 {
		return 0
	}
	return len(f.LineSequence) - 1
}
