// Package prefs persists the user's default generation parameters as a
// JSON file under the user config directory, so repeated CLI runs don't
// need the full flag set every time.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"threadart/internal/solver"
)

const prefsFile = "preferences.json"

// Prefs stores planner preferences as a key-value map.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
}

// Load reads preferences from ~/.config/threadart/preferences.json.
// Returns an empty Prefs if the file doesn't exist.
func Load() *Prefs {
	p := &Prefs{
		values: make(map[string]interface{}),
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	p.path = filepath.Join(configDir, "threadart", prefsFile)

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, &p.values)
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// Int returns an integer preference, or fallback if not set. JSON
// numbers unmarshal as float64, so both representations are accepted.
func (p *Prefs) Int(key string, fallback int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	switch n := p.values[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return fallback
}

// Float returns a float64 preference, or fallback if not set.
func (p *Prefs) Float(key string, fallback float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	switch n := p.values[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return fallback
}

// Set stores a preference value.
func (p *Prefs) Set(key string, val interface{}) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// DefaultParams assembles a solver parameter record from stored
// preferences, filling gaps from the built-in defaults.
func (p *Prefs) DefaultParams() solver.Params {
	d := solver.DefaultParams()
	return solver.Params{
		NPins:        p.Int("n_pins", d.NPins),
		NLines:       p.Int("n_lines", d.NLines),
		LineWeight:   p.Int("line_weight", d.LineWeight),
		MinDistance:  p.Int("min_distance", d.MinDistance),
		ImgSize:      p.Int("img_size", d.ImgSize),
		HoopDiameter: p.Float("hoop_diameter", d.HoopDiameter),
	}
}

// RememberParams stores a parameter record as the new defaults.
func (p *Prefs) RememberParams(params solver.Params) {
	p.mu.Lock()
	p.values["n_pins"] = params.NPins
	p.values["n_lines"] = params.NLines
	p.values["line_weight"] = params.LineWeight
	p.values["min_distance"] = params.MinDistance
	p.values["img_size"] = params.ImgSize
	p.values["hoop_diameter"] = params.HoopDiameter
	p.mu.Unlock()
}
