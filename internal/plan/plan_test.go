package plan_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"threadart/internal/plan"
	"threadart/internal/solver"
	"threadart/pkg/geometry"
)

func sampleResult() *solver.Result {
	return &solver.Result{
		Parameters: solver.Params{
			NPins: 4, NLines: 3, LineWeight: 20,
			MinDistance: 1, ImgSize: 200, HoopDiameter: 0.5,
		},
		PinCoordinates: []geometry.PointInt{
			{X: 199, Y: 100}, {X: 100, Y: 199}, {X: 0, Y: 100}, {X: 100, Y: 0},
		},
		LineSequence:      []int{0, 2, 0, 2},
		TotalThreadLength: 1.5,
		ProcessingTimeMS:  12.5,
	}
}

// TestSaveLoadRoundTrip verifies a plan survives the disk round trip
// unchanged.
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portrait.threadplan")

	f := plan.FromResult("portrait", "portrait.png", sampleResult())
	require.Equal(t, plan.CurrentVersion, f.Version)
	require.NoError(t, f.Save(path))

	loaded, err := plan.Load(path)
	require.NoError(t, err)
	require.Equal(t, f.Name, loaded.Name)
	require.Equal(t, f.Parameters, loaded.Parameters)
	require.Equal(t, f.PinCoordinates, loaded.PinCoordinates)
	require.Equal(t, f.LineSequence, loaded.LineSequence)
	require.Equal(t, f.TotalThreadLength, loaded.TotalThreadLength)
	require.Equal(t, 3, loaded.Lines())
}

// TestLoad_Errors covers missing files and malformed documents.
func TestLoad_Errors(t *testing.T) {
	_, err := plan.Load(filepath.Join(t.TempDir(), "missing.threadplan"))
	require.Error(t, err)
}

// TestLoad_RejectsFutureVersion verifies forward-incompatible documents
// are refused rather than misread.
func TestLoad_RejectsFutureVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.threadplan")

	f := plan.FromResult("x", "", sampleResult())
	f.Version = plan.CurrentVersion + 1
	require.NoError(t, f.Save(path))

	_, err := plan.Load(path)
	require.Error(t, err)
}
