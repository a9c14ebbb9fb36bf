package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"threadart/pkg/geometry"
)

// TestPointInt_Distance checks a 3-4-5 triangle in both directions and
// the degenerate zero-length case.
func TestPointInt_Distance(t *testing.T) {
	a := geometry.PointInt{X: 0, Y: 0}
	b := geometry.PointInt{X: 3, Y: 4}
	require.Equal(t, 5.0, a.Distance(b))
	require.Equal(t, 5.0, b.Distance(a))
	require.Zero(t, b.Distance(b))
}
