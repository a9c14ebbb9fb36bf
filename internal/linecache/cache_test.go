package linecache_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"threadart/internal/linecache"
	"threadart/internal/pins"
	"threadart/pkg/geometry"
)

// TestBuild_Admissibility verifies that pairs closer than the minimum
// ring distance have no segment while all others do.
func TestBuild_Admissibility(t *testing.T) {
	const nPins, imgSize, minDist = 12, 120, 3
	coords, err := pins.Place(nPins, imgSize)
	require.NoError(t, err)

	cache, err := linecache.Build(coords, imgSize, minDist, linecache.Options{})
	require.NoError(t, err)

	for a := 0; a < nPins; a++ {
		for b := 0; b < nPins; b++ {
			if a == b {
				continue
			}
			seg := cache.Segment(a, b)
			if pins.RingDistance(a, b, nPins) < minDist {
				require.Nil(t, seg, "pair (%d,%d) should be inadmissible", a, b)
			} else {
				require.NotNil(t, seg, "pair (%d,%d) should be cached", a, b)
			}
		}
	}
}

// TestBuild_SymmetricSegments verifies that (a,b) and (b,a) resolve to
// the same pixel list.
func TestBuild_SymmetricSegments(t *testing.T) {
	coords, err := pins.Place(24, 200)
	require.NoError(t, err)
	cache, err := linecache.Build(coords, 200, 4, linecache.Options{})
	require.NoError(t, err)

	for a := 0; a < 24; a++ {
		for b := a + 1; b < 24; b++ {
			require.Equal(t, cache.Segment(a, b), cache.Segment(b, a))
		}
	}
}

// TestBuild_LinspaceDiscretisation checks the exact floored-linspace
// pixels of a hand-computed horizontal segment: ⌊euclid⌋ samples with
// step delta/(d−1).
func TestBuild_LinspaceDiscretisation(t *testing.T) {
	// Ring-index layout is irrelevant here; only coordinates matter.
	coords := []geometry.PointInt{
		{X: 0, Y: 0},
		{X: 3, Y: 0},
		{X: 0, Y: 4},
		{X: 9, Y: 9},
	}
	cache, err := linecache.Build(coords, 10, 1, linecache.Options{})
	require.NoError(t, err)

	// (0,0)→(3,0): d=3, step 1.5, x samples 0,1,3.
	require.Equal(t, []uint32{0, 1, 3}, cache.Segment(0, 1))

	// (0,0)→(0,4): d=4, step 4/3, y samples 0,1,2,4.
	require.Equal(t, []uint32{0, 10, 20, 40}, cache.Segment(0, 2))
}

// TestBuild_DegenerateSegments covers d<2: coincident pins produce an
// empty (non-nil) segment; pins one pixel apart record just the start.
func TestBuild_DegenerateSegments(t *testing.T) {
	coords := []geometry.PointInt{
		{X: 5, Y: 5},
		{X: 5, Y: 5},
		{X: 6, Y: 5},
		{X: 0, Y: 0},
	}
	cache, err := linecache.Build(coords, 10, 1, linecache.Options{})
	require.NoError(t, err)

	require.NotNil(t, cache.Segment(0, 1))
	require.Empty(t, cache.Segment(0, 1))
	require.Equal(t, []uint32{55}, cache.Segment(0, 2))
}

// TestBuild_Endpoints verifies that segments start exactly on pin a and
// finish on pin b up to one pixel of floor noise per axis.
func TestBuild_Endpoints(t *testing.T) {
	const nPins, imgSize = 36, 250
	coords, err := pins.Place(nPins, imgSize)
	require.NoError(t, err)
	cache, err := linecache.Build(coords, imgSize, 5, linecache.Options{})
	require.NoError(t, err)

	for a := 0; a < nPins; a++ {
		for b := a + 1; b < nPins; b++ {
			seg := cache.Segment(a, b)
			if len(seg) < 2 {
				continue
			}
			require.Equal(t, uint32(coords[a].Y*imgSize+coords[a].X), seg[0], "pair (%d,%d) start", a, b)

			last := seg[len(seg)-1]
			lx := int(last) % imgSize
			ly := int(last) / imgSize
			require.InDelta(t, coords[b].X, lx, 1, "pair (%d,%d) end x", a, b)
			require.InDelta(t, coords[b].Y, ly, 1, "pair (%d,%d) end y", a, b)
		}
	}
}

// TestBuild_IndicesInRange verifies every stored index addresses a valid
// field pixel.
func TestBuild_IndicesInRange(t *testing.T) {
	const nPins, imgSize = 60, 300
	coords, err := pins.Place(nPins, imgSize)
	require.NoError(t, err)
	cache, err := linecache.Build(coords, imgSize, 10, linecache.Options{})
	require.NoError(t, err)

	limit := uint32(imgSize * imgSize)
	for a := 0; a < nPins; a++ {
		for b := a + 1; b < nPins; b++ {
			for _, idx := range cache.Segment(a, b) {
				require.Less(t, idx, limit)
			}
		}
	}
}

// TestBuild_MemoryLimit verifies the resource guard fires before any
// allocation when the estimate exceeds the configured cap.
func TestBuild_MemoryLimit(t *testing.T) {
	coords, err := pins.Place(240, 500)
	require.NoError(t, err)

	_, err = linecache.Build(coords, 500, 20, linecache.Options{MaxBytes: 1 << 10})
	require.True(t, errors.Is(err, linecache.ErrCacheTooLarge), "got %v", err)
}

// TestBuild_ParamValidation rejects nonsensical pin counts and exclusion
// distances.
func TestBuild_ParamValidation(t *testing.T) {
	coords, err := pins.Place(10, 100)
	require.NoError(t, err)

	_, err = linecache.Build(coords, 100, 0, linecache.Options{})
	require.Error(t, err)
	_, err = linecache.Build(coords, 100, 5, linecache.Options{})
	require.Error(t, err)
	_, err = linecache.Build(coords[:1], 100, 1, linecache.Options{})
	require.Error(t, err)
}

// TestEstimateBytes sanity-checks the estimate at scale: 360 pins at
// 500px should estimate in the hundreds of megabytes.
func TestEstimateBytes(t *testing.T) {
	est := linecache.EstimateBytes(360, 500)
	require.Greater(t, est, int64(100)<<20)
	require.Less(t, est, int64(500)<<20)
}
