package canonical_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"threadart/internal/canonical"
)

// uniform builds a w×h RGBA image of one color.
func uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// TestCheckSourceBounds covers the advisory shape limits.
func TestCheckSourceBounds(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		err  error
	}{
		{"OK", 800, 600, nil},
		{"SquareMinimum", 100, 100, nil},
		{"TooSmall", 99, 500, canonical.ErrInputTooSmall},
		{"TooLarge", 4001, 500, canonical.ErrInputTooLarge},
		{"TooWide", 3900, 1200, canonical.ErrInputAspectExtreme},
		{"TooTall", 1200, 3900, canonical.ErrInputAspectExtreme},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := canonical.CheckSourceBounds(tc.w, tc.h)
			if tc.err == nil {
				require.NoError(t, err)
			} else {
				require.True(t, errors.Is(err, tc.err), "got %v", err)
			}
		})
	}
}

// TestValidateSourceBounds verifies the message-list predicate form.
func TestValidateSourceBounds(t *testing.T) {
	ok, msgs := canonical.ValidateSourceBounds(800, 600)
	require.True(t, ok)
	require.Empty(t, msgs)

	ok, msgs = canonical.ValidateSourceBounds(50, 600)
	require.False(t, ok)
	require.Contains(t, msgs, "Image must be at least 100 pixels on each side")
}

// TestCanonicalize_WhiteDisc verifies that a white source yields
// luminance 255 inside the disc with mask 1, and zeroes outside.
func TestCanonicalize_WhiteDisc(t *testing.T) {
	src := uniform(300, 300, color.RGBA{255, 255, 255, 255})
	c, err := canonical.Canonicalize(src, 200)
	require.NoError(t, err)
	require.Equal(t, 200, c.Size)
	require.Len(t, c.Lum, 200*200)
	require.Len(t, c.Mask, 200*200)

	// Centre is inside the disc.
	mid := c.Index(100, 100)
	require.EqualValues(t, 1, c.Mask[mid])
	require.EqualValues(t, 255, c.Lum[mid])

	// Corners are outside.
	for _, idx := range []int{c.Index(0, 0), c.Index(199, 0), c.Index(0, 199), c.Index(199, 199)} {
		require.EqualValues(t, 0, c.Mask[idx])
		require.EqualValues(t, 0, c.Lum[idx])
	}

	// The mask covers roughly π/4 of the square.
	inside := 0
	for _, m := range c.Mask {
		inside += int(m)
	}
	require.InEpsilon(t, float64(200*200)*3.14159/4, float64(inside), 0.02)
}

// TestCanonicalize_Luminance checks the BT.601 weighting on a flat color.
func TestCanonicalize_Luminance(t *testing.T) {
	// (100*299 + 150*587 + 200*114) / 1000 = 140
	src := uniform(200, 200, color.RGBA{100, 150, 200, 255})
	c, err := canonical.Canonicalize(src, 100)
	require.NoError(t, err)
	require.EqualValues(t, 140, c.Lum[c.Index(50, 50)])
}

// TestCanonicalize_CenterCrop verifies that a wide source is cropped to
// its centred square: the bright centre band fills the whole disc.
func TestCanonicalize_CenterCrop(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 300, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 300; x++ {
			if x >= 100 && x < 200 {
				src.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				src.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}

	c, err := canonical.Canonicalize(src, 100)
	require.NoError(t, err)

	// Everything inside the disc comes from the white band.
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			idx := c.Index(x, y)
			if c.Mask[idx] == 1 {
				require.EqualValues(t, 255, c.Lum[idx], "pixel (%d,%d)", x, y)
			}
		}
	}
}

// TestCanonicalize_RejectsTinyTarget rejects targets below the minimum
// working size.
func TestCanonicalize_RejectsTinyTarget(t *testing.T) {
	src := uniform(200, 200, color.RGBA{255, 255, 255, 255})
	_, err := canonical.Canonicalize(src, 99)
	require.Error(t, err)
}

// TestDecode round-trips a PNG through the byte-level decoder.
func TestDecode(t *testing.T) {
	src := uniform(120, 120, color.RGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := canonical.Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 120, img.Bounds().Dx())

	_, err = canonical.Decode([]byte("not an image"))
	require.Error(t, err)
}
