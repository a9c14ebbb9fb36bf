// Package render produces a static preview of a finished thread plan:
// the chord sequence composited onto a white canvas with per-line alpha,
// so overlapping threads darken the way layered thread does.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"threadart/pkg/colorutil"
	"threadart/pkg/geometry"
)

// Options configures preview rendering.
type Options struct {
	// LineAlpha is the opacity of a single thread, 0-255.
	LineAlpha uint8
	// DrawPins overlays the pin positions as small dots.
	DrawPins bool
	// PinRadius is the dot radius in pixels when DrawPins is set.
	PinRadius int
}

// DefaultOptions returns preview settings that read well for a few
// thousand lines at 500px.
func DefaultOptions() Options {
	return Options{
		LineAlpha: 32,
		DrawPins:  true,
		PinRadius: 2,
	}
}

// Sequence composites the chord sequence onto a size×size white canvas.
func Sequence(pinCoords []geometry.PointInt, seq []int, size int, opts Options) (*image.RGBA, error) {
	for _, p := range seq {
		if p < 0 || p >= len(pinCoords) {
			return nil, fmt.Errorf("render: pin index %d out of range", p)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill(img, colorutil.White)

	for i := 0; i+1 < len(seq); i++ {
		a := pinCoords[seq[i]]
		b := pinCoords[seq[i+1]]
		blendLine(img, a.X, a.Y, b.X, b.Y, opts.LineAlpha)
	}

	if opts.DrawPins {
		for _, p := range pinCoords {
			fillCircle(img, p.X, p.Y, opts.PinRadius, colorutil.Red)
		}
	}
	return img, nil
}

// SavePNG writes the preview image to a file.
func SavePNG(img image.Image, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: could not create %s: %w", path, err)
	}
	defer out.Close()
	return png.Encode(out, img)
}

// fill paints the entire canvas with a solid color.
func fill(img *image.RGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

// blendLine darkens the pixels along the segment by alpha, stepping one
// sample per pixel of Euclidean length.
func blendLine(img *image.RGBA, x1, y1, x2, y2 int, alpha uint8) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	steps := int(math.Ceil(math.Sqrt(dx*dx + dy*dy)))
	if steps == 0 {
		blendPixel(img, x1, y1, alpha)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(float64(x1) + dx*t))
		y := int(math.Round(float64(y1) + dy*t))
		blendPixel(img, x, y, alpha)
	}
}

// blendPixel composites black at the given opacity over one pixel.
func blendPixel(img *image.RGBA, x, y int, alpha uint8) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	o := img.PixOffset(x, y)
	inv := uint32(255 - alpha)
	img.Pix[o+0] = uint8(uint32(img.Pix[o+0]) * inv / 255)
	img.Pix[o+1] = uint8(uint32(img.Pix[o+1]) * inv / 255)
	img.Pix[o+2] = uint8(uint32(img.Pix[o+2]) * inv / 255)
}

// fillCircle fills a disc with the given color.
func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	b := img.Bounds()
	for y := cy - r; y <= cy+r; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := cx - r; x <= cx+r; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			ddx, ddy := x-cx, y-cy
			if ddx*ddx+ddy*ddy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
