// Package canonical turns an arbitrary source photograph into the square,
// single-channel, circularly masked luminance buffer the solver consumes.
package canonical

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"threadart/pkg/colorutil"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Source image shape limits. These are advisory for hosts: the pipeline
// itself works on any input, but results outside these bounds are either
// too coarse to be useful or needlessly slow.
const (
	MinSourceSide = 100
	MaxSourceSide = 4000
	MaxAspect     = 3.0
)

// Sentinel errors for source-image shape validation.
var (
	// ErrInputTooSmall indicates the shorter source side is below MinSourceSide.
	ErrInputTooSmall = errors.New("canonical: source image too small")
	// ErrInputTooLarge indicates the longer source side exceeds MaxSourceSide.
	ErrInputTooLarge = errors.New("canonical: source image too large")
	// ErrInputAspectExtreme indicates the aspect ratio is outside [1/3, 3].
	ErrInputAspectExtreme = errors.New("canonical: source aspect ratio too extreme")
)

// Canonical is the canonicalised image: a size×size luminance buffer plus
// a parallel 0/1 disc mask. Pixels outside the inscribed circle carry
// Lum=0 and Mask=0.
type Canonical struct {
	Size int
	Lum  []uint8 // length Size², row-major
	Mask []uint8 // length Size², 1 inside the disc
}

// Index returns the flat buffer index for pixel (x, y).
func (c *Canonical) Index(x, y int) int {
	return y*c.Size + x
}

// Decode decodes PNG, JPEG or TIFF image bytes.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// CheckSourceBounds validates the source dimensions against the advisory
// shape limits. Returns nil when the shape is acceptable.
func CheckSourceBounds(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInputTooSmall, w, h)
	}
	if min(w, h) < MinSourceSide {
		return fmt.Errorf("%w: %dx%d (min side %d)", ErrInputTooSmall, w, h, MinSourceSide)
	}
	if max(w, h) > MaxSourceSide {
		return fmt.Errorf("%w: %dx%d (max side %d)", ErrInputTooLarge, w, h, MaxSourceSide)
	}
	aspect := float64(w) / float64(h)
	if aspect < 1.0/MaxAspect || aspect > MaxAspect {
		return fmt.Errorf("%w: %dx%d", ErrInputAspectExtreme, w, h)
	}
	return nil
}

// ValidateSourceBounds is the predicate form of CheckSourceBounds for host
// layers that present validation messages to users.
func ValidateSourceBounds(w, h int) (bool, []string) {
	var msgs []string
	if w < MinSourceSide || h < MinSourceSide {
		msgs = append(msgs, "Image must be at least 100 pixels on each side")
	}
	if w > MaxSourceSide || h > MaxSourceSide {
		msgs = append(msgs, "Image should not exceed 4000 pixels on a side for performance reasons")
	}
	if h > 0 && w > 0 {
		aspect := float64(w) / float64(h)
		if aspect < 1.0/MaxAspect || aspect > MaxAspect {
			msgs = append(msgs, "Image aspect ratio must be between 1:3 and 3:1")
		}
	}
	return len(msgs) == 0, msgs
}

// Canonicalize crops the source to a centred square, scales it to
// size×size with the bilinear resampler, converts to luminance, and
// applies the inscribed-circle mask.
func Canonicalize(src image.Image, size int) (*Canonical, error) {
	if size < MinSourceSide {
		return nil, fmt.Errorf("canonical: target size %d below minimum %d", size, MinSourceSide)
	}
	square := centerSquare(src.Bounds())

	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), src, square, draw.Src, nil)

	c := &Canonical{
		Size: size,
		Lum:  make([]uint8, size*size),
		Mask: make([]uint8, size*size),
	}

	// Disc of radius size/2 about the pixel-grid centre.
	radius := float64(size) / 2
	r2 := radius * radius
	for y := 0; y < size; y++ {
		dy := float64(y) + 0.5 - radius
		row := y * size
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			if dx*dx+dy*dy > r2 {
				continue
			}
			o := scaled.PixOffset(x, y)
			c.Lum[row+x] = colorutil.Luminance(scaled.Pix[o], scaled.Pix[o+1], scaled.Pix[o+2])
			c.Mask[row+x] = 1
		}
	}
	return c, nil
}

// centerSquare returns the largest centred square within bounds, using a
// floored offset on the longer axis.
func centerSquare(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	switch {
	case w > h:
		off := (w - h) / 2
		return image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+h, b.Max.Y)
	case h > w:
		off := (h - w) / 2
		return image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+w)
	default:
		return b
	}
}
