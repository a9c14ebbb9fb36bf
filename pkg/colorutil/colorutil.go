// Package colorutil provides shared color utilities for the thread-art planner.
package colorutil

import (
	"image/color"
)

// Common colors used for plan previews and overlays.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// Luminance converts 8-bit RGB to 8-bit luma using the ITU-R BT.601
// weights (0.299, 0.587, 0.114). Integer arithmetic gives the exact
// floor of the weighted sum with no float rounding at the 255 boundary.
func Luminance(r, g, b uint8) uint8 {
	return uint8((uint32(r)*299 + uint32(g)*587 + uint32(b)*114) / 1000)
}

// Luminance16 converts the 16-bit premultiplied channels returned by
// color.Color.RGBA() to 8-bit luma.
func Luminance16(r, g, b uint32) uint8 {
	return Luminance(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
