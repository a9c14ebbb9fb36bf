// Command solvebench runs the greedy solver against a synthetic radial
// gradient and prints timing and residual statistics. It exercises the
// full pipeline without needing a source photograph.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"threadart/internal/solver"
)

func main() {
	nPins := flag.Int("pins", 240, "Number of pins")
	nLines := flag.Int("lines", 3000, "Number of lines")
	imgSize := flag.Int("size", 500, "Image size in pixels")
	flag.Parse()

	params := solver.DefaultParams()
	params.NPins = *nPins
	params.NLines = *nLines
	params.ImgSize = *imgSize

	if ok, errs := params.Validate(); !ok {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	src := radialGradient(*imgSize)
	result, err := solver.Generate(context.Background(), src, params, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Solver failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Placed %d lines in %.0f ms\n", len(result.LineSequence)-1, result.ProcessingTimeMS)
	fmt.Printf("Thread length: %.2f (hoop units)\n", result.TotalThreadLength)
	fmt.Printf("Residual: mean %.1f, stddev %.1f, median %.1f, p95 %.1f, max %.1f\n",
		result.Residual.Mean, result.Residual.StdDev, result.Residual.Median,
		result.Residual.P95, result.Residual.Max)
}

// radialGradient builds a square test image, dark at the centre fading
// to white at the rim.
func radialGradient(size int) image.Image {
	img := image.NewGray(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - c
			dy := float64(y) - c
			d := (dx*dx + dy*dy) / (c * c)
			if d > 1 {
				d = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(255 * d)})
		}
	}
	return img
}
