// Command threadart turns a photograph into a thread-art plan: an
// ordered walk over pins on a hoop whose chords approximate the image's
// tonal distribution.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"threadart/internal/plan"
	"threadart/internal/prefs"
	"threadart/internal/preprocess"
	"threadart/internal/render"
	"threadart/internal/solver"
	"threadart/internal/version"
	"threadart/pkg/geometry"

	_ "golang.org/x/image/tiff"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	userPrefs := prefs.Load()
	defaults := userPrefs.DefaultParams()

	imagePath := flag.String("image", "", "Path to source image (PNG, JPEG, or TIFF)")
	outPath := flag.String("out", "", "Output plan path (default: <image>.threadplan)")
	previewPath := flag.String("preview", "", "Optional preview PNG path")
	nPins := flag.Int("pins", defaults.NPins, "Number of pins on the hoop")
	nLines := flag.Int("lines", defaults.NLines, "Number of thread segments to place")
	lineWeight := flag.Int("weight", defaults.LineWeight, "Darkness removed per line pixel (1-255)")
	minDistance := flag.Int("min-distance", defaults.MinDistance, "Minimum pin-index distance between chord endpoints")
	imgSize := flag.Int("size", defaults.ImgSize, "Working raster side in pixels")
	hoopDiameter := flag.Float64("hoop", defaults.HoopDiameter, "Hoop diameter in meters (scales thread length)")
	enhance := flag.Bool("enhance", false, "Equalize contrast and denoise before solving")
	brightness := flag.Float64("brightness", 0, "Brightness offset applied before solving (-255 to 255)")
	contrast := flag.Float64("contrast", 1, "Contrast gain applied before solving (1 = unchanged)")
	invert := flag.Bool("invert", false, "Invert tones (light thread on dark background)")
	remember := flag.Bool("remember", false, "Store these parameters as future defaults")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("threadart %s (%s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}
	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: threadart -image <path> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	params := solver.Params{
		NPins:        *nPins,
		NLines:       *nLines,
		LineWeight:   *lineWeight,
		MinDistance:  *minDistance,
		ImgSize:      *imgSize,
		HoopDiameter: *hoopDiameter,
	}
	if ok, errs := params.Validate(); !ok {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	src, err := loadImage(*imagePath)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}

	popts := preprocess.Options{
		Brightness: *brightness,
		Contrast:   *contrast,
		Invert:     *invert,
	}
	if *enhance {
		popts.Equalize = true
		popts.BlurSigma = preprocess.DefaultOptions().BlurSigma
	}
	src, err = preprocess.Apply(src, popts)
	if err != nil {
		log.Fatalf("Preprocessing failed: %v", err)
	}

	// Ctrl-C cancels the run and keeps the partial plan.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Solving: %d pins, %d lines, %dpx raster", params.NPins, params.NLines, params.ImgSize)
	result, err := solver.Generate(ctx, src, params, logProgress)
	if err != nil {
		log.Fatalf("Solver failed: %v", err)
	}
	if result.Truncated() {
		log.Printf("Run stopped early: %d of %d lines placed", len(result.LineSequence)-1, params.NLines)
	}
	log.Printf("Thread length: %.1f m, mean residual %.1f, solved in %.0f ms",
		result.TotalThreadLength, result.Residual.Mean, result.ProcessingTimeMS)

	out := *outPath
	if out == "" {
		out = strings.TrimSuffix(*imagePath, filepath.Ext(*imagePath)) + ".threadplan"
	}
	name := strings.TrimSuffix(filepath.Base(*imagePath), filepath.Ext(*imagePath))
	if err := plan.FromResult(name, *imagePath, result).Save(out); err != nil {
		log.Fatalf("Failed to save plan: %v", err)
	}
	log.Printf("Plan written to %s", out)

	if *previewPath != "" {
		img, err := render.Sequence(result.PinCoordinates, result.LineSequence, params.ImgSize, render.DefaultOptions())
		if err != nil {
			log.Fatalf("Preview render failed: %v", err)
		}
		if err := render.SavePNG(img, *previewPath); err != nil {
			log.Fatalf("Failed to save preview: %v", err)
		}
		log.Printf("Preview written to %s", *previewPath)
	}

	if *remember {
		userPrefs.RememberParams(params)
		if err := userPrefs.Save(); err != nil {
			log.Printf("Could not save preferences: %v", err)
		}
	}
}

// logProgress reports solver progress on the standard logger, roughly
// every tenth of the run.
func logProgress(p solver.Progress, _ []int, _ []geometry.PointInt) {
	tenth := p.TotalLines / 10
	if tenth == 0 {
		tenth = 1
	}
	if p.LinesDrawn%tenth == 0 || p.LinesDrawn == p.TotalLines {
		log.Printf("  %3.0f%%  line %d/%d  pin %d -> %d  length %.1f m",
			p.PercentComplete, p.LinesDrawn, p.TotalLines, p.CurrentPin, p.NextPin, p.ThreadLength)
	}
}

// loadImage opens and decodes a source image.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return img, nil
}
