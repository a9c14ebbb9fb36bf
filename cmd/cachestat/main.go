// Command cachestat reports line cache statistics for a parameter set:
// admissible pair count, estimated and actual memory footprint, and the
// chord length distribution. Useful for checking a configuration against
// host memory before a long run.
package main

import (
	"flag"
	"fmt"
	"os"

	"threadart/internal/linecache"
	"threadart/internal/pins"
)

func main() {
	nPins := flag.Int("pins", 240, "Number of pins")
	imgSize := flag.Int("size", 500, "Image size in pixels")
	minDistance := flag.Int("min-distance", 20, "Minimum pin-index distance")
	flag.Parse()

	fmt.Printf("Line cache statistics for %d pins at %dpx (min distance %d)\n",
		*nPins, *imgSize, *minDistance)
	fmt.Printf("Estimated footprint: %d MB\n", linecache.EstimateBytes(*nPins, *imgSize)>>20)

	coords, err := pins.Place(*nPins, *imgSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pin placement failed: %v\n", err)
		os.Exit(1)
	}

	cache, err := linecache.Build(coords, *imgSize, *minDistance, linecache.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cache build failed: %v\n", err)
		os.Exit(1)
	}

	pairs := 0
	minLen, maxLen, totalLen := -1, 0, 0
	for a := 0; a < *nPins; a++ {
		for b := a + 1; b < *nPins; b++ {
			seg := cache.Segment(a, b)
			if seg == nil {
				continue
			}
			pairs++
			totalLen += len(seg)
			if minLen < 0 || len(seg) < minLen {
				minLen = len(seg)
			}
			if len(seg) > maxLen {
				maxLen = len(seg)
			}
		}
	}

	fmt.Printf("Admissible pairs:    %d\n", pairs)
	fmt.Printf("Actual footprint:    %d MB\n", cache.Bytes()>>20)
	if pairs > 0 {
		fmt.Printf("Chord length px:     min %d, mean %d, max %d\n", minLen, totalLen/pairs, maxLen)
	}
}
