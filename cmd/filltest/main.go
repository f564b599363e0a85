// Command filltest renders each fill pattern for a probe shape so pattern
// changes can be inspected visually.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"coatpath/internal/fill"
	"coatpath/internal/render"
	"coatpath/internal/settings"
	"coatpath/internal/shape"
	"coatpath/internal/toolpath"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		outDir    = flag.String("out", ".", "output directory for preview PNGs")
		spacing   = flag.Float64("spacing", 4, "line spacing in mm")
		width     = flag.Float64("width", 2, "coating width in mm")
		rotation  = flag.Float64("rotation", 0, "shape rotation in degrees")
		avoidance = flag.String("avoid", string(fill.AvoidLift), "mask avoidance strategy: lift or route")
		withMask  = flag.Bool("mask", false, "place a circular mask over the probe shapes")
	)
	flag.Parse()

	cfg := settings.Default()
	cfg.LineSpacing = *spacing
	cfg.CoatingWidth = *width

	patterns := []shape.FillPattern{
		shape.PatternHorizontal,
		shape.PatternVertical,
		shape.PatternConcentric,
		shape.PatternAuto,
	}

	for _, pattern := range patterns {
		shapes := probeShapes(pattern, *rotation)
		if *withMask {
			shapes = append(shapes, shape.Shape{
				ID:          "probe-mask",
				Kind:        shape.Circle,
				X:           50,
				Y:           30,
				Radius:      12,
				CoatingType: shape.CoatMasking,
			})
		}

		calc := toolpath.NewCalculator(shapes, cfg)
		calc.SetAvoidance(fill.MaskAvoidance(*avoidance))

		preview := render.NewPreview(render.DefaultOptions())
		err := calc.PlanBatch(context.Background(), shapes, toolpath.Options{}, preview)
		if err != nil {
			log.Fatalf("Planning %s: %v", pattern, err)
		}

		path := filepath.Join(*outDir, fmt.Sprintf("fill-%s.png", pattern))
		if err := preview.WritePNG(path); err != nil {
			log.Fatalf("Writing %s: %v", path, err)
		}
		log.Printf("Wrote %s", path)
	}

	os.Exit(0)
}

// probeShapes builds the standard probe pair: a wide rectangle and a circle
// under the same pattern.
func probeShapes(pattern shape.FillPattern, rotation float64) []shape.Shape {
	return []shape.Shape{
		{
			ID:          "probe-rect",
			Kind:        shape.Rectangle,
			X:           0,
			Y:           0,
			Width:       100,
			Height:      60,
			CoatingType: shape.CoatFill,
			FillPattern: pattern,
			RotationDeg: rotation,
		},
		{
			ID:          "probe-circle",
			Kind:        shape.Circle,
			X:           160,
			Y:           30,
			Radius:      28,
			CoatingType: shape.CoatFill,
			FillPattern: pattern,
			RotationDeg: rotation,
		},
	}
}
