// Package main provides the coatpath command: it plans toolpaths for every
// shape in a project document and writes the segment lists as JSON, with an
// optional PNG preview.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"coatpath/internal/fill"
	"coatpath/internal/project"
	"coatpath/internal/render"
	"coatpath/internal/settings"
	"coatpath/internal/shape"
	"coatpath/internal/toolpath"
	"coatpath/pkg/geometry"
)

const (
	appName    = "coatpath"
	appVersion = "0.1.0"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		projectPath  = flag.String("project", "", "shape document (.coatproj JSON)")
		settingsPath = flag.String("settings", "", "process settings TOML (overrides document settings)")
		outPath      = flag.String("out", "", "write planned segments as JSON (default stdout)")
		previewPath  = flag.String("preview", "", "write a PNG preview of the planned toolpaths")
		avoidance    = flag.String("avoid", string(fill.AvoidLift), "mask avoidance strategy: lift or route")
		relative     = flag.Bool("relative", false, "emit segments in shape-relative coordinates")
	)
	flag.Parse()

	if *projectPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Printf("Starting %s v%s", appName, appVersion)

	if err := run(*projectPath, *settingsPath, *outPath, *previewPath, *avoidance, *relative); err != nil {
		log.Fatalf("Planning failed: %v", err)
	}
}

func run(projectPath, settingsPath, outPath, previewPath, avoidance string, relative bool) error {
	proj, err := project.Load(projectPath)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	log.Printf("Loaded project %q: %d shapes", proj.Name, len(proj.Shapes))

	cfg := settings.Default()
	if proj.Settings != nil {
		cfg = *proj.Settings
	}
	if settingsPath != "" {
		cfg, err = settings.LoadTOML(settingsPath)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
	}

	calc := toolpath.NewCalculator(proj.Shapes, cfg)
	switch fill.MaskAvoidance(avoidance) {
	case fill.AvoidLift, fill.AvoidRouteAround:
		calc.SetAvoidance(fill.MaskAvoidance(avoidance))
	default:
		return fmt.Errorf("unknown avoidance strategy %q", avoidance)
	}

	opts := toolpath.Options{Relative: relative}

	collector := &planCollector{includeTransform: relative}
	preview := render.NewPreview(render.DefaultOptions())

	consumer := toolpath.Consumer(collector)
	if previewPath != "" {
		consumer = multiConsumer{collector, preview}
	}

	if err := calc.PlanBatch(context.Background(), proj.Shapes, opts, consumer); err != nil {
		return err
	}
	log.Printf("Planned %d shapes, %d segments total", len(collector.plans), collector.total)

	if previewPath != "" {
		if err := preview.WritePNG(previewPath); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
		log.Printf("Preview written to %s", previewPath)
	}

	return collector.write(outPath)
}

// shapePlan is one shape's planned toolpath in the output document.
type shapePlan struct {
	ShapeID     string              `json:"shape_id,omitempty"`
	Kind        shape.Kind          `json:"kind"`
	CoatingType shape.CoatingType   `json:"coating_type"`
	Segments    []geometry.Segment  `json:"segments"`
	Transform   *toolpath.Transform `json:"transform,omitempty"`
}

// planCollector accumulates planned shapes for JSON output. With
// includeTransform set, each plan carries the shape's placement so relative
// segment lists stay reconstructable.
type planCollector struct {
	includeTransform bool

	plans []shapePlan
	total int
}

func (c *planCollector) ConsumeShape(s *shape.Shape, segments []geometry.Segment) error {
	plan := shapePlan{
		ShapeID:     s.ID,
		Kind:        s.Kind,
		CoatingType: s.CoatingType,
		Segments:    segments,
	}
	if c.includeTransform {
		plan.Transform = toolpath.PlacementOf(s)
	}
	c.plans = append(c.plans, plan)
	c.total += len(segments)
	return nil
}

func (c *planCollector) write(path string) error {
	data, err := json.MarshalIndent(c.plans, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// multiConsumer fans one batch out to several consumers.
type multiConsumer []toolpath.Consumer

func (m multiConsumer) ConsumeShape(s *shape.Shape, segments []geometry.Segment) error {
	for _, c := range m {
		if err := c.ConsumeShape(s, segments); err != nil {
			return err
		}
	}
	return nil
}
