// Package toolpath orchestrates per-shape toolpath computation: it selects
// the fill or outline strategy, applies rotation, and returns ordered
// segment lists in world or shape-relative coordinates.
package toolpath

import (
	"context"

	"coatpath/internal/fill"
	"coatpath/internal/mask"
	"coatpath/internal/outline"
	"coatpath/internal/settings"
	"coatpath/internal/shape"
	"coatpath/pkg/geometry"
)

// Options controls the coordinate space of a calculation.
type Options struct {
	// Relative subtracts the shape's own translation from every point so
	// callers can work in shape-local space.
	Relative bool
	// IncludeTransform attaches the shape's placement transform to the
	// result for reconstruction.
	IncludeTransform bool
}

// Transform is the placement metadata returned when IncludeTransform is
// set.
type Transform struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	RotationDeg float64 `json:"rotation"`
	ScaleX      float64 `json:"scale_x"`
	ScaleY      float64 `json:"scale_y"`
}

// Result is one shape's computed toolpath.
type Result struct {
	Segments  []geometry.Segment `json:"segments"`
	Transform *Transform         `json:"transform,omitempty"`
}

// PlacementOf returns the shape's placement transform with default scale
// factors normalized to 1.
func PlacementOf(s *shape.Shape) *Transform {
	sx, sy := s.EffectiveScale()
	return &Transform{
		X:           s.X,
		Y:           s.Y,
		RotationDeg: s.RotationDeg,
		ScaleX:      sx,
		ScaleY:      sy,
	}
}

// Consumer receives per-shape segment lists in traversal order. It is the
// seam toward the external G-code emitter and preview layers: segments
// within one shape's fill are spatially adjacent (snake continuity), so a
// consumer can insert minimal travel moves between them.
type Consumer interface {
	ConsumeShape(s *shape.Shape, segments []geometry.Segment) error
}

// Calculator computes toolpaths for one batch of shapes. It holds only
// immutable inputs (settings and the mask index built at construction), so
// distinct calculators may run concurrently and one calculator's results
// are a pure function of its inputs.
type Calculator struct {
	defaults settings.Coating
	fills    *fill.Planner
	outlines *outline.Planner
}

// NewCalculator builds a calculator for a batch. The full shape slice is
// scanned once for masking shapes; it is not retained.
func NewCalculator(all []shape.Shape, defaults settings.Coating) *Calculator {
	masks := mask.NewIndex(all)
	return &Calculator{
		defaults: defaults,
		fills:    fill.NewPlanner(defaults, masks),
		outlines: outline.NewPlanner(defaults),
	}
}

// SetAvoidance selects the masking avoidance strategy for fill planning.
// Must be called before the first Calculate.
func (c *Calculator) SetAvoidance(a fill.MaskAvoidance) {
	c.fills.Avoidance = a
}

// Calculate computes one shape's toolpath. Masking shapes (and any other
// coating type outside fill/outline) yield an empty segment list: they are
// consulted, never planned. Rotation is applied in world space before any
// relative conversion.
func (c *Calculator) Calculate(ctx context.Context, s *shape.Shape, opts Options) (Result, error) {
	var (
		segs []geometry.Segment
		err  error
	)
	switch s.CoatingType {
	case shape.CoatFill:
		segs, err = c.fills.Plan(ctx, s)
	case shape.CoatOutline:
		segs, err = c.outlines.Plan(s)
	default:
		segs = nil
	}
	if err != nil {
		return Result{}, err
	}

	geometry.RotateSegments(segs, s.RotationCenter(), s.RotationDeg)

	if opts.Relative {
		geometry.TranslateSegments(segs, geometry.NewPoint2D(-s.X, -s.Y))
	}

	res := Result{Segments: segs}
	if opts.IncludeTransform {
		res.Transform = PlacementOf(s)
	}
	return res, nil
}

// PlanBatch calculates every plannable shape in order and hands each
// non-empty segment list to the consumer. Masking and skip-coating shapes
// are passed over.
func (c *Calculator) PlanBatch(ctx context.Context, shapes []shape.Shape, opts Options, consumer Consumer) error {
	for i := range shapes {
		s := &shapes[i]
		if s.SkipCoating || s.CoatingType == shape.CoatMasking {
			continue
		}
		res, err := c.Calculate(ctx, s, opts)
		if err != nil {
			return err
		}
		if len(res.Segments) == 0 {
			continue
		}
		if err := consumer.ConsumeShape(s, res.Segments); err != nil {
			return err
		}
	}
	return nil
}
