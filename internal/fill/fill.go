// Package fill plans infill segments for a shape's interior: boustrophedon
// (snake) scanline fill, concentric ring fill, automatic direction choice
// driven by aspect ratio and obstruction density, and masking avoidance.
// Segments are produced in the shape's unrotated local frame; the toolpath
// calculator applies rotation afterwards.
package fill

import (
	"context"
	"runtime"

	"coatpath/internal/mask"
	"coatpath/internal/settings"
	"coatpath/internal/shape"
	"coatpath/pkg/geometry"
)

// ScanTolerance absorbs floating rounding when deciding whether the last
// scan line still fits inside the bounds. Part of the observable contract.
const ScanTolerance = 0.01

// defaultYieldEvery is the scan-line cadence at which long fills yield to
// the host scheduler.
const defaultYieldEvery = 50

// densityGrid is the sampling grid used to estimate obstruction density.
const densityGrid = 5

// densityFlipThreshold is the obstruction density above which the auto
// heuristic flips its direction choice: heavily obstructed regions get
// shorter scan lines so less travel is wasted crossing masked zones.
const densityFlipThreshold = 0.4

// MaskAvoidance selects how fill lines treat masked spans. The two
// strategies produce materially different toolpaths; callers choose.
type MaskAvoidance string

const (
	// AvoidLift emits only the allowed sub-segments of each scan line;
	// the emitter sees the gap and lifts the tool over the mask.
	AvoidLift MaskAvoidance = "lift"
	// AvoidRouteAround additionally connects consecutive sub-segments
	// with an in-plane detour skirting the mask's bounding box on
	// whichever side is nearer to the scan line.
	AvoidRouteAround MaskAvoidance = "route"
)

// Planner generates fill segments. Avoidance and YieldEvery may be adjusted
// before the first Plan call; a Planner must not be mutated while planning.
type Planner struct {
	defaults settings.Coating
	masks    *mask.Index

	// Avoidance selects the masking avoidance strategy. Defaults to
	// AvoidLift, which never emits motion beside a mask.
	Avoidance MaskAvoidance

	// YieldEvery is the number of scan lines between cooperative yield
	// points. A scheduling hint, not a timing guarantee.
	YieldEvery int
}

// NewPlanner creates a fill planner consulting the given mask index.
func NewPlanner(defaults settings.Coating, masks *mask.Index) *Planner {
	if masks == nil {
		masks = mask.NewIndex(nil)
	}
	return &Planner{
		defaults:   defaults,
		masks:      masks,
		Avoidance:  AvoidLift,
		YieldEvery: defaultYieldEvery,
	}
}

// Plan fills the shape's interior according to its resolved fill pattern.
// Degenerate geometry (zero sizes, non-positive spacing beyond the first
// line) yields an empty or truncated list; unknown kinds and patterns are
// contract violations and return typed errors.
func (p *Planner) Plan(ctx context.Context, s *shape.Shape) ([]geometry.Segment, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	r := settings.Effective(s, p.defaults)

	pattern := r.FillPattern
	if pattern == "" || pattern == shape.PatternAuto {
		pattern = p.autoDirection(s)
	}

	switch pattern {
	case shape.PatternConcentric:
		return p.planConcentric(ctx, s, r)
	case shape.PatternHorizontal:
		return p.planScanlines(ctx, s, r, mask.Horizontal)
	case shape.PatternVertical:
		return p.planScanlines(ctx, s, r, mask.Vertical)
	default:
		return nil, &shape.UnsupportedPatternError{Pattern: pattern}
	}
}

// checkpoint is the cooperative yield point: it surfaces cancellation and
// hands the processor back to the scheduler so dense fills do not starve
// the host loop.
func (p *Planner) checkpoint(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runtime.Gosched()
	return nil
}

// yieldEvery returns the configured cadence, guarding a zero value.
func (p *Planner) yieldEvery() int {
	if p.YieldEvery > 0 {
		return p.YieldEvery
	}
	return defaultYieldEvery
}

// autoDirection picks the scan direction for the auto pattern. Without
// masks the lines run along the shape's longer axis; with masks, an
// obstruction density above the threshold flips that choice.
func (p *Planner) autoDirection(s *shape.Shape) shape.FillPattern {
	b := s.Bounds()
	pattern := shape.PatternHorizontal
	if b.Height > b.Width {
		pattern = shape.PatternVertical
	}

	if !p.masks.HasMasks() {
		return pattern
	}
	if p.obstructionDensity(s) > densityFlipThreshold {
		if pattern == shape.PatternHorizontal {
			return shape.PatternVertical
		}
		return shape.PatternHorizontal
	}
	return pattern
}

// obstructionDensity samples a densityGrid×densityGrid point grid across
// the shape's bounds and returns the fraction of in-shape samples that also
// fall inside a mask. Samples outside the boundary carry no information
// about the interior and are excluded from the denominator.
func (p *Planner) obstructionDensity(s *shape.Shape) float64 {
	b := s.Bounds()
	if b.IsDegenerate() {
		return 0
	}

	frame := mask.Frame{Center: s.RotationCenter(), AngleDeg: s.RotationDeg}
	inShape, masked := 0, 0

	for iy := 0; iy < densityGrid; iy++ {
		for ix := 0; ix < densityGrid; ix++ {
			local := geometry.NewPoint2D(
				b.X+(float64(ix)+0.5)*b.Width/densityGrid,
				b.Y+(float64(iy)+0.5)*b.Height/densityGrid,
			)
			if !s.ContainsPoint(local) {
				continue
			}
			inShape++
			if p.masks.IsPointInMask(frame.ToWorld(local)) {
				masked++
			}
		}
	}

	if inShape == 0 {
		return 0
	}
	return float64(masked) / float64(inShape)
}
