// Package outline plans concentric boundary traces: offset rectangle rings,
// chord-approximated circle rings, and raw polyline traversals. Segments are
// produced in the shape's unrotated local frame; the toolpath calculator
// applies rotation afterwards.
package outline

import (
	"math"

	"coatpath/internal/settings"
	"coatpath/internal/shape"
	"coatpath/pkg/geometry"
)

// minCircleChords is the floor on chord count per ring so small circles stay
// visually round.
const minCircleChords = 16

// Planner generates outline traces using the process defaults for any
// coating field a shape leaves unset.
type Planner struct {
	defaults settings.Coating
}

// NewPlanner creates an outline planner.
func NewPlanner(defaults settings.Coating) *Planner {
	return &Planner{defaults: defaults}
}

// Plan produces 1..N concentric boundary traces for the shape. Degenerate
// passes (non-positive width, height or radius) are skipped silently; an
// unknown shape kind is a contract violation and returns an error.
func (p *Planner) Plan(s *shape.Shape) ([]geometry.Segment, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	r := settings.Effective(s, p.defaults)

	switch s.Kind {
	case shape.Rectangle, shape.Image:
		return planRectangle(s.Bounds(), r), nil
	case shape.Circle:
		return planCircle(geometry.NewPoint2D(s.X, s.Y), s.EffectiveRadius(), r), nil
	case shape.Polyline:
		return planPolyline(s.Points), nil
	default:
		return nil, &shape.UnsupportedKindError{Kind: s.Kind}
	}
}

// firstOffset maps the start-point policy to the first pass's offset from
// the boundary: outside grows, inside shrinks, center traces the boundary.
func firstOffset(start shape.OutlineStart, offset float64) float64 {
	switch start {
	case shape.StartOutside:
		return offset
	case shape.StartInside:
		return -offset
	default:
		return 0
	}
}

// planRectangle emits one closed 4-segment trace per pass, traversed
// clockwise from the top-left corner. Subsequent passes step outward by the
// offset each time.
func planRectangle(b geometry.Rect, r settings.Resolved) []geometry.Segment {
	segs := make([]geometry.Segment, 0, 4*r.OutlinePasses)
	offset := firstOffset(r.OutlineStart, r.OutlineOffset)

	for pass := 0; pass < r.OutlinePasses; pass++ {
		ring := b.Inset(-offset)
		offset += r.OutlineOffset
		if ring.IsDegenerate() {
			continue
		}

		tl := geometry.NewPoint2D(ring.X, ring.Y)
		tr := geometry.NewPoint2D(ring.X+ring.Width, ring.Y)
		br := geometry.NewPoint2D(ring.X+ring.Width, ring.Y+ring.Height)
		bl := geometry.NewPoint2D(ring.X, ring.Y+ring.Height)

		segs = append(segs,
			geometry.NewSegment(tl, tr),
			geometry.NewSegment(tr, br),
			geometry.NewSegment(br, bl),
			geometry.NewSegment(bl, tl),
		)
	}
	return segs
}

// CircleChordCount returns the number of straight chords used to
// approximate a ring of the given base radius. The count scales with size
// so chord error stays visually bounded.
func CircleChordCount(baseRadius float64) int {
	n := int(math.Floor(baseRadius * 0.5))
	if n < minCircleChords {
		n = minCircleChords
	}
	return n
}

// planCircle emits one chord-polygon ring per pass. The chord count is
// fixed by the shape's base radius so all passes share vertex angles.
func planCircle(center geometry.Point2D, baseRadius float64, r settings.Resolved) []geometry.Segment {
	chords := CircleChordCount(baseRadius)
	var segs []geometry.Segment
	radius := baseRadius + firstOffset(r.OutlineStart, r.OutlineOffset)

	for pass := 0; pass < r.OutlinePasses; pass++ {
		ringRadius := radius
		radius += r.OutlineOffset
		if ringRadius <= 0 {
			continue
		}

		pts := geometry.GenerateCirclePoints(center.X, center.Y, ringRadius, chords)
		for i := 0; i < chords; i++ {
			segs = append(segs, geometry.NewSegment(pts[i], pts[(i+1)%chords]))
		}
	}
	return segs
}

// planPolyline traverses the raw polyline once, one segment per consecutive
// point pair. Outline offsetting is not defined for open polylines, so the
// pass and offset parameters do not apply.
func planPolyline(points []geometry.Point2D) []geometry.Segment {
	if len(points) < 2 {
		return nil
	}
	segs := make([]geometry.Segment, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		segs = append(segs, geometry.NewSegment(points[i], points[i+1]))
	}
	return segs
}
