package fill

import (
	"context"
	"math"

	"coatpath/internal/mask"
	"coatpath/internal/settings"
	"coatpath/internal/shape"
	"coatpath/pkg/geometry"
)

// scanPoint maps scan-space coordinates (u along the line, v across lines)
// back to the local frame for the given axis.
func scanPoint(axis mask.Axis, u, v float64) geometry.Point2D {
	if axis == mask.Vertical {
		return geometry.Point2D{X: v, Y: u}
	}
	return geometry.Point2D{X: u, Y: v}
}

// planScanlines performs boustrophedon fill along the given axis. Line
// centers start at boundStart + coatingWidth/2 and step by lineSpacing; the
// last eligible center sits within coatingWidth/2 of the far bound, with
// ScanTolerance absorbing rounding. Odd-indexed lines are traversed in
// reverse to minimize travel between adjacent lines.
func (p *Planner) planScanlines(ctx context.Context, s *shape.Shape, r settings.Resolved, axis mask.Axis) ([]geometry.Segment, error) {
	if r.LineSpacing <= 0 {
		return nil, nil
	}

	b := s.Bounds()
	if b.IsDegenerate() {
		return nil, nil
	}

	vLo, vHi := b.Y, b.Y+b.Height
	if axis == mask.Vertical {
		vLo, vHi = b.X, b.X+b.Width
	}

	half := r.CoatingWidth / 2
	vStart := vLo + half
	vEnd := vHi - half + ScanTolerance

	frame := mask.Frame{Center: s.RotationCenter(), AngleDeg: s.RotationDeg}
	avoid := p.masks.HasMasks()

	var scanBounds []geometry.Rect
	if avoid && p.Avoidance == AvoidRouteAround {
		scanBounds = p.masks.ScanBounds(axis, frame)
	}

	var segs []geometry.Segment
	for i := 0; ; i++ {
		v := vStart + float64(i)*r.LineSpacing
		if v > vEnd {
			break
		}
		if i > 0 && i%p.yieldEvery() == 0 {
			if err := p.checkpoint(ctx); err != nil {
				return nil, err
			}
		}

		spans := lineSpans(s, axis, v)
		if len(spans) == 0 {
			continue
		}
		if avoid {
			forbidden := p.masks.Spans(axis, v, frame)
			spans = subtractAll(spans, forbidden)
			if len(spans) == 0 {
				continue
			}
		}

		line := p.lineSegments(axis, v, spans, scanBounds, half)
		if i%2 == 1 {
			reverseLine(line)
		}
		segs = append(segs, line...)
	}
	return segs, nil
}

// lineSpans intersects the scan line at v with the shape boundary, in scan
// space. Rectangles yield the full bound-to-bound span, circles a chord,
// closed polylines their even-odd crossing spans. Open polylines have no
// interior and fill to nothing.
func lineSpans(s *shape.Shape, axis mask.Axis, v float64) []mask.Interval {
	switch s.Kind {
	case shape.Rectangle, shape.Image:
		b := s.Bounds()
		if axis == mask.Vertical {
			return []mask.Interval{{Lo: b.Y, Hi: b.Y + b.Height}}
		}
		return []mask.Interval{{Lo: b.X, Hi: b.X + b.Width}}

	case shape.Circle:
		u, c := s.X, s.Y
		if axis == mask.Vertical {
			u, c = s.Y, s.X
		}
		radius := s.EffectiveRadius()
		d := math.Abs(v - c)
		if d > radius {
			return nil
		}
		halfChord := math.Sqrt(radius*radius - d*d)
		return []mask.Interval{{Lo: u - halfChord, Hi: u + halfChord}}

	case shape.Polyline:
		if !geometry.IsClosed(s.Points) {
			return nil
		}
		pts := s.Points
		if axis == mask.Vertical {
			pts = make([]geometry.Point2D, len(s.Points))
			for i, pt := range s.Points {
				pts[i] = geometry.Point2D{X: pt.Y, Y: pt.X}
			}
		}
		xs := geometry.ScanCrossings(pts, v)
		var spans []mask.Interval
		for i := 0; i+1 < len(xs); i += 2 {
			spans = append(spans, mask.Interval{Lo: xs[i], Hi: xs[i+1]})
		}
		return spans

	default:
		return nil
	}
}

// subtractAll removes the forbidden intervals from every allowed span,
// keeping ascending order.
func subtractAll(spans, forbidden []mask.Interval) []mask.Interval {
	if len(forbidden) == 0 {
		return spans
	}
	var out []mask.Interval
	for _, span := range spans {
		out = append(out, mask.Subtract(span, forbidden)...)
	}
	return out
}

// lineSegments converts one scan line's allowed spans into segments in
// ascending order. Under route-around avoidance, consecutive spans are
// joined by a detour skirting the nearest mask edge; under lift avoidance
// the gap stays open for the emitter to lift over.
func (p *Planner) lineSegments(axis mask.Axis, v float64, spans []mask.Interval, scanBounds []geometry.Rect, clearance float64) []geometry.Segment {
	var segs []geometry.Segment
	for i, span := range spans {
		if i > 0 && p.Avoidance == AvoidRouteAround {
			gap := mask.Interval{Lo: spans[i-1].Hi, Hi: span.Lo}
			segs = append(segs, detourSegments(axis, v, gap, scanBounds, clearance)...)
		}
		segs = append(segs, geometry.NewSegment(
			scanPoint(axis, span.Lo, v),
			scanPoint(axis, span.Hi, v),
		))
	}
	return segs
}

// detourSegments routes around the masks blocking the gap: back along the
// scan line to clear the blocking masks' combined bounding box, across its
// nearer side with clearance, and forward to the far span. The connector
// legs run outside the bounding box, never at the gap edges: a mask's
// crossing interval at the scan line can be narrower than its extent at
// other heights (rotated masks), so legs at the gap edges would cut the
// interior. Falls back to an open gap (lift behavior) when no indexed mask
// overlaps the gap.
func detourSegments(axis mask.Axis, v float64, gap mask.Interval, scanBounds []geometry.Rect, clearance float64) []geometry.Segment {
	blocked := false
	uLo, uHi := math.Inf(1), math.Inf(-1)
	vLo, vHi := math.Inf(1), math.Inf(-1)
	for _, b := range scanBounds {
		if b.X >= gap.Hi || b.X+b.Width <= gap.Lo {
			continue
		}
		if v < b.Y || v > b.Y+b.Height {
			continue
		}
		blocked = true
		uLo = math.Min(uLo, b.X)
		uHi = math.Max(uHi, b.X+b.Width)
		vLo = math.Min(vLo, b.Y)
		vHi = math.Max(vHi, b.Y+b.Height)
	}
	if !blocked {
		return nil
	}

	vEdge := vLo - clearance
	if v-vLo > vHi-v {
		vEdge = vHi + clearance
	}
	uEnter := math.Min(gap.Lo, uLo-clearance)
	uExit := math.Max(gap.Hi, uHi+clearance)

	segs := make([]geometry.Segment, 0, 5)
	cursor := scanPoint(axis, gap.Lo, v)
	if uEnter < gap.Lo {
		next := scanPoint(axis, uEnter, v)
		segs = append(segs, geometry.NewSegment(cursor, next))
		cursor = next
	}
	a := scanPoint(axis, uEnter, vEdge)
	b := scanPoint(axis, uExit, vEdge)
	exit := scanPoint(axis, uExit, v)
	segs = append(segs,
		geometry.NewSegment(cursor, a),
		geometry.NewSegment(a, b),
		geometry.NewSegment(b, exit),
	)
	if uExit > gap.Hi {
		segs = append(segs, geometry.NewSegment(exit, scanPoint(axis, gap.Hi, v)))
	}
	return segs
}

// reverseLine reverses the traversal of one scan line in place: segment
// order flips and each segment swaps start and end.
func reverseLine(line []geometry.Segment) {
	for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
		line[i], line[j] = line[j], line[i]
	}
	for i := range line {
		line[i] = line[i].Reversed()
	}
}
