package fill

import (
	"context"

	"coatpath/internal/outline"
	"coatpath/internal/settings"
	"coatpath/internal/shape"
	"coatpath/pkg/geometry"
)

// planConcentric fills the shape with nested same-shape rings stepping
// inward from the boundary. Shapes smaller than the coating width in either
// dimension produce zero segments: the early return prevents inverted
// rings. Non-positive line spacing truncates after the first ring.
func (p *Planner) planConcentric(ctx context.Context, s *shape.Shape, r settings.Resolved) ([]geometry.Segment, error) {
	switch s.Kind {
	case shape.Rectangle, shape.Image:
		return p.concentricRect(ctx, s.Bounds(), r)
	case shape.Circle:
		return p.concentricCircle(ctx, geometry.NewPoint2D(s.X, s.Y), s.EffectiveRadius(), r)
	case shape.Polyline:
		// Concentric offsetting is not defined for polylines.
		return nil, nil
	default:
		return nil, &shape.UnsupportedKindError{Kind: s.Kind}
	}
}

// concentricRect shrinks width and height together: by coatingWidth for the
// first ring, then by 2×lineSpacing per subsequent ring, stopping when
// either dimension reaches zero. Rings share the bounds' center.
func (p *Planner) concentricRect(ctx context.Context, b geometry.Rect, r settings.Resolved) ([]geometry.Segment, error) {
	if b.Width <= r.CoatingWidth || b.Height <= r.CoatingWidth {
		return nil, nil
	}

	center := b.Center()
	w := b.Width - r.CoatingWidth
	h := b.Height - r.CoatingWidth

	var segs []geometry.Segment
	for ring := 0; w > 0 && h > 0; ring++ {
		if ring > 0 && ring%p.yieldEvery() == 0 {
			if err := p.checkpoint(ctx); err != nil {
				return nil, err
			}
		}

		tl := geometry.NewPoint2D(center.X-w/2, center.Y-h/2)
		tr := geometry.NewPoint2D(center.X+w/2, center.Y-h/2)
		br := geometry.NewPoint2D(center.X+w/2, center.Y+h/2)
		bl := geometry.NewPoint2D(center.X-w/2, center.Y+h/2)
		segs = append(segs,
			geometry.NewSegment(tl, tr),
			geometry.NewSegment(tr, br),
			geometry.NewSegment(br, bl),
			geometry.NewSegment(bl, tl),
		)

		if r.LineSpacing <= 0 {
			break
		}
		w -= 2 * r.LineSpacing
		h -= 2 * r.LineSpacing
	}
	return segs, nil
}

// concentricCircle shrinks the radius by coatingWidth/2 for the first ring,
// then by lineSpacing per ring, stopping at zero. Every ring uses the chord
// count of the shape's base radius so all rings share vertex angles.
func (p *Planner) concentricCircle(ctx context.Context, center geometry.Point2D, baseRadius float64, r settings.Resolved) ([]geometry.Segment, error) {
	radius := baseRadius - r.CoatingWidth/2
	if radius <= 0 {
		return nil, nil
	}

	chords := outline.CircleChordCount(baseRadius)
	var segs []geometry.Segment
	for ring := 0; radius > 0; ring++ {
		if ring > 0 && ring%p.yieldEvery() == 0 {
			if err := p.checkpoint(ctx); err != nil {
				return nil, err
			}
		}

		pts := geometry.GenerateCirclePoints(center.X, center.Y, radius, chords)
		for i := 0; i < chords; i++ {
			segs = append(segs, geometry.NewSegment(pts[i], pts[(i+1)%chords]))
		}

		if r.LineSpacing <= 0 {
			break
		}
		radius -= r.LineSpacing
	}
	return segs, nil
}
