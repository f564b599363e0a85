// Package mask indexes masking-region shapes and answers the point and
// scanline-interval queries the fill planner uses to avoid them. An Index is
// immutable once built and safe to share read-only across calculators.
package mask

import (
	"math"
	"sort"

	"coatpath/internal/shape"
	"coatpath/pkg/geometry"
)

// Interval is a closed span [Lo, Hi] along a scan line.
type Interval struct {
	Lo, Hi float64
}

// Width returns the interval's length.
func (iv Interval) Width() float64 {
	return iv.Hi - iv.Lo
}

// Axis selects the scan-line orientation for interval queries.
type Axis int

const (
	// Horizontal scan lines run along X at a fixed Y.
	Horizontal Axis = iota
	// Vertical scan lines run along Y at a fixed X.
	Vertical
)

// Frame is the unrotated local frame of a fill shape. Fill geometry is
// computed with the shape un-rotated, so mask queries transform the masks
// into that frame (equivalently: rotate the query into world space) instead
// of rotating the scan lines.
type Frame struct {
	Center   geometry.Point2D
	AngleDeg float64
}

// WorldFrame is the identity frame for unrotated shapes.
var WorldFrame = Frame{}

// FromWorld maps a world point into the frame.
func (f Frame) FromWorld(p geometry.Point2D) geometry.Point2D {
	return geometry.RotateAround(p, f.Center, -f.AngleDeg)
}

// ToWorld maps a frame point back to world space.
func (f Frame) ToWorld(p geometry.Point2D) geometry.Point2D {
	return geometry.RotateAround(p, f.Center, f.AngleDeg)
}

// Index holds the masking shapes of one computation batch: every shape with
// CoatingType masking that is not marked skip-coating.
type Index struct {
	masks []shape.Shape
}

// NewIndex builds an index from all shapes of a batch, keeping only the
// non-skipped masking shapes. The input slice is not retained.
func NewIndex(all []shape.Shape) *Index {
	idx := &Index{}
	for _, s := range all {
		if s.CoatingType == shape.CoatMasking && !s.SkipCoating {
			idx.masks = append(idx.masks, s)
		}
	}
	return idx
}

// HasMasks reports whether any masking shapes are indexed.
func (x *Index) HasMasks() bool {
	return len(x.masks) > 0
}

// IsPointInMask reports whether the world-space point p falls inside any
// masking shape. Rotated masks are handled by rotating the query point into
// the mask's unrotated frame rather than rotating the mask.
func (x *Index) IsPointInMask(p geometry.Point2D) bool {
	for i := range x.masks {
		m := &x.masks[i]
		q := p
		if m.RotationDeg != 0 {
			q = geometry.RotateAround(p, m.RotationCenter(), -m.RotationDeg)
		}
		if m.ContainsPoint(q) {
			return true
		}
	}
	return false
}

// IntervalsAtY returns the sorted, merged list of forbidden x-intervals on
// the world-space horizontal scan line at y.
func (x *Index) IntervalsAtY(y float64) []Interval {
	return x.Spans(Horizontal, y, WorldFrame)
}

// Spans returns the sorted, merged forbidden intervals on the scan line at
// the given coordinate, expressed in the frame's coordinates. For a
// horizontal axis the coordinate is the line's y and the intervals are
// x-spans; for a vertical axis the roles swap.
func (x *Index) Spans(axis Axis, coord float64, frame Frame) []Interval {
	var ivs []Interval
	for i := range x.masks {
		ivs = append(ivs, maskSpans(&x.masks[i], axis, coord, frame)...)
	}
	return Merge(ivs)
}

// ScanBounds returns each mask's axis-aligned bounding box expressed in
// scan space: the frame's coordinates with X/Y swapped for vertical scans,
// so that box X always runs along the scan line. Used by the route-around
// avoidance strategy to plan detours.
func (x *Index) ScanBounds(axis Axis, frame Frame) []geometry.Rect {
	bounds := make([]geometry.Rect, 0, len(x.masks))
	for i := range x.masks {
		pts := maskFramePoints(&x.masks[i], frame)
		if axis == Vertical {
			for j := range pts {
				pts[j].X, pts[j].Y = pts[j].Y, pts[j].X
			}
		}
		bounds = append(bounds, geometry.BoundingBox(pts))
	}
	return bounds
}

// maskSpans computes one mask's forbidden spans on a scan line, in scan
// space (the along-line coordinate).
func maskSpans(m *shape.Shape, axis Axis, coord float64, frame Frame) []Interval {
	if m.Kind == shape.Circle {
		// Rotation only moves a circle's center; the chord formula
		// applies directly in the frame.
		c := frame.FromWorld(worldCircleCenter(m))
		u, v := c.X, c.Y
		if axis == Vertical {
			u, v = v, u
		}
		r := m.EffectiveRadius()
		d := math.Abs(coord - v)
		if d > r {
			return nil
		}
		half := math.Sqrt(r*r - d*d)
		return []Interval{{Lo: u - half, Hi: u + half}}
	}

	pts := maskFramePoints(m, frame)
	if len(pts) < 3 {
		return nil
	}
	if axis == Vertical {
		for i := range pts {
			pts[i].X, pts[i].Y = pts[i].Y, pts[i].X
		}
	}

	xs := geometry.ScanCrossings(pts, coord)
	var ivs []Interval
	for i := 0; i+1 < len(xs); i += 2 {
		ivs = append(ivs, Interval{Lo: xs[i], Hi: xs[i+1]})
	}
	return ivs
}

// worldCircleCenter returns a circle mask's center in world space,
// accounting for the mask's own rotation about its pivot.
func worldCircleCenter(m *shape.Shape) geometry.Point2D {
	c := geometry.NewPoint2D(m.X, m.Y)
	if m.RotationDeg != 0 {
		c = geometry.RotateAround(c, m.RotationCenter(), m.RotationDeg)
	}
	return c
}

// maskFramePoints returns the mask's boundary vertices in the frame's
// coordinates: rectangle corners, polyline points, or a circle's bounding
// square, with the mask's own rotation applied first.
func maskFramePoints(m *shape.Shape, frame Frame) []geometry.Point2D {
	var pts []geometry.Point2D

	switch m.Kind {
	case shape.Rectangle, shape.Image:
		b := m.Bounds()
		pts = []geometry.Point2D{
			{X: b.X, Y: b.Y},
			{X: b.X + b.Width, Y: b.Y},
			{X: b.X + b.Width, Y: b.Y + b.Height},
			{X: b.X, Y: b.Y + b.Height},
		}
	case shape.Polyline:
		pts = make([]geometry.Point2D, len(m.Points))
		copy(pts, m.Points)
	case shape.Circle:
		c := worldCircleCenter(m)
		r := m.EffectiveRadius()
		return []geometry.Point2D{
			frame.FromWorld(c).Sub(geometry.NewPoint2D(r, r)),
			frame.FromWorld(c).Add(geometry.NewPoint2D(r, r)),
		}
	default:
		return nil
	}

	if m.RotationDeg != 0 {
		center := m.RotationCenter()
		for i := range pts {
			pts[i] = geometry.RotateAround(pts[i], center, m.RotationDeg)
		}
	}
	for i := range pts {
		pts[i] = frame.FromWorld(pts[i])
	}
	return pts
}

// Merge sorts intervals by start and folds overlapping or touching ones
// into single spans. The input slice may be reordered.
func Merge(ivs []Interval) []Interval {
	if len(ivs) <= 1 {
		return ivs
	}

	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Lo < ivs[j].Lo })

	merged := ivs[:1]
	for _, iv := range ivs[1:] {
		last := &merged[len(merged)-1]
		if iv.Lo <= last.Hi {
			if iv.Hi > last.Hi {
				last.Hi = iv.Hi
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Subtract removes the forbidden intervals from the allowed span and
// returns the remaining sub-intervals in ascending order. forbidden must be
// sorted and merged (as returned by Spans); sub-intervals of non-positive
// width are dropped.
func Subtract(allowed Interval, forbidden []Interval) []Interval {
	var out []Interval
	cursor := allowed.Lo

	for _, f := range forbidden {
		if f.Hi <= allowed.Lo || f.Lo >= allowed.Hi {
			continue
		}
		if f.Lo > cursor {
			out = append(out, Interval{Lo: cursor, Hi: math.Min(f.Lo, allowed.Hi)})
		}
		if f.Hi > cursor {
			cursor = f.Hi
		}
	}

	if cursor < allowed.Hi {
		out = append(out, Interval{Lo: cursor, Hi: allowed.Hi})
	}
	return out
}
