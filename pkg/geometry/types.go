// Package geometry provides the 2D primitives shared by the toolpath
// planners: points, segments, rectangles and affine transforms. All
// coordinates are millimeters.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// AxisTolerance is the tolerance used when classifying a segment as
// horizontal or vertical. It is part of the engine's observable contract.
const AxisTolerance = 0.001

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Segment is one straight motion primitive. The ordering of segments within
// a planned list is significant: it defines traversal order.
type Segment struct {
	Start Point2D `json:"start"`
	End   Point2D `json:"end"`
}

// NewSegment creates a segment from start to end.
func NewSegment(start, end Point2D) Segment {
	return Segment{Start: start, End: end}
}

// Reversed returns the segment traversed in the opposite direction.
func (s Segment) Reversed() Segment {
	return Segment{Start: s.End, End: s.Start}
}

// Length returns the segment's length.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// IsHorizontal reports whether both endpoints share a Y coordinate within
// AxisTolerance.
func (s Segment) IsHorizontal() bool {
	return scalar.EqualWithinAbs(s.Start.Y, s.End.Y, AxisTolerance)
}

// IsVertical reports whether both endpoints share an X coordinate within
// AxisTolerance.
func (s Segment) IsVertical() bool {
	return scalar.EqualWithinAbs(s.Start.X, s.End.X, AxisTolerance)
}

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsDegenerate reports whether the rectangle has non-positive width or
// height. Degenerate rectangles plan to empty segment lists.
func (r Rect) IsDegenerate() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inset returns the rectangle shrunk by d on every side. A negative d grows
// the rectangle. The result may be degenerate.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	x2 := math.Max(r.X+r.Width, other.X+other.Width)
	y2 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// GenerateCirclePoints generates n evenly-spaced points around a circle,
// starting at angle 0 (the rightmost point) and proceeding counter-clockwise.
func GenerateCirclePoints(centerX, centerY, radius float64, n int) []Point2D {
	points := make([]Point2D, n)
	for i := 0; i < n; i++ {
		angle := float64(i) * 2.0 * math.Pi / float64(n)
		points[i] = Point2D{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}
	return points
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
