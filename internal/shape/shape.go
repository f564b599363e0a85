// Package shape defines the design shapes the toolpath engine plans:
// rectangles, circles, images (planned as their rectangular bounds) and
// polylines, each annotated with coating intent.
package shape

import (
	"coatpath/pkg/geometry"
)

// Kind identifies a shape's boundary geometry. The planners switch
// exhaustively over Kind; an unknown value surfaces as UnsupportedKindError.
type Kind string

const (
	Rectangle Kind = "rectangle"
	Circle    Kind = "circle"
	Image     Kind = "image"
	Polyline  Kind = "polyline"
)

// CoatingType selects which planner processes a shape. Masking shapes are
// never planned themselves, only consulted by the fill planner.
type CoatingType string

const (
	CoatFill    CoatingType = "fill"
	CoatOutline CoatingType = "outline"
	CoatMasking CoatingType = "masking"
)

// FillPattern selects the infill strategy for fill shapes. The empty value
// inherits the process-wide default.
type FillPattern string

const (
	PatternAuto       FillPattern = "auto"
	PatternHorizontal FillPattern = "horizontal"
	PatternVertical   FillPattern = "vertical"
	PatternConcentric FillPattern = "concentric"
)

// OutlineStart determines where the first outline pass sits relative to the
// shape's boundary.
type OutlineStart string

const (
	StartOutside OutlineStart = "outside"
	StartCenter  OutlineStart = "center"
	StartInside  OutlineStart = "inside"
)

// Shape is a design shape with coating parameters. Geometry fields are
// interpreted per Kind: rectangles and images use X/Y (top-left corner) with
// Width/Height, circles use X/Y (center) with Radius, polylines use Points
// in absolute coordinates.
//
// Zero-valued numeric coating fields inherit the process defaults; see
// settings.Effective.
type Shape struct {
	ID   string `json:"id,omitempty"`
	Kind Kind   `json:"kind"`

	X      float64            `json:"x,omitempty"`
	Y      float64            `json:"y,omitempty"`
	Width  float64            `json:"width,omitempty"`
	Height float64            `json:"height,omitempty"`
	Radius float64            `json:"radius,omitempty"`
	Points []geometry.Point2D `json:"points,omitempty"`

	CoatingType   CoatingType  `json:"coating_type"`
	FillPattern   FillPattern  `json:"fill_pattern,omitempty"`
	LineSpacing   float64      `json:"line_spacing,omitempty"`
	CoatingWidth  float64      `json:"coating_width,omitempty"`
	OutlinePasses int          `json:"outline_passes,omitempty"`
	OutlineStart  OutlineStart `json:"outline_start,omitempty"`
	OutlineOffset float64      `json:"outline_offset,omitempty"`

	RotationDeg float64          `json:"rotation,omitempty"`
	ScaleX      float64          `json:"scale_x,omitempty"`
	ScaleY      float64          `json:"scale_y,omitempty"`
	PivotOffset geometry.Point2D `json:"pivot_offset,omitempty"`

	// SkipCoating excludes the shape from planning and, for masking
	// shapes, from the mask set.
	SkipCoating bool `json:"skip_coating,omitempty"`
}

// EffectiveScale returns the shape's scale factors with zero values
// defaulting to 1.
func (s *Shape) EffectiveScale() (sx, sy float64) {
	sx, sy = s.ScaleX, s.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// Bounds returns the shape's axis-aligned bounds in its unrotated frame,
// with scale applied. Polyline points are taken literally; scale does not
// apply to them.
func (s *Shape) Bounds() geometry.Rect {
	sx, sy := s.EffectiveScale()
	switch s.Kind {
	case Rectangle, Image:
		return geometry.NewRect(s.X, s.Y, s.Width*sx, s.Height*sy)
	case Circle:
		r := s.Radius * sx
		return geometry.NewRect(s.X-r, s.Y-r, 2*r, 2*r)
	case Polyline:
		return geometry.BoundingBox(s.Points)
	default:
		return geometry.Rect{}
	}
}

// EffectiveRadius returns the circle radius with scale applied.
func (s *Shape) EffectiveRadius() float64 {
	sx, _ := s.EffectiveScale()
	return s.Radius * sx
}

// Center returns the shape's geometric center in its unrotated frame.
func (s *Shape) Center() geometry.Point2D {
	if s.Kind == Circle {
		return geometry.NewPoint2D(s.X, s.Y)
	}
	return s.Bounds().Center()
}

// RotationCenter returns the point the shape rotates about: its geometric
// center adjusted by the declared pivot offset, so rotation matches how the
// shape visually pivots.
func (s *Shape) RotationCenter() geometry.Point2D {
	return s.Center().Sub(s.PivotOffset)
}

// ContainsPoint reports whether p lies within the shape's boundary in its
// unrotated frame. Callers testing against a rotated shape must rotate the
// query point into this frame first (see mask.Index).
func (s *Shape) ContainsPoint(p geometry.Point2D) bool {
	switch s.Kind {
	case Rectangle, Image:
		return s.Bounds().Contains(p)
	case Circle:
		return p.Distance(geometry.NewPoint2D(s.X, s.Y)) <= s.EffectiveRadius()
	case Polyline:
		return geometry.PointInPolygon(p, s.Points)
	default:
		return false
	}
}

// Validate checks the shape's tags against the defined enumerations.
// Geometric degeneracy (zero sizes, negative spacing) is not an error;
// unknown tags are contract violations.
func (s *Shape) Validate() error {
	switch s.Kind {
	case Rectangle, Circle, Image, Polyline:
	default:
		return &UnsupportedKindError{Kind: s.Kind}
	}

	switch s.FillPattern {
	case "", PatternAuto, PatternHorizontal, PatternVertical, PatternConcentric:
	default:
		return &UnsupportedPatternError{Pattern: s.FillPattern}
	}

	return nil
}
