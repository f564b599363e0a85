package geometry

import "math"

// RotateAround rotates p about center by angleDeg degrees, counter-clockwise
// for positive angles. A zero angle returns p unchanged; the early return is
// part of the contract, not an optimization, so that unrotated shapes carry
// no floating-point drift.
func RotateAround(p, center Point2D, angleDeg float64) Point2D {
	if angleDeg == 0 {
		return p
	}
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point2D{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// RotateSegments rotates every segment in segs about center by angleDeg
// degrees, in place. Both endpoints rotate identically so segments stay
// straight.
func RotateSegments(segs []Segment, center Point2D, angleDeg float64) {
	if angleDeg == 0 {
		return
	}
	for i := range segs {
		segs[i].Start = RotateAround(segs[i].Start, center, angleDeg)
		segs[i].End = RotateAround(segs[i].End, center, angleDeg)
	}
}

// TranslateSegments shifts every segment in segs by delta, in place.
func TranslateSegments(segs []Segment, delta Point2D) {
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	for i := range segs {
		segs[i].Start = segs[i].Start.Add(delta)
		segs[i].End = segs[i].End.Add(delta)
	}
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// Translation returns a translation transform.
func Translation(tx, ty float64) AffineTransform {
	return AffineTransform{A: 1, D: 1, TX: tx, TY: ty}
}

// Rotation returns a rotation transform around the origin.
func Rotation(radians float64) AffineTransform {
	sin, cos := math.Sincos(radians)
	return AffineTransform{A: cos, B: -sin, C: sin, D: cos}
}

// Scaling returns a scaling transform.
func Scaling(sx, sy float64) AffineTransform {
	return AffineTransform{A: sx, D: sy}
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Compose returns this transform composed with another (this * other).
func (t AffineTransform) Compose(other AffineTransform) AffineTransform {
	return AffineTransform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TY + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TY: t.C*other.TX + t.D*other.TY + t.TY,
	}
}

// Inverse returns the inverse transform, if it exists.
func (t AffineTransform) Inverse() (AffineTransform, bool) {
	det := t.A*t.D - t.B*t.C
	if math.Abs(det) < 1e-10 {
		return AffineTransform{}, false
	}

	invDet := 1.0 / det
	return AffineTransform{
		A:  t.D * invDet,
		B:  -t.B * invDet,
		TX: (t.B*t.TY - t.D*t.TX) * invDet,
		C:  -t.C * invDet,
		D:  t.A * invDet,
		TY: (t.C*t.TX - t.A*t.TY) * invDet,
	}, true
}
