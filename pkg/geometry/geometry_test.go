package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateAround_ZeroAngleReturnsInputUnchanged(t *testing.T) {
	// The zero-angle fast path must return the identical value, not a
	// recomputed one, so unrotated shapes carry no floating drift.
	p := NewPoint2D(3.7, -1.2)
	got := RotateAround(p, NewPoint2D(100, 100), 0)
	assert.Equal(t, p, got)
}

func TestRotateAround_QuarterTurn(t *testing.T) {
	got := RotateAround(NewPoint2D(2, 1), NewPoint2D(1, 1), 90)
	assert.InDelta(t, 1, got.X, 1e-12)
	assert.InDelta(t, 2, got.Y, 1e-12)
}

func TestRotateAround_FullTurnRoundTrips(t *testing.T) {
	p := NewPoint2D(12.5, -4.25)
	center := NewPoint2D(3, 8)
	got := RotateAround(p, center, 360)
	assert.InDelta(t, p.X, got.X, 1e-9)
	assert.InDelta(t, p.Y, got.Y, 1e-9)
}

func TestRotateSegments_KeepsSegmentsStraightAndEqualLength(t *testing.T) {
	segs := []Segment{
		NewSegment(NewPoint2D(0, 0), NewPoint2D(10, 0)),
		NewSegment(NewPoint2D(10, 0), NewPoint2D(10, 5)),
	}
	RotateSegments(segs, NewPoint2D(5, 2.5), 33)

	assert.InDelta(t, 10, segs[0].Length(), 1e-9)
	assert.InDelta(t, 5, segs[1].Length(), 1e-9)
	// Adjacent endpoints stay coincident: both were rotated identically.
	assert.InDelta(t, segs[0].End.X, segs[1].Start.X, 1e-9)
	assert.InDelta(t, segs[0].End.Y, segs[1].Start.Y, 1e-9)
}

func TestSegmentAxisClassification(t *testing.T) {
	horizontal := NewSegment(NewPoint2D(0, 5), NewPoint2D(10, 5.0005))
	assert.True(t, horizontal.IsHorizontal(), "within 0.001 tolerance")
	assert.False(t, horizontal.IsVertical())

	slanted := NewSegment(NewPoint2D(0, 0), NewPoint2D(10, 0.01))
	assert.False(t, slanted.IsHorizontal(), "outside 0.001 tolerance")
}

func TestPointScale(t *testing.T) {
	assert.Equal(t, NewPoint2D(3, -4.5), NewPoint2D(2, -3).Scale(1.5))
	assert.Equal(t, NewPoint2D(0, 0), NewPoint2D(2, -3).Scale(0))
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 4, 4)
	b := NewRect(2, -1, 10, 3)
	assert.Equal(t, NewRect(0, -1, 12, 5), a.Union(b))
	assert.Equal(t, a, a.Union(NewRect(1, 1, 2, 2)), "contained rect is absorbed")
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 10, 6)
	in := r.Inset(2)
	assert.Equal(t, NewRect(2, 2, 6, 2), in)
	assert.False(t, in.IsDegenerate())
	assert.True(t, r.Inset(3.5).IsDegenerate())

	out := r.Inset(-1)
	assert.Equal(t, NewRect(-1, -1, 12, 8), out)
}

func TestGenerateCirclePoints(t *testing.T) {
	pts := GenerateCirclePoints(2, 3, 5, 16)
	require.Len(t, pts, 16)
	for _, p := range pts {
		assert.InDelta(t, 5, p.Distance(NewPoint2D(2, 3)), 1e-9)
	}
	// Starts at angle zero.
	assert.InDelta(t, 7, pts[0].X, 1e-9)
	assert.InDelta(t, 3, pts[0].Y, 1e-9)
}

func TestScanCrossings_Square(t *testing.T) {
	square := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	xs := ScanCrossings(square, 5)
	require.Len(t, xs, 2)
	assert.Equal(t, []float64{0, 10}, xs)

	assert.Empty(t, ScanCrossings(square, 15), "line above the polygon")
}

func TestScanCrossings_Concave(t *testing.T) {
	// U-shaped polygon: the scan line through the notch crosses 4 edges.
	u := []Point2D{
		{0, 0}, {10, 0}, {10, 10}, {7, 10}, {7, 4}, {3, 4}, {3, 10}, {0, 10},
	}
	xs := ScanCrossings(u, 7)
	require.Len(t, xs, 4)
	assert.Equal(t, []float64{0, 3, 7, 10}, xs)
}

func TestPointInPolygon(t *testing.T) {
	tri := []Point2D{{0, 0}, {10, 0}, {0, 10}}
	assert.True(t, PointInPolygon(NewPoint2D(2, 2), tri))
	assert.False(t, PointInPolygon(NewPoint2D(8, 8), tri))
	assert.False(t, PointInPolygon(NewPoint2D(2, 2), tri[:2]), "degenerate polygon")
}

func TestIsClosed(t *testing.T) {
	closed := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 0}}
	assert.True(t, IsClosed(closed))

	open := []Point2D{{0, 0}, {10, 0}, {10, 10}}
	assert.False(t, IsClosed(open))
}

func TestFitAffine_RecoversKnownTransform(t *testing.T) {
	want := Translation(3, -4).Compose(Rotation(math.Pi / 6)).Compose(Scaling(2, 2))

	src := []Point2D{{0, 0}, {10, 0}, {0, 10}, {7, 3}, {-2, 5}}
	dst := make([]Point2D, len(src))
	for i, p := range src {
		dst[i] = want.Apply(p)
	}

	got, err := FitAffine(src, dst)
	require.NoError(t, err)
	for _, p := range src {
		w := want.Apply(p)
		g := got.Apply(p)
		assert.InDelta(t, w.X, g.X, 1e-9)
		assert.InDelta(t, w.Y, g.Y, 1e-9)
	}
}

func TestFitAffine_RejectsBadInput(t *testing.T) {
	_, err := FitAffine([]Point2D{{0, 0}}, []Point2D{{0, 0}})
	assert.Error(t, err)

	_, err = FitAffine([]Point2D{{0, 0}, {1, 1}, {2, 2}}, []Point2D{{0, 0}})
	assert.Error(t, err)
}

func TestAffineInverse(t *testing.T) {
	tr := Translation(5, 7).Compose(Rotation(1.1))
	inv, ok := tr.Inverse()
	require.True(t, ok)

	p := NewPoint2D(3, 4)
	back := inv.Apply(tr.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)

	// Composing a transform with its inverse recovers the identity.
	id := inv.Compose(tr)
	want := Identity()
	assert.InDelta(t, want.A, id.A, 1e-9)
	assert.InDelta(t, want.B, id.B, 1e-9)
	assert.InDelta(t, want.C, id.C, 1e-9)
	assert.InDelta(t, want.D, id.D, 1e-9)
	assert.InDelta(t, want.TX, id.TX, 1e-9)
	assert.InDelta(t, want.TY, id.TY, 1e-9)
}
