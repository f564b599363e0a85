package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatpath/internal/settings"
	"coatpath/internal/shape"
	"coatpath/pkg/geometry"
)

func testDefaults() settings.Coating {
	c := settings.Default()
	c.OutlineOffset = 1
	c.OutlinePasses = 1
	c.OutlineStart = shape.StartCenter
	return c
}

func TestPlanRectangle_SinglePassTracesBoundaryClockwise(t *testing.T) {
	p := NewPlanner(testDefaults())
	s := shape.Shape{
		Kind: shape.Rectangle, X: 0, Y: 0, Width: 10, Height: 6,
		CoatingType: shape.CoatOutline,
	}

	segs, err := p.Plan(&s)
	require.NoError(t, err)
	require.Len(t, segs, 4)

	// Clockwise from top-left: top, right, bottom, left.
	assert.Equal(t, geometry.NewSegment(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0)), segs[0])
	assert.Equal(t, geometry.NewSegment(geometry.NewPoint2D(10, 0), geometry.NewPoint2D(10, 6)), segs[1])
	assert.Equal(t, geometry.NewSegment(geometry.NewPoint2D(10, 6), geometry.NewPoint2D(0, 6)), segs[2])
	assert.Equal(t, geometry.NewSegment(geometry.NewPoint2D(0, 6), geometry.NewPoint2D(0, 0)), segs[3])

	// The trace closes on itself.
	assert.Equal(t, segs[0].Start, segs[3].End)
}

func TestPlanRectangle_StartPolicies(t *testing.T) {
	tests := []struct {
		start  shape.OutlineStart
		wantTL geometry.Point2D
	}{
		{shape.StartOutside, geometry.NewPoint2D(-1, -1)},
		{shape.StartCenter, geometry.NewPoint2D(0, 0)},
		{shape.StartInside, geometry.NewPoint2D(1, 1)},
	}
	for _, tt := range tests {
		t.Run(string(tt.start), func(t *testing.T) {
			p := NewPlanner(testDefaults())
			s := shape.Shape{
				Kind: shape.Rectangle, Width: 10, Height: 10,
				CoatingType:  shape.CoatOutline,
				OutlineStart: tt.start,
			}
			segs, err := p.Plan(&s)
			require.NoError(t, err)
			require.Len(t, segs, 4)
			assert.Equal(t, tt.wantTL, segs[0].Start)
		})
	}
}

func TestPlanRectangle_PassesStepOutward(t *testing.T) {
	p := NewPlanner(testDefaults())
	s := shape.Shape{
		Kind: shape.Rectangle, Width: 10, Height: 10,
		CoatingType:   shape.CoatOutline,
		OutlinePasses: 3,
		OutlineStart:  shape.StartOutside,
	}

	segs, err := p.Plan(&s)
	require.NoError(t, err)
	require.Len(t, segs, 12)

	assert.Equal(t, geometry.NewPoint2D(-1, -1), segs[0].Start)
	assert.Equal(t, geometry.NewPoint2D(-2, -2), segs[4].Start)
	assert.Equal(t, geometry.NewPoint2D(-3, -3), segs[8].Start)
}

func TestPlanRectangle_DegeneratePassSkippedNotError(t *testing.T) {
	p := NewPlanner(testDefaults())
	s := shape.Shape{
		Kind: shape.Rectangle, Width: 2, Height: 2,
		CoatingType:   shape.CoatOutline,
		OutlinePasses: 2,
		OutlineStart:  shape.StartInside,
	}

	// First pass insets by 1 on a 2x2 rectangle: zero size, skipped.
	// Second pass steps back to the boundary and is emitted.
	segs, err := p.Plan(&s)
	require.NoError(t, err)
	assert.Len(t, segs, 4)
	assert.Equal(t, geometry.NewPoint2D(0, 0), segs[0].Start)
}

func TestCircleChordCount(t *testing.T) {
	assert.Equal(t, 16, CircleChordCount(10), "small circles floor at 16 chords")
	assert.Equal(t, 16, CircleChordCount(32))
	assert.Equal(t, 50, CircleChordCount(100), "chord count scales with radius")
}

func TestPlanCircle_RingGeometry(t *testing.T) {
	p := NewPlanner(testDefaults())
	s := shape.Shape{
		Kind: shape.Circle, X: 5, Y: 5, Radius: 10,
		CoatingType:   shape.CoatOutline,
		OutlinePasses: 2,
		OutlineStart:  shape.StartInside,
	}

	segs, err := p.Plan(&s)
	require.NoError(t, err)
	require.Len(t, segs, 32, "two rings of 16 chords")

	center := geometry.NewPoint2D(5, 5)
	for _, seg := range segs[:16] {
		assert.InDelta(t, 9, seg.Start.Distance(center), 1e-9, "first ring inset by the offset")
	}
	for _, seg := range segs[16:] {
		assert.InDelta(t, 10, seg.Start.Distance(center), 1e-9, "second ring steps back out")
	}

	// Each ring closes on itself.
	assert.Equal(t, segs[0].Start, segs[15].End)
	assert.Equal(t, segs[16].Start, segs[31].End)
}

func TestPlanCircle_NonPositiveRadiusSkipped(t *testing.T) {
	p := NewPlanner(testDefaults())
	s := shape.Shape{
		Kind: shape.Circle, Radius: 0.5,
		CoatingType:   shape.CoatOutline,
		OutlinePasses: 2,
		OutlineStart:  shape.StartInside,
		OutlineOffset: 1,
	}

	// First ring radius -0.5 is skipped; second ring radius 0.5 remains.
	segs, err := p.Plan(&s)
	require.NoError(t, err)
	assert.Len(t, segs, 16)
}

func TestPlanPolyline_RawTraversal(t *testing.T) {
	p := NewPlanner(testDefaults())
	pts := []geometry.Point2D{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}}
	s := shape.Shape{
		Kind:        shape.Polyline,
		Points:      pts,
		CoatingType: shape.CoatOutline,
		// Pass and offset parameters do not apply to polylines.
		OutlinePasses: 3,
		OutlineStart:  shape.StartOutside,
	}

	segs, err := p.Plan(&s)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, geometry.NewSegment(pts[0], pts[1]), segs[0])
	assert.Equal(t, geometry.NewSegment(pts[1], pts[2]), segs[1])
}

func TestPlan_UnsupportedKind(t *testing.T) {
	p := NewPlanner(testDefaults())
	s := shape.Shape{Kind: "blob", CoatingType: shape.CoatOutline}

	_, err := p.Plan(&s)
	require.Error(t, err)
	var kindErr *shape.UnsupportedKindError
	assert.ErrorAs(t, err, &kindErr)
	assert.Equal(t, shape.Kind("blob"), kindErr.Kind)
}
