package geometry

import "sort"

// PointInPolygon tests if a point is inside a polygon using ray casting.
// The polygon is treated as closed whether or not the last point repeats
// the first.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// ScanCrossings returns the sorted x coordinates where the horizontal line
// at y crosses the polygon's edges. Even-odd pairing of the result gives the
// interior spans at that height. Edges lying exactly on the scan line
// contribute nothing; the half-open rule on each edge keeps vertex hits from
// being counted twice.
func ScanCrossings(polygon []Point2D, y float64) []float64 {
	if len(polygon) < 3 {
		return nil
	}

	var xs []float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		if (a.Y > y) == (b.Y > y) {
			continue
		}
		t := (y - a.Y) / (b.Y - a.Y)
		xs = append(xs, a.X+t*(b.X-a.X))
	}

	sort.Float64s(xs)
	return xs
}

// IsClosed reports whether the polyline's last point coincides with its
// first within AxisTolerance. Open polylines are traced, never filled.
func IsClosed(points []Point2D) bool {
	if len(points) < 4 {
		return false
	}
	first, last := points[0], points[len(points)-1]
	return first.Distance(last) <= AxisTolerance
}
