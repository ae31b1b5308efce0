// Package outline constructs closed 2D polygons in the card's local plane.
// The only producer is RoundedRect, which approximates a rectangle with four
// tangent quarter-circle corners. Outlines wind counter-clockwise and carry
// no duplicate consecutive points.
package outline

import "math"

// Point is a 2D coordinate in the outline's local plane.
type Point struct {
	X, Y float64
}

// Outline is an ordered, counter-clockwise, closed polygon. The closing edge
// from the last point back to the first is implicit.
type Outline []Point

// RoundedRect builds the outline of a width x height rectangle centered on the
// origin whose corners are replaced by quarter-circles of the given radius.
// Each quarter-circle is approximated by cornerSteps linear segments.
//
// The caller is responsible for keeping radius <= min(width, height)/2; a
// larger radius makes the corner arcs overlap and the result self-intersects.
// radius = 0 collapses every arc to its corner point and the outline reduces
// to the 4 rectangle corners regardless of cornerSteps.
//
// For radius > 0 the outline has exactly 4*cornerSteps points.
func RoundedRect(width, height, radius float64, cornerSteps int) Outline {
	if cornerSteps < 1 {
		cornerSteps = 1
	}

	// Arc centers, inset from each corner by radius along both axes so the
	// quarter-circles are tangent to the rectangle edges. CCW corner order
	// starting at +x+y.
	centers := [4]Point{
		{width/2 - radius, height/2 - radius},   // top right
		{-width/2 + radius, height/2 - radius},  // top left
		{-width/2 + radius, -height/2 + radius}, // bottom left
		{width/2 - radius, -height/2 + radius},  // bottom right
	}

	pts := make(Outline, 0, 4*cornerSteps)
	for corner := 0; corner < 4; corner++ {
		start := float64(corner) * math.Pi / 2
		seg := arc(centers[corner], radius, start, start+math.Pi/2, cornerSteps)

		// Shared endpoints between adjacent arcs appear twice; drop the
		// first point of every arc after the first, and the last point of
		// the final arc (it coincides with the very first point).
		if corner > 0 {
			seg = seg[1:]
		}
		if corner == 3 {
			seg = seg[:len(seg)-1]
		}
		pts = append(pts, seg...)
	}

	return pts.dedupe()
}

// arc samples steps+1 points on a circle of the given radius around center,
// sweeping the angle linearly from start to end.
func arc(center Point, radius, start, end float64, steps int) []Point {
	pts := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := start + (end-start)*float64(i)/float64(steps)
		pts = append(pts, Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return pts
}

// dedupe removes consecutive duplicate points, including the wraparound pair
// (last == first). With radius 0 every arc degenerates to one repeated corner
// point and this pass collapses the outline to the 4 rectangle corners.
func (o Outline) dedupe() Outline {
	if len(o) < 2 {
		return o
	}
	out := o[:1]
	for _, p := range o[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the outline.
func (o Outline) Bounds() (min, max Point) {
	if len(o) == 0 {
		return Point{}, Point{}
	}
	min, max = o[0], o[0]
	for _, p := range o[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Area returns the signed area of the polygon by the shoelace formula.
// Positive area means counter-clockwise winding.
func (o Outline) Area() float64 {
	var sum float64
	n := len(o)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return sum / 2
}

// Centroid returns the area centroid of the polygon.
func (o Outline) Centroid() Point {
	n := len(o)
	if n == 0 {
		return Point{}
	}
	var cx, cy, a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := o[i].X*o[j].Y - o[j].X*o[i].Y
		cx += (o[i].X + o[j].X) * cross
		cy += (o[i].Y + o[j].Y) * cross
		a += cross
	}
	if a == 0 {
		// Degenerate polygon; fall back to the vertex average.
		var p Point
		for _, q := range o {
			p.X += q.X
			p.Y += q.Y
		}
		return Point{p.X / float64(n), p.Y / float64(n)}
	}
	a /= 2
	return Point{cx / (6 * a), cy / (6 * a)}
}

// IsConvex reports whether every turn along the polygon is in the same
// direction. Collinear runs are allowed.
func (o Outline) IsConvex() bool {
	n := len(o)
	if n < 4 {
		return true
	}
	sign := 0
	for i := 0; i < n; i++ {
		a, b, c := o[i], o[(i+1)%n], o[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		switch {
		case cross > 1e-12:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < -1e-12:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}

// IsSimple reports whether no two non-adjacent edges intersect. O(n^2); meant
// for tests and validation, not hot paths.
func (o Outline) IsSimple() bool {
	n := len(o)
	if n < 4 {
		return true
	}
	for i := 0; i < n; i++ {
		a1 := o[i]
		a2 := o[(i+1)%n]
		for j := i + 2; j < n; j++ {
			// Skip adjacent edges (they share an endpoint).
			if i == 0 && j == n-1 {
				continue
			}
			b1 := o[j]
			b2 := o[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

func segmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := cross2(p3, p4, p1)
	d2 := cross2(p3, p4, p2)
	d3 := cross2(p1, p2, p3)
	d4 := cross2(p1, p2, p4)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross2(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}
