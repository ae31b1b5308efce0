package outline

import (
	"math"
	"testing"
)

// default card proportions, used throughout as the reference shape.
const (
	refWidth  = 1.0
	refHeight = 0.6
	refRadius = 0.06
	refSteps  = 24
)

func TestRoundedRectPointCount(t *testing.T) {
	tests := []struct {
		name  string
		steps int
		want  int
	}{
		{"one step", 1, 4},
		{"two steps", 2, 8},
		{"eight steps", 8, 32},
		{"reference", 24, 96},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := RoundedRect(refWidth, refHeight, refRadius, tt.steps)
			if len(o) != tt.want {
				t.Errorf("RoundedRect with %d steps: %d points, want %d", tt.steps, len(o), tt.want)
			}
		})
	}
}

func TestRoundedRectStepsClamped(t *testing.T) {
	// Zero or negative step counts behave like 1.
	for _, steps := range []int{0, -3} {
		o := RoundedRect(refWidth, refHeight, refRadius, steps)
		if len(o) != 4 {
			t.Errorf("steps=%d: %d points, want 4", steps, len(o))
		}
	}
}

func TestZeroRadiusCollapsesToCorners(t *testing.T) {
	o := RoundedRect(refWidth, refHeight, 0, refSteps)
	if len(o) != 4 {
		t.Fatalf("radius 0: %d points, want 4", len(o))
	}
	want := []Point{
		{refWidth / 2, refHeight / 2},
		{-refWidth / 2, refHeight / 2},
		{-refWidth / 2, -refHeight / 2},
		{refWidth / 2, -refHeight / 2},
	}
	for i, p := range o {
		if math.Abs(p.X-want[i].X) > 1e-12 || math.Abs(p.Y-want[i].Y) > 1e-12 {
			t.Errorf("point %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestPointsWithinBounds(t *testing.T) {
	o := RoundedRect(refWidth, refHeight, refRadius, refSteps)
	const tol = 1e-9
	for i, p := range o {
		if math.Abs(p.X) > refWidth/2+tol {
			t.Errorf("point %d: x = %v outside half-width %v", i, p.X, refWidth/2)
		}
		if math.Abs(p.Y) > refHeight/2+tol {
			t.Errorf("point %d: y = %v outside half-height %v", i, p.Y, refHeight/2)
		}
	}

	// The flat-edge tangent points reach the rectangle exactly.
	min, max := o.Bounds()
	if math.Abs(max.X-refWidth/2) > tol || math.Abs(min.X+refWidth/2) > tol {
		t.Errorf("x bounds [%v, %v], want [%v, %v]", min.X, max.X, -refWidth/2, refWidth/2)
	}
	if math.Abs(max.Y-refHeight/2) > tol || math.Abs(min.Y+refHeight/2) > tol {
		t.Errorf("y bounds [%v, %v], want [%v, %v]", min.Y, max.Y, -refHeight/2, refHeight/2)
	}
}

func TestPointsOnInsetCircles(t *testing.T) {
	o := RoundedRect(refWidth, refHeight, refRadius, refSteps)
	centers := []Point{
		{refWidth/2 - refRadius, refHeight/2 - refRadius},
		{-refWidth/2 + refRadius, refHeight/2 - refRadius},
		{-refWidth/2 + refRadius, -refHeight/2 + refRadius},
		{refWidth/2 - refRadius, -refHeight/2 + refRadius},
	}
	for i, p := range o {
		best := math.Inf(1)
		for _, c := range centers {
			d := math.Hypot(p.X-c.X, p.Y-c.Y)
			if diff := math.Abs(d - refRadius); diff < best {
				best = diff
			}
		}
		if best > 1e-9 {
			t.Errorf("point %d (%v) is %v off every corner circle", i, p, best)
		}
	}
}

func TestWindingAndShape(t *testing.T) {
	o := RoundedRect(refWidth, refHeight, refRadius, refSteps)
	if a := o.Area(); a <= 0 {
		t.Errorf("Area() = %v, want positive (CCW)", a)
	}
	if !o.IsSimple() {
		t.Error("outline self-intersects")
	}
	if !o.IsConvex() {
		t.Error("outline is not convex")
	}

	// Area must sit between the inner rectangle with corners cut and the
	// full rectangle.
	full := refWidth * refHeight
	cut := full - (4-math.Pi)*refRadius*refRadius
	a := o.Area()
	if a > full || a < cut-1e-4 {
		t.Errorf("Area() = %v, want within [%v, %v]", a, cut, full)
	}

	c := o.Centroid()
	if math.Abs(c.X) > 1e-12 || math.Abs(c.Y) > 1e-12 {
		t.Errorf("Centroid() = %v, want origin", c)
	}
}

func TestNoDuplicateConsecutivePoints(t *testing.T) {
	for _, steps := range []int{1, 2, 24} {
		o := RoundedRect(refWidth, refHeight, refRadius, steps)
		n := len(o)
		for i := 0; i < n; i++ {
			if o[i] == o[(i+1)%n] {
				t.Errorf("steps=%d: duplicate consecutive point at %d: %v", steps, i, o[i])
			}
		}
	}
}

func TestSingleStepOutline(t *testing.T) {
	// One step per corner keeps only the arc endpoints, so the outline
	// degenerates to 4 tangent points.
	o := RoundedRect(refWidth, refHeight, refRadius, 1)
	if len(o) != 4 {
		t.Fatalf("got %d points, want 4", len(o))
	}
	want := []Point{
		{refWidth / 2, refHeight/2 - refRadius},
		{refWidth/2 - refRadius, refHeight / 2},
	}
	// Spot-check the first corner's start and end.
	for i := range want {
		if math.Abs(o[i].X-want[i].X) > 1e-12 || math.Abs(o[i].Y-want[i].Y) > 1e-12 {
			t.Errorf("point %d = %v, want %v", i, o[i], want[i])
		}
	}
}

func TestIsSimpleDetectsCrossing(t *testing.T) {
	bowtie := Outline{{0, 0}, {1, 1}, {1, 0}, {0, 1}}
	if bowtie.IsSimple() {
		t.Error("bowtie polygon reported as simple")
	}
}

func TestIsConvexDetectsReflex(t *testing.T) {
	lshape := Outline{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}
	if lshape.IsConvex() {
		t.Error("L-shape reported as convex")
	}
	if !lshape.IsSimple() {
		t.Error("L-shape reported as self-intersecting")
	}
}
