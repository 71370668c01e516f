package vecmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestQuadricAddIsEvaluationAdditive(t *testing.T) {
	q1, _ := FromTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	q2, _ := FromTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 1}, mgl64.Vec3{1, 0, 1})

	p := mgl64.Vec3{0.3, -0.7, 1.4}
	got := q1.Add(q2).Evaluate(p)
	want := q1.Evaluate(p) + q2.Evaluate(p)

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("(q1+q2).Evaluate(p) = %v, want q1.Evaluate(p)+q2.Evaluate(p) = %v", got, want)
	}
}

func TestQuadricScaleIsEvaluationLinear(t *testing.T) {
	q := FromPlane(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 2})
	p := mgl64.Vec3{5, -3, 8}
	alpha := 2.5

	got := q.Scale(alpha).Evaluate(p)
	want := alpha * q.Evaluate(p)

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("q.Scale(%v).Evaluate(p) = %v, want %v*q.Evaluate(p) = %v", alpha, got, alpha, want)
	}
}

func TestFromPlaneEvaluatesToSquaredDistanceFromPlane(t *testing.T) {
	// Plane z=2, normal (0,0,1). A point 3 units off the plane should
	// cost 3^2 = 9.
	q := FromPlane(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 2})

	onPlane := q.Evaluate(mgl64.Vec3{100, -50, 2})
	if math.Abs(onPlane) > 1e-9 {
		t.Errorf("Evaluate(point on plane) = %v, want 0", onPlane)
	}

	off := q.Evaluate(mgl64.Vec3{0, 0, 5})
	if math.Abs(off-9) > 1e-9 {
		t.Errorf("Evaluate(point 3 units off plane) = %v, want 9", off)
	}
}

func TestFromTriangleReturnsZeroQuadricForDegenerateTriangle(t *testing.T) {
	q, area := FromTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 0, 0})
	if area != 0 {
		t.Errorf("area of a collinear triangle = %v, want 0", area)
	}
	if (q != Quadric{}) {
		t.Errorf("quadric of a degenerate triangle = %+v, want zero value", q)
	}
}

func TestFromTriangleArea(t *testing.T) {
	// Right triangle with legs 2 and 3, area = 3.
	_, area := FromTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 3, 0})
	if math.Abs(area-3) > 1e-9 {
		t.Errorf("area = %v, want 3", area)
	}
}

func TestOptimalSolvesNonSingularQuadricExactly(t *testing.T) {
	// Three mutually orthogonal planes through the origin pin the
	// optimum to a single point regardless of the two edge endpoints
	// passed in.
	planes := []struct {
		n, p mgl64.Vec3
	}{
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{5, 0, 0}},
		{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, -2, 0}},
		{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 9}},
	}
	q := Quadric{}
	for _, pl := range planes {
		q = q.Add(FromPlane(pl.n, pl.p))
	}

	got := q.Optimal(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{100, 100, 100})
	want := mgl64.Vec3{5, -2, 9}
	if got.Sub(want).Len() > 1e-6 {
		t.Errorf("Optimal() = %v, want %v", got, want)
	}
}

func TestOptimalFallsBackToMidpointOnSingularTie(t *testing.T) {
	// A single plane quadric is rank 1 and singular; every point in
	// the plane costs exactly the same, so the fallback must resolve
	// the tie toward the midpoint rather than either endpoint.
	q := FromPlane(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 0})
	p0 := mgl64.Vec3{0, 0, 0}
	p1 := mgl64.Vec3{4, 0, 0}

	got := q.Optimal(p0, p1)
	want := mgl64.Vec3{2, 0, 0}
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("Optimal() = %v, want the midpoint %v", got, want)
	}
}

func TestOptimalFallsBackToCheapestEndpointWhenNotTied(t *testing.T) {
	// Two perpendicular planes (x=0 and y=0) whose intersection line
	// passes through p0 but not p1: p0 costs 0, p1 and the midpoint
	// cost strictly more, so the fallback must prefer p0 over the
	// midpoint even though the matrix is singular.
	q := FromPlane(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 0}).Add(FromPlane(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 0}))
	p0 := mgl64.Vec3{0, 0, 0}
	p1 := mgl64.Vec3{4, 4, 0}

	got := q.Optimal(p0, p1)
	if got.Sub(p0).Len() > 1e-9 {
		t.Errorf("Optimal() = %v, want p0 = %v (strictly cheapest)", got, p0)
	}
}
