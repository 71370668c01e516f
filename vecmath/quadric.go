package vecmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quadric is the Garland-Heckbert quadric error metric in (A, b, c)
// form: Evaluate(p) = p^T A p + 2 b^T p + c. A is symmetric, so it is
// stored as a plain mgl64.Mat3 rather than a packed six-value form -
// the extra three redundant entries cost nothing and let every
// operation reuse mathgl's matrix arithmetic directly.
type Quadric struct {
	A mgl64.Mat3
	B mgl64.Vec3
	C float64
}

// FromPlane builds the quadric of a single plane through p with unit
// normal n. Callers must normalize n themselves; FromPlane does not
// check.
func FromPlane(n, p mgl64.Vec3) Quadric {
	a := mgl64.Mat3{
		n.X() * n.X(), n.X() * n.Y(), n.X() * n.Z(),
		n.Y() * n.X(), n.Y() * n.Y(), n.Y() * n.Z(),
		n.Z() * n.X(), n.Z() * n.Y(), n.Z() * n.Z(),
	}
	b := a.Mul3x1(p).Mul(-1)
	c := p.Dot(a.Mul3x1(p))
	return Quadric{A: a, B: b, C: c}
}

// FromTriangle returns the plane quadric of the triangle (p0, p1, p2)
// together with its area. Triangles whose area falls below
// MinTriangleArea return a zero Quadric and a zero area; the caller is
// expected to skip accumulating them, per the "no degeneracy"
// tolerance in the error-handling design.
func FromTriangle(p0, p1, p2 mgl64.Vec3) (q Quadric, area float64) {
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	cross := e1.Cross(e2)
	crossLen := cross.Len()
	if crossLen < MinTriangleArea {
		return Quadric{}, 0
	}
	area = 0.5 * crossLen
	n := cross.Mul(1 / crossLen)
	return FromPlane(n, p0), area
}

// Add returns the component-wise sum of two quadrics.
func (q Quadric) Add(other Quadric) Quadric {
	return Quadric{
		A: q.A.Add(other.A),
		B: q.B.Add(other.B),
		C: q.C + other.C,
	}
}

// Scale returns the quadric scaled by a constant factor.
func (q Quadric) Scale(factor float64) Quadric {
	return Quadric{
		A: q.A.Mul(factor),
		B: q.B.Mul(factor),
		C: q.C * factor,
	}
}

// Evaluate returns the quadric error at point p.
func (q Quadric) Evaluate(p mgl64.Vec3) float64 {
	return p.Dot(q.A.Mul3x1(p)) + 2*q.B.Dot(p) + q.C
}

// Optimal returns the point minimizing the quadric error, solving
// A x = -b via the closed-form inverse of A. When A is singular
// (|det A| <= SingularityThreshold), it falls back to evaluating the
// quadric at p0, p1 and their midpoint and returning whichever is
// cheapest, preferring the midpoint on an exact tie, which guarantees
// a finite result even for a degenerate quadric.
func (q Quadric) Optimal(p0, p1 mgl64.Vec3) mgl64.Vec3 {
	det := q.A.Det()
	if math.Abs(det) > SingularityThreshold {
		return q.A.Inv().Mul3x1(q.B.Mul(-1))
	}

	mid := p0.Add(p1).Mul(0.5)
	best := mid
	bestCost := q.Evaluate(mid)
	for _, candidate := range []mgl64.Vec3{p0, p1} {
		if cost := q.Evaluate(candidate); cost < bestCost {
			best = candidate
			bestCost = cost
		}
	}
	return best
}
