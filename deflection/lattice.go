package deflection

import (
	"math"
	"sort"

	"github.com/xbimgo/meshkernel/vecmath"
)

// ControlPoint is one sample in a custom target-facet-count lattice:
// at (MinDimMm, Slenderness), the surveyed or design-chosen facet
// count was TargetFacets.
type ControlPoint struct {
	MinDimMm     float64
	Slenderness  float64
	TargetFacets float64
}

// Lattice is a scattered set of control points queried by bilinear
// interpolation over the nearest four corners, falling back to the
// Euclidean-nearest control point when any of those four bracketing
// corners has no control point. An empty Lattice always answers
// DefaultFacetCount.
type Lattice struct {
	points []ControlPoint
}

// NewLattice builds a Lattice from the given control points.
func NewLattice(points ...ControlPoint) Lattice {
	return Lattice{points: append([]ControlPoint(nil), points...)}
}

// Query returns the target facet count for (minDimMm, slenderness).
func (l Lattice) Query(minDimMm, slenderness float64) float64 {
	if len(l.points) == 0 {
		return DefaultFacetCount
	}
	if v, ok := l.bilinear(minDimMm, slenderness); ok {
		return v
	}
	return l.nearest(minDimMm, slenderness)
}

func (l Lattice) distinctSorted(axis func(ControlPoint) float64) []float64 {
	seen := make(map[float64]bool)
	var values []float64
	for _, p := range l.points {
		v := axis(p)
		already := false
		for s := range seen {
			if math.Abs(s-v) < vecmath.ControlPointEqualityTolerance {
				already = true
				break
			}
		}
		if !already {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	return values
}

// bracket returns the two sorted values surrounding val, snapping an
// out-of-range query to the first or last pair rather than failing.
func bracket(sorted []float64, val float64) (lo, hi float64, ok bool) {
	switch len(sorted) {
	case 0:
		return 0, 0, false
	case 1:
		return sorted[0], sorted[0], true
	}
	if val <= sorted[0] {
		return sorted[0], sorted[1], true
	}
	if val >= sorted[len(sorted)-1] {
		return sorted[len(sorted)-2], sorted[len(sorted)-1], true
	}
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i] <= val && val <= sorted[i+1] {
			return sorted[i], sorted[i+1], true
		}
	}
	return sorted[0], sorted[1], true
}

func (l Lattice) find(x, y float64) (ControlPoint, bool) {
	for _, p := range l.points {
		if math.Abs(p.MinDimMm-x) < vecmath.ControlPointEqualityTolerance &&
			math.Abs(p.Slenderness-y) < vecmath.ControlPointEqualityTolerance {
			return p, true
		}
	}
	return ControlPoint{}, false
}

func (l Lattice) bilinear(x, y float64) (float64, bool) {
	xs := l.distinctSorted(func(p ControlPoint) float64 { return p.MinDimMm })
	ys := l.distinctSorted(func(p ControlPoint) float64 { return p.Slenderness })

	x1, x2, ok := bracket(xs, x)
	if !ok {
		return 0, false
	}
	y1, y2, ok := bracket(ys, y)
	if !ok {
		return 0, false
	}

	q11, ok := l.find(x1, y1)
	if !ok {
		return 0, false
	}
	q21, ok := l.find(x2, y1)
	if !ok {
		return 0, false
	}
	q12, ok := l.find(x1, y2)
	if !ok {
		return 0, false
	}
	q22, ok := l.find(x2, y2)
	if !ok {
		return 0, false
	}

	t := 0.0
	if x2 != x1 {
		t = (x - x1) / (x2 - x1)
	}
	u := 0.0
	if y2 != y1 {
		u = (y - y1) / (y2 - y1)
	}

	return (1-t)*(1-u)*q11.TargetFacets +
		t*(1-u)*q21.TargetFacets +
		(1-t)*u*q12.TargetFacets +
		t*u*q22.TargetFacets, true
}

func (l Lattice) nearest(x, y float64) float64 {
	best := l.points[0]
	bestDist := math.Inf(1)
	for _, p := range l.points {
		dx, dy := p.MinDimMm-x, p.Slenderness-y
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best.TargetFacets
}
