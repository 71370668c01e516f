package deflection

import "github.com/xbimgo/meshkernel/vecmath"

// ProfileGeometry is the closed set of cross-section shapes the
// deflection policy knows how to extract a characteristic width and
// height from. Any type implementing it can drive Compute; a shape the
// policy does not recognize returns ok=false from SectionDimensions and
// is treated as an input error (logged, defaults returned unchanged).
type ProfileGeometry interface {
	// SectionDimensions returns the section's characteristic width and
	// height. ok is false when the geometry is malformed (e.g. an
	// arbitrary curve whose bounding box could not be computed).
	SectionDimensions() (width, height float64, ok bool)
}

// Rectangle is a rectangular profile with the given overall dimensions.
type Rectangle struct{ XDim, YDim float64 }

func (r Rectangle) SectionDimensions() (width, height float64, ok bool) {
	return r.XDim, r.YDim, true
}

// Circle is a circular profile of the given radius.
type Circle struct{ Radius float64 }

func (c Circle) SectionDimensions() (width, height float64, ok bool) {
	return 2 * c.Radius, 2 * c.Radius, true
}

// Ellipse is an elliptical profile with semi-axes A (major) and B
// (minor).
type Ellipse struct{ A, B float64 }

func (e Ellipse) SectionDimensions() (width, height float64, ok bool) {
	return 2 * e.A, 2 * e.B, true
}

// RolledShape covers the family of standard structural sections whose
// characteristic dimensions reduce to an overall (flange or bounding)
// width and a depth: I, L, T, U and C profiles all share this shape.
type RolledShape struct {
	OverallWidth float64
	Depth        float64
}

func (r RolledShape) SectionDimensions() (width, height float64, ok bool) {
	return r.OverallWidth, r.Depth, true
}

// ArbitraryClosedCurve is a profile with no closed-form dimensions: its
// width and height come from the bounding box of its outer curve.
// ComputeBounds performs the actual (potentially expensive) geometric
// computation; a Policy caches its result by CurveID rather than
// calling it on every query. Calling SectionDimensions directly, off a
// Policy, recomputes it every time.
type ArbitraryClosedCurve struct {
	CurveID       string
	ComputeBounds func() (vecmath.AABB, bool)
}

func (a ArbitraryClosedCurve) SectionDimensions() (width, height float64, ok bool) {
	box, found := a.ComputeBounds()
	if !found {
		return 0, 0, false
	}
	size := box.Size()
	return size.X(), size.Y(), true
}

// SweptDisk is a circular profile swept as a tube or rod rather than an
// area-sweep solid.
type SweptDisk struct{ Radius float64 }

func (s SweptDisk) SectionDimensions() (width, height float64, ok bool) {
	return 2 * s.Radius, 2 * s.Radius, true
}
