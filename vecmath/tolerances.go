// Package vecmath collects the numeric primitives shared by the mesh
// connectivity, simplifier and deflection packages: the quadric error
// matrix and the handful of fixed tolerances the algorithms are tuned
// against.
//
// Vec3 itself is not reimplemented here; every package in this module
// uses github.com/go-gl/mathgl/mgl64.Vec3 directly.
package vecmath

// Fixed tolerances used across the mesh kernel. Collected here per the
// "don't scatter magic numbers" design note rather than declared next
// to each call site.
const (
	// SingularityThreshold bounds |det A| below which Quadric.Optimal
	// treats A as non-invertible and falls back to evaluating the
	// quadric at the edge endpoints and midpoint.
	SingularityThreshold = 1000 * 1e-10

	// MinTriangleArea is the smallest triangle area (in squared model
	// units, i.e. the magnitude of e1 x e2) that still contributes a
	// plane quadric. Triangles below this are treated as degenerate.
	MinTriangleArea = 1e-12

	// NormalFlipCosine is the minimum dot product between a triangle's
	// normal before and after a proposed contraction. Below this the
	// contraction is rejected as an excessive orientation change
	// (roughly a 37 degree bound).
	NormalFlipCosine = 0.8

	// ControlPointEqualityTolerance is how close two control-point
	// coordinates must be to be considered the same lattice axis value.
	ControlPointEqualityTolerance = 1e-6

	// MinVectorLength is the length below which a vector is too close
	// to zero to have a meaningful direction; the simplifier's
	// normal-flip test rejects a contraction whose new face normal is
	// shorter than this.
	MinVectorLength = 1e-12
)
