package vecmath

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box, adapted from the collision
// engine's own AABB type: the same Min/Max pair, generalized with a
// Diagonal length for callers (the deflection policy) that need a
// characteristic size rather than a containment test.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Size returns the extents of the box along each axis.
func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

// Diagonal returns the length of the box's diagonal, used as a
// last-resort characteristic length when neither section dimensions
// nor sweep length can be determined.
func (a AABB) Diagonal() float64 {
	return a.Size().Len()
}
