package deflection

import "github.com/xbimgo/meshkernel/vecmath"

// SweepKind classifies how a swept solid's directrix was generated,
// which determines how its sweep length is measured.
type SweepKind int

const (
	// Extrusion sweeps a profile along a straight line of fixed Depth.
	Extrusion SweepKind = iota
	// Revolution sweeps a profile around an axis by a fixed angle.
	Revolution
	// SurfaceCurveSweep sweeps a profile along a curve lying on a
	// surface, trimmed to an explicit parameter span.
	SurfaceCurveSweep
	// FixedReferenceSweep sweeps a profile along a curve while holding
	// a fixed reference direction, trimmed to an explicit parameter
	// span.
	FixedReferenceSweep
	// SweptDiskSweep sweeps a circular disk along a directrix curve,
	// either an explicit parameter span or the curve's own arc length.
	SweptDiskSweep
)

// SweptShape bundles everything the deflection policy needs about one
// swept solid. Fields not meaningful for a given Kind are left at their
// zero value; none of depth, angle, radius or parameter span is ever a
// legitimate zero for a real solid, so a zero value is treated as
// "unknown" and triggers the bounding-box-diagonal fallback.
type SweptShape struct {
	Kind        SweepKind
	Profile     ProfileGeometry
	BoundingBox vecmath.AABB

	// Depth is the extrusion length, meaningful when Kind == Extrusion.
	Depth float64

	// RevolutionAngleRadians and RevolutionRadius (perpendicular
	// distance from the profile's origin to the revolution axis) are
	// meaningful when Kind == Revolution.
	RevolutionAngleRadians float64
	RevolutionRadius       float64

	// ParameterSpan is the absolute trim parameter span, meaningful for
	// SurfaceCurveSweep, FixedReferenceSweep and, when present, an
	// explicit swept-disk span.
	ParameterSpan float64

	// DirectrixCurveID and DirectrixArcLength back the swept-disk
	// fallback when ParameterSpan is absent: the curve's own arc
	// length, computed lazily and cached by a Policy per curve id.
	DirectrixCurveID   string
	DirectrixArcLength func() float64
}
