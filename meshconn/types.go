// Package meshconn implements the central adjacency store for a
// triangle mesh: triangles, edges and vertex-edge incidence, addressed
// by stable integer ids and mutated destructively by the simplifier.
//
// It is an inherently cyclic graph - edges point to triangles,
// triangles to edges, vertices to edges - represented the way the
// design notes prescribe: flat tables keyed by dense integer ids plus
// an id-to-slot map for canonical edge lookup, so that removals stay
// local and never chase live pointers across entities. Deletion never
// renumbers a slot; a Valid flag marks a row dead until the caller
// rebuilds a fresh mesh from the survivors.
package meshconn

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/xbimgo/meshkernel/vecmath"
)

// VertexID, EdgeID and TriangleID are distinct integer id types so
// that mixing up which table an id belongs to is a compile error
// rather than a silent bug.
type VertexID int
type EdgeID int
type TriangleID int

// Invalid sentinels, returned by lookups that find nothing and stored
// in the unused slot of an Edge's triangle pair.
const (
	InvalidVertex   VertexID   = -1
	InvalidEdge     EdgeID     = -1
	InvalidTriangle TriangleID = -1
)

// Vertex holds a position, its accumulated quadric error metric and a
// validity flag. The quadric field exists here because the data model
// places it on the vertex; only the simplifier ever writes to it, via
// VertexQuadric/SetVertexQuadric/AddVertexQuadric.
type Vertex struct {
	Position mgl64.Vec3
	Quadric  vecmath.Quadric
	Valid    bool
}

// Edge holds its two endpoint vertex ids in canonical order (V0 < V1),
// up to two incident triangle ids (T0 < T1, or T1 = InvalidTriangle
// for a boundary edge), a validity flag and the cost/optimal point the
// simplifier caches on it between costing and contraction.
type Edge struct {
	V0, V1 VertexID
	T0, T1 TriangleID
	Valid  bool

	Cost    float32
	Optimal mgl64.Vec3

	// extra holds triangle ids beyond T0/T1 for edges accepted under
	// non-manifold mode. It is always empty when manifold mode is
	// active, since a third observation is then rejected outright.
	extra []TriangleID
}

// Triangle holds three distinct vertex ids, the three edge ids that
// bound it, the face id it was tagged with on construction and a
// validity flag. Plane is the per-triangle plane quadric computed by
// the simplifier's initialization phase; it is stored here so the
// simplifier does not need a second triangle-indexed table of its own.
type Triangle struct {
	V0, V1, V2 VertexID
	E0, E1, E2 EdgeID
	FaceID     int
	Valid      bool
	Plane      vecmath.Quadric

	// OriginalIndex is the position of this triangle in the input
	// mesh's triangle slice, carried through for callers that want to
	// trace a surviving triangle back to its source.
	OriginalIndex int
}

// Stats is a read-only snapshot of the connectivity's live entity
// counts, used by the simplifier to decide when to stop contracting
// and by callers inspecting progress.
type Stats struct {
	LiveVertices  int
	LiveEdges     int
	LiveTriangles int
}

func canonicalKey(a, b VertexID) [2]VertexID {
	if a <= b {
		return [2]VertexID{a, b}
	}
	return [2]VertexID{b, a}
}

func hasDuplicateNonInvalid(a, b, c EdgeID) bool {
	if a != InvalidEdge && (a == b || a == c) {
		return true
	}
	return b != InvalidEdge && b == c
}
