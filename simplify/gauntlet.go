package simplify

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/xbimgo/meshkernel/meshconn"
	"github.com/xbimgo/meshkernel/vecmath"
)

// gauntletPasses runs the full safety check for contracting edge e. It
// never mutates the connectivity; it only reads.
func gauntletPasses(conn *meshconn.MeshConnectivity, e meshconn.EdgeID) bool {
	edge := conn.Edge(e)
	v0, v1 := edge.V0, edge.V1
	t0, t1 := edge.T0, edge.T1
	interior := t1 != meshconn.InvalidTriangle

	// A boundary edge's own two endpoints are always boundary vertices,
	// so this also permanently excludes every boundary edge itself:
	// the boundary loop of a mesh is never touched by simplification,
	// only the interior triangles feeding into it.
	if conn.IsBoundaryVertex(v0) && conn.IsBoundaryVertex(v1) {
		return false
	}

	thirdV0, thirdV1 := meshconn.InvalidVertex, meshconn.InvalidVertex
	if t0 != meshconn.InvalidTriangle {
		thirdV0 = thirdVertex(conn, t0, v0, v1)
	}
	if interior {
		thirdV1 = thirdVertex(conn, t1, v0, v1)
		if thirdV0 == thirdV1 {
			return false
		}
	}

	// Neighbourhood test and link condition both reduce, for a
	// two-triangle-or-fewer edge, to the same structural requirement:
	// any vertex adjacent to both v0 and v1 must already be one of
	// t0/t1's third vertices, or contracting the edge would leave a
	// vertex shared by three triangles across the collapsed edge.
	if !sharedNeighboursAreThirdVertices(conn, v0, v1, thirdV0, thirdV1) {
		return false
	}

	// The boundary-edge manifoldness sub-case (an "ear" triangle whose
	// other two edges are also boundary) is subsumed by the
	// two-boundary-endpoints rule above, since every vertex of such a
	// triangle is already a boundary vertex; only the interior,
	// valence-3 sub-case needs an explicit check here.
	if interior && (valence(conn, v0) == 3 || valence(conn, v1) == 3) {
		if separatesAcrossOppositeEdge(conn, thirdV0, thirdV1, v0, v1) {
			return false
		}
	}

	if !normalFlipOK(conn, v0, v1, edge.Optimal, t0, t1) {
		return false
	}

	return true
}

func thirdVertex(conn *meshconn.MeshConnectivity, t meshconn.TriangleID, v0, v1 meshconn.VertexID) meshconn.VertexID {
	tri := conn.Triangle(t)
	for _, v := range [3]meshconn.VertexID{tri.V0, tri.V1, tri.V2} {
		if v != v0 && v != v1 {
			return v
		}
	}
	return meshconn.InvalidVertex
}

func vertexNeighbours(conn *meshconn.MeshConnectivity, v meshconn.VertexID) map[meshconn.VertexID]bool {
	set := make(map[meshconn.VertexID]bool)
	for _, e := range conn.GetVertexEdges(v) {
		set[conn.GetOtherVertex(e, v)] = true
	}
	return set
}

func sharedNeighboursAreThirdVertices(conn *meshconn.MeshConnectivity, v0, v1, thirdV0, thirdV1 meshconn.VertexID) bool {
	n0 := vertexNeighbours(conn, v0)
	n1 := vertexNeighbours(conn, v1)
	delete(n0, v1)
	delete(n1, v0)
	for v := range n0 {
		if n1[v] && v != thirdV0 && v != thirdV1 {
			return false
		}
	}
	return true
}

func valence(conn *meshconn.MeshConnectivity, v meshconn.VertexID) int {
	return len(conn.GetVertexEdges(v))
}

// separatesAcrossOppositeEdge reports whether the edge between the two
// third vertices is itself interior and its two incident triangles put
// v0 and v1 on opposite sides - the condition under which collapsing a
// valence-3 vertex would split the one-ring rather than merely
// shrinking it.
func separatesAcrossOppositeEdge(conn *meshconn.MeshConnectivity, thirdV0, thirdV1, v0, v1 meshconn.VertexID) bool {
	if thirdV0 == meshconn.InvalidVertex || thirdV1 == meshconn.InvalidVertex {
		return false
	}
	opp := conn.FindEdge(thirdV0, thirdV1)
	if opp == meshconn.InvalidEdge || conn.IsBoundaryEdge(opp) {
		return false
	}
	ta, tb := conn.GetEdgeTriangles(opp)
	if ta == meshconn.InvalidTriangle || tb == meshconn.InvalidTriangle {
		return false
	}
	if conn.TriangleHasVertex(ta, v0) && conn.TriangleHasVertex(tb, v1) {
		return true
	}
	if conn.TriangleHasVertex(ta, v1) && conn.TriangleHasVertex(tb, v0) {
		return true
	}
	return false
}

// normalFlipOK checks every valid triangle incident on v0 or v1, other
// than the edge's own t0/t1 (which disappear on contraction), for an
// excessive orientation change once v0 and v1 are both replaced by
// target.
func normalFlipOK(conn *meshconn.MeshConnectivity, v0, v1 meshconn.VertexID, target mgl64.Vec3, t0, t1 meshconn.TriangleID) bool {
	seen := make(map[meshconn.TriangleID]bool)
	ring := append(conn.GetVertexTriangles(v0), conn.GetVertexTriangles(v1)...)
	for _, t := range ring {
		if t == t0 || t == t1 || seen[t] {
			continue
		}
		seen[t] = true
		tri := conn.Triangle(t)
		if !tri.Valid {
			continue
		}
		verts := [3]meshconn.VertexID{tri.V0, tri.V1, tri.V2}
		var oldPos, newPos [3]mgl64.Vec3
		for i, v := range verts {
			p := conn.Vertex(v).Position
			oldPos[i] = p
			if v == v0 || v == v1 {
				newPos[i] = target
			} else {
				newPos[i] = p
			}
		}
		oldCross := oldPos[1].Sub(oldPos[0]).Cross(oldPos[2].Sub(oldPos[0]))
		if oldCross.Len() < vecmath.MinTriangleArea {
			continue
		}
		newCross := newPos[1].Sub(newPos[0]).Cross(newPos[2].Sub(newPos[0]))
		if newCross.Len() < vecmath.MinVectorLength {
			return false
		}
		if oldCross.Normalize().Dot(newCross.Normalize()) < vecmath.NormalFlipCosine {
			return false
		}
	}
	return true
}
