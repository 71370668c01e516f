// Package simplify implements Garland-Heckbert quadric-error edge
// contraction: given a triangle mesh and a target triangle count, it
// repeatedly collapses the cheapest safe edge until the target is
// reached or no further safe collapse exists.
package simplify

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/xbimgo/meshkernel/heapq"
	"github.com/xbimgo/meshkernel/mesh"
	"github.com/xbimgo/meshkernel/meshconn"
	"github.com/xbimgo/meshkernel/vecmath"
)

// Result reports what a Run call actually did, since a target triangle
// count is a request the safety gauntlet may not be able to fully
// satisfy on a highly constrained mesh.
type Result struct {
	Mesh             mesh.TriangleMesh
	TrianglesRemoved int
	EdgesSkipped     int
	TargetReached    bool
}

// Run simplifies input toward targetTriangles live triangles. It
// returns an error if targetTriangles is negative, if input is not a
// valid 2-manifold mesh (a non-manifold edge, detected while building
// connectivity), or, with step validation enabled, if a connectivity
// invariant breaks after a contraction; an unreachable target because
// every remaining edge fails the safety gauntlet is not an error, it
// is reported via Result.TargetReached.
func (s *Simplifier) Run(input mesh.TriangleMesh, targetTriangles int) (Result, error) {
	if targetTriangles < 0 {
		return Result{}, fmt.Errorf("simplify: target triangle count must be >= 0, got %d", targetTriangles)
	}

	positions := make([]mgl64.Vec3, len(input.Vertices))
	for i, v := range input.Vertices {
		positions[i] = v.Position
	}
	conn := meshconn.New(positions, false)

	if err := buildConnectivity(conn, input); err != nil {
		return Result{}, err
	}

	initializeQuadrics(conn)

	h := heapq.New(conn.EdgeCount())
	for e := 0; e < conn.EdgeCount(); e++ {
		eid := meshconn.EdgeID(e)
		if !conn.Edge(eid).Valid {
			continue
		}
		cost, optimal := computeEdgeCost(conn, eid)
		conn.SetEdgeCost(eid, float32(cost), optimal)
		h.Push(int(eid), float32(cost))
	}

	edgesSkipped := 0
	for conn.Stats().LiveTriangles > targetTriangles {
		id, ok := h.PopMin()
		if !ok {
			break
		}
		e := meshconn.EdgeID(id)
		if !conn.Edge(e).Valid {
			continue
		}
		if !gauntletPasses(conn, e) {
			edgesSkipped++
			continue
		}
		contract(conn, h, e)

		if s.opts.validateEachStep {
			if err := conn.Validate(); err != nil {
				return Result{}, fmt.Errorf("simplify: connectivity invariant violated after contracting edge %d: %w", e, err)
			}
		}
	}

	out := rebuild(conn, input.Precision)
	return Result{
		Mesh:             out,
		TrianglesRemoved: len(input.Triangles) - len(out.Triangles),
		EdgesSkipped:     edgesSkipped,
		TargetReached:    len(out.Triangles) <= targetTriangles,
	}, nil
}

// buildConnectivity feeds every input triangle into conn, converting a
// non-manifold-attach panic into a returned error: the simplifier
// rejects non-manifold input gracefully rather than requiring the
// caller to pre-validate it.
func buildConnectivity(conn *meshconn.MeshConnectivity, input mesh.TriangleMesh) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simplify: input mesh is not 2-manifold: %v", r)
		}
	}()
	for i, t := range input.Triangles {
		conn.AddTriangle(t.FaceID, meshconn.VertexID(t.V0), meshconn.VertexID(t.V1), meshconn.VertexID(t.V2), i)
	}
	return nil
}

// initializeQuadrics is phase A: every valid triangle contributes its
// area-scaled plane quadric to each of its three vertices.
func initializeQuadrics(conn *meshconn.MeshConnectivity) {
	for t := 0; t < conn.TriangleCount(); t++ {
		tid := meshconn.TriangleID(t)
		tri := conn.Triangle(tid)
		if !tri.Valid {
			continue
		}
		p0 := conn.Vertex(tri.V0).Position
		p1 := conn.Vertex(tri.V1).Position
		p2 := conn.Vertex(tri.V2).Position
		q, area := vecmath.FromTriangle(p0, p1, p2)
		if area == 0 {
			continue
		}
		conn.SetTrianglePlane(tid, q)
		scaled := q.Scale(area)
		conn.AddVertexQuadric(tri.V0, scaled)
		conn.AddVertexQuadric(tri.V1, scaled)
		conn.AddVertexQuadric(tri.V2, scaled)
	}
}

// computeEdgeCost is phase B's per-edge rule: a boundary edge costs the
// midpoint, an edge with exactly one boundary endpoint is pinned to
// that endpoint, and a fully interior edge uses the quadric's optimal
// point.
func computeEdgeCost(conn *meshconn.MeshConnectivity, e meshconn.EdgeID) (cost float64, optimal mgl64.Vec3) {
	edge := conn.Edge(e)
	v0, v1 := edge.V0, edge.V1
	q := conn.VertexQuadric(v0).Add(conn.VertexQuadric(v1))

	p0 := conn.Vertex(v0).Position
	p1 := conn.Vertex(v1).Position
	boundary0 := conn.IsBoundaryVertex(v0)
	boundary1 := conn.IsBoundaryVertex(v1)

	var target mgl64.Vec3
	switch {
	case conn.IsBoundaryEdge(e):
		target = p0.Add(p1).Mul(0.5)
	case boundary0 && !boundary1:
		target = p0
	case boundary1 && !boundary0:
		target = p1
	default:
		target = q.Optimal(p0, p1)
	}
	return q.Evaluate(target), target
}

// contract collapses e: v1 is folded into v0 at the edge's cached
// optimal point, every triangle and edge previously incident on v1 is
// rewired or removed, and every edge still incident on the surviving
// vertex is re-priced.
func contract(conn *meshconn.MeshConnectivity, h *heapq.IndexedMinHeap, e meshconn.EdgeID) {
	edge := conn.Edge(e)
	v0, v1 := edge.V0, edge.V1
	target := edge.Optimal
	t0, t1 := edge.T0, edge.T1

	trisOnV1 := conn.GetVertexTriangles(v1)

	conn.SetVertexPosition(v0, target)
	conn.AddVertexQuadric(v0, conn.VertexQuadric(v1))
	conn.InvalidateVertex(v1)

	if t0 != meshconn.InvalidTriangle {
		conn.RemoveTriangle(t0)
	}
	if t1 != meshconn.InvalidTriangle {
		conn.RemoveTriangle(t1)
	}

	for _, t := range trisOnV1 {
		if t == t0 || t == t1 || !conn.Triangle(t).Valid {
			continue
		}
		conn.ReplaceTriangleVertex(t, v1, v0)
	}

	// Any edge still dangling on v1 once every incident triangle has
	// been rewritten or removed is a stub with nothing left
	// referencing it and is dropped explicitly.
	for _, remaining := range conn.GetVertexEdges(v1) {
		conn.RemoveEdge(remaining)
	}

	for _, e2 := range conn.GetVertexEdges(v0) {
		cost, optimal := computeEdgeCost(conn, e2)
		conn.SetEdgeCost(e2, float32(cost), optimal)
		if h.Contains(int(e2)) {
			h.Update(int(e2), float32(cost))
		} else {
			h.Push(int(e2), float32(cost))
		}
	}
}

// rebuild is phase D: it re-emits every live triangle under a dense,
// remapped vertex numbering and unifies each face id's winding.
func rebuild(conn *meshconn.MeshConnectivity, precision float64) mesh.TriangleMesh {
	remap := make([]int, conn.VertexCount())
	vertices := make([]mesh.Vertex, 0, conn.VertexCount())
	for v := 0; v < conn.VertexCount(); v++ {
		vv := conn.Vertex(meshconn.VertexID(v))
		if !vv.Valid {
			remap[v] = -1
			continue
		}
		remap[v] = len(vertices)
		vertices = append(vertices, mesh.Vertex{Position: vv.Position})
	}

	triangles := make([]mesh.Triangle, 0, conn.TriangleCount())
	for t := 0; t < conn.TriangleCount(); t++ {
		tri := conn.Triangle(meshconn.TriangleID(t))
		if !tri.Valid {
			continue
		}
		triangles = append(triangles, mesh.Triangle{
			FaceID:        tri.FaceID,
			V0:            remap[tri.V0],
			V1:            remap[tri.V1],
			V2:            remap[tri.V2],
			OriginalIndex: tri.OriginalIndex,
		})
	}

	out := mesh.TriangleMesh{Vertices: vertices, Triangles: triangles, Precision: precision}
	out.UnifyFaceOrientation()
	return out
}
