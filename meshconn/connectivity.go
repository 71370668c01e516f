package meshconn

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/xbimgo/meshkernel/vecmath"
)

// MeshConnectivity is the adjacency store for a single triangle mesh.
// It is not safe for concurrent use: one caller owns it exclusively
// for the lifetime of a simplification run, per the single-threaded
// cooperative scheduling model of the package it serves.
type MeshConnectivity struct {
	vertices  []Vertex
	edges     []Edge
	triangles []Triangle

	// vertexEdges[v] is the ordered collection of edge ids incident on
	// vertex v. Every entry is kept live: removing or rewriting an
	// edge always updates both endpoints' lists.
	vertexEdges [][]EdgeID

	// edgeKey maps a canonical (min, max) vertex pair to its edge id,
	// giving FindEdge its O(1) lookup.
	edgeKey map[[2]VertexID]EdgeID

	allowNonManifold bool

	liveVertices  int
	liveEdges     int
	liveTriangles int
}

// New creates a connectivity structure with one vertex per position.
// allowNonManifold controls how AddTriangle handles an edge's third
// incident-triangle observation: rejected when false, accepted (and
// tracked out of band) when true. The simplifier always constructs
// with allowNonManifold=false, per its manifold-input contract.
func New(positions []mgl64.Vec3, allowNonManifold bool) *MeshConnectivity {
	vertices := make([]Vertex, len(positions))
	for i, p := range positions {
		vertices[i] = Vertex{Position: p, Valid: true}
	}
	return &MeshConnectivity{
		vertices:         vertices,
		vertexEdges:      make([][]EdgeID, len(positions)),
		edgeKey:          make(map[[2]VertexID]EdgeID, len(positions)*3),
		allowNonManifold: allowNonManifold,
		liveVertices:     len(positions),
	}
}

// Stats returns a snapshot of the current live entity counts.
func (m *MeshConnectivity) Stats() Stats {
	return Stats{LiveVertices: m.liveVertices, LiveEdges: m.liveEdges, LiveTriangles: m.liveTriangles}
}

// AddTriangle assigns a fresh triangle id for (v0, v1, v2) tagged with
// faceID, attaching to or creating each of its three edges. Degenerate
// input (a repeated vertex) is rejected by returning InvalidTriangle.
// A non-manifold third attach to an edge while manifold mode is active
// is a programmer/input error and panics, per the connectivity's
// fatal-error contract; callers that need to reject non-manifold
// input gracefully (the simplifier's mesh-build phase) recover from
// it themselves. originalIndex is stored verbatim on the resulting
// Triangle for callers that want to trace it back to their own input
// slice; the connectivity itself attaches no meaning to it.
func (m *MeshConnectivity) AddTriangle(faceID int, v0, v1, v2 VertexID, originalIndex int) TriangleID {
	if v0 == v1 || v1 == v2 || v0 == v2 {
		return InvalidTriangle
	}

	pairs := [3][2]VertexID{{v0, v1}, {v1, v2}, {v2, v0}}
	if !m.allowNonManifold {
		for _, pr := range pairs {
			if eid, ok := m.edgeKey[canonicalKey(pr[0], pr[1])]; ok {
				edge := &m.edges[eid]
				if edge.Valid && edge.T0 != InvalidTriangle && edge.T1 != InvalidTriangle {
					panic(fmt.Sprintf("meshconn: non-manifold attach at edge (%d,%d) while manifold mode is active", pr[0], pr[1]))
				}
			}
		}
	}

	tid := TriangleID(len(m.triangles))
	m.triangles = append(m.triangles, Triangle{
		V0: v0, V1: v1, V2: v2,
		E0: InvalidEdge, E1: InvalidEdge, E2: InvalidEdge,
		FaceID:        faceID,
		Valid:         true,
		OriginalIndex: originalIndex,
	})

	var edgeIDs [3]EdgeID
	for i, pr := range pairs {
		edgeIDs[i] = m.attachTriangleToEdge(pr[0], pr[1], tid)
	}
	m.triangles[tid].E0, m.triangles[tid].E1, m.triangles[tid].E2 = edgeIDs[0], edgeIDs[1], edgeIDs[2]
	m.liveTriangles++
	return tid
}

func (m *MeshConnectivity) attachTriangleToEdge(a, b VertexID, tid TriangleID) EdgeID {
	key := canonicalKey(a, b)
	if eid, ok := m.edgeKey[key]; ok {
		edge := &m.edges[eid]
		switch {
		case edge.T0 == InvalidTriangle:
			edge.T0 = tid
		case edge.T1 == InvalidTriangle:
			edge.T0, edge.T1 = minTri(edge.T0, tid), maxTri(edge.T0, tid)
		default:
			edge.extra = append(edge.extra, tid)
		}
		return eid
	}

	eid := EdgeID(len(m.edges))
	m.edges = append(m.edges, Edge{V0: key[0], V1: key[1], T0: tid, T1: InvalidTriangle, Valid: true})
	m.edgeKey[key] = eid
	m.vertexEdges[key[0]] = append(m.vertexEdges[key[0]], eid)
	m.vertexEdges[key[1]] = append(m.vertexEdges[key[1]], eid)
	m.liveEdges++
	return eid
}

func minTri(a, b TriangleID) TriangleID {
	if a < b {
		return a
	}
	return b
}

func maxTri(a, b TriangleID) TriangleID {
	if a > b {
		return a
	}
	return b
}

// RemoveTriangle invalidates t and detaches it from each of its three
// edges, promoting a surviving T1 into T0 where applicable. Edges left
// with no incident triangle are removed. Removing an already-invalid
// or unknown id is a silent no-op.
func (m *MeshConnectivity) RemoveTriangle(t TriangleID) {
	if !m.triangleExists(t) || !m.triangles[t].Valid {
		return
	}
	tri := m.triangles[t]
	m.invalidateTriangle(t)
	for _, e := range [3]EdgeID{tri.E0, tri.E1, tri.E2} {
		m.detachTriangleFromEdge(e, t)
	}
}

func (m *MeshConnectivity) invalidateTriangle(t TriangleID) {
	if !m.triangles[t].Valid {
		return
	}
	m.triangles[t].Valid = false
	m.liveTriangles--
}

func (m *MeshConnectivity) detachTriangleFromEdge(e EdgeID, t TriangleID) {
	if !m.edgeExists(e) || !m.edges[e].Valid {
		return
	}
	edge := &m.edges[e]
	switch {
	case edge.T0 == t:
		edge.T0 = edge.T1
		edge.T1 = InvalidTriangle
	case edge.T1 == t:
		edge.T1 = InvalidTriangle
	default:
		for i, x := range edge.extra {
			if x == t {
				edge.extra = append(edge.extra[:i], edge.extra[i+1:]...)
				break
			}
		}
	}
	if edge.T0 == InvalidTriangle && edge.T1 == InvalidTriangle && len(edge.extra) == 0 {
		m.removeEdgeUnconditional(e)
	}
}

// RemoveEdge removes e and nulls it out of every triangle that
// referenced it. A triangle whose three edge slots all become
// InvalidEdge, or whose remaining edge triple contains a duplicate
// non-invalid id, is also invalidated and removed. Removing an
// already-invalid or unknown id is a silent no-op.
func (m *MeshConnectivity) RemoveEdge(e EdgeID) {
	if !m.edgeExists(e) || !m.edges[e].Valid {
		return
	}
	edge := m.edges[e]
	affected := make([]TriangleID, 0, 2+len(edge.extra))
	if edge.T0 != InvalidTriangle {
		affected = append(affected, edge.T0)
	}
	if edge.T1 != InvalidTriangle {
		affected = append(affected, edge.T1)
	}
	affected = append(affected, edge.extra...)

	m.removeEdgeUnconditional(e)

	for _, t := range affected {
		if !m.triangleExists(t) || !m.triangles[t].Valid {
			continue
		}
		tri := &m.triangles[t]
		for _, slot := range [3]*EdgeID{&tri.E0, &tri.E1, &tri.E2} {
			if *slot == e {
				*slot = InvalidEdge
			}
		}
		if tri.E0 == InvalidEdge && tri.E1 == InvalidEdge && tri.E2 == InvalidEdge {
			m.invalidateTriangle(t)
			continue
		}
		if hasDuplicateNonInvalid(tri.E0, tri.E1, tri.E2) {
			m.invalidateTriangle(t)
		}
	}
}

// removeEdgeUnconditional deletes an edge from every table without
// touching the triangles that referenced it - the caller is
// responsible for that side (RemoveEdge does it explicitly;
// detachTriangleFromEdge calls this only once the edge has no
// incident triangles left to clean up).
func (m *MeshConnectivity) removeEdgeUnconditional(e EdgeID) {
	edge := &m.edges[e]
	if !edge.Valid {
		return
	}
	edge.Valid = false
	m.liveEdges--
	delete(m.edgeKey, canonicalKey(edge.V0, edge.V1))
	m.removeFromVertexEdges(edge.V0, e)
	m.removeFromVertexEdges(edge.V1, e)
}

func (m *MeshConnectivity) removeFromVertexEdges(v VertexID, e EdgeID) {
	list := m.vertexEdges[v]
	for i, id := range list {
		if id == e {
			m.vertexEdges[v] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// ReplaceTriangleVertex rewrites old to new in t's vertex triple. If
// the result is degenerate (two of the three vertices now equal), t is
// invalidated and ReplaceTriangleVertex returns false. Otherwise it
// detaches the triangle's three edges and re-attaches it against the
// new vertex triple, returning true.
func (m *MeshConnectivity) ReplaceTriangleVertex(t TriangleID, old, new VertexID) bool {
	if !m.triangleExists(t) || !m.triangles[t].Valid {
		return false
	}
	tri := &m.triangles[t]
	verts := [3]VertexID{tri.V0, tri.V1, tri.V2}
	replaced := false
	for i, v := range verts {
		if v == old {
			verts[i] = new
			replaced = true
		}
	}
	if !replaced {
		return false
	}
	if verts[0] == verts[1] || verts[1] == verts[2] || verts[0] == verts[2] {
		m.RemoveTriangle(t)
		return false
	}

	oldEdges := [3]EdgeID{tri.E0, tri.E1, tri.E2}
	for _, e := range oldEdges {
		m.detachTriangleFromEdge(e, t)
	}

	tri.V0, tri.V1, tri.V2 = verts[0], verts[1], verts[2]
	pairs := [3][2]VertexID{{verts[0], verts[1]}, {verts[1], verts[2]}, {verts[2], verts[0]}}
	edgeSlots := [3]*EdgeID{&tri.E0, &tri.E1, &tri.E2}
	for i, pr := range pairs {
		*edgeSlots[i] = m.attachTriangleToEdge(pr[0], pr[1], t)
	}
	return true
}

// ReplaceEdgeVertex rewrites old to new in e's endpoint pair and
// re-registers vertex-edge incidence under the new canonical key. old
// not being one of e's endpoints is a programmer error and panics.
// The caller is responsible for removing the edge afterwards if the
// rewrite left it with equal endpoints (a self-collapsed edge).
func (m *MeshConnectivity) ReplaceEdgeVertex(e EdgeID, old, new VertexID) {
	if !m.edgeExists(e) || !m.edges[e].Valid {
		return
	}
	edge := &m.edges[e]
	var newV0, newV1 VertexID
	switch old {
	case edge.V0:
		newV0, newV1 = new, edge.V1
	case edge.V1:
		newV0, newV1 = edge.V0, new
	default:
		panic(fmt.Sprintf("meshconn: ReplaceEdgeVertex: vertex %d is not on edge %d", old, e))
	}

	delete(m.edgeKey, canonicalKey(edge.V0, edge.V1))
	m.removeFromVertexEdges(edge.V0, e)
	m.removeFromVertexEdges(edge.V1, e)

	key := canonicalKey(newV0, newV1)
	edge.V0, edge.V1 = key[0], key[1]
	m.edgeKey[key] = e
	m.vertexEdges[edge.V0] = append(m.vertexEdges[edge.V0], e)
	m.vertexEdges[edge.V1] = append(m.vertexEdges[edge.V1], e)
}

// FindEdge returns the id of the edge between a and b, or InvalidEdge
// if no such edge exists.
func (m *MeshConnectivity) FindEdge(a, b VertexID) EdgeID {
	if eid, ok := m.edgeKey[canonicalKey(a, b)]; ok {
		return eid
	}
	return InvalidEdge
}

// GetEdgeTriangles returns the up-to-two triangle ids incident on e.
func (m *MeshConnectivity) GetEdgeTriangles(e EdgeID) (t0, t1 TriangleID) {
	if !m.edgeExists(e) || !m.edges[e].Valid {
		return InvalidTriangle, InvalidTriangle
	}
	edge := m.edges[e]
	return edge.T0, edge.T1
}

// GetVertexEdges returns the ids of the edges currently incident on v.
func (m *MeshConnectivity) GetVertexEdges(v VertexID) []EdgeID {
	if !m.vertexExists(v) {
		return nil
	}
	out := make([]EdgeID, len(m.vertexEdges[v]))
	copy(out, m.vertexEdges[v])
	return out
}

// GetVertexTriangles returns the distinct triangle ids incident on v,
// derived from v's incident edges rather than a separately maintained
// table.
func (m *MeshConnectivity) GetVertexTriangles(v VertexID) []TriangleID {
	if !m.vertexExists(v) {
		return nil
	}
	seen := make(map[TriangleID]bool)
	var out []TriangleID
	for _, e := range m.vertexEdges[v] {
		edge := m.edges[e]
		for _, t := range append([]TriangleID{edge.T0, edge.T1}, edge.extra...) {
			if t != InvalidTriangle && !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// GetOtherVertex returns the endpoint of e that is not v. v not being
// one of e's endpoints is a programmer error and panics.
func (m *MeshConnectivity) GetOtherVertex(e EdgeID, v VertexID) VertexID {
	edge := m.edges[e]
	switch v {
	case edge.V0:
		return edge.V1
	case edge.V1:
		return edge.V0
	default:
		panic(fmt.Sprintf("meshconn: GetOtherVertex: vertex %d is not on edge %d", v, e))
	}
}

// TriangleHasVertex reports whether t references v.
func (m *MeshConnectivity) TriangleHasVertex(t TriangleID, v VertexID) bool {
	tri := m.triangles[t]
	return tri.V0 == v || tri.V1 == v || tri.V2 == v
}

// IsBoundaryEdge reports whether e has exactly one incident triangle.
func (m *MeshConnectivity) IsBoundaryEdge(e EdgeID) bool {
	if !m.edgeExists(e) || !m.edges[e].Valid {
		return false
	}
	return m.edges[e].T1 == InvalidTriangle
}

// IsBoundaryVertex reports whether any edge incident on v is a
// boundary edge.
func (m *MeshConnectivity) IsBoundaryVertex(v VertexID) bool {
	if !m.vertexExists(v) {
		return false
	}
	for _, e := range m.vertexEdges[v] {
		if m.IsBoundaryEdge(e) {
			return true
		}
	}
	return false
}

// Edge, Triangle and Vertex return copies of the row at the given id.
// Callers that need to mutate the underlying quadric or position use
// the dedicated setters below instead of writing back a copy.
func (m *MeshConnectivity) Edge(e EdgeID) Edge         { return m.edges[e] }
func (m *MeshConnectivity) Triangle(t TriangleID) Triangle { return m.triangles[t] }
func (m *MeshConnectivity) Vertex(v VertexID) Vertex   { return m.vertices[v] }

// EdgeCount, TriangleCount and VertexCount return the size of the
// underlying (not-necessarily-live) backing tables, for callers that
// want to iterate every slot including invalidated rows.
func (m *MeshConnectivity) EdgeCount() int     { return len(m.edges) }
func (m *MeshConnectivity) TriangleCount() int { return len(m.triangles) }
func (m *MeshConnectivity) VertexCount() int   { return len(m.vertices) }

// SetEdgeCost caches a cost and optimal contraction point on e, as
// computed by the simplifier's edge-costing phase.
func (m *MeshConnectivity) SetEdgeCost(e EdgeID, cost float32, optimal mgl64.Vec3) {
	m.edges[e].Cost = cost
	m.edges[e].Optimal = optimal
}

// SetTrianglePlane stores the plane quadric computed for t during
// quadric initialization.
func (m *MeshConnectivity) SetTrianglePlane(t TriangleID, q vecmath.Quadric) {
	m.triangles[t].Plane = q
}

// SetVertexPosition moves v to a new position, as happens when an
// edge contraction relocates the retained vertex to its optimal
// point.
func (m *MeshConnectivity) SetVertexPosition(v VertexID, p mgl64.Vec3) {
	m.vertices[v].Position = p
}

// VertexQuadric returns v's accumulated quadric.
func (m *MeshConnectivity) VertexQuadric(v VertexID) vecmath.Quadric {
	return m.vertices[v].Quadric
}

// SetVertexQuadric overwrites v's accumulated quadric.
func (m *MeshConnectivity) SetVertexQuadric(v VertexID, q vecmath.Quadric) {
	m.vertices[v].Quadric = q
}

// AddVertexQuadric adds q onto v's accumulated quadric, used when
// folding a contracted vertex's quadric into the vertex it survives
// into.
func (m *MeshConnectivity) AddVertexQuadric(v VertexID, q vecmath.Quadric) {
	m.vertices[v].Quadric = m.vertices[v].Quadric.Add(q)
}

// InvalidateVertex marks v dead. It never renumbers the slot: v's id
// simply stops appearing in any live triangle or edge from this point
// on.
func (m *MeshConnectivity) InvalidateVertex(v VertexID) {
	if !m.vertices[v].Valid {
		return
	}
	m.vertices[v].Valid = false
	m.liveVertices--
}

func (m *MeshConnectivity) vertexExists(v VertexID) bool {
	return v >= 0 && int(v) < len(m.vertices)
}
func (m *MeshConnectivity) edgeExists(e EdgeID) bool {
	return e >= 0 && int(e) < len(m.edges)
}
func (m *MeshConnectivity) triangleExists(t TriangleID) bool {
	return t >= 0 && int(t) < len(m.triangles)
}
