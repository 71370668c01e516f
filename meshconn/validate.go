package meshconn

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants a live connectivity must
// hold at any point in a simplification run:
//
//  1. canonical edge keys (V0 < V1, unique in the index)
//  2. adjacency closure (a triangle's edges exist, are live, and their
//     endpoints match the triangle's vertex pairs)
//  3. at most two triangles per edge, with a live triangle in every
//     non-invalid slot
//  4. vertex-edge duality in both directions
//  5. no degenerate live triangle (repeated vertex)
//
// It returns nil when every invariant holds, or a joined error
// describing every violation found.
func (m *MeshConnectivity) Validate() error {
	var problems []error

	seenKeys := make(map[[2]VertexID]EdgeID)
	for eid := 0; eid < len(m.edges); eid++ {
		e := EdgeID(eid)
		edge := m.edges[e]
		if !edge.Valid {
			continue
		}
		if edge.V0 >= edge.V1 {
			problems = append(problems, fmt.Errorf("edge %d: endpoints not canonical (%d, %d)", e, edge.V0, edge.V1))
		}
		key := canonicalKey(edge.V0, edge.V1)
		if other, ok := seenKeys[key]; ok {
			problems = append(problems, fmt.Errorf("edge %d and %d share the same vertex pair (%d, %d)", e, other, edge.V0, edge.V1))
		} else {
			seenKeys[key] = e
		}

		if edge.T0 == InvalidTriangle && edge.T1 == InvalidTriangle {
			problems = append(problems, fmt.Errorf("edge %d has no incident triangle and should not exist", e))
		}
		for _, t := range [2]TriangleID{edge.T0, edge.T1} {
			if t == InvalidTriangle {
				continue
			}
			if !m.triangleExists(t) || !m.triangles[t].Valid {
				problems = append(problems, fmt.Errorf("edge %d references non-live triangle %d", e, t))
				continue
			}
			if !edgeAppearsOnTriangle(m.triangles[t], e) {
				problems = append(problems, fmt.Errorf("triangle %d does not list edge %d though the edge references it", t, e))
			}
		}

		for _, v := range [2]VertexID{edge.V0, edge.V1} {
			if !containsEdge(m.vertexEdges[v], e) {
				problems = append(problems, fmt.Errorf("vertex %d's incidence list is missing live edge %d", v, e))
			}
		}
	}

	for tid := 0; tid < len(m.triangles); tid++ {
		t := TriangleID(tid)
		tri := m.triangles[t]
		if !tri.Valid {
			continue
		}
		if tri.V0 == tri.V1 || tri.V1 == tri.V2 || tri.V0 == tri.V2 {
			problems = append(problems, fmt.Errorf("triangle %d is degenerate: vertices (%d, %d, %d)", t, tri.V0, tri.V1, tri.V2))
		}
		pairs := [3][2]VertexID{{tri.V0, tri.V1}, {tri.V1, tri.V2}, {tri.V2, tri.V0}}
		edges := [3]EdgeID{tri.E0, tri.E1, tri.E2}
		for i, e := range edges {
			if !m.edgeExists(e) || !m.edges[e].Valid {
				problems = append(problems, fmt.Errorf("triangle %d edge slot %d (%d) is not a live edge", t, i, e))
				continue
			}
			key := canonicalKey(pairs[i][0], pairs[i][1])
			edge := m.edges[e]
			if canonicalKey(edge.V0, edge.V1) != key {
				problems = append(problems, fmt.Errorf("triangle %d edge slot %d endpoints (%d,%d) do not match edge %d endpoints (%d,%d)",
					t, i, pairs[i][0], pairs[i][1], e, edge.V0, edge.V1))
			}
		}
	}

	for v := 0; v < len(m.vertexEdges); v++ {
		if !m.vertices[v].Valid {
			continue
		}
		for _, e := range m.vertexEdges[v] {
			if !m.edgeExists(e) || !m.edges[e].Valid {
				problems = append(problems, fmt.Errorf("vertex %d's incidence list references non-live edge %d", v, e))
				continue
			}
			edge := m.edges[e]
			if edge.V0 != VertexID(v) && edge.V1 != VertexID(v) {
				problems = append(problems, fmt.Errorf("vertex %d's incidence list references edge %d which does not touch it", v, e))
			}
		}
	}

	return errors.Join(problems...)
}

func edgeAppearsOnTriangle(tri Triangle, e EdgeID) bool {
	return tri.E0 == e || tri.E1 == e || tri.E2 == e
}

func containsEdge(edges []EdgeID, e EdgeID) bool {
	for _, x := range edges {
		if x == e {
			return true
		}
	}
	return false
}
