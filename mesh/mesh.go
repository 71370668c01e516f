// Package mesh defines the plain triangle-mesh data transfer types
// that cross the simplifier's boundary: the input the caller hands in,
// and the fresh, independently owned mesh the simplifier hands back.
package mesh

import "github.com/go-gl/mathgl/mgl64"

// Vertex is a single point in an indexed triangle mesh.
type Vertex struct {
	Position mgl64.Vec3
}

// Triangle references three vertex indices in winding order and
// carries the opaque face id tagging which original surface it came
// from. Face ids are preserved through simplification. OriginalIndex
// is the triangle's position in the input mesh's Triangles slice,
// carried through contraction and rebuild as an audit aid for callers
// that want to trace a surviving triangle back to its source; it is
// not used by the simplifier itself.
type Triangle struct {
	FaceID        int
	V0, V1, V2    int
	OriginalIndex int
}

// TriangleMesh is an ordered sequence of distinct vertex positions
// plus a set of triangles, accompanied by a linear precision tolerance
// in model units. Vertex indices are 0-based and dense.
type TriangleMesh struct {
	Vertices  []Vertex
	Triangles []Triangle
	Precision float64
}

// UnifyFaceOrientation walks each face id's connected triangles and
// flips whichever ones wind opposite to their neighbors, so that every
// original surface ends up with one consistent winding direction. It
// is the rebuild-time pass the simplifier invokes after re-emitting
// the surviving triangles under their remapped vertex indices.
func (m *TriangleMesh) UnifyFaceOrientation() {
	byFace := make(map[int][]int)
	for i, t := range m.Triangles {
		byFace[t.FaceID] = append(byFace[t.FaceID], i)
	}
	for _, indices := range byFace {
		unifyGroup(m.Triangles, indices)
	}
}

func canonicalEdge(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

func vertsOf(t Triangle) [3]int {
	return [3]int{t.V0, t.V1, t.V2}
}

func hasDirectedEdge(verts [3]int, a, b int) bool {
	for k := 0; k < 3; k++ {
		if verts[k] == a && verts[(k+1)%3] == b {
			return true
		}
	}
	return false
}

// unifyGroup resolves consistent winding within one connected
// component of triangles sharing the same face id. It decides, via
// breadth-first traversal over shared undirected edges, which
// triangles need their winding reversed relative to an arbitrarily
// chosen seed, then applies every decided flip in one final pass.
func unifyGroup(tris []Triangle, indices []int) {
	n := len(indices)
	if n < 2 {
		return
	}

	edgeToLocal := make(map[[2]int][]int)
	for local, global := range indices {
		verts := vertsOf(tris[global])
		for k := 0; k < 3; k++ {
			key := canonicalEdge(verts[k], verts[(k+1)%3])
			edgeToLocal[key] = append(edgeToLocal[key], local)
		}
	}

	visited := make([]bool, n)
	flipped := make([]bool, n)

	effectiveVerts := func(local int) [3]int {
		verts := vertsOf(tris[indices[local]])
		if flipped[local] {
			verts[1], verts[2] = verts[2], verts[1]
		}
		return verts
	}

	for seed := 0; seed < n; seed++ {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		queue := []int{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			curVerts := effectiveVerts(cur)
			for k := 0; k < 3; k++ {
				a, b := curVerts[k], curVerts[(k+1)%3]
				key := canonicalEdge(a, b)
				for _, other := range edgeToLocal[key] {
					if other == cur || visited[other] {
						continue
					}
					// A consistently wound neighbor traverses this
					// shared edge in the opposite direction (b, a). If
					// it instead has the same directed edge (a, b), it
					// needs to flip to match.
					otherVerts := vertsOf(tris[indices[other]])
					if hasDirectedEdge(otherVerts, a, b) {
						flipped[other] = true
					}
					visited[other] = true
					queue = append(queue, other)
				}
			}
		}
	}

	for local, global := range indices {
		if flipped[local] {
			tris[global].V1, tris[global].V2 = tris[global].V2, tris[global].V1
		}
	}
}
