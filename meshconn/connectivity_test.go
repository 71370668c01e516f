package meshconn

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func square() *MeshConnectivity {
	// Two triangles sharing a diagonal edge, forming a unit square:
	//
	//   2---3
	//   |\  |
	//   | \ |
	//   0---1
	positions := []mgl64.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
	}
	m := New(positions, false)
	m.AddTriangle(0, 0, 1, 2, 0)
	m.AddTriangle(0, 1, 3, 2, 1)
	return m
}

func TestAddTriangleRejectsDegenerate(t *testing.T) {
	m := New([]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}, false)
	got := m.AddTriangle(0, 0, 0, 1, 0)
	if got != InvalidTriangle {
		t.Errorf("AddTriangle with repeated vertex = %d, want InvalidTriangle", got)
	}
}

func TestAddTriangleBuildsSharedDiagonal(t *testing.T) {
	m := square()

	diag := m.FindEdge(0, 3)
	if diag != InvalidEdge {
		t.Fatalf("expected no direct edge between 0 and 3, found %d", diag)
	}
	shared := m.FindEdge(1, 2)
	if shared == InvalidEdge {
		t.Fatalf("expected a shared diagonal edge between 1 and 2")
	}
	if m.IsBoundaryEdge(shared) {
		t.Errorf("shared diagonal should be interior, not boundary")
	}

	boundary := m.FindEdge(0, 1)
	if boundary == InvalidEdge || !m.IsBoundaryEdge(boundary) {
		t.Errorf("edge (0,1) should be a boundary edge")
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestNonManifoldAttachPanicsInManifoldMode(t *testing.T) {
	positions := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	m := New(positions, false)
	m.AddTriangle(0, 0, 1, 2, 0)

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on third triangle attaching to edge (0,1) in manifold mode")
		}
	}()
	// A second triangle also using edge (0,1) makes it interior (ok);
	// a third makes it non-manifold.
	m.AddTriangle(0, 1, 0, 3, 1)
	m.AddTriangle(0, 0, 1, 3, 2)
}

func TestNonManifoldAttachAcceptedWhenAllowed(t *testing.T) {
	positions := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	m := New(positions, true)
	m.AddTriangle(0, 0, 1, 2, 0)
	m.AddTriangle(0, 1, 0, 3, 1)
	third := m.AddTriangle(0, 0, 1, 3, 2)
	if third == InvalidTriangle {
		t.Fatalf("expected third attach to succeed when non-manifold mode is allowed")
	}
}

func TestRemoveTrianglePromotesT1ToT0(t *testing.T) {
	m := square()
	shared := m.FindEdge(1, 2)
	t0, _ := m.GetEdgeTriangles(shared)

	m.RemoveTriangle(t0)

	newT0, newT1 := m.GetEdgeTriangles(shared)
	if newT1 != InvalidTriangle {
		t.Errorf("expected T1 to be invalid after removing T0, got %d", newT1)
	}
	if newT0 == InvalidTriangle {
		t.Errorf("expected surviving triangle promoted into T0")
	}
	if !m.IsBoundaryEdge(shared) {
		t.Errorf("shared edge should become a boundary edge after removing one incident triangle")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() after RemoveTriangle = %v, want nil", err)
	}
}

func TestRemoveTriangleIsIdempotent(t *testing.T) {
	m := square()
	m.RemoveTriangle(0)
	statsAfterFirst := m.Stats()
	m.RemoveTriangle(0)
	if m.Stats() != statsAfterFirst {
		t.Errorf("removing an already-removed triangle should be a no-op")
	}
}

func TestRemoveEdgeInvalidatesOrphanedTriangles(t *testing.T) {
	m := square()
	shared := m.FindEdge(1, 2)
	t0, t1 := m.GetEdgeTriangles(shared)

	m.RemoveEdge(shared)

	// Only one of each triangle's three edge slots became InvalidEdge,
	// so neither triangle is orphaned yet.
	if !m.Triangle(t0).Valid || !m.Triangle(t1).Valid {
		t.Errorf("removing one of a triangle's three edges should leave the triangle valid")
	}
	if m.FindEdge(1, 2) != InvalidEdge {
		t.Errorf("edge (1,2) should no longer be found after removal")
	}

	// Removing t0's two remaining edges leaves all three of its slots
	// InvalidEdge, which orphans it; t1 still has two live edges.
	m.RemoveEdge(m.FindEdge(0, 1))
	m.RemoveEdge(m.FindEdge(0, 2))
	if m.Triangle(t0).Valid {
		t.Errorf("triangle %d with all three edge slots InvalidEdge should be invalidated", t0)
	}
	if !m.Triangle(t1).Valid {
		t.Errorf("triangle %d still has two live edges and should stay valid", t1)
	}
}

func TestReplaceTriangleVertexRewritesEdges(t *testing.T) {
	m := square()
	t0Triangles := m.GetVertexTriangles(0)
	if len(t0Triangles) == 0 {
		t.Fatalf("expected vertex 0 to have incident triangles")
	}
	t0 := t0Triangles[0]

	ok := m.ReplaceTriangleVertex(t0, 0, 3)
	tri := m.Triangle(t0)
	if !ok {
		if tri.Valid {
			t.Fatalf("ReplaceTriangleVertex returned false but triangle is still valid")
		}
		return
	}
	if tri.V0 != 3 && tri.V1 != 3 && tri.V2 != 3 {
		t.Errorf("expected triangle %d to reference vertex 3 after replace, got (%d,%d,%d)", t0, tri.V0, tri.V1, tri.V2)
	}
	if tri.V0 == 0 || tri.V1 == 0 || tri.V2 == 0 {
		t.Errorf("expected triangle %d to no longer reference vertex 0, got (%d,%d,%d)", t0, tri.V0, tri.V1, tri.V2)
	}
}

func TestReplaceTriangleVertexInvalidatesOnDegeneracy(t *testing.T) {
	m := square()
	tris := m.GetVertexTriangles(0)
	t0 := tris[0]
	tri := m.Triangle(t0)

	// Replacing one vertex with another already present in the same
	// triangle always produces a degenerate triangle.
	var other VertexID
	switch {
	case tri.V0 != 0:
		other = tri.V0
	case tri.V1 != 0:
		other = tri.V1
	default:
		other = tri.V2
	}

	ok := m.ReplaceTriangleVertex(t0, 0, other)
	if ok {
		t.Fatalf("expected ReplaceTriangleVertex to report failure on degeneracy")
	}
	if m.Triangle(t0).Valid {
		t.Errorf("expected degenerate triangle to be invalidated")
	}
}

func TestReplaceEdgeVertexPanicsWhenOldNotOnEdge(t *testing.T) {
	m := square()
	e := m.FindEdge(0, 1)

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic when replacing a vertex not on the edge")
		}
	}()
	m.ReplaceEdgeVertex(e, 2, 99)
}

func TestGetOtherVertexPanicsWhenVertexNotOnEdge(t *testing.T) {
	m := square()
	e := m.FindEdge(0, 1)

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic when vertex is not on the edge")
		}
	}()
	m.GetOtherVertex(e, 2)
}

func TestIsBoundaryVertex(t *testing.T) {
	m := square()
	for v := VertexID(0); v < 4; v++ {
		if !m.IsBoundaryVertex(v) {
			t.Errorf("vertex %d of a two-triangle square should be a boundary vertex", v)
		}
	}
}

func TestValidateCatchesInjectedInconsistency(t *testing.T) {
	m := square()
	shared := m.FindEdge(1, 2)
	// Directly corrupt an invariant: point the edge at a vertex pair
	// that no longer matches its canonical key, bypassing the normal
	// mutation API.
	m.edges[shared].V1 = 3

	if err := m.Validate(); err == nil {
		t.Errorf("expected Validate to catch a corrupted edge/triangle relationship")
	}
}
