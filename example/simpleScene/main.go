// Command simpleScene demonstrates the two independent pieces of the
// kernel: deriving deflection tolerances for a slender extrusion, then
// decimating a small triangulated cube down to a triangle budget.
package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/xbimgo/meshkernel/deflection"
	"github.com/xbimgo/meshkernel/mesh"
	"github.com/xbimgo/meshkernel/simplify"
)

func v(x, y, z float64) mesh.Vertex {
	return mesh.Vertex{Position: mgl64.Vec3{x, y, z}}
}

// cube builds a unit cube's surface as 12 triangles carrying 6 distinct
// face ids, one per side.
func cube() mesh.TriangleMesh {
	verts := []mesh.Vertex{
		v(0, 0, 0), v(1, 0, 0), v(1, 1, 0), v(0, 1, 0),
		v(0, 0, 1), v(1, 0, 1), v(1, 1, 1), v(0, 1, 1),
	}
	quad := func(faceID, a, b, c, d int) []mesh.Triangle {
		return []mesh.Triangle{
			{FaceID: faceID, V0: a, V1: b, V2: c},
			{FaceID: faceID, V0: a, V1: c, V2: d},
		}
	}
	var tris []mesh.Triangle
	tris = append(tris, quad(0, 0, 1, 2, 3)...) // bottom
	tris = append(tris, quad(1, 4, 7, 6, 5)...) // top
	tris = append(tris, quad(2, 0, 4, 5, 1)...) // front
	tris = append(tris, quad(3, 1, 5, 6, 2)...) // right
	tris = append(tris, quad(4, 2, 6, 7, 3)...) // back
	tris = append(tris, quad(5, 3, 7, 4, 0)...) // left
	return mesh.TriangleMesh{Vertices: verts, Triangles: tris, Precision: 1e-6}
}

func main() {
	shape := deflection.SweptShape{
		Kind:    deflection.Extrusion,
		Profile: deflection.Rectangle{XDim: 10, YDim: 10},
		Depth:   300,
	}
	linear, angular := deflection.Compute(shape, 1.0, 0.1, 0.1, deflection.NewSettings())
	fmt.Printf("deflection for 300mm extrusion of 10mm square section: linear=%.4f angular=%.4f\n", linear, angular)

	input := cube()
	fmt.Printf("input mesh: %d vertices, %d triangles\n", len(input.Vertices), len(input.Triangles))

	result, err := simplify.New().Run(input, 8)
	if err != nil {
		fmt.Println("simplification failed:", err)
		return
	}
	fmt.Printf("simplified mesh: %d triangles removed, %d edges skipped, target reached: %v\n",
		result.TrianglesRemoved, result.EdgesSkipped, result.TargetReached)
	fmt.Printf("output mesh: %d vertices, %d triangles\n", len(result.Mesh.Vertices), len(result.Mesh.Triangles))
}
