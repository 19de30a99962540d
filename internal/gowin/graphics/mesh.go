package graphics

import "github.com/go-gl/mathgl/mgl32"

// Vertex matches the shader input layout:
//
//	location 0: vec3 position
//	location 1: vec3 color
//
// Flattened vertices are packed tightly in this order.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

const (
	// FloatsPerVertex is the number of float32 values per flattened Vertex.
	FloatsPerVertex = 6
	// IndexCount is the number of indices drawn each frame.
	IndexCount = 6
)

// RectangleVertices are the four corners of the rectangle.
var RectangleVertices = [4]Vertex{
	{Position: mgl32.Vec3{0.5, 0.5, 0}, Color: mgl32.Vec3{1, 0, 0}},   // top right
	{Position: mgl32.Vec3{0.5, -0.5, 0}, Color: mgl32.Vec3{0, 1, 0}},  // bottom right
	{Position: mgl32.Vec3{-0.5, -0.5, 0}, Color: mgl32.Vec3{0, 0, 1}}, // bottom left
	{Position: mgl32.Vec3{-0.5, 0.5, 0}, Color: mgl32.Vec3{1, 0, 1}},  // top left
}

// RectangleIndices split the rectangle into two triangles.
var RectangleIndices = [IndexCount]uint32{
	0, 1, 3, // first triangle
	1, 2, 3, // second triangle
}

// Flatten interleaves position and color of each vertex.
func Flatten(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*FloatsPerVertex)
	for _, v := range vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Color[:]...)
	}
	return out
}
