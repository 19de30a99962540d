package graphics

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	glpkg "github.com/tinyrange/learngl/internal/gowin/gl"
)

// Renderer owns the rectangle's GPU resources.
type Renderer struct {
	gl GL

	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
}

// NewRenderer uploads the rectangle, builds the shader program and makes it
// current. The vertex array stays bound for the lifetime of the Renderer.
func NewRenderer(gl GL, clearColor mgl32.Vec4) (*Renderer, error) {
	return newRenderer(gl, clearColor, VertexShaderSource, FragmentShaderSource)
}

func newRenderer(gl GL, clearColor mgl32.Vec4, vertexSrc, fragmentSrc string) (*Renderer, error) {
	r := &Renderer{gl: gl}

	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	vertices := Flatten(RectangleVertices[:])
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(glpkg.ArrayBuffer, r.vbo)
	gl.BufferData(glpkg.ArrayBuffer, len(vertices)*4, unsafe.Pointer(&vertices[0]), glpkg.StaticDraw)

	indices := RectangleIndices
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(glpkg.ElementArrayBuffer, r.ebo)
	gl.BufferData(glpkg.ElementArrayBuffer, len(indices)*4, unsafe.Pointer(&indices[0]), glpkg.StaticDraw)

	const stride = FloatsPerVertex * 4
	// Position: 3 floats at offset 0
	gl.VertexAttribPointer(0, 3, glpkg.Float, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Color: 3 floats at offset 3*4 = 12
	gl.VertexAttribPointer(1, 3, glpkg.Float, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	program, err := CompileProgram(gl, vertexSrc, fragmentSrc)
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program
	gl.UseProgram(program)

	return r, nil
}

// Resize maps normalized device coordinates onto a width x height surface.
func (r *Renderer) Resize(width, height int) {
	r.gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear fills the color buffer with the clear color.
func (r *Renderer) Clear() {
	r.gl.Clear(glpkg.ColorBufferBit)
}

// Draw clears the frame and draws the rectangle.
func (r *Renderer) Draw() {
	r.gl.Clear(glpkg.ColorBufferBit)
	r.gl.DrawElements(glpkg.Triangles, IndexCount, glpkg.UnsignedInt, 0)
}

// Release deletes the program and buffers. The context must still be current.
func (r *Renderer) Release() {
	if r.program != 0 {
		r.gl.UseProgram(0)
		r.gl.DeleteProgram(r.program)
		r.program = 0
	}
	if r.ebo != 0 {
		r.gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		r.gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		r.gl.BindVertexArray(0)
		r.gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
}
