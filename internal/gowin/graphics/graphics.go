package graphics

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GL is the subset of OpenGL used to draw. *gl.Functions implements it.
type GL interface {
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)

	// Buffer operations
	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target uint32, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)

	// Vertex Array Object operations
	GenVertexArrays(n int32, arrays *uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)

	// Shader operations
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	// Program operations
	CreateProgram() uint32
	AttachShader(program uint32, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// Drawing
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
}

// DefaultClearColor is the dark grey the window is cleared to.
var DefaultClearColor = mgl32.Vec4{0.17, 0.17, 0.17, 1.0}
