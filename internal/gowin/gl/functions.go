package gl

import (
	"runtime"
	"unsafe"
)

// Functions holds the entry points used by the program. Each field is a slot
// typed after the C prototype of the entry point it receives.
//
// A Functions value is only produced by Load; its slots are never rebound.
type Functions struct {
	attachShader            func(program, shader uint32)
	bindBuffer              func(target, buffer uint32)
	bindVertexArray         func(array uint32)
	bufferData              func(target uint32, size int, data unsafe.Pointer, usage uint32)
	clear                   func(mask uint32)
	clearColor              func(r, g, b, a float32)
	compileShader           func(shader uint32)
	createProgram           func() uint32
	createShader            func(xtype uint32) uint32
	deleteBuffers           func(n int32, buffers *uint32)
	deleteProgram           func(program uint32)
	deleteShader            func(shader uint32)
	deleteVertexArrays      func(n int32, arrays *uint32)
	drawElements            func(mode uint32, count int32, xtype uint32, indices uintptr)
	enableVertexAttribArray func(index uint32)
	genBuffers              func(n int32, buffers *uint32)
	genVertexArrays         func(n int32, arrays *uint32)
	getProgramInfoLog       func(program uint32, bufSize int32, length *int32, infoLog *byte)
	getShaderInfoLog        func(shader uint32, bufSize int32, length *int32, infoLog *byte)
	getProgramiv            func(program, pname uint32, params *int32)
	getShaderiv             func(shader, pname uint32, params *int32)
	getString               func(name uint32) string
	linkProgram             func(program uint32)
	shaderSource            func(shader uint32, count int32, src **byte, length *int32)
	useProgram              func(program uint32)
	vertexAttribPointer     func(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	viewport                func(x, y, width, height int32)
}

// Procs returns the function table of f. Appending to the returned slice and
// passing it to LoadProcs is how callers add their own entry points.
func (f *Functions) Procs() []Proc {
	return []Proc{
		{"glAttachShader", &f.attachShader},
		{"glBindBuffer", &f.bindBuffer},
		{"glBindVertexArray", &f.bindVertexArray},
		{"glBufferData", &f.bufferData},
		{"glClear", &f.clear},
		{"glClearColor", &f.clearColor},
		{"glCompileShader", &f.compileShader},
		{"glCreateProgram", &f.createProgram},
		{"glCreateShader", &f.createShader},
		{"glDeleteBuffers", &f.deleteBuffers},
		{"glDeleteProgram", &f.deleteProgram},
		{"glDeleteShader", &f.deleteShader},
		{"glDeleteVertexArrays", &f.deleteVertexArrays},
		{"glDrawElements", &f.drawElements},
		{"glEnableVertexAttribArray", &f.enableVertexAttribArray},
		{"glGenBuffers", &f.genBuffers},
		{"glGenVertexArrays", &f.genVertexArrays},
		{"glGetProgramInfoLog", &f.getProgramInfoLog},
		{"glGetShaderInfoLog", &f.getShaderInfoLog},
		{"glGetProgramiv", &f.getProgramiv},
		{"glGetShaderiv", &f.getShaderiv},
		{"glGetString", &f.getString},
		{"glLinkProgram", &f.linkProgram},
		{"glShaderSource", &f.shaderSource},
		{"glUseProgram", &f.useProgram},
		{"glVertexAttribPointer", &f.vertexAttribPointer},
		{"glViewport", &f.viewport},
	}
}

// Load resolves every entry point in the table against ctx. The context must
// be current on the calling thread.
func Load(ctx Context) (*Functions, error) {
	f := &Functions{}
	if err := LoadProcs(ctx, f.Procs()); err != nil {
		return nil, err
	}
	return f, nil
}

// AttachShader attaches shader to program.
func (f *Functions) AttachShader(program, shader uint32) {
	f.attachShader(program, shader)
}

// BindBuffer binds buffer to target.
func (f *Functions) BindBuffer(target, buffer uint32) {
	f.bindBuffer(target, buffer)
}

// BindVertexArray makes array the current vertex array object.
func (f *Functions) BindVertexArray(array uint32) {
	f.bindVertexArray(array)
}

// BufferData copies size bytes from data into the buffer bound to target.
func (f *Functions) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	f.bufferData(target, size, data, usage)
}

// Clear clears the buffers selected by mask.
func (f *Functions) Clear(mask uint32) {
	f.clear(mask)
}

// ClearColor sets the color used by Clear.
func (f *Functions) ClearColor(r, g, b, a float32) {
	f.clearColor(r, g, b, a)
}

// CompileShader compiles the source attached to shader.
func (f *Functions) CompileShader(shader uint32) {
	f.compileShader(shader)
}

// CreateProgram returns a new, empty program object.
func (f *Functions) CreateProgram() uint32 {
	return f.createProgram()
}

// CreateShader returns a new shader object of the given type.
func (f *Functions) CreateShader(xtype uint32) uint32 {
	return f.createShader(xtype)
}

// DeleteBuffers deletes n buffer objects.
func (f *Functions) DeleteBuffers(n int32, buffers *uint32) {
	f.deleteBuffers(n, buffers)
}

// DeleteProgram deletes program.
func (f *Functions) DeleteProgram(program uint32) {
	f.deleteProgram(program)
}

// DeleteShader deletes shader.
func (f *Functions) DeleteShader(shader uint32) {
	f.deleteShader(shader)
}

// DeleteVertexArrays deletes n vertex array objects.
func (f *Functions) DeleteVertexArrays(n int32, arrays *uint32) {
	f.deleteVertexArrays(n, arrays)
}

// DrawElements draws count indices from the bound element array buffer,
// starting offset bytes into it.
func (f *Functions) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	f.drawElements(mode, count, xtype, offset)
}

// EnableVertexAttribArray enables the vertex attribute at index.
func (f *Functions) EnableVertexAttribArray(index uint32) {
	f.enableVertexAttribArray(index)
}

// GenBuffers stores n new buffer names in buffers.
func (f *Functions) GenBuffers(n int32, buffers *uint32) {
	f.genBuffers(n, buffers)
}

// GenVertexArrays stores n new vertex array names in arrays.
func (f *Functions) GenVertexArrays(n int32, arrays *uint32) {
	f.genVertexArrays(n, arrays)
}

// GetProgramiv queries a parameter of program.
func (f *Functions) GetProgramiv(program, pname uint32, params *int32) {
	f.getProgramiv(program, pname, params)
}

// GetShaderiv queries a parameter of shader.
func (f *Functions) GetShaderiv(shader, pname uint32, params *int32) {
	f.getShaderiv(shader, pname, params)
}

// GetShaderInfoLog returns the compiler log of shader.
func (f *Functions) GetShaderInfoLog(shader uint32) string {
	var n int32
	f.getShaderiv(shader, InfoLogLength, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	f.getShaderInfoLog(shader, n, nil, &buf[0])
	return gostring(buf)
}

// GetProgramInfoLog returns the linker log of program.
func (f *Functions) GetProgramInfoLog(program uint32) string {
	var n int32
	f.getProgramiv(program, InfoLogLength, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	f.getProgramInfoLog(program, n, nil, &buf[0])
	return gostring(buf)
}

// GetString returns a string describing a GL property of the current context,
// such as Vendor or Version.
func (f *Functions) GetString(name uint32) string {
	return f.getString(name)
}

// LinkProgram links the shaders attached to program.
func (f *Functions) LinkProgram(program uint32) {
	f.linkProgram(program)
}

// ShaderSource replaces the source of shader with a single string.
func (f *Functions) ShaderSource(shader uint32, source string) {
	src := append([]byte(source), 0)
	p := &src[0]
	f.shaderSource(shader, 1, &p, nil)
	runtime.KeepAlive(src)
}

// UseProgram installs program as part of the current rendering state.
func (f *Functions) UseProgram(program uint32) {
	f.useProgram(program)
}

// VertexAttribPointer describes attribute index of the bound array buffer;
// offset is in bytes from the start of each vertex.
func (f *Functions) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	f.vertexAttribPointer(index, size, xtype, normalized, stride, offset)
}

// Viewport sets the window rectangle that normalized device coordinates map to.
func (f *Functions) Viewport(x, y, width, height int32) {
	f.viewport(x, y, width, height)
}
