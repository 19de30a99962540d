package graphics

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"unsafe"

	glpkg "github.com/tinyrange/learngl/internal/gowin/gl"
)

// recordingGL implements GL by logging every call.
type recordingGL struct {
	calls  []string
	nextID uint32

	shaderTypes map[uint32]uint32
	sources     map[uint32]string
	buffers     map[uint32][]byte
	bound       map[uint32]uint32

	failCompile map[uint32]string // shader type -> log
	failLink    string
}

func newRecordingGL() *recordingGL {
	return &recordingGL{
		shaderTypes: make(map[uint32]uint32),
		sources:     make(map[uint32]string),
		buffers:     make(map[uint32][]byte),
		bound:       make(map[uint32]uint32),
		failCompile: make(map[uint32]string),
	}
}

func (g *recordingGL) log(format string, args ...any) {
	g.calls = append(g.calls, fmt.Sprintf(format, args...))
}

func (g *recordingGL) id() uint32 {
	g.nextID++
	return g.nextID
}

func (g *recordingGL) count(prefix string) int {
	n := 0
	for _, c := range g.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (g *recordingGL) ClearColor(r, gr, b, a float32) { g.log("ClearColor(%v,%v,%v,%v)", r, gr, b, a) }
func (g *recordingGL) Clear(mask uint32)               { g.log("Clear(%#x)", mask) }
func (g *recordingGL) Viewport(x, y, w, h int32)       { g.log("Viewport(%d,%d,%d,%d)", x, y, w, h) }

func (g *recordingGL) GenBuffers(n int32, buffers *uint32) {
	*buffers = g.id()
	g.log("GenBuffers(%d)", n)
}

func (g *recordingGL) DeleteBuffers(n int32, buffers *uint32) { g.log("DeleteBuffers(%d)", *buffers) }

func (g *recordingGL) BindBuffer(target, buffer uint32) {
	g.bound[target] = buffer
	g.log("BindBuffer(%#x,%d)", target, buffer)
}

func (g *recordingGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	g.buffers[target] = append([]byte(nil), unsafe.Slice((*byte)(data), size)...)
	g.log("BufferData(%#x,%d,%#x)", target, size, usage)
}

func (g *recordingGL) GenVertexArrays(n int32, arrays *uint32) {
	*arrays = g.id()
	g.log("GenVertexArrays(%d)", n)
}

func (g *recordingGL) DeleteVertexArrays(n int32, arrays *uint32) {
	g.log("DeleteVertexArrays(%d)", *arrays)
}
func (g *recordingGL) BindVertexArray(array uint32) { g.log("BindVertexArray(%d)", array) }

func (g *recordingGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	g.log("VertexAttribPointer(%d,%d,%#x,%v,%d,%d)", index, size, xtype, normalized, stride, offset)
}

func (g *recordingGL) EnableVertexAttribArray(index uint32) {
	g.log("EnableVertexAttribArray(%d)", index)
}

func (g *recordingGL) CreateShader(xtype uint32) uint32 {
	id := g.id()
	g.shaderTypes[id] = xtype
	g.log("CreateShader(%#x)", xtype)
	return id
}

func (g *recordingGL) ShaderSource(shader uint32, source string) {
	g.sources[shader] = source
	g.log("ShaderSource(%d)", shader)
}

func (g *recordingGL) CompileShader(shader uint32) { g.log("CompileShader(%d)", shader) }

func (g *recordingGL) GetShaderiv(shader, pname uint32, params *int32) {
	_, failed := g.failCompile[g.shaderTypes[shader]]
	if pname == glpkg.CompileStatus && !failed {
		*params = 1
	}
}

func (g *recordingGL) GetShaderInfoLog(shader uint32) string {
	return g.failCompile[g.shaderTypes[shader]]
}

func (g *recordingGL) DeleteShader(shader uint32) { g.log("DeleteShader(%d)", shader) }

func (g *recordingGL) CreateProgram() uint32 {
	g.log("CreateProgram")
	return g.id()
}

func (g *recordingGL) AttachShader(program, shader uint32) {
	g.log("AttachShader(%d,%d)", program, shader)
}
func (g *recordingGL) LinkProgram(program uint32) { g.log("LinkProgram(%d)", program) }

func (g *recordingGL) GetProgramiv(program, pname uint32, params *int32) {
	if pname == glpkg.LinkStatus && g.failLink == "" {
		*params = 1
	}
}

func (g *recordingGL) GetProgramInfoLog(program uint32) string { return g.failLink }
func (g *recordingGL) UseProgram(program uint32)              { g.log("UseProgram(%d)", program) }
func (g *recordingGL) DeleteProgram(program uint32)           { g.log("DeleteProgram(%d)", program) }

func (g *recordingGL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	g.log("DrawElements(%#x,%d,%#x,%d)", mode, count, xtype, offset)
}

var _ GL = (*glpkg.Functions)(nil)

func TestRectangleGeometry(t *testing.T) {
	flat := Flatten(RectangleVertices[:])
	if len(RectangleVertices) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(RectangleVertices))
	}
	if len(flat) != 4*FloatsPerVertex {
		t.Fatalf("expected %d floats, got %d", 4*FloatsPerVertex, len(flat))
	}
	if len(RectangleIndices) != 6 {
		t.Fatalf("expected 6 indices, got %d", len(RectangleIndices))
	}
	for i, idx := range RectangleIndices {
		if int(idx) >= len(RectangleVertices) {
			t.Errorf("index %d references vertex %d", i, idx)
		}
	}
	if want := [6]uint32{0, 1, 3, 1, 2, 3}; RectangleIndices != want {
		t.Errorf("indices = %v, want %v", RectangleIndices, want)
	}

	seen := make(map[Vertex]bool)
	for _, v := range RectangleVertices {
		if seen[v] {
			t.Errorf("duplicate vertex %v", v)
		}
		seen[v] = true
	}

	// top right: red
	if got := flat[:6]; !reflect.DeepEqual(got, []float32{0.5, 0.5, 0, 1, 0, 0}) {
		t.Errorf("first vertex = %v", got)
	}
}

func TestNewRendererUploadsGeometry(t *testing.T) {
	g := newRecordingGL()
	r, err := NewRenderer(g, DefaultClearColor)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if r == nil {
		t.Fatal("renderer is nil")
	}

	if got := len(g.buffers[glpkg.ArrayBuffer]); got != 4*FloatsPerVertex*4 {
		t.Errorf("vertex buffer is %d bytes", got)
	}
	idx := g.buffers[glpkg.ElementArrayBuffer]
	if len(idx) != 6*4 {
		t.Fatalf("index buffer is %d bytes", len(idx))
	}
	if got := unsafe.Slice((*uint32)(unsafe.Pointer(&idx[0])), 6); !reflect.DeepEqual(got, RectangleIndices[:]) {
		t.Errorf("uploaded indices = %v", got)
	}

	for _, want := range []string{
		"VertexAttribPointer(0,3,0x1406,false,24,0)",
		"VertexAttribPointer(1,3,0x1406,false,24,12)",
		"EnableVertexAttribArray(0)",
		"EnableVertexAttribArray(1)",
	} {
		if g.count(want) != 1 {
			t.Errorf("expected one %s, calls: %v", want, g.calls)
		}
	}
	if g.count("BufferData(") != 2 {
		t.Errorf("expected geometry uploaded once, got %d uploads", g.count("BufferData("))
	}
	if g.count("UseProgram(") != 1 {
		t.Errorf("program not made current")
	}
	// Both stages are released once linked.
	if g.count("DeleteShader(") != 2 {
		t.Errorf("expected 2 DeleteShader calls, got %d", g.count("DeleteShader("))
	}
}

func TestDrawIssuesSixIndices(t *testing.T) {
	g := newRecordingGL()
	r, err := NewRenderer(g, DefaultClearColor)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	g.calls = nil
	r.Draw()
	want := []string{
		"Clear(0x4000)",
		"DrawElements(0x4,6,0x1405,0)",
	}
	if !reflect.DeepEqual(g.calls, want) {
		t.Errorf("Draw calls = %v, want %v", g.calls, want)
	}
}

func TestDrawIsIdempotent(t *testing.T) {
	g := newRecordingGL()
	r, err := NewRenderer(g, DefaultClearColor)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	var frames [][]string
	for i := 0; i < 3; i++ {
		g.calls = nil
		r.Draw()
		frames = append(frames, g.calls)
	}
	for i := 1; i < len(frames); i++ {
		if !reflect.DeepEqual(frames[0], frames[i]) {
			t.Errorf("frame %d differs: %v vs %v", i, frames[i], frames[0])
		}
	}
}

func TestCompileFailureSurfacesLog(t *testing.T) {
	g := newRecordingGL()
	const log = "0:3(1): error: syntax error, unexpected IDENTIFIER"
	g.failCompile[glpkg.FragmentShader] = log

	_, err := CompileProgram(g, VertexShaderSource, "not glsl")
	var shaderErr *ShaderError
	if !errors.As(err, &shaderErr) {
		t.Fatalf("expected *ShaderError, got %v", err)
	}
	if shaderErr.Stage != "fragment" || shaderErr.Log != log {
		t.Errorf("got stage=%q log=%q", shaderErr.Stage, shaderErr.Log)
	}
	if !strings.Contains(err.Error(), log) {
		t.Errorf("error %q does not carry the compiler log", err)
	}
	if g.count("CreateProgram") != 0 || g.count("LinkProgram(") != 0 {
		t.Errorf("link attempted after a failed compile: %v", g.calls)
	}
	if g.count("DeleteShader(") != 2 {
		t.Errorf("expected both stages deleted, got %d", g.count("DeleteShader("))
	}
}

func TestCompileFailureWithoutLogIsNotEmpty(t *testing.T) {
	g := newRecordingGL()
	g.failCompile[glpkg.VertexShader] = ""

	_, err := CompileProgram(g, "garbage", FragmentShaderSource)
	if err == nil {
		t.Fatal("expected compile failure")
	}
	var shaderErr *ShaderError
	if !errors.As(err, &shaderErr) || shaderErr.Log == "" {
		t.Errorf("expected a non-empty diagnostic, got %v", err)
	}
	if g.count("CreateShader(0x8b30)") != 0 {
		t.Errorf("fragment stage compiled after vertex stage failed")
	}
}

func TestLinkFailure(t *testing.T) {
	g := newRecordingGL()
	g.failLink = "error: vertex output frag_color not consumed"

	_, err := CompileProgram(g, VertexShaderSource, FragmentShaderSource)
	var shaderErr *ShaderError
	if !errors.As(err, &shaderErr) || shaderErr.Stage != "link" {
		t.Fatalf("expected link ShaderError, got %v", err)
	}
	if g.count("DeleteProgram(") != 1 {
		t.Errorf("failed program not deleted")
	}
}

func TestNewRendererReleasesOnShaderFailure(t *testing.T) {
	g := newRecordingGL()
	g.failCompile[glpkg.VertexShader] = "bad"

	r, err := NewRenderer(g, DefaultClearColor)
	if err == nil || r != nil {
		t.Fatalf("expected failure, got %v, %v", r, err)
	}
	if !strings.HasPrefix(err.Error(), "failed to create shader program: vertex shader compilation failed: bad") {
		t.Errorf("unexpected error %q", err)
	}
	if g.count("DeleteBuffers(") != 2 || g.count("DeleteVertexArrays(") != 1 {
		t.Errorf("buffers not released: %v", g.calls)
	}
}

func TestResizeSetsViewport(t *testing.T) {
	g := newRecordingGL()
	r, err := NewRenderer(g, DefaultClearColor)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	g.calls = nil
	r.Resize(1280, 720)
	if !reflect.DeepEqual(g.calls, []string{"Viewport(0,0,1280,720)"}) {
		t.Errorf("calls = %v", g.calls)
	}
}
