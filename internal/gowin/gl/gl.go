package gl

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ebitengine/purego"
)

const (
	// ColorBufferBit is a mask used with Clear to clear the color buffer.
	ColorBufferBit = 0x00004000

	// Triangles is a primitive type for drawing triangles.
	Triangles = 0x0004

	// ArrayBuffer is the target for vertex buffer objects.
	ArrayBuffer = 0x8892
	// ElementArrayBuffer is the target for index buffer objects.
	ElementArrayBuffer = 0x8893
	// StaticDraw indicates that buffer data will be modified once and used many times.
	StaticDraw = 0x88E4

	// Float is a data type indicating 32-bit floating point values.
	Float = 0x1406
	// UnsignedInt is a data type indicating 32-bit unsigned integer values.
	UnsignedInt = 0x1405

	// Shader types
	VertexShader   = 0x8B31
	FragmentShader = 0x8B30

	// Shader/Program status
	CompileStatus = 0x8B81
	LinkStatus    = 0x8B82
	InfoLogLength = 0x8B84

	// GetString parameters.
	Vendor   = 0x1F00
	Renderer = 0x1F01
	Version  = 0x1F02
)

// Context resolves OpenGL entry points by name.
//
// ProcAddress must be called on the thread that owns the current GL context.
// It returns 0 when the entry point is not available.
type Context interface {
	ProcAddress(name string) uintptr
}

// Proc is one entry of a function table. Name is the exported symbol used for
// lookup; Fn points at the Go func variable that receives the entry point.
type Proc struct {
	Name string
	Fn   any
}

// Signature returns the Go signature of the slot, e.g. "func(uint32) uint32".
func (p Proc) Signature() string {
	t := reflect.TypeOf(p.Fn)
	if t == nil || t.Kind() != reflect.Pointer {
		return "<invalid>"
	}
	return t.Elem().String()
}

// ErrInvalidProc is returned when a Proc slot is not a non-nil pointer to a func.
var ErrInvalidProc = errors.New("invalid proc slot")

// MissingProcError reports every entry point a Context could not resolve, in
// table order.
type MissingProcError struct {
	Names []string
}

func (e *MissingProcError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("failed to load the OpenGL function %s", e.Names[0])
	}
	return fmt.Sprintf("failed to load the OpenGL functions %s", strings.Join(e.Names, ", "))
}

// Has reports whether name is one of the missing entry points.
func (e *MissingProcError) Has(name string) bool {
	for _, n := range e.Names {
		if n == name {
			return true
		}
	}
	return false
}

// bindFunc stores the entry point at addr into the func variable fn points to.
var bindFunc = purego.RegisterFunc

// LoadProcs resolves every proc in procs against ctx and binds the results.
//
// Slots are only written when every name resolved. On failure the returned
// error is a *MissingProcError naming all unresolved entry points.
func LoadProcs(ctx Context, procs []Proc) error {
	for _, p := range procs {
		if err := validateProc(p); err != nil {
			return err
		}
	}

	addrs := make([]uintptr, len(procs))
	var missing []string
	for i, p := range procs {
		addrs[i] = ctx.ProcAddress(p.Name)
		if addrs[i] == 0 {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return &MissingProcError{Names: missing}
	}

	for i, p := range procs {
		bindFunc(p.Fn, addrs[i])
	}
	return nil
}

func validateProc(p Proc) error {
	if p.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProc)
	}
	v := reflect.ValueOf(p.Fn)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Func {
		return fmt.Errorf("%w: %s has slot of type %T", ErrInvalidProc, p.Name, p.Fn)
	}
	return nil
}

func gostring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
