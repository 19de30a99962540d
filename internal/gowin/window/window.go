package window

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/tinyrange/learngl/internal/gowin/gl"
)

// Window is a native window with a current OpenGL context.
//
// All methods must be called from the thread that created the window.
type Window interface {
	gl.Context

	// Poll drains pending window messages without blocking and returns the
	// events they produced, oldest first.
	Poll() []Event
	// Show makes the window visible.
	Show()
	// Swap presents the back buffer.
	Swap()
	// Close releases the context and destroys the window. An EventDestroyed
	// is delivered by the next Poll.
	Close()
	BackingSize() (width, height int)
}

// Options configures New.
type Options struct {
	Title string
	// Width and Height of the window. Zero picks three quarters of the
	// screen, centered.
	Width  int
	Height int

	// Requested OpenGL version. The context is not downgraded when the
	// driver refuses it.
	Major       int
	Minor       int
	CoreProfile bool
}

// EventKind identifies an Event.
type EventKind int

const (
	EventOther EventKind = iota
	// EventResize carries the new client area size in pixels.
	EventResize
	// EventCloseRequested is sent when the user asks to close the window.
	// The window stays alive until Close is called.
	EventCloseRequested
	// EventDestroyed is sent once the window is gone. No other events follow.
	EventDestroyed
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventCloseRequested:
		return "close-requested"
	case EventDestroyed:
		return "destroyed"
	default:
		return "other"
	}
}

type Event struct {
	Kind   EventKind
	Width  int
	Height int
}

func (e Event) String() string {
	if e.Kind == EventResize {
		return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height)
	}
	return e.Kind.String()
}

// resizeEvent decodes the client size packed into a WM_SIZE lParam.
func resizeEvent(lParam uintptr) Event {
	return Event{
		Kind:   EventResize,
		Width:  int(lParam & 0xFFFF),
		Height: int((lParam >> 16) & 0xFFFF),
	}
}

// validProcAddr reports whether a wglGetProcAddress result is a usable entry
// point. Some drivers return 1, 2, 3 or -1 instead of NULL.
func validProcAddr(addr uintptr) bool {
	switch addr {
	case 0, 1, 2, 3, ^uintptr(0):
		return false
	}
	return true
}

const errorClassAlreadyExists = 1410

// classExists reports whether a RegisterClassExW failure only means the class
// was registered by an earlier window in this process.
func classExists(err error) bool {
	var errno syscall.Errno
	return errors.As(err, &errno) && errno == errorClassAlreadyExists
}

// Platform setup errors.
var (
	ErrRegisterClass     = errors.New("failed to register the window class")
	ErrCreateWindow      = errors.New("failed to create the window")
	ErrDeviceContext     = errors.New("failed to retrieve the window device context")
	ErrChoosePixelFormat = errors.New("failed to retrieve a valid pixel format")
	ErrSetPixelFormat    = errors.New("failed to set the window pixel format")

	ErrUnsupportedPlatform = errors.New("windowing is only supported on Windows")
)

// Context errors.
var (
	ErrLegacyContext  = errors.New("failed to create the legacy OpenGL context")
	ErrContextCreator = errors.New("failed to load the modern OpenGL context creator function")
	ErrModernContext  = errors.New("failed to create the modern OpenGL context")
)

// IsContextError reports whether err came from OpenGL context creation rather
// than from the window system.
func IsContextError(err error) bool {
	return errors.Is(err, ErrLegacyContext) ||
		errors.Is(err, ErrContextCreator) ||
		errors.Is(err, ErrModernContext)
}

// contextAttribs builds the zero-terminated attribute list passed to
// wglCreateContextAttribsARB.
func contextAttribs(major, minor int, core bool) []int32 {
	attribs := []int32{
		wglContextMajorVersionArb, int32(major),
		wglContextMinorVersionArb, int32(minor),
	}
	if core {
		attribs = append(attribs, wglContextProfileMaskArb, wglContextCoreProfileBitArb)
	}
	return append(attribs, 0)
}

const (
	// WGL_ARB_create_context constants
	wglContextMajorVersionArb = 0x2091
	wglContextMinorVersionArb = 0x2092
	// WGL_ARB_create_context_profile constants (when requesting OpenGL 3.2+)
	wglContextProfileMaskArb    = 0x9126
	wglContextCoreProfileBitArb = 0x00000001
)
