//go:build windows

package window

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	csOwnDC = 0x0020

	wsOverlappedWindow = 0x00CF0000
	swShow             = 5

	smCxScreen = 0
	smCyScreen = 1

	wmDestroy = 0x0002
	wmSize    = 0x0005
	wmClose   = 0x0010
	wmQuit    = 0x0012
	pmRemove  = 0x0001

	pfdTypeRGBA      = 0
	pfdMainPlane     = 0
	pfdDrawToWindow  = 0x00000004
	pfdSupportOpenGL = 0x00000020
	pfdDoubleBuffer  = 0x00000001

	idcArrow = 32512
)

type (
	hwnd  = windows.Handle
	hdc   = windows.Handle
	hglrc = windows.Handle
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       windows.Handle
}

type msg struct {
	hwnd     hwnd
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

type point struct {
	x int32
	y int32
}

type rect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

// Mirrors PIXELFORMATDESCRIPTOR (must be 40 bytes).
type pixelFormatDescriptor struct {
	nSize           uint16
	nVersion        uint16
	dwFlags         uint32
	iPixelType      byte
	cColorBits      byte
	cRedBits        byte
	cRedShift       byte
	cGreenBits      byte
	cGreenShift     byte
	cBlueBits       byte
	cBlueShift      byte
	cAlphaBits      byte
	cAlphaShift     byte
	cAccumBits      byte
	cAccumRedBits   byte
	cAccumGreenBits byte
	cAccumBlueBits  byte
	cAccumAlphaBits byte
	cDepthBits      byte
	cStencilBits    byte
	cAuxBuffers     byte
	iLayerType      byte
	bReserved       byte
	dwLayerMask     uint32
	dwVisibleMask   uint32
	dwDamageMask    uint32
}

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	opengl32 = windows.NewLazySystemDLL("opengl32.dll")

	procRegisterClassEx  = user32.NewProc("RegisterClassExW")
	procCreateWindowEx   = user32.NewProc("CreateWindowExW")
	procDefWindowProc    = user32.NewProc("DefWindowProcW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procUpdateWindow     = user32.NewProc("UpdateWindow")
	procGetClientRect    = user32.NewProc("GetClientRect")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
	procPeekMessage      = user32.NewProc("PeekMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessage  = user32.NewProc("DispatchMessageW")
	procPostQuitMessage  = user32.NewProc("PostQuitMessage")
	procGetDC            = user32.NewProc("GetDC")
	procReleaseDC        = user32.NewProc("ReleaseDC")
	procLoadCursor       = user32.NewProc("LoadCursorW")

	procChoosePixelFormat = gdi32.NewProc("ChoosePixelFormat")
	procSetPixelFormat    = gdi32.NewProc("SetPixelFormat")
	procSwapBuffers       = gdi32.NewProc("SwapBuffers")

	procWglCreateContext  = opengl32.NewProc("wglCreateContext")
	procWglMakeCurrent    = opengl32.NewProc("wglMakeCurrent")
	procWglDeleteContext  = opengl32.NewProc("wglDeleteContext")
	procWglGetProcAddress = opengl32.NewProc("wglGetProcAddress")
)

var (
	windowClassName = "LearnGL"
	windowClass     = windows.StringToUTF16Ptr(windowClassName)

	// The window procedure has no user pointer; messages are routed to the
	// single live window.
	currentWin *winWindow
)

func winErr(op string, err error) error {
	if errno, ok := err.(syscall.Errno); ok && errno != 0 {
		return fmt.Errorf("%s: %w", op, errno)
	}
	return fmt.Errorf("%s failed", op)
}

type winWindow struct {
	hwnd   hwnd
	hdc    hdc
	ctx    hglrc
	events []Event
	gone   bool
}

// New creates a window and makes a versioned OpenGL context current on the
// calling goroutine's OS thread, which stays locked until Close.
func New(opts Options) (Window, error) {
	runtime.LockOSThread()

	win, err := create(opts)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	currentWin = win
	return win, nil
}

func create(opts Options) (*winWindow, error) {
	if unsafe.Sizeof(pixelFormatDescriptor{}) != 40 {
		return nil, fmt.Errorf(
			"PIXELFORMATDESCRIPTOR size mismatch: got %d, want 40",
			unsafe.Sizeof(pixelFormatDescriptor{}),
		)
	}

	if err := registerWindowClass(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegisterClass, err)
	}

	hwd, err := createWindow(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateWindow, err)
	}
	win := &winWindow{hwnd: hwd}

	dc, _, e := procGetDC.Call(uintptr(hwd))
	if dc == 0 {
		win.release()
		return nil, fmt.Errorf("%w: %w", ErrDeviceContext, winErr("GetDC", e))
	}
	win.hdc = hdc(dc)

	if err := setPixelFormat(win.hdc); err != nil {
		win.release()
		return nil, err
	}

	ctx, err := createGLContext(win.hdc, opts)
	if err != nil {
		win.release()
		return nil, err
	}
	win.ctx = ctx
	return win, nil
}

func registerWindowClass() error {
	wc := wndClassEx{
		cbSize:        uint32(unsafe.Sizeof(wndClassEx{})),
		style:         csOwnDC,
		lpfnWndProc:   windows.NewCallback(wndProc),
		hInstance:     moduleHandle(),
		hCursor:       loadCursor(),
		lpszClassName: windowClass,
	}
	ret, _, err := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc)))
	if ret == 0 && !classExists(err) {
		return winErr("RegisterClassExW", err)
	}
	return nil
}

func createWindow(opts Options) (hwnd, error) {
	titlePtr, err := windows.UTF16PtrFromString(opts.Title)
	if err != nil {
		return 0, err
	}

	screenW, _, _ := procGetSystemMetrics.Call(smCxScreen)
	screenH, _, _ := procGetSystemMetrics.Call(smCyScreen)
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = int(screenW) * 3 / 4
	}
	if height == 0 {
		height = int(screenH) * 3 / 4
	}
	x := (int(screenW) - width) / 2
	y := (int(screenH) - height) / 2

	ret, _, e := procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(windowClass)),
		uintptr(unsafe.Pointer(titlePtr)),
		wsOverlappedWindow,
		uintptr(x),
		uintptr(y),
		uintptr(width),
		uintptr(height),
		0,
		0,
		uintptr(moduleHandle()),
		0,
	)
	if ret == 0 {
		return 0, winErr("CreateWindowExW", e)
	}
	return hwnd(ret), nil
}

func setPixelFormat(dc hdc) error {
	pfd := pixelFormatDescriptor{
		nSize:        uint16(unsafe.Sizeof(pixelFormatDescriptor{})),
		nVersion:     1,
		dwFlags:      pfdDrawToWindow | pfdSupportOpenGL | pfdDoubleBuffer,
		iPixelType:   pfdTypeRGBA,
		cColorBits:   32,
		cAlphaBits:   8,
		cDepthBits:   24,
		cStencilBits: 8,
		iLayerType:   pfdMainPlane,
	}

	pf, _, e := procChoosePixelFormat.Call(uintptr(dc), uintptr(unsafe.Pointer(&pfd)))
	if pf == 0 {
		return fmt.Errorf("%w: %w", ErrChoosePixelFormat, winErr("ChoosePixelFormat", e))
	}
	ok, _, e := procSetPixelFormat.Call(uintptr(dc), pf, uintptr(unsafe.Pointer(&pfd)))
	if ok == 0 {
		return fmt.Errorf("%w: index %d: %w", ErrSetPixelFormat, pf, winErr("SetPixelFormat", e))
	}
	return nil
}

// createGLContext bootstraps a versioned context through a temporary legacy
// one. The legacy context is always deleted before returning.
func createGLContext(dc hdc, opts Options) (hglrc, error) {
	legacy, _, e := procWglCreateContext.Call(uintptr(dc))
	if legacy == 0 {
		return 0, fmt.Errorf("%w: %w", ErrLegacyContext, winErr("wglCreateContext", e))
	}
	defer procWglDeleteContext.Call(legacy)

	ret, _, e := procWglMakeCurrent.Call(uintptr(dc), legacy)
	if ret == 0 {
		return 0, fmt.Errorf("%w: %w", ErrLegacyContext, winErr("wglMakeCurrent", e))
	}

	name, _ := windows.BytePtrFromString("wglCreateContextAttribsARB")
	createContextAttribs, _, _ := procWglGetProcAddress.Call(uintptr(unsafe.Pointer(name)))
	if createContextAttribs == 0 {
		procWglMakeCurrent.Call(uintptr(dc), 0)
		return 0, ErrContextCreator
	}

	// wglCreateContextAttribsARB signature:
	//   HGLRC wglCreateContextAttribsARB(HDC hDC, HGLRC hShareContext, const int *attribList);
	attribs := contextAttribs(opts.Major, opts.Minor, opts.CoreProfile)
	ctx, _, e := syscall.SyscallN(
		createContextAttribs,
		uintptr(dc),
		0, // share context
		uintptr(unsafe.Pointer(&attribs[0])),
	)
	runtime.KeepAlive(attribs)
	if ctx == 0 {
		procWglMakeCurrent.Call(uintptr(dc), 0)
		return 0, fmt.Errorf("%w: OpenGL %d.%d: %w", ErrModernContext, opts.Major, opts.Minor,
			winErr("wglCreateContextAttribsARB", e))
	}

	ret, _, e = procWglMakeCurrent.Call(uintptr(dc), ctx)
	if ret == 0 {
		procWglMakeCurrent.Call(uintptr(dc), 0)
		procWglDeleteContext.Call(ctx)
		return 0, fmt.Errorf("%w: %w", ErrModernContext, winErr("wglMakeCurrent", e))
	}
	return hglrc(ctx), nil
}

// ProcAddress resolves an OpenGL entry point for the current context.
// wglGetProcAddress only knows extension and post-1.1 functions; the 1.1 core
// is exported directly by opengl32.dll.
func (w *winWindow) ProcAddress(name string) uintptr {
	cname, err := windows.BytePtrFromString(name)
	if err != nil {
		return 0
	}
	addr, _, _ := procWglGetProcAddress.Call(uintptr(unsafe.Pointer(cname)))
	if validProcAddr(addr) {
		return addr
	}
	p := opengl32.NewProc(name)
	if p.Find() != nil {
		return 0
	}
	return p.Addr()
}

func (w *winWindow) Poll() []Event {
	var m msg
	for {
		ret, _, _ := procPeekMessage.Call(
			uintptr(unsafe.Pointer(&m)),
			0,
			0,
			0,
			pmRemove,
		)
		if ret == 0 {
			break
		}
		if m.message == wmQuit {
			w.destroyed()
			continue
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}

	if len(w.events) == 0 {
		return nil
	}
	out := make([]Event, len(w.events))
	copy(out, w.events)
	w.events = w.events[:0]
	return out
}

func (w *winWindow) destroyed() {
	if w.gone {
		return
	}
	w.gone = true
	w.events = append(w.events, Event{Kind: EventDestroyed})
}

func (w *winWindow) Show() {
	procShowWindow.Call(uintptr(w.hwnd), swShow)
	procUpdateWindow.Call(uintptr(w.hwnd))
}

func (w *winWindow) Swap() {
	if w.hdc != 0 {
		procSwapBuffers.Call(uintptr(w.hdc))
	}
}

func (w *winWindow) BackingSize() (int, int) {
	var r rect
	procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	return int(r.right - r.left), int(r.bottom - r.top)
}

func (w *winWindow) Close() {
	if w.hwnd == 0 {
		return
	}
	w.release()
	runtime.UnlockOSThread()
}

func (w *winWindow) release() {
	if w.ctx != 0 {
		procWglMakeCurrent.Call(uintptr(w.hdc), 0)
		procWglDeleteContext.Call(uintptr(w.ctx))
		w.ctx = 0
	}
	if w.hdc != 0 && w.hwnd != 0 {
		procReleaseDC.Call(uintptr(w.hwnd), uintptr(w.hdc))
		w.hdc = 0
	}
	if w.hwnd != 0 {
		procDestroyWindow.Call(uintptr(w.hwnd))
		w.hwnd = 0
	}
}

func wndProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	w := currentWin
	switch msg {
	case wmSize:
		if w != nil {
			w.events = append(w.events, resizeEvent(lParam))
		}
		return 0
	case wmClose:
		if w != nil {
			w.events = append(w.events, Event{Kind: EventCloseRequested})
		}
		return 0
	case wmDestroy:
		if w != nil {
			w.destroyed()
		}
		procPostQuitMessage.Call(0)
		return 0
	}
	ret, _, _ := procDefWindowProc.Call(hwnd, msg, wParam, lParam)
	return ret
}

func loadCursor() windows.Handle {
	ret, _, _ := procLoadCursor.Call(0, uintptr(idcArrow))
	return windows.Handle(ret)
}

func moduleHandle() windows.Handle {
	var h windows.Handle
	windows.GetModuleHandleEx(0, nil, &h)
	return h
}
