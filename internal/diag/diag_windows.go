//go:build windows

package diag

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	mbOK        = 0x00000000
	mbIconError = 0x00000010
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procOutputDebugString = kernel32.NewProc("OutputDebugStringW")
)

func outputDebugString(s string) {
	p, err := windows.UTF16PtrFromString(s)
	if err != nil {
		return
	}
	procOutputDebugString.Call(uintptr(unsafe.Pointer(p)))
}

func alert(caption, text string) {
	c, err := windows.UTF16PtrFromString(caption)
	if err != nil {
		return
	}
	t, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return
	}
	windows.MessageBox(0, t, c, mbIconError|mbOK)
}
