//go:build windows

package frame

import "golang.org/x/sys/windows"

var (
	winmm               = windows.NewLazySystemDLL("winmm.dll")
	procTimeBeginPeriod = winmm.NewProc("timeBeginPeriod")
	procTimeEndPeriod   = winmm.NewProc("timeEndPeriod")
)

const timerrNoError = 0

// BeginPeriod asks the scheduler for ms timer resolution and reports whether
// sleeps are now granular enough to use for pacing. Call EndPeriod with the
// same value when done.
func BeginPeriod(ms uint32) bool {
	if procTimeBeginPeriod.Find() != nil {
		return false
	}
	ret, _, _ := procTimeBeginPeriod.Call(uintptr(ms))
	return ret == timerrNoError
}

func EndPeriod(ms uint32) {
	if procTimeEndPeriod.Find() == nil {
		procTimeEndPeriod.Call(uintptr(ms))
	}
}
