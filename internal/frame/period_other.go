//go:build !windows

package frame

// BeginPeriod reports whether sleeps are granular. Outside Windows the
// scheduler already sleeps at sub-millisecond resolution.
func BeginPeriod(ms uint32) bool { return true }

func EndPeriod(ms uint32) {}
