// Package frame paces a render loop to a fixed frame rate.
package frame

import "time"

// Clock abstracts the time source so pacing can be tested.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Stats describes the frame that just ended.
type Stats struct {
	// FrameTime is the time since the previous frame ended, waits included.
	FrameTime time.Duration
	// Work is the part of FrameTime spent before Wait was called.
	Work time.Duration
}

// FPS is the frame rate FrameTime corresponds to.
func (s Stats) FPS() float64 {
	if s.FrameTime <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.FrameTime)
}

// Pacer holds a loop to one frame per Budget.
//
// When Granular is set Wait sleeps in whole milliseconds first; the remainder
// is always spent polling the clock, since sleeps overshoot at millisecond
// resolution.
type Pacer struct {
	Budget   time.Duration
	Granular bool

	clock Clock
	last  time.Time
}

// NewPacer returns a Pacer for hz frames per second. The first frame is
// measured from the call to NewPacer.
func NewPacer(hz int, granular bool) *Pacer {
	return newPacer(hz, granular, systemClock{})
}

func newPacer(hz int, granular bool, clock Clock) *Pacer {
	return &Pacer{
		Budget:   time.Second / time.Duration(hz),
		Granular: granular,
		clock:    clock,
		last:     clock.Now(),
	}
}

// Wait blocks until Budget has elapsed since the previous frame ended.
func (p *Pacer) Wait() Stats {
	work := p.clock.Now().Sub(p.last)
	elapsed := work

	if elapsed < p.Budget {
		if p.Granular {
			if left := (p.Budget - elapsed).Truncate(time.Millisecond); left > 0 {
				p.clock.Sleep(left)
			}
		}
		for elapsed < p.Budget {
			elapsed = p.clock.Now().Sub(p.last)
		}
	}

	end := p.clock.Now()
	stats := Stats{FrameTime: end.Sub(p.last), Work: work}
	p.last = end
	return stats
}
