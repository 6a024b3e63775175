package loop

import "time"

// Scheduler delivers a single wake-up after a delay.
type Scheduler interface {
	After(d time.Duration) <-chan time.Time
}

// RealScheduler waits on the wall clock.
type RealScheduler struct{}

// After returns a channel that fires once after d.
func (RealScheduler) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
