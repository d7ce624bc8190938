package clock

import "time"

// Clock is the time source for polling and scheduled reloads.
type Clock interface {
	Now() time.Time
	// After delivers the time once d has elapsed.
	After(d time.Duration) <-chan time.Time
	// AfterFunc runs f in its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call from firing. It reports whether it was still pending.
	Stop() bool
}

// New returns the wall clock.
func New() Clock {
	return realClock{}
}

// NewFake returns a manually advanced clock starting at now.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}
