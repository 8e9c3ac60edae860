package shared

import "time"

// Clock stamps plans with their creation time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NewRealClock returns the wall clock, in UTC
func NewRealClock() Clock {
	return systemClock{}
}

// FixedClock always reports the same instant, so saved plans compare equal in tests
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// NewFixedClock pins the clock at t, or at the current time when t is zero
func NewFixedClock(t time.Time) FixedClock {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return FixedClock{At: t}
}
