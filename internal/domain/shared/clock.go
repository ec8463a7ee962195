package shared

import "time"

// Clock is an abstraction for time operations, allowing time to be mocked in tests
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock implements Clock using the actual system time
type RealClock struct{}

// Now returns the current system time in UTC
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Sleep pauses the current goroutine
func (r *RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// FixedClock reports a fixed instant that only moves when Sleep is called.
// Scan records created in tests use it so scanned_at values are predictable.
type FixedClock struct {
	At time.Time
}

func (f *FixedClock) Now() time.Time {
	return f.At
}

// Sleep advances the clock without blocking
func (f *FixedClock) Sleep(d time.Duration) {
	f.At = f.At.Add(d)
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}
