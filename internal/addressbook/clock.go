package addressbook

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// It is used by the birthday query to determine "today".
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

// Now returns the instant the clock was built with.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
