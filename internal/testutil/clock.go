package testutil

import "time"

// Clock is a manually advanced time source for deterministic tests.
// Its Now method satisfies the services' clock dependency.
type Clock struct {
	current time.Time
}

// NewClock creates a Clock frozen at the given instant.
func NewClock(start time.Time) *Clock {
	return &Clock{current: start}
}

// Now returns the clock's current instant.
func (c *Clock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward by d and returns the new instant.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.current = c.current.Add(d)
	return c.current
}

// Set jumps the clock to the given instant.
func (c *Clock) Set(t time.Time) {
	c.current = t
}
