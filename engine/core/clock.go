package core

import "time"

type Clock struct {
	startTime time.Time
	elapsed   time.Duration
	running   bool
	// now is swapped out in tests
	now func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.running {
		c.elapsed = c.now().Sub(c.startTime)
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.now()
	c.elapsed = 0
	c.running = true
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.running = false
}

// Elapsed returns the time between Start and the last Update, in seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed.Seconds()
}
