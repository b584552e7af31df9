package animator

import "time"

// Clock is what an Animator waits on between frames.
type Clock interface {
	Sleep(d time.Duration)
}

// SystemClock sleeps for real.
type SystemClock struct{}

// Sleep implements Clock.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// LogicalClock never blocks. It only adds up the time it was asked to sleep,
// which makes animations deterministic and instant in tests and dry runs.
// It is not safe for concurrent use.
type LogicalClock struct {
	elapsed time.Duration
	sleeps  int
}

// Sleep implements Clock.
func (c *LogicalClock) Sleep(d time.Duration) {
	if d > 0 {
		c.elapsed += d
	}
	c.sleeps++
}

// Elapsed returns the total time slept so far.
func (c *LogicalClock) Elapsed() time.Duration { return c.elapsed }

// Sleeps returns the number of Sleep calls so far.
func (c *LogicalClock) Sleeps() int { return c.sleeps }
