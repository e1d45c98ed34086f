package tetris

import "time"

// Clock accumulates the time elapsed between frames and signals when the
// tetromino is due to move down.
type Clock struct {
	elapsed time.Duration
	rebased bool
}

// tick adds delta to the elapsed time and reports whether the interval was
// reached. The elapsed time goes back to zero after a step, so a long frame
// never results in more than one step.
func (c *Clock) tick(delta, interval time.Duration) bool {
	if c.rebased {
		// the first frame after a resume carries paused time.
		c.rebased = false
		return false
	}
	if delta > 0 {
		c.elapsed += delta
	}
	if c.elapsed < interval {
		return false
	}
	c.elapsed = 0
	return true
}

// rebase drops the next frame's delta.
func (c *Clock) rebase() { c.rebased = true }

func (c *Clock) reset() { *c = Clock{} }

// Elapsed returns the time accumulated towards the next step.
func (c *Clock) Elapsed() time.Duration { return c.elapsed }
