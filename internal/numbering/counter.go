package numbering

import "math"

// overflowSentinel is the "large sentinel" spec.md §4.3 rule 5 refers
// to; a counter that would exceed it wraps back to 1 instead of
// overflowing uint32.
const overflowSentinel = math.MaxUint32

// Warning is emitted when a configured numbering format is invalid
// (graceful degradation: the level just goes unprefixed) or when a
// counter wraps on overflow.
type Warning struct {
	Level   int
	Message string
}

// Counters is the six-counter state machine described in §4.3. The
// zero value is the correct initial state (all counters at 0).
type Counters struct {
	values [6]uint32
}

// Bump advances the counter for heading level L (1..=6): increments
// C_L, resets every deeper counter C_{L+1..6} to 0, and returns the
// counters' new values for use with Render. Levels outside 1..6 are
// clamped into range, mirroring how a malformed document is still
// rendered rather than rejected.
func (c *Counters) Bump(level int) ([6]uint32, *Warning) {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	var warn *Warning
	idx := level - 1
	if c.values[idx] >= overflowSentinel {
		c.values[idx] = 1
		warn = &Warning{Level: level, Message: "heading counter overflowed and was reset to 1"}
	} else {
		c.values[idx]++
	}

	for i := idx + 1; i < 6; i++ {
		c.values[i] = 0
	}

	return c.values, warn
}

// Reset returns the counters to their initial all-zero state, as done
// at the start of every document conversion.
func (c *Counters) Reset() {
	*c = Counters{}
}
