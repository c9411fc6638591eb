package app

import "time"

// DefaultThrottle is the minimum spacing between forwarded input events
// per source. Terminals flood mouse-motion and auto-repeat sequences far
// faster than any human acts on them.
const DefaultThrottle = 20 * time.Millisecond

// Gate rate-limits one input source: at most one event passes per
// interval window, the rest drop. Keyboard and mouse go through separate
// gates so a busy mouse cannot starve key handling.
type Gate struct {
	interval time.Duration
	last     time.Time
}

// NewGate returns a gate passing one event per interval. A non-positive
// interval passes everything.
func NewGate(interval time.Duration) *Gate {
	return &Gate{interval: interval}
}

// Allow reports whether an event at now passes the gate, and when it does,
// starts a new window. The first event always passes.
func (g *Gate) Allow(now time.Time) bool {
	if !g.last.IsZero() && now.Sub(g.last) < g.interval {
		return false
	}
	g.last = now
	return true
}
