package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
)

// DefaultRenderInterval paces UI redraws. Snapshots arrive on their own
// refresh cadence; the ticker only controls how often the screen and the
// finalized-row caches catch up.
const DefaultRenderInterval = 200 * time.Millisecond

// TickCmd returns a Cmd that sends a TickEvent after d. The update loop
// re-arms it on every tick.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// WaitForEvent returns a Cmd that blocks on the harvest channel and
// delivers the next event as a message. The update loop re-arms it after
// every delivery so exactly one receive is outstanding at a time. A closed
// channel surfaces as EventsClosedEvent.
func WaitForEvent(ch <-chan harvest.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return EventsClosedEvent{}
		}
		return ev
	}
}
