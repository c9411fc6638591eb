// Package harvest defines the metric snapshot model, the Harvester interface,
// and the producer goroutines that feed the update loop. A Scheduler owns one
// mutable Harvester, collects a Snapshot per refresh interval, and forwards it
// on the shared event channel; a CleanTicker emits periodic prune requests on
// the same channel. Producers never close the channel; they exit when their
// context is cancelled, which is the normal shutdown path.
package harvest

import "time"

// DefaultEventBuffer is the capacity of the shared event channel. Large enough
// that a slow redraw never makes the scheduler miss its cadence.
const DefaultEventBuffer = 64

// Event is a message on the shared producer channel. The update loop is the
// sole consumer and type-switches on the concrete types below.
type Event interface {
	event()
}

// SnapshotEvent delivers one harvested snapshot. Err carries a partial
// collection failure; the snapshot is still usable and Err is only logged.
type SnapshotEvent struct {
	Snapshot *Snapshot
	Err      error
}

// CleanEvent asks the consumer to prune history older than its retention
// window. It carries the emission time so tests can pin the cutoff.
type CleanEvent struct {
	At time.Time
}

func (SnapshotEvent) event() {}
func (CleanEvent) event()    {}
