// Package app wires the bubbletea update loop for procpulse: the root
// model, the key dispatch tables, widget focus navigation, and the bridge
// that turns harvest channel traffic into bubbletea messages.
//
// All mutable state is owned by the model and changes only inside Update.
// The harvest goroutines never touch it; they hand snapshots over a
// channel and the bridge command delivers them here as messages.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/procpulse/pkg/config"
)

// TickEvent is sent by the render ticker to pace redraws and cache
// recomputation independently of data arrival.
type TickEvent struct {
	Time time.Time
}

// ReloadEvent delivers a freshly loaded configuration from the file
// watcher. Only runtime-safe fields are applied; structural settings keep
// their startup values until restart.
type ReloadEvent struct {
	Config *config.Config
}

// EventsClosedEvent reports that the harvest event channel closed under
// the bridge. Producers exit only on context cancellation, so this is a
// shutdown signal, not an error.
type EventsClosedEvent struct{}
