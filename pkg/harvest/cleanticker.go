package harvest

import (
	"context"
	"errors"
	"time"
)

// CleanInterval derives the cleanup cadence from the history retention
// window. Running a little slower than the window itself keeps prune work
// rare while bounding how far past retention a sample can live.
func CleanInterval(retention time.Duration) time.Duration {
	return retention + 5*time.Second
}

// CleanTicker emits CleanEvent on the shared event channel at a fixed
// cadence, independent of harvest and input activity.
type CleanTicker struct {
	every  time.Duration
	events chan<- Event

	cancel context.CancelFunc
	done   chan struct{}
}

// NewCleanTicker creates a ticker emitting every `every`.
func NewCleanTicker(every time.Duration, events chan<- Event) *CleanTicker {
	if every <= 0 {
		every = CleanInterval(10 * time.Minute)
	}
	return &CleanTicker{every: every, events: events}
}

// Start launches the tick loop; it exits silently on context cancellation.
func (c *CleanTicker) Start(ctx context.Context) error {
	if c.cancel != nil {
		return errors.New("harvest: clean ticker already started")
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.loop(ctx)
	return nil
}

// Stop cancels the loop and waits for it to exit.
func (c *CleanTicker) Stop() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
}

func (c *CleanTicker) loop(ctx context.Context) {
	defer close(c.done)
	ticker := time.NewTicker(c.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			select {
			case c.events <- CleanEvent{At: t}:
			case <-ctx.Done():
				return
			}
		}
	}
}
