package harvest

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	// MinRefresh is the lowest refresh interval the scheduler accepts.
	// Anything faster burns CPU on collection without adding information.
	MinRefresh = 250 * time.Millisecond

	// DefaultRefresh is the refresh interval used when none is configured.
	DefaultRefresh = time.Second
)

// Scheduler is the dedicated harvest goroutine. Each cycle it drains one
// pending reset request, collects a snapshot from its Harvester, forwards it
// on the event channel, and sleeps for the refresh interval. The Harvester is
// owned exclusively by the scheduler goroutine once Start is called.
type Scheduler struct {
	harvester Harvester
	interval  time.Duration
	events    chan<- Event
	resets    <-chan struct{}
	log       *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler wires a scheduler to its harvester and channels. The interval
// is clamped to MinRefresh.
func NewScheduler(h Harvester, interval time.Duration, events chan<- Event, resets <-chan struct{}, log *slog.Logger) *Scheduler {
	if interval < MinRefresh {
		interval = MinRefresh
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		harvester: h,
		interval:  interval,
		events:    events,
		resets:    resets,
		log:       log,
	}
}

// Start launches the collection loop. The loop exits when ctx is cancelled;
// that exit is silent because a consumer that stopped receiving is the normal
// shutdown path, not an error.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cancel != nil {
		return errors.New("harvest: scheduler already started")
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx)
	return nil
}

// Stop cancels the loop and waits for it to exit. Safe to call more than
// once and before Start.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	// Collect immediately on startup so the first frame has data, then fall
	// into the steady interval.
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		s.drainReset()

		start := time.Now()
		snap, err := s.harvester.Collect(ctx)
		if snap == nil {
			if err != nil && ctx.Err() == nil {
				s.log.Warn("harvest cycle failed", "err", err)
			}
		} else {
			select {
			case s.events <- SnapshotEvent{Snapshot: snap, Err: err}:
			case <-ctx.Done():
				return
			}
			s.log.Debug("snapshot delivered",
				"processes", len(snap.Processes),
				"latency", time.Since(start))
		}

		timer.Reset(s.interval)
	}
}

// drainReset consumes at most one pending reset request without blocking and
// clears the harvester's rate baselines when one was present.
func (s *Scheduler) drainReset() {
	select {
	case <-s.resets:
		s.harvester.ResetBaseline()
		s.log.Debug("rate baselines reset")
	default:
	}
}
