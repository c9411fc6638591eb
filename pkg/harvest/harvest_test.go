package harvest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// ---------- helpers ----------

// stubHarvester counts calls and returns a canned snapshot. The scheduler
// runs it from another goroutine, so the counters are mutex-guarded.
type stubHarvester struct {
	mu       sync.Mutex
	collects int
	resets   int
	err      error
}

func (s *stubHarvester) Collect(_ context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collects++
	return &Snapshot{CollectedAt: time.Now()}, s.err
}

func (s *stubHarvester) ResetBaseline() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets++
}

func (s *stubHarvester) counts() (collects, resets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collects, s.resets
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---------- scheduler ----------

func TestSchedulerDeliversSnapshots(t *testing.T) {
	stub := &stubHarvester{}
	events := make(chan Event, DefaultEventBuffer)
	resets := make(chan struct{}, 1)

	sched := NewScheduler(stub, MinRefresh, events, resets, quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := sched.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer sched.Stop()

	select {
	case ev := <-events:
		se, ok := ev.(SnapshotEvent)
		if !ok {
			t.Fatalf("first event is %T, want SnapshotEvent", ev)
		}
		if se.Snapshot == nil {
			t.Fatal("SnapshotEvent carries nil snapshot")
		}
		if se.Err != nil {
			t.Errorf("unexpected error: %v", se.Err)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for first snapshot")
	}
}

func TestSchedulerForwardsPartialError(t *testing.T) {
	stub := &stubHarvester{err: errors.New("sensors unavailable")}
	events := make(chan Event, DefaultEventBuffer)
	resets := make(chan struct{}, 1)

	sched := NewScheduler(stub, MinRefresh, events, resets, quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = sched.Start(ctx)
	defer sched.Stop()

	select {
	case ev := <-events:
		se := ev.(SnapshotEvent)
		if se.Snapshot == nil {
			t.Fatal("partial failure should still deliver the snapshot")
		}
		if se.Err == nil {
			t.Fatal("partial error was not forwarded")
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for snapshot")
	}
}

func TestSchedulerResetReachesHarvester(t *testing.T) {
	stub := &stubHarvester{}
	events := make(chan Event, DefaultEventBuffer)
	resets := make(chan struct{}, 1)

	sched := NewScheduler(stub, MinRefresh, events, resets, quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = sched.Start(ctx)
	defer sched.Stop()

	// First snapshot proves the loop is running, then queue a reset.
	<-events
	resets <- struct{}{}

	// The reset is drained at the top of the next cycle.
	select {
	case <-events:
	case <-ctx.Done():
		t.Fatal("timed out waiting for second snapshot")
	}

	_, gotResets := stub.counts()
	if gotResets != 1 {
		t.Errorf("harvester saw %d resets, want 1", gotResets)
	}
}

func TestSchedulerStopHaltsCollection(t *testing.T) {
	stub := &stubHarvester{}
	events := make(chan Event, DefaultEventBuffer)
	resets := make(chan struct{}, 1)

	sched := NewScheduler(stub, MinRefresh, events, resets, quietLogger())
	_ = sched.Start(context.Background())

	<-events
	sched.Stop()

	before, _ := stub.counts()
	time.Sleep(MinRefresh + 50*time.Millisecond)
	after, _ := stub.counts()

	if after != before {
		t.Errorf("collections continued after Stop: before=%d after=%d", before, after)
	}
}

func TestSchedulerStartTwice(t *testing.T) {
	stub := &stubHarvester{}
	events := make(chan Event, DefaultEventBuffer)

	sched := NewScheduler(stub, MinRefresh, events, nil, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sched.Start(ctx); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	defer sched.Stop()

	if err := sched.Start(ctx); err == nil {
		t.Fatal("second Start should fail")
	}
}

func TestSchedulerContextCancellation(t *testing.T) {
	stub := &stubHarvester{}
	events := make(chan Event) // unbuffered: the send must not wedge shutdown
	resets := make(chan struct{}, 1)

	sched := NewScheduler(stub, MinRefresh, events, resets, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	_ = sched.Start(ctx)
	cancel()

	stopped := make(chan struct{})
	go func() {
		sched.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
}

// ---------- clean ticker ----------

func TestCleanTickerEmits(t *testing.T) {
	events := make(chan Event, 4)
	ct := NewCleanTicker(50*time.Millisecond, events)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := ct.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer ct.Stop()

	select {
	case ev := <-events:
		ce, ok := ev.(CleanEvent)
		if !ok {
			t.Fatalf("event is %T, want CleanEvent", ev)
		}
		if ce.At.IsZero() {
			t.Error("CleanEvent.At should carry the tick time")
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for clean event")
	}
}

func TestCleanInterval(t *testing.T) {
	got := CleanInterval(10 * time.Minute)
	want := 10*time.Minute + 5*time.Second
	if got != want {
		t.Errorf("CleanInterval = %v, want %v", got, want)
	}
}

// ---------- options and unit math ----------

func TestTempUnitConvert(t *testing.T) {
	tests := []struct {
		unit TempUnit
		in   float64
		want float64
	}{
		{Celsius, 50, 50},
		{Fahrenheit, 0, 32},
		{Fahrenheit, 100, 212},
		{Kelvin, 0, 273.15},
	}
	for _, tt := range tests {
		if got := tt.unit.Convert(tt.in); got != tt.want {
			t.Errorf("%v.Convert(%v) = %v, want %v", tt.unit, tt.in, got, tt.want)
		}
	}
}

func TestMetricEnabled(t *testing.T) {
	all := Options{}
	if !all.MetricEnabled(MetricBattery) {
		t.Error("empty Enabled set should enable everything")
	}

	some := Options{Enabled: map[Metric]bool{MetricCPU: true}}
	if !some.MetricEnabled(MetricCPU) {
		t.Error("explicitly enabled metric reported disabled")
	}
	if some.MetricEnabled(MetricDisk) {
		t.Error("unlisted metric should be disabled when a set is given")
	}
}

func TestProcCPUPercentCapacity(t *testing.T) {
	h := NewSysHarvester(Options{})

	// Half a CPU-second over a one second wall interval is 50% of one core.
	if got := h.procCPUPercent(0.5, 1.0, 0.3); got != 50 {
		t.Errorf("capacity percent = %v, want 50", got)
	}
	if got := h.procCPUPercent(-0.1, 1.0, 0.3); got != 0 {
		t.Errorf("negative delta should clamp to 0, got %v", got)
	}
	if got := h.procCPUPercent(0.5, 0, 0.3); got != 0 {
		t.Errorf("zero wall should yield 0, got %v", got)
	}
}

func TestProcCPUPercentCurrentTotal(t *testing.T) {
	h := NewSysHarvester(Options{UseCurrentCPUTotal: true})

	// Denominator is observed busy time: 0.5 of 2.0 busy seconds is 25%.
	if got := h.procCPUPercent(0.5, 1.0, 2.0); got != 25 {
		t.Errorf("current-total percent = %v, want 25", got)
	}
	if got := h.procCPUPercent(0.5, 1.0, 0); got != 0 {
		t.Errorf("zero busy delta should yield 0, got %v", got)
	}
}

func TestIsVirtualFS(t *testing.T) {
	if !isVirtualFS("tmpfs") {
		t.Error("tmpfs should be virtual")
	}
	if isVirtualFS("ext4") {
		t.Error("ext4 should not be virtual")
	}
}
