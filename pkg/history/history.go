package history

import (
	"fmt"
	"sort"
	"time"

	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
)

// Well-known series names written by Ingest. Per-core CPU series are named
// "cpu.core0", "cpu.core1", ... via CoreSeries.
const (
	SeriesCPUAvg     = "cpu.avg"
	SeriesMemPercent = "mem.percent"
	SeriesSwapUsed   = "swap.percent"
	SeriesNetRx      = "net.rx"
	SeriesNetTx      = "net.tx"
	SeriesBattery    = "battery.percent"
)

// CoreSeries returns the series name for one CPU core.
func CoreSeries(core int) string {
	return fmt.Sprintf("cpu.core%d", core)
}

// Config controls retention behavior.
type Config struct {
	// Retention is how long data points are kept before pruning.
	// Zero means 10 minutes.
	Retention time.Duration

	// MaxPoints is the upper bound on points per series, enforced on every
	// append independent of prune cadence. Zero means 600.
	MaxPoints int
}

func (c Config) defaults() Config {
	if c.Retention == 0 {
		c.Retention = 10 * time.Minute
	}
	if c.MaxPoints == 0 {
		c.MaxPoints = 600
	}
	return c
}

// Rates is a pair of per-second byte rates derived from cumulative counters.
type Rates struct {
	ReadPerSec  float64
	WritePerSec float64
}

type netBaseline struct {
	rx, tx uint64
}

type ioBaseline struct {
	read, write uint64
}

// History accumulates harvested snapshots into per-metric time series and
// derives per-second rates from cumulative counters. Single-owner: all
// methods must be called from the update loop goroutine.
type History struct {
	cfg    Config
	series map[string]*Series

	prevNet    map[string]netBaseline
	prevDisk   map[string]ioBaseline
	diskRates  map[string]Rates
	lastIngest time.Time
}

// New creates an empty history with the given configuration.
func New(cfg Config) *History {
	return &History{
		cfg:       cfg.defaults(),
		series:    make(map[string]*Series),
		prevNet:   make(map[string]netBaseline),
		prevDisk:  make(map[string]ioBaseline),
		diskRates: make(map[string]Rates),
	}
}

// Retention returns the configured retention window.
func (h *History) Retention() time.Duration {
	return h.cfg.Retention
}

// Ingest merges one snapshot: gauge metrics are appended as-is, cumulative
// network and disk counters are converted to per-second rates against the
// previous snapshot's baselines. The first snapshot after New or Reset has
// no baseline and records zero rates rather than a spike spanning the gap.
func (h *History) Ingest(snap *harvest.Snapshot) {
	t := snap.CollectedAt

	h.add(SeriesCPUAvg, t, snap.CPU.Average)
	for i, v := range snap.CPU.PerCore {
		h.add(CoreSeries(i), t, v)
	}

	h.add(SeriesMemPercent, t, snap.Memory.UsedPercent)
	if snap.Memory.SwapTotalBytes > 0 {
		h.add(SeriesSwapUsed, t, snap.Memory.SwapUsedPercent)
	}

	wall := 0.0
	if !h.lastIngest.IsZero() {
		wall = t.Sub(h.lastIngest).Seconds()
	}

	if len(snap.Networks) > 0 {
		rx, tx := h.netRates(snap.Networks, wall)
		h.add(SeriesNetRx, t, rx)
		h.add(SeriesNetTx, t, tx)
	}

	h.ingestDisks(snap.Disks, wall)

	if snap.Battery != nil {
		h.add(SeriesBattery, t, snap.Battery.Percent)
	}

	h.lastIngest = t
}

// netRates sums per-second receive/transmit rates across interfaces and
// refreshes the cumulative baselines.
func (h *History) netRates(nets []harvest.NetworkSample, wall float64) (rx, tx float64) {
	next := make(map[string]netBaseline, len(nets))
	for _, n := range nets {
		next[n.Interface] = netBaseline{rx: n.RxBytes, tx: n.TxBytes}
		prev, ok := h.prevNet[n.Interface]
		if !ok || wall <= 0 {
			continue
		}
		// Counters go backwards when an interface resets; skip that sample.
		if n.RxBytes >= prev.rx {
			rx += float64(n.RxBytes-prev.rx) / wall
		}
		if n.TxBytes >= prev.tx {
			tx += float64(n.TxBytes-prev.tx) / wall
		}
	}
	h.prevNet = next
	return rx, tx
}

// ingestDisks refreshes per-device I/O rates (latest only, not a series).
func (h *History) ingestDisks(disks []harvest.DiskSample, wall float64) {
	next := make(map[string]ioBaseline, len(disks))
	rates := make(map[string]Rates, len(disks))
	for _, d := range disks {
		next[d.Device] = ioBaseline{read: d.ReadBytes, write: d.WriteBytes}
		prev, ok := h.prevDisk[d.Device]
		if !ok || wall <= 0 {
			rates[d.Device] = Rates{}
			continue
		}
		var r Rates
		if d.ReadBytes >= prev.read {
			r.ReadPerSec = float64(d.ReadBytes-prev.read) / wall
		}
		if d.WriteBytes >= prev.write {
			r.WritePerSec = float64(d.WriteBytes-prev.write) / wall
		}
		rates[d.Device] = r
	}
	h.prevDisk = next
	h.diskRates = rates
}

// Get returns the named series, or nil if it has never been written. The
// returned series is live storage; callers must not mutate it.
func (h *History) Get(name string) *Series {
	return h.series[name]
}

// DiskRates returns the most recent per-second I/O rates for a device.
func (h *History) DiskRates(device string) Rates {
	return h.diskRates[device]
}

// ListSeries returns all series names in sorted order.
func (h *History) ListSeries() []string {
	names := make([]string, 0, len(h.series))
	for name := range h.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset drops every series and every cumulative baseline. The next Ingest
// starts from scratch exactly like the first ever snapshot.
func (h *History) Reset() {
	h.series = make(map[string]*Series)
	h.prevNet = make(map[string]netBaseline)
	h.prevDisk = make(map[string]ioBaseline)
	h.diskRates = make(map[string]Rates)
	h.lastIngest = time.Time{}
}

// add appends one point, creating the series on first write and enforcing
// the max-points cap.
func (h *History) add(name string, t time.Time, v float64) {
	ser, ok := h.series[name]
	if !ok {
		ser = &Series{Name: name}
		h.series[name] = ser
	}
	ser.append(t, v)
	if excess := len(ser.Values) - h.cfg.MaxPoints; excess > 0 {
		ser.Times = ser.Times[excess:]
		ser.Values = ser.Values[excess:]
	}
}
