package harvest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/shirou/gopsutil/v4/sensors"
)

// procBaseline holds the previous cumulative counters for one process,
// used to turn counters into per-second rates on the next collection.
type procBaseline struct {
	cpuSeconds float64
	readBytes  uint64
	writeBytes uint64
}

// SysHarvester implements Harvester on gopsutil. It is stateful: per-process
// CPU and I/O baselines plus the aggregate CPU baseline live between
// collections so rate fields are true deltas, not since-boot averages. Owned
// exclusively by the scheduler goroutine.
type SysHarvester struct {
	opts Options

	lastCollect time.Time
	lastSysBusy float64
	prevProcs   map[int32]procBaseline
}

var _ Harvester = (*SysHarvester)(nil)

// NewSysHarvester creates a harvester with the given options.
func NewSysHarvester(opts Options) *SysHarvester {
	return &SysHarvester{
		opts:      opts,
		prevProcs: make(map[int32]procBaseline),
	}
}

// ResetBaseline clears all cumulative-counter baselines. The next Collect
// behaves like a first run: rate fields are zero instead of spanning the gap
// since the last unreset collection.
func (h *SysHarvester) ResetBaseline() {
	h.lastCollect = time.Time{}
	h.lastSysBusy = 0
	h.prevProcs = make(map[int32]procBaseline)
}

// Collect gathers one snapshot. Individual metric families that fail are left
// at their zero values and aggregated into the returned error; the snapshot
// is still delivered. Only a fully failed collection returns a nil snapshot.
func (h *SysHarvester) Collect(ctx context.Context) (*Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	snap := &Snapshot{
		CollectedAt: time.Now(),
	}

	var errs []string
	attempted := 0

	collect := func(m Metric, fn func(context.Context, *Snapshot) error) {
		if !h.opts.MetricEnabled(m) {
			return
		}
		attempted++
		if err := fn(ctx, snap); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", m, err))
		}
	}

	collect(MetricCPU, h.collectCPU)
	collect(MetricMemory, h.collectMemory)
	collect(MetricNetwork, h.collectNetwork)
	collect(MetricDisk, h.collectDisk)
	collect(MetricTemperature, h.collectTemperatures)
	collect(MetricBattery, h.collectBattery)
	collect(MetricProcess, h.collectProcesses)

	h.lastCollect = snap.CollectedAt

	if attempted > 0 && len(errs) == attempted {
		return nil, fmt.Errorf("harvest: all metric families failed: %s", strings.Join(errs, "; "))
	}
	if len(errs) > 0 {
		return snap, fmt.Errorf("harvest: partial errors: %s", strings.Join(errs, "; "))
	}
	return snap, nil
}

// --- metric families ---

func (h *SysHarvester) collectCPU(ctx context.Context, snap *Snapshot) error {
	// Interval 0 measures against gopsutil's previous call, so the scheduler
	// cadence is the sampling window. The first tick reads as zero.
	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return err
	}
	total, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return err
	}
	snap.CPU.PerCore = perCore
	if len(total) > 0 {
		snap.CPU.Average = total[0]
	}
	return nil
}

func (h *SysHarvester) collectMemory(ctx context.Context, snap *Snapshot) error {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return err
	}
	snap.Memory.UsedBytes = vm.Used
	snap.Memory.TotalBytes = vm.Total
	snap.Memory.UsedPercent = vm.UsedPercent

	sw, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		// Hosts without swap are common; leave the swap fields zero.
		return nil
	}
	snap.Memory.SwapUsedBytes = sw.Used
	snap.Memory.SwapTotalBytes = sw.Total
	snap.Memory.SwapUsedPercent = sw.UsedPercent
	return nil
}

func (h *SysHarvester) collectNetwork(ctx context.Context, snap *Snapshot) error {
	counters, err := gnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return err
	}
	for _, c := range counters {
		if c.Name == "lo" || c.Name == "lo0" {
			continue
		}
		snap.Networks = append(snap.Networks, NetworkSample{
			Interface: c.Name,
			RxBytes:   c.BytesRecv,
			TxBytes:   c.BytesSent,
		})
	}
	return nil
}

func (h *SysHarvester) collectDisk(ctx context.Context, snap *Snapshot) error {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return err
	}
	io, ioErr := disk.IOCountersWithContext(ctx)

	for _, p := range parts {
		if isVirtualFS(p.Fstype) {
			continue
		}
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			continue // unreadable mounts are skipped, not fatal
		}
		ds := DiskSample{
			Device:      p.Device,
			Mount:       p.Mountpoint,
			FSType:      p.Fstype,
			UsedBytes:   usage.Used,
			TotalBytes:  usage.Total,
			UsedPercent: usage.UsedPercent,
		}
		if ioErr == nil {
			dev := p.Device
			if i := strings.LastIndexByte(dev, '/'); i >= 0 {
				dev = dev[i+1:]
			}
			if c, ok := io[dev]; ok {
				ds.ReadBytes = c.ReadBytes
				ds.WriteBytes = c.WriteBytes
			}
		}
		snap.Disks = append(snap.Disks, ds)
	}
	return nil
}

func (h *SysHarvester) collectTemperatures(ctx context.Context, snap *Snapshot) error {
	stats, err := sensors.TemperaturesWithContext(ctx)
	if err != nil && len(stats) == 0 {
		return err
	}
	for _, s := range stats {
		if s.SensorKey == "" {
			continue
		}
		snap.Temperatures = append(snap.Temperatures, TemperatureSample{
			Sensor:  s.SensorKey,
			Degrees: h.opts.TempUnit.Convert(s.Temperature),
		})
	}
	return nil
}

func (h *SysHarvester) collectBattery(_ context.Context, snap *Snapshot) error {
	bats, _ := battery.GetAll()
	if len(bats) == 0 {
		// Desktops without a battery are the normal case, not an error.
		return nil
	}
	b := bats[0]
	sample := &BatterySample{
		State:    b.State.String(),
		Charging: b.State.Raw == battery.Charging,
	}
	if b.Full > 0 {
		pct := b.Current / b.Full * 100
		if pct > 100 {
			pct = 100
		}
		sample.Percent = pct
	}
	if b.ChargeRate > 0 {
		switch b.State.Raw {
		case battery.Discharging:
			sample.TimeLeft = time.Duration(b.Current / b.ChargeRate * float64(time.Hour))
		case battery.Charging:
			sample.TimeLeft = time.Duration((b.Full - b.Current) / b.ChargeRate * float64(time.Hour))
		}
	}
	snap.Battery = sample
	return nil
}

func (h *SysHarvester) collectProcesses(ctx context.Context, snap *Snapshot) error {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return err
	}

	wall := 0.0
	if !h.lastCollect.IsZero() {
		wall = snap.CollectedAt.Sub(h.lastCollect).Seconds()
	}
	busyDelta := h.sysBusyDelta(ctx)

	next := make(map[int32]procBaseline, len(procs))
	records := make([]ProcessRecord, 0, len(procs))

	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Races with process exit are routine; drop the row silently.
			continue
		}
		rec := ProcessRecord{
			PID:  p.Pid,
			Name: name,
		}
		if cmd, err := p.CmdlineWithContext(ctx); err == nil {
			rec.Command = cmd
		}
		if rec.Command == "" {
			rec.Command = name
		}
		if ppid, err := p.PpidWithContext(ctx); err == nil {
			rec.ParentPID = ppid
		}
		if status, err := p.StatusWithContext(ctx); err == nil && len(status) > 0 {
			rec.State = status[0]
		}
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			rec.MemBytes = mi.RSS
		}
		if mp, err := p.MemoryPercentWithContext(ctx); err == nil {
			rec.MemPercent = float64(mp)
		}

		base := procBaseline{}
		if t, err := p.TimesWithContext(ctx); err == nil && t != nil {
			base.cpuSeconds = t.User + t.System
		}
		if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
			base.readBytes = io.ReadBytes
			base.writeBytes = io.WriteBytes
			rec.TotalRead = io.ReadBytes
			rec.TotalWrite = io.WriteBytes
		}

		if prev, ok := h.prevProcs[p.Pid]; ok && wall > 0 {
			rec.CPUPercent = h.procCPUPercent(base.cpuSeconds-prev.cpuSeconds, wall, busyDelta)
			if base.readBytes >= prev.readBytes {
				rec.ReadPerSec = float64(base.readBytes-prev.readBytes) / wall
			}
			if base.writeBytes >= prev.writeBytes {
				rec.WritePerSec = float64(base.writeBytes-prev.writeBytes) / wall
			}
		}

		next[p.Pid] = base
		records = append(records, rec)
	}

	h.prevProcs = next
	snap.Processes = records
	return nil
}

// procCPUPercent converts a process CPU-seconds delta into a percentage.
// Default denominator is one core's capacity over the wall interval (top
// style, a saturated multicore process exceeds 100). With UseCurrentCPUTotal
// the denominator is the observed busy time, so visible rows sum to 100.
func (h *SysHarvester) procCPUPercent(procDelta, wall, busyDelta float64) float64 {
	if procDelta <= 0 {
		return 0
	}
	denom := wall
	if h.opts.UseCurrentCPUTotal {
		denom = busyDelta
	}
	if denom <= 0 {
		return 0
	}
	return procDelta / denom * 100
}

// sysBusyDelta returns the aggregate non-idle CPU seconds spent since the
// previous collection, updating the stored baseline.
func (h *SysHarvester) sysBusyDelta(ctx context.Context) float64 {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil || len(times) == 0 {
		return 0
	}
	t := times[0]
	busy := t.Total() - t.Idle
	delta := busy - h.lastSysBusy
	h.lastSysBusy = busy
	if h.lastCollect.IsZero() || delta < 0 {
		return 0
	}
	return delta
}

// isVirtualFS reports filesystem types that do not represent real storage.
func isVirtualFS(fstype string) bool {
	switch fstype {
	case "devfs", "devtmpfs", "tmpfs", "sysfs", "proc", "cgroup", "cgroup2",
		"autofs", "mqueue", "hugetlbfs", "debugfs", "tracefs", "securityfs",
		"pstore", "bpf", "fusectl", "configfs", "ramfs", "rpc_pipefs",
		"nfsd", "overlay", "squashfs", "devpts":
		return true
	}
	return false
}
