package harvest

import "time"

// Snapshot is one immutable bundle of all metrics harvested at a point in
// time. Ownership transfers from the scheduler goroutine to the update loop
// via the event channel; the scheduler never retains a snapshot it has sent.
type Snapshot struct {
	CollectedAt  time.Time
	Processes    []ProcessRecord
	CPU          CPUSample
	Memory       MemorySample
	Networks     []NetworkSample
	Disks        []DiskSample
	Temperatures []TemperatureSample
	Battery      *BatterySample // nil when absent or disabled
}

// ProcessRecord is one process row as harvested. PID is unique within a
// Snapshot. ParentPID is 0 when unknown.
type ProcessRecord struct {
	PID         int32
	ParentPID   int32
	Name        string
	Command     string
	CPUPercent  float64
	MemPercent  float64
	MemBytes    uint64
	ReadPerSec  float64
	WritePerSec float64
	TotalRead   uint64
	TotalWrite  uint64
	State       string
}

// CPUSample holds per-core utilisation percentages plus the aggregate.
type CPUSample struct {
	PerCore []float64
	Average float64
}

// MemorySample holds physical and swap memory usage.
type MemorySample struct {
	UsedBytes       uint64
	TotalBytes      uint64
	UsedPercent     float64
	SwapUsedBytes   uint64
	SwapTotalBytes  uint64
	SwapUsedPercent float64
}

// NetworkSample holds cumulative byte counters for one interface. Rates are
// derived downstream from deltas between consecutive snapshots.
type NetworkSample struct {
	Interface string
	RxBytes   uint64
	TxBytes   uint64
}

// DiskSample holds capacity usage and cumulative I/O counters for one device.
type DiskSample struct {
	Device      string
	Mount       string
	FSType      string
	UsedBytes   uint64
	TotalBytes  uint64
	UsedPercent float64
	ReadBytes   uint64
	WriteBytes  uint64
}

// TemperatureSample is one sensor reading, already converted to the
// configured unit.
type TemperatureSample struct {
	Sensor  string
	Degrees float64
}

// BatterySample describes the first battery found on the host.
type BatterySample struct {
	Percent  float64
	Charging bool
	State    string
	TimeLeft time.Duration // 0 when unknown
}
