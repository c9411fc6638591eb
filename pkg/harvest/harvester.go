package harvest

import "context"

// TempUnit selects the display unit for temperature sensors.
type TempUnit int

const (
	Celsius TempUnit = iota
	Fahrenheit
	Kelvin
)

// Convert transforms a Celsius reading into the unit.
func (u TempUnit) Convert(c float64) float64 {
	switch u {
	case Fahrenheit:
		return c*1.8 + 32
	case Kelvin:
		return c + 273.15
	default:
		return c
	}
}

// Suffix returns the display suffix for the unit.
func (u TempUnit) Suffix() string {
	switch u {
	case Fahrenheit:
		return "°F"
	case Kelvin:
		return "K"
	default:
		return "°C"
	}
}

// Metric identifies one collectible metric family. Disabling a metric skips
// its collection entirely rather than hiding packaged data.
type Metric string

const (
	MetricCPU         Metric = "cpu"
	MetricMemory      Metric = "memory"
	MetricNetwork     Metric = "network"
	MetricDisk        Metric = "disk"
	MetricTemperature Metric = "temperature"
	MetricBattery     Metric = "battery"
	MetricProcess     Metric = "process"
)

// AllMetrics returns every collectible metric family.
func AllMetrics() []Metric {
	return []Metric{
		MetricCPU, MetricMemory, MetricNetwork, MetricDisk,
		MetricTemperature, MetricBattery, MetricProcess,
	}
}

// Options is the immutable harvester configuration, captured once at startup
// and never mutated afterwards.
type Options struct {
	// TempUnit is the unit sensor readings are converted to.
	TempUnit TempUnit

	// ShowAvgCPU asks widgets to display the aggregate CPU alongside cores.
	// Carried here because it is part of the startup bundle handed to the
	// scheduler thread.
	ShowAvgCPU bool

	// UseCurrentCPUTotal divides per-process CPU by the observed busy time
	// instead of one core's capacity, so visible percentages sum to 100.
	UseCurrentCPUTotal bool

	// Enabled restricts collection to these metric families. Nil or empty
	// means all metrics are collected.
	Enabled map[Metric]bool
}

// MetricEnabled reports whether the metric family should be collected.
func (o Options) MetricEnabled(m Metric) bool {
	if len(o.Enabled) == 0 {
		return true
	}
	return o.Enabled[m]
}

// Harvester produces metric snapshots. Implementations are stateful (they
// keep cumulative-counter baselines for rate computation) and are owned
// exclusively by the scheduler goroutine; nothing here needs to be
// goroutine-safe.
type Harvester interface {
	// Collect gathers one snapshot. A non-nil snapshot may be returned
	// together with a non-nil error when only some metric families failed;
	// the failed fields are left at their zero values.
	Collect(ctx context.Context) (*Snapshot, error)

	// ResetBaseline clears cumulative-counter baselines so the next
	// snapshot's rate fields are computed as if collection just started.
	ResetBaseline()
}
