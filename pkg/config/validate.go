package config

import (
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
	"gitlab.com/tinyland/lab/procpulse/pkg/layout"
)

// ValidationError reports a configuration value the program cannot start
// with. It is fatal: main prints it and exits before the UI begins.
type ValidationError struct {
	Field string
	Value any
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s = %v: %s", e.Field, e.Value, e.Msg)
}

// Validate checks the configuration after all overrides are applied.
// The first problem found is returned as a *ValidationError.
func (c *Config) Validate() error {
	if c.General.RefreshRate.Duration < harvest.MinRefresh {
		return &ValidationError{
			Field: "general.refresh_rate",
			Value: c.General.RefreshRate.Duration,
			Msg:   fmt.Sprintf("the minimum refresh rate is %s", harvest.MinRefresh),
		}
	}
	if c.General.Retention.Duration <= 0 {
		return &ValidationError{
			Field: "general.retention",
			Value: c.General.Retention.Duration,
			Msg:   "retention must be positive",
		}
	}

	switch strings.ToLower(c.General.TemperatureUnit) {
	case "celsius", "fahrenheit", "kelvin":
	default:
		return &ValidationError{
			Field: "general.temperature_unit",
			Value: c.General.TemperatureUnit,
			Msg:   "must be celsius, fahrenheit, or kelvin",
		}
	}

	for _, name := range c.General.DisabledMetrics {
		if !validMetric(name) {
			return &ValidationError{
				Field: "general.disabled_metrics",
				Value: name,
				Msg:   "unknown metric family",
			}
		}
	}

	switch strings.ToLower(c.Process.SortColumn) {
	case "cpu", "mem", "pid", "name", "count":
	default:
		return &ValidationError{
			Field: "process.sort_column",
			Value: c.Process.SortColumn,
			Msg:   "must be cpu, mem, pid, name, or count",
		}
	}

	for i, row := range c.Layout.Rows {
		if len(row.Children) == 0 {
			return &ValidationError{
				Field: fmt.Sprintf("layout.rows[%d]", i),
				Value: row,
				Msg:   "row has no children",
			}
		}
		for j, ch := range row.Children {
			if !layout.ValidKind(strings.ToLower(ch.Type)) {
				return &ValidationError{
					Field: fmt.Sprintf("layout.rows[%d].children[%d].type", i, j),
					Value: ch.Type,
					Msg:   "unknown widget type",
				}
			}
		}
	}

	return nil
}

func validMetric(name string) bool {
	for _, m := range harvest.AllMetrics() {
		if string(m) == strings.ToLower(name) {
			return true
		}
	}
	return false
}
