// Package config provides TOML-based configuration for procpulse: the
// refresh and retention timings, process-table defaults, metric toggles,
// and the widget grid layout. Values load from an XDG config file, may be
// overridden by environment variables and CLI flags, and are validated
// before the UI starts.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
	"gitlab.com/tinyland/lab/procpulse/pkg/history"
	"gitlab.com/tinyland/lab/procpulse/pkg/layout"
	"gitlab.com/tinyland/lab/procpulse/pkg/proctable"
)

// Config is the root configuration document.
type Config struct {
	General GeneralConfig `toml:"general"`
	Process ProcessConfig `toml:"process"`
	Layout  LayoutConfig  `toml:"layout"`
}

// GeneralConfig holds program-wide settings.
type GeneralConfig struct {
	// RefreshRate is the snapshot collection interval. Values below 250ms
	// are rejected by Validate.
	RefreshRate Duration `toml:"refresh_rate"`

	// Retention bounds how far back the metric history reaches.
	Retention Duration `toml:"retention"`

	// TemperatureUnit is "celsius", "fahrenheit", or "kelvin".
	TemperatureUnit string `toml:"temperature_unit"`

	// ShowAverageCPU adds the aggregate CPU line next to the per-core ones.
	ShowAverageCPU bool `toml:"show_average_cpu"`

	// UseCurrentCPUTotal divides per-process CPU by observed busy time so
	// the visible percentages sum to 100.
	UseCurrentCPUTotal bool `toml:"use_current_cpu_total"`

	// DisableClick turns off mouse support.
	DisableClick bool `toml:"disable_click"`

	// DisabledMetrics lists metric families to skip collecting entirely.
	DisabledMetrics []string `toml:"disabled_metrics"`

	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// ProcessConfig holds the startup defaults for process-table widgets. Each
// widget copies these and mutates its own view state from there.
type ProcessConfig struct {
	Grouped        bool   `toml:"grouped"`
	Tree           bool   `toml:"tree"`
	IgnoreCase     bool   `toml:"ignore_case"`
	WholeWord      bool   `toml:"whole_word"`
	Regex          bool   `toml:"regex"`
	MatchCommand   bool   `toml:"match_command"`
	SortColumn     string `toml:"sort_column"`
	SortDescending bool   `toml:"sort_descending"`
}

// LayoutConfig selects the widget grid: a named preset, or explicit rows
// which take precedence over the preset when present.
type LayoutConfig struct {
	Preset string      `toml:"preset"`
	Rows   []RowConfig `toml:"rows"`
}

// RowConfig is one horizontal band of the grid.
type RowConfig struct {
	Ratio    int           `toml:"ratio"`
	Children []ChildConfig `toml:"children"`
}

// ChildConfig is one widget slot in a row.
type ChildConfig struct {
	Type  string `toml:"type"`
	Ratio int    `toml:"ratio"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logFile := filepath.Join(xdgCacheHome(home), "procpulse", "procpulse.log")

	return &Config{
		General: GeneralConfig{
			RefreshRate:     Duration{harvest.DefaultRefresh},
			Retention:       Duration{10 * time.Minute},
			TemperatureUnit: "celsius",
			LogFile:         logFile,
			LogLevel:        "info",
		},
		Process: ProcessConfig{
			IgnoreCase:     true,
			SortColumn:     "cpu",
			SortDescending: true,
		},
		Layout: LayoutConfig{
			Preset: "default",
		},
	}
}

// TempUnit resolves the configured temperature unit string.
func (c *Config) TempUnit() harvest.TempUnit {
	switch strings.ToLower(c.General.TemperatureUnit) {
	case "fahrenheit":
		return harvest.Fahrenheit
	case "kelvin":
		return harvest.Kelvin
	default:
		return harvest.Celsius
	}
}

// SortColumn resolves the configured default sort column.
func (c *Config) SortColumn() proctable.SortColumn {
	switch strings.ToLower(c.Process.SortColumn) {
	case "mem":
		return proctable.SortMem
	case "pid":
		return proctable.SortPID
	case "name":
		return proctable.SortName
	case "count":
		return proctable.SortCount
	default:
		return proctable.SortCPU
	}
}

// SlogLevel resolves the configured log level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.General.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// HarvestOptions builds the harvester option bundle from the config.
func (c *Config) HarvestOptions() harvest.Options {
	opts := harvest.Options{
		TempUnit:           c.TempUnit(),
		ShowAvgCPU:         c.General.ShowAverageCPU,
		UseCurrentCPUTotal: c.General.UseCurrentCPUTotal,
	}
	if len(c.General.DisabledMetrics) > 0 {
		disabled := make(map[harvest.Metric]bool, len(c.General.DisabledMetrics))
		for _, name := range c.General.DisabledMetrics {
			disabled[harvest.Metric(strings.ToLower(name))] = true
		}
		opts.Enabled = make(map[harvest.Metric]bool)
		for _, m := range harvest.AllMetrics() {
			if !disabled[m] {
				opts.Enabled[m] = true
			}
		}
	}
	return opts
}

// HistoryConfig builds the history retention settings from the config.
func (c *Config) HistoryConfig() history.Config {
	return history.Config{Retention: c.General.Retention.Duration}
}

// LayoutSpec resolves the widget grid: explicit rows if configured,
// otherwise the named preset.
func (c *Config) LayoutSpec() layout.Spec {
	lc := c.Layout
	if len(lc.Rows) == 0 {
		lc = LayoutPreset(lc.Preset)
	}
	spec := layout.Spec{Name: lc.Preset}
	for _, row := range lc.Rows {
		r := layout.Row{Ratio: row.Ratio}
		for _, ch := range row.Children {
			r.Children = append(r.Children, layout.Child{
				Kind:  layout.Kind(strings.ToLower(ch.Type)),
				Ratio: ch.Ratio,
			})
		}
		spec.Rows = append(spec.Rows, r)
	}
	return spec
}

// ProcSettings builds the initial process-table view settings.
func (c *Config) ProcSettings() proctable.Options {
	return proctable.Options{
		Grouped:        c.Process.Grouped,
		Tree:           c.Process.Tree,
		SortColumn:     c.SortColumn(),
		SortDescending: c.Process.SortDescending,
	}
}

// ProcQuery seeds the search flags for process-table widgets. The query
// text itself always starts blank.
func (c *Config) ProcQuery() proctable.Query {
	return proctable.Query{
		IgnoreCase:   c.Process.IgnoreCase,
		WholeWord:    c.Process.WholeWord,
		Regex:        c.Process.Regex,
		MatchCommand: c.Process.MatchCommand,
	}
}
