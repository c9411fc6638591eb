package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Early releases stored configuration as a flat YAML file
// (procpulse/procpulse.yaml). Migrate converts such a file to the current
// TOML layout, backing up the original first. Migration runs automatically
// at startup when a legacy file exists and no TOML config does.

// MigrationResult describes what a migration did.
type MigrationResult struct {
	Success    bool
	BackupPath string
	TargetPath string
	Changes    []ConfigChange
	Warnings   []string
}

// ConfigChange records one field translated during migration.
type ConfigChange struct {
	Field    string
	OldValue string
	NewValue string
	Action   string // "renamed", "converted", "dropped"
}

// legacyConfig mirrors the v1 YAML schema. All keys were top-level.
type legacyConfig struct {
	Rate          int      `yaml:"rate"`      // milliseconds
	Retention     int      `yaml:"retention"` // milliseconds
	Temperature   string   `yaml:"temperature"`
	Grouped       bool     `yaml:"grouped"`
	CaseSensitive bool     `yaml:"case_sensitive"`
	WholeWord     bool     `yaml:"whole_word"`
	Regex         bool     `yaml:"regex"`
	Tree          bool     `yaml:"tree"`
	AvgCPU        bool     `yaml:"avg_cpu"`
	CurrentUsage  bool     `yaml:"current_usage"`
	NoClick       bool     `yaml:"no_click"`
	Layout        string   `yaml:"layout"`
	Hidden        []string `yaml:"hidden"`
	LogFile       string   `yaml:"log_file"`
	LogLevel      string   `yaml:"log_level"`
}

// LegacyConfigPath returns the path of an existing v1 YAML config, or ""
// when none is present.
func LegacyConfigPath() string {
	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(xdgConfigHome(home), "procpulse", "procpulse.yaml"),
		filepath.Join(home, ".config", "procpulse", "procpulse.yaml"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// NeedsMigration reports whether a legacy config exists with no current
// config to shadow it.
func NeedsMigration() bool {
	if LegacyConfigPath() == "" {
		return false
	}
	for _, p := range ConfigSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return false
		}
	}
	return true
}

// MigrateIfNeeded runs the migration when NeedsMigration holds. Returns
// (nil, nil) when there is nothing to do.
func MigrateIfNeeded() (*MigrationResult, error) {
	if !NeedsMigration() {
		return nil, nil
	}
	return Migrate(LegacyConfigPath(), ConfigSearchPaths()[0])
}

// Migrate converts the YAML config at yamlPath into a TOML config written
// atomically to tomlPath. The original file is kept, backed up with a
// timestamped suffix.
func Migrate(yamlPath, tomlPath string) (*MigrationResult, error) {
	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		return nil, fmt.Errorf("read legacy config: %w", err)
	}

	var legacy legacyConfig
	if err := yaml.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("parse legacy config %s: %w", yamlPath, err)
	}

	result := &MigrationResult{TargetPath: tomlPath}
	cfg := mgTransform(&legacy, result)

	backup, err := mgBackup(yamlPath)
	if err != nil {
		return nil, fmt.Errorf("backup legacy config: %w", err)
	}
	result.BackupPath = backup

	if err := mgWriteTOML(tomlPath, cfg); err != nil {
		return nil, fmt.Errorf("write migrated config: %w", err)
	}

	result.Success = true
	return result, nil
}

// mgTransform maps the legacy fields onto a fresh default Config,
// recording every translation in the result.
func mgTransform(legacy *legacyConfig, result *MigrationResult) *Config {
	cfg := DefaultConfig()
	change := func(field, oldV, newV, action string) {
		result.Changes = append(result.Changes, ConfigChange{
			Field: field, OldValue: oldV, NewValue: newV, Action: action,
		})
	}

	if legacy.Rate > 0 {
		d := time.Duration(legacy.Rate) * time.Millisecond
		cfg.General.RefreshRate = Duration{d}
		change("rate", fmt.Sprintf("%d", legacy.Rate), d.String(), "converted")
	}
	if legacy.Retention > 0 {
		d := time.Duration(legacy.Retention) * time.Millisecond
		cfg.General.Retention = Duration{d}
		change("retention", fmt.Sprintf("%d", legacy.Retention), d.String(), "converted")
	}

	if legacy.Temperature != "" {
		var unit string
		switch strings.ToLower(legacy.Temperature) {
		case "c", "celsius":
			unit = "celsius"
		case "f", "fahrenheit":
			unit = "fahrenheit"
		case "k", "kelvin":
			unit = "kelvin"
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unknown temperature unit %q, keeping celsius", legacy.Temperature))
			unit = "celsius"
		}
		cfg.General.TemperatureUnit = unit
		change("temperature", legacy.Temperature, unit, "converted")
	}

	if legacy.Grouped {
		cfg.Process.Grouped = true
		change("grouped", "true", "true", "renamed")
	}
	if legacy.Tree {
		cfg.Process.Tree = true
		change("tree", "true", "true", "renamed")
	}
	if legacy.CaseSensitive {
		// v1 stored the positive flag, v2 stores its inverse.
		cfg.Process.IgnoreCase = false
		change("case_sensitive", "true", "ignore_case=false", "converted")
	}
	if legacy.WholeWord {
		cfg.Process.WholeWord = true
		change("whole_word", "true", "true", "renamed")
	}
	if legacy.Regex {
		cfg.Process.Regex = true
		change("regex", "true", "true", "renamed")
	}

	if legacy.AvgCPU {
		cfg.General.ShowAverageCPU = true
		change("avg_cpu", "true", "true", "renamed")
	}
	if legacy.CurrentUsage {
		cfg.General.UseCurrentCPUTotal = true
		change("current_usage", "true", "true", "renamed")
	}
	if legacy.NoClick {
		cfg.General.DisableClick = true
		change("no_click", "true", "true", "renamed")
	}

	if legacy.Layout != "" {
		cfg.Layout.Preset = legacy.Layout
		change("layout", legacy.Layout, legacy.Layout, "renamed")
	}

	for _, name := range legacy.Hidden {
		if !validMetric(name) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("dropping unknown hidden metric %q", name))
			change("hidden", name, "", "dropped")
			continue
		}
		cfg.General.DisabledMetrics = append(cfg.General.DisabledMetrics, strings.ToLower(name))
		change("hidden", name, strings.ToLower(name), "renamed")
	}

	if legacy.LogFile != "" {
		cfg.General.LogFile = legacy.LogFile
		change("log_file", legacy.LogFile, legacy.LogFile, "renamed")
	}
	if legacy.LogLevel != "" {
		cfg.General.LogLevel = legacy.LogLevel
		change("log_level", legacy.LogLevel, legacy.LogLevel, "renamed")
	}

	return cfg
}

// mgBackup copies path to a timestamped sibling and returns the new name.
func mgBackup(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	stamp := time.Now().Format("20060102-150405")
	backup := fmt.Sprintf("%s.v1.%s.bak", path, stamp)
	if err := os.WriteFile(backup, raw, 0o644); err != nil {
		return "", err
	}
	return backup, nil
}

// mgWriteTOML writes the config atomically: encode to a temp file in the
// target directory, then rename over the destination.
func mgWriteTOML(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
