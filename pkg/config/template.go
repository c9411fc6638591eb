package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Template is the documented default configuration written by the
// -write-config flag. Every value shown is the default; commented lines
// list the accepted alternatives.
const Template = `# procpulse configuration.
#
# Search order: $XDG_CONFIG_HOME/procpulse/config.toml, then
# ~/.config/procpulse/config.toml. CLI flags override anything here.

[general]
# Snapshot collection interval. Minimum 250ms.
refresh_rate = "1s"

# How far back metric history reaches. Older points are pruned.
retention = "10m"

# celsius, fahrenheit, or kelvin.
temperature_unit = "celsius"

# Add the aggregate CPU line next to the per-core ones.
show_average_cpu = false

# Divide per-process CPU by observed busy time so visible percentages
# sum to 100.
use_current_cpu_total = false

# Turn off mouse support.
disable_click = false

# Metric families to skip collecting entirely.
# Valid: cpu, memory, network, disk, temperature, battery, process.
disabled_metrics = []

# Log destination and level. Defaults to the XDG cache dir when empty.
#log_file = ""
log_level = "info"

[process]
# Collapse same-name processes into one row.
grouped = false

# Show the parent/child tree instead of the flat list.
tree = false

# Search matching defaults.
ignore_case = true
whole_word = false
regex = false
match_command = false

# Initial sort: cpu, mem, pid, name, or count.
sort_column = "cpu"
sort_descending = true

[layout]
# Named grid preset: default, minimal, proc, or battery.
# Explicit [[layout.rows]] tables below take precedence when present.
preset = "default"

# Example explicit grid. A row's ratio is its share of the height; each
# child's ratio is its share of the row's width.
#[[layout.rows]]
#ratio = 1
#
#  [[layout.rows.children]]
#  type = "cpu"
#  ratio = 1
#
#[[layout.rows]]
#ratio = 2
#
#  [[layout.rows.children]]
#  type = "process"
#  ratio = 1
`

// WriteTemplate writes Template to path, creating parent directories as
// needed. Refuses to clobber an existing file.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(Template), 0o644)
}
