// Package widgets provides the concrete widget implementations for the
// procpulse dashboard grid. Each widget implements the app.Widget interface:
// it caches what it needs from broadcast snapshot events (or reads the shared
// history store directly) and renders its interior on demand.
package widgets

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/procpulse/pkg/app"
	"gitlab.com/tinyland/lab/procpulse/pkg/components"
	"gitlab.com/tinyland/lab/procpulse/pkg/config"
	"gitlab.com/tinyland/lab/procpulse/pkg/history"
	"gitlab.com/tinyland/lab/procpulse/pkg/layout"
)

// seriesPalette assigns line colors to multi-series graphs. CPU core N uses
// seriesPalette[N % len(seriesPalette)].
var seriesPalette = [...]string{
	components.ColorGood,
	components.ColorInfo,
	components.ColorWarn,
	components.ColorAccent,
	components.ColorCrit,
	"#26A69A",
	"#EC407A",
	"#FFEE58",
}

// minGraphWindow is the tightest zoom a time graph allows.
const minGraphWindow = 30 * time.Second

// Build instantiates one widget per placement id, in the order the layout
// enumerates them. Process widgets additionally get a ProcState seeded from
// the configured defaults; the returned map hands those to the model, keyed
// by placement id.
func Build(cfg *config.Config, ids []layout.WidgetID, hist *history.History) ([]app.Widget, map[string]*app.ProcState) {
	widgets := make([]app.Widget, 0, len(ids))
	procs := make(map[string]*app.ProcState)

	for _, wid := range ids {
		switch wid.Kind {
		case layout.KindCPU:
			widgets = append(widgets, NewCPUWidget(wid.ID, hist, cfg.General.ShowAverageCPU))
		case layout.KindMemory:
			widgets = append(widgets, NewMemoryWidget(wid.ID, hist))
		case layout.KindNetwork:
			widgets = append(widgets, NewNetworkWidget(wid.ID, hist))
		case layout.KindDisk:
			widgets = append(widgets, NewDiskWidget(wid.ID, hist))
		case layout.KindTemperature:
			widgets = append(widgets, NewTemperatureWidget(wid.ID, cfg.TempUnit()))
		case layout.KindBattery:
			widgets = append(widgets, NewBatteryWidget(wid.ID))
		case layout.KindProcess:
			st := app.NewProcState(cfg.ProcSettings(), cfg.ProcQuery())
			procs[wid.ID] = st
			widgets = append(widgets, NewProcessWidget(wid.ID, st))
		}
	}
	return widgets, procs
}

// graphZoom halves or doubles a graph's visible window on the zoom keys,
// clamped to [minGraphWindow, retention]. Windows wider than the retention
// would plot into a region the store has already pruned.
func graphZoom(g *components.TimeGraph, retention time.Duration, key tea.KeyMsg) {
	switch key.String() {
	case "+", "=":
		d := g.Window() / 2
		if d < minGraphWindow {
			d = minGraphWindow
		}
		g.SetWindow(d)
	case "-", "_":
		d := g.Window() * 2
		if retention > 0 && d > retention {
			d = retention
		}
		g.SetWindow(d)
	}
}

// --- shared rendering helpers ---

// formatBytes formats a byte count into a human-readable string with
// appropriate units (B, KB, MB, GB, TB).
func formatBytes(bytes uint64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
		tb = 1024 * gb
	)

	switch {
	case bytes >= tb:
		return fmt.Sprintf("%.1f TB", float64(bytes)/float64(tb))
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// formatRate formats a per-second byte rate like "1.2 MB/s".
func formatRate(perSec float64) string {
	if perSec < 0 {
		perSec = 0
	}
	return formatBytes(uint64(perSec)) + "/s"
}

// formatDuration formats a duration into a compact string like "14d 6h 23m",
// "2h 15m", or "45m".
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}

	totalMinutes := int(d.Minutes())
	days := totalMinutes / (60 * 24)
	hours := (totalMinutes % (60 * 24)) / 60
	minutes := totalMinutes % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	parts = append(parts, fmt.Sprintf("%dm", minutes))

	return strings.Join(parts, " ")
}

// renderGauge renders a labeled percentage gauge sized to the line width.
// Thresholds are in percent of the 0-100 value range.
func renderGauge(label string, value float64, width int, warnThresh, critThresh float64) string {
	return renderGaugeWithSuffix(label, value, width, warnThresh, critThresh, "")
}

// renderGaugeWithSuffix is renderGauge with an extra annotation appended
// after the percent label, typically "used/total" byte values.
func renderGaugeWithSuffix(label string, value float64, width int, warnThresh, critThresh float64, suffix string) string {
	barWidth := width - len(label) - 7 - len(suffix) // label + ": " + " NNN%"
	if barWidth < 5 {
		barWidth = 5
	}

	g := components.NewGauge(components.GaugeStyle{
		Width:             barWidth,
		ShowPercent:       true,
		FilledColor:       components.ColorGood,
		EmptyColor:        "#333333",
		WarningThreshold:  warnThresh / 100.0,
		CriticalThreshold: critThresh / 100.0,
		WarningColor:      components.ColorWarn,
		CriticalColor:     components.ColorCrit,
		Label:             label,
		LabelWidth:        len(label) + 1,
	})

	return g.Render(value, 100.0, barWidth) + suffix
}

// centerMessage renders a centered message in the given area. Used for the
// empty states before the first snapshot lands.
func centerMessage(msg string, width, height int) string {
	lines := make([]string, height)
	midY := height / 2
	for i := range lines {
		if i == midY {
			vis := components.VisibleLen(msg)
			pad := (width - vis) / 2
			if pad < 0 {
				pad = 0
			}
			lines[i] = strings.Repeat(" ", pad) + components.Dim(msg)
		}
		lines[i] = components.FitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitLines pads or truncates lines into a block of exactly width x height.
func fitLines(lines []string, width, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, height)
	for i := 0; i < height; i++ {
		if i < len(lines) {
			out[i] = components.FitLine(lines[i], width)
		} else {
			out[i] = strings.Repeat(" ", width)
		}
	}
	return strings.Join(out, "\n")
}
