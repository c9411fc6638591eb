package widgets

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/procpulse/pkg/components"
	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
	"gitlab.com/tinyland/lab/procpulse/pkg/history"
)

// Memory thresholds (percentage 0-100).
const (
	meWarnThreshold = 50.0
	meCritThreshold = 80.0
)

// MemoryWidget shows RAM and swap usage as gauges, with a usage-over-time
// chart underneath when the tile is tall enough. The swap gauge and series
// only appear on hosts with swap configured.
type MemoryWidget struct {
	id    string
	hist  *history.History
	graph *components.TimeGraph
	mem   *harvest.MemorySample
}

// NewMemoryWidget creates a memory widget reading series data from hist.
func NewMemoryWidget(id string, hist *history.History) *MemoryWidget {
	minY, maxY := 0.0, 100.0
	g := components.NewTimeGraph(components.TimeGraphConfig{
		ShowYAxis:  true,
		ShowLegend: true,
		MinY:       &minY,
		MaxY:       &maxY,
	})
	return &MemoryWidget{id: id, hist: hist, graph: g}
}

// ID returns the placement id binding this widget to its layout slot.
func (w *MemoryWidget) ID() string {
	return w.id
}

// Title returns the display name for this widget.
func (w *MemoryWidget) Title() string {
	return "Memory"
}

// MinSize returns the minimum interior this widget renders sensibly.
func (w *MemoryWidget) MinSize() (int, int) {
	return 20, 2
}

// Update caches the latest memory sample.
func (w *MemoryWidget) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(harvest.SnapshotEvent); ok && ev.Err == nil && ev.Snapshot != nil {
		m := ev.Snapshot.Memory
		w.mem = &m
	}
	return nil
}

// HandleKey zooms the time window on +/-.
func (w *MemoryWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	graphZoom(w.graph, w.hist.Retention(), key)
	return nil
}

// View renders the gauges and chart into the given area dimensions.
func (w *MemoryWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if w.mem == nil {
		return centerMessage("No data", width, height)
	}

	m := w.mem
	var lines []string

	ramSuffix := fmt.Sprintf(" %s/%s", formatBytes(m.UsedBytes), formatBytes(m.TotalBytes))
	lines = append(lines, renderGaugeWithSuffix("RAM", m.UsedPercent, width,
		meWarnThreshold, meCritThreshold, ramSuffix))

	if m.SwapTotalBytes > 0 {
		swapSuffix := fmt.Sprintf(" %s/%s", formatBytes(m.SwapUsedBytes), formatBytes(m.SwapTotalBytes))
		lines = append(lines, renderGaugeWithSuffix("Swap", m.SwapUsedPercent, width,
			meWarnThreshold, meCritThreshold, swapSuffix))
	}

	if graphH := height - len(lines); graphH >= 2 {
		var series []components.GraphSeries
		if s := w.hist.Get(history.SeriesMemPercent); s.Len() > 0 {
			series = append(series, components.GraphSeries{
				Name:   "ram",
				Color:  components.ColorGood,
				Times:  s.Times,
				Values: s.Values,
			})
		}
		if s := w.hist.Get(history.SeriesSwapUsed); s.Len() > 0 {
			series = append(series, components.GraphSeries{
				Name:   "swap",
				Color:  components.ColorWarn,
				Times:  s.Times,
				Values: s.Values,
			})
		}
		if len(series) > 0 {
			w.graph.SetSeries(series...)
			lines = append(lines, strings.Split(w.graph.Render(width, graphH), "\n")...)
		}
	}

	return fitLines(lines, width, height)
}
