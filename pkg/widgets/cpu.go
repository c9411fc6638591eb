package widgets

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/procpulse/pkg/components"
	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
	"gitlab.com/tinyland/lab/procpulse/pkg/history"
)

// cpColorAvg is the line color for the aggregate CPU series. Kept out of
// seriesPalette so the average never collides with a core color.
const cpColorAvg = "#E0E0E0"

// CPUWidget plots per-core CPU utilisation over time as a braille chart,
// with an optional aggregate line on top. The data comes straight from the
// shared history store; the widget itself only tracks how many cores the
// last snapshot reported.
type CPUWidget struct {
	id      string
	hist    *history.History
	graph   *components.TimeGraph
	showAvg bool
	cores   int
}

// NewCPUWidget creates a CPU widget reading from hist. showAvg adds the
// aggregate series next to the per-core ones.
func NewCPUWidget(id string, hist *history.History, showAvg bool) *CPUWidget {
	minY, maxY := 0.0, 100.0
	g := components.NewTimeGraph(components.TimeGraphConfig{
		ShowYAxis:  true,
		ShowXAxis:  true,
		ShowLegend: true,
		MinY:       &minY,
		MaxY:       &maxY,
	})
	return &CPUWidget{id: id, hist: hist, graph: g, showAvg: showAvg}
}

// ID returns the placement id binding this widget to its layout slot.
func (w *CPUWidget) ID() string {
	return w.id
}

// Title returns the display name for this widget.
func (w *CPUWidget) Title() string {
	return "CPU"
}

// MinSize returns the minimum interior this widget renders sensibly.
func (w *CPUWidget) MinSize() (int, int) {
	return 20, 4
}

// Update tracks the core count from each snapshot so View knows how many
// per-core series to look up.
func (w *CPUWidget) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(harvest.SnapshotEvent); ok && ev.Err == nil && ev.Snapshot != nil {
		w.cores = len(ev.Snapshot.CPU.PerCore)
	}
	return nil
}

// HandleKey zooms the time window on +/-.
func (w *CPUWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	graphZoom(w.graph, w.hist.Retention(), key)
	return nil
}

// View renders the chart into the given area dimensions.
func (w *CPUWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	series := make([]components.GraphSeries, 0, w.cores+1)
	for i := 0; i < w.cores; i++ {
		s := w.hist.Get(history.CoreSeries(i))
		if s.Len() == 0 {
			continue
		}
		series = append(series, components.GraphSeries{
			Name:   fmt.Sprintf("core%d", i),
			Color:  seriesPalette[i%len(seriesPalette)],
			Times:  s.Times,
			Values: s.Values,
		})
	}

	avg := w.hist.Get(history.SeriesCPUAvg)
	if (w.showAvg || len(series) == 0) && avg.Len() > 0 {
		series = append(series, components.GraphSeries{
			Name:   "avg",
			Color:  cpColorAvg,
			Times:  avg.Times,
			Values: avg.Values,
		})
	}

	if len(series) == 0 {
		return centerMessage("No data", width, height)
	}

	w.graph.SetSeries(series...)
	return w.graph.Render(width, height)
}
