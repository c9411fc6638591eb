package widgets

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/procpulse/pkg/components"
	"gitlab.com/tinyland/lab/procpulse/pkg/history"
)

// NetworkWidget plots receive and transmit rates summed across interfaces,
// with the current rates in a header line. Rates are derived by the history
// store from the cumulative counters, so this widget is a pure view over it
// and caches nothing of its own.
type NetworkWidget struct {
	id    string
	hist  *history.History
	graph *components.TimeGraph
}

// NewNetworkWidget creates a network widget reading from hist.
func NewNetworkWidget(id string, hist *history.History) *NetworkWidget {
	minY := 0.0
	g := components.NewTimeGraph(components.TimeGraphConfig{
		ShowYAxis:  true,
		ShowXAxis:  true,
		ShowLegend: true,
		MinY:       &minY,
	})
	return &NetworkWidget{id: id, hist: hist, graph: g}
}

// ID returns the placement id binding this widget to its layout slot.
func (w *NetworkWidget) ID() string {
	return w.id
}

// Title returns the display name for this widget.
func (w *NetworkWidget) Title() string {
	return "Network"
}

// MinSize returns the minimum interior this widget renders sensibly.
func (w *NetworkWidget) MinSize() (int, int) {
	return 20, 3
}

// Update is a no-op; everything renders from the history store.
func (w *NetworkWidget) Update(tea.Msg) tea.Cmd {
	return nil
}

// HandleKey zooms the time window on +/-.
func (w *NetworkWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	graphZoom(w.graph, w.hist.Retention(), key)
	return nil
}

// View renders the rate header and chart into the given area dimensions.
func (w *NetworkWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	rx := w.hist.Get(history.SeriesNetRx)
	tx := w.hist.Get(history.SeriesNetTx)
	if rx.Len() == 0 && tx.Len() == 0 {
		return centerMessage("No data", width, height)
	}

	header := components.Color(components.ColorGood) + "RX " + formatRate(rx.Last()) + components.Reset() +
		"  " +
		components.Color(components.ColorInfo) + "TX " + formatRate(tx.Last()) + components.Reset()
	lines := []string{header}

	if graphH := height - 1; graphH >= 2 {
		var series []components.GraphSeries
		if rx.Len() > 0 {
			series = append(series, components.GraphSeries{
				Name:   "rx",
				Color:  components.ColorGood,
				Times:  rx.Times,
				Values: rx.Values,
			})
		}
		if tx.Len() > 0 {
			series = append(series, components.GraphSeries{
				Name:   "tx",
				Color:  components.ColorInfo,
				Times:  tx.Times,
				Values: tx.Values,
			})
		}
		w.graph.SetSeries(series...)
		lines = append(lines, strings.Split(w.graph.Render(width, graphH), "\n")...)
	}

	return fitLines(lines, width, height)
}
