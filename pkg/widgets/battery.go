package widgets

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/procpulse/pkg/components"
	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
)

// Battery charge thresholds. Unlike the usage gauges, low is the bad end.
const (
	baLowPercent  = 20.0
	baCritPercent = 10.0
)

// BatteryWidget shows the charge level, state, and remaining time of the
// first battery. Hosts without one render a fixed message rather than an
// empty tile, so the slot still reads as intentional.
type BatteryWidget struct {
	id   string
	batt *harvest.BatterySample
	seen bool
}

// NewBatteryWidget creates a battery widget.
func NewBatteryWidget(id string) *BatteryWidget {
	return &BatteryWidget{id: id}
}

// ID returns the placement id binding this widget to its layout slot.
func (w *BatteryWidget) ID() string {
	return w.id
}

// Title returns the display name for this widget.
func (w *BatteryWidget) Title() string {
	return "Battery"
}

// MinSize returns the minimum interior this widget renders sensibly.
func (w *BatteryWidget) MinSize() (int, int) {
	return 18, 3
}

// Update caches the battery sample from each snapshot. A nil sample after
// the first snapshot means the host has no battery.
func (w *BatteryWidget) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(harvest.SnapshotEvent); ok && ev.Err == nil && ev.Snapshot != nil {
		w.batt = ev.Snapshot.Battery
		w.seen = true
	}
	return nil
}

// HandleKey is a no-op for the battery display.
func (w *BatteryWidget) HandleKey(tea.KeyMsg) tea.Cmd {
	return nil
}

// View renders the charge gauge and status lines.
func (w *BatteryWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if !w.seen {
		return centerMessage("No data", width, height)
	}
	if w.batt == nil {
		return centerMessage("No battery", width, height)
	}

	b := w.batt
	var lines []string

	lines = append(lines, baRenderGauge(b.Percent, width))
	lines = append(lines, "State: "+b.State)

	if b.TimeLeft > 0 {
		label := "Empty in: "
		if b.Charging {
			label = "Full in: "
		}
		lines = append(lines, label+formatDuration(b.TimeLeft))
	}

	return fitLines(lines, width, height)
}

// baRenderGauge renders the charge bar. The fill color is picked directly
// instead of via gauge thresholds, which only know high-is-bad.
func baRenderGauge(percent float64, width int) string {
	color := components.ColorGood
	if percent <= baLowPercent {
		color = components.ColorWarn
	}
	if percent <= baCritPercent {
		color = components.ColorCrit
	}

	label := "Charge"
	barWidth := width - len(label) - 7 // label + ": " + " NNN%"
	if barWidth < 5 {
		barWidth = 5
	}

	g := components.NewGauge(components.GaugeStyle{
		Width:       barWidth,
		ShowPercent: true,
		FilledColor: color,
		EmptyColor:  "#333333",
		Label:       label,
		LabelWidth:  len(label) + 1,
	})
	return g.Render(percent, 100.0, barWidth)
}
