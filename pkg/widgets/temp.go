package widgets

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/procpulse/pkg/components"
	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
)

// TemperatureWidget lists sensor readings, one per line, name left and value
// right-aligned. Readings arrive already converted to the configured unit;
// the widget only appends the unit suffix.
type TemperatureWidget struct {
	id    string
	unit  harvest.TempUnit
	temps []harvest.TemperatureSample
}

// NewTemperatureWidget creates a temperature widget displaying in unit.
func NewTemperatureWidget(id string, unit harvest.TempUnit) *TemperatureWidget {
	return &TemperatureWidget{id: id, unit: unit}
}

// ID returns the placement id binding this widget to its layout slot.
func (w *TemperatureWidget) ID() string {
	return w.id
}

// Title returns the display name for this widget.
func (w *TemperatureWidget) Title() string {
	return "Temperatures"
}

// MinSize returns the minimum interior this widget renders sensibly.
func (w *TemperatureWidget) MinSize() (int, int) {
	return 16, 2
}

// Update caches the sensor readings from each snapshot.
func (w *TemperatureWidget) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(harvest.SnapshotEvent); ok && ev.Err == nil && ev.Snapshot != nil {
		w.temps = ev.Snapshot.Temperatures
	}
	return nil
}

// HandleKey is a no-op for the sensor list.
func (w *TemperatureWidget) HandleKey(tea.KeyMsg) tea.Cmd {
	return nil
}

// View renders the sensor list into the given area dimensions.
func (w *TemperatureWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if w.temps == nil {
		return centerMessage("No data", width, height)
	}
	if len(w.temps) == 0 {
		return centerMessage("No sensors", width, height)
	}

	suffix := w.unit.Suffix()
	lines := make([]string, 0, len(w.temps))
	for _, t := range w.temps {
		value := fmt.Sprintf("%.0f%s", t.Degrees, suffix)
		nameW := width - components.VisibleLen(value) - 1
		if nameW < 1 {
			nameW = 1
		}
		line := components.PadRight(components.Truncate(t.Sensor, nameW), nameW) + " " + value
		lines = append(lines, line)
	}

	return fitLines(lines, width, height)
}
