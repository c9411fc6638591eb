package widgets

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/procpulse/pkg/components"
	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
	"gitlab.com/tinyland/lab/procpulse/pkg/history"
)

// Disk capacity thresholds (percentage 0-100).
const (
	diWarnThreshold = 70.0
	diCritThreshold = 85.0
)

// DiskWidget lists mounted filesystems with capacity usage and current I/O
// rates. Capacity comes from the cached snapshot; the per-device rates come
// from the history store, which derives them from the cumulative counters.
type DiskWidget struct {
	id    string
	hist  *history.History
	table *components.Table
	disks []harvest.DiskSample
}

// NewDiskWidget creates a disk widget reading I/O rates from hist.
func NewDiskWidget(id string, hist *history.History) *DiskWidget {
	t := components.NewTable(components.TableConfig{
		Columns: []components.Column{
			{Title: "Device", Sizing: components.SizingFill(), MinWidth: 8},
			{Title: "Mount", Sizing: components.SizingFill(), MinWidth: 6},
			{Title: "Used", Sizing: components.SizingFixed(5), Align: components.AlignRight},
			{Title: "R/s", Sizing: components.SizingFixed(9), Align: components.AlignRight},
			{Title: "W/s", Sizing: components.SizingFixed(9), Align: components.AlignRight},
		},
		Style: components.TableStyle{
			HeaderFG:   components.ColorAccent,
			HeaderBold: true,
		},
		ShowHeader: true,
	})
	return &DiskWidget{id: id, hist: hist, table: t}
}

// ID returns the placement id binding this widget to its layout slot.
func (w *DiskWidget) ID() string {
	return w.id
}

// Title returns the display name for this widget.
func (w *DiskWidget) Title() string {
	return "Disks"
}

// MinSize returns the minimum interior this widget renders sensibly.
func (w *DiskWidget) MinSize() (int, int) {
	return 30, 3
}

// Update caches the disk samples from each snapshot.
func (w *DiskWidget) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(harvest.SnapshotEvent); ok && ev.Err == nil && ev.Snapshot != nil {
		w.disks = ev.Snapshot.Disks
	}
	return nil
}

// HandleKey is a no-op for the disk list.
func (w *DiskWidget) HandleKey(tea.KeyMsg) tea.Cmd {
	return nil
}

// View renders the filesystem table into the given area dimensions.
func (w *DiskWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if w.disks == nil {
		return centerMessage("No data", width, height)
	}

	rows := make([]components.Row, len(w.disks))
	for i, d := range w.disks {
		rates := w.hist.DiskRates(d.Device)
		rows[i] = components.Row{
			ID: d.Device,
			Cells: []string{
				d.Device,
				d.Mount,
				diUsedCell(d.UsedPercent),
				formatRate(rates.ReadPerSec),
				formatRate(rates.WritePerSec),
			},
		}
	}

	return w.table.Render(rows, 0, width, height)
}

// diUsedCell colors the capacity percentage by severity.
func diUsedCell(pct float64) string {
	color := components.ColorGood
	if pct >= diWarnThreshold {
		color = components.ColorWarn
	}
	if pct >= diCritThreshold {
		color = components.ColorCrit
	}
	return components.Color(color) + fmt.Sprintf("%d%%", int(math.Round(pct))) + components.Reset()
}
