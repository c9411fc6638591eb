package widgets

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/procpulse/pkg/app"
	"gitlab.com/tinyland/lab/procpulse/pkg/components"
	"gitlab.com/tinyland/lab/procpulse/pkg/proctable"
)

// prSelectedBG is the selection background for the focused row.
const prSelectedBG = "#44475A"

// ProcessWidget renders one process table. All mutable view state lives in
// the shared ProcState, which only the update loop mutates; the widget reads
// it at render time and writes back the visible-window bookkeeping (LastPage,
// LastOffset) that paging and click selection read.
type ProcessWidget struct {
	id    string
	state *app.ProcState
	table *components.Table
}

var (
	_ app.Widget      = (*ProcessWidget)(nil)
	_ app.RowSelector = (*ProcessWidget)(nil)
)

// NewProcessWidget creates a process table bound to its shared state.
func NewProcessWidget(id string, state *app.ProcState) *ProcessWidget {
	t := components.NewTable(components.TableConfig{
		Columns: []components.Column{
			{Title: "PID", Sizing: components.SizingFixed(6), Align: components.AlignRight},
			{Title: "Name", Sizing: components.SizingFill(), MinWidth: 8},
			{Title: "CPU%", Sizing: components.SizingFixed(7), Align: components.AlignRight},
			{Title: "MEM%", Sizing: components.SizingFixed(7), Align: components.AlignRight},
			{Title: "R/s", Sizing: components.SizingFixed(9), Align: components.AlignRight},
			{Title: "W/s", Sizing: components.SizingFixed(9), Align: components.AlignRight},
		},
		Style: components.TableStyle{
			HeaderFG:   components.ColorAccent,
			HeaderBold: true,
			SelectedBG: prSelectedBG,
		},
		ShowHeader: true,
	})
	return &ProcessWidget{id: id, state: state, table: t}
}

// ID returns the placement id binding this widget to its layout slot.
func (w *ProcessWidget) ID() string {
	return w.id
}

// Title returns the display name for this widget.
func (w *ProcessWidget) Title() string {
	return "Processes"
}

// MinSize returns the minimum interior this widget renders sensibly.
func (w *ProcessWidget) MinSize() (int, int) {
	return 20, 4
}

// Update is a no-op; the update loop recomputes the shared row cache.
func (w *ProcessWidget) Update(tea.Msg) tea.Cmd {
	return nil
}

// HandleKey is a no-op; every process key is dispatched as a command.
func (w *ProcessWidget) HandleKey(tea.KeyMsg) tea.Cmd {
	return nil
}

// View renders the optional search line and the table into the given area.
func (w *ProcessWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	st := w.state
	var lines []string
	if st.SearchVisible() {
		lines = append(lines, components.FitLine(prSearchLine(st), width))
	}

	tableH := height - len(lines)
	if tableH <= 0 {
		st.LastOffset = 0
		st.LastPage = 0
		return fitLines(lines, width, height)
	}

	rows := st.Rows()
	dataHeight := w.table.PageSize(tableH)
	offset, visible := prFollow(st.LastOffset, st.Scroll.Position, len(rows), dataHeight)
	st.LastOffset = offset
	st.LastPage = visible

	w.setTitles()
	out := w.table.Render(prTableRows(rows, st), offset, width, tableH)
	if len(lines) == 0 {
		return out
	}
	return strings.Join(lines, "\n") + "\n" + out
}

// RowAt maps interior coordinates to a data row index. The interior stacks
// the optional search line, two header lines, an optional top scroll
// indicator, then the rows recorded by the last render.
func (w *ProcessWidget) RowAt(x, y int) (int, bool) {
	st := w.state
	if x < 0 || y < 0 {
		return 0, false
	}
	if st.SearchVisible() {
		if y == 0 {
			return 0, false
		}
		y--
	}
	y -= 2 // header + separator
	if st.LastOffset > 0 {
		if y == 0 {
			return 0, false
		}
		y--
	}
	if y < 0 || y >= st.LastPage {
		return 0, false
	}
	row := st.LastOffset + y
	if row >= len(st.Rows()) {
		return 0, false
	}
	return row, true
}

// setTitles refreshes the column headers, tagging the active sort column
// with a direction arrow. The first column doubles as PID or Count depending
// on the shaping mode, and the arrow hides when the selected sort does not
// apply to the current mode, matching the sorter's own no-op rule.
func (w *ProcessWidget) setTitles() {
	st := w.state
	grouped := st.Settings.Grouped && !st.Settings.Tree

	first := "PID"
	if grouped {
		first = "Count"
	}
	titles := [...]string{first, "Name", "CPU%", "MEM%", "R/s", "W/s"}

	if i := prSortIndex(st.Settings.SortColumn, grouped); i >= 0 {
		arrow := "▲"
		if st.Settings.SortDescending {
			arrow = "▼"
		}
		titles[i] += arrow
	}
	for i, t := range titles {
		w.table.SetColumnTitle(i, t)
	}
}

// prSearchLine renders the search box plus the invalid-query marker.
func prSearchLine(st *app.ProcState) string {
	line := st.Input.View()
	if st.SearchErr != nil {
		line += " " + components.Color(components.ColorError) + "[invalid]" + components.Reset()
	}
	return line
}

// prTableRows converts finalized rows into table cells.
func prTableRows(rows []proctable.Row, st *app.ProcState) []components.Row {
	grouped := st.Settings.Grouped && !st.Settings.Tree
	sel := st.Scroll.Position

	out := make([]components.Row, len(rows))
	for i, r := range rows {
		first := strconv.Itoa(int(r.PID))
		if grouped {
			first = strconv.Itoa(r.Count())
		}
		name := r.Name
		if st.Settings.Tree && r.Depth > 0 {
			name = strings.Repeat("  ", r.Depth) + name
		}
		out[i] = components.Row{
			ID:       strconv.Itoa(int(r.PID)),
			Selected: i == sel,
			Dimmed:   r.Disabled,
			Cells: []string{
				first,
				name,
				fmt.Sprintf("%.1f", r.CPUPercent),
				fmt.Sprintf("%.1f", r.MemPercent),
				formatRate(r.ReadPerSec),
				formatRate(r.WritePerSec),
			},
		}
	}
	return out
}

// prSortIndex maps a sort column to its table column, or -1 when the column
// has no arrow in the current mode.
func prSortIndex(col proctable.SortColumn, grouped bool) int {
	switch col {
	case proctable.SortPID:
		if grouped {
			return -1
		}
		return 0
	case proctable.SortCount:
		if !grouped {
			return -1
		}
		return 0
	case proctable.SortName:
		return 1
	case proctable.SortCPU:
		return 2
	case proctable.SortMem:
		return 3
	}
	return -1
}

// prVisible mirrors the table's scroll-indicator accounting: how many data
// rows a render at the given offset will show.
func prVisible(offset, dataHeight, n int) int {
	if dataHeight <= 0 || n <= 0 {
		return 0
	}
	avail := dataHeight
	if offset > 0 {
		avail--
	}
	if offset+avail < n {
		avail--
	}
	if avail <= 0 {
		avail = dataHeight
	}
	if avail > n-offset {
		avail = n - offset
	}
	return avail
}

// prMaxOffset mirrors the table's offset clamp so the recorded offset always
// matches what gets drawn.
func prMaxOffset(dataHeight, n int) int {
	if dataHeight <= 0 || n <= dataHeight {
		return 0
	}
	m := n - dataHeight + 1
	if m > n-1 {
		m = n - 1
	}
	return m
}

// prFollow slides the window recorded last frame just far enough to keep the
// selection visible. Moving the window can flip a scroll indicator, which
// changes the window size by one, so the adjustment runs twice.
func prFollow(offset, selected, n, dataHeight int) (first, visible int) {
	if dataHeight <= 0 || n == 0 {
		return 0, 0
	}

	maxOffset := prMaxOffset(dataHeight, n)
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}

	for i := 0; i < 2; i++ {
		v := prVisible(offset, dataHeight, n)
		if selected < offset {
			offset = selected
		} else if selected >= offset+v {
			offset = selected - v + 1
		}
		if offset > maxOffset {
			offset = maxOffset
		}
		if offset < 0 {
			offset = 0
		}
	}
	return offset, prVisible(offset, dataHeight, n)
}
