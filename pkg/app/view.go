package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/procpulse/pkg/components"
)

// View renders the full screen. The zone scan at the end strips the click
// markers the tiles were wrapped in and records their on-screen rects for
// mouse hit-testing.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch {
	case m.helpVisible:
		body = m.renderHelp()
	case m.expanded != "":
		body = m.renderExpanded()
	default:
		body = m.renderGrid()
	}
	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar()))
}

// renderGrid joins the widget tiles row by row. Tiles carry their own ANSI
// styling and zone markers; lipgloss joins preserve both.
func (m Model) renderGrid() string {
	h := m.height - 1
	if h < 1 {
		return ""
	}
	if len(m.placements) == 0 {
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, "terminal too small")
	}

	var rows []string
	var tiles []string
	curY := m.placements[0].Rect.Y
	for _, p := range m.placements {
		if p.Rect.Y != curY {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
			tiles = nil
			curY = p.Rect.Y
		}
		tiles = append(tiles, m.renderTile(p.ID, p.Rect.Width, p.Rect.Height))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderExpanded draws the expanded widget over the whole grid area.
func (m Model) renderExpanded() string {
	h := m.height - 1
	if h < 1 {
		return ""
	}
	return m.renderTile(m.expanded, m.width, h)
}

// renderTile draws one widget inside its bordered frame and wraps the
// block in a click zone. An interior below the widget's minimum renders
// as an empty frame rather than a corrupted one.
func (m Model) renderTile(id string, width, height int) string {
	w := m.byID[id]
	if w == nil {
		return lipgloss.NewStyle().Width(width).Height(height).Render("")
	}

	body := ""
	if minW, minH := w.MinSize(); width-2 >= minW && height-2 >= minH {
		body = w.View(width-2, height-2)
	}

	fg := components.ColorBorder
	if id == m.focused {
		fg = components.ColorBorderFocus
	}
	box := components.RenderBox(body, width, height, components.BoxStyle{
		Border: components.BorderRounded,
		Title:  " " + w.Title() + " ",
		FG:     fg,
	})
	return m.zones.Mark(id, box)
}

// statusBar is the single line under the grid: key hints left, state
// indicators right.
func (m Model) statusBar() string {
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(components.ColorDim))
	left := hintStyle.Render("q quit  ? help  / search  f freeze  ctrl+r reset")

	var inds []string
	if m.frozen {
		frozen := lipgloss.NewStyle().
			Foreground(lipgloss.Color(components.ColorWarn)).
			Bold(true)
		inds = append(inds, frozen.Render("FROZEN"))
	}
	if w := m.focusedWidget(); w != nil {
		inds = append(inds, hintStyle.Render(w.Title()))
	}
	right := strings.Join(inds, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return components.Truncate(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp centers the key reference over a cleared grid area.
func (m Model) renderHelp() string {
	h := m.height - 1
	if h < 1 {
		return ""
	}
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, helpText())
}

var helpEntries = []struct{ key, desc string }{
	{"q, ctrl+c", "quit"},
	{"f", "freeze data collection"},
	{"ctrl+r", "reset baselines and history"},
	{"?", "toggle this help"},
	{"esc", "close help, search, or expansion"},
	{"enter", "expand focused widget"},
	{"ctrl/shift+arrows", "move widget focus"},
	{"up/down, j/k", "move selection"},
	{"pgup/pgdn, home/end", "jump selection"},
	{"/, ctrl+f", "search processes"},
	{"alt+c, alt+w, alt+r", "ignore case, whole word, regex"},
	{"tab", "group by name"},
	{"f5", "tree view"},
	{"c, m, p, n", "sort by cpu, mem, pid, name"},
	{"f6", "cycle sort column"},
	{"+, -", "zoom graph time window"},
}

// helpText renders the key table in a rounded box sized to its content.
func helpText() string {
	keyW := 0
	for _, e := range helpEntries {
		if len(e.key) > keyW {
			keyW = len(e.key)
		}
	}

	var sb strings.Builder
	width := 0
	for i, e := range helpEntries {
		line := components.PadRight(e.key, keyW+2) + e.desc
		if components.VisibleLen(line) > width {
			width = components.VisibleLen(line)
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line)
	}

	return components.RenderBox(sb.String(), width+4, len(helpEntries)+2, components.BoxStyle{
		Border:  components.BorderRounded,
		Title:   " keys ",
		FG:      components.ColorAccent,
		Padding: components.NewPaddingHV(1, 0),
	})
}
