package components

import (
	"fmt"
	"strings"
)

// SizingKind discriminates the three column sizing strategies.
type SizingKind int

const (
	sizingFixed   SizingKind = iota
	sizingPercent            // percentage of total width
	sizingFill               // takes remaining space
)

// ColumnSizing describes how a column's width is computed.
type ColumnSizing struct {
	Kind  SizingKind
	Value int // width for Fixed, percentage 1-100 for Percent, unused for Fill
}

// SizingFixed returns a ColumnSizing that allocates exactly width characters.
func SizingFixed(width int) ColumnSizing {
	if width < 0 {
		width = 0
	}
	return ColumnSizing{Kind: sizingFixed, Value: width}
}

// SizingPercent returns a ColumnSizing that allocates pct% of available width.
func SizingPercent(pct int) ColumnSizing {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return ColumnSizing{Kind: sizingPercent, Value: pct}
}

// SizingFill returns a ColumnSizing that shares remaining space equally with
// other Fill columns.
func SizingFill() ColumnSizing {
	return ColumnSizing{Kind: sizingFill}
}

// Column defines a single column in a Table.
type Column struct {
	Title    string
	Sizing   ColumnSizing
	Align    Align
	MinWidth int
}

// Row is a single data row. Selected rows get the selection background,
// dimmed rows render faint (rows excluded from a match but kept for tree
// structure).
type Row struct {
	Cells    []string
	ID       string
	Selected bool
	Dimmed   bool
}

// TableStyle controls the visual appearance of the header and data rows.
type TableStyle struct {
	HeaderFG   string // hex "#RRGGBB"
	HeaderBG   string
	HeaderBold bool
	SelectedBG string
}

// TableConfig is the configuration used to construct a Table.
type TableConfig struct {
	Columns    []Column
	Style      TableStyle
	ShowHeader bool
	ShowBorder bool
}

// Table renders rows of cells into a fixed-size text block. It holds no row
// data and no scroll state: the owning widget passes both into Render each
// frame, so there is nothing to lock and nothing to go stale.
type Table struct {
	columns    []Column
	style      TableStyle
	showHeader bool
	showBorder bool
}

// NewTable creates a Table from cfg.
func NewTable(cfg TableConfig) *Table {
	return &Table{
		columns:    cfg.Columns,
		style:      cfg.Style,
		showHeader: cfg.ShowHeader,
		showBorder: cfg.ShowBorder,
	}
}

// SetColumnTitle replaces the title of column i. Widgets use it to attach
// sort-direction arrows without rebuilding the table.
func (t *Table) SetColumnTitle(i int, title string) {
	if i < 0 || i >= len(t.columns) {
		return
	}
	t.columns[i].Title = title
}

// PageSize returns how many data rows fit in a render of the given height
// once the header is accounted for. Scroll stepping uses it; the one or two
// lines an active scroll indicator borrows are absorbed by Render's own
// offset clamping.
func (t *Table) PageSize(height int) int {
	n := height
	if t.showHeader {
		n -= 2 // header row + separator
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Render draws rows into a block of the given dimensions, starting at row
// offset. The offset is clamped locally so the final rows always remain
// reachable. Each line is exactly width visible characters and the output
// has exactly height lines.
func (t *Table) Render(rows []Row, offset, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	colWidths := t.resolveWidths(width)

	headerLines := 0
	if t.showHeader {
		headerLines = 2
	}
	dataHeight := height - headerLines
	if dataHeight < 0 {
		dataHeight = 0
	}

	var lines []string
	if t.showHeader && height >= 1 {
		lines = append(lines, t.renderHeader(colWidths, width))
		if height >= 2 {
			lines = append(lines, t.renderSeparator(colWidths, width))
		}
	}

	if len(rows) == 0 && dataHeight > 0 {
		lines = append(lines, PadCenter(Truncate("(no data)", width), width))
		return tableFill(lines, width, height)
	}

	if dataHeight > 0 {
		if offset < 0 {
			offset = 0
		}

		// Scroll indicators borrow data lines, and whether they appear
		// depends on the offset, which their presence in turn constrains.
		// Resolve by reserving pessimistically, clamping the offset, then
		// recomputing with the clamped value.
		avail := dataHeight
		if offset > 0 {
			avail--
		}
		if offset+avail < len(rows) {
			avail--
		}
		if avail <= 0 {
			avail = dataHeight
		}
		maxOffset := len(rows) - avail
		if maxOffset < 0 {
			maxOffset = 0
		}
		if offset > maxOffset {
			offset = maxOffset
		}

		topIndicator := offset > 0
		avail = dataHeight
		if topIndicator {
			avail--
		}
		bottomIndicator := offset+avail < len(rows)
		if bottomIndicator {
			avail--
		}
		if avail <= 0 {
			topIndicator = false
			bottomIndicator = false
			avail = dataHeight
		}

		if topIndicator {
			ind := fmt.Sprintf("▲ %d more", offset)
			lines = append(lines, PadCenter(Truncate(ind, width), width))
		}

		end := offset + avail
		if end > len(rows) {
			end = len(rows)
		}
		for i := offset; i < end; i++ {
			lines = append(lines, t.renderRow(rows[i], colWidths, width)+Reset())
		}

		if bottomIndicator {
			ind := fmt.Sprintf("▼ %d more", len(rows)-end)
			lines = append(lines, PadCenter(Truncate(ind, width), width))
		}
	}

	return tableFill(lines, width, height)
}

func (t *Table) renderHeader(colWidths []int, totalWidth int) string {
	prefix := BgColor(t.style.HeaderBG) + Color(t.style.HeaderFG)
	if t.style.HeaderBold {
		prefix += "\x1b[1m"
	}

	var sb strings.Builder
	used := 0
	for i, col := range t.columns {
		if i >= len(colWidths) {
			break
		}
		w := colWidths[i]
		if w <= 0 {
			continue
		}
		if i > 0 && t.separators(totalWidth) {
			sb.WriteString(prefix)
			sb.WriteString("│")
			used++
		}
		title := tableAlign(TruncateWithTail(col.Title, w, "…"), w, col.Align)
		sb.WriteString(prefix)
		sb.WriteString(title)
		used += w
	}
	sb.WriteString(Reset())
	if used > totalWidth {
		return Truncate(sb.String(), totalWidth)
	}
	if used < totalWidth {
		sb.WriteString(strings.Repeat(" ", totalWidth-used))
	}
	return sb.String()
}

func (t *Table) renderSeparator(colWidths []int, totalWidth int) string {
	var sb strings.Builder
	used := 0
	for i, w := range colWidths {
		if w <= 0 {
			continue
		}
		if i > 0 && t.separators(totalWidth) {
			sb.WriteString("┼")
			used++
		}
		sb.WriteString(strings.Repeat("─", w))
		used += w
	}
	if used < totalWidth {
		sb.WriteString(strings.Repeat("─", totalWidth-used))
	}
	return Truncate(sb.String(), totalWidth)
}

func (t *Table) renderRow(row Row, colWidths []int, totalWidth int) string {
	prefix := ""
	if row.Selected {
		prefix = BgColor(t.style.SelectedBG)
	}
	if row.Dimmed {
		prefix += "\x1b[2m"
	}

	var sb strings.Builder
	used := 0
	for i, col := range t.columns {
		if i >= len(colWidths) {
			break
		}
		w := colWidths[i]
		if w <= 0 {
			continue
		}
		if i > 0 && t.separators(totalWidth) {
			sb.WriteString(prefix)
			sb.WriteString("│")
			used++
		}
		cell := ""
		if i < len(row.Cells) {
			cell = row.Cells[i]
		}
		cell = tableAlign(TruncateWithTail(cell, w, "…"), w, col.Align)
		sb.WriteString(prefix)
		sb.WriteString(cell)
		used += w
	}
	if used > totalWidth {
		// Columns that cannot shrink below their minimums may overflow a
		// very narrow table; cut rather than wrap.
		return Truncate(sb.String(), totalWidth)
	}
	if used < totalWidth {
		sb.WriteString(prefix)
		sb.WriteString(strings.Repeat(" ", totalWidth-used))
	}
	return sb.String()
}

// separators reports whether column separators are drawn. Narrow tables
// drop them to give the data the space instead.
func (t *Table) separators(totalWidth int) bool {
	return t.showBorder && totalWidth >= 20
}

// resolveWidths distributes totalWidth across the columns in five passes:
// fixed widths first, then percentages, then fills share the remainder,
// then MinWidth deficits steal from fills right to left, and finally any
// excess is cut from fills right to left.
func (t *Table) resolveWidths(totalWidth int) []int {
	n := len(t.columns)
	if n == 0 {
		return nil
	}

	widths := make([]int, n)

	sepOverhead := 0
	if t.separators(totalWidth) {
		sepOverhead = n - 1
	}
	available := totalWidth - sepOverhead
	if available < 0 {
		available = 0
	}

	remaining := available
	for i, col := range t.columns {
		if col.Sizing.Kind == sizingFixed {
			w := col.Sizing.Value
			if w > remaining {
				w = remaining
			}
			widths[i] = w
			remaining -= w
		}
	}

	for i, col := range t.columns {
		if col.Sizing.Kind == sizingPercent {
			w := (available * col.Sizing.Value) / 100
			if w > remaining {
				w = remaining
			}
			widths[i] = w
			remaining -= w
		}
	}

	fillCount := 0
	for _, col := range t.columns {
		if col.Sizing.Kind == sizingFill {
			fillCount++
		}
	}
	if fillCount > 0 && remaining > 0 {
		each := remaining / fillCount
		extra := remaining % fillCount
		filled := 0
		for i, col := range t.columns {
			if col.Sizing.Kind == sizingFill {
				w := each
				if filled < extra {
					w++
				}
				widths[i] = w
				filled++
			}
		}
	}

	for i, col := range t.columns {
		if col.MinWidth > 0 && widths[i] < col.MinWidth {
			deficit := col.MinWidth - widths[i]
			widths[i] = col.MinWidth
			for j := n - 1; j >= 0 && deficit > 0; j-- {
				if j == i || t.columns[j].Sizing.Kind != sizingFill {
					continue
				}
				canSteal := widths[j] - t.columns[j].MinWidth
				if canSteal <= 0 {
					continue
				}
				steal := deficit
				if steal > canSteal {
					steal = canSteal
				}
				widths[j] -= steal
				deficit -= steal
			}
		}
	}

	totalUsed := 0
	for _, w := range widths {
		totalUsed += w
	}
	if totalUsed > available {
		excess := totalUsed - available
		for i := n - 1; i >= 0 && excess > 0; i-- {
			if t.columns[i].Sizing.Kind != sizingFill {
				continue
			}
			canCut := widths[i] - t.columns[i].MinWidth
			if canCut <= 0 {
				continue
			}
			cut := excess
			if cut > canCut {
				cut = canCut
			}
			widths[i] -= cut
			excess -= cut
		}
	}

	return widths
}

func tableAlign(s string, width int, align Align) string {
	switch align {
	case AlignRight:
		return PadLeft(s, width)
	case AlignCenter:
		return PadCenter(s, width)
	default:
		return PadRight(s, width)
	}
}

// tableFill pads lines with blanks to exactly height lines and joins them.
func tableFill(lines []string, width, height int) string {
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
