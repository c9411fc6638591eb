package components

import "strings"

// BorderStyle selects which set of box-drawing characters to use.
type BorderStyle int

const (
	// BorderNone renders no border at all.
	BorderNone BorderStyle = iota
	// BorderSingle uses single-line box-drawing characters.
	BorderSingle
	// BorderRounded uses single-line characters with rounded corners.
	BorderRounded
	// BorderDouble uses double-line box-drawing characters.
	BorderDouble
)

// borderChars holds the characters that define a border.
type borderChars struct {
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Horizontal  string
	Vertical    string
}

var borderSets = map[BorderStyle]borderChars{
	BorderSingle: {
		TopLeft: "┌", TopRight: "┐",
		BottomLeft: "└", BottomRight: "┘",
		Horizontal: "─", Vertical: "│",
	},
	BorderRounded: {
		TopLeft: "╭", TopRight: "╮",
		BottomLeft: "╰", BottomRight: "╯",
		Horizontal: "─", Vertical: "│",
	},
	BorderDouble: {
		TopLeft: "╔", TopRight: "╗",
		BottomLeft: "╚", BottomRight: "╝",
		Horizontal: "═", Vertical: "║",
	},
}

// BoxStyle controls the visual appearance of a rendered box.
type BoxStyle struct {
	Border     BorderStyle
	Title      string // embedded in the top border
	TitleAlign Align
	Padding    Padding
	FG         string // hex border color like "#ff5500", or "" for no color
}

// RenderBox renders content inside a box with borders, returning a
// multi-line string of exactly the outer width x height dimensions.
//
// If width < 2 or height < 2 there is no room for borders and an empty
// string is returned. Content lines are truncated or padded to the
// interior width; missing lines are filled with blanks.
func RenderBox(content string, width, height int, style BoxStyle) string {
	if style.Border == BorderNone {
		return renderNoBorder(content, width, height, style)
	}
	if width < 2 || height < 2 {
		return ""
	}

	chars := borderSets[style.Border]
	pre, suf := borderColor(style.FG)

	interiorWidth := width - 2 - style.Padding.Left - style.Padding.Right
	if interiorWidth < 0 {
		interiorWidth = 0
	}
	interiorHeight := height - 2 - style.Padding.Top - style.Padding.Bottom
	if interiorHeight < 0 {
		interiorHeight = 0
	}

	var contentLines []string
	if content != "" {
		contentLines = strings.Split(content, "\n")
	}

	var buf strings.Builder

	// Top border with optional embedded title.
	topFill := width - 2
	buf.WriteString(pre)
	buf.WriteString(chars.TopLeft)
	buf.WriteString(suf)
	if style.Title != "" && topFill > 0 {
		buf.WriteString(renderTitleBar(style.Title, style.TitleAlign, topFill, chars.Horizontal, pre, suf))
	} else {
		buf.WriteString(pre)
		buf.WriteString(strings.Repeat(chars.Horizontal, topFill))
		buf.WriteString(suf)
	}
	buf.WriteString(pre)
	buf.WriteString(chars.TopRight)
	buf.WriteString(suf)
	buf.WriteByte('\n')

	leftPad := strings.Repeat(" ", style.Padding.Left)
	rightPad := strings.Repeat(" ", style.Padding.Right)
	emptyInterior := strings.Repeat(" ", interiorWidth)

	writeRow := func(inner string) {
		buf.WriteString(pre)
		buf.WriteString(chars.Vertical)
		buf.WriteString(suf)
		buf.WriteString(leftPad)
		buf.WriteString(inner)
		buf.WriteString(rightPad)
		buf.WriteString(pre)
		buf.WriteString(chars.Vertical)
		buf.WriteString(suf)
		buf.WriteByte('\n')
	}

	for i := 0; i < style.Padding.Top; i++ {
		writeRow(emptyInterior)
	}
	for i := 0; i < interiorHeight; i++ {
		if i < len(contentLines) {
			writeRow(FitLine(contentLines[i], interiorWidth))
		} else {
			writeRow(emptyInterior)
		}
	}
	for i := 0; i < style.Padding.Bottom; i++ {
		writeRow(emptyInterior)
	}

	// Bottom border.
	buf.WriteString(pre)
	buf.WriteString(chars.BottomLeft)
	buf.WriteString(strings.Repeat(chars.Horizontal, topFill))
	buf.WriteString(chars.BottomRight)
	buf.WriteString(suf)

	return buf.String()
}

// renderNoBorder renders content without a border, applying only padding.
func renderNoBorder(content string, width, height int, style BoxStyle) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	interiorWidth := width - style.Padding.Left - style.Padding.Right
	if interiorWidth < 0 {
		interiorWidth = 0
	}
	interiorHeight := height - style.Padding.Top - style.Padding.Bottom
	if interiorHeight < 0 {
		interiorHeight = 0
	}

	var contentLines []string
	if content != "" {
		contentLines = strings.Split(content, "\n")
	}

	leftPad := strings.Repeat(" ", style.Padding.Left)
	rightPad := strings.Repeat(" ", style.Padding.Right)
	emptyInterior := strings.Repeat(" ", interiorWidth)

	var lines []string
	for i := 0; i < style.Padding.Top; i++ {
		lines = append(lines, leftPad+emptyInterior+rightPad)
	}
	for i := 0; i < interiorHeight; i++ {
		inner := emptyInterior
		if i < len(contentLines) {
			inner = FitLine(contentLines[i], interiorWidth)
		}
		lines = append(lines, leftPad+inner+rightPad)
	}
	for i := 0; i < style.Padding.Bottom; i++ {
		lines = append(lines, leftPad+emptyInterior+rightPad)
	}

	return strings.Join(lines, "\n")
}

// renderTitleBar renders the top border bar with a title embedded in it.
// The title gets one space of separation on each side and is truncated
// with an ellipsis when the bar is too narrow.
func renderTitleBar(title string, align Align, barWidth int, hChar, pre, suf string) string {
	maxTitleWidth := barWidth - 4
	if maxTitleWidth <= 0 {
		return pre + strings.Repeat(hChar, barWidth) + suf
	}

	titleVis := VisibleLen(title)
	if titleVis > maxTitleWidth {
		title = TruncateWithTail(title, maxTitleWidth, "…")
		titleVis = VisibleLen(title)
	}

	titleSegment := " " + title + " "
	remaining := barWidth - titleVis - 2

	var leftChars, rightChars int
	switch align {
	case AlignRight:
		rightChars = 1
		leftChars = remaining - 1
	case AlignCenter:
		leftChars = remaining / 2
		rightChars = remaining - leftChars
	default:
		leftChars = 1
		rightChars = remaining - 1
	}
	if leftChars < 0 {
		leftChars = 0
	}
	if rightChars < 0 {
		rightChars = 0
	}

	var buf strings.Builder
	buf.WriteString(pre)
	buf.WriteString(strings.Repeat(hChar, leftChars))
	buf.WriteString(suf)
	buf.WriteString(titleSegment)
	buf.WriteString(pre)
	buf.WriteString(strings.Repeat(hChar, rightChars))
	buf.WriteString(suf)
	return buf.String()
}

// borderColor returns the color prefix and reset suffix for border
// characters, or empty strings when no color is set.
func borderColor(fg string) (pre, suf string) {
	if fg == "" {
		return "", ""
	}
	seq := Color(fg)
	if seq == "" {
		return "", ""
	}
	return seq, Reset()
}
