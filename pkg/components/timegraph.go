package components

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// GraphSeries is one plotted line. Times and Values are parallel slices,
// oldest first, matching the layout the history store hands out. The graph
// only reads them, so callers may pass live storage.
type GraphSeries struct {
	Name   string
	Color  string // hex color, e.g. "#ff5500"
	Times  []time.Time
	Values []float64
}

// TimeGraphConfig holds configuration for a TimeGraph.
type TimeGraphConfig struct {
	ShowYAxis  bool          // show Y-axis labels (auto-hidden if width < 20)
	ShowXAxis  bool          // show time labels at the bottom (auto-hidden if height < 5)
	ShowLegend bool          // show series legend at the top
	YAxisWidth int           // width reserved for Y labels (default 6)
	MinY       *float64      // optional fixed Y minimum (nil = auto-scale)
	MaxY       *float64      // optional fixed Y maximum (nil = auto-scale)
	TimeWindow time.Duration // visible time window (default 5 minutes)
}

// TimeGraph renders time-series data as a Braille-dot chart. Each terminal
// cell holds a 2x4 dot grid, giving sub-cell plotting resolution.
type TimeGraph struct {
	cfg    TimeGraphConfig
	series []GraphSeries
}

// NewTimeGraph creates a TimeGraph with the given configuration.
// Defaults are applied for zero-value fields.
func NewTimeGraph(cfg TimeGraphConfig) *TimeGraph {
	if cfg.YAxisWidth <= 0 {
		cfg.YAxisWidth = 6
	}
	if cfg.TimeWindow <= 0 {
		cfg.TimeWindow = 5 * time.Minute
	}
	return &TimeGraph{cfg: cfg}
}

// SetSeries replaces all plotted series. Called once per frame by widgets
// with whatever the history store currently holds.
func (tg *TimeGraph) SetSeries(series ...GraphSeries) {
	tg.series = series
}

// SetWindow changes the visible time window.
func (tg *TimeGraph) SetWindow(d time.Duration) {
	if d > 0 {
		tg.cfg.TimeWindow = d
	}
}

// Window returns the visible time window.
func (tg *TimeGraph) Window() time.Duration {
	return tg.cfg.TimeWindow
}

// Render draws the graph into a string of the given cell dimensions.
func (tg *TimeGraph) Render(width, height int) string {
	if width < 10 || height < 2 {
		return tgTooSmall(width)
	}

	// Graceful degradation: drop chrome before dropping data.
	showLegend := tg.cfg.ShowLegend && len(tg.series) > 0
	showYAxis := tg.cfg.ShowYAxis
	showXAxis := tg.cfg.ShowXAxis
	if height < 3 {
		showLegend = false
	}
	if height < 5 {
		showXAxis = false
	}
	if width < 20 {
		showYAxis = false
	}

	yAxisW := 0
	if showYAxis {
		yAxisW = tg.cfg.YAxisWidth
	}
	chartW := width - yAxisW
	if chartW < 1 {
		chartW = 1
	}

	legendH := 0
	if showLegend {
		legendH = 1
	}
	xAxisH := 0
	if showXAxis {
		xAxisH = 1
	}
	chartH := height - legendH - xAxisH
	if chartH < 1 {
		chartH = 1
	}

	now := tg.latestTime()
	tMin := now.Add(-tg.cfg.TimeWindow)
	tMax := now
	yMin, yMax := tg.yRange(tMin, tMax)

	// Braille grid: each cell is 2 dots wide, 4 dots tall.
	dotsW := chartW * 2
	dotsH := chartH * 4

	grid := make([][]uint8, chartH)
	cellColor := make([][]int, chartH)
	for r := 0; r < chartH; r++ {
		grid[r] = make([]uint8, chartW)
		cellColor[r] = make([]int, chartW)
		for c := range cellColor[r] {
			cellColor[r][c] = -1
		}
	}

	tRange := tMax.Sub(tMin).Seconds()
	yRange := yMax - yMin

	for si, s := range tg.series {
		n := len(s.Times)
		if len(s.Values) < n {
			n = len(s.Values)
		}
		for i := 0; i < n; i++ {
			ts, v := s.Times[i], s.Values[i]
			if ts.Before(tMin) || ts.After(tMax) {
				continue
			}

			var dotX int
			if tRange <= 0 {
				dotX = dotsW / 2
			} else {
				frac := ts.Sub(tMin).Seconds() / tRange
				dotX = int(frac * float64(dotsW-1))
			}
			if dotX < 0 {
				dotX = 0
			}
			if dotX >= dotsW {
				dotX = dotsW - 1
			}

			var dotY int
			if yRange <= 0 {
				dotY = dotsH / 2
			} else {
				frac := (v - yMin) / yRange
				if frac < 0 {
					frac = 0
				}
				if frac > 1 {
					frac = 1
				}
				// Invert: high values at the top (low row index).
				dotY = int((1 - frac) * float64(dotsH-1))
			}
			if dotY < 0 {
				dotY = 0
			}
			if dotY >= dotsH {
				dotY = dotsH - 1
			}

			cellCol := dotX / 2
			cellRow := dotY / 4
			if cellCol >= chartW {
				cellCol = chartW - 1
			}
			if cellRow >= chartH {
				cellRow = chartH - 1
			}

			grid[cellRow][cellCol] |= brailleBit(dotX%2, dotY%4)
			cellColor[cellRow][cellCol] = si
		}
	}

	var lines []string
	if showLegend {
		lines = append(lines, tg.renderLegend())
	}

	reset := Reset()
	for r := 0; r < chartH; r++ {
		var sb strings.Builder
		if showYAxis {
			var val float64
			if chartH <= 1 {
				val = (yMin + yMax) / 2
			} else {
				val = yMax - (yMax-yMin)*float64(r)/float64(chartH-1)
			}
			sb.WriteString(PadLeft(tgFormatSI(val), yAxisW-1))
			sb.WriteString(" ")
		}
		for c := 0; c < chartW; c++ {
			ch := rune(0x2800 + int(grid[r][c]))
			if si := cellColor[r][c]; si >= 0 && grid[r][c] != 0 {
				sb.WriteString(Color(tg.series[si].Color))
				sb.WriteRune(ch)
				sb.WriteString(reset)
			} else {
				sb.WriteRune(ch)
			}
		}
		lines = append(lines, strings.TrimRight(sb.String(), " \t"))
	}

	if showXAxis {
		lines = append(lines, tg.renderXAxis(yAxisW, chartW))
	}

	return strings.Join(lines, "\n")
}

// latestTime returns the most recent timestamp across all series, or
// time.Now() when every series is empty. Series timestamps are ordered,
// so only the last element of each needs checking.
func (tg *TimeGraph) latestTime() time.Time {
	var latest time.Time
	found := false
	for _, s := range tg.series {
		if len(s.Times) == 0 {
			continue
		}
		if last := s.Times[len(s.Times)-1]; !found || last.After(latest) {
			latest = last
			found = true
		}
	}
	if !found {
		return time.Now()
	}
	return latest
}

// yRange computes the Y-axis range from data within the time window,
// applying 10% padding and honoring fixed bounds.
func (tg *TimeGraph) yRange(tMin, tMax time.Time) (float64, float64) {
	if tg.cfg.MinY != nil && tg.cfg.MaxY != nil {
		return *tg.cfg.MinY, *tg.cfg.MaxY
	}

	lo := math.Inf(1)
	hi := math.Inf(-1)
	count := 0
	for _, s := range tg.series {
		n := len(s.Times)
		if len(s.Values) < n {
			n = len(s.Values)
		}
		for i := 0; i < n; i++ {
			if s.Times[i].Before(tMin) || s.Times[i].After(tMax) {
				continue
			}
			v := s.Values[i]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
			count++
		}
	}

	if count == 0 {
		lo, hi = 0, 1
	} else if lo == hi {
		if lo == 0 {
			lo, hi = 0, 1
		} else {
			lo = lo - math.Abs(lo)*0.1
			hi = hi + math.Abs(hi)*0.1
		}
	} else {
		span := hi - lo
		lo -= span * 0.1
		hi += span * 0.1
	}

	if tg.cfg.MinY != nil {
		lo = *tg.cfg.MinY
	}
	if tg.cfg.MaxY != nil {
		hi = *tg.cfg.MaxY
	}
	return lo, hi
}

// renderLegend builds the legend line with a color swatch per series.
func (tg *TimeGraph) renderLegend() string {
	var sb strings.Builder
	reset := Reset()
	for i, s := range tg.series {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(Color(s.Color))
		sb.WriteString("█")
		sb.WriteString(reset)
		sb.WriteString(" ")
		sb.WriteString(s.Name)
	}
	return strings.TrimRight(sb.String(), " \t")
}

// renderXAxis builds the X-axis line with relative time markers.
func (tg *TimeGraph) renderXAxis(yAxisW, chartW int) string {
	if chartW < 3 {
		return ""
	}

	window := tg.cfg.TimeWindow
	type marker struct {
		text string
		frac float64 // 0 = left edge (oldest), 1 = right edge (newest)
	}
	labels := []marker{
		{tgFormatWindow(window), 0.0},
		{"now", 1.0},
	}
	if chartW >= 30 {
		labels = []marker{
			{tgFormatWindow(window), 0.0},
			{tgFormatWindow(window * 3 / 4), 0.25},
			{tgFormatWindow(window / 2), 0.5},
			{tgFormatWindow(window / 4), 0.75},
			{"now", 1.0},
		}
	} else if chartW >= 15 {
		labels = []marker{
			{tgFormatWindow(window), 0.0},
			{tgFormatWindow(window / 2), 0.5},
			{"now", 1.0},
		}
	}

	totalW := yAxisW + chartW
	axis := make([]byte, totalW)
	for i := range axis {
		axis[i] = ' '
	}
	for _, lbl := range labels {
		pos := yAxisW + int(lbl.frac*float64(chartW-1))
		start := pos - len(lbl.text)/2
		if start < yAxisW {
			start = yAxisW
		}
		end := start + len(lbl.text)
		if end > totalW {
			start = totalW - len(lbl.text)
			if start < yAxisW {
				start = yAxisW
			}
			end = start + len(lbl.text)
			if end > totalW {
				end = totalW
			}
		}
		copy(axis[start:end], lbl.text)
	}
	return strings.TrimRight(string(axis), " \t")
}

// brailleBit returns the bitmask for a dot at offset (offX, offY) within a
// Braille cell. offX is 0 (left) or 1 (right). offY is 0..3 top to bottom.
//
// Unicode Braille dot numbering:
//
//	1 4      bit: 0x01  0x08
//	2 5           0x02  0x10
//	3 6           0x04  0x20
//	7 8           0x40  0x80
func brailleBit(offX, offY int) uint8 {
	leftBits := [4]uint8{0x01, 0x02, 0x04, 0x40}
	rightBits := [4]uint8{0x08, 0x10, 0x20, 0x80}
	if offY < 0 || offY > 3 {
		return 0
	}
	if offX == 0 {
		return leftBits[offY]
	}
	return rightBits[offY]
}

// tgFormatSI formats a float with SI suffixes for Y-axis labels:
// 1500 -> "1.5K", 1000000 -> "1M".
func tgFormatSI(v float64) string {
	negative := v < 0
	abs := math.Abs(v)
	prefix := ""
	if negative {
		prefix = "-"
	}
	switch {
	case abs >= 1e12:
		return prefix + tgTrimFloat(abs/1e12) + "T"
	case abs >= 1e9:
		return prefix + tgTrimFloat(abs/1e9) + "G"
	case abs >= 1e6:
		return prefix + tgTrimFloat(abs/1e6) + "M"
	case abs >= 1e3:
		return prefix + tgTrimFloat(abs/1e3) + "K"
	default:
		if abs == math.Trunc(abs) {
			return fmt.Sprintf("%s%d", prefix, int(abs))
		}
		return fmt.Sprintf("%s%.1f", prefix, abs)
	}
}

func tgTrimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// tgFormatWindow formats a lookback duration as a relative label like "-5m".
func tgFormatWindow(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	if d >= time.Hour {
		return fmt.Sprintf("-%dh", int(d.Hours()))
	}
	if d >= time.Minute {
		return fmt.Sprintf("-%dm", int(d.Minutes()))
	}
	s := int(d.Seconds())
	if s <= 0 {
		s = 1
	}
	return fmt.Sprintf("-%ds", s)
}

func tgTooSmall(width int) string {
	msg := "too small"
	if width < len(msg) {
		return msg[:width]
	}
	return msg
}
