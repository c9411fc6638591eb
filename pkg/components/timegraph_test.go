package components

import (
	"strings"
	"testing"
	"time"
)

// tgTestSeries builds a series of n points ending at end, spaced one second
// apart, with values rising linearly from 0.
func tgTestSeries(name, color string, n int, end time.Time) GraphSeries {
	times := make([]time.Time, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		times[i] = end.Add(-time.Duration(n-1-i) * time.Second)
		values[i] = float64(i)
	}
	return GraphSeries{Name: name, Color: color, Times: times, Values: values}
}

func tgTestGraph() *TimeGraph {
	return NewTimeGraph(TimeGraphConfig{
		ShowYAxis:  true,
		ShowXAxis:  true,
		ShowLegend: true,
	})
}

func hasBrailleDots(s string) bool {
	for _, r := range s {
		if r > 0x2800 && r <= 0x28FF {
			return true
		}
	}
	return false
}

func TestTimeGraphTooSmall(t *testing.T) {
	tg := tgTestGraph()
	if got := tg.Render(5, 5); got != "too s" {
		t.Errorf("expected truncated too-small message, got %q", got)
	}
	if got := tg.Render(40, 1); got != "too small" {
		t.Errorf("expected too-small message at height 1, got %q", got)
	}
}

func TestTimeGraphLineCount(t *testing.T) {
	tg := tgTestGraph()
	tg.SetSeries(tgTestSeries("cpu", "#4CAF50", 60, time.Now()))
	out := tg.Render(40, 10)
	lines := strings.Split(out, "\n")
	// One legend line, eight chart lines, one x-axis line.
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d:\n%s", len(lines), out)
	}
}

func TestTimeGraphPlotsDots(t *testing.T) {
	tg := tgTestGraph()
	tg.SetSeries(tgTestSeries("cpu", "#4CAF50", 120, time.Now()))
	out := StripANSI(tg.Render(40, 10))
	if !hasBrailleDots(out) {
		t.Errorf("expected Braille dots in output:\n%s", out)
	}
}

func TestTimeGraphEmptySeriesRenders(t *testing.T) {
	tg := tgTestGraph()
	out := tg.Render(40, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines for empty graph, got %d", len(lines))
	}
	if hasBrailleDots(StripANSI(out)) {
		t.Error("expected no dots for empty series")
	}
}

func TestTimeGraphLegend(t *testing.T) {
	tg := tgTestGraph()
	tg.SetSeries(
		tgTestSeries("rx", "#4CAF50", 10, time.Now()),
		tgTestSeries("tx", "#64B5F6", 10, time.Now()),
	)
	out := StripANSI(tg.Render(40, 10))
	legend := strings.Split(out, "\n")[0]
	if !strings.Contains(legend, "rx") || !strings.Contains(legend, "tx") {
		t.Errorf("expected both series names in legend, got %q", legend)
	}
	if !strings.Contains(legend, "█") {
		t.Errorf("expected color swatches in legend, got %q", legend)
	}
}

func TestTimeGraphLegendHiddenWhenShort(t *testing.T) {
	tg := tgTestGraph()
	tg.SetSeries(tgTestSeries("cpu", "#4CAF50", 10, time.Now()))
	out := StripANSI(tg.Render(40, 2))
	if strings.Contains(out, "cpu") {
		t.Errorf("expected legend dropped at height 2, got:\n%s", out)
	}
	if len(strings.Split(out, "\n")) != 2 {
		t.Errorf("expected 2 chart lines at height 2")
	}
}

func TestTimeGraphXAxisHiddenWhenShort(t *testing.T) {
	tg := tgTestGraph()
	tg.SetSeries(tgTestSeries("cpu", "#4CAF50", 10, time.Now()))
	out := StripANSI(tg.Render(40, 4))
	if strings.Contains(out, "now") {
		t.Errorf("expected x-axis dropped at height 4, got:\n%s", out)
	}
}

func TestTimeGraphYAxisHiddenWhenNarrow(t *testing.T) {
	tg := tgTestGraph()
	tg.SetSeries(tgTestSeries("cpu", "#4CAF50", 10, time.Now()))
	out := StripANSI(tg.Render(15, 8))
	// Chart lines must start with dots or blanks, not numeric labels.
	for _, line := range strings.Split(out, "\n")[1:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		if trimmed[0] >= '0' && trimmed[0] <= '9' {
			t.Errorf("expected no y-axis labels at width 15, got line %q", line)
		}
	}
}

func TestTimeGraphXAxisLabels(t *testing.T) {
	tg := tgTestGraph()
	tg.SetSeries(tgTestSeries("cpu", "#4CAF50", 10, time.Now()))
	out := StripANSI(tg.Render(60, 10))
	lines := strings.Split(out, "\n")
	axis := lines[len(lines)-1]
	if !strings.Contains(axis, "now") {
		t.Errorf("expected 'now' marker on x-axis, got %q", axis)
	}
	if !strings.Contains(axis, "-5m") {
		t.Errorf("expected '-5m' marker for the default window, got %q", axis)
	}
}

func TestTimeGraphSeriesColor(t *testing.T) {
	tg := tgTestGraph()
	tg.SetSeries(tgTestSeries("cpu", "#4CAF50", 120, time.Now()))
	out := tg.Render(40, 10)
	// #4CAF50 → rgb(76, 175, 80).
	if !strings.Contains(out, "38;2;76;175;80") {
		t.Error("expected series color sequence in output")
	}
}

func TestTimeGraphFixedYRange(t *testing.T) {
	lo, hi := 0.0, 100.0
	tg := NewTimeGraph(TimeGraphConfig{ShowYAxis: true, MinY: &lo, MaxY: &hi})
	tg.SetSeries(tgTestSeries("cpu", "#4CAF50", 10, time.Now()))
	out := StripANSI(tg.Render(40, 6))
	first := strings.Split(out, "\n")[0]
	if !strings.HasPrefix(first, "  100 ") {
		t.Errorf("expected fixed max 100 as top y label, got %q", first)
	}
}

func TestTimeGraphWindow(t *testing.T) {
	tg := tgTestGraph()
	if tg.Window() != 5*time.Minute {
		t.Errorf("expected default 5m window, got %v", tg.Window())
	}
	tg.SetWindow(time.Minute)
	if tg.Window() != time.Minute {
		t.Errorf("expected 1m window after SetWindow, got %v", tg.Window())
	}
	tg.SetWindow(0) // ignored
	if tg.Window() != time.Minute {
		t.Errorf("expected SetWindow(0) to be ignored, got %v", tg.Window())
	}
}

func TestTimeGraphOldPointsExcluded(t *testing.T) {
	now := time.Now()
	tg := NewTimeGraph(TimeGraphConfig{TimeWindow: time.Minute})
	tg.SetSeries(GraphSeries{
		Name:   "cpu",
		Color:  "#4CAF50",
		Times:  []time.Time{now.Add(-10 * time.Minute), now},
		Values: []float64{50, 50},
	})
	out := StripANSI(tg.Render(40, 6))
	dots := 0
	for _, r := range out {
		if r > 0x2800 && r <= 0x28FF {
			dots++
		}
	}
	// Only the in-window point should plot, so a single cell has dots.
	if dots != 1 {
		t.Errorf("expected exactly 1 dotted cell, got %d:\n%s", dots, out)
	}
}

func TestBrailleBit(t *testing.T) {
	tests := []struct {
		offX, offY int
		want       uint8
	}{
		{0, 0, 0x01},
		{0, 1, 0x02},
		{0, 2, 0x04},
		{0, 3, 0x40},
		{1, 0, 0x08},
		{1, 1, 0x10},
		{1, 2, 0x20},
		{1, 3, 0x80},
	}
	for _, tc := range tests {
		if got := brailleBit(tc.offX, tc.offY); got != tc.want {
			t.Errorf("brailleBit(%d, %d) = %#x, want %#x", tc.offX, tc.offY, got, tc.want)
		}
	}
}

func TestFormatSI(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{1.5, "1.5"},
		{1500, "1.5K"},
		{1000000, "1M"},
		{2500000000, "2.5G"},
		{3e12, "3T"},
		{-1500, "-1.5K"},
	}
	for _, tc := range tests {
		if got := tgFormatSI(tc.in); got != tc.want {
			t.Errorf("tgFormatSI(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatWindow(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{5 * time.Minute, "-5m"},
		{90 * time.Second, "-1m"},
		{30 * time.Second, "-30s"},
		{2 * time.Hour, "-2h"},
	}
	for _, tc := range tests {
		if got := tgFormatWindow(tc.in); got != tc.want {
			t.Errorf("tgFormatWindow(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
