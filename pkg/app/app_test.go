package app

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/procpulse/pkg/components"
	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
	"gitlab.com/tinyland/lab/procpulse/pkg/history"
	"gitlab.com/tinyland/lab/procpulse/pkg/layout"
	"gitlab.com/tinyland/lab/procpulse/pkg/proctable"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ---------- helpers ----------

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubWidget records what the model feeds it.
type stubWidget struct {
	id    string
	title string
	msgs  []tea.Msg
	keys  []tea.KeyMsg
}

func (w *stubWidget) ID() string                       { return w.id }
func (w *stubWidget) Title() string                    { return w.title }
func (w *stubWidget) Update(msg tea.Msg) tea.Cmd       { w.msgs = append(w.msgs, msg); return nil }
func (w *stubWidget) View(width, height int) string    { return "stub" }
func (w *stubWidget) MinSize() (int, int)              { return 1, 1 }
func (w *stubWidget) HandleKey(msg tea.KeyMsg) tea.Cmd { w.keys = append(w.keys, msg); return nil }

// stubProcWidget adds clickable rows: the interior is a two-line header
// followed by one row per line.
type stubProcWidget struct {
	stubWidget
}

func (w *stubProcWidget) RowAt(x, y int) (int, bool) {
	if y < 2 {
		return 0, false
	}
	return y - 2, true
}

func testSpec() layout.Spec {
	return layout.Spec{
		Name: "test",
		Rows: []layout.Row{
			{Ratio: 1, Children: []layout.Child{
				{Kind: layout.KindCPU, Ratio: 1},
				{Kind: layout.KindMemory, Ratio: 1},
			}},
			{Ratio: 2, Children: []layout.Child{{Kind: layout.KindProcess, Ratio: 1}}},
		},
	}
}

func newTestModel() (Model, chan harvest.Event, chan struct{}) {
	events := make(chan harvest.Event, 8)
	resets := make(chan struct{}, 1)

	procs := map[string]*ProcState{
		"process0": NewProcState(proctable.Options{
			SortColumn:     proctable.SortCPU,
			SortDescending: true,
		}, proctable.Query{}),
	}

	m := NewModel(Options{
		Spec:       testSpec(),
		History:    history.New(history.Config{}),
		Events:     events,
		Resets:     resets,
		ProcStates: procs,
		Log:        quietLogger(),
	},
		&stubWidget{id: "cpu0", title: "CPU"},
		&stubWidget{id: "memory0", title: "Memory"},
		&stubProcWidget{stubWidget{id: "process0", title: "Processes"}},
	)
	return m, events, resets
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next
}

var specialKeys = map[string]tea.KeyType{
	"tab":         tea.KeyTab,
	"enter":       tea.KeyEnter,
	"esc":         tea.KeyEsc,
	"up":          tea.KeyUp,
	"down":        tea.KeyDown,
	"home":        tea.KeyHome,
	"end":         tea.KeyEnd,
	"pgup":        tea.KeyPgUp,
	"pgdown":      tea.KeyPgDown,
	"f1":          tea.KeyF1,
	"f2":          tea.KeyF2,
	"f3":          tea.KeyF3,
	"f5":          tea.KeyF5,
	"f6":          tea.KeyF6,
	"ctrl+c":      tea.KeyCtrlC,
	"ctrl+r":      tea.KeyCtrlR,
	"ctrl+f":      tea.KeyCtrlF,
	"ctrl+u":      tea.KeyCtrlU,
	"ctrl+up":     tea.KeyCtrlUp,
	"ctrl+down":   tea.KeyCtrlDown,
	"ctrl+left":   tea.KeyCtrlLeft,
	"ctrl+right":  tea.KeyCtrlRight,
	"shift+up":    tea.KeyShiftUp,
	"shift+down":  tea.KeyShiftDown,
	"shift+left":  tea.KeyShiftLeft,
	"shift+right": tea.KeyShiftRight,
}

func keyMsg(key string) tea.KeyMsg {
	if kt, ok := specialKeys[key]; ok {
		return tea.KeyMsg{Type: kt}
	}
	if rest, ok := strings.CutPrefix(key, "alt+"); ok {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(rest), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// sendKey bypasses the input throttle so scripted sequences do not drop.
func sendKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	m.keyGate.last = time.Time{}
	return update(t, m, keyMsg(key))
}

func sendMouse(t *testing.T, m Model, msg tea.MouseMsg) Model {
	t.Helper()
	m.mouseGate.last = time.Time{}
	return update(t, m, msg)
}

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = sendKey(t, m, string(r))
	}
	return m
}

func rec(pid int32, name string, cpu float64) harvest.ProcessRecord {
	return harvest.ProcessRecord{PID: pid, Name: name, CPUPercent: cpu}
}

func testSnapshot(at time.Time, procs ...harvest.ProcessRecord) *harvest.Snapshot {
	return &harvest.Snapshot{
		CollectedAt: at,
		Processes:   procs,
		CPU:         harvest.CPUSample{PerCore: []float64{10, 15}, Average: 12.5},
		Memory:      harvest.MemorySample{UsedPercent: 40},
	}
}

// sized returns a model that has seen a window size, with layout computed.
func sized(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

// ingest pushes a snapshot through Update and runs one tick so the caches
// recompute.
func ingest(t *testing.T, m Model, snap *harvest.Snapshot) Model {
	t.Helper()
	m = update(t, m, harvest.SnapshotEvent{Snapshot: snap})
	return update(t, m, TickEvent{Time: snap.CollectedAt})
}

// ---------- lifecycle ----------

func TestViewBeforeFirstSize(t *testing.T) {
	m, _, _ := newTestModel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("expected initializing view, got %q", got)
	}
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	m = sendKey(t, m, "q")
	if !m.Quitting() {
		t.Error("expected quitting after q")
	}
	if got := m.View(); got != "" {
		t.Errorf("expected empty view while quitting, got %q", got)
	}
}

func TestEventsClosedQuits(t *testing.T) {
	m, _, _ := newTestModel()
	m = update(t, m, EventsClosedEvent{})
	if !m.Quitting() {
		t.Error("expected quitting after events channel closed")
	}
}

func TestWindowSizeComputesLayout(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)

	if !m.Ready() {
		t.Error("expected ready after window size")
	}
	if !m.LayoutDirty() {
		t.Error("expected layout dirty after resize")
	}
	if got := m.FocusedWidgetID(); got != "process0" {
		t.Errorf("default focus = %q, want process0", got)
	}

	m = update(t, m, TickEvent{Time: time.Now()})
	if m.LayoutDirty() {
		t.Error("expected layout clean after tick")
	}
}

// ---------- dispatch tables ----------

func TestLookupKey(t *testing.T) {
	tests := []struct {
		key  string
		want Command
	}{
		{"q", CmdQuit},
		{"f", CmdToggleFreeze},
		{"?", CmdToggleHelp},
		{"/", CmdOpenSearch},
		{"tab", CmdToggleGroup},
		{"c", CmdSortCPU},
		{"n", CmdSortName},
		{"f5", CmdToggleTree},
		{"f6", CmdCycleSort},
		{"ctrl+c", CmdQuit},
		{"ctrl+r", CmdReset},
		{"ctrl+right", CmdFocusRight},
		{"shift+up", CmdFocusUp},
		{"alt+r", CmdToggleRegex},
		{"alt+h", CmdCursorLeft},
		{"x", CmdNone},
		{"f4", CmdNone},
	}
	for _, tt := range tests {
		if got := LookupKey(keyMsg(tt.key)); got != tt.want {
			t.Errorf("LookupKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestLookupSearchKey(t *testing.T) {
	tests := []struct {
		key  string
		want Command
	}{
		{"ctrl+c", CmdQuit},
		{"ctrl+u", CmdClearQuery},
		{"alt+w", CmdToggleWholeWord},
		{"esc", CmdDismiss},
		{"enter", CmdDismiss},
		{"f2", CmdToggleWholeWord},
		{"q", CmdNone},
		{"tab", CmdNone},
		{"/", CmdNone},
	}
	for _, tt := range tests {
		if got := LookupSearchKey(keyMsg(tt.key)); got != tt.want {
			t.Errorf("LookupSearchKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

// ---------- throttle ----------

func TestGateThrottles(t *testing.T) {
	g := NewGate(20 * time.Millisecond)
	base := time.Now()

	if !g.Allow(base) {
		t.Error("first event must pass")
	}
	if g.Allow(base.Add(5 * time.Millisecond)) {
		t.Error("event inside the window must drop")
	}
	if g.Allow(base.Add(19 * time.Millisecond)) {
		t.Error("event at window edge must drop")
	}
	if !g.Allow(base.Add(20 * time.Millisecond)) {
		t.Error("event after the window must pass")
	}
}

func TestKeyThrottleDropsBurst(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)

	// Two presses in the same instant: only the first dispatches.
	m = update(t, m, keyMsg("?"))
	m = update(t, m, keyMsg("?"))
	if !m.HelpVisible() {
		t.Error("expected help visible after first ?")
	}
}

// ---------- freeze ----------

func TestFreezeDiscardsSnapshots(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	now := time.Now()
	m = ingest(t, m, testSnapshot(now, rec(1, "a", 10)))

	ps := m.ProcState("process0")
	if len(ps.Rows()) != 1 {
		t.Fatalf("expected 1 row before freeze, got %d", len(ps.Rows()))
	}
	cpuLen := m.History().Get(history.SeriesCPUAvg).Len()

	m = sendKey(t, m, "f")
	if !m.Frozen() {
		t.Fatal("expected frozen after f")
	}
	m = ingest(t, m, testSnapshot(now.Add(time.Second), rec(1, "a", 10), rec(2, "b", 5)))

	if len(ps.Rows()) != 1 {
		t.Errorf("frozen update changed finalized rows: got %d, want 1", len(ps.Rows()))
	}
	if got := m.History().Get(history.SeriesCPUAvg).Len(); got != cpuLen {
		t.Errorf("frozen update grew history: got %d, want %d", got, cpuLen)
	}

	m = sendKey(t, m, "f")
	m = ingest(t, m, testSnapshot(now.Add(2*time.Second), rec(1, "a", 10), rec(2, "b", 5)))
	if len(ps.Rows()) != 2 {
		t.Errorf("expected 2 rows after unfreeze, got %d", len(ps.Rows()))
	}
}

// ---------- force flags ----------

func TestSnapshotForcesAllRecomputes(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	now := time.Now()
	m = ingest(t, m, testSnapshot(now, rec(1, "a", 10)))

	ps := m.ProcState("process0")
	// A widget-local mutation and a snapshot land in the same window; the
	// tick must pick up both.
	m = sendKey(t, m, "tab")
	m = update(t, m, harvest.SnapshotEvent{Snapshot: testSnapshot(now.Add(time.Second), rec(1, "a", 10), rec(2, "a", 5))})
	m = update(t, m, TickEvent{Time: now})

	if ps.Dirty() {
		t.Error("expected cache clean after tick")
	}
	rows := ps.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 grouped row, got %d", len(rows))
	}
	if rows[0].Count() != 2 {
		t.Errorf("expected grouped count 2, got %d", rows[0].Count())
	}
}

func TestSettingMutationMarksDirtyOnly(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	m = ingest(t, m, testSnapshot(time.Now(), rec(1, "b", 10), rec(2, "a", 5)))

	ps := m.ProcState("process0")
	m = sendKey(t, m, "f5")
	if !ps.Dirty() {
		t.Error("expected dirty after tree toggle")
	}
	m = update(t, m, TickEvent{Time: time.Now()})
	if ps.Dirty() {
		t.Error("expected clean after tick")
	}
	if !ps.Settings.Tree {
		t.Error("expected tree mode on")
	}
}

// ---------- reset ----------

func TestResetClearsLocalStateWhenAccepted(t *testing.T) {
	m, _, resets := newTestModel()
	m = sized(t, m)
	m = ingest(t, m, testSnapshot(time.Now(), rec(1, "a", 10)))

	m = sendKey(t, m, "ctrl+r")
	if len(resets) != 1 {
		t.Fatalf("expected 1 queued reset, got %d", len(resets))
	}
	if m.History().Get(history.SeriesCPUAvg) != nil {
		t.Error("expected history cleared after accepted reset")
	}
	m = update(t, m, TickEvent{Time: time.Now()})
	if got := len(m.ProcState("process0").Rows()); got != 0 {
		t.Errorf("expected empty rows after reset, got %d", got)
	}
}

func TestResetDroppedWhenPending(t *testing.T) {
	m, _, resets := newTestModel()
	m = sized(t, m)
	m = sendKey(t, m, "ctrl+r")
	m = ingest(t, m, testSnapshot(time.Now(), rec(1, "a", 10)))

	// Buffer still holds the first request: the second must drop without
	// touching local state.
	m = sendKey(t, m, "ctrl+r")
	if len(resets) != 1 {
		t.Fatalf("expected 1 queued reset, got %d", len(resets))
	}
	if m.History().Get(history.SeriesCPUAvg) == nil {
		t.Error("dropped reset must not clear history")
	}
	m = update(t, m, TickEvent{Time: time.Now()})
	if got := len(m.ProcState("process0").Rows()); got != 1 {
		t.Errorf("dropped reset must keep rows, got %d", got)
	}
}

// ---------- navigation ----------

func TestBuildNavGraph(t *testing.T) {
	ps := layout.Compute(testSpec(), 80, 23)
	g := buildNavGraph(ps)

	tests := []struct {
		from string
		dir  Direction
		want string
	}{
		{"cpu0", DirRight, "memory0"},
		{"memory0", DirLeft, "cpu0"},
		{"cpu0", DirDown, "process0"},
		{"memory0", DirDown, "process0"},
		{"process0", DirUp, "cpu0"}, // tie broken by placement order
	}
	for _, tt := range tests {
		if got := g[tt.from][tt.dir]; got != tt.want {
			t.Errorf("%s dir %v = %q, want %q", tt.from, tt.dir, got, tt.want)
		}
	}

	if _, ok := g["cpu0"][DirUp]; ok {
		t.Error("cpu0 must have no upward neighbor")
	}
	if _, ok := g["process0"][DirDown]; ok {
		t.Error("process0 must have no downward neighbor")
	}
}

func TestFocusMovesDoNotWrap(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)

	m = sendKey(t, m, "ctrl+up")
	if got := m.FocusedWidgetID(); got != "cpu0" {
		t.Fatalf("focus after ctrl+up = %q, want cpu0", got)
	}
	m = sendKey(t, m, "ctrl+up")
	if got := m.FocusedWidgetID(); got != "cpu0" {
		t.Errorf("focus must stay at edge, got %q", got)
	}
	m = sendKey(t, m, "shift+right")
	if got := m.FocusedWidgetID(); got != "memory0" {
		t.Errorf("focus after shift+right = %q, want memory0", got)
	}
}

// ---------- sorting ----------

func TestSortShortcutRepeatFlips(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	ps := m.ProcState("process0")

	m = sendKey(t, m, "c")
	if ps.Settings.SortColumn != proctable.SortCPU || ps.Settings.SortDescending {
		t.Errorf("repeat on active column must flip: %v desc=%v",
			ps.Settings.SortColumn, ps.Settings.SortDescending)
	}

	m = sendKey(t, m, "n")
	if ps.Settings.SortColumn != proctable.SortName || ps.Settings.SortDescending {
		t.Errorf("name sort must start ascending: %v desc=%v",
			ps.Settings.SortColumn, ps.Settings.SortDescending)
	}
	m = sendKey(t, m, "n")
	if !ps.Settings.SortDescending {
		t.Error("second press must flip to descending")
	}
}

// ---------- search ----------

func TestSearchOpenTypeAndDismiss(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	ps := m.ProcState("process0")

	m = sendKey(t, m, "/")
	if !ps.SearchOpen() {
		t.Fatal("expected search open after /")
	}
	m = typeString(t, m, "fire")
	if got := ps.Query.Text; got != "fire" {
		t.Errorf("query text = %q, want fire", got)
	}

	m = sendKey(t, m, "esc")
	if ps.SearchOpen() {
		t.Error("expected search blurred after esc")
	}
	if got := ps.Query.Text; got != "fire" {
		t.Errorf("esc must keep the applied query, got %q", got)
	}
	if !ps.SearchVisible() {
		t.Error("non-empty query must keep the search row visible")
	}
}

func TestQuitIgnoredWhileSearchFocused(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)

	m = sendKey(t, m, "/")
	m = sendKey(t, m, "q")
	if m.Quitting() {
		t.Fatal("q must feed the search box, not quit")
	}
	if got := m.ProcState("process0").Query.Text; got != "q" {
		t.Errorf("query text = %q, want q", got)
	}

	m = sendKey(t, m, "ctrl+c")
	if !m.Quitting() {
		t.Error("ctrl+c must quit even while searching")
	}
}

func TestInvalidRegexFallsBackToMatchAll(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	m = ingest(t, m, testSnapshot(time.Now(), rec(1, "a", 10), rec(2, "b", 5)))
	ps := m.ProcState("process0")

	m = sendKey(t, m, "/")
	m = sendKey(t, m, "alt+r")
	if !ps.Query.Regex {
		t.Fatal("expected regex flag on after alt+r")
	}
	m = sendKey(t, m, "(")

	if ps.SearchErr == nil {
		t.Fatal("expected compile error for unbalanced pattern")
	}
	m = update(t, m, TickEvent{Time: time.Now()})
	if got := len(ps.Rows()); got != 2 {
		t.Errorf("invalid pattern must match everything, got %d rows", got)
	}
}

func TestClearQuery(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	ps := m.ProcState("process0")

	m = sendKey(t, m, "/")
	m = typeString(t, m, "abc")
	m = sendKey(t, m, "ctrl+u")
	if got := ps.Query.Text; got != "" {
		t.Errorf("query after ctrl+u = %q, want empty", got)
	}
	m = sendKey(t, m, "esc")
	if ps.SearchVisible() {
		t.Error("blurred empty search must hide the row")
	}
}

// ---------- overlays ----------

func TestHelpToggleAndDismiss(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)

	m = sendKey(t, m, "?")
	if !m.HelpVisible() {
		t.Fatal("expected help visible")
	}
	m = sendKey(t, m, "esc")
	if m.HelpVisible() {
		t.Error("expected help dismissed")
	}
}

func TestExpandToggle(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)

	m = sendKey(t, m, "enter")
	if got := m.ExpandedWidgetID(); got != "process0" {
		t.Fatalf("expanded = %q, want process0", got)
	}
	m = sendKey(t, m, "esc")
	if got := m.ExpandedWidgetID(); got != "" {
		t.Errorf("expanded after esc = %q, want empty", got)
	}
}

// ---------- mouse ----------

func TestWheelScrollsHoveredTable(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	m = ingest(t, m, testSnapshot(time.Now(), rec(1, "a", 10), rec(2, "b", 5), rec(3, "c", 1)))
	ps := m.ProcState("process0")

	// The process row spans y 7..22 at 80x24 with the status line reserved.
	m = sendMouse(t, m, tea.MouseMsg{
		X: 10, Y: 12,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelDown,
	})
	if got := ps.Scroll.Position; got != 1 {
		t.Errorf("position after wheel down = %d, want 1", got)
	}
	m = sendMouse(t, m, tea.MouseMsg{
		X: 10, Y: 12,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelUp,
	})
	if got := ps.Scroll.Position; got != 0 {
		t.Errorf("position after wheel up = %d, want 0", got)
	}
}

func TestClickFocusesAndSelectsRow(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	m = ingest(t, m, testSnapshot(time.Now(), rec(1, "a", 10), rec(2, "b", 5), rec(3, "c", 1)))

	m = sendKey(t, m, "ctrl+up") // focus cpu0 first
	// Interior origin of process0 is (1, 8); the stub treats interior
	// row 2 onward as data rows.
	m = sendMouse(t, m, tea.MouseMsg{
		X: 10, Y: 12,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})

	if got := m.FocusedWidgetID(); got != "process0" {
		t.Fatalf("focus after click = %q, want process0", got)
	}
	if got := m.ProcState("process0").Scroll.Position; got != 2 {
		t.Errorf("selection after click = %d, want 2", got)
	}
}

func TestMouseSuppressedWhenDisabled(t *testing.T) {
	m, _, _ := newTestModel()
	m.disableClick = true
	m = sized(t, m)
	m = ingest(t, m, testSnapshot(time.Now(), rec(1, "a", 10), rec(2, "b", 5)))
	ps := m.ProcState("process0")

	m = sendMouse(t, m, tea.MouseMsg{
		X: 10, Y: 12,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelDown,
	})
	if got := ps.Scroll.Position; got != 0 {
		t.Errorf("disabled mouse must not scroll, got %d", got)
	}
}

// ---------- bridge ----------

func TestWaitForEventDeliversAndReportsClose(t *testing.T) {
	ch := make(chan harvest.Event, 1)
	snap := testSnapshot(time.Now(), rec(1, "a", 10))
	ch <- harvest.SnapshotEvent{Snapshot: snap}

	msg := WaitForEvent(ch)()
	ev, ok := msg.(harvest.SnapshotEvent)
	if !ok {
		t.Fatalf("expected SnapshotEvent, got %T", msg)
	}
	if ev.Snapshot != snap {
		t.Error("snapshot identity must survive the bridge")
	}

	close(ch)
	if _, ok := WaitForEvent(ch)().(EventsClosedEvent); !ok {
		t.Error("closed channel must surface as EventsClosedEvent")
	}
}

// ---------- rendering ----------

func TestViewRendersGridAndStatus(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	m = ingest(t, m, testSnapshot(time.Now(), rec(1, "a", 10)))

	out := components.StripANSI(m.View())
	lines := strings.Split(out, "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 lines, got %d", len(lines))
	}
	for _, want := range []string{"CPU", "Memory", "Processes", "q quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewShowsFrozenIndicator(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	m = sendKey(t, m, "f")

	if !strings.Contains(components.StripANSI(m.View()), "FROZEN") {
		t.Error("expected FROZEN indicator in status bar")
	}
}

func TestViewHelpOverlay(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	m = sendKey(t, m, "?")

	out := components.StripANSI(m.View())
	if !strings.Contains(out, "group by name") {
		t.Error("expected key reference in help overlay")
	}
	if strings.Contains(out, "stub") {
		t.Error("help overlay must replace the grid")
	}
}

func TestViewExpanded(t *testing.T) {
	m, _, _ := newTestModel()
	m = sized(t, m)
	m = sendKey(t, m, "enter")

	out := components.StripANSI(m.View())
	if !strings.Contains(out, "Processes") {
		t.Error("expected expanded widget title")
	}
	if strings.Contains(out, "Memory") {
		t.Error("expanded view must hide the other tiles")
	}
}
