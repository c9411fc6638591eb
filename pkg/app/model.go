package app

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
	"gitlab.com/tinyland/lab/procpulse/pkg/history"
	"gitlab.com/tinyland/lab/procpulse/pkg/layout"
)

// Options configures the root model. Spec, History, Events, and Resets are
// required; zero values elsewhere fall back to defaults.
type Options struct {
	// Spec is the resolved widget grid. Placement ids must match the ids
	// of the widgets passed to NewModel.
	Spec layout.Spec

	// History receives every unfrozen snapshot and serves the graphs.
	History *history.History

	// Events is the shared channel fed by the scheduler and clean ticker.
	Events <-chan harvest.Event

	// Resets carries baseline-reset requests to the scheduler. Buffered;
	// both ends use non-blocking operations.
	Resets chan<- struct{}

	// ProcStates holds the view state for each process placement, keyed
	// by placement id.
	ProcStates map[string]*ProcState

	// DisableClick suppresses all mouse handling.
	DisableClick bool

	// RenderInterval paces redraws. Defaults to DefaultRenderInterval.
	RenderInterval time.Duration

	Log *slog.Logger
}

// Model is the bubbletea root model. It owns every piece of mutable
// application state; nothing here is shared with another goroutine.
type Model struct {
	spec    layout.Spec
	widgets []Widget
	byID    map[string]Widget
	procs   map[string]*ProcState

	history *history.History
	latest  *harvest.Snapshot

	events <-chan harvest.Event
	resets chan<- struct{}

	placements []layout.Placement
	nav        navGraph

	width  int
	height int
	ready  bool

	focused     string
	expanded    string
	frozen      bool
	helpVisible bool
	quitting    bool
	layoutDirty bool

	// forceAll marks every finalized-row cache stale at once. It beats
	// any single-widget dirty flag: the resolution pass promotes it to
	// all widgets before clearing it.
	forceAll bool

	disableClick bool
	renderEvery  time.Duration

	keyGate   *Gate
	mouseGate *Gate

	// zones tracks where each widget tile landed on screen. View marks
	// and scans, mouse handling hit-tests.
	zones *zone.Manager

	log *slog.Logger
}

// NewModel builds the root model around the given widgets. Widgets render
// in the order given, which must be the spec's row-major placement order.
func NewModel(opts Options, widgets ...Widget) Model {
	if opts.RenderInterval <= 0 {
		opts.RenderInterval = DefaultRenderInterval
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.ProcStates == nil {
		opts.ProcStates = map[string]*ProcState{}
	}

	byID := make(map[string]Widget, len(widgets))
	for _, w := range widgets {
		byID[w.ID()] = w
	}

	return Model{
		spec:         opts.Spec,
		widgets:      widgets,
		byID:         byID,
		procs:        opts.ProcStates,
		history:      opts.History,
		events:       opts.Events,
		resets:       opts.Resets,
		disableClick: opts.DisableClick,
		renderEvery:  opts.RenderInterval,
		keyGate:      NewGate(DefaultThrottle),
		mouseGate:    NewGate(DefaultThrottle),
		zones:        zone.New(),
		log:          opts.Log,
	}
}

// Init starts the render ticker and the harvest event bridge.
func (m Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(m.renderEvery), WaitForEvent(m.events))
}

// Width returns the last seen terminal width.
func (m Model) Width() int { return m.width }

// Height returns the last seen terminal height.
func (m Model) Height() int { return m.height }

// Ready reports whether the first window size arrived.
func (m Model) Ready() bool { return m.ready }

// Quitting reports whether the model is shutting down.
func (m Model) Quitting() bool { return m.quitting }

// Frozen reports whether snapshot ingestion is paused.
func (m Model) Frozen() bool { return m.frozen }

// HelpVisible reports whether the help overlay is up.
func (m Model) HelpVisible() bool { return m.helpVisible }

// LayoutDirty reports whether the geometry changed since the last tick.
func (m Model) LayoutDirty() bool { return m.layoutDirty }

// FocusedWidgetID returns the id of the focused widget, or "".
func (m Model) FocusedWidgetID() string { return m.focused }

// ExpandedWidgetID returns the id of the fullscreen widget, or "".
func (m Model) ExpandedWidgetID() string { return m.expanded }

// History exposes the metric store for widgets and tests.
func (m Model) History() *history.History { return m.history }

// ProcState returns the view state for a process placement id, or nil.
func (m Model) ProcState(id string) *ProcState { return m.procs[id] }

// reflow recomputes placements and the navigation graph for the current
// size. One line below the grid is reserved for the status bar.
func (m *Model) reflow() {
	m.placements = layout.Compute(m.spec, m.width, m.height-1)
	m.nav = buildNavGraph(m.placements)
	if m.focused == "" {
		m.focused = m.defaultFocus()
	}
}

// defaultFocus prefers the first process table, where most keys act, and
// falls back to the top-left placement.
func (m *Model) defaultFocus() string {
	for _, p := range m.placements {
		if p.Kind == layout.KindProcess {
			return p.ID
		}
	}
	if len(m.placements) > 0 {
		return m.placements[0].ID
	}
	return ""
}

// focusedProc returns the view state of the focused process table, or nil
// when focus is elsewhere.
func (m *Model) focusedProc() *ProcState {
	return m.procs[m.focused]
}

// focusedWidget returns the focused widget, or nil.
func (m *Model) focusedWidget() Widget {
	return m.byID[m.focused]
}

// latestRecords returns the process records of the last ingested snapshot.
func (m *Model) latestRecords() []harvest.ProcessRecord {
	if m.latest == nil {
		return nil
	}
	return m.latest.Processes
}

// rectFor returns the outer rect a widget currently occupies: its grid
// tile, or the whole grid area while expanded.
func (m *Model) rectFor(id string) layout.Rect {
	if m.expanded == id {
		return layout.Rect{X: 0, Y: 0, Width: m.width, Height: m.height - 1}
	}
	for _, p := range m.placements {
		if p.ID == id {
			return p.Rect
		}
	}
	return layout.Rect{}
}
