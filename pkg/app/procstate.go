package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
	"gitlab.com/tinyland/lab/procpulse/pkg/proctable"
)

// ProcState is the mutable view state of one process-table widget: its
// shaping settings, search query, selection, and the cached finalized
// rows. One instance exists per process placement, created at startup and
// mutated only by dispatched commands in the update loop.
type ProcState struct {
	Settings proctable.Options
	Query    proctable.Query
	Scroll   proctable.Scroll

	// Input is the search box. While it has focus, printable keys feed the
	// query instead of dispatching as shortcuts.
	Input textinput.Model

	// SearchErr holds the last query compile failure. The matcher falls
	// back to match-everything and the widget renders an invalid marker
	// while this is set.
	SearchErr error

	// LastPage and LastOffset are recorded by the widget on each render:
	// the number of visible data rows and the index of the first one.
	// Paging and click selection read them back.
	LastPage   int
	LastOffset int

	rows  []proctable.Row
	dirty bool
}

// NewProcState seeds a widget's state from the configured defaults. The
// cache starts dirty so the first recompute pass populates it even before
// any snapshot arrives.
func NewProcState(settings proctable.Options, query proctable.Query) *ProcState {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search"
	ti.CharLimit = 128

	ps := &ProcState{
		Settings: settings,
		Query:    query,
		Input:    ti,
		dirty:    true,
	}
	ps.compile()
	return ps
}

// Rows returns the cached finalized rows.
func (ps *ProcState) Rows() []proctable.Row {
	return ps.rows
}

// Dirty reports whether the cache needs recomputing.
func (ps *ProcState) Dirty() bool {
	return ps.dirty
}

// Recompute rebuilds the cache from the given records and clamps the
// selection against the new length.
func (ps *ProcState) Recompute(records []harvest.ProcessRecord) {
	ps.rows = proctable.Finalize(records, ps.Settings, &ps.Scroll)
	ps.dirty = false
}

// SearchOpen reports whether the search box has focus.
func (ps *ProcState) SearchOpen() bool {
	return ps.Input.Focused()
}

// SearchVisible reports whether the search row should render: the box has
// focus, or an applied query is still filtering.
func (ps *ProcState) SearchVisible() bool {
	return ps.Input.Focused() || ps.Input.Value() != ""
}

// OpenSearch focuses the search box and starts the cursor blinking.
func (ps *ProcState) OpenSearch() tea.Cmd {
	ps.Input.Focus()
	return textinput.Blink
}

// CloseSearch blurs the search box. The query stays applied; clearing it
// is a separate command.
func (ps *ProcState) CloseSearch() {
	ps.Input.Blur()
}

// SelectRow moves the selection to row index i, recording the previous
// position and travel direction like a keyboard jump would.
func (ps *ProcState) SelectRow(i int) {
	if i < 0 || i == ps.Scroll.Position {
		return
	}
	if i > ps.Scroll.Position {
		ps.Scroll.Direction = proctable.ScrollDown
	} else {
		ps.Scroll.Direction = proctable.ScrollUp
	}
	ps.Scroll.Previous = ps.Scroll.Position
	ps.Scroll.Position = i
	ps.Scroll.Clamp(len(ps.rows))
}

// setQueryText recompiles the matcher after an edit. No-op when the text
// did not change, which keeps cursor-only input updates from invalidating
// the cache.
func (ps *ProcState) setQueryText(text string) {
	if ps.Query.Text == text {
		return
	}
	ps.Query.Text = text
	ps.compile()
	ps.dirty = true
}

// clearQuery empties the search box and drops the filter.
func (ps *ProcState) clearQuery() {
	ps.Input.SetValue("")
	ps.setQueryText("")
}

// compile refreshes Settings.Matcher from Query. Compile failure leaves a
// match-everything matcher in place and records the error.
func (ps *ProcState) compile() {
	m, err := proctable.Compile(ps.Query)
	ps.Settings.Matcher = m
	ps.SearchErr = err
}

func (ps *ProcState) toggleIgnoreCase() {
	ps.Query.IgnoreCase = !ps.Query.IgnoreCase
	ps.compile()
	ps.dirty = true
}

func (ps *ProcState) toggleWholeWord() {
	ps.Query.WholeWord = !ps.Query.WholeWord
	ps.compile()
	ps.dirty = true
}

func (ps *ProcState) toggleRegex() {
	ps.Query.Regex = !ps.Query.Regex
	ps.compile()
	ps.dirty = true
}

func (ps *ProcState) toggleGroup() {
	ps.Settings.Grouped = !ps.Settings.Grouped
	ps.dirty = true
}

func (ps *ProcState) toggleTree() {
	ps.Settings.Tree = !ps.Settings.Tree
	ps.dirty = true
}

// setSortColumn selects col, or flips the direction when col is already
// selected. A fresh column starts in its natural direction.
func (ps *ProcState) setSortColumn(col proctable.SortColumn) {
	if ps.Settings.SortColumn == col {
		ps.Settings.SortDescending = !ps.Settings.SortDescending
	} else {
		ps.Settings.SortColumn = col
		ps.Settings.SortDescending = defaultDescending(col)
	}
	ps.dirty = true
}

// cycleSort advances to the next sort column in its natural direction.
func (ps *ProcState) cycleSort() {
	ps.Settings.SortColumn = ps.Settings.SortColumn.Next()
	ps.Settings.SortDescending = defaultDescending(ps.Settings.SortColumn)
	ps.dirty = true
}

// defaultDescending gives each column its natural first direction: usage
// columns read high-to-low, identity columns low-to-high.
func defaultDescending(col proctable.SortColumn) bool {
	switch col {
	case proctable.SortCPU, proctable.SortMem, proctable.SortCount:
		return true
	}
	return false
}
