package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/procpulse/pkg/config"
	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
	"gitlab.com/tinyland/lab/procpulse/pkg/proctable"
)

// Update is the single consumer of every message source: terminal input,
// the render ticker, and the harvest bridge. It returns the modified copy
// of the model, bubbletea's value-semantics contract.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layoutDirty = true
		m.reflow()
		return m, nil

	case tea.KeyMsg:
		if !m.keyGate.Allow(time.Now()) {
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.disableClick {
			return m, nil
		}
		if !m.mouseGate.Allow(time.Now()) {
			return m, nil
		}
		return m.handleMouse(msg)

	case TickEvent:
		m.refreshCaches()
		m.layoutDirty = false
		cmds := append(m.broadcast(msg), TickCmd(m.renderEvery))
		return m, tea.Batch(cmds...)

	case harvest.SnapshotEvent:
		return m.handleSnapshot(msg)

	case harvest.CleanEvent:
		stats := m.history.Prune(msg.At)
		if stats.PointsRemoved > 0 {
			m.log.Debug("history pruned",
				"points", stats.PointsRemoved,
				"series", stats.SeriesPruned,
				"took", stats.Duration)
		}
		return m, WaitForEvent(m.events)

	case ReloadEvent:
		m.applyReload(msg.Config)
		return m, nil

	case EventsClosedEvent:
		m.log.Debug("event channel closed, shutting down")
		m.quitting = true
		return m, tea.Quit

	default:
		// Cursor blink and other component messages belong to the focused
		// search box.
		if ps := m.focusedProc(); ps != nil && ps.SearchOpen() {
			var cmd tea.Cmd
			ps.Input, cmd = ps.Input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// handleKey dispatches one key press. A focused search box narrows the
// tables to the search set and swallows everything else as input; outside
// of search the full tables apply, and whatever they leave unbound goes to
// the focused widget.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if ps := m.focusedProc(); ps != nil && ps.SearchOpen() {
		if cmd := LookupSearchKey(msg); cmd != CmdNone {
			return m.applyCommand(cmd)
		}
		var cmd tea.Cmd
		ps.Input, cmd = ps.Input.Update(msg)
		ps.setQueryText(ps.Input.Value())
		return m, cmd
	}

	if cmd := LookupKey(msg); cmd != CmdNone {
		return m.applyCommand(cmd)
	}
	if w := m.focusedWidget(); w != nil {
		return m, w.HandleKey(msg)
	}
	return m, nil
}

// applyCommand executes one dispatched command against the model.
func (m Model) applyCommand(cmd Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case CmdQuit:
		m.quitting = true
		m.zones.Close()
		return m, tea.Quit

	case CmdToggleFreeze:
		m.frozen = !m.frozen
		m.log.Debug("freeze toggled", "frozen", m.frozen)

	case CmdToggleHelp:
		m.helpVisible = !m.helpVisible

	case CmdDismiss:
		m.dismiss()

	case CmdToggleExpand:
		m.ToggleExpand()

	case CmdReset:
		m.requestReset()

	case CmdFocusUp:
		m.MoveFocus(DirUp)
	case CmdFocusDown:
		m.MoveFocus(DirDown)
	case CmdFocusLeft:
		m.MoveFocus(DirLeft)
	case CmdFocusRight:
		m.MoveFocus(DirRight)

	case CmdOpenSearch:
		if ps := m.focusedProc(); ps != nil {
			return m, ps.OpenSearch()
		}

	default:
		if ps := m.focusedProc(); ps != nil {
			m.applyProcCommand(ps, cmd)
		}
	}
	return m, nil
}

// applyProcCommand executes the commands that act on the focused process
// table. With focus elsewhere they are no-ops and never reach here.
func (m *Model) applyProcCommand(ps *ProcState, cmd Command) {
	switch cmd {
	case CmdScrollUp:
		ps.Scroll.Up()
	case CmdScrollDown:
		ps.Scroll.Down(len(ps.rows))
	case CmdScrollHome:
		ps.Scroll.Home()
	case CmdScrollEnd:
		ps.Scroll.End(len(ps.rows))
	case CmdPageUp:
		ps.Scroll.Page(-pageSize(ps), len(ps.rows))
	case CmdPageDown:
		ps.Scroll.Page(pageSize(ps), len(ps.rows))

	case CmdToggleGroup:
		ps.toggleGroup()
	case CmdToggleTree:
		ps.toggleTree()
	case CmdCycleSort:
		ps.cycleSort()
	case CmdSortCPU:
		ps.setSortColumn(proctable.SortCPU)
	case CmdSortMem:
		ps.setSortColumn(proctable.SortMem)
	case CmdSortPID:
		ps.setSortColumn(proctable.SortPID)
	case CmdSortName:
		ps.setSortColumn(proctable.SortName)

	case CmdToggleIgnoreCase:
		ps.toggleIgnoreCase()
	case CmdToggleWholeWord:
		ps.toggleWholeWord()
	case CmdToggleRegex:
		ps.toggleRegex()
	case CmdCursorStart:
		ps.Input.CursorStart()
	case CmdCursorEnd:
		ps.Input.CursorEnd()
	case CmdCursorLeft:
		ps.Input.SetCursor(ps.Input.Position() - 1)
	case CmdCursorRight:
		ps.Input.SetCursor(ps.Input.Position() + 1)
	case CmdClearQuery:
		ps.clearQuery()
	}
}

// pageSize is the last rendered page, or one row before the first render.
func pageSize(ps *ProcState) int {
	if ps.LastPage > 0 {
		return ps.LastPage
	}
	return 1
}

// dismiss closes the top-most transient state: the help overlay first,
// then a focused search box, then an expanded widget.
func (m *Model) dismiss() {
	ps := m.focusedProc()
	switch {
	case m.helpVisible:
		m.helpVisible = false
	case ps != nil && ps.SearchOpen():
		ps.CloseSearch()
	case m.expanded != "":
		m.expanded = ""
	}
}

// requestReset asks the scheduler to rebase its counters. The send is
// non-blocking against the buffered control channel; when a reset is
// already pending the request drops and local state stays put, keeping
// both sides in step.
func (m *Model) requestReset() {
	select {
	case m.resets <- struct{}{}:
	default:
		m.log.Debug("reset already pending, request dropped")
		return
	}

	m.history.Reset()
	m.latest = nil
	m.forceAll = true
	m.log.Debug("reset requested, local history cleared")
}

// handleSnapshot ingests one harvested snapshot and re-arms the bridge.
// While frozen the snapshot is discarded whole: no history, no caches, no
// widget broadcast.
func (m Model) handleSnapshot(ev harvest.SnapshotEvent) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{WaitForEvent(m.events)}
	if ev.Snapshot == nil {
		return m, tea.Batch(cmds...)
	}
	if m.frozen {
		m.log.Debug("snapshot discarded while frozen")
		return m, tea.Batch(cmds...)
	}

	m.history.Ingest(ev.Snapshot)
	m.latest = ev.Snapshot
	m.forceAll = true
	cmds = append(cmds, m.broadcast(ev)...)
	return m, tea.Batch(cmds...)
}

// refreshCaches recomputes stale finalized-row caches. A pending force-all
// promotes to every widget before any per-widget flag is looked at, so it
// always wins over a force-one raised in the same window.
func (m *Model) refreshCaches() {
	if m.forceAll {
		for _, ps := range m.procs {
			ps.dirty = true
		}
		m.forceAll = false
	}
	for _, ps := range m.procs {
		if ps.dirty {
			ps.Recompute(m.latestRecords())
		}
	}
}

// broadcast forwards msg to every widget and collects their commands.
func (m *Model) broadcast(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	for _, w := range m.widgets {
		if cmd := w.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// applyReload applies the runtime-safe subset of a reloaded config.
// Refresh rate, layout, and metric selection are wired through goroutines
// and widget construction at startup; changing those needs a restart.
func (m *Model) applyReload(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.disableClick = cfg.General.DisableClick
	m.log.Info("config reloaded",
		"disable_click", m.disableClick,
		"note", "structural changes apply on restart")
}

// handleMouse routes wheel scrolling to the hovered-or-focused widget and
// left clicks to focus and row selection.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		id := m.hoveredID(msg.X, msg.Y)
		if id == "" {
			id = m.focused
		}
		if ps := m.procs[id]; ps != nil {
			if msg.Button == tea.MouseButtonWheelUp {
				ps.Scroll.Up()
			} else {
				ps.Scroll.Down(len(ps.rows))
			}
		}

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			break
		}
		if m.expanded != "" {
			m.clickWidget(m.expanded, msg)
			break
		}
		for _, p := range m.placements {
			if m.zoneHit(p.ID, msg) || p.Rect.Contains(msg.X, msg.Y) {
				m.clickWidget(p.ID, msg)
				break
			}
		}
	}
	return m, nil
}

// zoneHit reports whether the scanned zone for id contains the event.
// Zone records lag one render behind the scan; the caller backstops with
// the placement rect.
func (m *Model) zoneHit(id string, msg tea.MouseMsg) bool {
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

// clickWidget focuses the clicked widget and, for process tables, moves
// the selection to the clicked row.
func (m *Model) clickWidget(id string, msg tea.MouseMsg) {
	m.FocusWidget(id)

	ps := m.procs[id]
	if ps == nil {
		return
	}
	sel, ok := m.byID[id].(RowSelector)
	if !ok {
		return
	}

	r := m.rectFor(id)
	if row, hit := sel.RowAt(msg.X-(r.X+1), msg.Y-(r.Y+1)); hit {
		ps.SelectRow(row)
	}
}

// hoveredID returns the id of the placement under the pointer, or "".
func (m *Model) hoveredID(x, y int) string {
	if m.expanded != "" {
		return m.expanded
	}
	for _, p := range m.placements {
		if p.Rect.Contains(x, y) {
			return p.ID
		}
	}
	return ""
}
