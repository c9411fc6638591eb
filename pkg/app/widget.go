package app

import tea "github.com/charmbracelet/bubbletea"

// Widget is one tile of the dashboard grid. Implementations own their view
// of the harvested data: the model broadcasts snapshot messages to every
// widget, and each caches whatever it needs to render.
type Widget interface {
	// ID returns the placement id ("cpu0", "process0", ...) binding the
	// widget to its layout rect and navigation node.
	ID() string

	// Title returns the text embedded in the widget's border.
	Title() string

	// Update lets the widget react to broadcast messages.
	Update(msg tea.Msg) tea.Cmd

	// View renders the widget interior at exactly width x height cells.
	View(width, height int) string

	// MinSize returns the smallest interior the widget renders sensibly.
	// Below it the frame draws with an empty body.
	MinSize() (int, int)

	// HandleKey receives keys the dispatch tables leave unbound while the
	// widget has focus, such as graph zoom. Most widgets return nil.
	HandleKey(msg tea.KeyMsg) tea.Cmd
}

// RowSelector is implemented by widgets with clickable rows. Coordinates
// are relative to the widget interior; ok is false when the point is not
// on a selectable row.
type RowSelector interface {
	RowAt(x, y int) (row int, ok bool)
}
