package app

import tea "github.com/charmbracelet/bubbletea"

// Command identifies one dispatchable input action. Key handling is a pure
// table lookup from tea.KeyMsg.String() to Command, so the bindings stay
// inspectable and the handlers free of key-string switches.
type Command int

const (
	CmdNone Command = iota

	// Application state.
	CmdQuit
	CmdToggleFreeze
	CmdToggleHelp
	CmdDismiss
	CmdToggleExpand
	CmdReset

	// Focus moves on the navigation graph.
	CmdFocusUp
	CmdFocusDown
	CmdFocusLeft
	CmdFocusRight

	// Process table shaping and ordering.
	CmdToggleGroup
	CmdToggleTree
	CmdCycleSort
	CmdSortCPU
	CmdSortMem
	CmdSortPID
	CmdSortName

	// Process table selection.
	CmdScrollUp
	CmdScrollDown
	CmdScrollHome
	CmdScrollEnd
	CmdPageUp
	CmdPageDown

	// Search box control.
	CmdOpenSearch
	CmdToggleIgnoreCase
	CmdToggleWholeWord
	CmdToggleRegex
	CmdCursorStart
	CmdCursorEnd
	CmdCursorLeft
	CmdCursorRight
	CmdClearQuery
)

// plainKeys dispatches unmodified keys while no search box has focus.
var plainKeys = map[string]Command{
	"q":      CmdQuit,
	"f":      CmdToggleFreeze,
	"?":      CmdToggleHelp,
	"esc":    CmdDismiss,
	"enter":  CmdToggleExpand,
	"/":      CmdOpenSearch,
	"tab":    CmdToggleGroup,
	"c":      CmdSortCPU,
	"m":      CmdSortMem,
	"p":      CmdSortPID,
	"n":      CmdSortName,
	"f1":     CmdToggleIgnoreCase,
	"f2":     CmdToggleWholeWord,
	"f3":     CmdToggleRegex,
	"f5":     CmdToggleTree,
	"f6":     CmdCycleSort,
	"up":     CmdScrollUp,
	"k":      CmdScrollUp,
	"down":   CmdScrollDown,
	"j":      CmdScrollDown,
	"home":   CmdScrollHome,
	"end":    CmdScrollEnd,
	"pgup":   CmdPageUp,
	"pgdown": CmdPageDown,
}

// ctrlKeys dispatches control chords. These keep their meaning inside a
// focused search box, which is how quit and reset stay reachable while
// typing a query.
var ctrlKeys = map[string]Command{
	"ctrl+c":     CmdQuit,
	"ctrl+r":     CmdReset,
	"ctrl+f":     CmdOpenSearch,
	"ctrl+a":     CmdCursorStart,
	"ctrl+e":     CmdCursorEnd,
	"ctrl+u":     CmdClearQuery,
	"ctrl+up":    CmdFocusUp,
	"ctrl+down":  CmdFocusDown,
	"ctrl+left":  CmdFocusLeft,
	"ctrl+right": CmdFocusRight,
}

// altKeys dispatches alt chords, also live inside a focused search box.
var altKeys = map[string]Command{
	"alt+c": CmdToggleIgnoreCase,
	"alt+w": CmdToggleWholeWord,
	"alt+r": CmdToggleRegex,
	"alt+h": CmdCursorLeft,
	"alt+l": CmdCursorRight,
}

// shiftKeys dispatches shifted special keys. Shifted printable characters
// arrive as plain uppercase runes and never land here.
var shiftKeys = map[string]Command{
	"shift+up":    CmdFocusUp,
	"shift+down":  CmdFocusDown,
	"shift+left":  CmdFocusLeft,
	"shift+right": CmdFocusRight,
}

// searchPlainKeys are the unmodified keys that keep a command meaning
// inside a focused search box. Everything else unmodified feeds the input.
var searchPlainKeys = map[string]Command{
	"esc":   CmdDismiss,
	"enter": CmdDismiss,
	"f1":    CmdToggleIgnoreCase,
	"f2":    CmdToggleWholeWord,
	"f3":    CmdToggleRegex,
}

// LookupKey resolves a key message against the dispatch tables. The tables
// are disjoint because tea.KeyMsg.String() embeds the modifier, so lookup
// order does not matter. Unbound keys resolve to CmdNone.
func LookupKey(msg tea.KeyMsg) Command {
	s := msg.String()
	for _, table := range []map[string]Command{plainKeys, ctrlKeys, altKeys, shiftKeys} {
		if cmd, ok := table[s]; ok {
			return cmd
		}
	}
	return CmdNone
}

// LookupSearchKey resolves a key message while a search box has focus.
// Only control and alt chords plus a handful of plain keys dispatch; a
// CmdNone result means the key belongs to the input field.
func LookupSearchKey(msg tea.KeyMsg) Command {
	s := msg.String()
	if cmd, ok := ctrlKeys[s]; ok {
		return cmd
	}
	if cmd, ok := altKeys[s]; ok {
		return cmd
	}
	if cmd, ok := searchPlainKeys[s]; ok {
		return cmd
	}
	return CmdNone
}
