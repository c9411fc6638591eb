package terminal

import (
	"github.com/charmbracelet/x/term"
)

// Guard captures terminal state at startup so the terminal can be put back
// into a usable state no matter how the program exits. The TUI framework
// restores state on clean shutdown; the guard covers panics and error exits
// that bypass it.
type Guard struct {
	fd    uintptr
	state *term.State
}

// NewGuard captures the current state of the terminal on fd.
func NewGuard(fd uintptr) (*Guard, error) {
	state, err := term.GetState(fd)
	if err != nil {
		return nil, err
	}
	return &Guard{fd: fd, state: state}, nil
}

// Restore puts the terminal back into its captured state. Safe to call more
// than once and on a nil guard.
func (g *Guard) Restore() {
	if g == nil || g.state == nil {
		return
	}
	_ = term.Restore(g.fd, g.state)
}

// Protect runs fn. If fn panics, the terminal is restored before the panic
// propagates so the stack trace lands on a readable screen.
func (g *Guard) Protect(fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			g.Restore()
			panic(r)
		}
	}()
	return fn()
}
