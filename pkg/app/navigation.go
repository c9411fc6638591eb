package app

import "gitlab.com/tinyland/lab/procpulse/pkg/layout"

// Direction is one of the four focus-move directions.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// navGraph maps widget id to its neighbor in each direction. Built once
// per layout geometry; a missing entry means focus stays put, there is no
// wrapping.
type navGraph map[string]map[Direction]string

// buildNavGraph resolves each placement's nearest neighbor in every
// direction. Nearest means smallest Manhattan distance between rect
// centers among the placements strictly in that direction; ties keep the
// earliest placement in row-major order.
func buildNavGraph(ps []layout.Placement) navGraph {
	g := make(navGraph, len(ps))
	for _, p := range ps {
		moves := make(map[Direction]string, 4)
		for _, dir := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
			if id := nearestInDirection(p, ps, dir); id != "" {
				moves[dir] = id
			}
		}
		g[p.ID] = moves
	}
	return g
}

func nearestInDirection(from layout.Placement, all []layout.Placement, dir Direction) string {
	fx, fy := from.Rect.CenterX(), from.Rect.CenterY()

	bestID := ""
	bestDist := 0
	for _, c := range all {
		if c.ID == from.ID {
			continue
		}
		cx, cy := c.Rect.CenterX(), c.Rect.CenterY()

		eligible := false
		switch dir {
		case DirUp:
			eligible = cy < fy
		case DirDown:
			eligible = cy > fy
		case DirLeft:
			eligible = cx < fx
		case DirRight:
			eligible = cx > fx
		}
		if !eligible {
			continue
		}

		d := absInt(cx-fx) + absInt(cy-fy)
		if bestID == "" || d < bestDist {
			bestID, bestDist = c.ID, d
		}
	}
	return bestID
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// MoveFocus moves focus one step along the navigation graph. At an edge
// the focus stays where it is.
func (m *Model) MoveFocus(dir Direction) {
	if next, ok := m.nav[m.focused][dir]; ok {
		m.focused = next
	}
}

// FocusWidget directly sets focus to the widget with the given id. Unknown
// ids leave focus unchanged.
func (m *Model) FocusWidget(id string) {
	if _, ok := m.byID[id]; ok {
		m.focused = id
	}
}

// ToggleExpand flips the focused widget between its grid tile and
// fullscreen. Expanding while another widget is expanded switches the
// expansion over.
func (m *Model) ToggleExpand() {
	if m.focused == "" {
		return
	}
	if m.expanded == m.focused {
		m.expanded = ""
	} else {
		m.expanded = m.focused
	}
}
