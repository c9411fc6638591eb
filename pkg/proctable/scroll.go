package proctable

// ScrollDirection is the user's most recent scroll direction. The renderer
// uses it to decide which end of the visible window stays pinned when the
// list length changes underneath the selection.
type ScrollDirection int

const (
	ScrollDown ScrollDirection = iota
	ScrollUp
)

// Scroll is the selection state of one process table: the selected index,
// the position before the last jump, and the travel direction.
type Scroll struct {
	Position  int
	Previous  int
	Direction ScrollDirection
}

// Clamp enforces the position invariant against a list of the given length:
// 0 <= Position < length when non-empty, 0 when empty. When the list shrank
// below the position, the selection snaps to the last row, the saved
// previous position is dropped, and the direction resets to down.
func (s *Scroll) Clamp(length int) {
	if s.Position < 0 {
		s.Position = 0
	}
	if length <= 0 {
		if s.Position != 0 {
			s.reset(0)
		}
		return
	}
	if s.Position >= length {
		s.reset(length - 1)
	}
}

func (s *Scroll) reset(pos int) {
	s.Position = pos
	s.Previous = 0
	s.Direction = ScrollDown
}

// Up moves the selection one row up, saturating at the top.
func (s *Scroll) Up() {
	s.Previous = s.Position
	s.Direction = ScrollUp
	if s.Position > 0 {
		s.Position--
	}
}

// Down moves the selection one row down, saturating at length-1.
func (s *Scroll) Down(length int) {
	s.Previous = s.Position
	s.Direction = ScrollDown
	if s.Position < length-1 {
		s.Position++
	}
}

// Home jumps to the first row.
func (s *Scroll) Home() {
	s.Previous = s.Position
	s.Direction = ScrollUp
	s.Position = 0
}

// End jumps to the last row.
func (s *Scroll) End(length int) {
	s.Previous = s.Position
	s.Direction = ScrollDown
	if length > 0 {
		s.Position = length - 1
	} else {
		s.Position = 0
	}
}

// Page moves the selection by delta rows, clamping to the valid range.
func (s *Scroll) Page(delta, length int) {
	s.Previous = s.Position
	if delta < 0 {
		s.Direction = ScrollUp
	} else {
		s.Direction = ScrollDown
	}
	s.Position += delta
	if s.Position < 0 {
		s.Position = 0
	}
	if length > 0 && s.Position >= length {
		s.Position = length - 1
	}
	if length <= 0 {
		s.Position = 0
	}
}
