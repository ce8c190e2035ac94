// Package viewer holds the point-and-click rearrangement logic of the
// collage viewer, independent of any windowing library.
//
// Clicking a tile selects it. Clicking a second tile swaps the two and clears
// the selection. Clicking the selected tile again clears the selection.
package viewer

// Cell addresses one grid cell.
type Cell struct {
	Row, Col int
}

// Selection tracks at most one selected cell.
//
// The zero value has nothing selected.
type Selection struct {
	cell   Cell
	active bool
}

// Selected returns the selected cell, if any.
func (s *Selection) Selected() (Cell, bool) {
	return s.cell, s.active
}

// Clear drops the selection.
func (s *Selection) Clear() {
	s.active = false
}

// Click applies a click on c. When a different cell is already selected,
// swap is called with the selected cell and c, and the selection is cleared
// whether or not swap succeeds.
func (s *Selection) Click(c Cell, swap func(a, b Cell) error) error {
	if !s.active {
		s.cell, s.active = c, true
		return nil
	}
	prev := s.cell
	s.active = false
	if prev == c {
		return nil
	}
	return swap(prev, c)
}
