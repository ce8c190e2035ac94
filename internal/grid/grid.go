// Package grid provides SquareGrid, a generic container that lays a flat list
// of elements out as a square of rows and columns.
//
// # Coordinate System
//
// Grids are row-major: the element at (row, col) is stored at index
// row*side + col. Both row and col are 0-based and must lie in [0, side).
//
// # Thread Safety
//
// SquareGrid is not synchronized. A grid shared between a compositor and a UI
// must be confined to a single goroutine, or guarded by the caller.
package grid

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

var (
	// ErrInvalidShape is returned when the element count is not a perfect square.
	ErrInvalidShape = errors.New("grid: invalid shape")

	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinates out of bounds")
)

// SquareGrid holds side*side elements addressed by (row, col).
//
// The element slice is owned by the grid once passed to New; callers must not
// append to it. Elements are only ever replaced in place via Set and Swap, so
// the shape never changes after construction.
type SquareGrid[T any] struct {
	elements []T
	side     int
}

// New creates a grid from elements, whose length must be a perfect square.
//
// An empty slice yields a valid grid with side length 0.
//
// # Errors
//
//   - ErrInvalidShape if len(elements) is not a perfect square
func New[T any](elements []T) (*SquareGrid[T], error) {
	side := isqrt(len(elements))
	if side*side != len(elements) {
		return nil, fmt.Errorf("%w: %d elements is not a square number", ErrInvalidShape, len(elements))
	}
	return &SquareGrid[T]{elements: elements, side: side}, nil
}

// NewTruncating creates the largest square grid that fits elements, keeping the
// first floor(sqrt(n))² elements in their original order and dropping the rest.
func NewTruncating[T any](elements []T) *SquareGrid[T] {
	side := isqrt(len(elements))
	kept := make([]T, side*side)
	copy(kept, elements)
	return &SquareGrid[T]{elements: kept, side: side}
}

// Shape returns (rows, cols), which are always equal.
func (g *SquareGrid[T]) Shape() (rows, cols int) {
	return g.side, g.side
}

// Side returns the side length.
func (g *SquareGrid[T]) Side() int {
	return g.side
}

// Len returns the number of cells.
func (g *SquareGrid[T]) Len() int {
	return len(g.elements)
}

// Index converts (row, col) to the position in Elements.
func (g *SquareGrid[T]) Index(row, col int) (int, error) {
	if !g.contains(row, col) {
		return 0, fmt.Errorf("%w: (%d,%d) for grid of shape (%d,%d)", ErrOutOfBounds, row, col, g.side, g.side)
	}
	return row*g.side + col, nil
}

// Coordinate converts a position in Elements back to (row, col).
func (g *SquareGrid[T]) Coordinate(index int) (row, col int, err error) {
	if index < 0 || index >= len(g.elements) {
		return 0, 0, fmt.Errorf("%w: index %d for grid of %d cells", ErrOutOfBounds, index, len(g.elements))
	}
	return index / g.side, index % g.side, nil
}

// Get returns the element at (row, col).
func (g *SquareGrid[T]) Get(row, col int) (T, error) {
	idx, err := g.Index(row, col)
	if err != nil {
		var zero T
		return zero, err
	}
	return g.elements[idx], nil
}

// Set replaces the element at (row, col).
func (g *SquareGrid[T]) Set(row, col int, v T) error {
	idx, err := g.Index(row, col)
	if err != nil {
		return err
	}
	g.elements[idx] = v
	return nil
}

// Swap exchanges the elements at (row1, col1) and (row2, col2).
//
// Both coordinates are validated before anything is modified, so a failed
// swap leaves the grid untouched. Swapping a cell with itself is a no-op.
func (g *SquareGrid[T]) Swap(row1, col1, row2, col2 int) error {
	i, err := g.Index(row1, col1)
	if err != nil {
		return err
	}
	j, err := g.Index(row2, col2)
	if err != nil {
		return err
	}
	if i != j {
		g.elements[i], g.elements[j] = g.elements[j], g.elements[i]
	}
	return nil
}

// Coordinates yields every (row, col) pair in row-major order, matching the
// order of Elements. The sequence may be ranged over any number of times.
func (g *SquareGrid[T]) Coordinates() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for row := 0; row < g.side; row++ {
			for col := 0; col < g.side; col++ {
				if !yield(row, col) {
					return
				}
			}
		}
	}
}

// Elements returns the underlying slice in row-major order. It is shared with
// the grid, which makes it suitable for bulk in-place operations on every cell.
func (g *SquareGrid[T]) Elements() []T {
	return g.elements
}

func (g *SquareGrid[T]) contains(row, col int) bool {
	return row >= 0 && row < g.side && col >= 0 && col < g.side
}

// isqrt returns floor(sqrt(n)) for n >= 0, correcting float rounding at the edges.
func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
