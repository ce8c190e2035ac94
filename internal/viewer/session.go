package viewer

import (
	"errors"
	"image"

	"github.com/ArikGuitarik/album-art-collage/internal/collage"
	"github.com/ArikGuitarik/album-art-collage/internal/grid"
	"github.com/ArikGuitarik/album-art-collage/internal/imaging"
	"go.uber.org/zap"
)

// DefaultHighlightWidth is the outline thickness of the selected tile.
const DefaultHighlightWidth = 4

// Session binds a collage to a selection and renders frames for display.
type Session struct {
	collage   *collage.Collage[uint8]
	sel       Selection
	highlight [3]uint8
	width     int
	log       *zap.Logger
}

// NewSession returns a session over c that outlines the selected tile in
// highlight.
func NewSession(c *collage.Collage[uint8], highlight [3]uint8, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{collage: c, highlight: highlight, width: DefaultHighlightWidth, log: log}
}

// Collage returns the underlying collage.
func (s *Session) Collage() *collage.Collage[uint8] {
	return s.collage
}

// Selected returns the selected cell, if any.
func (s *Session) Selected() (Cell, bool) {
	return s.sel.Selected()
}

// Click handles a click at canvas pixel (x, y) and reports whether the
// displayed frame changed. Clicks outside the canvas are ignored.
func (s *Session) Click(x, y int) (bool, error) {
	row, col, err := s.collage.GridCoordinates(x, y)
	if errors.Is(err, grid.ErrOutOfBounds) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = s.sel.Click(Cell{row, col}, func(a, b Cell) error {
		s.log.Debug("swapping tiles",
			zap.Int("row1", a.Row), zap.Int("col1", a.Col),
			zap.Int("row2", b.Row), zap.Int("col2", b.Col))
		return s.collage.Grid().Swap(a.Row, a.Col, b.Row, b.Col)
	})
	return true, err
}

// Render renders the collage without any selection outline.
func (s *Session) Render() (*imaging.Discrete, error) {
	return s.collage.Render()
}

// Frame renders the collage with the selected tile outlined.
func (s *Session) Frame() (*image.NRGBA, error) {
	img, err := s.collage.Render()
	if err != nil {
		return nil, err
	}
	if cell, ok := s.sel.Selected(); ok {
		x, y, err := s.collage.TopLeftPixel(cell.Row, cell.Col)
		if err != nil {
			return nil, err
		}
		th, tw := s.collage.TileShape()
		imaging.StrokeRect(img, x, y, tw, th, s.width, s.highlight)
	}
	return img.ToNRGBA(), nil
}
