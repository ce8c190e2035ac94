// Package collage composites a square grid of images into one canvas and maps
// between canvas pixels and grid cells.
//
// The grid is shared: a UI may swap cells at any time between renders, and
// Render always reflects the current grid contents. Collage itself keeps no
// rendered canvas.
package collage

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/ArikGuitarik/album-art-collage/internal/grid"
	"github.com/ArikGuitarik/album-art-collage/internal/imaging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidShape is returned when no positive tile shape can be derived from
// the grid and the desired canvas shape.
var ErrInvalidShape = errors.New("collage: invalid shape")

// Collage renders a SquareGrid of equally sized tiles.
//
// Tiles are resized in place to the tile shape when the collage is created or
// reconfigured, so Render only copies pixels.
type Collage[S imaging.Sample] struct {
	grid  *grid.SquareGrid[*imaging.Image[S]]
	tileH int
	tileW int
	log   *zap.Logger
}

// Option configures a Collage.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// New creates a collage that renders g onto a canvas of roughly
// canvasHeight x canvasWidth pixels.
//
// The tile shape is round(canvasHeight/side) x round(canvasWidth/side), so the
// realized canvas is side*tileH x side*tileW and may differ slightly from the
// requested one. Every tile in g is resized to the tile shape before New
// returns.
//
// # Errors
//
//   - ErrInvalidShape if the grid is empty or a tile dimension rounds to zero
//   - any error from resizing a tile
func New[S imaging.Sample](g *grid.SquareGrid[*imaging.Image[S]], canvasHeight, canvasWidth int, opts ...Option) (*Collage[S], error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Collage[S]{grid: g, log: o.log}
	if err := c.SetCanvasShape(canvasHeight, canvasWidth); err != nil {
		return nil, err
	}
	return c, nil
}

// SetCanvasShape derives a new tile shape from the desired canvas shape and
// resizes every tile to it. On error the previous tile shape is kept.
func (c *Collage[S]) SetCanvasShape(canvasHeight, canvasWidth int) error {
	tileH, tileW, err := tileShape(c.grid.Side(), canvasHeight, canvasWidth)
	if err != nil {
		return err
	}

	c.log.Debug("resizing tiles",
		zap.Int("tiles", c.grid.Len()),
		zap.Int("tile_height", tileH),
		zap.Int("tile_width", tileW))

	if err := resizeAll(c.grid.Elements(), tileH, tileW); err != nil {
		return err
	}
	c.tileH, c.tileW = tileH, tileW
	return nil
}

// Grid returns the shared grid of tiles.
func (c *Collage[S]) Grid() *grid.SquareGrid[*imaging.Image[S]] {
	return c.grid
}

// TileShape returns (height, width) of one tile.
func (c *Collage[S]) TileShape() (height, width int) {
	return c.tileH, c.tileW
}

// CanvasShape returns (height, width) of the rendered canvas.
func (c *Collage[S]) CanvasShape() (height, width int) {
	side := c.grid.Side()
	return side * c.tileH, side * c.tileW
}

// Render composites the current grid contents into a new canvas image.
//
// Cell (row, col) is placed with its top-left corner at
// x = col*tileWidth, y = row*tileHeight. A tile whose shape no longer matches
// the tile shape, e.g. after Set or ReloadOriginal, is resized in place first.
func (c *Collage[S]) Render() (*imaging.Image[S], error) {
	if err := resizeStale(c.grid.Elements(), c.tileH, c.tileW); err != nil {
		return nil, err
	}

	canvasH, canvasW := c.CanvasShape()
	canvas := make([]S, canvasH*canvasW*imaging.Channels)
	rowLen := c.tileW * imaging.Channels
	canvasRowLen := canvasW * imaging.Channels

	for row, col := range c.grid.Coordinates() {
		tile, err := c.grid.Get(row, col)
		if err != nil {
			return nil, err
		}
		x, y, err := c.TopLeftPixel(row, col)
		if err != nil {
			return nil, err
		}
		src := tile.Pixels()
		for ty := 0; ty < c.tileH; ty++ {
			dst := (y+ty)*canvasRowLen + x*imaging.Channels
			copy(canvas[dst:dst+rowLen], src[ty*rowLen:(ty+1)*rowLen])
		}
	}

	return imaging.New(canvasH, canvasW, imaging.Channels, canvas)
}

// TopLeftPixel returns the canvas pixel (x, y) of the top-left corner of cell
// (row, col).
func (c *Collage[S]) TopLeftPixel(row, col int) (x, y int, err error) {
	if _, err := c.grid.Index(row, col); err != nil {
		return 0, 0, err
	}
	return col * c.tileW, row * c.tileH, nil
}

// GridCoordinates returns the cell (row, col) containing canvas pixel (x, y).
//
// Pixels left of or above the canvas, and pixels at or beyond its extent, are
// reported as grid.ErrOutOfBounds.
func (c *Collage[S]) GridCoordinates(x, y int) (row, col int, err error) {
	if x < 0 || y < 0 {
		return 0, 0, fmt.Errorf("%w: pixel (%d,%d) outside canvas", grid.ErrOutOfBounds, x, y)
	}
	row, col = y/c.tileH, x/c.tileW
	if _, err := c.grid.Index(row, col); err != nil {
		return 0, 0, fmt.Errorf("pixel (%d,%d): %w", x, y, err)
	}
	return row, col, nil
}

// SwapPixels swaps the two cells containing canvas pixels (x1, y1) and
// (x2, y2). Nothing changes if either pixel lies outside the canvas.
func (c *Collage[S]) SwapPixels(x1, y1, x2, y2 int) error {
	r1, c1, err := c.GridCoordinates(x1, y1)
	if err != nil {
		return err
	}
	r2, c2, err := c.GridCoordinates(x2, y2)
	if err != nil {
		return err
	}
	return c.grid.Swap(r1, c1, r2, c2)
}

// tileShape rounds half to even.
func tileShape(side, canvasHeight, canvasWidth int) (tileH, tileW int, err error) {
	if side == 0 {
		return 0, 0, fmt.Errorf("%w: empty grid", ErrInvalidShape)
	}
	tileH = int(math.RoundToEven(float64(canvasHeight) / float64(side)))
	tileW = int(math.RoundToEven(float64(canvasWidth) / float64(side)))
	if tileH <= 0 || tileW <= 0 {
		return 0, 0, fmt.Errorf("%w: canvas %dx%d too small for a %dx%d grid",
			ErrInvalidShape, canvasWidth, canvasHeight, side, side)
	}
	return tileH, tileW, nil
}

// resizeAll resizes every distinct tile in place and returns when all are
// done. A tile placed in several cells is resized once.
func resizeAll[S imaging.Sample](tiles []*imaging.Image[S], h, w int) error {
	seen := make(map[*imaging.Image[S]]bool, len(tiles))
	for i, tile := range tiles {
		if tile == nil {
			return fmt.Errorf("%w: tile %d is nil", ErrInvalidShape, i)
		}
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, tile := range tiles {
		if seen[tile] {
			continue
		}
		seen[tile] = true
		eg.Go(func() error {
			return tile.Resize(h, w)
		})
	}
	return eg.Wait()
}

func resizeStale[S imaging.Sample](tiles []*imaging.Image[S], h, w int) error {
	var stale []*imaging.Image[S]
	for i, tile := range tiles {
		if tile == nil {
			return fmt.Errorf("%w: tile %d is nil", ErrInvalidShape, i)
		}
		if th, tw := tile.Shape(); th != h || tw != w {
			stale = append(stale, tile)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	return resizeAll(stale, h, w)
}
