package collage

import (
	"errors"
	"testing"

	"github.com/ArikGuitarik/album-art-collage/internal/grid"
	"github.com/ArikGuitarik/album-art-collage/internal/imaging"
)

// uniformTiles returns one h x w discrete tile per value, each filled with
// that value on all channels.
func uniformTiles(t *testing.T, h, w int, values ...uint8) []*imaging.Discrete {
	t.Helper()
	tiles := make([]*imaging.Discrete, len(values))
	for i, v := range values {
		img, err := imaging.Uniform(h, w, [3]uint8{v, v, v})
		if err != nil {
			t.Fatalf("Uniform failed: %v", err)
		}
		tiles[i] = img
	}
	return tiles
}

// rampCollage is the 2x2 collage of uniform tiles 0, 25, 50, 75 on a
// 128x256 canvas.
func rampCollage(t *testing.T) *Collage[uint8] {
	t.Helper()
	g, err := grid.New(uniformTiles(t, 30, 40, 0, 25, 50, 75))
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	c, err := New(g, 128, 256)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func pixel(t *testing.T, img *imaging.Discrete, y, x int) uint8 {
	t.Helper()
	px, err := img.At(y, x)
	if err != nil {
		t.Fatalf("At(%d,%d) failed: %v", y, x, err)
	}
	return px[0]
}

func TestNew_TileShape(t *testing.T) {
	c := rampCollage(t)

	th, tw := c.TileShape()
	if th != 64 || tw != 128 {
		t.Errorf("TileShape: got %dx%d, want 64x128", th, tw)
	}
	ch, cw := c.CanvasShape()
	if ch != 128 || cw != 256 {
		t.Errorf("CanvasShape: got %dx%d, want 128x256", ch, cw)
	}

	// Every tile was resized eagerly.
	for _, tile := range c.Grid().Elements() {
		if h, w := tile.Shape(); h != 64 || w != 128 {
			t.Errorf("tile shape: got %dx%d, want 64x128", h, w)
		}
	}
}

func TestNew_Rounding(t *testing.T) {
	tests := []struct {
		name         string
		n            int
		canvasH      int
		canvasW      int
		wantH, wantW int
	}{
		{"exact", 9, 300, 600, 100, 200},
		{"round down", 9, 400, 400, 133, 133},
		{"round up", 9, 401, 402, 134, 134},
		{"half to even", 4, 5, 7, 2, 4},
		{"per axis", 4, 100, 300, 50, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]uint8, tt.n)
			g, _ := grid.New(uniformTiles(t, 10, 10, values...))
			c, err := New(g, tt.canvasH, tt.canvasW)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if h, w := c.TileShape(); h != tt.wantH || w != tt.wantW {
				t.Errorf("TileShape: got %dx%d, want %dx%d", h, w, tt.wantH, tt.wantW)
			}
		})
	}
}

func TestNew_InvalidShape(t *testing.T) {
	empty := grid.NewTruncating([]*imaging.Discrete{})
	if _, err := New(empty, 100, 100); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("empty grid: got %v, want ErrInvalidShape", err)
	}

	g, _ := grid.New(uniformTiles(t, 10, 10, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	if _, err := New(g, 1, 100); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("tiny canvas: got %v, want ErrInvalidShape", err)
	}
}

func TestRender(t *testing.T) {
	c := rampCollage(t)

	canvas, err := c.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	h, w := canvas.Shape()
	if h != 128 || w != 256 {
		t.Fatalf("canvas shape: got %dx%d, want 256x128", w, h)
	}

	tests := []struct {
		y, x int
		want uint8
	}{
		{28, 208, 25},
		{90, 20, 50},
		{0, 0, 0},
		{63, 127, 0},
		{63, 128, 25},
		{64, 127, 50},
		{127, 255, 75},
	}
	for _, tt := range tests {
		if got := pixel(t, canvas, tt.y, tt.x); got != tt.want {
			t.Errorf("pixel (y=%d,x=%d): got %d, want %d", tt.y, tt.x, got, tt.want)
		}
	}
}

func TestRender_AfterSwap(t *testing.T) {
	c := rampCollage(t)

	if err := c.Grid().Swap(0, 1, 1, 0); err != nil {
		t.Fatalf("Swap failed: %v", err)
	}
	canvas, err := c.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := pixel(t, canvas, 28, 208); got != 50 {
		t.Errorf("after swap (0,1): got %d, want 50", got)
	}
	if got := pixel(t, canvas, 90, 20); got != 25 {
		t.Errorf("after swap (1,0): got %d, want 25", got)
	}

	// Rendering twice gives the same canvas.
	again, _ := c.Render()
	for i, v := range canvas.Pixels() {
		if again.Pixels()[i] != v {
			t.Fatalf("second render differs at sample %d", i)
		}
	}
}

func TestRender_ResizesReplacedTile(t *testing.T) {
	c := rampCollage(t)

	fresh, _ := imaging.Uniform(7, 9, [3]uint8{200, 200, 200})
	if err := c.Grid().Set(1, 1, fresh); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	canvas, err := c.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := pixel(t, canvas, 100, 200); got != 200 {
		t.Errorf("replaced tile: got %d, want 200", got)
	}
	if h, w := fresh.Shape(); h != 64 || w != 128 {
		t.Errorf("replaced tile not resized: %dx%d", w, h)
	}
}

func TestRender_Normalized(t *testing.T) {
	tiles := make([]*imaging.Normalized, 4)
	for i, v := range []float64{0, 0.25, 0.5, 0.75} {
		tiles[i], _ = imaging.Uniform(20, 20, [3]float64{v, v, v})
	}
	g, _ := grid.New(tiles)
	c, err := New(g, 40, 40)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	canvas, err := c.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	px, _ := canvas.At(30, 5)
	if px[0] < 0.4999 || px[0] > 0.5001 {
		t.Errorf("pixel (30,5): got %v, want 0.5", px[0])
	}
}

func TestSetCanvasShape(t *testing.T) {
	c := rampCollage(t)

	if err := c.SetCanvasShape(50, 50); err != nil {
		t.Fatalf("SetCanvasShape failed: %v", err)
	}
	if h, w := c.TileShape(); h != 25 || w != 25 {
		t.Errorf("TileShape: got %dx%d, want 25x25", h, w)
	}
	for _, tile := range c.Grid().Elements() {
		if h, w := tile.Shape(); h != 25 || w != 25 {
			t.Errorf("tile not re-resized: %dx%d", w, h)
		}
	}
	canvas, _ := c.Render()
	if h, w := canvas.Shape(); h != 50 || w != 50 {
		t.Errorf("canvas: got %dx%d, want 50x50", w, h)
	}

	if err := c.SetCanvasShape(0, 50); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("zero canvas: got %v, want ErrInvalidShape", err)
	}
	if h, w := c.TileShape(); h != 25 || w != 25 {
		t.Errorf("failed reconfiguration changed the tile shape to %dx%d", w, h)
	}
}

func TestCoordinateMapping_Inverse(t *testing.T) {
	values := make([]uint8, 16)
	g, _ := grid.New(uniformTiles(t, 5, 5, values...))
	c, err := New(g, 300, 500)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for row, col := range g.Coordinates() {
		x, y, err := c.TopLeftPixel(row, col)
		if err != nil {
			t.Fatalf("TopLeftPixel(%d,%d) failed: %v", row, col, err)
		}
		r, cc, err := c.GridCoordinates(x, y)
		if err != nil {
			t.Fatalf("GridCoordinates(%d,%d) failed: %v", x, y, err)
		}
		if r != row || cc != col {
			t.Errorf("GridCoordinates(TopLeftPixel(%d,%d)) = (%d,%d)", row, col, r, cc)
		}
	}
}

func TestTopLeftPixel(t *testing.T) {
	c := rampCollage(t)

	x, y, err := c.TopLeftPixel(1, 1)
	if err != nil {
		t.Fatalf("TopLeftPixel failed: %v", err)
	}
	if x != 128 || y != 64 {
		t.Errorf("TopLeftPixel(1,1): got (%d,%d), want (128,64)", x, y)
	}
	x, y, _ = c.TopLeftPixel(0, 1)
	if x != 128 || y != 0 {
		t.Errorf("TopLeftPixel(0,1): got (%d,%d), want (128,0)", x, y)
	}

	for _, rc := range [][2]int{{2, 0}, {0, 2}, {-1, 0}, {0, -1}} {
		if _, _, err := c.TopLeftPixel(rc[0], rc[1]); !errors.Is(err, grid.ErrOutOfBounds) {
			t.Errorf("TopLeftPixel(%d,%d): got %v, want ErrOutOfBounds", rc[0], rc[1], err)
		}
	}
}

func TestGridCoordinates(t *testing.T) {
	c := rampCollage(t)

	tests := []struct {
		x, y             int
		wantRow, wantCol int
	}{
		{0, 0, 0, 0},
		{208, 28, 0, 1},
		{20, 90, 1, 0},
		{255, 127, 1, 1},
		{127, 63, 0, 0},
		{128, 64, 1, 1},
	}
	for _, tt := range tests {
		row, col, err := c.GridCoordinates(tt.x, tt.y)
		if err != nil {
			t.Fatalf("GridCoordinates(%d,%d) failed: %v", tt.x, tt.y, err)
		}
		if row != tt.wantRow || col != tt.wantCol {
			t.Errorf("GridCoordinates(%d,%d): got (%d,%d), want (%d,%d)",
				tt.x, tt.y, row, col, tt.wantRow, tt.wantCol)
		}
	}

	outside := [][2]int{{-1, 0}, {0, -1}, {-127, -63}, {256, 0}, {0, 128}, {1000, 1000}}
	for _, p := range outside {
		if _, _, err := c.GridCoordinates(p[0], p[1]); !errors.Is(err, grid.ErrOutOfBounds) {
			t.Errorf("GridCoordinates(%d,%d): got %v, want ErrOutOfBounds", p[0], p[1], err)
		}
	}
}

func TestSwapPixels(t *testing.T) {
	c := rampCollage(t)
	before := append([]*imaging.Discrete(nil), c.Grid().Elements()...)

	if err := c.SwapPixels(10, 10, 300, 10); !errors.Is(err, grid.ErrOutOfBounds) {
		t.Fatalf("SwapPixels outside: got %v, want ErrOutOfBounds", err)
	}
	for i, tile := range c.Grid().Elements() {
		if tile != before[i] {
			t.Fatalf("failed SwapPixels changed cell %d", i)
		}
	}

	if err := c.SwapPixels(10, 10, 200, 100); err != nil {
		t.Fatalf("SwapPixels failed: %v", err)
	}
	if got, _ := c.Grid().Get(0, 0); got != before[3] {
		t.Error("cell (0,0) should hold the former (1,1) tile")
	}
	if got, _ := c.Grid().Get(1, 1); got != before[0] {
		t.Error("cell (1,1) should hold the former (0,0) tile")
	}
}

func TestNew_SharedTile(t *testing.T) {
	tile, _ := imaging.Uniform(10, 10, [3]uint8{7, 7, 7})
	g, _ := grid.New([]*imaging.Discrete{tile, tile, tile, tile})
	c, err := New(g, 40, 40)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	canvas, err := c.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := pixel(t, canvas, 39, 39); got != 7 {
		t.Errorf("pixel: got %d, want 7", got)
	}
}
