package imaging

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a hex color string like "#FF0000" or "#f00" into 8-bit RGB.
func ParseColor(hex string) ([3]uint8, error) {
	if len(hex) == 0 {
		return [3]uint8{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return [3]uint8{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return [3]uint8{r, g, b}, nil
}

// ColorSample converts an 8-bit RGB color into the sample domain of S.
func ColorSample[S Sample](rgb [3]uint8) [3]S {
	s := fromBytes[S](rgb[:])
	return [3]S{s[0], s[1], s[2]}
}

// StrokeRect draws the outline of the rectangle with top-left corner (x, y)
// and size w x h, with lines thickness pixels wide drawn inside the rectangle.
// Pixels outside the image are skipped.
func StrokeRect[S Sample](img *Image[S], x, y, w, h, thickness int, rgb [3]S) {
	if w <= 0 || h <= 0 || thickness <= 0 {
		return
	}
	thickness = min(thickness, (w+1)/2, (h+1)/2)

	// Top and bottom bands
	fillRect(img, x, y, w, thickness, rgb)
	fillRect(img, x, y+h-thickness, w, thickness, rgb)

	// Left and right bands
	fillRect(img, x, y, thickness, h, rgb)
	fillRect(img, x+w-thickness, y, thickness, h, rgb)
}

// DrawGridLines draws separator lines between cells of a side x side grid
// whose cells are tileW x tileH pixels. Lines are centred on the cell borders
// and the outer edge of the canvas is left untouched.
func DrawGridLines[S Sample](img *Image[S], side, tileH, tileW, thickness int, rgb [3]S) {
	if thickness <= 0 {
		return
	}
	half := thickness / 2

	// Vertical lines
	for col := 1; col < side; col++ {
		fillRect(img, col*tileW-half, 0, thickness, img.height, rgb)
	}

	// Horizontal lines
	for row := 1; row < side; row++ {
		fillRect(img, 0, row*tileH-half, img.width, thickness, rgb)
	}
}

// fillRect paints a rectangle clipped to the image bounds.
func fillRect[S Sample](img *Image[S], x, y, w, h int, rgb [3]S) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, img.width), min(y+h, img.height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			i := (py*img.width + px) * Channels
			img.pix[i], img.pix[i+1], img.pix[i+2] = rgb[0], rgb[1], rgb[2]
		}
	}
}
