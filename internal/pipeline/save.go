package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ArikGuitarik/album-art-collage/internal/imaging"
	"github.com/anthonynsimon/bild/imgio"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 90

// Save encodes img to path. The format follows the extension: .png, .jpg or
// .jpeg (at quality, 1-100; 0 means DefaultQuality) and .bmp.
func Save[S imaging.Sample](path string, img *imaging.Image[S], quality int) error {
	enc, err := encoderFor(path, quality)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img.ToNRGBA(), enc); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func encoderFor(path string, quality int) (imgio.Encoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		if quality <= 0 {
			quality = DefaultQuality
		}
		return imgio.JPEGEncoder(min(quality, 100)), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q for %s (want .png, .jpg, .jpeg or .bmp)", ext, path)
	}
}
