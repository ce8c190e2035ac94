package imaging

import (
	"errors"
	"fmt"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

var (
	// ErrNotFound is returned when an image file does not exist.
	ErrNotFound = errors.New("imaging: file not found")

	// ErrDecode is returned when a file exists but cannot be decoded.
	ErrDecode = errors.New("imaging: cannot decode image")

	// ErrNotFileBacked is returned by ReloadOriginal on an image that was not
	// created by Load.
	ErrNotFileBacked = errors.New("imaging: image has no source file")
)

// Load decodes an image file into a discrete Image that remembers its path.
//
// Parameters:
//   - path: Absolute or relative file path. Supported formats are PNG, JPEG,
//     GIF, BMP, TIFF and WebP. JPEG EXIF orientation is applied.
//
// Returns:
//   - *Discrete: The decoded pixels at full resolution, alpha dropped.
//   - error: Non-nil if the file is missing or cannot be decoded.
//
// # Errors
//
//   - ErrNotFound if the file does not exist
//   - ErrDecode if the file cannot be read or is not a supported image
func Load(path string) (*Discrete, error) {
	img, err := decodeFile[uint8](path)
	if err != nil {
		return nil, err
	}
	img.source = path
	return img, nil
}

// Source returns the path the image was loaded from, or "" if it is not
// file-backed.
func (img *Image[S]) Source() string {
	return img.source
}

// ReloadOriginal re-decodes the source file and replaces the current pixels,
// restoring full resolution regardless of prior resizing. Normalized images
// are converted from the decoded 8-bit samples.
//
// On failure the image keeps its current pixels.
//
// # Errors
//
//   - ErrNotFileBacked if the image has no source path
//   - ErrNotFound, ErrDecode as for Load
func (img *Image[S]) ReloadOriginal() error {
	if img.source == "" {
		return ErrNotFileBacked
	}
	fresh, err := decodeFile[S](img.source)
	if err != nil {
		return err
	}
	img.height, img.width, img.pix = fresh.height, fresh.width, fresh.pix
	return nil
}

func decodeFile[S Sample](path string) (*Image[S], error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	decoded, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	img := FromImage[S](decoded)
	if img.height == 0 || img.width == 0 {
		return nil, fmt.Errorf("%w: %s: empty image", ErrDecode, path)
	}
	return img, nil
}
