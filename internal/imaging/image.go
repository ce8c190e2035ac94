package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Channels is the number of samples per pixel. Images are always RGB.
const Channels = 3

var (
	// ErrInvalidShape is returned for a wrong channel count, non-positive
	// dimensions, or a sample buffer whose length does not match the shape.
	ErrInvalidShape = errors.New("imaging: invalid shape")

	// ErrInvalidRange is returned when a sample lies outside its value domain.
	ErrInvalidRange = errors.New("imaging: sample out of range")

	// ErrOutOfBounds is returned when a pixel coordinate lies outside the image.
	ErrOutOfBounds = errors.New("imaging: coordinates out of bounds")
)

// Sample is the per-channel value type of an Image.
//
// The two admissible domains are:
//   - uint8: discrete samples in [0, 255]
//   - float64: normalized samples in [0, 1]
//
// The domain is fixed by the type parameter, so a single collage can never mix
// discrete and normalized tiles.
type Sample interface {
	uint8 | float64
}

// Image is an RGB pixel buffer of shape (height, width, 3) stored row-major
// with interleaved channels: the sample for channel c of pixel (y, x) lives at
// index (y*width+x)*3 + c.
//
// An Image may optionally remember the file it was decoded from (see Load), in
// which case ReloadOriginal can restore the full-resolution pixels after a
// destructive Resize.
type Image[S Sample] struct {
	height int
	width  int
	pix    []S
	source string
}

// Discrete is an Image with 8-bit samples in [0, 255].
type Discrete = Image[uint8]

// Normalized is an Image with float samples in [0, 1].
type Normalized = Image[float64]

// New creates an Image from a (height, width, channels) sample buffer.
//
// The buffer is owned by the Image after the call. No clamping or conversion
// takes place; invalid input is rejected.
//
// # Errors
//
//   - ErrInvalidShape if channels != 3, a dimension is not positive, or
//     len(pix) != height*width*channels
//   - ErrInvalidRange if a normalized sample is NaN or outside [0, 1]
func New[S Sample](height, width, channels int, pix []S) (*Image[S], error) {
	if channels != Channels {
		return nil, fmt.Errorf("%w: image should have shape (height, width, 3), got (%d, %d, %d)",
			ErrInvalidShape, height, width, channels)
	}
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: non-positive dimensions %dx%d", ErrInvalidShape, width, height)
	}
	if len(pix) != height*width*channels {
		return nil, fmt.Errorf("%w: %d samples for shape (%d, %d, %d)",
			ErrInvalidShape, len(pix), height, width, channels)
	}
	if err := validateRange(pix); err != nil {
		return nil, err
	}
	return &Image[S]{height: height, width: width, pix: pix}, nil
}

// NewDiscreteFromInts creates a discrete Image from integer samples, which
// must all lie in [0, 255].
func NewDiscreteFromInts(height, width, channels int, pix []int) (*Discrete, error) {
	samples := make([]uint8, len(pix))
	for i, v := range pix {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: sample %d at index %d outside [0, 255]", ErrInvalidRange, v, i)
		}
		samples[i] = uint8(v)
	}
	return New(height, width, channels, samples)
}

// Uniform creates a height x width Image filled with a single color.
func Uniform[S Sample](height, width int, rgb [3]S) (*Image[S], error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: non-positive dimensions %dx%d", ErrInvalidShape, width, height)
	}
	pix := make([]S, height*width*Channels)
	for i := 0; i < len(pix); i += Channels {
		pix[i], pix[i+1], pix[i+2] = rgb[0], rgb[1], rgb[2]
	}
	return New(height, width, Channels, pix)
}

// FromImage converts a decoded Go image into an Image, dropping alpha.
// Normalized samples are the 8-bit values divided by 255.
func FromImage[S Sample](src image.Image) *Image[S] {
	nrgba := imaging.Clone(src)
	b := nrgba.Bounds()
	h, w := b.Dy(), b.Dx()
	rgb := make([]uint8, 0, h*w*Channels)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w; x++ {
			rgb = append(rgb, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return &Image[S]{height: h, width: w, pix: fromBytes[S](rgb)}
}

// Shape returns (height, width) in pixels.
func (img *Image[S]) Shape() (height, width int) {
	return img.height, img.width
}

// Pixels returns the stored sample buffer without copying.
func (img *Image[S]) Pixels() []S {
	return img.pix
}

// PixelsAt returns a new buffer resampled to (height, width, 3). The image
// itself is not modified.
func (img *Image[S]) PixelsAt(height, width int) ([]S, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: target shape %dx%d", ErrInvalidShape, width, height)
	}
	return resample(img.pix, img.height, img.width, height, width), nil
}

// Resized returns a copy of the image resampled to (height, width). The copy
// keeps the source path, so it can still be reloaded.
func (img *Image[S]) Resized(height, width int) (*Image[S], error) {
	pix, err := img.PixelsAt(height, width)
	if err != nil {
		return nil, err
	}
	return &Image[S]{height: height, width: width, pix: pix, source: img.source}, nil
}

// Resize resamples the image to (height, width) in place. The previous pixels
// are discarded; only ReloadOriginal can bring them back.
func (img *Image[S]) Resize(height, width int) error {
	if height == img.height && width == img.width {
		return nil
	}
	pix, err := img.PixelsAt(height, width)
	if err != nil {
		return err
	}
	img.height, img.width, img.pix = height, width, pix
	return nil
}

// At returns the RGB samples of pixel (y, x).
func (img *Image[S]) At(y, x int) ([3]S, error) {
	if !img.contains(x, y) {
		return [3]S{}, fmt.Errorf("%w: (%d,%d) outside %dx%d image", ErrOutOfBounds, x, y, img.width, img.height)
	}
	i := (y*img.width + x) * Channels
	return [3]S{img.pix[i], img.pix[i+1], img.pix[i+2]}, nil
}

// Set overwrites pixel (y, x).
func (img *Image[S]) Set(y, x int, rgb [3]S) error {
	if !img.contains(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d image", ErrOutOfBounds, x, y, img.width, img.height)
	}
	if err := validateRange(rgb[:]); err != nil {
		return err
	}
	i := (y*img.width + x) * Channels
	img.pix[i], img.pix[i+1], img.pix[i+2] = rgb[0], rgb[1], rgb[2]
	return nil
}

// Clone returns a deep copy.
func (img *Image[S]) Clone() *Image[S] {
	return &Image[S]{
		height: img.height,
		width:  img.width,
		pix:    append([]S(nil), img.pix...),
		source: img.source,
	}
}

// ToNRGBA converts the image into an opaque *image.NRGBA for encoding or display.
func (img *Image[S]) ToNRGBA() *image.NRGBA {
	return rgbToNRGBA(toBytes(img.pix), img.height, img.width)
}

// ToNormalized converts a discrete image to the normalized domain.
func ToNormalized(img *Discrete) *Normalized {
	return &Normalized{height: img.height, width: img.width, pix: fromBytes[float64](img.pix), source: img.source}
}

// ToDiscrete converts a normalized image to the discrete domain, rounding each
// sample to the nearest representable value.
func ToDiscrete(img *Normalized) *Discrete {
	return &Discrete{height: img.height, width: img.width, pix: toBytes(img.pix), source: img.source}
}

func (img *Image[S]) contains(x, y int) bool {
	return x >= 0 && x < img.width && y >= 0 && y < img.height
}

func validateRange[S Sample](pix []S) error {
	p, ok := any(pix).([]float64)
	if !ok {
		return nil
	}
	for i, v := range p {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: sample %g at index %d outside [0, 1]", ErrInvalidRange, v, i)
		}
	}
	return nil
}

// fromBytes converts 8-bit samples into the domain of S.
func fromBytes[S Sample](rgb []uint8) []S {
	out := make([]S, len(rgb))
	switch o := any(out).(type) {
	case []uint8:
		copy(o, rgb)
	case []float64:
		for i, v := range rgb {
			o[i] = float64(v) / 255
		}
	}
	return out
}

// toBytes converts samples of S into fresh 8-bit samples.
func toBytes[S Sample](pix []S) []uint8 {
	out := make([]uint8, len(pix))
	switch p := any(pix).(type) {
	case []uint8:
		copy(out, p)
	case []float64:
		for i, v := range p {
			out[i] = uint8(math.Round(v * 255))
		}
	}
	return out
}

func rgbToNRGBA(rgb []uint8, height, width int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(rgb); i, j = i+Channels, j+4 {
		dst.Pix[j] = rgb[i]
		dst.Pix[j+1] = rgb[i+1]
		dst.Pix[j+2] = rgb[i+2]
		dst.Pix[j+3] = 0xff
	}
	return dst
}
