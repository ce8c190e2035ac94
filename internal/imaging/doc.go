// Package imaging provides the RGB pixel buffer used as a collage tile and as
// the rendered canvas.
//
// An Image holds samples of shape (height, width, 3) in one of two value
// domains, selected by the type parameter:
//   - Discrete (uint8): 8-bit samples in [0, 255]
//   - Normalized (float64): samples in [0, 1]
//
// Construction validates the shape and the domain and never clamps. Converting
// between domains is explicit (ToNormalized, ToDiscrete).
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X increasing
// rightward and Y increasing downward. Methods taking both take (y, x), matching
// the (height, width) order of Shape.
//
// # Resampling
//
// Resize, Resized and PixelsAt use an area (box) filter, so downscaling is
// anti-aliased and uniform regions keep their exact value. Discrete images are
// resampled with github.com/disintegration/imaging and rounded to the nearest
// integer; normalized images go through golang.org/x/image/draw on 16-bit
// buffers.
//
// # File-Backed Images
//
// Load remembers the source path. After an in-place Resize has discarded the
// original pixels, ReloadOriginal decodes the file again at full resolution.
//
// # Thread Safety
//
// Images are not synchronized. Resizing different images concurrently is safe;
// concurrent access to the same image must be serialized by the caller.
//
// # Error Handling
//
// Errors wrap one of the package sentinels and can be tested with errors.Is:
//   - ErrInvalidShape, ErrInvalidRange for rejected buffers
//   - ErrOutOfBounds for pixel coordinates outside the image
//   - ErrNotFound, ErrDecode, ErrNotFileBacked for file-backed images
package imaging
