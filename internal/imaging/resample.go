package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// boxKernel averages every source sample under the destination pixel. When
// downscaling, x/image/draw widens the support by the scale factor, which
// turns it into an area filter.
var boxKernel = &draw.Kernel{
	Support: 0.5,
	At: func(t float64) float64 {
		return 1
	},
}

// resample converts a (h, w, 3) buffer into a new (th, tw, 3) buffer in the
// same value domain. Callers guarantee positive target dimensions.
func resample[S Sample](pix []S, h, w, th, tw int) []S {
	if th == h && tw == w {
		return append([]S(nil), pix...)
	}
	switch p := any(pix).(type) {
	case []uint8:
		return any(resampleDiscrete(p, h, w, th, tw)).([]S)
	case []float64:
		return any(resampleNormalized(p, h, w, th, tw)).([]S)
	}
	panic("imaging: unsupported sample type")
}

// resampleDiscrete uses a box filter on 8-bit NRGBA. The library rounds each
// output sample to the nearest integer.
func resampleDiscrete(rgb []uint8, h, w, th, tw int) []uint8 {
	resized := imaging.Resize(rgbToNRGBA(rgb, h, w), tw, th, imaging.Box)

	out := make([]uint8, 0, th*tw*Channels)
	for y := 0; y < th; y++ {
		row := resized.Pix[y*resized.Stride : y*resized.Stride+tw*4]
		for x := 0; x < tw; x++ {
			out = append(out, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return out
}

// resampleNormalized goes through 16-bit RGBA64 buffers so that float samples
// keep roughly four decimal digits through the scaler.
func resampleNormalized(pix []float64, h, w, th, tw int) []float64 {
	src := image.NewRGBA64(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * Channels
			src.SetRGBA64(x, y, color.RGBA64{
				R: to16(pix[i]),
				G: to16(pix[i+1]),
				B: to16(pix[i+2]),
				A: 0xffff,
			})
		}
	}

	dst := image.NewRGBA64(image.Rect(0, 0, tw, th))
	boxKernel.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := make([]float64, 0, th*tw*Channels)
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			c := dst.RGBA64At(x, y)
			out = append(out, float64(c.R)/0xffff, float64(c.G)/0xffff, float64(c.B)/0xffff)
		}
	}
	return out
}

func to16(v float64) uint16 {
	return uint16(v*0xffff + 0.5)
}
