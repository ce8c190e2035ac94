package imaging

import (
	"errors"
	"math"
	"testing"
)

func TestPixelsAt_Quadrants(t *testing.T) {
	img := quadrantImage(t)

	pix, err := img.PixelsAt(6, 6)
	if err != nil {
		t.Fatalf("PixelsAt failed: %v", err)
	}
	if len(pix) != 6*6*Channels {
		t.Fatalf("len: got %d, want %d", len(pix), 6*6*Channels)
	}

	probes := []struct {
		y, x int
		want float64
	}{
		{1, 1, 0.2},
		{1, 4, 0.4},
		{4, 1, 0.6},
		{4, 4, 0.8},
	}
	for _, p := range probes {
		got := pix[(p.y*6+p.x)*Channels]
		if math.Abs(got-p.want) > 0.01*p.want {
			t.Errorf("sample (%d,%d): got %v, want %v within 1%%", p.y, p.x, got, p.want)
		}
	}

	// The source is untouched.
	if h, w := img.Shape(); h != 100 || w != 100 {
		t.Errorf("PixelsAt mutated shape to %dx%d", w, h)
	}
}

func TestPixelsAt_NoShape(t *testing.T) {
	img := quadrantImage(t)
	img.Pixels()[0] = 0.9
	if got, _ := img.At(0, 0); got[0] != 0.9 {
		t.Fatalf("Pixels should return the stored buffer, At(0,0) = %v", got)
	}
	if _, err := img.PixelsAt(0, 5); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("PixelsAt(0,5): got %v, want ErrInvalidShape", err)
	}
}

func TestResize_InPlace(t *testing.T) {
	img, _ := Uniform(40, 30, [3]uint8{25, 50, 75})

	if err := img.Resize(7, 11); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	h, w := img.Shape()
	if h != 7 || w != 11 {
		t.Fatalf("Shape after Resize: got %dx%d, want 11x7", w, h)
	}
	if len(img.Pixels()) != 7*11*Channels {
		t.Fatalf("buffer length: got %d", len(img.Pixels()))
	}
	for i := 0; i < len(img.Pixels()); i += Channels {
		px := img.Pixels()[i : i+Channels]
		if px[0] != 25 || px[1] != 50 || px[2] != 75 {
			t.Fatalf("pixel %d: got %v, want [25 50 75]", i/Channels, px)
		}
	}
}

func TestResize_Upscale(t *testing.T) {
	img, _ := Uniform(2, 2, [3]float64{0.3, 0.6, 0.9})
	if err := img.Resize(9, 5); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	for i, v := range img.Pixels() {
		want := []float64{0.3, 0.6, 0.9}[i%Channels]
		if math.Abs(v-want) > 1e-4 {
			t.Fatalf("sample %d: got %v, want %v", i, v, want)
		}
	}
}

func TestResized_KeepsDomainRange(t *testing.T) {
	img := quadrantImage(t)
	r, err := img.Resized(13, 17)
	if err != nil {
		t.Fatalf("Resized failed: %v", err)
	}
	for i, v := range r.Pixels() {
		if v < 0 || v > 1 {
			t.Fatalf("sample %d out of [0,1]: %v", i, v)
		}
	}
	if h, w := img.Shape(); h != 100 || w != 100 {
		t.Errorf("Resized mutated the source")
	}
}

func TestResize_DiscreteQuadrants(t *testing.T) {
	norm := quadrantImage(t)
	img := ToDiscrete(norm)

	if err := img.Resize(6, 6); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	probes := map[[2]int]uint8{{1, 1}: 51, {1, 4}: 102, {4, 1}: 153, {4, 4}: 204}
	for c, want := range probes {
		got, _ := img.At(c[0], c[1])
		if diff := int(got[0]) - int(want); diff < -2 || diff > 2 {
			t.Errorf("pixel %v: got %d, want %d", c, got[0], want)
		}
	}
}
