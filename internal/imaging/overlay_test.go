package imaging

import (
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    [3]uint8
		wantErr bool
	}{
		{"#FF0000", [3]uint8{255, 0, 0}, false},
		{"00ff80", [3]uint8{0, 255, 128}, false},
		{"#fff", [3]uint8{255, 255, 255}, false},
		{"", [3]uint8{}, true},
		{"#GG0000", [3]uint8{}, true},
		{"#12345", [3]uint8{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrokeRect(t *testing.T) {
	img, _ := Uniform(20, 20, [3]uint8{0, 0, 0})
	red := [3]uint8{255, 0, 0}

	StrokeRect(img, 5, 5, 10, 10, 2, red)

	tests := []struct {
		y, x int
		want [3]uint8
	}{
		{5, 5, red},          // top-left corner
		{6, 10, red},         // top band, second row
		{14, 14, red},        // bottom-right corner
		{10, 13, red},        // right band
		{7, 7, [3]uint8{}},   // interior
		{4, 5, [3]uint8{}},   // just above
		{10, 15, [3]uint8{}}, // just right
	}
	for _, tt := range tests {
		got, _ := img.At(tt.y, tt.x)
		if got != tt.want {
			t.Errorf("At(%d,%d): got %v, want %v", tt.y, tt.x, got, tt.want)
		}
	}
}

func TestStrokeRect_Clipped(t *testing.T) {
	img, _ := Uniform(10, 10, [3]float64{0, 0, 0})
	white := ColorSample[float64]([3]uint8{255, 255, 255})

	// Should not panic when the rectangle leaves the image.
	StrokeRect(img, -3, -3, 20, 20, 4, white)

	if got, _ := img.At(0, 0); got != white {
		t.Errorf("At(0,0): got %v, want %v", got, white)
	}
	if got, _ := img.At(5, 5); got != ([3]float64{}) {
		t.Errorf("At(5,5): got %v, want black", got)
	}
}

func TestDrawGridLines(t *testing.T) {
	img, _ := Uniform(40, 40, [3]uint8{0, 0, 0})
	green := [3]uint8{0, 255, 0}

	DrawGridLines(img, 2, 20, 20, 2, green)

	tests := []struct {
		y, x int
		want [3]uint8
	}{
		{5, 19, green},
		{5, 20, green},
		{19, 5, green},
		{20, 30, green},
		{5, 5, [3]uint8{}},
		{0, 0, [3]uint8{}},
		{39, 39, [3]uint8{}},
	}
	for _, tt := range tests {
		got, _ := img.At(tt.y, tt.x)
		if got != tt.want {
			t.Errorf("At(%d,%d): got %v, want %v", tt.y, tt.x, got, tt.want)
		}
	}
}

func TestColorSample(t *testing.T) {
	got := ColorSample[float64]([3]uint8{0, 51, 255})
	if got != [3]float64{0, 0.2, 1} {
		t.Errorf("got %v", got)
	}
	if d := ColorSample[uint8]([3]uint8{1, 2, 3}); d != [3]uint8{1, 2, 3} {
		t.Errorf("discrete: got %v", d)
	}
}
