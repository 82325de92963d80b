package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// quadTexture is 2x2: red, green on the first row; blue, white below.
func quadTexture() *Texture {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, ColorRed)
	tex.SetPixel(1, 0, ColorGreen)
	tex.SetPixel(0, 1, ColorBlue)
	tex.SetPixel(1, 1, ColorWhite)
	return tex
}

func TestTextureSampleNearest(t *testing.T) {
	tex := quadTexture()

	tests := []struct {
		name string
		u, v float64
		want Color
	}{
		{"top left", 0.1, 0.1, ColorRed},
		{"top right", 0.9, 0.1, ColorGreen},
		{"bottom left", 0.1, 0.9, ColorBlue},
		{"bottom right", 0.9, 0.9, ColorWhite},
		{"repeat wraps", 1.1, 0.1, ColorRed},
		{"negative wraps", -0.1, 0.1, ColorGreen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.Sample(tt.u, tt.v); got != tt.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestTextureSampleClamp(t *testing.T) {
	tex := quadTexture()
	tex.Wrap = WrapClamp

	if got := tex.Sample(1.5, -0.5); got != ColorGreen {
		t.Errorf("clamped sample = %v, want green", got)
	}
}

func TestTextureSampleBilinear(t *testing.T) {
	tex := quadTexture()
	tex.Filter = FilterBilinear

	if got := tex.Sample(0.5, 0.5); got != (Color{R: 128, G: 128, B: 128, A: 255}) {
		t.Errorf("center sample = %v, want even blend", got)
	}
	if got := tex.Sample(0.25, 0.25); got != ColorRed {
		t.Errorf("texel center sample = %v, want red", got)
	}
}

func TestTextureEmpty(t *testing.T) {
	if got := NewTexture(0, 0).Sample(0.5, 0.5); got != (Color{}) {
		t.Errorf("empty texture sample = %v", got)
	}
}

func TestCheckerTexture(t *testing.T) {
	tex := NewCheckerTexture(16, 16, 8, ColorWhite, ColorBlack)
	if tex.GetPixel(0, 0) != ColorWhite || tex.GetPixel(8, 0) != ColorBlack || tex.GetPixel(8, 8) != ColorWhite {
		t.Error("checker pattern is wrong")
	}
}

func TestLoadTextureBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{10, 20, 30, 255})
	img.Set(1, 1, color.RGBA{200, 100, 50, 255})

	path := filepath.Join(t.TempDir(), "tex.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", tex.Width, tex.Height)
	}
	if got := tex.GetPixel(0, 0); got != (Color{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel (0, 0) = %v", got)
	}
	if got := tex.Sample(0.75, 0.75); got != (Color{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("sample bottom right = %v", got)
	}
}

func TestLoadTextureErrors(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(path); err == nil {
		t.Error("expected decode error")
	}
}

func TestGray(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{0.1, 26},
		{1, 255},
		{2, 255},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := Gray(tt.in); got != (Color{R: tt.want, G: tt.want, B: tt.want, A: 255}) {
			t.Errorf("Gray(%v) = %v, want level %d", tt.in, got, tt.want)
		}
	}
}
