package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/webp"
)

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(7, 5)
	fb.Clear(ColorBlue)
	for i, p := range fb.Pixels {
		if p != ColorBlue {
			t.Fatalf("pixel %d = %v after Clear", i, p)
		}
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetPixel(-1, 0, ColorRed)
	fb.SetPixel(4, 0, ColorRed)
	fb.SetPixel(0, 4, ColorRed)
	for _, p := range fb.Pixels {
		if p != (Color{}) {
			t.Fatal("out-of-bounds write landed in the buffer")
		}
	}
	if got := fb.GetPixel(10, 10); got != (Color{}) {
		t.Errorf("GetPixel out of bounds = %v", got)
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"horizontal", 0, 2, 4, 2, [][2]int{{0, 2}, {2, 2}, {4, 2}}},
		{"vertical reversed", 3, 4, 3, 0, [][2]int{{3, 0}, {3, 2}, {3, 4}}},
		{"diagonal", 0, 0, 4, 4, [][2]int{{0, 0}, {2, 2}, {4, 4}}},
		{"single point", 1, 1, 1, 1, [][2]int{{1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(5, 5)
			fb.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1, ColorWhite)
			for _, p := range tt.want {
				if fb.GetPixel(p[0], p[1]) != ColorWhite {
					t.Errorf("pixel %v not drawn", p)
				}
			}
		})
	}
}

func TestScaled(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.SetPixel(0, 0, ColorRed)
	fb.SetPixel(1, 0, ColorGreen)

	img := fb.Scaled(4, 2)
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 1); got != ColorRed {
		t.Errorf("(1, 1) = %v, want red", got)
	}
	if got := img.RGBAAt(2, 0); got != ColorGreen {
		t.Errorf("(2, 0) = %v, want green", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(ColorBlack)
	fb.SetPixel(2, 1, ColorRed)
	dir := t.TempDir()

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, "frame.png")
		if err := fb.SavePNG(path); err != nil {
			t.Fatalf("SavePNG: %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if r, _, _, _ := img.At(2, 1).RGBA(); r>>8 != 255 {
			t.Errorf("red pixel lost, r = %d", r>>8)
		}
	})

	t.Run("webp", func(t *testing.T) {
		path := filepath.Join(dir, "frame.webp")
		if err := Save(path, fb.ToImage()); err != nil {
			t.Fatalf("Save: %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		img, err := webp.Decode(f)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
			t.Errorf("bounds = %v", img.Bounds())
		}
		if r, g, _, _ := img.At(2, 1).RGBA(); r>>8 != 255 || g>>8 != 0 {
			t.Errorf("red pixel lost, r = %d g = %d", r>>8, g>>8)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if err := Save(filepath.Join(dir, "frame.gif"), fb.ToImage()); err == nil {
			t.Error("expected error for .gif")
		}
	})
}
