package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "github.com/ftrvxmtrx/tga" // Register TGA decoder
	_ "golang.org/x/image/bmp"   // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Sampler returns the color of a surface at texture coordinate (u, v).
// (0, 0) is the top-left of the image and (1, 1) the bottom-right.
type Sampler interface {
	Sample(u, v float64) Color
}

// SamplerFunc adapts a plain function to Sampler.
type SamplerFunc func(u, v float64) Color

// Sample calls f(u, v).
func (f SamplerFunc) Sample(u, v float64) Color {
	return f(u, v)
}

// WrapMode selects what happens to coordinates outside [0, 1].
type WrapMode int

const (
	WrapRepeat WrapMode = iota // tile
	WrapClamp                  // hold the edge texel
)

// FilterMode selects how texels are combined.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// Texture is a decoded RGBA image sampled with normalized coordinates.
type Texture struct {
	Width  int
	Height int
	Wrap   WrapMode
	Filter FilterMode

	img *image.RGBA
}

// NewTexture creates a transparent black texture.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// LoadTexture decodes a PNG, JPEG, TGA, BMP or WebP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies img into a new texture, converting it to RGBA.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	tex := NewTexture(b.Dx(), b.Dy())
	draw.Draw(tex.img, tex.img.Bounds(), img, b.Min, draw.Src)
	return tex
}

// NewCheckerTexture creates a checkerboard of size-pixel squares starting
// with c1 in the top-left corner.
func NewCheckerTexture(width, height, size int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			c := c1
			if (x/size+y/size)%2 == 1 {
				c = c2
			}
			tex.img.SetRGBA(x, y, c)
		}
	}
	return tex
}

// SetPixel writes texel (x, y); out of range writes are ignored.
func (t *Texture) SetPixel(x, y int, c Color) {
	t.img.SetRGBA(x, y, c)
}

// GetPixel reads texel (x, y), or transparent black out of range.
func (t *Texture) GetPixel(x, y int) Color {
	return t.img.RGBAAt(x, y)
}

// Sample returns the texel color at (u, v) using the texture's wrap and
// filter modes. V = 0 is the first image row.
func (t *Texture) Sample(u, v float64) Color {
	if t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	fx := u * float64(t.Width)
	fy := v * float64(t.Height)

	if t.Filter != FilterBilinear {
		return t.texel(int(math.Floor(fx)), int(math.Floor(fy)))
	}

	fx -= 0.5
	fy -= 0.5
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := fx-x0, fy-y0
	ix, iy := int(x0), int(y0)

	top := lerpColor(t.texel(ix, iy), t.texel(ix+1, iy), tx)
	bot := lerpColor(t.texel(ix, iy+1), t.texel(ix+1, iy+1), tx)
	return lerpColor(top, bot, ty)
}

// texel reads a pixel after applying the wrap mode to both axes.
func (t *Texture) texel(x, y int) Color {
	return t.img.RGBAAt(wrap(x, t.Width, t.Wrap), wrap(y, t.Height, t.Wrap))
}

func wrap(i, size int, mode WrapMode) int {
	if mode == WrapClamp {
		return min(max(i, 0), size-1)
	}
	i %= size
	if i < 0 {
		i += size
	}
	return i
}

func lerpColor(a, b Color, t float64) Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Gray returns an opaque grey of the given brightness, clamped to [0, 1].
func Gray(brightness float64) Color {
	l := uint8(math.Round(255 * math.Max(0, math.Min(1, brightness))))
	return Color{R: l, G: l, B: l, A: 255}
}
