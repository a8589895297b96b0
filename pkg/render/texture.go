package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "github.com/taigrr/tinyrender/pkg/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyTexture is returned for images with no pixels.
var ErrEmptyTexture = errors.New("texture has no pixels")

// Texture is a read-only image used for texture mapping. Texels are stored
// row-major from the top row down, while V grows upward, so Sample flips V.
type Texture struct {
	Width  int
	Height int
	Texels []Color
}

// NewTexture returns a black width×height texture.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Texels: make([]Color, width*height),
	}
}

// LoadTexture decodes an image file. Any format registered with the image
// package works; TGA, PNG, JPEG, BMP, TIFF and WebP are linked in.
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
	tex, err := TextureFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return tex, nil
}

// TextureFromImage copies img into a texture.
func TextureFromImage(img image.Image) (*Texture, error) {
	r := img.Bounds()
	if r.Empty() {
		return nil, ErrEmptyTexture
	}
	tex := NewTexture(r.Dx(), r.Dy())
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			tex.Texels[i] = toColor(img.At(x, y))
			i++
		}
	}
	return tex, nil
}

// NewCheckerTexture returns a checkerboard of size×size squares starting
// with a in the top-left corner.
func NewCheckerTexture(width, height, size int, a, b Color) *Texture {
	tex := NewTexture(width, height)
	for i := range tex.Texels {
		x, y := i%width, i/width
		if (x/size+y/size)&1 == 0 {
			tex.Texels[i] = a
		} else {
			tex.Texels[i] = b
		}
	}
	return tex
}

func (t *Texture) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.Width && y < t.Height
}

// Set writes the texel at column x, row y. It is a no-op out of range.
func (t *Texture) Set(x, y int, c Color) {
	if t.contains(x, y) {
		t.Texels[x+y*t.Width] = c
	}
}

// Texel returns the texel at column x, row y, or black out of range.
func (t *Texture) Texel(x, y int) Color {
	if !t.contains(x, y) {
		return Black
	}
	return t.Texels[x+y*t.Width]
}

// Sample returns the color at (u, v), with (0, 0) at the bottom-left of the
// image and (1, 1) at the top-right. Coordinates outside [0, 1] clamp to the
// edge. An empty texture samples as black.
func (t *Texture) Sample(u, v float64) Color {
	if t.Width <= 0 || t.Height <= 0 {
		return Black
	}
	u = clamp01(u)
	v = 1 - clamp01(v)
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.Texels[x+y*t.Width]
}

func clamp01(c float64) float64 {
	if math.IsNaN(c) {
		return 0
	}
	return math.Max(0, math.Min(1, c))
}
