// Package render provides the software rasterizer: framebuffer, line and
// triangle drawing, depth testing, shading and screen projection.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/taigrr/tinyrender/pkg/tga"
)

// Framebuffer is a width×height grid of colors stored row-major. Rendering
// treats (0, 0) as the bottom-left corner; FlipVertically converts to the
// top-left origin used by image files and terminals.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// NewFramebuffer creates a framebuffer filled with background.
func NewFramebuffer(width, height int, background Color) *Framebuffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("render: invalid framebuffer size %dx%d", width, height))
	}
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
	fb.Clear(background)
	return fb
}

// FramebufferFromImage copies img into a new framebuffer, keeping the
// image's top-left origin.
func FramebufferFromImage(img image.Image) *Framebuffer {
	b := img.Bounds()
	fb := NewFramebuffer(b.Dx(), b.Dy(), Black)
	for y := range fb.Height {
		for x := range fb.Width {
			fb.Pixels[y*fb.Width+x] = toColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return fb
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// Contains reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) Contains(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets the pixel at (x, y). Coordinates outside the framebuffer
// are a caller bug and panic rather than wrap into a neighboring row.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if !fb.Contains(x, y) {
		panic(fmt.Sprintf("render: pixel (%d, %d) outside %dx%d framebuffer", x, y, fb.Width, fb.Height))
	}
	fb.Pixels[x+y*fb.Width] = c
}

// Pixel returns the color at (x, y). It panics outside the framebuffer.
func (fb *Framebuffer) Pixel(x, y int) Color {
	if !fb.Contains(x, y) {
		panic(fmt.Sprintf("render: pixel (%d, %d) outside %dx%d framebuffer", x, y, fb.Width, fb.Height))
	}
	return fb.Pixels[x+y*fb.Width]
}

// plot sets (x, y) if it lies inside the framebuffer. Rasterizers use it so
// geometry partially off screen is clipped instead of rejected.
func (fb *Framebuffer) plot(x, y int, c Color) {
	if fb.Contains(x, y) {
		fb.Pixels[x+y*fb.Width] = c
	}
}

// FlipVertically swaps row y with row Height-1-y for the top half of the
// framebuffer. Applying it twice restores the original.
func (fb *Framebuffer) FlipVertically() {
	tmp := make([]Color, fb.Width)
	for y := range fb.Height / 2 {
		top := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		bot := fb.Pixels[(fb.Height-1-y)*fb.Width : (fb.Height-y)*fb.Width]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model {
	return ColorModel
}

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image. Points outside the framebuffer are black.
func (fb *Framebuffer) At(x, y int) color.Color {
	if !fb.Contains(x, y) {
		return Black
	}
	return fb.Pixels[x+y*fb.Width]
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := range fb.Height {
		for x := range fb.Width {
			c := fb.Pixels[y*fb.Width+x]
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

// EncodeTGA writes the framebuffer as an uncompressed truecolor TGA.
func (fb *Framebuffer) EncodeTGA(w io.Writer) error {
	return tga.Encode(w, fb)
}

// SaveTGA saves the framebuffer as a TGA file.
func (fb *Framebuffer) SaveTGA(path string) error {
	return fb.save(path, fb.EncodeTGA)
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return fb.save(path, func(w io.Writer) error {
		return png.Encode(w, fb.ToImage())
	})
}

func (fb *Framebuffer) save(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
