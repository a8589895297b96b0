package render

import (
	"image/color"
	"math/rand"
)

// Color is a 24-bit color. Fields are in blue-green-red order, matching the
// byte order of TGA pixel data.
type Color struct {
	B, G, R uint8
}

// Named colors.
var (
	Black = Color{}
	White = RGB(255, 255, 255)
	Red   = RGB(255, 0, 0)
	Green = RGB(0, 255, 0)
	Blue  = RGB(0, 0, 255)
)

// NoLight is written by shaders for pixels that receive no light.
var NoLight = Black

// ColorModel converts any color to a Color, discarding alpha.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	return toColor(c)
})

// RGB creates a color from red, green and blue channels.
func RGB(r, g, b uint8) Color {
	return Color{B: b, G: g, R: r}
}

// RGBA implements color.Color. The color is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Gray returns the gray level for a light intensity in [0, 1]. Intensities
// outside that range saturate.
func Gray(intensity float64) Color {
	v := channel(255 * intensity)
	return Color{B: v, G: v, R: v}
}

// WithIntensity scales every channel of c by intensity, saturating at the
// channel limits.
func (c Color) WithIntensity(intensity float64) Color {
	return Color{
		B: channel(float64(c.B) * intensity),
		G: channel(float64(c.G) * intensity),
		R: channel(float64(c.R) * intensity),
	}
}

// RandomColor draws a color from rng. Callers own the generator, so a fixed
// seed gives reproducible output.
func RandomColor(rng *rand.Rand) Color {
	v := rng.Uint32()
	return Color{B: uint8(v), G: uint8(v >> 8), R: uint8(v >> 16)}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

func toColor(c color.Color) Color {
	if rc, ok := c.(Color); ok {
		return rc
	}
	r, g, b, _ := c.RGBA()
	return Color{B: uint8(b >> 8), G: uint8(g >> 8), R: uint8(r >> 8)}
}
