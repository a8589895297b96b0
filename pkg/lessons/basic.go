package lessons

import (
	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

// Pixel draws a single red pixel on a 100×100 black canvas.
func Pixel() (*render.Framebuffer, error) {
	fb := render.NewFramebuffer(100, 100, render.Black)
	fb.SetPixel(10, 80, render.Red)
	return fb, nil
}

// Bresenham draws three lines. The green line retraces part of the red
// one in reverse.
func Bresenham() (*render.Framebuffer, error) {
	fb := render.NewFramebuffer(100, 100, render.Black)
	fb.Line(math3d.V2(13, 20), math3d.V2(80, 40), render.White)
	fb.Line(math3d.V2(20, 13), math3d.V2(40, 80), render.Red)
	fb.Line(math3d.V2(40, 80), math3d.V2(13, 20), render.Green)
	return fb, nil
}

var triangles = [3][3]math3d.Vec2i{
	{{X: 10, Y: 70}, {X: 50, Y: 160}, {X: 70, Y: 80}},
	{{X: 180, Y: 50}, {X: 150, Y: 1}, {X: 70, Y: 180}},
	{{X: 180, Y: 150}, {X: 120, Y: 160}, {X: 130, Y: 180}},
}

var triangleColors = [3]render.Color{render.Red, render.White, render.Green}

// Triangles draws the same three triangles three ways: plain outlines,
// outlines highlighting the long edge (shifted right by 300) and scanline
// fills (shifted up by 300).
func Triangles(width, height int) *render.Framebuffer {
	fb := render.NewFramebuffer(width, height, render.Black)
	for i, t := range triangles {
		fb.TriangleOutline(t, triangleColors[i])
	}
	for _, t := range triangles {
		fb.TriangleOutlineSorted(shift(t, 300, 0))
	}
	for i, t := range triangles {
		fb.FillScanline(shift(t, 0, 300), triangleColors[i])
	}
	fb.FlipVertically()
	return fb
}

func shift(t [3]math3d.Vec2i, dx, dy int) [3]math3d.Vec2i {
	d := math3d.V2(dx, dy)
	for i := range t {
		t[i] = t[i].Add(d)
	}
	return t
}
