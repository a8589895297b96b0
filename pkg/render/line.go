package render

import "github.com/taigrr/tinyrender/pkg/math3d"

// Line draws the segment from a to b with Bresenham's integer algorithm.
// The same pixels are plotted whichever endpoint comes first. Pixels that
// fall outside the framebuffer are skipped.
func (fb *Framebuffer) Line(a, b math3d.Vec2i, c Color) {
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y

	// Walk along the major axis.
	steep := abs(x1-x0) < abs(y1-y0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	derror2 := 2 * abs(y1-y0)
	ystep := 1
	if y1 < y0 {
		ystep = -1
	}

	error2 := 0
	y := y0
	for x := x0; x <= x1; x++ {
		if steep {
			fb.plot(y, x, c)
		} else {
			fb.plot(x, y, c)
		}
		error2 += derror2
		if error2 > dx {
			y += ystep
			error2 -= 2 * dx
		}
	}
}

// TriangleOutline draws the three edges of t.
func (fb *Framebuffer) TriangleOutline(t [3]math3d.Vec2i, c Color) {
	fb.Line(t[0], t[1], c)
	fb.Line(t[1], t[2], c)
	fb.Line(t[2], t[0], c)
}

// TriangleOutlineSorted sorts the corners of t by y and draws the two short
// edges in green and the long edge, spanning the full height, in red.
func (fb *Framebuffer) TriangleOutlineSorted(t [3]math3d.Vec2i) {
	sortByY(&t)
	fb.Line(t[0], t[1], Green)
	fb.Line(t[1], t[2], Green)
	fb.Line(t[2], t[0], Red)
}

func sortByY(t *[3]math3d.Vec2i) {
	if t[0].Y > t[1].Y {
		t[0], t[1] = t[1], t[0]
	}
	if t[0].Y > t[2].Y {
		t[0], t[2] = t[2], t[0]
	}
	if t[1].Y > t[2].Y {
		t[1], t[2] = t[2], t[1]
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
