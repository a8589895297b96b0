package render

import (
	"fmt"
	"math"
)

// EmptyDepth marks a depth buffer cell nothing has been drawn to. It
// compares below every finite depth.
var EmptyDepth = math.Inf(-1)

// DepthBuffer holds the nearest depth drawn at each pixel. Larger values
// are closer to the camera.
type DepthBuffer struct {
	Width  int
	Height int
	Depth  []float64
}

// NewDepthBuffer creates a depth buffer with every cell set to EmptyDepth.
func NewDepthBuffer(width, height int) *DepthBuffer {
	db := &DepthBuffer{
		Width:  width,
		Height: height,
		Depth:  make([]float64, width*height),
	}
	db.Clear()
	return db
}

// Clear resets every cell to EmptyDepth.
func (db *DepthBuffer) Clear() {
	n := len(db.Depth)
	if n == 0 {
		return
	}
	db.Depth[0] = EmptyDepth
	for i := 1; i < n; i *= 2 {
		copy(db.Depth[i:], db.Depth[:i])
	}
}

// At returns the stored depth at (x, y).
func (db *DepthBuffer) At(x, y int) float64 {
	return db.Depth[x+y*db.Width]
}

// Test reports whether z is strictly greater than the depth stored at
// (x, y), storing z when it is.
func (db *DepthBuffer) Test(x, y int, z float64) bool {
	i := x + y*db.Width
	if z > db.Depth[i] {
		db.Depth[i] = z
		return true
	}
	return false
}

func (db *DepthBuffer) mustMatch(fb *Framebuffer) {
	if db.Width != fb.Width || db.Height != fb.Height {
		panic(fmt.Sprintf("render: depth buffer %dx%d does not match framebuffer %dx%d",
			db.Width, db.Height, fb.Width, fb.Height))
	}
}
