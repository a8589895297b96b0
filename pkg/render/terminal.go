package render

import (
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/nfnt/resize"
)

// Draw paints the framebuffer onto a terminal screen using upper half-block
// characters: each cell shows two framebuffer rows, the top one as the
// foreground color and the bottom one as the background. The framebuffer is
// drawn with row 0 at the top of area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1
		if topY >= fb.Height {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style:   uv.Style{Fg: fb.Pixel(x, topY)},
			}
			if botY < fb.Height {
				cell.Style.Bg = fb.Pixel(x, botY)
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// Fit returns a copy of fb scaled to fit within cols×(2·rows) pixels,
// keeping its aspect ratio, for drawing into a cols×rows cell area.
func (fb *Framebuffer) Fit(cols, rows int) *Framebuffer {
	w, h := cols, rows*2
	if w <= 0 || h <= 0 {
		return fb
	}
	// Preserve aspect ratio: shrink whichever side overflows.
	if fb.Width*h > fb.Height*w {
		h = max(1, fb.Height*w/fb.Width)
	} else {
		w = max(1, fb.Width*h/fb.Height)
	}
	if w == fb.Width && h == fb.Height {
		return fb
	}
	return FramebufferFromImage(resize.Resize(uint(w), uint(h), fb, resize.Bilinear))
}
