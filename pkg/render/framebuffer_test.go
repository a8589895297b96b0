package render

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/tinyrender/pkg/tga"
)

func TestSetPixel(t *testing.T) {
	fb := NewFramebuffer(5, 4, Black)
	c := RGB(10, 20, 30)
	fb.SetPixel(3, 2, c)

	for y := range fb.Height {
		for x := range fb.Width {
			want := Black
			if x == 3 && y == 2 {
				want = c
			}
			if got := fb.Pixel(x, y); got != want {
				t.Errorf("Pixel(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if fb.Pixels[3+2*5] != c {
		t.Error("pixel not stored row-major at x + y*width")
	}
}

func TestSetPixelOutOfRangePanics(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"x too large", 5, 0},
		{"x negative", -1, 0},
		{"y too large", 0, 4},
		{"y negative", 0, -1},
		{"wraps into next row", 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(5, 4, Black)
			defer func() {
				if recover() == nil {
					t.Errorf("SetPixel(%d, %d) did not panic", tt.x, tt.y)
				}
			}()
			fb.SetPixel(tt.x, tt.y, White)
		})
	}
}

// stripes fills row y with gray level y.
func stripes(w, h int) *Framebuffer {
	fb := NewFramebuffer(w, h, Black)
	for y := range h {
		for x := range w {
			fb.SetPixel(x, y, RGB(uint8(y), uint8(x), 0))
		}
	}
	return fb
}

func TestFlipVertically(t *testing.T) {
	for _, h := range []int{1, 2, 5, 6} {
		fb := stripes(3, h)
		orig := append([]Color(nil), fb.Pixels...)

		fb.FlipVertically()
		for y := range h {
			if got := fb.Pixel(0, y).R; int(got) != h-1-y {
				t.Errorf("h=%d: row %d holds row %d, want %d", h, y, got, h-1-y)
			}
		}
		if h%2 == 1 {
			mid := h / 2
			for x := range 3 {
				if fb.Pixel(x, mid) != orig[x+mid*3] {
					t.Errorf("h=%d: middle row changed at x=%d", h, x)
				}
			}
		}

		fb.FlipVertically()
		for i := range orig {
			if fb.Pixels[i] != orig[i] {
				t.Fatalf("h=%d: double flip differs at %d", h, i)
			}
		}
	}
}

func TestFramebufferImage(t *testing.T) {
	fb := stripes(4, 3)
	var img image.Image = fb
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("Bounds = %v", img.Bounds())
	}
	r, g, b, a := img.At(2, 1).RGBA()
	if r != 0x0101 || g != 0x0202 || b != 0 || a != 0xffff {
		t.Errorf("At(2,1).RGBA() = %x %x %x %x", r, g, b, a)
	}
	if img.At(9, 9) != Black {
		t.Error("At outside bounds should be black")
	}

	copied := FramebufferFromImage(fb.ToImage())
	for i := range fb.Pixels {
		if copied.Pixels[i] != fb.Pixels[i] {
			t.Fatalf("FramebufferFromImage(ToImage()) differs at %d", i)
		}
	}
}

func TestColorModel(t *testing.T) {
	got := ColorModel.Convert(color.RGBA{R: 1, G: 2, B: 3, A: 255})
	if got != RGB(1, 2, 3) {
		t.Errorf("Convert = %v", got)
	}
}

func TestEncodeTGA(t *testing.T) {
	const w, h = 4, 3
	fb := stripes(w, h)
	fb.SetPixel(1, 1, RGB(0xaa, 0xbb, 0xcc))

	var buf bytes.Buffer
	if err := fb.EncodeTGA(&buf); err != nil {
		t.Fatalf("EncodeTGA: %v", err)
	}
	data := buf.Bytes()
	if data[12] != w || data[13] != 0 || data[14] != h || data[15] != 0 {
		t.Errorf("header size fields = % x", data[12:16])
	}
	pixels := data[18 : 18+3*w*h]
	for i, c := range fb.Pixels {
		if pixels[3*i] != c.B || pixels[3*i+1] != c.G || pixels[3*i+2] != c.R {
			t.Errorf("pixel %d = % x, want %v in BGR", i, pixels[3*i:3*i+3], c)
		}
	}
	if got := string(data[len(data)-18:]); got != tga.Signature {
		t.Errorf("signature = %q", got)
	}
}

func TestSaveFiles(t *testing.T) {
	dir := t.TempDir()
	fb := stripes(8, 8)

	tgaPath := filepath.Join(dir, "out.tga")
	if err := fb.SaveTGA(tgaPath); err != nil {
		t.Fatalf("SaveTGA: %v", err)
	}
	tex, err := LoadTexture(tgaPath)
	if err != nil {
		t.Fatalf("LoadTexture(tga): %v", err)
	}
	if tex.Texel(3, 5) != fb.Pixel(3, 5) {
		t.Errorf("tga round trip: got %v, want %v", tex.Texel(3, 5), fb.Pixel(3, 5))
	}

	pngPath := filepath.Join(dir, "out.png")
	if err := fb.SavePNG(pngPath); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if _, err := os.Stat(pngPath); err != nil {
		t.Errorf("png not written: %v", err)
	}
}
