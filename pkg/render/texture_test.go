package render

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestTextureSampleNearest(t *testing.T) {
	tex := NewCheckerTexture(4, 4, 2, White, Black)
	tests := []struct {
		name string
		u, v float64
		want Color
	}{
		// V=1 is image row 0.
		{"top left", 0.1, 0.9, White},
		{"top right", 0.9, 0.9, Black},
		{"bottom left", 0.1, 0.1, Black},
		{"bottom right", 0.9, 0.1, White},
		{"clamped high", 5, 5, Black},
		{"clamped low", -5, -5, Black},
		{"nan", math.NaN(), math.NaN(), Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.Sample(tt.u, tt.v); got != tt.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestTextureEmpty(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"zero by zero", image.NewNRGBA(image.Rect(0, 0, 0, 0))},
		{"zero width", image.NewNRGBA(image.Rect(0, 0, 0, 4))},
		{"zero height", image.NewGray(image.Rect(2, 2, 6, 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := TextureFromImage(tt.img)
			if !errors.Is(err, ErrEmptyTexture) {
				t.Fatalf("err = %v, want ErrEmptyTexture", err)
			}
			if tex != nil {
				t.Errorf("texture = %+v, want nil", tex)
			}
		})
	}

	t.Run("sample", func(t *testing.T) {
		for _, tex := range []*Texture{NewTexture(0, 0), NewTexture(0, 3), {}} {
			if got := tex.Sample(0.5, 0.5); got != Black {
				t.Errorf("Sample on %dx%d = %v, want black", tex.Width, tex.Height, got)
			}
		}
	})
}

func TestLoadTexture(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.NRGBA{R: 9, G: 8, B: 7, A: 255})
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Width != 3 || tex.Height != 2 {
		t.Errorf("size = %dx%d", tex.Width, tex.Height)
	}
	if got := tex.Texel(2, 1); got != RGB(9, 8, 7) {
		t.Errorf("pixel = %v", got)
	}
}

func TestLoadTextureMissing(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.tga")); err == nil {
		t.Error("expected error for missing texture")
	}
}
