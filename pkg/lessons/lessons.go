// Package lessons is the ordered list of named render entry points. Each
// lesson builds a complete framebuffer from constants and the asset paths
// of a config.Config, independent of every other lesson.
package lessons

import (
	"strings"

	"github.com/taigrr/tinyrender/pkg/config"
	"github.com/taigrr/tinyrender/pkg/render"
)

// Renderer produces a finished framebuffer with its origin at the top left.
type Renderer interface {
	Render() (*render.Framebuffer, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func() (*render.Framebuffer, error)

// Render calls f().
func (f RendererFunc) Render() (*render.Framebuffer, error) {
	return f()
}

// Lesson is a named renderer.
type Lesson struct {
	Name     string
	Renderer Renderer
}

// List returns every lesson in teaching order. cfg is expected to come from
// config.Default or config.Load, so sizes and vectors are filled in.
func List(cfg config.Config) []Lesson {
	return []Lesson{
		{"Pixel", RendererFunc(Pixel)},
		{"Bresenham", RendererFunc(Bresenham)},
		{"Wireframe", meshLesson(cfg, false, Wireframe)},
		{"Triangles", RendererFunc(func() (*render.Framebuffer, error) { return Triangles(cfg.Width, cfg.Height), nil })},
		{"RandomColors", meshLesson(cfg, false, RandomColors)},
		{"FlatLight", meshLesson(cfg, false, FlatLight)},
		{"ZBuffer", meshLesson(cfg, false, ZBuffer)},
		{"Texture", meshLesson(cfg, true, Texture)},
		{"Perspective", meshLesson(cfg, true, Perspective)},
		{"Gouraud", meshLesson(cfg, true, func(cfg config.Config, a *Assets) (*render.Framebuffer, error) {
			return Gouraud(cfg, a, CameraFromConfig(cfg))
		})},
	}
}

// Find returns the lesson named name, ignoring case.
func Find(list []Lesson, name string) (Lesson, bool) {
	for _, l := range list {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Lesson{}, false
}

// Names returns the lesson names in order.
func Names(list []Lesson) []string {
	names := make([]string, len(list))
	for i, l := range list {
		names[i] = l.Name
	}
	return names
}

// meshLesson loads the configured assets on every call, so each render
// owns its mesh and texture.
func meshLesson(cfg config.Config, textured bool, draw func(config.Config, *Assets) (*render.Framebuffer, error)) Renderer {
	return RendererFunc(func() (*render.Framebuffer, error) {
		a, err := LoadAssets(cfg, textured)
		if err != nil {
			return nil, err
		}
		return draw(cfg, a)
	})
}
