// Package config loads the scene and asset settings shared by every lesson.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSize    = 640
	DefaultModel   = "african_head.obj"
	DefaultTexture = "african_head_diffuse.tga"
	DefaultSeed    = 1
)

// Vec3 is a vector written as a three element YAML sequence.
type Vec3 [3]float64

// Vec converts v to a math3d vector.
func (v Vec3) Vec() math3d.Vec3f {
	return math3d.V3(v[0], v[1], v[2])
}

// Config is the scene description read from YAML.
//
//	width: 800
//	height: 800
//	model: obj/african_head.obj
//	texture: obj/african_head_diffuse.tga
//	light: [0, 0, -1]
//	camera:
//	  eye: [1, 1, 3]
type Config struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Model   string `yaml:"model"`
	Texture string `yaml:"texture"`
	Output  string `yaml:"output"`
	Seed    int64  `yaml:"seed"`

	// Light is the direction light travels for flat shading.
	Light Vec3 `yaml:"light"`
	// GouraudLight is the direction toward the light for per-vertex
	// shading. It is normalized before use.
	GouraudLight Vec3 `yaml:"gouraudLight"`

	Camera Camera `yaml:"camera"`
}

// Camera places the viewer for the perspective lessons.
type Camera struct {
	Eye      Vec3    `yaml:"eye"`
	Center   Vec3    `yaml:"center"`
	Up       Vec3    `yaml:"up"`
	Distance float64 `yaml:"distance"`
}

// Default returns the built-in configuration. Asset paths are relative to
// the working directory.
func Default() Config {
	var c Config
	c.normalize()
	return c
}

func (c *Config) normalize() {
	if c.Width == 0 {
		c.Width = DefaultSize
	}
	if c.Height == 0 {
		c.Height = DefaultSize
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Texture == "" {
		c.Texture = DefaultTexture
	}
	if c.Output == "" {
		c.Output = "."
	}
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	if c.Light == (Vec3{}) {
		c.Light = Vec3{0, 0, -1}
	}
	if c.GouraudLight == (Vec3{}) {
		c.GouraudLight = Vec3{1, 1, 1}
	}
	if c.Camera.Eye == (Vec3{}) {
		c.Camera.Eye = Vec3{1, 1, 3}
	}
	if c.Camera.Up == (Vec3{}) {
		c.Camera.Up = Vec3{0, 1, 0}
	}
	if c.Camera.Distance == 0 {
		c.Camera.Distance = 3
	}
}

// Validate reports settings no renderer can use.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Width > 0xffff || c.Height > 0xffff {
		return fmt.Errorf("size %dx%d exceeds the TGA limit of 65535", c.Width, c.Height)
	}
	if c.Camera.Eye == c.Camera.Center {
		return fmt.Errorf("camera eye and center coincide at %v", c.Camera.Eye)
	}
	return nil
}

// Load reads a YAML configuration. Missing fields take their defaults and
// relative asset paths are resolved against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{&c.Model, &c.Texture, &c.Output} {
		if !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return c, nil
}
