// Package config describes an engine run and its scene in YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tepi-engine/tepi/pkg/linear"
	"github.com/tepi-engine/tepi/pkg/render"
	"github.com/tepi-engine/tepi/pkg/scene"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Point is an [x, y] pair.
type Point [2]float64

// Pos returns p as a linear.Pos2D.
func (p Point) Pos() linear.Pos2D {
	return linear.P2(p[0], p[1])
}

// Config is the top-level engine configuration.
type Config struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	FPS        int      `yaml:"fps"`
	Background Color    `yaml:"background"`
	Camera     Camera   `yaml:"camera"`
	Shapes     []Shape  `yaml:"shapes"`
	Model      *Model   `yaml:"model,omitempty"`
	Log        LogBlock `yaml:"log"`
}

// Camera places the camera and optionally makes it follow a named shape.
type Camera struct {
	Position  Point   `yaml:"position"`
	Follow    string  `yaml:"follow,omitempty"`
	Frequency float64 `yaml:"frequency,omitempty"`
	Damping   float64 `yaml:"damping,omitempty"`
}

// Shape is one scene node with a triangle or rect.
type Shape struct {
	Name     string    `yaml:"name,omitempty"`
	Kind     string    `yaml:"kind"`
	Points   []Point   `yaml:"points,omitempty"` // triangle
	Origin   Point     `yaml:"origin,omitempty"` // rect top-left
	Size     Point     `yaml:"size,omitempty"`   // rect length, height
	Color    Color     `yaml:"color"`
	Absolute bool      `yaml:"absolute"`
	Material *Material `yaml:"material,omitempty"`
	Motion   *Motion   `yaml:"motion,omitempty"`
}

// Material mirrors models.Material.
type Material struct {
	Name          string  `yaml:"name,omitempty"`
	TexturePath   string  `yaml:"texture,omitempty"`
	NormalMapPath string  `yaml:"normal_map,omitempty"`
	Reflectivity  float64 `yaml:"reflectivity,omitempty"`
	Transparency  float64 `yaml:"transparency,omitempty"`
	Specularity   float64 `yaml:"specularity,omitempty"`
	Emission      float64 `yaml:"emission,omitempty"`
}

// Motion starts a LerpTranslate when the scene is built.
type Motion struct {
	To       Point   `yaml:"to"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease,omitempty"`
}

// Model imports a glTF file as flat triangles.
type Model struct {
	Path     string  `yaml:"path"`
	Center   Point   `yaml:"center"`
	Size     float64 `yaml:"size"`
	Absolute bool    `yaml:"absolute"`
}

// LogBlock configures both loggers.
type LogBlock struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
	Buffer   int    `yaml:"buffer"`
	File     string `yaml:"file,omitempty"` // engine log sink; empty discards
}

// Default returns the demo configuration: one absolute triangle and a
// thin bar above it on a charcoal background.
func Default() *Config {
	return &Config{
		Width:      512,
		Height:     512,
		FPS:        60,
		Background: Color(render.ColorCharcoal),
		Camera:     Camera{Frequency: 6, Damping: 1},
		Shapes: []Shape{
			{
				Name:     "triangle",
				Kind:     "triangle",
				Points:   []Point{{-100, -100}, {150, -100}, {100, 100}},
				Color:    Color(render.FromRGB(100, 100, 50)),
				Absolute: true,
			},
			{
				Name:     "bar",
				Kind:     "rect",
				Origin:   Point{-200, 100},
				Size:     Point{400, 5},
				Color:    Color(render.ColorYellow),
				Absolute: true,
			},
		},
		Log: LogBlock{Level: "info", Encoding: "console", Buffer: 16},
	}
}

// LoadYAML decodes a config from r on top of Default, then validates it.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	c.Shapes = nil
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a YAML config file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate reports the first problem found.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d must be positive", ErrInvalidConfig, c.FPS)
	}
	if c.Log.Buffer < 0 {
		return fmt.Errorf("%w: log buffer %d is negative", ErrInvalidConfig, c.Log.Buffer)
	}

	names := make(map[string]bool, len(c.Shapes))
	for i, s := range c.Shapes {
		if err := s.validate(); err != nil {
			return fmt.Errorf("shape %d (%s): %w", i, s.Name, err)
		}
		if s.Name != "" {
			if names[s.Name] {
				return fmt.Errorf("%w: duplicate shape name %q", ErrInvalidConfig, s.Name)
			}
			names[s.Name] = true
		}
	}
	if c.Camera.Follow != "" && !names[c.Camera.Follow] {
		return fmt.Errorf("%w: camera follows unknown shape %q", ErrInvalidConfig, c.Camera.Follow)
	}
	if m := c.Model; m != nil {
		if m.Path == "" {
			return fmt.Errorf("%w: model path is empty", ErrInvalidConfig)
		}
		if m.Size <= 0 {
			return fmt.Errorf("%w: model size %v must be positive", ErrInvalidConfig, m.Size)
		}
	}
	return nil
}

func (s Shape) validate() error {
	switch s.Kind {
	case "triangle":
		if len(s.Points) != 3 {
			return fmt.Errorf("%w: triangle needs 3 points, got %d", ErrInvalidConfig, len(s.Points))
		}
	case "rect":
		if s.Size[0] <= 0 || s.Size[1] <= 0 {
			return fmt.Errorf("%w: rect size %v must be positive", ErrInvalidConfig, s.Size)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidConfig, s.Kind)
	}
	if m := s.Motion; m != nil {
		if _, ok := scene.Easing(m.Ease); !ok {
			return fmt.Errorf("%w: unknown ease %q", ErrInvalidConfig, m.Ease)
		}
	}
	return nil
}

// Shape returns the render shape described by s.
func (s Shape) Shape() render.Shape {
	if s.Kind == "rect" {
		return render.NewRectShape(s.Origin.Pos(), s.Size[0], s.Size[1])
	}
	var p [3]linear.Pos2D
	for i := range min(len(s.Points), 3) {
		p[i] = s.Points[i].Pos()
	}
	return render.NewTriangleShape(p[0], p[1], p[2])
}
