package config

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tepi-engine/tepi/pkg/models"
	"github.com/tepi-engine/tepi/pkg/render"
	"github.com/tepi-engine/tepi/pkg/scene"
)

// World is a built scene with its camera.
type World struct {
	Scene  *scene.Scene
	Camera *render.Camera2D
	Follow scene.Handle // zero when the camera is fixed
}

// Build creates the scene graph and camera described by c.
func (c *Config) Build(log *zap.Logger) (*World, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		Scene:  scene.New("scene", scene.WithLogger(log)),
		Camera: render.NewCamera2D(c.Camera.Position.Pos()),
	}

	for i, s := range c.Shapes {
		h, err := w.addShape(s)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, s.Name, err)
		}
		if s.Name != "" && s.Name == c.Camera.Follow {
			w.Follow = h
		}
	}

	if !w.Follow.IsZero() {
		w.Camera.EnableFollow(c.FPS, c.Camera.Frequency, c.Camera.Damping)
	}

	if c.Model != nil {
		n, err := w.addModel(*c.Model)
		if err != nil {
			return nil, err
		}
		log.Info("model imported", zap.String("path", c.Model.Path), zap.Int("triangles", n))
	}
	return w, nil
}

func (w *World) addShape(s Shape) (scene.Handle, error) {
	mat := models.DefaultMaterial()
	mat.Color = render.Color(s.Color)
	if m := s.Material; m != nil {
		mat.Name = m.Name
		mat.TexturePath = m.TexturePath
		mat.NormalMapPath = m.NormalMapPath
		mat.Reflectivity = m.Reflectivity
		mat.Transparency = m.Transparency
		mat.Specularity = m.Specularity
		mat.Emission = m.Emission
	}

	h, err := w.Scene.Add(w.Scene.Root(), scene.Node{
		Name:     s.Name,
		Shape:    s.Shape(),
		Color:    render.Color(s.Color),
		Absolute: s.Absolute,
		Material: mat,
	})
	if err != nil {
		return scene.Handle{}, err
	}

	if m := s.Motion; m != nil {
		fn, _ := scene.Easing(m.Ease)
		n, _ := w.Scene.Get(h)
		if err := n.LerpTranslate(m.To.Pos(), m.Duration, fn); err != nil {
			return scene.Handle{}, err
		}
	}
	return h, nil
}

func (w *World) addModel(m Model) (int, error) {
	mesh, err := models.LoadGLTF(m.Path)
	if err != nil {
		return 0, fmt.Errorf("load model: %w", err)
	}

	group, err := w.Scene.Add(w.Scene.Root(), scene.Node{Name: filepath.Base(m.Path)})
	if err != nil {
		return 0, err
	}
	tris := mesh.Flatten(m.Center.Pos(), m.Size)
	for i, ft := range tris {
		_, err := w.Scene.Add(group, scene.Node{
			Name:     fmt.Sprintf("%s/%d", mesh.Name, i),
			Shape:    render.Shape{Kind: render.KindTriangle, Triangle: ft.Triangle},
			Color:    ft.Material.Color,
			Absolute: m.Absolute,
			Material: ft.Material,
		})
		if err != nil {
			return 0, err
		}
	}
	return len(tris), nil
}
