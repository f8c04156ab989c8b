package main

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/tepi-engine/tepi/pkg/config"
	"github.com/tepi-engine/tepi/pkg/display"
	"github.com/tepi-engine/tepi/pkg/logbuf"
	"github.com/tepi-engine/tepi/pkg/render"
	"github.com/tepi-engine/tepi/pkg/scene"
)

// engine runs one frame at a time: tick, clear, draw, present.
type engine struct {
	world  *config.World
	raster *render.Rasterizer
	out    display.Presenter
	events *logbuf.Logger
	log    *zap.Logger

	background render.Color
	bands      int
	frame      int
}

func newEngine(cfg *config.Config, out display.Presenter, events *logbuf.Logger, log *zap.Logger) (*engine, error) {
	world, err := cfg.Build(log)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	w, h := out.Size()
	if w <= 0 || h <= 0 {
		w, h = cfg.Width, cfg.Height
	}
	fb := render.NewFramebuffer(w, h)

	e := &engine{
		world:      world,
		raster:     render.NewRasterizer(world.Camera, fb, render.WithLogger(log)),
		out:        out,
		events:     events,
		log:        log,
		background: render.Color(cfg.Background),
		bands:      1,
	}
	events.Normal(fmt.Sprintf("scene built with %d nodes", world.Scene.Len()), "scene")
	return e, nil
}

// step advances the world by dt seconds and presents the result.
func (e *engine) step(ctx context.Context, dt float64) error {
	e.frame++
	s := e.world.Scene
	s.Tick(dt)

	if !e.world.Follow.IsZero() {
		target, err := s.WorldPosition(e.world.Follow)
		if err != nil {
			e.events.Warn("follow target lost: "+err.Error(), "camera")
			e.world.Follow = scene.Handle{}
		} else {
			e.world.Camera.Track(target)
		}
	}

	fb := e.raster.Framebuffer()
	if w, h := e.out.Size(); w > 0 && h > 0 && fb.Resize(w, h) {
		e.events.Normal(fmt.Sprintf("framebuffer resized to %dx%d", w, h), "display")
	}
	fb.Clear(e.background)

	items := s.Items()
	if err := e.raster.DrawParallel(ctx, items, e.bands); err != nil {
		return err
	}
	if n := e.raster.Stats.Failed; n > 0 {
		e.events.Warn(strconv.Itoa(n)+" shapes skipped", "render", "frame "+strconv.Itoa(e.frame))
	}

	return e.out.Present(fb)
}

// toggleWireframe switches between filled and outlined shapes.
func (e *engine) toggleWireframe() {
	e.raster.Wireframe = !e.raster.Wireframe
	e.events.Normal("wireframe "+strconv.FormatBool(e.raster.Wireframe), "render")
}

// close flushes the engine log.
func (e *engine) close() error {
	e.events.Normalf("stopped after %d frames", e.frame)
	return e.events.Flush()
}
