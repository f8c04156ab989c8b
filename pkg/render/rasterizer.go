package render

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tepi-engine/tepi/pkg/linear"
)

// Item is one shape queued for a frame.
type Item struct {
	Shape    Shape
	Color    Color
	Absolute bool // world coordinates through the camera; otherwise normalized
}

// DrawStats tracks per-frame rasterization results.
type DrawStats struct {
	Drawn  int // Items that reached the framebuffer
	Culled int // Absolute items rejected by the render guard
	Failed int // Items skipped because drawing returned an error
}

// Rasterizer draws shapes into a framebuffer through a camera.
type Rasterizer struct {
	camera    *Camera2D
	fb        *Framebuffer
	log       *zap.Logger
	Stats     DrawStats // Statistics for the last Draw or DrawParallel
	Wireframe bool      // If true, absolute items are outlined instead of filled
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithLogger routes skipped-shape diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(r *Rasterizer) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera2D, fb *Framebuffer, opts ...Option) *Rasterizer {
	if camera == nil {
		camera = NewCamera2D(linear.Zero2())
	}
	r := &Rasterizer{
		camera: camera,
		fb:     fb,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Camera returns the camera used for absolute items.
func (r *Rasterizer) Camera() *Camera2D {
	return r.camera
}

// Framebuffer returns the current target.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// SetFramebuffer swaps the target, e.g. after a window resize.
func (r *Rasterizer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ResetStats resets the draw statistics.
func (r *Rasterizer) ResetStats() {
	r.Stats = DrawStats{}
}

// Draw rasterizes items in order. A failing item is logged and skipped;
// the rest of the frame still draws.
func (r *Rasterizer) Draw(items []Item) {
	r.ResetStats()
	if r.fb == nil {
		return
	}
	full := fullSpan(r.fb.Width, r.fb.Height)
	for i, it := range items {
		drawn, err := r.drawItem(it, full)
		r.record(i, it, drawn, err)
	}
}

// DrawParallel rasterizes items using up to bands goroutines, each owning
// a disjoint range of rows. Every band draws items in order, so the
// result matches Draw. Wireframe mode draws sequentially.
func (r *Rasterizer) DrawParallel(ctx context.Context, items []Item, bands int) error {
	if r.Wireframe || bands <= 1 {
		r.Draw(items)
		return ctx.Err()
	}
	r.ResetStats()
	if r.fb == nil {
		return nil
	}
	w, h := r.fb.Width, r.fb.Height
	bands = min(max(bands, 1), max(h, 1))

	// Decide once per item so stats are not counted per band.
	live := make([]Item, 0, len(items))
	for i, it := range items {
		switch {
		case !it.Shape.Valid():
			r.record(i, it, false, fmt.Errorf("draw %s: %w", it.Shape.Kind, ErrUnknownShape))
			continue
		case it.Absolute:
			minPt, maxPt := it.Shape.Bounds()
			if !r.camera.RenderGuard(minPt, maxPt, w, h) {
				r.Stats.Culled++
				continue
			}
		}
		r.Stats.Drawn++
		live = append(live, it)
	}

	g, ctx := errgroup.WithContext(ctx)
	rows := (h + bands - 1) / bands
	for y0 := 0; y0 < h; y0 += rows {
		band := span{x0: 0, y0: y0, x1: w, y1: min(y0+rows, h)}
		g.Go(func() error {
			for _, it := range live {
				if err := ctx.Err(); err != nil {
					return err
				}
				if _, err := r.drawItem(it, band); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Rasterizer) drawItem(it Item, clip span) (bool, error) {
	if !it.Absolute {
		if err := it.Shape.drawRelative(r.fb, it.Color, clip); err != nil {
			return false, err
		}
		return true, nil
	}
	if r.Wireframe {
		minPt, maxPt := it.Shape.Bounds()
		if !r.camera.RenderGuard(minPt, maxPt, r.fb.Width, r.fb.Height) {
			return false, nil
		}
		return true, it.Shape.DrawOutline(r.fb, it.Color, r.camera)
	}
	return it.Shape.drawAbsolute(r.fb, it.Color, r.camera, clip)
}

func (r *Rasterizer) record(i int, it Item, drawn bool, err error) {
	switch {
	case err != nil:
		r.Stats.Failed++
		fields := []zap.Field{zap.Int("item", i), zap.Stringer("kind", it.Shape.Kind), zap.Error(err)}
		var oob *PixelOutOfBoundsError
		if errors.As(err, &oob) {
			fields = append(fields, zap.Int("x", oob.X), zap.Int("y", oob.Y))
		}
		r.log.Debug("shape skipped", fields...)
	case drawn:
		r.Stats.Drawn++
	default:
		r.Stats.Culled++
	}
}
