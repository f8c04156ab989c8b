package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/tepi-engine/tepi/pkg/linear"
)

// Camera2D is the coordinate authority for absolute drawing. It owns no
// pixels: it centers a framebuffer-sized window on its position and
// supplies the offset from world coordinates to pixel indices.
type Camera2D struct {
	Position linear.Pos2D

	follow *cameraFollow
}

// cameraFollow tracks a target with a critically damped spring per axis.
type cameraFollow struct {
	spring     harmonica.Spring
	velX, velY float64
}

// NewCamera2D creates a camera centered on pos.
func NewCamera2D(pos linear.Pos2D) *Camera2D {
	return &Camera2D{Position: pos}
}

// SetPosition moves the camera to pos.
func (c *Camera2D) SetPosition(pos linear.Pos2D) {
	c.Position = pos
}

// Translate moves the camera by (dx, dy).
func (c *Camera2D) Translate(dx, dy float64) {
	c.Position.Translate(dx, dy)
}

// TranslateX moves the camera along X.
func (c *Camera2D) TranslateX(dx float64) {
	c.Position.TranslateX(dx)
}

// TranslateY moves the camera along Y.
func (c *Camera2D) TranslateY(dy float64) {
	c.Position.TranslateY(dy)
}

// Viewport returns the visible world rectangle for a width x height
// framebuffer: the camera position extended by width/2 and height/2.
func (c *Camera2D) Viewport(width, height int) (bottomLeft, topRight linear.Pos2D) {
	halfW := float64(width) / 2
	halfH := float64(height) / 2
	bottomLeft = linear.P2(c.Position.X-halfW, c.Position.Y-halfH)
	topRight = linear.P2(c.Position.X+halfW, c.Position.Y+halfH)
	return bottomLeft, topRight
}

// Offset returns the displacement that maps a world point onto its
// framebuffer pixel: pixel = world + Offset.
func (c *Camera2D) Offset(width, height int) linear.Vec2D {
	bottomLeft, _ := c.Viewport(width, height)
	return linear.V2(-bottomLeft.X, -bottomLeft.Y)
}

// RenderGuard reports whether a bounding box overlaps the camera window.
// It is a conservative pre-draw cull: boxes touching the window edge pass.
func (c *Camera2D) RenderGuard(minPt, maxPt linear.Pos2D, width, height int) bool {
	bottomLeft, topRight := c.Viewport(width, height)
	return minPt.X <= topRight.X && maxPt.X >= bottomLeft.X &&
		minPt.Y <= topRight.Y && maxPt.Y >= bottomLeft.Y
}

// EnableFollow turns on spring tracking for Track. frequency controls
// speed and damping 1.0 is critically damped (no overshoot).
func (c *Camera2D) EnableFollow(fps int, frequency, damping float64) {
	c.follow = &cameraFollow{
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), frequency, damping),
	}
}

// DisableFollow stops spring tracking; Track becomes a no-op.
func (c *Camera2D) DisableFollow() {
	c.follow = nil
}

// Following reports whether spring tracking is enabled.
func (c *Camera2D) Following() bool {
	return c.follow != nil
}

// Track advances the camera one frame toward target.
func (c *Camera2D) Track(target linear.Pos2D) {
	if c.follow == nil {
		return
	}
	f := c.follow
	c.Position.X, f.velX = f.spring.Update(c.Position.X, f.velX, target.X)
	c.Position.Y, f.velY = f.spring.Update(c.Position.Y, f.velY, target.Y)
}

// pixelSpan converts a world-space box into the half-open pixel window it
// covers for a width x height framebuffer, clipped to the framebuffer.
func (c *Camera2D) pixelSpan(minPt, maxPt linear.Pos2D, width, height int) span {
	off := c.Offset(width, height)
	return span{
		x0: int(math.Floor(minPt.X + off.DX)),
		y0: int(math.Floor(minPt.Y + off.DY)),
		x1: int(math.Ceil(maxPt.X + off.DX)),
		y1: int(math.Ceil(maxPt.Y + off.DY)),
	}.clip(fullSpan(width, height))
}
