package render

import (
	"errors"
	"fmt"
)

// ErrUnknownShape is returned when a Shape's Kind is not one the
// rasterizer knows how to handle.
var ErrUnknownShape = errors.New("render: unknown shape kind")

// PixelOutOfBoundsError reports a write outside the framebuffer.
// The write is dropped; callers may ignore or clamp and retry.
type PixelOutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *PixelOutOfBoundsError) Error() string {
	return fmt.Sprintf("render: pixel (%d, %d) outside %dx%d framebuffer", e.X, e.Y, e.Width, e.Height)
}

// InvalidPointCountError reports a transform given the wrong number of
// points for the shape being re-pointed.
type InvalidPointCountError struct {
	Kind ShapeKind
	Got  int
	Want int
}

func (e *InvalidPointCountError) Error() string {
	return fmt.Sprintf("render: %s needs %d points, got %d", e.Kind, e.Want, e.Got)
}
