// Package display shows rendered frames: in the terminal, in a desktop
// window, or as image files.
package display

import (
	"fmt"
	"strings"

	"github.com/tepi-engine/tepi/pkg/render"
)

// Presenter shows finished frames.
type Presenter interface {
	// Present displays fb. fb is not retained after Present returns.
	Present(fb *render.Framebuffer) error
	// Size returns the framebuffer dimensions the presenter wants.
	Size() (width, height int)
}

// Dedup skips frames identical to the last one presented.
type Dedup struct {
	next    Presenter
	last    uint64
	seen    bool
	Skipped int
}

// NewDedup wraps p.
func NewDedup(p Presenter) *Dedup {
	return &Dedup{next: p}
}

// Present forwards fb unless its checksum matches the previous frame.
func (d *Dedup) Present(fb *render.Framebuffer) error {
	sum := fb.Checksum()
	if d.seen && sum == d.last {
		d.Skipped++
		return nil
	}
	if err := d.next.Present(fb); err != nil {
		return err
	}
	d.last, d.seen = sum, true
	return nil
}

// Size returns the wrapped presenter's size.
func (d *Dedup) Size() (int, int) {
	return d.next.Size()
}

// Reset forgets the last frame so the next one is always shown.
func (d *Dedup) Reset() {
	d.seen = false
}

// Snapshot writes every frame to an image file. A pattern containing a
// verb such as "frame-%04d.png" gets the frame number; otherwise the same
// file is overwritten.
type Snapshot struct {
	Pattern       string
	Width, Height int

	frame int
}

// NewSnapshot creates a file presenter for width x height frames.
func NewSnapshot(pattern string, width, height int) *Snapshot {
	return &Snapshot{Pattern: pattern, Width: width, Height: height}
}

// Present saves fb.
func (s *Snapshot) Present(fb *render.Framebuffer) error {
	path := s.Pattern
	if strings.Contains(path, "%") {
		path = fmt.Sprintf(path, s.frame)
	}
	s.frame++
	return fb.Save(path)
}

// Size returns the configured frame size.
func (s *Snapshot) Size() (int, int) {
	return s.Width, s.Height
}

// Frames returns how many frames were written.
func (s *Snapshot) Frames() int {
	return s.frame
}
