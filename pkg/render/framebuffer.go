// Package render provides software rasterization for tepi.
package render

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/image/bmp"
)

// Framebuffer is a flat array of packed pixels.
//
// Pixel (x, y) lives at index x + y*Width. Row 0 is the bottom edge of the
// viewport (world Y grows upward), so ToImage flips rows for display.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Negative dimensions are treated as zero.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Resize reallocates the pixel array when the dimensions change.
// It reports whether anything changed. Contents are not preserved.
func (fb *Framebuffer) Resize(width, height int) bool {
	width, height = max(width, 0), max(height, 0)
	if width == fb.Width && height == fb.Height {
		return false
	}
	fb.Width = width
	fb.Height = height
	fb.Pixels = make([]Color, width*height)
	return true
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	// Use copy-doubling for faster clearing
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets the pixel at (x, y).
// Out-of-range writes are dropped and reported as *PixelOutOfBoundsError.
func (fb *Framebuffer) SetPixel(x, y int, c Color) error {
	if !fb.InBounds(x, y) {
		return &PixelOutOfBoundsError{X: x, Y: y, Width: fb.Width, Height: fb.Height}
	}
	fb.Pixels[x+y*fb.Width] = c
	return nil
}

// GetPixel returns the color at (x, y), or 0 if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.InBounds(x, y) {
		return 0
	}
	return fb.Pixels[x+y*fb.Width]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// Pixels falling outside the framebuffer are skipped.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		_ = fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Checksum hashes the pixel contents and dimensions.
// Presenters use it to skip frames identical to the last one shown.
func (fb *Framebuffer) Checksum() uint64 {
	d := xxhash.New()
	var buf [4096]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(fb.Width))
	binary.LittleEndian.PutUint32(buf[4:], uint32(fb.Height))
	_, _ = d.Write(buf[:8])

	n := 0
	for _, p := range fb.Pixels {
		binary.LittleEndian.PutUint32(buf[n:], uint32(p))
		n += 4
		if n == len(buf) {
			_, _ = d.Write(buf[:n])
			n = 0
		}
	}
	_, _ = d.Write(buf[:n])
	return d.Sum64()
}

// ToImage converts the framebuffer to a standard Go image, top row first.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		row := fb.Height - 1 - y
		for x := range fb.Width {
			img.SetNRGBA(x, y, fb.Pixels[x+row*fb.Width].NRGBA())
		}
	}
	return img
}

// Encode writes the framebuffer as "png" or "bmp".
func (fb *Framebuffer) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, fb.ToImage())
	case "bmp":
		return bmp.Encode(w, fb.ToImage())
	default:
		return fmt.Errorf("render: unsupported image format %q", format)
	}
}

// Save writes the framebuffer to path, choosing the format from the
// file extension (.png or .bmp).
func (fb *Framebuffer) Save(path string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format != "png" && format != "bmp" {
		return fmt.Errorf("render: unsupported image format %q", format)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fb.Encode(f, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
