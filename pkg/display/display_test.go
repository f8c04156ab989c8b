package display

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tepi-engine/tepi/pkg/render"
)

type fakeScreen map[[2]int]*uv.Cell

func (f fakeScreen) SetCell(x, y int, c *uv.Cell) {
	f[[2]int{x, y}] = c
}

func TestHalfBlocks(t *testing.T) {
	fb := render.NewFramebuffer(2, 4)
	_ = fb.SetPixel(0, 3, render.ColorRed)  // top row
	_ = fb.SetPixel(0, 2, render.ColorBlue) // second row
	_ = fb.SetPixel(1, 0, render.ColorGreen)

	scr := fakeScreen{}
	HalfBlocks(scr, fb, 5, 2)
	require.Len(t, scr, 4, "columns past the framebuffer are skipped")

	top := scr[[2]int{0, 0}]
	assert.Equal(t, "▀", top.Content)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, top.Style.Fg)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, top.Style.Bg)

	bottom := scr[[2]int{1, 1}]
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, bottom.Style.Bg)
}

type countingPresenter struct {
	n   int
	err error
}

func (c *countingPresenter) Present(*render.Framebuffer) error {
	c.n++
	return c.err
}

func (c *countingPresenter) Size() (int, int) { return 3, 2 }

func TestDedup(t *testing.T) {
	inner := &countingPresenter{}
	d := NewDedup(inner)
	fb := render.NewFramebuffer(3, 2)

	require.NoError(t, d.Present(fb))
	require.NoError(t, d.Present(fb))
	assert.Equal(t, 1, inner.n)
	assert.Equal(t, 1, d.Skipped)

	fb.Clear(render.ColorWhite)
	require.NoError(t, d.Present(fb))
	assert.Equal(t, 2, inner.n)

	d.Reset()
	require.NoError(t, d.Present(fb))
	assert.Equal(t, 3, inner.n)

	w, h := d.Size()
	assert.Equal(t, [2]int{3, 2}, [2]int{w, h})
}

func TestDedupRetriesAfterError(t *testing.T) {
	inner := &countingPresenter{err: errors.New("busy")}
	d := NewDedup(inner)
	fb := render.NewFramebuffer(1, 1)

	assert.Error(t, d.Present(fb))
	inner.err = nil
	require.NoError(t, d.Present(fb))
	assert.Equal(t, 2, inner.n)
}

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	s := NewSnapshot(filepath.Join(dir, "frame-%02d.bmp"), 4, 4)
	fb := render.NewFramebuffer(4, 4)

	require.NoError(t, s.Present(fb))
	require.NoError(t, s.Present(fb))
	assert.Equal(t, 2, s.Frames())
	for _, name := range []string{"frame-00.bmp", "frame-01.bmp"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err)
	}

	single := NewSnapshot(filepath.Join(dir, "last.png"), 4, 4)
	require.NoError(t, single.Present(fb))
	require.NoError(t, single.Present(fb))
	_, err := os.Stat(filepath.Join(dir, "last.png"))
	assert.NoError(t, err)
}
