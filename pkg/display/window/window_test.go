//go:build !tinygo

package window

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tepi-engine/tepi/pkg/render"
)

func TestPixelsFlipsRows(t *testing.T) {
	fb := render.NewFramebuffer(2, 2)
	require.NoError(t, fb.SetPixel(0, 1, render.ColorRed))
	require.NoError(t, fb.SetPixel(1, 0, render.ColorBlue))

	pix := Pixels(nil, fb)
	require.Len(t, pix, 16)
	assert.Equal(t, []byte{255, 0, 0, 255}, pix[0:4], "top-left")
	assert.Equal(t, []byte{0, 0, 255, 255}, pix[12:16], "bottom-right")

	again := Pixels(pix, fb)
	assert.Same(t, &pix[0], &again[0])
}

func TestPresentCountsFrames(t *testing.T) {
	w := New("test", 4, 4, nil)
	_, _, ok := w.frameSize()
	assert.False(t, ok, "nothing to draw before the first frame")

	require.NoError(t, w.Present(render.NewFramebuffer(3, 2)))
	assert.Equal(t, 1, w.Frames())

	width, height, ok := w.frameSize()
	require.True(t, ok)
	assert.Equal(t, [2]int{3, 2}, [2]int{width, height})
}

func TestResizeKeepsLastFrameSize(t *testing.T) {
	w := New("test", 4, 4, nil)
	require.NoError(t, w.Present(render.NewFramebuffer(4, 4)))

	// Layout runs before the next Present; the upload must still match
	// the pixels already held.
	w.Layout(8, 8)
	width, height, ok := w.frameSize()
	require.True(t, ok)
	assert.Equal(t, [2]int{4, 4}, [2]int{width, height})
	assert.Len(t, w.pix, width*height*4)

	gotW, gotH := w.Size()
	assert.Equal(t, [2]int{8, 8}, [2]int{gotW, gotH}, "next frame uses the new size")

	require.NoError(t, w.Present(render.NewFramebuffer(8, 8)))
	width, height, _ = w.frameSize()
	assert.Equal(t, [2]int{8, 8}, [2]int{width, height})
}

func TestLayoutFollowsWindow(t *testing.T) {
	w := New("test", 4, 4, nil)
	w.Scale = 2

	width, height := w.Layout(200, 100)
	assert.Equal(t, 100, width)
	assert.Equal(t, 50, height)

	width, height = w.Size()
	assert.Equal(t, [2]int{100, 50}, [2]int{width, height})
}

func TestHandleKeys(t *testing.T) {
	w := New("test", 4, 4, nil)
	var seen []ebiten.Key
	w.OnKey = func(k ebiten.Key) { seen = append(seen, k) }

	require.NoError(t, w.handleKeys([]ebiten.Key{ebiten.KeyX, ebiten.KeyA}))
	assert.Equal(t, []ebiten.Key{ebiten.KeyX, ebiten.KeyA}, seen)

	err := w.handleKeys([]ebiten.Key{ebiten.KeyEscape, ebiten.KeyX})
	assert.ErrorIs(t, err, ErrClosed)
	assert.Len(t, seen, 2, "keys after Escape are not delivered")
}
