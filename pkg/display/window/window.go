//go:build !tinygo

// Package window presents frames in a desktop window through ebiten.
package window

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/tepi-engine/tepi/pkg/render"
)

// ErrClosed is returned by Run when the user closes the window with Escape.
var ErrClosed = errors.New("window: closed")

// Window is a display.Presenter backed by an ebiten game loop.
type Window struct {
	Title string
	Scale int
	TPS   int

	// OnKey, if set, is called from the game loop for each newly pressed
	// key other than Escape.
	OnKey func(ebiten.Key)

	mu     sync.Mutex
	width  int
	height int
	pix    []byte
	pixW   int
	pixH   int
	dirty  bool
	img    *ebiten.Image
	keys   []ebiten.Key
	step   func() error
	log    *zap.Logger
	frames int
}

// New creates a width x height window. The framebuffer scales by Scale
// on screen.
func New(title string, width, height int, log *zap.Logger) *Window {
	if log == nil {
		log = zap.NewNop()
	}
	return &Window{
		Title:  title,
		Scale:  1,
		TPS:    60,
		width:  width,
		height: height,
		log:    log,
	}
}

// Size returns the framebuffer size the window displays.
func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// Present copies fb for the next Draw, top row first.
func (w *Window) Present(fb *render.Framebuffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pix = Pixels(w.pix, fb)
	w.pixW, w.pixH = fb.Width, fb.Height
	w.dirty = true
	w.frames++
	return nil
}

// Frames returns how many frames were presented.
func (w *Window) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Run opens the window and calls step once per tick until step fails or
// the window closes. It blocks.
func (w *Window) Run(step func() error) error {
	w.step = step

	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.width*max(w.Scale, 1), w.height*max(w.Scale, 1))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(max(w.TPS, 1))

	err := ebiten.RunGame(w)
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	if err := w.handleKeys(w.keys); err != nil {
		return err
	}
	if w.step != nil {
		return w.step()
	}
	return nil
}

func (w *Window) handleKeys(keys []ebiten.Key) error {
	for _, k := range keys {
		w.log.Debug("key pressed", zap.Stringer("key", k))
		if k == ebiten.KeyEscape {
			return ErrClosed
		}
		if w.OnKey != nil {
			w.OnKey(k)
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	defer w.mu.Unlock()

	width, height, ok := w.frameSize()
	if !ok {
		return
	}
	if w.img == nil || w.img.Bounds().Dx() != width || w.img.Bounds().Dy() != height {
		if w.img != nil {
			w.img.Deallocate()
		}
		w.img = ebiten.NewImage(width, height)
		w.dirty = true
	}
	if w.dirty {
		w.img.WritePixels(w.pix)
		w.dirty = false
	}
	screen.DrawImage(w.img, nil)
}

// frameSize returns the dimensions of the last presented frame. The
// upload image follows it, not the layout size, which can change before
// the next Present. Callers hold w.mu.
func (w *Window) frameSize() (width, height int, ok bool) {
	if w.pixW <= 0 || w.pixH <= 0 || len(w.pix) != w.pixW*w.pixH*4 {
		return 0, 0, false
	}
	return w.pixW, w.pixH, true
}

// Layout implements ebiten.Game. The logical screen follows the window so
// the framebuffer is resized to match it.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := max(w.Scale, 1)
	width, height := max(outsideWidth/scale, 1), max(outsideHeight/scale, 1)

	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
	return width, height
}

// Pixels converts fb to RGBA bytes, top row first, reusing dst when it is
// large enough.
func Pixels(dst []byte, fb *render.Framebuffer) []byte {
	n := fb.Width * fb.Height * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]

	for y := range fb.Height {
		src := fb.Pixels[(fb.Height-1-y)*fb.Width:][:fb.Width]
		row := dst[y*fb.Width*4:]
		for x, c := range src {
			r, g, b := c.RGB()
			row[x*4+0] = r
			row[x*4+1] = g
			row[x*4+2] = b
			row[x*4+3] = 0xFF
		}
	}
	return dst
}
