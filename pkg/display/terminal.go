package display

import (
	"context"
	"fmt"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/tepi-engine/tepi/pkg/render"
)

// cellSetter is the part of uv.Screen HalfBlocks writes to.
type cellSetter interface {
	SetCell(x, y int, c *uv.Cell)
}

// HalfBlocks draws fb onto cols x rows terminal cells. Each cell shows two
// framebuffer rows with ▀: foreground for the upper pixel and background
// for the lower one. Framebuffer row 0 is the bottom, so the top cell row
// shows the highest framebuffer rows.
func HalfBlocks(scr cellSetter, fb *render.Framebuffer, cols, rows int) {
	for row := range rows {
		topY := fb.Height - 1 - row*2
		botY := topY - 1

		for col := 0; col < cols && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: fb.GetPixel(col, topY).NRGBA(),
					Bg: fb.GetPixel(col, botY).NRGBA(),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// Terminal presents frames as half-block cells in the alternate screen.
type Terminal struct {
	term       *uv.Terminal
	cols, rows int
}

// NewTerminal takes over the controlling terminal.
func NewTerminal() (*Terminal, error) {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	return &Terminal{term: term, cols: cols, rows: rows}, nil
}

// Size returns the framebuffer size that fills the terminal.
func (t *Terminal) Size() (int, int) {
	return t.cols, t.rows * 2
}

// Resize follows a terminal size change.
func (t *Terminal) Resize(cols, rows int) {
	t.cols, t.rows = cols, rows
	t.term.Erase()
	t.term.Resize(cols, rows)
}

// Events returns the terminal's input and resize events.
func (t *Terminal) Events() <-chan uv.Event {
	return t.term.Events()
}

// Present draws fb and flushes it to the terminal.
func (t *Terminal) Present(fb *render.Framebuffer) error {
	HalfBlocks(t.term, fb, t.cols, t.rows)
	if err := t.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.term.ExitAltScreen()
	t.term.ShowCursor()
	return t.term.Shutdown(context.Background())
}
