// Package terminal wraps tcell with the small drawing surface the editor
// needs: sized text output, cursor placement, and decoded key events.
package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Terminal drives a tcell screen.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// New creates a terminal over the process's controlling tty.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return &Terminal{screen: screen}, nil
}

// Init puts the terminal into raw mode and takes over the screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	return nil
}

// Fini restores the terminal to its previous state.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the screen dimensions in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Clear erases the pending screen contents.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

// Show flushes pending drawing to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// ShowCursor places the cursor at the given cell.
func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

// HideCursor hides the cursor until the next ShowCursor.
func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// DrawText writes text starting at the given cell and returns the column
// after the last cell written. Grapheme clusters are kept intact: the
// cluster's first rune carries the cell and the rest ride along as
// combining content.
func (t *Terminal) DrawText(x, y int, text string, style tcell.Style) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.StepString(text, state)

		runes := []rune(cluster)
		t.screen.SetContent(x, y, runes[0], runes[1:], style)

		width := runewidth.StringWidth(cluster)
		if width < 1 {
			width = 1
		}
		x += width
	}
	return x
}

// PollKey blocks until the next input event and decodes it.
func (t *Terminal) PollKey() Key {
	return convertEvent(t.screen.PollEvent())
}
