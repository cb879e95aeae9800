package system

import (
	"io"

	"github.com/muesli/termenv"
)

// Console controls the terminal the menu runs in.
type Console interface {
	Clear()
	SetTitle(title string)
}

// Terminal implements Console with ANSI sequences through termenv.
type Terminal struct {
	out *termenv.Output
}

// NewTerminal creates a Terminal writing control sequences to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{out: termenv.NewOutput(w)}
}

// Clear erases the screen and moves the cursor home.
func (t *Terminal) Clear() {
	t.out.ClearScreen()
}

// SetTitle sets the terminal window title.
func (t *Terminal) SetTitle(title string) {
	t.out.SetWindowTitle(title)
}
