package terminal

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

// ErrClipboardEmpty is returned before the terminal has reported any
// clipboard contents.
var ErrClipboardEmpty = errors.New("clipboard: nothing received from the terminal")

// Clipboard is the system clipboard reached through OSC 52. Writes go
// straight to the terminal; reads are asynchronous, so Text returns the last
// contents the terminal reported.
type Clipboard struct {
	screen tcell.Screen
	text   string
	ok     bool
}

// NewClipboard creates a clipboard bound to the screen.
func NewClipboard(s tcell.Screen) *Clipboard {
	return &Clipboard{screen: s}
}

// SetText copies text to the terminal clipboard.
func (c *Clipboard) SetText(text string) error {
	c.screen.SetClipboard([]byte(text))
	c.set(text)
	return nil
}

// Text returns the most recent clipboard contents.
func (c *Clipboard) Text() (string, error) {
	if !c.ok {
		return "", ErrClipboardEmpty
	}
	return c.text, nil
}

// Request asks the terminal for its clipboard. The answer arrives later as
// an EventClipboard.
func (c *Clipboard) Request() { c.screen.GetClipboard() }

// Receive stores the contents carried by a clipboard event.
func (c *Clipboard) Receive(ev *tcell.EventClipboard) { c.set(string(ev.Data())) }

func (c *Clipboard) set(text string) {
	c.text = text
	c.ok = true
}
