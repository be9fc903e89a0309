package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Prompt is the one-line command input at the bottom of the screen. It also
// serves as the editor's file picker: Open starts a path request and Poll
// hands the entered path back to the session.
type Prompt struct {
	active  bool
	label   string
	buffer  []rune
	forPath bool

	path  string
	ready bool
}

// Active reports whether the prompt is taking keystrokes.
func (p *Prompt) Active() bool { return p.active }

// Line returns the label and the text typed so far.
func (p *Prompt) Line() string { return p.label + string(p.buffer) }

// Begin opens the prompt for a command.
func (p *Prompt) Begin() { p.begin(":", false) }

// Open opens the prompt for a file path.
func (p *Prompt) Open() { p.begin("image path: ", true) }

func (p *Prompt) begin(label string, forPath bool) {
	p.active = true
	p.label = label
	p.buffer = p.buffer[:0]
	p.forPath = forPath
}

// Poll returns a path entered after Open, once.
func (p *Prompt) Poll() (string, bool) {
	if !p.ready {
		return "", false
	}
	p.ready = false
	return p.path, true
}

// HandleKey edits the prompt. It returns a command line when Enter submits
// one; submitted paths are kept for Poll instead.
func (p *Prompt) HandleKey(ev *tcell.EventKey) (command string, submitted bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.active = false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.buffer) > 0 {
			p.buffer = p.buffer[:len(p.buffer)-1]
		} else {
			p.active = false
		}
	case tcell.KeyEnter:
		p.active = false
		text := string(p.buffer)
		if p.forPath {
			if text != "" {
				p.path, p.ready = text, true
			}
			return "", false
		}
		return text, true
	case tcell.KeyRune:
		if unicode.IsPrint(ev.Rune()) {
			p.buffer = append(p.buffer, ev.Rune())
		}
	}
	return "", false
}
