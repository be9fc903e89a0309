package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

var statusStyle = tcell.StyleDefault.Reverse(true)

// statusText summarises the session for the bottom line.
func (a *App) statusText() string {
	s := a.session
	snap := "off"
	if s.GridSnap {
		snap = fmt.Sprintf("%g", s.GridStep())
	}
	text := fmt.Sprintf(" %s | %d/%d selected | zoom %.2f | snap %s",
		s.State.Name(), len(s.Selection()), s.Layers.Len(), s.View.Zoom, snap)
	if hint := s.Hint(); hint != "" {
		text += " | " + hint
	}
	return text
}

// drawStatus writes the prompt or the status line on the last row.
func (a *App) drawStatus() {
	w, h := a.screen.Size()
	if h <= 0 {
		return
	}
	text := a.statusText()
	if a.prompt.Active() {
		text = a.prompt.Line() + "_"
	}
	a.putLine(0, h-1, w, text, statusStyle)
}

// putLine writes text truncated to width cells, padding with spaces.
func (a *App) putLine(x, y, width int, text string, style tcell.Style) {
	text = a.cond.Truncate(text, width, "…")
	col := x
	for _, r := range text {
		rw := a.cond.RuneWidth(r)
		if rw == 0 {
			continue
		}
		a.screen.SetContent(col, y, r, nil, style)
		col += rw
	}
	for ; col < x+width; col++ {
		a.screen.SetContent(col, y, ' ', nil, style)
	}
}
