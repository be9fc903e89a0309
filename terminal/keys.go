package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/Luexks/luexks-shroud-editor-sub000/keybind"
)

var namedKeys = map[tcell.Key]string{
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyInsert:     "Insert",
	tcell.KeyDelete:     "Delete",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyEnter:      "Enter",
	tcell.KeyEscape:     "Escape",
	tcell.KeyTab:        "Tab",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

var runeKeys = map[rune]string{
	' ': "Space",
	'-': "Minus",
	'=': "Equals",
	'+': "Plus",
	',': "Comma",
	'.': "Period",
	'/': "Slash",
	':': "Colon",
	';': "Semicolon",
	'[': "LeftBracket",
	']': "RightBracket",
}

// ChordFromEvent converts a key event to the chord the keybinding file
// would name. ok is false for keys the file cannot express.
func ChordFromEvent(ev *tcell.EventKey) (keybind.Chord, bool) {
	var mods keybind.Mods
	m := ev.Modifiers()
	if m&tcell.ModCtrl != 0 {
		mods |= keybind.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= keybind.ModAlt
	}
	if m&tcell.ModShift != 0 {
		mods |= keybind.ModShift
	}

	k := ev.Key()
	if name, ok := namedKeys[k]; ok {
		return keybind.Key(name, mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return keybind.Key(string(rune('A'+k-tcell.KeyCtrlA)), mods|keybind.ModCtrl), true
	}
	if k != tcell.KeyRune {
		return keybind.Chord{}, false
	}

	r := ev.Rune()
	switch {
	case r >= 'a' && r <= 'z':
		return keybind.Key(string(unicode.ToUpper(r)), mods), true
	case r >= 'A' && r <= 'Z':
		return keybind.Key(string(r), mods|keybind.ModShift), true
	case r >= '0' && r <= '9':
		return keybind.Key(string(r), mods), true
	}
	if name, ok := runeKeys[r]; ok {
		// the shift needed to type a symbol is part of the symbol
		return keybind.Key(name, mods&^keybind.ModShift), true
	}
	return keybind.Chord{}, false
}
