package keybind

import (
	"fmt"
	"strings"
)

// Unbound is written in place of a chord for actions with no key.
const Unbound = "is in the Gamma Void"

// Mods is a set of modifier keys.
type Mods uint8

const (
	ModCtrl Mods = 1 << iota
	ModAlt
	ModShift
)

// prefixes lists modifiers in the only order the file accepts them.
var prefixes = []struct {
	mod    Mods
	prefix string
}{
	{ModCtrl, "Ctrl+"},
	{ModAlt, "Alt+"},
	{ModShift, "Shift+"},
}

// Chord is a base key with optional modifiers. The zero Chord is unbound.
type Chord struct {
	Mods Mods
	Key  string
}

// Key constructs a chord.
func Key(key string, mods Mods) Chord { return Chord{Mods: mods, Key: key} }

// IsBound reports whether the chord names a key.
func (c Chord) IsBound() bool { return c.Key != "" }

// String formats the chord as it appears in the keybinding file.
func (c Chord) String() string {
	if !c.IsBound() {
		return Unbound
	}
	var sb strings.Builder
	for _, p := range prefixes {
		if c.Mods&p.mod != 0 {
			sb.WriteString(p.prefix)
		}
	}
	sb.WriteString(c.Key)
	return sb.String()
}

// ParseChord parses "Ctrl+Alt+Shift+Key" with each prefix optional but in
// that order, or the unbound sentinel.
func ParseChord(s string) (Chord, error) {
	if s == Unbound {
		return Chord{}, nil
	}
	var c Chord
	rest := s
	for _, p := range prefixes {
		if strings.HasPrefix(rest, p.prefix) {
			c.Mods |= p.mod
			rest = rest[len(p.prefix):]
		}
	}
	if rest == "" {
		return Chord{}, fmt.Errorf("chord %q has no key", s)
	}
	if !knownKeys[rest] {
		for _, p := range prefixes {
			if strings.HasPrefix(rest, p.prefix) {
				return Chord{}, fmt.Errorf("chord %q: modifiers must be in Ctrl+Alt+Shift+ order", s)
			}
		}
		return Chord{}, fmt.Errorf("chord %q: unknown key %q", s, rest)
	}
	c.Key = rest
	return c, nil
}

// knownKeys holds every base key name the front end can produce.
var knownKeys = func() map[string]bool {
	m := map[string]bool{}
	for c := 'A'; c <= 'Z'; c++ {
		m[string(c)] = true
	}
	for c := '0'; c <= '9'; c++ {
		m[string(c)] = true
	}
	for i := 1; i <= 12; i++ {
		m[fmt.Sprintf("F%d", i)] = true
	}
	for _, k := range []string{
		"Up", "Down", "Left", "Right", "Home", "End", "PageUp", "PageDown",
		"Insert", "Delete", "Backspace", "Enter", "Escape", "Tab", "Space",
		"Minus", "Equals", "Plus", "Comma", "Period", "Slash", "Colon",
		"Semicolon", "LeftBracket", "RightBracket",
	} {
		m[k] = true
	}
	return m
}()

// IsKnownKey reports whether name is a valid base key.
func IsKnownKey(name string) bool { return knownKeys[name] }
