package keybind

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/multierr"
)

// Bindings maps actions to chords. Missing actions are unbound.
type Bindings map[Action]Chord

// Defaults returns the built-in bindings.
func Defaults() Bindings {
	return Bindings{
		ActionDelete:          Key("Delete", 0),
		ActionCopy:            Key("C", ModCtrl),
		ActionPaste:           Key("V", ModCtrl),
		ActionUndo:            Key("Z", ModCtrl),
		ActionRedo:            Key("Y", ModCtrl),
		ActionMoveUp:          Key("PageUp", 0),
		ActionMoveDown:        Key("PageDown", 0),
		ActionGroup:           Key("G", ModCtrl),
		ActionUngroup:         Key("G", ModCtrl|ModShift),
		ActionAddLayer:        Key("N", 0),
		ActionAddMirror:       Key("M", 0),
		ActionUnmirror:        Key("M", ModShift),
		ActionSelectAll:       Key("A", ModCtrl),
		ActionClearSelection:  Key("Escape", 0),
		ActionToggleGridSnap:  Key("G", 0),
		ActionZoomIn:          Key("Equals", 0),
		ActionZoomOut:         Key("Minus", 0),
		ActionPanUp:           Key("Up", 0),
		ActionPanDown:         Key("Down", 0),
		ActionPanLeft:         Key("Left", 0),
		ActionPanRight:        Key("Right", 0),
		ActionRotateLeft:      Key("Q", 0),
		ActionRotateRight:     Key("E", 0),
		ActionCycleShape:      Key("S", 0),
		ActionCycleColor:      Key("C", 0),
		ActionTaperUp:         Key("T", 0),
		ActionTaperDown:       Key("T", ModShift),
		ActionExportClipboard: Key("E", ModCtrl),
		ActionImportClipboard: Key("R", ModCtrl),
		ActionResetView:       Key("Home", 0),
		ActionCommand:         Key("Colon", 0),
		ActionQuit:            Key("Q", ModCtrl),
	}
}

// Lookup returns the action bound to c. When several actions share a chord
// the first in file order wins.
func (b Bindings) Lookup(c Chord) (Action, bool) {
	if !c.IsBound() {
		return ActionNone, false
	}
	for _, a := range Actions() {
		if b[a] == c {
			return a, true
		}
	}
	return ActionNone, false
}

// Parse reads a keybinding file on top of the defaults. Bad lines are
// reported in the returned error and leave the default for that action, so
// the bindings are always usable.
func Parse(r io.Reader) (Bindings, error) {
	b := Defaults()
	var errs error
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, value, ok := strings.Cut(line, " ")
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("line %d: missing chord for %q", lineNo, name))
			continue
		}
		a, ok := ParseAction(name)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("line %d: unknown action %q", lineNo, name))
			continue
		}
		c, err := ParseChord(value)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		b[a] = c
	}
	if err := sc.Err(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("read keybinds: %w", err))
	}
	return b, errs
}

// Format writes one line per action in file order.
func Format(w io.Writer, b Bindings) error {
	bw := bufio.NewWriter(w)
	for _, a := range Actions() {
		if _, err := fmt.Fprintf(bw, "%s %s\n", a, b[a]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load reads the keybinding file at path. A missing file yields the
// defaults without error.
func Load(path string) (Bindings, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), err
	}
	defer f.Close()
	return Parse(f)
}

// Save writes b to path.
func Save(path string, b Bindings) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Format(f, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
