// Package keybind reads and writes the keybinding file: one "name chord" line
// per editor action.
package keybind

// Action is an editor command that can be bound to a key chord.
type Action int

const (
	ActionNone Action = iota
	ActionDelete
	ActionCopy
	ActionPaste
	ActionUndo
	ActionRedo
	ActionMoveUp
	ActionMoveDown
	ActionGroup
	ActionUngroup
	ActionAddLayer
	ActionAddMirror
	ActionUnmirror
	ActionSelectAll
	ActionClearSelection
	ActionToggleGridSnap
	ActionZoomIn
	ActionZoomOut
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionRotateLeft
	ActionRotateRight
	ActionCycleShape
	ActionCycleColor
	ActionTaperUp
	ActionTaperDown
	ActionExportClipboard
	ActionImportClipboard
	ActionResetView
	ActionCommand
	ActionQuit
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:            "none",
	ActionDelete:          "delete",
	ActionCopy:            "copy",
	ActionPaste:           "paste",
	ActionUndo:            "undo",
	ActionRedo:            "redo",
	ActionMoveUp:          "move_up",
	ActionMoveDown:        "move_down",
	ActionGroup:           "group",
	ActionUngroup:         "ungroup",
	ActionAddLayer:        "add_layer",
	ActionAddMirror:       "add_mirror",
	ActionUnmirror:        "unmirror",
	ActionSelectAll:       "select_all",
	ActionClearSelection:  "clear_selection",
	ActionToggleGridSnap:  "toggle_grid_snap",
	ActionZoomIn:          "zoom_in",
	ActionZoomOut:         "zoom_out",
	ActionPanUp:           "pan_up",
	ActionPanDown:         "pan_down",
	ActionPanLeft:         "pan_left",
	ActionPanRight:        "pan_right",
	ActionRotateLeft:      "rotate_left",
	ActionRotateRight:     "rotate_right",
	ActionCycleShape:      "cycle_shape",
	ActionCycleColor:      "cycle_color",
	ActionTaperUp:         "taper_up",
	ActionTaperDown:       "taper_down",
	ActionExportClipboard: "export_clipboard",
	ActionImportClipboard: "import_clipboard",
	ActionResetView:       "reset_view",
	ActionCommand:         "command",
	ActionQuit:            "quit",
}

// String returns the name used in the keybinding file
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Actions returns every bindable action in file order.
func Actions() []Action {
	out := make([]Action, 0, actionCount-1)
	for a := ActionNone + 1; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction looks an action up by its file name.
func ParseAction(name string) (Action, bool) {
	for a := ActionNone + 1; a < actionCount; a++ {
		if actionNames[a] == name {
			return a, true
		}
	}
	return ActionNone, false
}
