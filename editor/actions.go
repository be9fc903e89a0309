package editor

import (
	"go.uber.org/zap"

	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/keybind"
)

// zoomStep is the zoom factor per zoom_in/zoom_out, kept within
// [minZoom, maxZoom] screen units per world unit.
const (
	zoomStep = 1.25
	minZoom  = 0.01
	maxZoom  = 1000
)

// Apply runs a hotkey action. It reports false for actions the session does
// not own (quit and the command prompt belong to the front end).
func (s *Session) Apply(a keybind.Action) bool {
	s.logger.Debug("action", zap.Stringer("action", a), zap.String("state", s.State.Name()))
	switch a {
	case keybind.ActionDelete:
		s.Delete()
	case keybind.ActionCopy:
		if n := s.Copy(); n > 0 {
			s.SetHint("Copied")
		}
	case keybind.ActionPaste:
		s.Paste()
	case keybind.ActionUndo:
		s.Undo()
	case keybind.ActionRedo:
		s.Redo()
	case keybind.ActionMoveUp:
		s.MoveSelection(true)
	case keybind.ActionMoveDown:
		s.MoveSelection(false)
	case keybind.ActionGroup:
		s.ToggleGroup()
	case keybind.ActionUngroup:
		s.Ungroup()
	case keybind.ActionAddLayer:
		s.AddLayer()
	case keybind.ActionAddMirror:
		s.AddMirror()
	case keybind.ActionUnmirror:
		s.Unmirror()
	case keybind.ActionSelectAll:
		s.SelectAll()
	case keybind.ActionClearSelection:
		s.ClearSelection()
	case keybind.ActionToggleGridSnap:
		s.GridSnap = !s.GridSnap
		if s.GridSnap {
			s.SetHint("Grid snap on")
		} else {
			s.SetHint("Grid snap off")
		}
	case keybind.ActionZoomIn:
		s.View.Zoom = geometry.Clamp(s.View.Zoom*zoomStep, minZoom, maxZoom)
	case keybind.ActionZoomOut:
		s.View.Zoom = geometry.Clamp(s.View.Zoom/zoomStep, minZoom, maxZoom)
	case keybind.ActionPanUp:
		s.Pan(geometry.Vec2{Y: 1})
	case keybind.ActionPanDown:
		s.Pan(geometry.Vec2{Y: -1})
	case keybind.ActionPanLeft:
		s.Pan(geometry.Vec2{X: 1})
	case keybind.ActionPanRight:
		s.Pan(geometry.Vec2{X: -1})
	case keybind.ActionRotateLeft:
		s.Rotate(-1)
	case keybind.ActionRotateRight:
		s.Rotate(1)
	case keybind.ActionCycleShape:
		s.CycleShape()
	case keybind.ActionCycleColor:
		s.CycleColor()
	case keybind.ActionTaperUp:
		s.AdjustTaper(1)
	case keybind.ActionTaperDown:
		s.AdjustTaper(-1)
	case keybind.ActionExportClipboard:
		s.ExportToClipboard()
	case keybind.ActionImportClipboard:
		s.ImportFromClipboard()
	case keybind.ActionResetView:
		s.View.Pan = geometry.Vec2{}
		s.View.Zoom = s.Config.Zoom
	default:
		return false
	}
	return true
}

// Pan moves the view in dir, scaled by the frame time so the speed does not
// depend on the frame rate. Terminal key repeat delivers one action per
// event, so a minimum step keeps single presses visible.
func (s *Session) Pan(dir geometry.Vec2) {
	dt := s.Delta
	if dt < 1.0/30 {
		dt = 1.0 / 30
	}
	step := s.Config.PanSpeed * dt / s.View.Zoom
	s.View.Pan = s.View.Pan.Add(dir.Scale(step))
}
