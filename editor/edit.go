package editor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// taperStep is the taper change per taper_up/taper_down.
const taperStep = 0.1

// AddLayer creates a default layer at the world cursor and enters Placing
// over it.
func (s *Session) AddLayer() int {
	l := shroud.DefaultLayer()
	p := s.WorldCursor()
	if s.GridSnap {
		p = geometry.SnapVec(p, s.GridStep())
	}
	l.Offset = l.Offset.WithXY(p)
	c, err := shroud.NewContainer(l, s.Library)
	if err != nil {
		s.logger.Error("default layer rejected", zap.Error(err))
		return -1
	}
	i := s.Layers.Append(c)
	s.State = Placing{Selection: s.anchor([]int{i}), Start: s.Cursor}
	s.markChanged()
	return i
}

// AddMirror creates a partner for every selected layer that has none. The
// partners join the selection.
func (s *Session) AddMirror() int {
	sel := s.Selection()
	added := 0
	for _, i := range sel {
		if !s.Layers.Valid(i) || s.Layers.At(i).Mirror != shroud.NoMirror {
			continue
		}
		j, err := s.Layers.AddMirror(i, s.Library)
		if err != nil {
			s.logger.Warn("add mirror failed", zap.Int("layer", i), zap.Error(err))
			continue
		}
		sel = append(sel, j)
		added++
	}
	if added > 0 {
		s.State = Inaction{Selection: sel}
		s.markChanged()
	}
	return added
}

// Unmirror widows every selected layer and its partner.
func (s *Session) Unmirror() int {
	n := 0
	for _, i := range s.Selection() {
		if s.Layers.Valid(i) && s.Layers.At(i).Mirror != shroud.NoMirror {
			s.Layers.Unlink(i)
			n++
		}
	}
	if n > 0 {
		s.markChanged()
	}
	return n
}

// LinkSelected pairs the two selected layers as mirror partners.
func (s *Session) LinkSelected() error {
	sel := s.Selection()
	if len(sel) != 2 {
		return fmt.Errorf("select exactly two layers to link, have %d", len(sel))
	}
	if err := s.Layers.LinkMirror(sel[0], sel[1]); err != nil {
		return err
	}
	s.markChanged()
	return nil
}

// Delete flags the selected layers; they are removed at the end of the frame.
func (s *Session) Delete() int {
	n := 0
	for _, i := range s.Selection() {
		if s.Layers.Valid(i) {
			s.Layers.At(i).PendingDelete = true
			n++
		}
	}
	return n
}

// MoveSelection moves a contiguous selection one place towards index 0
// (up) or towards the end. Rejected moves change nothing.
func (s *Session) MoveSelection(up bool) bool {
	sel := s.Selection()
	var remap func(int) int
	if up {
		remap = s.Layers.MoveUp(sel)
	} else {
		remap = s.Layers.MoveDown(sel)
	}
	if remap == nil {
		return false
	}
	s.State = remapState(s.State, func(i int) (int, bool) { return remap(i), true })
	if s.Hover >= 0 {
		s.Hover = remap(s.Hover)
	}
	s.markChanged()
	return true
}

// ToggleGroup groups or ungroups the selection.
func (s *Session) ToggleGroup() bool {
	if !s.Layers.ToggleGroup(s.Selection()) {
		return false
	}
	s.markChanged()
	return true
}

// Ungroup dissolves every group the selection touches.
func (s *Session) Ungroup() bool {
	if !s.Layers.Ungroup(s.Selection()) {
		return false
	}
	s.markChanged()
	return true
}

// forSelected calls fn for every valid selected index. A layer whose
// partner was already visited is skipped, since the setters write both.
func (s *Session) forSelected(fn func(i int)) bool {
	seen := make(map[int]bool)
	for _, i := range s.Selection() {
		if !s.Layers.Valid(i) || seen[s.Layers.At(i).Mirror] {
			continue
		}
		seen[i] = true
		fn(i)
	}
	if len(seen) > 0 {
		s.markChanged()
	}
	return len(seen) > 0
}

// SetOffset moves every selected layer to off.
func (s *Session) SetOffset(off geometry.Vec3) bool {
	return s.forSelected(func(i int) { s.Layers.SetOffset(i, off) })
}

// SetSize resizes every selected layer.
func (s *Session) SetSize(size geometry.Vec2) bool {
	return s.forSelected(func(i int) { s.Layers.SetSize(i, size) })
}

// SetAngle sets the angle of every selected layer.
func (s *Session) SetAngle(a core.Angle) bool {
	return s.forSelected(func(i int) { s.Layers.SetAngle(i, a) })
}

// Rotate turns every selected layer by one angle-snap step and snaps the
// result. dir is +1 or -1.
func (s *Session) Rotate(dir float32) bool {
	step := s.Config.AngleSnapDegrees
	if step <= 0 {
		step = 15
	}
	return s.forSelected(func(i int) {
		c := s.Layers.At(i)
		deg := geometry.SnapAngle(c.Layer.Angle.Degrees()+dir*step, step)
		s.Layers.SetAngle(i, core.Degrees(deg))
	})
}

// SetTaper sets the taper of every selected layer.
func (s *Session) SetTaper(taper float32) bool {
	return s.forSelected(func(i int) { s.Layers.SetTaper(i, taper) })
}

// AdjustTaper changes the taper of selected SQUARE layers by one step.
func (s *Session) AdjustTaper(dir float32) bool {
	return s.forSelected(func(i int) {
		c := s.Layers.At(i)
		if !c.IsSquare() {
			return
		}
		s.Layers.SetTaper(i, geometry.Clamp(c.Layer.Taper+dir*taperStep, 0, shroud.DefaultTaper))
	})
}

// SetColor assigns slot to one color field of every selected layer.
func (s *Session) SetColor(which, slot core.ColorSlot) bool {
	return s.forSelected(func(i int) { s.Layers.SetColor(i, which, slot) })
}

// CycleColor advances the first fill color of the selection to the next
// slot, starting from the first selected layer.
func (s *Session) CycleColor() bool {
	sel := s.Selection()
	if len(sel) == 0 || !s.Layers.Valid(sel[0]) {
		return false
	}
	next := s.Layers.At(sel[0]).Layer.Color1.Next()
	return s.SetColor(core.Color1, next)
}

// SetShape assigns the named shape to every selected layer.
func (s *Session) SetShape(id string) error {
	idx, ok := s.Library.Lookup(id)
	if !ok {
		return fmt.Errorf("shape %q not found", id)
	}
	var err error
	s.forSelected(func(i int) {
		if e := s.Layers.SetShape(i, idx, s.Library); e != nil {
			err = e
		}
	})
	return err
}

// CycleShape gives the selection the library shape after the first selected
// layer's shape.
func (s *Session) CycleShape() bool {
	sel := s.Selection()
	if len(sel) == 0 || !s.Layers.Valid(sel[0]) {
		return false
	}
	next := (s.Layers.At(sel[0]).ShapeIndex + 1) % s.Library.Len()
	return s.SetShape(s.Library.At(next).ID) == nil
}
