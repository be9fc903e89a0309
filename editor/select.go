package editor

import (
	"go.uber.org/zap"

	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// HitTest returns the topmost layer whose screen polygon contains p, or -1.
// Higher z wins; on equal z a selected layer beats an unselected one, and
// after that the later layer, which is drawn on top.
func (s *Session) HitTest(p geometry.Vec2) int {
	sel := s.Selection()
	best := -1
	var bestZ float32
	for i := range s.Layers.Items {
		c := &s.Layers.Items[i]
		if c.PendingDelete {
			continue
		}
		if !geometry.PointInPolygon(p, s.View.PolygonToScreen(c.Polygon())) {
			continue
		}
		z := c.Layer.Offset.Z
		switch {
		case best < 0, z > bestZ:
		case z == bestZ && contains(sel, i) && !contains(sel, best):
		case z == bestZ && contains(sel, i) == contains(sel, best):
		default:
			continue
		}
		best, bestZ = i, z
	}
	return best
}

// BoxHits returns every layer whose screen polygon touches r.
func (s *Session) BoxHits(r geometry.Rect) []int {
	var out []int
	for i := range s.Layers.Items {
		c := &s.Layers.Items[i]
		if c.PendingDelete {
			continue
		}
		if geometry.PolygonTouchesRect(s.View.PolygonToScreen(c.Polygon()), r) {
			out = append(out, i)
		}
	}
	return out
}

// updateBox starts, updates and ends a box select. While the box is held the
// selection is recomputed from it every frame.
func (s *Session) updateBox(in Input) {
	if s.Box == nil {
		if _, idle := s.State.(Inaction); !idle || !in.Secondary.Pressed {
			return
		}
		s.Box = &BoxSelect{Start: in.Cursor}
	}
	s.Box.End = in.Cursor
	s.State = Inaction{Selection: s.BoxHits(s.Box.Rect())}
	if in.Secondary.Released || !in.Secondary.Down {
		s.logger.Debug("box select", zap.Ints("selection", s.Selection()))
		s.Box = nil
	}
}

// updatePointer advances the interaction state machine for one frame.
func (s *Session) updatePointer(in Input) {
	switch st := s.State.(type) {
	case Placing:
		s.moveAnchored(st.Selection, st.Start)
		if in.Primary.Pressed {
			s.State = Inaction{}
			s.logger.Debug("placement committed", zap.Int("layers", len(st.Selection)))
		}
	case Dragging:
		s.moveAnchored(st.Selection, st.Start)
		if in.Primary.Released || !in.Primary.Down {
			s.State = Inaction{Selection: st.Indices()}
		}
	case Inaction:
		if in.Primary.Pressed && s.Box == nil {
			s.click(st, in.Shift)
		}
	}
}

// click selects the layer under the cursor, expanded to its group, and
// starts dragging the selection. Shift adds to the selection. A miss clears
// it.
func (s *Session) click(st Inaction, shift bool) {
	hit := s.HitTest(s.Cursor)
	if hit < 0 {
		s.State = Inaction{}
		return
	}
	members := s.Layers.GroupMembers(hit)
	var sel []int
	if shift {
		sel = append(sel, st.Selection...)
		for _, m := range members {
			if !contains(sel, m) {
				sel = append(sel, m)
			}
		}
	} else {
		sel = members
	}
	s.State = Dragging{Selection: s.anchor(sel), Start: s.Cursor}
	s.logger.Debug("drag started", zap.Ints("selection", sel))
}

// anchor captures each layer's current offset.
func (s *Session) anchor(sel []int) []Anchored {
	out := make([]Anchored, 0, len(sel))
	for _, i := range sel {
		if s.Layers.Valid(i) {
			out = append(out, Anchored{Index: i, Anchor: s.Layers.At(i).Layer.Offset.XY()})
		}
	}
	return out
}

// moveAnchored places every anchored layer at its anchor plus the pointer
// movement since start, snapped to the grid when enabled. Partners follow
// with y inverted; when both partners are anchored only the first one seen
// drives the pair.
func (s *Session) moveAnchored(sel []Anchored, start geometry.Vec2) {
	delta := s.View.ScreenDeltaToWorld(s.Cursor.Sub(start))
	if delta.Equal(geometry.Vec2{}) {
		return
	}
	step := s.GridStep()
	seen := make(map[int]bool, len(sel))
	for _, a := range sel {
		if !s.Layers.Valid(a.Index) {
			continue
		}
		c := s.Layers.At(a.Index)
		if c.Mirror != shroud.NoMirror && seen[c.Mirror] {
			continue
		}
		seen[a.Index] = true
		p := a.Anchor.Add(delta)
		if s.GridSnap {
			p = geometry.SnapVec(p, step)
		}
		if c.Layer.Offset.XY().Equal(p) {
			continue
		}
		s.Layers.SetOffset(a.Index, c.Layer.Offset.WithXY(p))
		s.markChanged()
	}
}

// SelectAll selects every layer.
func (s *Session) SelectAll() {
	sel := make([]int, s.Layers.Len())
	for i := range sel {
		sel[i] = i
	}
	s.State = Inaction{Selection: sel}
}

// ClearSelection drops to an empty Inaction, abandoning any gesture.
func (s *Session) ClearSelection() {
	s.State = Inaction{}
	s.Box = nil
}
