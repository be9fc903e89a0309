package editor

import (
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
)

// State is the interaction state of the whole layer collection. It is one of
// Inaction, Dragging or Placing.
type State interface {
	// Name returns the state name for display
	Name() string
	// Indices returns the selected layer indices
	Indices() []int
	state()
}

// Inaction is the idle state. A box select runs on top of it.
type Inaction struct {
	Selection []int
}

// Anchored is a selected layer and its offset when the gesture began.
type Anchored struct {
	Index  int
	Anchor geometry.Vec2
}

// Dragging moves the selection with the pointer until the button is released.
type Dragging struct {
	Selection []Anchored
	Start     geometry.Vec2 // screen position of the press
}

// Placing moves freshly pasted or created layers with the pointer until the
// next click commits them.
type Placing struct {
	Selection []Anchored
	Start     geometry.Vec2
}

func (Inaction) Name() string { return "INACTION" }
func (Dragging) Name() string { return "DRAGGING" }
func (Placing) Name() string  { return "PLACING" }

func (s Inaction) Indices() []int { return append([]int(nil), s.Selection...) }
func (s Dragging) Indices() []int { return anchoredIndices(s.Selection) }
func (s Placing) Indices() []int  { return anchoredIndices(s.Selection) }

func (Inaction) state() {}
func (Dragging) state() {}
func (Placing) state()  {}

func anchoredIndices(sel []Anchored) []int {
	out := make([]int, len(sel))
	for i, a := range sel {
		out[i] = a.Index
	}
	return out
}

func contains(sel []int, i int) bool {
	for _, s := range sel {
		if s == i {
			return true
		}
	}
	return false
}

// remapState rewrites every index in s through f. Entries for which f
// reports false are dropped.
func remapState(s State, f func(int) (int, bool)) State {
	switch s := s.(type) {
	case Inaction:
		var out []int
		for _, i := range s.Selection {
			if j, ok := f(i); ok {
				out = append(out, j)
			}
		}
		return Inaction{Selection: out}
	case Dragging:
		return Dragging{Selection: remapAnchored(s.Selection, f), Start: s.Start}
	case Placing:
		return Placing{Selection: remapAnchored(s.Selection, f), Start: s.Start}
	}
	return s
}

func remapAnchored(sel []Anchored, f func(int) (int, bool)) []Anchored {
	var out []Anchored
	for _, a := range sel {
		if j, ok := f(a.Index); ok {
			out = append(out, Anchored{Index: j, Anchor: a.Anchor})
		}
	}
	return out
}
