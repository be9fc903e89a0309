package editor

import (
	"time"

	"go.uber.org/zap"

	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/keybind"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// Button is the state of a pointer button during one frame.
type Button struct {
	Pressed  bool // went down this frame
	Down     bool // held at the end of the frame
	Released bool // went up this frame
}

// Input is everything the front end observed since the previous frame.
type Input struct {
	Now       time.Time
	Viewport  geometry.Rect // screen area the world is drawn into
	Cursor    geometry.Vec2 // screen position
	Primary   Button        // selects, drags and commits placement
	Secondary Button        // box select
	Shift     bool
	Actions   []keybind.Action
}

// Frame runs one update pass: clock, hotkeys, pointer state machine, deferred
// deletes and the undo snapshot. Everything happens synchronously.
func (s *Session) Frame(in Input) {
	s.tick(in.Now)
	if !in.Viewport.Size().Equal(geometry.Vec2{}) {
		s.View.Rect = in.Viewport
	}
	s.Cursor = in.Cursor

	for _, a := range in.Actions {
		s.Apply(a)
	}
	s.pollPicker()

	s.updateBox(in)
	s.updatePointer(in)
	s.Hover = s.HitTest(s.Cursor)

	s.endFrame()
}

// tick advances the frame clock and the gradient oscillator.
func (s *Session) tick(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	if !s.lastTick.IsZero() {
		s.Delta = float32(now.Sub(s.lastTick).Seconds())
		if s.Delta < 0 {
			s.Delta = 0
		}
	}
	s.lastTick = now
	s.Elapsed += s.Delta
	s.Gradient = geometry.PingPong(s.Elapsed, s.Config.GradientPeriod)

	if s.hintLeft > 0 {
		s.hintLeft -= s.Delta
		if s.hintLeft <= 0 {
			s.hint = ""
		}
	}
}

// endFrame removes layers flagged for deletion and records a snapshot for
// any mutation made while the session is idle. Drags and placements snapshot
// once, on the frame they end.
func (s *Session) endFrame() {
	if deleted := s.Layers.SweepPendingDeletes(); len(deleted) > 0 {
		s.State = remapState(s.State, func(i int) (int, bool) {
			return shroud.Renumber(i, deleted)
		})
		if s.Hover >= 0 {
			if h, ok := shroud.Renumber(s.Hover, deleted); ok {
				s.Hover = h
			} else {
				s.Hover = -1
			}
		}
		s.logger.Info("deleted layers", zap.Ints("indices", deleted))
		s.markChanged()
	}

	if _, idle := s.State.(Inaction); idle && s.changed {
		s.snapshot()
		s.changed = false
	}
	if err := s.Layers.Validate(); err != nil {
		s.logger.Error("layer invariant violated", zap.Error(err))
	}
}
