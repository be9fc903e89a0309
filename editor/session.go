// Package editor holds the shroud editing session: the layer collection,
// the interaction state machine, undo history and the hotkey actions.
package editor

import (
	"time"

	"go.uber.org/zap"

	"github.com/Luexks/luexks-shroud-editor-sub000/config"
	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// MaxHistory is the most undo snapshots a session keeps.
const MaxHistory = config.MaxHistory

// hintSeconds is how long a transient hint stays visible.
const hintSeconds = 3

// Clipboard is the system clipboard text service.
type Clipboard interface {
	SetText(text string) error
	Text() (string, error)
}

// ImageDecoder decodes reference images from files.
type ImageDecoder interface {
	DecodeFile(path string) (core.Image, error)
}

// FilePicker asks the user for a path. Open starts a request; Poll is called
// once per frame and reports the chosen path when one is ready.
type FilePicker interface {
	Open()
	Poll() (path string, ok bool)
}

// BoxSelect is an active rubber-band selection in screen coordinates.
type BoxSelect struct {
	Start geometry.Vec2
	End   geometry.Vec2
}

// Rect returns the normalised selection rectangle.
func (b BoxSelect) Rect() geometry.Rect { return geometry.RectFromCorners(b.Start, b.End) }

// Session is the single owner of all editor state.
type Session struct {
	Layers  *shroud.Collection
	Library *shape.Library
	State   State
	History *Snapshots
	View    geometry.View
	Config  *config.Config
	Palette core.Palette

	Box       *BoxSelect
	Hover     int // layer under the cursor, or -1
	Cursor    geometry.Vec2
	GridSnap  bool
	Reference *core.Image

	// Frame clock
	Delta    float32 // seconds since the previous frame
	Elapsed  float32
	Gradient float32 // ping-pongs between 0 and 1
	lastTick time.Time

	copyBuffer []shroud.Container
	changed    bool
	hint       string
	hintLeft   float32

	clipboard Clipboard
	decoder   ImageDecoder
	picker    FilePicker
	logger    *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClipboard sets the clipboard text service.
func WithClipboard(c Clipboard) Option {
	return func(s *Session) { s.clipboard = c }
}

// WithImageDecoder sets the reference image decoder.
func WithImageDecoder(d ImageDecoder) Option {
	return func(s *Session) { s.decoder = d }
}

// WithFilePicker sets the file picker used for reference images.
func WithFilePicker(p FilePicker) Option {
	return func(s *Session) { s.picker = p }
}

// WithLibrary replaces the vanilla shape library.
func WithLibrary(lib *shape.Library) Option {
	return func(s *Session) { s.Library = lib }
}

// NewSession creates an empty session. cfg may be nil for defaults.
func NewSession(cfg *config.Config, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{
		Layers:   shroud.NewCollection(nil),
		Library:  shape.Vanilla(),
		State:    Inaction{},
		History:  NewSnapshots(cfg.HistoryLimit),
		View:     geometry.View{Zoom: cfg.Zoom},
		Config:   cfg,
		Hover:    -1,
		GridSnap: cfg.GridSnap,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if p, err := cfg.Palette(); err == nil {
		s.Palette = p
	} else {
		s.Palette = core.DefaultPalette()
		s.logger.Warn("bad palette in config, using defaults", zap.Error(err))
	}
	s.snapshot()
	return s
}

// Logger returns the session logger.
func (s *Session) Logger() *zap.Logger { return s.logger }

// Selection returns the selected layer indices.
func (s *Session) Selection() []int { return s.State.Indices() }

// IsSelected reports whether layer i is selected.
func (s *Session) IsSelected(i int) bool { return contains(s.State.Indices(), i) }

// Hint returns the transient status message, or "".
func (s *Session) Hint() string { return s.hint }

// SetHint shows a transient status message.
func (s *Session) SetHint(msg string) {
	s.hint = msg
	s.hintLeft = hintSeconds
}

// WorldCursor returns the cursor in world coordinates.
func (s *Session) WorldCursor() geometry.Vec2 { return s.View.ScreenToWorld(s.Cursor) }

// GridStep returns the grid spacing after coarsening for the current zoom.
func (s *Session) GridStep() float32 {
	return s.View.GridStep(s.Config.GridSize, s.Config.MinGridPixels)
}

// markChanged flags that a snapshot is due at the end of the frame.
func (s *Session) markChanged() { s.changed = true }

// snapshot records the collection in history.
func (s *Session) snapshot() {
	if err := s.History.Record(s.Layers); err != nil {
		s.logger.Error("history snapshot failed", zap.Error(err))
		return
	}
	cur, total := s.History.Stats()
	s.logger.Debug("history snapshot", zap.Int("position", cur), zap.Int("total", total))
}

// restore replaces the collection after undo or redo. Selections cannot be
// trusted across snapshots so the session returns to an empty Inaction.
func (s *Session) restore(c *shroud.Collection) {
	s.Layers = c
	s.State = Inaction{}
	s.Box = nil
	s.Hover = -1
	s.changed = false
}

// Undo steps back one snapshot.
func (s *Session) Undo() bool {
	c, err := s.History.Undo()
	if err != nil {
		s.logger.Error("undo failed", zap.Error(err))
		return false
	}
	if c == nil {
		return false
	}
	s.restore(c)
	s.logger.Info("undo", zap.Int("layers", c.Len()))
	return true
}

// Redo steps forward one snapshot.
func (s *Session) Redo() bool {
	c, err := s.History.Redo()
	if err != nil {
		s.logger.Error("redo failed", zap.Error(err))
		return false
	}
	if c == nil {
		return false
	}
	s.restore(c)
	s.logger.Info("redo", zap.Int("layers", c.Len()))
	return true
}

// Replace swaps in a new collection as one undoable edit.
func (s *Session) Replace(items []shroud.Container) {
	s.Layers = shroud.NewCollection(items)
	s.State = Inaction{}
	s.Box = nil
	s.Hover = -1
	s.markChanged()
}
