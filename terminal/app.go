// Package terminal is the interactive front end: a tcell screen showing the
// half-block rasterised scene, mouse and key input translated into editor
// frames, a command prompt and a status line.
package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/Luexks/luexks-shroud-editor-sub000/config"
	"github.com/Luexks/luexks-shroud-editor-sub000/editor"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/keybind"
	"github.com/Luexks/luexks-shroud-editor-sub000/render"
)

// frameInterval paces the update loop at about 30 frames per second.
const frameInterval = 33 * time.Millisecond

// App owns the screen and the editing session.
type App struct {
	screen    tcell.Screen
	session   *editor.Session
	binds     keybind.Bindings
	caps      Capabilities
	cond      *runewidth.Condition
	canvas    *Canvas
	clipboard *Clipboard
	prompt    *Prompt
	logger    *zap.Logger

	keybindsPath string

	// input gathered since the last frame
	pending   editor.Input
	primary   bool
	secondary bool
	cursor    geometry.Vec2

	pendingImport bool
	quit          bool
}

// Option configures an App.
type Option func(*App)

// WithCapabilities overrides the detected terminal features.
func WithCapabilities(c Capabilities) Option {
	return func(a *App) { a.caps = c }
}

// WithLogger sets the logger shared with the session.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithKeybindsPath sets where the :keys command saves bindings.
func WithKeybindsPath(path string) Option {
	return func(a *App) { a.keybindsPath = path }
}

// New creates an App on an initialised screen. The session gets the App's
// clipboard and prompt as its clipboard and file picker; extra session
// options such as an image decoder are passed through.
func New(screen tcell.Screen, cfg *config.Config, binds keybind.Bindings, opts []Option, sessionOpts ...editor.Option) *App {
	a := &App{
		screen:    screen,
		binds:     binds,
		caps:      ForceUnicode(),
		clipboard: NewClipboard(screen),
		prompt:    &Prompt{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.cond = runewidth.NewCondition()
	a.cond.EastAsianWidth = a.caps.IsCJK

	sessionOpts = append([]editor.Option{
		editor.WithLogger(a.logger),
		editor.WithClipboard(a.clipboard),
		editor.WithFilePicker(a.prompt),
	}, sessionOpts...)
	a.session = editor.NewSession(cfg, sessionOpts...)

	w, h := screen.Size()
	a.canvas = NewCanvas(w, h-1)
	return a
}

// Session returns the editing session.
func (a *App) Session() *editor.Session { return a.session }

// Done reports whether the user asked to quit.
func (a *App) Done() bool { return a.quit }

// Run processes events and frames until quit or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	stop := make(chan struct{})
	defer close(stop)
	go a.screen.ChannelEvents(events, stop)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.logger.Info("interactive session started", zap.String("terminal", a.caps.Name), zap.Int("color_depth", a.caps.ColorDepth))
	for !a.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			a.Handle(ev)
		case now := <-ticker.C:
			a.Step(now)
		}
	}
	a.logger.Info("interactive session ended")
	return nil
}

// Handle records one terminal event for the next frame.
func (a *App) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventClipboard:
		a.clipboard.Receive(ev)
		if a.pendingImport {
			a.pendingImport = false
			a.pending.Actions = append(a.pending.Actions, keybind.ActionImportClipboard)
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.prompt.Active() {
		if line, ok := a.prompt.HandleKey(ev); ok {
			a.executeCommand(line)
		}
		return
	}
	chord, ok := ChordFromEvent(ev)
	if !ok {
		return
	}
	action, ok := a.binds.Lookup(chord)
	if !ok {
		a.logger.Debug("unbound key", zap.Stringer("chord", chord))
		return
	}
	switch action {
	case keybind.ActionQuit:
		a.quit = true
	case keybind.ActionCommand:
		a.prompt.Begin()
	case keybind.ActionImportClipboard:
		a.pendingImport = true
		a.clipboard.Request()
	default:
		a.pending.Actions = append(a.pending.Actions, action)
	}
}

// cellToScreen maps a cell to the centre of its upper canvas pixel pair.
func cellToScreen(x, y int) geometry.Vec2 {
	return geometry.Vec2{X: float32(x) + 0.5, Y: float32(y)*2 + 1}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	a.cursor = cellToScreen(x, y)
	buttons := ev.Buttons()

	if buttons&tcell.WheelUp != 0 {
		a.pending.Actions = append(a.pending.Actions, keybind.ActionZoomIn)
	}
	if buttons&tcell.WheelDown != 0 {
		a.pending.Actions = append(a.pending.Actions, keybind.ActionZoomOut)
	}

	primary := buttons&tcell.Button1 != 0
	secondary := buttons&tcell.Button2 != 0
	track(&a.pending.Primary, a.primary, primary)
	track(&a.pending.Secondary, a.secondary, secondary)
	a.primary, a.secondary = primary, secondary
	if ev.Modifiers()&tcell.ModShift != 0 {
		a.pending.Shift = true
	}
}

// track folds one button transition into the frame's button state.
func track(b *editor.Button, was, now bool) {
	switch {
	case now && !was:
		b.Pressed = true
	case was && !now:
		b.Released = true
	}
}

// viewport is the canvas area above the status line, in canvas pixels.
func (a *App) viewport() geometry.Rect { return a.canvas.Bounds() }

// Step runs one session frame with the input gathered since the last one
// and redraws.
func (a *App) Step(now time.Time) {
	w, h := a.screen.Size()
	a.canvas.Resize(w, h-1)

	in := a.pending
	in.Now = now
	in.Viewport = a.viewport()
	in.Cursor = a.cursor
	in.Primary.Down = a.primary
	in.Secondary.Down = a.secondary
	a.session.Frame(in)
	a.pending = editor.Input{}

	a.draw()
}

func (a *App) draw() {
	a.screen.Clear()
	if err := render.Draw(a.canvas, render.FromSession(a.session)); err != nil {
		a.logger.Warn("draw failed", zap.Error(err))
	}
	a.canvas.Blit(a.screen, a.caps)
	a.drawStatus()
	a.screen.Show()
}
