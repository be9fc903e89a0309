package terminal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Luexks/luexks-shroud-editor-sub000/config"
	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/editor"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/keybind"
	"github.com/Luexks/luexks-shroud-editor-sub000/render"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// testApp runs on a 40x21 simulation screen: a 40x40 pixel canvas over a
// one-row status line, world origin at canvas pixel (20,20).
type testApp struct {
	*App
	screen tcell.SimulationScreen
	now    time.Time
}

func newTestApp(t *testing.T, opts ...Option) *testApp {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(40, 21)
	t.Cleanup(s.Fini)

	cfg := config.Default()
	cfg.GridSnap = false
	opts = append([]Option{WithCapabilities(ForceUnicode())}, opts...)
	return &testApp{
		App:    New(s, cfg, keybind.Defaults(), opts),
		screen: s,
		now:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (a *testApp) step() {
	a.now = a.now.Add(frameInterval)
	a.Step(a.now)
}

func (a *testApp) key(k tcell.Key, r rune, mod tcell.ModMask) {
	a.Handle(tcell.NewEventKey(k, r, mod))
}

func (a *testApp) typeText(text string) {
	for _, r := range text {
		a.key(tcell.KeyRune, r, tcell.ModNone)
	}
}

func (a *testApp) addLayer(t *testing.T, x, y float32) {
	t.Helper()
	l := shroud.DefaultLayer()
	l.Offset = geometry.Vec3{X: x, Y: y}
	c, err := shroud.NewContainer(l, a.session.Library)
	if err != nil {
		t.Fatal(err)
	}
	a.session.Layers.Append(c)
}

func (a *testApp) row(y int) string {
	w, _ := a.screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := a.screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestChordFromEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
		ok   bool
	}{
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), "N", true},
		{"shifted letter", tcell.NewEventKey(tcell.KeyRune, 'M', tcell.ModNone), "Shift+M", true},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), "7", true},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), "Ctrl+Z", true},
		{"alt letter", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "Alt+X", true},
		{"colon", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModShift), "Colon", true},
		{"equals", tcell.NewEventKey(tcell.KeyRune, '=', tcell.ModNone), "Equals", true},
		{"page up", tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), "PageUp", true},
		{"shift arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), "Shift+Up", true},
		{"function", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "F5", true},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), "Delete", true},
		{"unnamed rune", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ChordFromEvent(tt.ev)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && c.String() != tt.want {
				t.Errorf("chord = %q, want %q", c.String(), tt.want)
			}
			if ok {
				if _, err := keybind.ParseChord(c.String()); err != nil {
					t.Errorf("chord is not valid in the keybinding file: %v", err)
				}
			}
		})
	}
}

func TestDetectCapabilities(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		mode    string
		color   bool
		depth   int
		unicode UnicodeLevel
		cjk     bool
	}{
		{"empty", nil, "", false, 0, UnicodeNone, false},
		{"xterm", map[string]string{"TERM": "xterm-256color", "LANG": "en_US.UTF-8"}, "", true, 256, UnicodeBasic, false},
		{"truecolor", map[string]string{"TERM": "xterm", "COLORTERM": "truecolor", "LC_ALL": "C.UTF-8"}, "", true, 24, UnicodeBasic, false},
		{"kitty", map[string]string{"TERM": "xterm-kitty", "LANG": "en_GB.utf8"}, "", true, 24, UnicodeFull, false},
		{"no color", map[string]string{"TERM": "xterm-256color", "NO_COLOR": "1", "LANG": "en_US.UTF-8"}, "", false, 0, UnicodeBasic, false},
		{"linux console", map[string]string{"TERM": "linux", "LANG": "en_US.UTF-8"}, "", false, 0, UnicodeNone, false},
		{"cjk", map[string]string{"TERM": "xterm-256color", "LANG": "ja_JP.UTF-8"}, "", true, 256, UnicodeBasic, true},
		{"forced ascii", map[string]string{"TERM": "xterm-kitty", "LANG": "en_US.UTF-8"}, "ascii", false, 0, UnicodeNone, false},
		{"forced unicode", nil, "unicode", true, 24, UnicodeFull, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := DetectCapabilities(func(k string) string { return tt.env[k] }, tt.mode)
			if caps.SupportsColor != tt.color || caps.ColorDepth != tt.depth {
				t.Errorf("color = %v/%d, want %v/%d", caps.SupportsColor, caps.ColorDepth, tt.color, tt.depth)
			}
			if caps.UnicodeLevel != tt.unicode {
				t.Errorf("unicode = %v, want %v", caps.UnicodeLevel, tt.unicode)
			}
			if caps.IsCJK != tt.cjk {
				t.Errorf("cjk = %v, want %v", caps.IsCJK, tt.cjk)
			}
		})
	}
}

func TestCanvasFillAndOutline(t *testing.T) {
	c := NewCanvas(10, 5)
	if c.Width() != 10 || c.Height() != 10 {
		t.Fatalf("canvas = %dx%d pixels", c.Width(), c.Height())
	}
	red := colorful.Color{R: 1}
	white := colorful.Color{R: 1, G: 1, B: 1}
	c.Clear(render.Background)
	sq := []geometry.Vec2{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}}
	err := c.DrawBatch(render.Batch{Items: []render.Item{{Points: sq, Fill: red, Line: white}}})
	if err != nil {
		t.Fatal(err)
	}
	if c.At(5, 5) != red {
		t.Errorf("inside pixel = %v", c.At(5, 5).Hex())
	}
	if c.At(2, 5) != white {
		t.Errorf("edge pixel = %v, want outline", c.At(2, 5).Hex())
	}
	if c.At(0, 0) != render.Background {
		t.Errorf("outside pixel = %v", c.At(0, 0).Hex())
	}
	if c.At(-1, 3) != (colorful.Color{}) || c.At(10, 0) != (colorful.Color{}) {
		t.Error("out of range pixel not zero")
	}
}

func TestCanvasReference(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Clear(colorful.Color{})
	img := &core.Image{Width: 1, Height: 1, Pix: []uint8{255, 255, 255, 255}}
	c.DrawReference(img, geometry.Rect{Max: geometry.Vec2{X: 2, Y: 2}})
	if got := c.At(1, 1); got.R < 0.49 || got.R > 0.51 {
		t.Errorf("blended pixel = %v, want half white", got.Hex())
	}
	if got := c.At(3, 3); got != (colorful.Color{}) {
		t.Errorf("pixel outside dst = %v", got.Hex())
	}
}

func TestCanvasBlitModes(t *testing.T) {
	tests := []struct {
		name string
		caps Capabilities
		ok   func(r rune) bool
	}{
		{"unicode", ForceUnicode(), func(r rune) bool { return r == upperHalf }},
		{"no unicode", Capabilities{SupportsColor: true, ColorDepth: 256}, func(r rune) bool { return r == ' ' }},
		{"no color", ForceASCII(), func(r rune) bool { return strings.ContainsRune(asciiRamp, r) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tcell.NewSimulationScreen("UTF-8")
			if err := s.Init(); err != nil {
				t.Fatal(err)
			}
			defer s.Fini()
			s.SetSize(4, 2)
			c := NewCanvas(4, 2)
			c.Clear(render.Background)
			c.Blit(s, tt.caps)
			r, _, _, _ := s.GetContent(1, 1)
			if !tt.ok(r) {
				t.Errorf("cell rune = %q", r)
			}
		})
	}
}

func TestMouseDrag(t *testing.T) {
	a := newTestApp(t)
	a.addLayer(t, 0, 0)

	a.Handle(tcell.NewEventMouse(20, 9, tcell.Button1, tcell.ModNone))
	a.step()
	if _, ok := a.session.State.(editor.Dragging); !ok {
		t.Fatalf("state = %s, want DRAGGING", a.session.State.Name())
	}
	a.Handle(tcell.NewEventMouse(23, 9, tcell.Button1, tcell.ModNone))
	a.step()
	a.Handle(tcell.NewEventMouse(25, 9, tcell.ButtonNone, tcell.ModNone))
	a.step()

	if _, ok := a.session.State.(editor.Inaction); !ok {
		t.Errorf("state = %s after release", a.session.State.Name())
	}
	if got := a.session.Layers.At(0).Layer.Offset.X; got != 5 {
		t.Errorf("offset x = %v, want 5", got)
	}
	if sel := a.session.Selection(); len(sel) != 1 || sel[0] != 0 {
		t.Errorf("selection = %v", sel)
	}
}

func TestRightDragBoxSelects(t *testing.T) {
	a := newTestApp(t)
	a.addLayer(t, 0, 0)
	a.addLayer(t, -12, -12)

	a.Handle(tcell.NewEventMouse(17, 8, tcell.Button2, tcell.ModNone))
	a.step()
	a.Handle(tcell.NewEventMouse(30, 15, tcell.Button2, tcell.ModNone))
	a.step()
	a.Handle(tcell.NewEventMouse(30, 15, tcell.ButtonNone, tcell.ModNone))
	a.step()
	if sel := a.session.Selection(); len(sel) != 1 || sel[0] != 0 {
		t.Errorf("selection = %v, want [0]", sel)
	}
	if a.session.Box != nil {
		t.Error("box select still active")
	}
}

func TestWheelZooms(t *testing.T) {
	a := newTestApp(t)
	a.Handle(tcell.NewEventMouse(5, 5, tcell.WheelUp, tcell.ModNone))
	a.step()
	if a.session.View.Zoom <= 1 {
		t.Errorf("zoom = %v", a.session.View.Zoom)
	}
}

func TestKeyActions(t *testing.T) {
	a := newTestApp(t)
	a.Handle(tcell.NewEventMouse(25, 5, tcell.ButtonNone, tcell.ModNone))
	a.key(tcell.KeyRune, 'n', tcell.ModNone)
	a.step()
	if a.session.Layers.Len() != 1 {
		t.Fatalf("add layer key gave %d layers", a.session.Layers.Len())
	}
	if _, ok := a.session.State.(editor.Placing); !ok {
		t.Errorf("state = %s, want PLACING", a.session.State.Name())
	}

	a.key(tcell.KeyEscape, 0, tcell.ModNone)
	a.step()
	a.key(tcell.KeyCtrlA, 0, tcell.ModCtrl)
	a.step()
	if len(a.session.Selection()) != 1 {
		t.Errorf("select all gave %v", a.session.Selection())
	}
	a.key(tcell.KeyDelete, 0, tcell.ModNone)
	a.step()
	if a.session.Layers.Len() != 0 {
		t.Errorf("delete left %d layers", a.session.Layers.Len())
	}

	a.key(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	if !a.Done() {
		t.Error("quit key ignored")
	}
}

func TestImportKeyRequestsClipboard(t *testing.T) {
	a := newTestApp(t)
	a.key(tcell.KeyCtrlR, 0, tcell.ModCtrl)
	if !a.pendingImport {
		t.Error("import did not wait for the clipboard")
	}
	if len(a.pending.Actions) != 0 {
		t.Errorf("actions queued before clipboard arrived: %v", a.pending.Actions)
	}
}

func TestClipboard(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.clipboard.Text(); !errors.Is(err, ErrClipboardEmpty) {
		t.Errorf("empty clipboard err = %v", err)
	}
	if err := a.clipboard.SetText("shroud={}"); err != nil {
		t.Fatal(err)
	}
	if got, _ := a.clipboard.Text(); got != "shroud={}" {
		t.Errorf("text = %q", got)
	}
}

func TestStatusLine(t *testing.T) {
	a := newTestApp(t)
	a.addLayer(t, 0, 0)
	a.step()
	if got := a.row(20); !strings.Contains(got, "INACTION | 0/1 selected") {
		t.Errorf("status = %q", got)
	}
	r, _, _, _ := a.screen.GetContent(20, 10)
	if r != upperHalf {
		t.Errorf("canvas cell = %q", r)
	}

	a.session.SetHint(strings.Repeat("x", 80))
	a.step()
	if got := a.row(20); !strings.HasSuffix(strings.TrimRight(got, " "), "…") {
		t.Errorf("long status not truncated: %q", got)
	}
}

func TestPromptCommands(t *testing.T) {
	a := newTestApp(t)
	a.addLayer(t, 0, 5)
	a.addLayer(t, 0, -5)
	a.session.State = editor.Inaction{Selection: []int{0, 1}}

	run := func(line string) {
		a.key(tcell.KeyRune, ':', tcell.ModNone)
		if !a.prompt.Active() {
			t.Fatal("prompt did not open")
		}
		a.typeText(line)
		a.key(tcell.KeyEnter, 0, tcell.ModNone)
		a.step()
	}

	run("link")
	if a.session.Layers.At(0).Mirror != 1 {
		t.Fatalf("link failed: %q", a.session.Hint())
	}
	run("offset 1 2 3")
	if got := a.session.Layers.At(1).Layer.Offset; got != (geometry.Vec3{X: 1, Y: -2}) {
		t.Errorf("partner offset = %v", got)
	}
	run("angle 30")
	if got := a.session.Layers.At(0).Layer.Angle.Degrees(); got != 30 {
		t.Errorf("angle = %v", got)
	}
	run("size 4 2")
	if got := a.session.Layers.At(1).Layer.Size; got != (geometry.Vec2{X: 4, Y: 2}) {
		t.Errorf("size = %v", got)
	}
	run("shape HEXAGON")
	if a.session.Layers.At(0).ShapeID != "HEXAGON" {
		t.Error("shape command ignored")
	}
	run("line 1")
	if a.session.Layers.At(1).Layer.LineColor != core.Color2 {
		t.Error("line color command ignored")
	}
	run("grid 5")
	if a.session.Config.GridSize != 5 {
		t.Errorf("grid = %v", a.session.Config.GridSize)
	}
	a.session.Layers.ToggleGroup([]int{0, 1})
	run("ungroup")
	if g := a.session.Layers.At(0).Group; g != shroud.NoGroup {
		t.Errorf("group after ungroup = %d", g)
	}

	errs := map[string]string{
		"offset 1 2":   "takes 3 numbers",
		"taper x":      "not a number",
		"color1 7":     "not one of",
		"shape NOPE":   "NOPE",
		"frobnicate":   "unknown command",
		"export xml a": "unknown format",
		"ungroup":      "no group selected",
	}
	for line, want := range errs {
		run(line)
		if !strings.Contains(a.session.Hint(), want) {
			t.Errorf("%q hint = %q, want %q", line, a.session.Hint(), want)
		}
	}

	run("quit")
	if !a.Done() {
		t.Error("quit command ignored")
	}
}

func TestPromptEditing(t *testing.T) {
	p := &Prompt{}
	p.Begin()
	p.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	p.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))
	p.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if p.Line() != ":a" {
		t.Errorf("line = %q", p.Line())
	}
	p.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if p.Active() {
		t.Error("escape did not close the prompt")
	}

	p.Open()
	for _, r := range "ref.png" {
		p.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	if _, ok := p.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); ok {
		t.Error("path submitted as a command")
	}
	if path, ok := p.Poll(); !ok || path != "ref.png" {
		t.Errorf("poll = %q %v", path, ok)
	}
	if _, ok := p.Poll(); ok {
		t.Error("path delivered twice")
	}
}

func TestWriteAndLoadFiles(t *testing.T) {
	a := newTestApp(t)
	a.addLayer(t, 3, 4)
	dir := t.TempDir()
	shroudPath := filepath.Join(dir, "layers.txt")
	jsonPath := filepath.Join(dir, "layers.json")
	pngPath := filepath.Join(dir, "preview.png")

	for _, line := range []string{"w " + shroudPath, "export json " + jsonPath, "png " + pngPath} {
		a.executeCommand(line)
	}
	for _, p := range []string{shroudPath, jsonPath, pngPath} {
		if fi, err := os.Stat(p); err != nil || fi.Size() == 0 {
			t.Errorf("%s not written: %v", filepath.Base(p), err)
		}
	}

	a.session.Replace(nil)
	a.executeCommand("e " + shroudPath)
	if a.session.Layers.Len() != 1 || a.session.Layers.At(0).Layer.Offset.X != 3 {
		t.Errorf("load gave %d layers, hint %q", a.session.Layers.Len(), a.session.Hint())
	}

	shapesPath := filepath.Join(dir, "shapes.txt")
	os.WriteFile(shapesPath, []byte(`{ {200 {{verts={{0,0}{1,0}{0,1}}ports={}}}} }`), 0o644)
	a.executeCommand("load " + shapesPath)
	if _, ok := a.session.Library.Lookup("200"); !ok {
		t.Errorf("shapes not imported: %q", a.session.Hint())
	}

	a.executeCommand("e " + filepath.Join(dir, "missing.txt"))
	if !strings.Contains(a.session.Hint(), "missing.txt") {
		t.Errorf("hint = %q", a.session.Hint())
	}
}

func TestSaveKeybinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	a := newTestApp(t, WithKeybindsPath(path))
	a.executeCommand("keys")
	binds, err := keybind.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c := binds[keybind.ActionUndo]; c.String() != "Ctrl+Z" {
		t.Errorf("undo bound to %q", c)
	}
}
