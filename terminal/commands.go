package terminal

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/export"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/keybind"
	"github.com/Luexks/luexks-shroud-editor-sub000/render"
)

// pngSize is the default preview size for :png.
const pngSize = 512

// executeCommand runs one prompt line. Failures are shown as a hint.
func (a *App) executeCommand(command string) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return
	}
	if err := a.runCommand(parts[0], parts[1:]); err != nil {
		a.session.SetHint(err.Error())
		a.logger.Info("command failed", zap.String("command", command), zap.Error(err))
		return
	}
	a.logger.Debug("command", zap.String("command", command))
}

func (a *App) runCommand(name string, args []string) error {
	s := a.session
	switch name {
	case "q", "quit":
		a.quit = true
	case "e", "edit", "load":
		path, err := argPath(name, args)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return s.ImportText(string(data))
	case "w", "write":
		path, err := argPath(name, args)
		if err != nil {
			return err
		}
		return a.exportFile(export.FormatShroud, path)
	case "export", "exp":
		if len(args) != 2 {
			return fmt.Errorf("usage: export <shroud|shapes|json> <path>")
		}
		format, err := export.ParseFormat(args[0])
		if err != nil {
			return err
		}
		return a.exportFile(format, args[1])
	case "png":
		path, err := argPath(name, args)
		if err != nil {
			return err
		}
		return a.writePNG(path)
	case "ref":
		if len(args) == 0 {
			s.RequestReference()
			return nil
		}
		s.LoadReference(strings.Join(args, " "))
	case "keys":
		if a.keybindsPath == "" {
			return fmt.Errorf("no keybinding file configured")
		}
		if err := keybind.Save(a.keybindsPath, a.binds); err != nil {
			return err
		}
		s.SetHint("Keybindings saved to " + a.keybindsPath)
	case "link":
		return s.LinkSelected()
	case "ungroup":
		if !s.Ungroup() {
			return fmt.Errorf("no group selected")
		}
	case "offset":
		v, err := floats(name, args, 3)
		if err != nil {
			return err
		}
		s.SetOffset(geometry.Vec3{X: v[0], Y: v[1], Z: v[2]})
	case "size":
		v, err := floats(name, args, 2)
		if err != nil {
			return err
		}
		s.SetSize(geometry.Vec2{X: v[0], Y: v[1]})
	case "angle":
		v, err := floats(name, args, 1)
		if err != nil {
			return err
		}
		s.SetAngle(core.Degrees(v[0]))
	case "taper":
		v, err := floats(name, args, 1)
		if err != nil {
			return err
		}
		s.SetTaper(v[0])
	case "shape":
		if len(args) != 1 {
			return fmt.Errorf("usage: shape <id>")
		}
		return s.SetShape(args[0])
	case "color1", "color2", "line":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <0|1|2>", name)
		}
		slot, ok := core.ParseColorSlot(args[0])
		if !ok {
			return fmt.Errorf("%s: %q is not one of 0, 1, 2", name, args[0])
		}
		which := map[string]core.ColorSlot{"color1": core.Color1, "color2": core.Color2, "line": core.LineColor}[name]
		s.SetColor(which, slot)
	case "grid":
		v, err := floats(name, args, 1)
		if err != nil {
			return err
		}
		if v[0] <= 0 {
			return fmt.Errorf("grid size must be positive")
		}
		s.Config.GridSize = v[0]
	default:
		return fmt.Errorf("unknown command: %s", name)
	}
	return nil
}

func argPath(name string, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: %s <path>", name)
	}
	return strings.Join(args, " "), nil
}

func floats(name string, args []string, n int) ([]float32, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s takes %d numbers, got %d", name, n, len(args))
	}
	out := make([]float32, n)
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", name, a)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// exportFile writes the session in the given format.
func (a *App) exportFile(format export.Format, path string) error {
	exp, err := export.NewExporter(format)
	if err != nil {
		return err
	}
	text, err := exp.Export(&export.Document{Layers: a.session.Layers.Layers(), Library: a.session.Library})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return err
	}
	a.session.SetHint(fmt.Sprintf("Wrote %s to %s", exp.GetFormatName(), path))
	a.logger.Info("exported", zap.String("format", string(format)), zap.String("path", path))
	return nil
}

// writePNG renders the current view into a square PNG preview.
func (a *App) writePNG(path string) error {
	sc := render.FromSession(a.session)
	scale := float32(pngSize) / max(a.canvas.Bounds().Width(), a.canvas.Bounds().Height(), 1)
	sc.View.Rect = geometry.Rect{Max: geometry.Vec2{X: pngSize, Y: pngSize}}
	sc.View.Zoom *= scale
	sc.HaloPixels *= scale
	sc.Box = nil

	g := render.NewGGBackend(pngSize, pngSize)
	defer g.Close()
	if err := render.Draw(g, sc); err != nil {
		return err
	}
	if err := g.SavePNG(path); err != nil {
		return err
	}
	a.session.SetHint("Saved preview " + path)
	return nil
}
