package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Luexks/luexks-shroud-editor-sub000/config"
	"github.com/Luexks/luexks-shroud-editor-sub000/editor"
	"github.com/Luexks/luexks-shroud-editor-sub000/imageio"
	"github.com/Luexks/luexks-shroud-editor-sub000/keybind"
	"github.com/Luexks/luexks-shroud-editor-sub000/terminal"
)

// runInteractive opens the editor on the controlling terminal.
func runInteractive(cfg *config.Config, env *config.Env, l *zap.Logger, opts options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the editor needs a terminal; use -render or -format for batch output")
	}

	keysPath := cfg.KeybindsPath
	if env.Keybinds != "" {
		keysPath = env.Keybinds
	}
	binds, err := keybind.Load(keysPath)
	if err != nil {
		// the valid lines still apply
		l.Warn("keybinding file has errors", zap.String("path", keysPath), zap.Error(err))
	}

	caps := terminal.DetectCapabilities(os.Getenv, opts.terminal)
	l.Info("terminal detected",
		zap.String("name", caps.Name),
		zap.Bool("color", caps.SupportsColor),
		zap.Int("color_depth", caps.ColorDepth),
		zap.Bool("cjk", caps.IsCJK))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to setup terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	app := terminal.New(screen, cfg, binds,
		[]terminal.Option{
			terminal.WithCapabilities(caps),
			terminal.WithLogger(l),
			terminal.WithKeybindsPath(keysPath),
		},
		editor.WithImageDecoder(imageio.NewDecoder(imageio.DefaultMaxSize)))
	if err := fillSession(app.Session(), opts); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
