package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Luexks/luexks-shroud-editor-sub000/config"
	"github.com/Luexks/luexks-shroud-editor-sub000/editor"
	"github.com/Luexks/luexks-shroud-editor-sub000/export"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/imageio"
	"github.com/Luexks/luexks-shroud-editor-sub000/render"
)

type options struct {
	renderPath string
	size       int
	format     string
	output     string
	shapes     string
	reference  string
	terminal   string
	input      string
}

func main() {
	var opts options
	flag.StringVar(&opts.renderPath, "render", "", "Render the layers to a PNG file and exit")
	flag.IntVar(&opts.size, "size", 512, "Image size in pixels for -render")
	flag.StringVar(&opts.format, "format", "", "Convert the layers to shroud, shapes or json and exit")
	flag.StringVar(&opts.output, "o", "", "Output file for -format (default: stdout)")
	flag.StringVar(&opts.shapes, "shapes", "", "Shape library to load before the layers")
	flag.StringVar(&opts.reference, "ref", "", "Reference image shown behind the layers")
	flag.StringVar(&opts.terminal, "terminal", "", "Force terminal output: ascii or unicode")
	help := flag.Bool("help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [shroud.txt]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A shroud layer editor for block designs.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # Start the editor\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -shapes shapes.lua shroud.txt    # Edit with a custom shape library\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -render out.png shroud.txt       # Render a preview\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format json -o out.json shroud.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  SHROUD_CONFIG, SHROUD_KEYBINDS, SHROUD_LOG, SHROUD_VERBOSE, SHROUD_TERMINAL\n")
		fmt.Fprintf(os.Stderr, "\nInteractive Mode Commands:\n")
		fmt.Fprintf(os.Stderr, "  :w <file>                  # Write the layers\n")
		fmt.Fprintf(os.Stderr, "  :e <file>                  # Load layers or a shape library\n")
		fmt.Fprintf(os.Stderr, "  :export <format> <file>    # Export as shroud, shapes or json\n")
		fmt.Fprintf(os.Stderr, "  :png <file>                # Save a preview image\n")
		fmt.Fprintf(os.Stderr, "  :offset x y z, :size w h, :angle deg, :taper t, :shape id\n")
	fmt.Fprintf(os.Stderr, "  :link, :ungroup, :grid size, :keys, :q\n")
	}
	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}
	opts.input = flag.Arg(0)

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if opts.terminal == "" {
		opts.terminal = env.Terminal
	}
	cfg, err := config.Load(env.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	batch := opts.renderPath != "" || opts.format != ""
	logPath := ""
	if !batch {
		// the screen owns stdout and stderr
		logPath = cfg.LogPath
		if env.LogPath != "" {
			logPath = env.LogPath
		}
	}
	l, err := newLogger(env.Verbose, batch, logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer l.Sync()
	zap.ReplaceGlobals(l)

	if batch {
		err = runBatch(cfg, l, opts)
	} else {
		err = runInteractive(cfg, env, l, opts)
	}
	if err != nil {
		l.Debug("exiting with error", zap.Error(err))
		l.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Batch runs only report warnings
// unless verbose; an empty path logs to stderr.
func newLogger(verbose, batch bool, path string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc = zap.NewDevelopmentConfig()
	} else if batch {
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	if path != "" {
		zc.OutputPaths = []string{path}
		zc.ErrorOutputPaths = []string{path}
	}
	return zc.Build()
}

// loadSession creates a session and fills it from the command line files.
func loadSession(cfg *config.Config, l *zap.Logger, opts options) (*editor.Session, error) {
	s := editor.NewSession(cfg, editor.WithLogger(l), editor.WithImageDecoder(imageio.NewDecoder(imageio.DefaultMaxSize)))
	if err := fillSession(s, opts); err != nil {
		return nil, err
	}
	return s, nil
}

func fillSession(s *editor.Session, opts options) error {
	for _, path := range []string{opts.shapes, opts.input} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := s.ImportText(string(data)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if opts.reference != "" {
		img, err := imageio.NewDecoder(imageio.DefaultMaxSize).DecodeFile(opts.reference)
		if err != nil {
			return err
		}
		s.Reference = &img
	}
	return nil
}

// runBatch converts or renders the input without opening the editor.
func runBatch(cfg *config.Config, l *zap.Logger, opts options) error {
	if opts.input == "" && opts.shapes == "" {
		return errors.New("-render and -format need an input file")
	}
	s, err := loadSession(cfg, l, opts)
	if err != nil {
		return err
	}

	if opts.format != "" {
		if err := convert(s, opts.format, opts.output); err != nil {
			return err
		}
	}
	if opts.renderPath != "" {
		if err := renderPNG(s, opts.renderPath, opts.size); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Rendered %d layers to %s\n", s.Layers.Len(), opts.renderPath)
	}
	return nil
}

func convert(s *editor.Session, format, output string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, export.GetAvailableFormats())
	}
	exp, err := export.NewExporter(f)
	if err != nil {
		return err
	}
	text, err := exp.Export(&export.Document{Layers: s.Layers.Layers(), Library: s.Library})
	if err != nil {
		return err
	}
	if output == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Successfully exported to %s\n", output)
	return nil
}

// renderPNG draws the whole design, fitted to a size x size image.
func renderPNG(s *editor.Session, path string, size int) error {
	if size <= 0 {
		return fmt.Errorf("invalid size %d", size)
	}
	sc := render.FromSession(s)
	sc.Fit(geometry.Rect{Max: geometry.Vec2{X: float32(size), Y: float32(size)}}, float32(size)/16)
	sc.GridStep = sc.View.GridStep(s.Config.GridSize, s.Config.MinGridPixels)

	g := render.NewGGBackend(size, size)
	defer g.Close()
	if err := render.Draw(g, sc); err != nil {
		return err
	}
	return g.SavePNG(path)
}
