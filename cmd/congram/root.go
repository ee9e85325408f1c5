package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/congram/internal/config"
	"github.com/dshills/congram/internal/logging"
	"github.com/dshills/congram/internal/renderer"
	"github.com/dshills/congram/internal/renderer/backend"
	"github.com/dshills/congram/internal/renderer/dump"
	"github.com/dshills/congram/internal/renderer/scene"
)

// Canvas size used when neither flags, config nor the terminal supply one.
const (
	fallbackRows = 24
	fallbackCols = 80
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

// app holds state shared by the subcommands.
type app struct {
	// Flags
	configPath string
	logLevel   string
	format     string
	rows, cols int
	reset      bool
	strict     bool

	cfg    *config.Config
	logger *log.Logger

	// newBackend opens the display for the view command.
	newBackend func() (backend.Backend, error)
}

func newRootCmd() *cobra.Command {
	return newApp().command()
}

func newApp() *app {
	return &app{
		newBackend: func() (backend.Backend, error) {
			return backend.NewTerminal()
		},
	}
}

// command builds the root command and its subcommands around a.
func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "congram",
		Short: "Render colored, labeled boxes and charts as truecolor terminal text",
		Long:  longRoot,

		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath(), "Path to configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.format, "format", formatText, "Output format (text, json)")
	flags.IntVar(&a.rows, "rows", 0, "Canvas rows (default: config, then terminal height)")
	flags.IntVar(&a.cols, "cols", 0, "Canvas columns (default: config, then terminal width)")
	flags.BoolVar(&a.reset, "reset", true, "Reset colors after every span")
	flags.BoolVar(&a.strict, "strict", false, "Fail on overlapping or out-of-range output")

	root.AddCommand(
		newRenderCmd(a),
		newHeatmapCmd(a),
		newHistCmd(a),
		newViewCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and applies flag overrides.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		if !logging.ValidLevel(a.logLevel) {
			return fmt.Errorf("invalid log level %q", a.logLevel)
		}
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("reset") {
		cfg.Render.ResetEachSpan = a.reset
	}
	if flags.Changed("strict") {
		cfg.Render.Strict = a.strict
	}
	if a.rows < 0 || a.cols < 0 {
		return fmt.Errorf("canvas size must not be negative: %dx%d", a.rows, a.cols)
	}
	if a.rows > 0 {
		cfg.Canvas.Rows = a.rows
	}
	if a.cols > 0 {
		cfg.Canvas.Cols = a.cols
	}
	if a.format != formatText && a.format != formatJSON {
		return fmt.Errorf("unknown format %q (want %s or %s)", a.format, formatText, formatJSON)
	}

	logCfg := cfg.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	a.cfg = cfg
	a.logger = logging.New(logCfg)
	a.logger.Debug("config loaded", "path", a.configPath)
	return nil
}

// canvasSize resolves the canvas size: configured values first, then the
// terminal attached to stdout, then the fallback.
func (a *app) canvasSize() (rows, cols int) {
	rows, cols = a.cfg.Canvas.Rows, a.cfg.Canvas.Cols
	if rows > 0 && cols > 0 {
		return rows, cols
	}

	termRows, termCols := fallbackRows, fallbackCols
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			termRows, termCols = h, w
		}
	}
	if rows == 0 {
		rows = termRows
	}
	if cols == 0 {
		cols = termCols
	}
	return rows, cols
}

func (a *app) rendererOptions() renderer.Options {
	return renderer.Options{
		ResetEachSpan: a.cfg.Render.ResetEachSpan,
		PadEmpty:      a.cfg.Render.PadEmpty,
		Strict:        a.cfg.Render.Strict,
		Logger:        a.logger,
	}
}

// output composes canvas and writes it in the selected format.
func (a *app) output(cmd *cobra.Command, canvas *scene.Canvas) error {
	r := renderer.New(cmd.OutOrStdout(), a.rendererOptions())
	frame, err := r.Compositor().Compose(canvas)
	if err != nil {
		return err
	}
	if a.format == formatJSON {
		return dump.Write(cmd.OutOrStdout(), frame)
	}
	return r.WriteFrame(frame)
}

var longRoot = `
congram renders trees of colored, labeled rectangles onto a character grid.
Later boxes cover earlier ones; the visible pieces are written as truecolor
ANSI text, one line per canvas row.

Scenes are YAML files (.yaml, .yml) or Lua scripts (.lua). Heatmaps and
histograms read CSV, TSV or JSON tables.

Examples:
  congram render scene.yaml
  congram heatmap data.csv --title "Latency"
  congram heatmap run.json --path results.grid --legend
  congram view scene.lua
  congram watch scene.yaml
`
