// Package config loads congram settings from a TOML file with
// CONGRAM_* environment overrides.
//
// A missing file is not an error: every setting has a default.
//
//	[canvas]
//	rows = 0        # 0 = terminal height
//	cols = 0        # 0 = terminal width
//	back = "#000000"
//
//	[render]
//	reset_each_span = true
//	pad_empty = false
//	strict = false
//
//	[heatmap]
//	scheme = "plum"
//	cell_rows = 3
//	frame = true
//	legend = false
//
//	[log]
//	level = "info"
//	timestamps = false
//
//	[watch]
//	debounce = "100ms"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/congram/internal/logging"
	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/scheme"
	"github.com/dshills/congram/internal/widget"
)

// Config holds all settings.
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Render  RenderConfig  `toml:"render"`
	Heatmap HeatmapConfig `toml:"heatmap"`
	Log     LogConfig     `toml:"log"`
	Watch   WatchConfig   `toml:"watch"`
}

// CanvasConfig sizes and colors the canvas. Zero rows or cols mean the
// terminal's size.
type CanvasConfig struct {
	Rows int    `toml:"rows"`
	Cols int    `toml:"cols"`
	Back string `toml:"back"`
}

// RenderConfig controls output formatting.
type RenderConfig struct {
	ResetEachSpan bool `toml:"reset_each_span"`
	PadEmpty      bool `toml:"pad_empty"`
	Strict        bool `toml:"strict"`
}

// HeatmapConfig holds heatmap defaults.
type HeatmapConfig struct {
	Scheme   string `toml:"scheme"`
	CellRows int    `toml:"cell_rows"`
	Frame    bool   `toml:"frame"`
	Legend   bool   `toml:"legend"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `toml:"level"`
	Timestamps bool   `toml:"timestamps"`
}

// WatchConfig configures file watching.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration written as a Go duration string.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration such as "250ms".
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Back: "#000000",
		},
		Render: RenderConfig{
			ResetEachSpan: true,
		},
		Heatmap: HeatmapConfig{
			Scheme:   "plum",
			CellRows: widget.DefaultCellRows,
			Frame:    true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Debounce: Duration{100 * time.Millisecond},
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "congram", "config.toml")
}

// Load reads path over the defaults, applies the environment and
// validates the result. An empty path or missing file yields the defaults
// plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.parse(path, data); err != nil {
				return nil, err
			}
		case errors.Is(err, os.ErrNotExist):
			// File doesn't exist, not an error
		default:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse decodes TOML data over c. Unknown keys are rejected.
func (c *Config) parse(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			perr.Line, perr.Column = decodeErr.Position()
		}
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			perr.Err = fmt.Errorf("%w: %v", ErrUnknownSetting, err)
		}
		return perr
	}
	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	switch {
	case c.Canvas.Rows < 0:
		return &ValidationError{Path: "canvas.rows", Value: c.Canvas.Rows, Message: "must not be negative"}
	case c.Canvas.Cols < 0:
		return &ValidationError{Path: "canvas.cols", Value: c.Canvas.Cols, Message: "must not be negative"}
	case c.Heatmap.CellRows < 1:
		return &ValidationError{Path: "heatmap.cell_rows", Value: c.Heatmap.CellRows, Message: "must be at least 1"}
	case !logging.ValidLevel(c.Log.Level):
		return &ValidationError{Path: "log.level", Value: c.Log.Level, Message: "must be debug, info, warn or error"}
	case c.Watch.Debounce.Duration < 0:
		return &ValidationError{Path: "watch.debounce", Value: c.Watch.Debounce, Message: "must not be negative"}
	}

	if _, err := core.ParseHex(c.Canvas.Back); err != nil {
		return &ValidationError{Path: "canvas.back", Value: c.Canvas.Back, Message: err.Error()}
	}
	if _, err := scheme.Lookup(c.Heatmap.Scheme); err != nil {
		return &ValidationError{Path: "heatmap.scheme", Value: c.Heatmap.Scheme, Message: err.Error()}
	}
	return nil
}

// CanvasStyle returns the canvas style: white on the configured back.
func (c *Config) CanvasStyle() core.Style {
	back, err := core.ParseHex(c.Canvas.Back)
	if err != nil {
		back = core.Black
	}
	return core.NewStyle(core.White, back)
}

// HeatmapOptions converts the heatmap section to widget options.
func (c *Config) HeatmapOptions() (widget.HeatmapOptions, error) {
	f, err := scheme.Lookup(c.Heatmap.Scheme)
	if err != nil {
		return widget.HeatmapOptions{}, err
	}
	return widget.HeatmapOptions{
		Scheme:   f,
		CellRows: c.Heatmap.CellRows,
		Frame:    c.Heatmap.Frame,
		Legend:   c.Heatmap.Legend,
		Back:     c.CanvasStyle(),
	}, nil
}

// LoggingConfig converts the log section to a logger config.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Timestamps = c.Log.Timestamps
	return cfg
}
