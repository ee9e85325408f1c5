package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if !cfg.Render.ResetEachSpan {
		t.Error("reset_each_span should default to true")
	}
	if cfg.Watch.Debounce.Duration != 100*time.Millisecond {
		t.Errorf("debounce = %v, want 100ms", cfg.Watch.Debounce)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Heatmap.Scheme != "plum" {
		t.Errorf("scheme = %q, want plum", cfg.Heatmap.Scheme)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[canvas]
rows = 30
cols = 100
back = "#101010"

[render]
reset_each_span = false
strict = true

[heatmap]
scheme = "sandy"
legend = true

[log]
level = "debug"

[watch]
debounce = "250ms"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Canvas.Rows != 30 || cfg.Canvas.Cols != 100 {
		t.Errorf("canvas = %dx%d, want 30x100", cfg.Canvas.Rows, cfg.Canvas.Cols)
	}
	if cfg.Render.ResetEachSpan || !cfg.Render.Strict {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Heatmap.Scheme != "sandy" || !cfg.Heatmap.Legend {
		t.Errorf("heatmap = %+v", cfg.Heatmap)
	}
	if !cfg.Heatmap.Frame {
		t.Error("unset frame should keep its default")
	}
	if cfg.Watch.Debounce.Duration != 250*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Watch.Debounce)
	}
	if got := cfg.CanvasStyle().Back.Hex(); got != "#101010" {
		t.Errorf("canvas back = %s", got)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[canvas]\nrows = = 3\n")
	_, err := Load(path)

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Path != path {
		t.Errorf("Path = %q, want %q", perr.Path, path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
}

func TestLoadTypeMismatch(t *testing.T) {
	path := writeConfig(t, "[canvas]\nrows = \"many\"\n")
	_, err := Load(path)

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestLoadUnknownSetting(t *testing.T) {
	path := writeConfig(t, "[canvas]\nwidth = 10\n")
	_, err := Load(path)
	if !errors.Is(err, ErrUnknownSetting) {
		t.Fatalf("expected ErrUnknownSetting, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"negative rows", func(c *Config) { c.Canvas.Rows = -1 }, "canvas.rows"},
		{"negative cols", func(c *Config) { c.Canvas.Cols = -1 }, "canvas.cols"},
		{"bad back", func(c *Config) { c.Canvas.Back = "black" }, "canvas.back"},
		{"zero cell rows", func(c *Config) { c.Heatmap.CellRows = 0 }, "heatmap.cell_rows"},
		{"unknown scheme", func(c *Config) { c.Heatmap.Scheme = "rainbow" }, "heatmap.scheme"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce.Duration = -time.Second }, "watch.debounce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Errorf("Path = %q, want %q", verr.Path, tt.path)
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Error("expected errors.Is(err, ErrValidationFailed)")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CONGRAM_CANVAS_ROWS":    "12",
		"CONGRAM_RENDER_STRICT":  "true",
		"CONGRAM_HEATMAP_SCHEME": "bluegreenyellow",
		"CONGRAM_WATCH_DEBOUNCE": "1s",
		"CONGRAM_LOG_LEVEL":      "warn",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Canvas.Rows != 12 || !cfg.Render.Strict || cfg.Heatmap.Scheme != "bluegreenyellow" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Watch.Debounce.Duration != time.Second || cfg.Log.Level != "warn" {
		t.Errorf("env not applied: %+v", cfg)
	}

	if err := Default().ApplyEnv(noEnv); err != nil {
		t.Errorf("ApplyEnv(noEnv) error = %v", err)
	}
}

func TestApplyEnvBadValue(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(name string) (string, bool) {
		if name == "CONGRAM_CANVAS_COLS" {
			return "wide", true
		}
		return "", false
	})

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Path != "CONGRAM_CANVAS_COLS" {
		t.Errorf("Path = %q", perr.Path)
	}
}

func TestLoadAppliesEnvOverFile(t *testing.T) {
	path := writeConfig(t, "[canvas]\nrows = 30\n")
	t.Setenv("CONGRAM_CANVAS_ROWS", "40")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Canvas.Rows != 40 {
		t.Errorf("rows = %d, want 40", cfg.Canvas.Rows)
	}
}

func TestHeatmapOptions(t *testing.T) {
	cfg := Default()
	cfg.Heatmap.Legend = true
	opts, err := cfg.HeatmapOptions()
	if err != nil {
		t.Fatalf("HeatmapOptions() error = %v", err)
	}
	if opts.Scheme == nil || !opts.Legend || !opts.Frame || opts.CellRows != 3 {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestLoggingConfig(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	lc := cfg.LoggingConfig()
	if lc.Level != "debug" || lc.Prefix != "congram" {
		t.Errorf("unexpected logging config %+v", lc)
	}
}
