package config

import (
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CONGRAM_"

// envSetter applies one environment value.
type envSetter func(c *Config, val string) error

// envMapping maps environment variables to settings.
var envMapping = map[string]envSetter{
	"CONGRAM_CANVAS_ROWS":            intSetter(func(c *Config) *int { return &c.Canvas.Rows }),
	"CONGRAM_CANVAS_COLS":            intSetter(func(c *Config) *int { return &c.Canvas.Cols }),
	"CONGRAM_CANVAS_BACK":            stringSetter(func(c *Config) *string { return &c.Canvas.Back }),
	"CONGRAM_RENDER_RESET_EACH_SPAN": boolSetter(func(c *Config) *bool { return &c.Render.ResetEachSpan }),
	"CONGRAM_RENDER_PAD_EMPTY":       boolSetter(func(c *Config) *bool { return &c.Render.PadEmpty }),
	"CONGRAM_RENDER_STRICT":          boolSetter(func(c *Config) *bool { return &c.Render.Strict }),
	"CONGRAM_HEATMAP_SCHEME":         stringSetter(func(c *Config) *string { return &c.Heatmap.Scheme }),
	"CONGRAM_HEATMAP_CELL_ROWS":      intSetter(func(c *Config) *int { return &c.Heatmap.CellRows }),
	"CONGRAM_HEATMAP_FRAME":          boolSetter(func(c *Config) *bool { return &c.Heatmap.Frame }),
	"CONGRAM_HEATMAP_LEGEND":         boolSetter(func(c *Config) *bool { return &c.Heatmap.Legend }),
	"CONGRAM_LOG_LEVEL":              stringSetter(func(c *Config) *string { return &c.Log.Level }),
	"CONGRAM_LOG_TIMESTAMPS":         boolSetter(func(c *Config) *bool { return &c.Log.Timestamps }),
	"CONGRAM_WATCH_DEBOUNCE": func(c *Config, val string) error {
		d, err := time.ParseDuration(val)
		if err != nil {
			return err
		}
		c.Watch.Debounce = Duration{d}
		return nil
	},
}

// ApplyEnv overlays environment variables found by lookup.
// Empty string values are treated as valid values, not as unset.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for name, set := range envMapping {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(c, val); err != nil {
			return &ParseError{Path: name, Message: err.Error(), Err: err}
		}
	}
	return nil
}

func intSetter(field func(*Config) *int) envSetter {
	return func(c *Config, val string) error {
		v, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

func boolSetter(field func(*Config) *bool) envSetter {
	return func(c *Config, val string) error {
		v, err := strconv.ParseBool(val)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

func stringSetter(field func(*Config) *string) envSetter {
	return func(c *Config, val string) error {
		*field(c) = val
		return nil
	}
}
