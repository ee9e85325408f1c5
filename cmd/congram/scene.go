package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/congram/internal/renderer/scene"
	"github.com/dshills/congram/internal/scenefile"
	"github.com/dshills/congram/internal/script"
)

// loadScene builds a canvas of rows x cols from a YAML scene or Lua script.
func (a *app) loadScene(ctx context.Context, path string, rows, cols int) (*scene.Canvas, error) {
	heatmap, err := a.cfg.HeatmapOptions()
	if err != nil {
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		doc, err := scenefile.Load(path)
		if err != nil {
			return nil, err
		}
		return scenefile.Build(doc, scenefile.Options{
			Rows:    rows,
			Cols:    cols,
			Style:   a.cfg.CanvasStyle(),
			Dir:     filepath.Dir(path),
			Heatmap: heatmap,
		})

	case ".lua":
		engine := script.NewEngine(script.Options{
			Rows:    rows,
			Cols:    cols,
			Style:   a.cfg.CanvasStyle(),
			Heatmap: heatmap,
			Logger:  a.logger,
		})
		defer engine.Close()
		return engine.RunFile(ctx, path)

	default:
		return nil, fmt.Errorf("%s: unsupported scene type %q (want .yaml, .yml or .lua)", path, ext)
	}
}
