package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dshills/congram/internal/renderer"
	"github.com/dshills/congram/internal/renderer/backend"
)

// syncer is implemented by backends that can repaint the whole display.
type syncer interface {
	Sync()
}

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view <scene>",
		Short: "Show a scene full screen until a key is pressed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.newBackend()
			if err != nil {
				return err
			}
			if err := b.Init(); err != nil {
				return err
			}
			defer b.Shutdown()

			return a.view(cmd.Context(), b, args[0])
		},
	}
}

// view draws the scene sized to the backend and redraws it on resize.
func (a *app) view(ctx context.Context, b backend.Backend, path string) error {
	compositor := renderer.NewCompositor(a.rendererOptions())

	draw := func() error {
		rows, cols := b.Size()
		canvas, err := a.loadScene(ctx, path, rows, cols)
		if err != nil {
			return err
		}
		frame, err := compositor.Compose(canvas)
		if err != nil {
			return err
		}
		b.Draw(frame.Rows)
		b.Show()
		return nil
	}

	if err := draw(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for ev := range b.Events(ctx) {
		switch ev.Type {
		case backend.EventKey:
			a.logger.Debug("key pressed, leaving view", "key", ev.Name)
			return nil
		case backend.EventResize:
			a.logger.Debug("display resized", "rows", ev.Rows, "cols", ev.Cols)
			if s, ok := b.(syncer); ok {
				s.Sync()
			}
			if err := draw(); err != nil {
				return err
			}
		case backend.EventInterrupt:
			return nil
		}
	}
	return nil
}
