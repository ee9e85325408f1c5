package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/congram/internal/renderer/ansi"
	"github.com/dshills/congram/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var clearScreen bool

	cmd := &cobra.Command{
		Use:   "watch <scene>",
		Short: "Render a scene and re-render it whenever the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			render := func() {
				if clearScreen {
					_, _ = io.WriteString(out, ansi.Clear)
				}
				if err := a.renderFile(cmd, path); err != nil {
					a.logger.Error("render failed", "path", path, "err", err)
				}
			}

			// The first render must succeed.
			if err := a.renderFile(cmd, path); err != nil {
				return err
			}

			w, err := watch.New(a.cfg.Watch.Debounce.Duration, a.logger)
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			a.logger.Info("watching for changes", "path", path)

			return w.Run(cmd.Context(), func(string) { render() })
		},
	}

	cmd.Flags().BoolVar(&clearScreen, "clear", true, "Clear the screen before each re-render")
	return cmd
}

// renderFile loads path at the current canvas size and writes it out.
func (a *app) renderFile(cmd *cobra.Command, path string) error {
	rows, cols := a.canvasSize()
	canvas, err := a.loadScene(cmd.Context(), path, rows, cols)
	if err != nil {
		return err
	}
	return a.output(cmd, canvas)
}
