package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/congram/internal/dataset"
	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/scene"
	"github.com/dshills/congram/internal/scheme"
	"github.com/dshills/congram/internal/widget"
)

// chartFlags are shared by the heatmap and hist commands.
type chartFlags struct {
	path   string
	scheme string
	title  string
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "path", "", "gjson path to the table inside a JSON file")
	cmd.Flags().StringVar(&f.scheme, "scheme", "", "Color scheme (plum, sandy, bluegreenyellow or gradient:#hex,#hex,...)")
	cmd.Flags().StringVar(&f.title, "title", "", "Title line above the chart")
}

// chartCanvas loads the table and returns a canvas with the title placed.
func (a *app) chartCanvas(file string, f *chartFlags) (*scene.Canvas, dataset.Table, error) {
	table, err := dataset.Load(file, f.path)
	if err != nil {
		return nil, nil, err
	}

	rows, cols := a.canvasSize()
	canvas := scene.NewCanvas(rows, cols, a.cfg.CanvasStyle())
	if f.title != "" {
		if err := widget.Text(canvas, f.title, core.NewStyle(core.Gray, canvas.Style.Back)); err != nil {
			return nil, nil, err
		}
	}
	return canvas, table, nil
}

func newHeatmapCmd(a *app) *cobra.Command {
	var (
		flags   chartFlags
		legend  bool
		noFrame bool
	)

	cmd := &cobra.Command{
		Use:   "heatmap <data.csv|data.tsv|data.json>",
		Short: "Render a table of numbers as a heatmap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canvas, table, err := a.chartCanvas(args[0], &flags)
			if err != nil {
				return err
			}

			opts, err := a.cfg.HeatmapOptions()
			if err != nil {
				return err
			}
			if flags.scheme != "" {
				if opts.Scheme, err = scheme.Lookup(flags.scheme); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("legend") {
				opts.Legend = legend
			}
			if noFrame {
				opts.Frame = false
			}

			node, err := widget.Heatmap(table, opts)
			if err != nil {
				return err
			}
			if err := canvas.Place(node, 1); err != nil {
				return err
			}
			return a.output(cmd, canvas)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&legend, "legend", false, "Draw a color legend")
	cmd.Flags().BoolVar(&noFrame, "no-frame", false, "Omit the border")
	return cmd
}

func newHistCmd(a *app) *cobra.Command {
	var (
		flags  chartFlags
		height int
	)

	cmd := &cobra.Command{
		Use:   "hist <data.csv|data.tsv|data.json>",
		Short: "Render values as a vertical bar histogram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canvas, table, err := a.chartCanvas(args[0], &flags)
			if err != nil {
				return err
			}

			opts := widget.DefaultHistogramOptions()
			opts.Back = canvas.Style
			opts.Height = height
			if flags.scheme != "" {
				if opts.Scheme, err = scheme.Lookup(flags.scheme); err != nil {
					return err
				}
			}

			node, err := widget.Histogram(table.Flatten(), opts)
			if err != nil {
				return err
			}
			if err := canvas.Place(node, 1); err != nil {
				return err
			}
			return a.output(cmd, canvas)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&height, "height", widget.DefaultHistogramOptions().Height, "Plot height in rows")
	return cmd
}
