package widget

import (
	"math"

	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/scene"
	"github.com/dshills/congram/internal/scheme"
)

// HistogramOptions configures Histogram.
type HistogramOptions struct {
	// Scheme colors each bar by its height relative to the tallest.
	Scheme scheme.Func

	// Height is the plot height in rows.
	Height int

	// BarWidth is the width of each bar slot, including one gap column.
	BarWidth int

	Back core.Style
}

// DefaultHistogramOptions returns the default histogram options.
func DefaultHistogramOptions() HistogramOptions {
	return HistogramOptions{
		Scheme:   scheme.BlueGreenYellow,
		Height:   10,
		BarWidth: 5,
		Back:     core.DefaultStyle(),
	}
}

// Histogram draws one vertical bar per value, scaled so the largest value
// fills the plot height. Negative values are drawn as empty bars.
func Histogram(values []float64, opts HistogramOptions) (*scene.Node, error) {
	if len(values) == 0 {
		return nil, ErrEmptyTable
	}
	defaults := DefaultHistogramOptions()
	if opts.Scheme == nil {
		opts.Scheme = defaults.Scheme
	}
	if opts.Height <= 0 {
		opts.Height = defaults.Height
	}
	if opts.BarWidth < 2 {
		opts.BarWidth = defaults.BarWidth
	}

	top := 0.0
	for _, v := range values {
		top = max(top, v)
	}

	plot := scene.NewNode(core.Vector2{}, core.Vec(opts.Height, len(values)*opts.BarWidth), "", opts.Back)
	for i, v := range values {
		if v <= 0 || top <= 0 {
			continue
		}
		t := v / top
		h := int(math.Round(t * float64(opts.Height)))
		if h == 0 {
			continue
		}
		c := opts.Scheme(t)
		bar := scene.NewNode(
			core.Vec(opts.Height-h, i*opts.BarWidth),
			core.Vec(h, opts.BarWidth-1),
			"",
			core.NewStyle(c, c.Scale(2).Clamp()),
		)
		if err := plot.AddChild(bar); err != nil {
			return nil, err
		}
	}
	return plot, nil
}
