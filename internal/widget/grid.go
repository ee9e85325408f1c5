package widget

import (
	"fmt"
	"math"

	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/scene"
	"github.com/dshills/congram/internal/scheme"
)

// Item is one labeled, styled grid cell.
type Item struct {
	Label string
	Style core.Style
}

// DefaultCellRows is the default height of grid cells.
const DefaultCellRows = 3

// Grid lays items out in equal cells. Cells are cellRows tall and two
// columns wider than the longest label. The grid node itself is painted
// with back and is fully covered by its cells.
func Grid(table [][]Item, cellRows int, back core.Style) (*scene.Node, error) {
	rows, cols, err := checkTable(table)
	if err != nil {
		return nil, err
	}
	if cellRows <= 0 {
		cellRows = DefaultCellRows
	}

	longest := 0
	for _, row := range table {
		for _, item := range row {
			longest = max(longest, len([]rune(item.Label)))
		}
	}
	cellSize := core.Vec(cellRows, longest+2)

	grid := scene.NewNode(core.Vector2{}, core.Vec(rows, cols).ComponentMultiply(cellSize), "", back)
	for r, row := range table {
		for c, item := range row {
			cell := Cell(item.Label, cellSize, item.Style)
			cell.Pos = core.Vec(r, c).ComponentMultiply(cellSize)
			if err := grid.AddChild(cell); err != nil {
				return nil, err
			}
		}
	}
	return grid, nil
}

// HeatmapOptions configures Heatmap.
type HeatmapOptions struct {
	// Scheme colors the cells. Nil uses scheme.Plum.
	Scheme scheme.Func

	// CellRows is the height of each cell (0 = DefaultCellRows).
	CellRows int

	// Frame draws a ticked border around the cells.
	Frame bool

	// Legend adds a color legend to the right.
	Legend bool

	// Back styles the area around cells, frame and legend.
	Back core.Style
}

// DefaultHeatmapOptions returns the default heatmap options.
func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		Scheme:   scheme.Plum,
		CellRows: DefaultCellRows,
		Frame:    true,
		Legend:   false,
		Back:     core.DefaultStyle(),
	}
}

// FrameMargin is the space between a heatmap border and its cells,
// counted on both sides of each axis.
var FrameMargin = core.Vec(3, 5)

// legendGap is the number of columns between the heatmap and its legend.
const legendGap = 2

// Heatmap builds a grid of values formatted as "%1.2f", each cell colored
// by its value normalized over the table's range. A constant table uses
// the middle of the scheme for every cell.
func Heatmap(values [][]float64, opts HeatmapOptions) (*scene.Node, error) {
	if _, _, err := checkTable(values); err != nil {
		return nil, err
	}
	if opts.Scheme == nil {
		opts.Scheme = scheme.Plum
	}

	lo, hi := Range(values)
	table := make([][]Item, len(values))
	for r, row := range values {
		table[r] = make([]Item, len(row))
		for c, v := range row {
			table[r][c] = Item{
				Label: fmt.Sprintf("%1.2f", v),
				Style: scheme.Heat(opts.Scheme, v, lo, hi),
			}
		}
	}

	grid, err := Grid(table, opts.CellRows, opts.Back)
	if err != nil {
		return nil, err
	}

	body := grid
	if opts.Frame {
		cellRows := opts.CellRows
		if cellRows <= 0 {
			cellRows = DefaultCellRows
		}
		cellCols := grid.Size.Col / len(values[0])

		frame, err := Frame(grid.Size.Add(FrameMargin).Add(core.Vec(1, 1)), FrameOptions{
			Style:   core.NewStyle(core.White, opts.Back.Back),
			TickRep: core.Vec(cellRows, cellCols),
			TickOff: FrameMargin.Center().Scale(-1),
		})
		if err != nil {
			return nil, err
		}
		grid.Pos = FrameMargin.Center()
		if err := frame.AddChild(grid); err != nil {
			return nil, err
		}
		body = frame
	}

	if !opts.Legend {
		return body, nil
	}

	legend, err := Legend(opts.Scheme, body.Size.Row, lo, hi)
	if err != nil {
		return nil, err
	}
	container := scene.NewNode(core.Vector2{}, core.Vec(body.Size.Row, body.Size.Col+legendGap+legend.Size.Col), "", opts.Back)
	if err := container.AddChild(body); err != nil {
		return nil, err
	}
	legend.Pos = core.Vec(0, body.Size.Col+legendGap)
	if err := container.AddChild(legend); err != nil {
		return nil, err
	}
	return container, nil
}

// Range returns the minimum and maximum of a table. NaN cells are skipped.
func Range(values [][]float64) (lo, hi float64) {
	first := true
	for _, row := range values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}
