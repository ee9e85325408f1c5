// Package widget builds scene nodes for common chart elements: titles,
// cells, grids, heatmaps, frames, histograms and legends.
//
// Builders return detached nodes sized to their content. Callers place
// them with (*scene.Canvas).Place or attach them to another node.
package widget

import (
	"errors"

	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/scene"
)

// Common errors.
var (
	ErrEmptyTable  = errors.New("table has no cells")
	ErrRaggedTable = errors.New("table rows have different lengths")
)

// Text adds a title line at the canvas cursor: a blank line in the canvas
// style with the text centered on it. The foreground is brightened to twice
// the given color. The cursor advances by two lines.
func Text(canvas *scene.Canvas, text string, style core.Style) error {
	line := scene.NewNode(core.Vec(canvas.Line(), 0), core.Vec(1, canvas.Cols()), "", canvas.Style)

	width := min(len([]rune(text)), canvas.Cols())
	title := scene.NewNode(
		core.Vec(0, (canvas.Cols()-width)/2),
		core.Vec(1, width),
		text,
		core.NewStyle(style.Fore.Scale(2).Clamp(), style.Back),
	)
	if err := line.AddChild(title); err != nil {
		return err
	}
	if err := canvas.AddChild(line); err != nil {
		return err
	}
	canvas.Advance(2)
	return nil
}

// Cell creates a single table cell with its label centered on the middle row.
func Cell(label string, size core.Vector2, style core.Style) *scene.Node {
	return scene.NewNode(core.Vector2{}, size, label, style)
}

// checkTable validates that a table is non-empty and rectangular and
// returns its dimensions.
func checkTable[T any](table [][]T) (rows, cols int, err error) {
	if len(table) == 0 || len(table[0]) == 0 {
		return 0, 0, ErrEmptyTable
	}
	cols = len(table[0])
	for _, row := range table[1:] {
		if len(row) != cols {
			return 0, 0, ErrRaggedTable
		}
	}
	return len(table), cols, nil
}
