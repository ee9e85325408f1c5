package renderer

import (
	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/occlusion"
)

// Frame is the resolved output of one render pass: for each canvas row,
// the visible spans sorted by column.
type Frame struct {
	Width  int
	Height int
	Rows   [][]core.Span
}

// newFrame lays out grouped spans into a height x width frame.
// Rows outside [0, height) are dropped.
func newFrame(width, height int, rows map[int][]core.Span) *Frame {
	f := &Frame{
		Width:  width,
		Height: height,
		Rows:   make([][]core.Span, height),
	}
	for r, spans := range rows {
		if r >= 0 && r < height {
			f.Rows[r] = spans
		}
	}
	return f
}

// Row returns the spans of row i, or nil if out of range.
func (f *Frame) Row(i int) []core.Span {
	if i < 0 || i >= len(f.Rows) {
		return nil
	}
	return f.Rows[i]
}

// Text returns the visible text of row i without styling.
// Cells not covered by any span are spaces.
func (f *Frame) Text(i int) string {
	row := f.Row(i)
	out := make([]rune, 0, f.Width)
	col := 0
	for _, s := range row {
		for ; col < s.Col; col++ {
			out = append(out, ' ')
		}
		out = append(out, s.Text...)
		col = s.End()
	}
	return string(out)
}

// SpanCount returns the total number of spans in the frame.
func (f *Frame) SpanCount() int {
	n := 0
	for _, row := range f.Rows {
		n += len(row)
	}
	return n
}

// StyleAt returns the style of the cell at (row, col) and whether any
// span covers it.
func (f *Frame) StyleAt(row, col int) (core.Style, bool) {
	for _, s := range f.Row(row) {
		if col >= s.Col && col < s.End() {
			return s.Style, true
		}
	}
	return core.Style{}, false
}

// Validate checks every row against the frame width.
func (f *Frame) Validate() error {
	for r, row := range f.Rows {
		if err := occlusion.Validate(r, row, f.Width); err != nil {
			return err
		}
	}
	return nil
}
