package scene

import (
	"github.com/dshills/congram/internal/renderer/core"
)

// Canvas is the root node of a scene, sized to the terminal.
// It also tracks the next free line for builders that stack content
// top to bottom.
type Canvas struct {
	*Node
	line int
}

// NewCanvas creates an empty canvas of rows x cols cells.
func NewCanvas(rows, cols int, style core.Style) *Canvas {
	return &Canvas{
		Node: NewNode(core.Vector2{}, core.Vec(max(rows, 0), max(cols, 0)), "", style),
	}
}

// Rows returns the canvas height.
func (c *Canvas) Rows() int {
	return c.Size.Row
}

// Cols returns the canvas width.
func (c *Canvas) Cols() int {
	return c.Size.Col
}

// Line returns the next free line.
func (c *Canvas) Line() int {
	return c.line
}

// Advance moves the next free line down by n rows and returns the line
// it was on before. The cursor never moves up.
func (c *Canvas) Advance(n int) int {
	prev := c.line
	if n > 0 {
		c.line += n
	}
	return prev
}

// Remaining returns the number of rows below the cursor.
func (c *Canvas) Remaining() int {
	return max(c.Size.Row-c.line, 0)
}

// Place adds node at the cursor line, horizontally centered, and advances
// the cursor past it plus gap blank lines.
func (c *Canvas) Place(node *Node, gap int) error {
	node.Pos = core.Vec(c.line, max((c.Size.Col-node.Size.Col)/2, 0))
	if err := c.AddChild(node); err != nil {
		return err
	}
	c.Advance(node.Size.Row + gap)
	return nil
}

// Spans renders the whole canvas.
func (c *Canvas) Spans() []core.Span {
	return c.Node.Render(core.Vector2{})
}
