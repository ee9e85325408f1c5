// Package scene holds the tree of positioned, styled, labeled rectangles
// that the compositor renders.
//
// Positions are relative to the parent node. A node exclusively owns its
// children and every child lies inside its parent's [0,0]..Size box, which
// AddChild enforces. Children are painted in insertion order on top of
// their parent.
//
// The tree is not safe for concurrent use; callers mutate it between
// render passes.
package scene

import (
	"math"

	"github.com/google/uuid"

	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/occlusion"
)

// Node is a rectangle with a centered label and ordered children.
type Node struct {
	ID    uuid.UUID
	Pos   core.Vector2
	Size  core.Vector2
	Label []rune
	Style core.Style

	children []*Node
	parent   *Node
}

// NewNode creates a detached node.
func NewNode(pos, size core.Vector2, label string, style core.Style) *Node {
	return &Node{
		ID:    uuid.New(),
		Pos:   pos,
		Size:  size,
		Label: []rune(label),
		Style: style,
	}
}

// AddChild appends child on top of the paint order.
// The child's box, in this node's coordinates, must lie within
// [0,0]..n.Size. On failure a *PlacementError is returned and n is unchanged.
func (n *Node) AddChild(child *Node) error {
	switch {
	case child == nil:
		return newPlacementError(n, nil, ErrNilNode)
	case child == n || child.parent != nil:
		return newPlacementError(n, child, ErrAlreadyAttached)
	case n.descendsFrom(child):
		return newPlacementError(n, child, ErrCycle)
	case child.Size.Row < 0 || child.Size.Col < 0:
		return newPlacementError(n, child, ErrNegativeSize)
	}

	bottomRight := child.Pos.Add(child.Size)
	if !child.Pos.DeeperThan(core.Vector2{}) || !bottomRight.ShallowerThan(n.Size) {
		return newPlacementError(n, child, ErrOutOfBounds)
	}

	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// Children returns the children in paint order.
// The returned slice is a copy.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Attached returns true if the node has been added to a parent.
func (n *Node) Attached() bool {
	return n.parent != nil
}

// Parent returns the node's parent, or nil for a detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) descendsFrom(ancestor *Node) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth-first in paint order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// LabelRow returns the row, relative to the node, that carries the label.
// It is -1 for nodes with no rows.
func (n *Node) LabelRow() int {
	if n.Size.Row <= 0 {
		return -1
	}
	return int(math.Round(float64(n.Size.Row)*0.5)) - 1
}

// RenderOwn produces one span per row of the node, ignoring children.
// offset is the absolute position of the node's parent. The label row
// carries the centered label; the other rows are blank so the whole
// rectangle paints its background.
func (n *Node) RenderOwn(offset core.Vector2) []core.Span {
	if n.Size.Row <= 0 || n.Size.Col <= 0 {
		return nil
	}

	origin := offset.Add(n.Pos)
	labelRow := n.LabelRow()
	spans := make([]core.Span, 0, n.Size.Row)

	for r := 0; r < n.Size.Row; r++ {
		var text []rune
		if r == labelRow {
			text = Center(n.Label, n.Size.Col)
		} else {
			text = blank(n.Size.Col)
		}
		spans = append(spans, core.Span{
			Row:   origin.Row + r,
			Col:   origin.Col,
			Text:  text,
			Style: n.Style,
		})
	}

	return spans
}

// Render produces the resolved spans of the subtree rooted at n.
// offset is the absolute position of the node's parent; pass the zero
// vector for a root. Each child is rendered and layered over everything
// painted before it, so later children cover earlier ones and all children
// cover the node itself. The result is row-major and sorted by column.
func (n *Node) Render(offset core.Vector2) []core.Span {
	spans := n.RenderOwn(offset)
	origin := offset.Add(n.Pos)

	for _, c := range n.children {
		spans = occlusion.Layer(spans, c.Render(origin))
	}

	return spans
}

// Center pads label with spaces to width cells, extra space on the right.
// Labels wider than width are cut.
func Center(label []rune, width int) []rune {
	if width <= 0 {
		return nil
	}
	if len(label) >= width {
		out := make([]rune, width)
		copy(out, label[:width])
		return out
	}

	pad := width - len(label)
	left := pad / 2

	out := blank(width)
	copy(out[left:], label)
	return out
}

func blank(width int) []rune {
	out := make([]rune, width)
	for i := range out {
		out[i] = ' '
	}
	return out
}
