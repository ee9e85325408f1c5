package widget

import (
	"strings"

	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/scene"
)

// Side selects frame edges.
type Side uint8

const (
	SideLeft Side = 1 << iota
	SideRight
	SideTop
	SideBottom

	AllSides = SideLeft | SideRight | SideTop | SideBottom
)

// Box-drawing characters.
const (
	boxVertical    = "│"
	boxHorizontal  = "─"
	boxLeftTick    = "├"
	boxBottomTick  = "┴"
	boxTopLeft     = "┌"
	boxBottomLeft  = "└"
	boxBottomRight = "┘"
	boxTopRight    = "┐"
)

// corner characters in core.Vector2.Corners order.
var cornerChars = [4]string{boxTopLeft, boxBottomLeft, boxBottomRight, boxTopRight}

// FrameOptions configures Frame.
type FrameOptions struct {
	Style core.Style

	// Sides selects the edges to draw (0 = AllSides). Corners are always drawn.
	Sides Side

	// TickRep is the tick spacing: Row for the left edge, Col for the
	// bottom edge. Zero disables ticks on that edge.
	TickRep core.Vector2

	// TickOff shifts tick positions: a tick is drawn where
	// (index + offset) is a multiple of the spacing.
	TickOff core.Vector2
}

// Frame creates a node of the given outer size with a box-drawing border.
// The interior is painted blank in the frame style; content goes in as
// children at positions inside [1,1]..size-(1,1).
func Frame(size core.Vector2, opts FrameOptions) (*scene.Node, error) {
	frame := scene.NewNode(core.Vector2{}, size, "", opts.Style)
	if size.Row < 2 || size.Col < 2 {
		return frame, nil
	}
	sides := opts.Sides
	if sides == 0 {
		sides = AllSides
	}

	var err error
	mark := func(pos core.Vector2, width int, text string) {
		if err == nil {
			err = frame.AddChild(scene.NewNode(pos, core.Vec(1, width), text, opts.Style))
		}
	}

	inner := size.Col - 2
	if inner > 0 {
		if sides&SideTop != 0 {
			mark(core.Vec(0, 1), inner, strings.Repeat(boxHorizontal, inner))
		}
		if sides&SideBottom != 0 {
			var b strings.Builder
			for c := 1; c <= inner; c++ {
				if ticked(c, opts.TickOff.Col, opts.TickRep.Col) {
					b.WriteString(boxBottomTick)
				} else {
					b.WriteString(boxHorizontal)
				}
			}
			mark(core.Vec(size.Row-1, 1), inner, b.String())
		}
	}

	for l := 1; l < size.Row-1; l++ {
		if sides&SideLeft != 0 {
			char := boxVertical
			if ticked(l, opts.TickOff.Row, opts.TickRep.Row) {
				char = boxLeftTick
			}
			mark(core.Vec(l, 0), 1, char)
		}
		if sides&SideRight != 0 {
			mark(core.Vec(l, size.Col-1), 1, boxVertical)
		}
	}

	for i, corner := range size.Sub(core.Vec(1, 1)).Corners() {
		mark(corner, 1, cornerChars[i])
	}
	if err != nil {
		return nil, err
	}
	return frame, nil
}

func ticked(i, off, rep int) bool {
	return rep > 0 && (i+off)%rep == 0
}
