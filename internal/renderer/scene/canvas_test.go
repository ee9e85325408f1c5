package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/congram/internal/renderer/core"
)

func TestCanvasCursor(t *testing.T) {
	c := NewCanvas(10, 40, core.DefaultStyle())
	assert.Equal(t, 10, c.Rows())
	assert.Equal(t, 40, c.Cols())
	assert.Equal(t, 0, c.Line())

	assert.Equal(t, 0, c.Advance(2))
	assert.Equal(t, 2, c.Advance(3))
	assert.Equal(t, 5, c.Line())
	assert.Equal(t, 5, c.Advance(-4), "cursor never moves up")
	assert.Equal(t, 5, c.Remaining())
}

func TestCanvasInstancesIndependent(t *testing.T) {
	a := NewCanvas(10, 10, core.DefaultStyle())
	b := NewCanvas(10, 10, core.DefaultStyle())

	require.NoError(t, a.AddChild(NewNode(core.Vec(0, 0), core.Vec(1, 1), "", core.DefaultStyle())))
	a.Advance(3)

	assert.Equal(t, 0, b.ChildCount())
	assert.Equal(t, 0, b.Line())
}

func TestCanvasPlace(t *testing.T) {
	c := NewCanvas(10, 20, core.DefaultStyle())
	n := NewNode(core.Vec(0, 0), core.Vec(3, 6), "hi", childStyle)

	require.NoError(t, c.Place(n, 1))
	assert.Equal(t, core.Vec(0, 7), n.Pos)
	assert.Equal(t, 4, c.Line())

	tall := NewNode(core.Vec(0, 0), core.Vec(7, 6), "", childStyle)
	err := c.Place(tall, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, 4, c.Line(), "failed placement must not move the cursor")
}

func TestCanvasSpansCoverEveryRow(t *testing.T) {
	c := NewCanvas(3, 8, core.DefaultStyle())
	spans := c.Spans()
	require.Len(t, spans, 3)
	for r, s := range spans {
		assert.Equal(t, r, s.Row)
		assert.Equal(t, 8, s.Len())
	}
}
