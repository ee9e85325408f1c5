package widget

import (
	"fmt"

	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/scene"
	"github.com/dshills/congram/internal/scheme"
)

// Legend builds a vertical color bar running from the scheme's top (hi)
// down to its bottom (lo). The first and last rows carry the range values.
func Legend(f scheme.Func, rows int, lo, hi float64) (*scene.Node, error) {
	top := fmt.Sprintf("%1.2f", hi)
	bottom := fmt.Sprintf("%1.2f", lo)
	width := max(len(top), len(bottom)) + 2

	legend := scene.NewNode(core.Vector2{}, core.Vec(max(rows, 0), width), "", core.DefaultStyle())
	for r := 0; r < rows; r++ {
		t := 1.0
		if rows > 1 {
			t = 1 - float64(r)/float64(rows-1)
		}
		label := ""
		switch r {
		case 0:
			label = top
		case rows - 1:
			label = bottom
		}
		back := f(t)
		band := scene.NewNode(core.Vec(r, 0), core.Vec(1, width), label, core.NewStyle(back.Scale(2).Clamp(), back))
		if err := legend.AddChild(band); err != nil {
			return nil, err
		}
	}
	return legend, nil
}
