package script

import (
	"fmt"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/scene"
	"github.com/dshills/congram/internal/scheme"
	"github.com/dshills/congram/internal/widget"
)

const nodeTypeName = "congram.node"

// runtime holds the state one script run builds.
type runtime struct {
	canvas *scene.Canvas
	opts   Options
	logger *log.Logger

	// placeErr is the placement error that stopped the script, if any.
	placeErr error
}

func (rt *runtime) install(L *lua.LState) {
	mt := L.NewTypeMetatable(nodeTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"add":   rt.nodeAdd,
		"move":  nodeMove,
		"pos":   nodePos,
		"size":  nodeSize,
		"label": nodeLabel,
		"count": nodeCount,
	}))
	L.SetField(mt, "__tostring", L.NewFunction(nodeString))

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"node":      rt.newNode,
		"frame":     rt.newFrame,
		"place":     rt.place,
		"text":      rt.text,
		"heatmap":   rt.heatmap,
		"histogram": rt.histogram,
		"scheme":    schemeColor,
	})
	L.SetField(mod, "rows", lua.LNumber(rt.canvas.Rows()))
	L.SetField(mod, "cols", lua.LNumber(rt.canvas.Cols()))
	L.SetField(mod, "root", wrapNode(L, rt.canvas.Node))
	L.SetGlobal("congram", mod)

	L.SetGlobal("print", L.NewFunction(rt.print))
}

// fail records a scene error and raises it in Lua.
func (rt *runtime) fail(L *lua.LState, err error) {
	rt.placeErr = err
	L.RaiseError("%v", err)
}

func wrapNode(L *lua.LState, n *scene.Node) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = n
	L.SetMetatable(ud, L.GetTypeMetatable(nodeTypeName))
	return ud
}

func checkNode(L *lua.LState, n int) *scene.Node {
	ud := L.CheckUserData(n)
	if node, ok := ud.Value.(*scene.Node); ok {
		return node
	}
	L.ArgError(n, "node expected")
	return nil
}

// congram.node{pos = {r, c}, size = {r, c}, label = "", fore = "#rrggbb", back = "#rrggbb"}
func (rt *runtime) newNode(L *lua.LState) int {
	tbl := L.CheckTable(1)
	pos := vectorField(L, tbl, "pos")
	size := vectorField(L, tbl, "size")
	style := styleFields(L, tbl, core.NewStyle(core.White, core.Gray))

	label := ""
	if v, ok := tbl.RawGetString("label").(lua.LString); ok {
		label = string(v)
	}

	L.Push(wrapNode(L, scene.NewNode(pos, size, label, style)))
	return 1
}

// congram.frame{pos = {r, c}, size = {r, c}, fore = "#rrggbb", back = "#rrggbb"}
func (rt *runtime) newFrame(L *lua.LState) int {
	tbl := L.CheckTable(1)
	size := vectorField(L, tbl, "size")
	style := styleFields(L, tbl, core.NewStyle(core.White, rt.canvas.Style.Back))

	frame, err := widget.Frame(size, widget.FrameOptions{Style: style})
	if err != nil {
		rt.fail(L, err)
		return 0
	}
	frame.Pos = vectorField(L, tbl, "pos")
	L.Push(wrapNode(L, frame))
	return 1
}

// congram.place(node [, gap]) stacks node at the canvas cursor.
func (rt *runtime) place(L *lua.LState) int {
	node := checkNode(L, 1)
	gap := L.OptInt(2, 0)
	if err := rt.canvas.Place(node, gap); err != nil {
		rt.fail(L, err)
		return 0
	}
	L.Push(L.Get(1))
	return 1
}

// congram.text(label [, fore [, back]]) adds a title line.
func (rt *runtime) text(L *lua.LState) int {
	label := L.CheckString(1)
	style := core.NewStyle(core.Gray, rt.canvas.Style.Back)
	style.Fore = colorArg(L, 2, style.Fore)
	style.Back = colorArg(L, 3, style.Back)

	if err := widget.Text(rt.canvas, label, style); err != nil {
		rt.fail(L, err)
	}
	return 0
}

// congram.heatmap(values [, {scheme, frame, legend, cell_rows}])
func (rt *runtime) heatmap(L *lua.LState) int {
	values := numberTable(L, 1)
	opts := rt.opts.Heatmap
	opts.Back = rt.canvas.Style

	if tbl, ok := L.Get(2).(*lua.LTable); ok {
		opts.Scheme = schemeField(L, tbl, opts.Scheme)
		if v, ok := tbl.RawGetString("frame").(lua.LBool); ok {
			opts.Frame = bool(v)
		}
		if v, ok := tbl.RawGetString("legend").(lua.LBool); ok {
			opts.Legend = bool(v)
		}
		if v, ok := tbl.RawGetString("cell_rows").(lua.LNumber); ok {
			opts.CellRows = int(v)
		}
	}

	node, err := widget.Heatmap(values, opts)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(wrapNode(L, node))
	return 1
}

// congram.histogram(values [, {scheme, height, bar_width}])
func (rt *runtime) histogram(L *lua.LState) int {
	var values []float64
	for _, row := range numberTable(L, 1) {
		values = append(values, row...)
	}

	opts := widget.DefaultHistogramOptions()
	opts.Back = rt.canvas.Style
	if tbl, ok := L.Get(2).(*lua.LTable); ok {
		opts.Scheme = schemeField(L, tbl, opts.Scheme)
		if v, ok := tbl.RawGetString("height").(lua.LNumber); ok {
			opts.Height = int(v)
		}
		if v, ok := tbl.RawGetString("bar_width").(lua.LNumber); ok {
			opts.BarWidth = int(v)
		}
	}

	node, err := widget.Histogram(values, opts)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(wrapNode(L, node))
	return 1
}

// congram.scheme(name, t) returns the scheme color at t as "#rrggbb".
func schemeColor(L *lua.LState) int {
	name := L.CheckString(1)
	t := float64(L.CheckNumber(2))
	f, err := scheme.Lookup(name)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(lua.LString(f(t).Hex()))
	return 1
}

// node:add(child) attaches child on top and returns it.
func (rt *runtime) nodeAdd(L *lua.LState) int {
	parent := checkNode(L, 1)
	child := checkNode(L, 2)
	if err := parent.AddChild(child); err != nil {
		rt.fail(L, err)
		return 0
	}
	L.Push(L.Get(2))
	return 1
}

// node:move(r, c) sets the position relative to the parent.
func nodeMove(L *lua.LState) int {
	node := checkNode(L, 1)
	if node.Attached() {
		L.RaiseError("cannot move an attached node")
		return 0
	}
	node.Pos = core.Vec(L.CheckInt(2), L.CheckInt(3))
	L.Push(L.Get(1))
	return 1
}

func nodePos(L *lua.LState) int {
	node := checkNode(L, 1)
	L.Push(lua.LNumber(node.Pos.Row))
	L.Push(lua.LNumber(node.Pos.Col))
	return 2
}

func nodeSize(L *lua.LState) int {
	node := checkNode(L, 1)
	L.Push(lua.LNumber(node.Size.Row))
	L.Push(lua.LNumber(node.Size.Col))
	return 2
}

func nodeLabel(L *lua.LState) int {
	L.Push(lua.LString(string(checkNode(L, 1).Label)))
	return 1
}

func nodeCount(L *lua.LState) int {
	L.Push(lua.LNumber(checkNode(L, 1).ChildCount()))
	return 1
}

func nodeString(L *lua.LState) int {
	node := checkNode(L, 1)
	L.Push(lua.LString(fmt.Sprintf("node(%q, pos=%s, size=%s)", string(node.Label), node.Pos, node.Size)))
	return 1
}

func (rt *runtime) print(L *lua.LState) int {
	rt.logger.Info(printArgs(L))
	return 0
}

// vectorField reads {r, c} from tbl[name]. A missing field is (0, 0).
func vectorField(L *lua.LState, tbl *lua.LTable, name string) core.Vector2 {
	v := tbl.RawGetString(name)
	if v == lua.LNil {
		return core.Vector2{}
	}
	pair, ok := v.(*lua.LTable)
	if !ok || pair.Len() != 2 {
		L.ArgError(1, fmt.Sprintf("%s must be {row, col}", name))
		return core.Vector2{}
	}
	r, rok := pair.RawGetInt(1).(lua.LNumber)
	c, cok := pair.RawGetInt(2).(lua.LNumber)
	if !rok || !cok {
		L.ArgError(1, fmt.Sprintf("%s must hold numbers", name))
		return core.Vector2{}
	}
	return core.Vec(int(r), int(c))
}

func styleFields(L *lua.LState, tbl *lua.LTable, def core.Style) core.Style {
	style := def
	for _, f := range []struct {
		name string
		dst  *core.RGB
	}{
		{"fore", &style.Fore},
		{"back", &style.Back},
	} {
		v, ok := tbl.RawGetString(f.name).(lua.LString)
		if !ok {
			continue
		}
		c, err := core.ParseHex(string(v))
		if err != nil {
			L.ArgError(1, fmt.Sprintf("%s: %v", f.name, err))
			return def
		}
		*f.dst = c
	}
	return style
}

func colorArg(L *lua.LState, n int, def core.RGB) core.RGB {
	s := L.OptString(n, "")
	if s == "" {
		return def
	}
	c, err := core.ParseHex(s)
	if err != nil {
		L.ArgError(n, err.Error())
		return def
	}
	return c
}

func schemeField(L *lua.LState, tbl *lua.LTable, def scheme.Func) scheme.Func {
	name, ok := tbl.RawGetString("scheme").(lua.LString)
	if !ok {
		return def
	}
	f, err := scheme.Lookup(string(name))
	if err != nil {
		L.ArgError(2, err.Error())
		return def
	}
	return f
}

// numberTable reads a table of number rows, or a flat number list as a
// single row.
func numberTable(L *lua.LState, n int) [][]float64 {
	tbl := L.CheckTable(n)
	var out [][]float64
	var flat []float64

	for i := 1; i <= tbl.Len(); i++ {
		switch v := tbl.RawGetInt(i).(type) {
		case lua.LNumber:
			flat = append(flat, float64(v))
		case *lua.LTable:
			row := make([]float64, 0, v.Len())
			for j := 1; j <= v.Len(); j++ {
				num, ok := v.RawGetInt(j).(lua.LNumber)
				if !ok {
					L.ArgError(n, fmt.Sprintf("value [%d][%d] is not a number", i, j))
					return nil
				}
				row = append(row, float64(num))
			}
			out = append(out, row)
		default:
			L.ArgError(n, fmt.Sprintf("value [%d] is not a number or row", i))
			return nil
		}
	}

	if flat != nil {
		if out != nil {
			L.ArgError(n, "mixed numbers and rows")
			return nil
		}
		return [][]float64{flat}
	}
	return out
}
