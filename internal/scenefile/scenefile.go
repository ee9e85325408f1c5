// Package scenefile builds canvases from YAML scene descriptions.
//
// A scene lists top-level nodes in paint order. Nodes without a position
// are stacked top to bottom at the canvas cursor and centered horizontally.
//
//	canvas:
//	  back: "#000000"
//	nodes:
//	  - type: text
//	    label: Results
//	    fore: "#c080ff"
//	  - size: [5, 20]
//	    label: outer
//	    back: "#335577"
//	    children:
//	      - pos: [1, 2]
//	        size: [3, 8]
//	        label: inner
//	  - type: heatmap
//	    file: grid.csv
//	    scheme: sandy
package scenefile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dshills/congram/internal/dataset"
	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/scene"
	"github.com/dshills/congram/internal/scheme"
	"github.com/dshills/congram/internal/widget"
)

// Common errors.
var (
	ErrInvalid     = errors.New("invalid scene")
	ErrUnknownType = errors.New("unknown node type")
)

// Node types.
const (
	TypeBox       = "box"
	TypeText      = "text"
	TypeFrame     = "frame"
	TypeHeatmap   = "heatmap"
	TypeHistogram = "histogram"
)

// Document is a decoded scene file.
type Document struct {
	Canvas CanvasSpec `yaml:"canvas"`
	Nodes  []NodeSpec `yaml:"nodes"`
}

// CanvasSpec overrides canvas properties. Zero rows or cols keep the size
// supplied by the caller.
type CanvasSpec struct {
	Rows int    `yaml:"rows"`
	Cols int    `yaml:"cols"`
	Fore string `yaml:"fore"`
	Back string `yaml:"back"`
}

// NodeSpec describes one node and its children.
type NodeSpec struct {
	Type     string     `yaml:"type"`
	Pos      []int      `yaml:"pos"`
	Size     []int      `yaml:"size"`
	Label    string     `yaml:"label"`
	Fore     string     `yaml:"fore"`
	Back     string     `yaml:"back"`
	Gap      int        `yaml:"gap"`
	Children []NodeSpec `yaml:"children"`

	// Chart fields
	Data     [][]float64 `yaml:"data"`
	File     string      `yaml:"file"`
	Path     string      `yaml:"path"`
	Scheme   string      `yaml:"scheme"`
	CellRows int         `yaml:"cell_rows"`
	Frame    *bool       `yaml:"frame"`
	Legend   *bool       `yaml:"legend"`
	Height   int         `yaml:"height"`
}

// NodeError locates a failure inside the scene by node path,
// such as "nodes[1].children[0]".
type NodeError struct {
	Path string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// Decode reads a scene document. Unknown fields are rejected.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &doc, nil
}

// Load reads a scene document from a file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Options controls how a document becomes a canvas.
type Options struct {
	// Rows and Cols size the canvas unless the document overrides them.
	Rows, Cols int

	// Style is the canvas style unless the document overrides its colors.
	Style core.Style

	// Dir resolves relative data file paths.
	Dir string

	// Heatmap supplies defaults for heatmap nodes.
	Heatmap widget.HeatmapOptions
}

// DefaultOptions returns options for a 24x80 canvas.
func DefaultOptions() Options {
	return Options{
		Rows:    24,
		Cols:    80,
		Style:   core.DefaultStyle(),
		Heatmap: widget.DefaultHeatmapOptions(),
	}
}

// defaultNodeStyle is used for boxes that name no colors.
var defaultNodeStyle = core.NewStyle(core.White, core.Gray)

// Build creates a canvas and its node tree from doc.
func Build(doc *Document, opts Options) (*scene.Canvas, error) {
	rows, cols := opts.Rows, opts.Cols
	if doc.Canvas.Rows > 0 {
		rows = doc.Canvas.Rows
	}
	if doc.Canvas.Cols > 0 {
		cols = doc.Canvas.Cols
	}

	canvasStyle, err := parseStyle(doc.Canvas.Fore, doc.Canvas.Back, opts.Style)
	if err != nil {
		return nil, &NodeError{Path: "canvas", Err: err}
	}
	canvas := scene.NewCanvas(rows, cols, canvasStyle)

	b := &builder{canvas: canvas, opts: opts}
	for i, spec := range doc.Nodes {
		path := fmt.Sprintf("nodes[%d]", i)
		if err := b.top(path, spec); err != nil {
			return nil, err
		}
	}
	return canvas, nil
}

type builder struct {
	canvas *scene.Canvas
	opts   Options
}

func (b *builder) top(path string, spec NodeSpec) error {
	if spec.Type == TypeText {
		style, err := parseStyle(spec.Fore, spec.Back, b.canvas.Style)
		if err != nil {
			return &NodeError{Path: path, Err: err}
		}
		if err := widget.Text(b.canvas, spec.Label, style); err != nil {
			return &NodeError{Path: path, Err: err}
		}
		return nil
	}

	node, err := b.node(path, spec)
	if err != nil {
		return err
	}
	if spec.Pos == nil {
		err = b.canvas.Place(node, spec.Gap)
	} else {
		err = b.canvas.AddChild(node)
	}
	if err != nil {
		return &NodeError{Path: path, Err: err}
	}
	return nil
}

// node builds spec and its children. The returned node is detached.
func (b *builder) node(path string, spec NodeSpec) (*scene.Node, error) {
	fail := func(err error) (*scene.Node, error) {
		return nil, &NodeError{Path: path, Err: err}
	}

	pos, err := vector(spec.Pos, "pos")
	if err != nil {
		return fail(err)
	}

	var node *scene.Node
	switch spec.Type {
	case "", TypeBox:
		size, err := vector(spec.Size, "size")
		if err != nil {
			return fail(err)
		}
		style, err := parseStyle(spec.Fore, spec.Back, defaultNodeStyle)
		if err != nil {
			return fail(err)
		}
		node = scene.NewNode(pos, size, spec.Label, style)

	case TypeFrame:
		size, err := vector(spec.Size, "size")
		if err != nil {
			return fail(err)
		}
		style, err := parseStyle(spec.Fore, spec.Back, core.NewStyle(core.White, b.canvas.Style.Back))
		if err != nil {
			return fail(err)
		}
		node, err = widget.Frame(size, widget.FrameOptions{Style: style})
		if err != nil {
			return fail(err)
		}
		node.Pos = pos

	case TypeHeatmap:
		node, err = b.heatmap(spec)
		if err != nil {
			return fail(err)
		}
		node.Pos = pos

	case TypeHistogram:
		node, err = b.histogram(spec)
		if err != nil {
			return fail(err)
		}
		node.Pos = pos

	case TypeText:
		return fail(fmt.Errorf("%w: text nodes are only allowed at top level", ErrInvalid))

	default:
		return fail(fmt.Errorf("%w: %q", ErrUnknownType, spec.Type))
	}

	for i, childSpec := range spec.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		child, err := b.node(childPath, childSpec)
		if err != nil {
			return nil, err
		}
		if err := node.AddChild(child); err != nil {
			return nil, &NodeError{Path: childPath, Err: err}
		}
	}
	return node, nil
}

func (b *builder) heatmap(spec NodeSpec) (*scene.Node, error) {
	values, err := b.values(spec)
	if err != nil {
		return nil, err
	}

	opts := b.opts.Heatmap
	opts.Back = b.canvas.Style
	if spec.Scheme != "" {
		if opts.Scheme, err = scheme.Lookup(spec.Scheme); err != nil {
			return nil, err
		}
	}
	if spec.CellRows > 0 {
		opts.CellRows = spec.CellRows
	}
	if spec.Frame != nil {
		opts.Frame = *spec.Frame
	}
	if spec.Legend != nil {
		opts.Legend = *spec.Legend
	}
	return widget.Heatmap(values, opts)
}

func (b *builder) histogram(spec NodeSpec) (*scene.Node, error) {
	values, err := b.values(spec)
	if err != nil {
		return nil, err
	}

	opts := widget.DefaultHistogramOptions()
	opts.Back = b.canvas.Style
	if spec.Scheme != "" {
		if opts.Scheme, err = scheme.Lookup(spec.Scheme); err != nil {
			return nil, err
		}
	}
	if spec.Height > 0 {
		opts.Height = spec.Height
	}
	return widget.Histogram(values.Flatten(), opts)
}

// values returns inline data or loads the referenced file.
func (b *builder) values(spec NodeSpec) (dataset.Table, error) {
	switch {
	case spec.File != "" && spec.Data != nil:
		return nil, fmt.Errorf("%w: both data and file given", ErrInvalid)
	case spec.File != "":
		path := spec.File
		if !filepath.IsAbs(path) && b.opts.Dir != "" {
			path = filepath.Join(b.opts.Dir, path)
		}
		return dataset.Load(path, spec.Path)
	case spec.Data != nil:
		return dataset.Table(spec.Data), nil
	default:
		return nil, fmt.Errorf("%w: no data", ErrInvalid)
	}
}

func vector(v []int, field string) (core.Vector2, error) {
	switch len(v) {
	case 0:
		return core.Vector2{}, nil
	case 2:
		return core.Vec(v[0], v[1]), nil
	default:
		return core.Vector2{}, fmt.Errorf("%w: %s needs [row, col], got %v", ErrInvalid, field, v)
	}
}

func parseStyle(fore, back string, def core.Style) (core.Style, error) {
	style := def
	if fore != "" {
		c, err := core.ParseHex(fore)
		if err != nil {
			return core.Style{}, fmt.Errorf("fore: %w", err)
		}
		style.Fore = c
	}
	if back != "" {
		c, err := core.ParseHex(back)
		if err != nil {
			return core.Style{}, fmt.Errorf("back: %w", err)
		}
		style.Back = c
	}
	return style, nil
}
