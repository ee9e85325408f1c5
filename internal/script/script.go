// Package script builds canvases from Lua scene scripts.
//
// Scripts run in a sandbox with only the base, table, string and math
// libraries. The congram module exposes the canvas and the node builders:
//
//	local box = congram.node{pos = {1, 2}, size = {3, 10}, label = "hi", back = "#204060"}
//	congram.root:add(box)
//	congram.text("Heatmap", "#c0a0ff")
//	congram.place(congram.heatmap({{0, 1}, {2, 3}}, {scheme = "sandy"}), 1)
//
// print writes to the engine's logger.
package script

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/congram/internal/logging"
	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/scene"
	"github.com/dshills/congram/internal/widget"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// Options configures an Engine.
type Options struct {
	Rows, Cols int
	Style      core.Style

	// Heatmap supplies defaults for congram.heatmap.
	Heatmap widget.HeatmapOptions

	// Timeout bounds each run (0 = DefaultTimeout).
	Timeout time.Duration

	Logger *log.Logger
}

// DefaultOptions returns options for a 24x80 canvas.
func DefaultOptions() Options {
	return Options{
		Rows:    24,
		Cols:    80,
		Style:   core.DefaultStyle(),
		Heatmap: widget.DefaultHeatmapOptions(),
		Timeout: DefaultTimeout,
	}
}

// Engine runs scene scripts. Each run starts from a fresh Lua state and
// an empty canvas.
//
// An Engine is safe for concurrent use; runs are serialized.
type Engine struct {
	opts   Options
	logger *log.Logger

	mu     sync.Mutex
	closed bool
}

// NewEngine creates a script engine.
func NewEngine(opts Options) *Engine {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		opts:   opts,
		logger: logging.WithComponent(logger, "script"),
	}
}

// Close marks the engine closed. Later runs fail with ErrStateClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}

// RunFile runs the script at path.
func (e *Engine) RunFile(ctx context.Context, path string) (*scene.Canvas, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, path, string(code))
}

// Run executes code and returns the canvas it built. source names the
// script in errors.
func (e *Engine) Run(ctx context.Context, source, code string) (*scene.Canvas, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrStateClosed
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	L.SetContext(ctx)

	openSafeLibraries(L)

	rt := &runtime{
		canvas: scene.NewCanvas(e.opts.Rows, e.opts.Cols, e.opts.Style),
		opts:   e.opts,
		logger: e.logger.With("source", source),
	}
	rt.install(L)

	start := time.Now()
	if err := doWithRecovery(func() error { return L.DoString(code) }); err != nil {
		return nil, &Error{Source: source, Err: err, Placement: rt.placeErr}
	}

	e.logger.Debug("script finished",
		"source", source,
		"nodes", rt.canvas.ChildCount(),
		"elapsed", time.Since(start),
	)
	return rt.canvas, nil
}

// openSafeLibraries opens only the libraries a scene script needs and
// removes the loaders that reach the file system.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// doWithRecovery executes a function with panic recovery.
func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// printArgs joins print arguments the way Lua's print does.
func printArgs(L *lua.LState) string {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	return strings.Join(parts, "\t")
}
