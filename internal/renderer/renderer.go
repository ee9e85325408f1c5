package renderer

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/congram/internal/logging"
	"github.com/dshills/congram/internal/renderer/ansi"
	"github.com/dshills/congram/internal/renderer/core"
	"github.com/dshills/congram/internal/renderer/occlusion"
	"github.com/dshills/congram/internal/renderer/scene"
)

// Options configures the renderer.
type Options struct {
	// Output
	ResetEachSpan bool // Reset attributes after every span, not only at line end
	PadEmpty      bool // Fill rows without spans with spaces

	// Checking
	Strict bool // Validate every resolved row and fail instead of emitting bad output

	// Logger receives frame statistics at debug level. Nil discards.
	Logger *log.Logger
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ResetEachSpan: true,
		PadEmpty:      false,
		Strict:        false,
	}
}

// Compositor runs render passes over a canvas.
// A render pass does not modify the scene tree.
type Compositor struct {
	opts   Options
	logger *log.Logger
}

// NewCompositor creates a compositor.
func NewCompositor(opts Options) *Compositor {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Compositor{
		opts:   opts,
		logger: logging.WithComponent(logger, "compositor"),
	}
}

// Compose renders the canvas into a frame.
// In strict mode an invariant violation is returned as an
// *occlusion.InvariantError and no frame is produced.
func (c *Compositor) Compose(canvas *scene.Canvas) (*Frame, error) {
	start := time.Now()

	spans := canvas.Render(core.Vector2{})
	rows := occlusion.Rows(spans)
	for _, row := range rows {
		occlusion.SortRow(row)
	}

	if c.opts.Strict {
		if err := occlusion.ValidateAll(rows, canvas.Cols()); err != nil {
			c.logger.Error("resolver invariant violated", "err", err)
			return nil, err
		}
	}

	frame := newFrame(canvas.Cols(), canvas.Rows(), rows)
	c.logger.Debug("frame composed",
		"rows", frame.Height,
		"cols", frame.Width,
		"spans", frame.SpanCount(),
		"elapsed", time.Since(start),
	)
	return frame, nil
}

// Formatter returns the line formatter matching the options for a given width.
func (c *Compositor) Formatter(width int) ansi.Formatter {
	return ansi.Formatter{
		ResetEachSpan: c.opts.ResetEachSpan,
		PadEmpty:      c.opts.PadEmpty,
		Width:         width,
	}
}

// Renderer composes canvases and writes them as text lines.
type Renderer struct {
	out        io.Writer
	compositor *Compositor
}

// New creates a renderer writing to out.
func New(out io.Writer, opts Options) *Renderer {
	return &Renderer{
		out:        out,
		compositor: NewCompositor(opts),
	}
}

// Compositor returns the underlying compositor.
func (r *Renderer) Compositor() *Compositor {
	return r.compositor
}

// Render composes the canvas and writes one line per row.
func (r *Renderer) Render(canvas *scene.Canvas) error {
	frame, err := r.compositor.Compose(canvas)
	if err != nil {
		return err
	}
	return r.WriteFrame(frame)
}

// WriteFrame writes an already composed frame.
func (r *Renderer) WriteFrame(frame *Frame) error {
	return r.compositor.Formatter(frame.Width).WriteRows(r.out, frame.Rows)
}
