// Package backend provides display backends for resolved frames.
package backend

import (
	"context"

	"github.com/dshills/congram/internal/renderer/core"
)

// EventType identifies the type of display event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventInterrupt:
		return "interrupt"
	default:
		return "none"
	}
}

// Event represents a display event.
type Event struct {
	Type EventType

	// Key event fields
	Rune rune
	Name string

	// Resize event fields
	Rows, Cols int
}

// Backend draws resolved rows onto a display surface.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current display dimensions.
	Size() (rows, cols int)

	// Draw replaces the display contents with the given rows.
	// Cells not covered by a span are cleared.
	Draw(rows [][]core.Span)

	// Show flushes drawn content to the display.
	Show()

	// Events delivers display events until ctx is done or the backend
	// shuts down, then closes the channel.
	Events(ctx context.Context) <-chan Event
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	rows, cols int
	cells      [][]Cell
	shown      int
	events     chan Event
}

// Cell is one drawn character and its style.
type Cell struct {
	Rune  rune
	Style core.Style
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(rows, cols int) *NullBackend {
	return &NullBackend{
		rows:   rows,
		cols:   cols,
		events: make(chan Event, 16),
	}
}

func (b *NullBackend) Init() error {
	b.clear()
	return nil
}

func (b *NullBackend) clear() {
	b.cells = make([][]Cell, b.rows)
	for i := range b.cells {
		b.cells[i] = make([]Cell, b.cols)
		for j := range b.cells[i] {
			b.cells[i][j] = Cell{Rune: ' ', Style: core.DefaultStyle()}
		}
	}
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.rows, b.cols
}

func (b *NullBackend) Draw(rows [][]core.Span) {
	b.clear()
	for _, row := range rows {
		for _, s := range row {
			for i, r := range s.Text {
				x := s.Col + i
				if s.Row >= 0 && s.Row < b.rows && x >= 0 && x < b.cols {
					b.cells[s.Row][x] = Cell{Rune: r, Style: s.Style}
				}
			}
		}
	}
}

func (b *NullBackend) Show() {
	b.shown++
}

func (b *NullBackend) Events(ctx context.Context) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-b.events:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// CellAt returns the drawn cell at (row, col) for testing.
func (b *NullBackend) CellAt(row, col int) Cell {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return Cell{}
	}
	return b.cells[row][col]
}

// ShowCount returns how many times Show was called.
func (b *NullBackend) ShowCount() int {
	return b.shown
}

// Post queues an event for testing.
func (b *NullBackend) Post(ev Event) {
	select {
	case b.events <- ev:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Resize simulates a display resize for testing.
func (b *NullBackend) Resize(rows, cols int) {
	b.rows = rows
	b.cols = cols
	b.clear()
	b.Post(Event{Type: EventResize, Rows: rows, Cols: cols})
}
