package backend

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/congram/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a tcell
// simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	return h, w
}

func (t *Terminal) Draw(rows [][]core.Span) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	width, height := t.screen.Size()

	for _, row := range rows {
		for _, s := range row {
			if s.Row < 0 || s.Row >= height {
				continue
			}
			style := convertStyle(s.Style)
			for i, r := range s.Text {
				x := s.Col + i
				if x >= 0 && x < width {
					t.screen.SetContent(x, s.Row, r, nil, style)
				}
			}
		}
	}
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// Sync redraws the whole screen, used after a resize.
func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Sync()
}

// Events polls tcell for key and resize events.
// When ctx is done an interrupt is posted to unblock the poller.
func (t *Terminal) Events(ctx context.Context) <-chan Event {
	out := make(chan Event)

	go func() {
		<-ctx.Done()
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; queue may be full
	}()

	go func() {
		defer close(out)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			converted := convertEvent(ev)
			if converted.Type == EventNone {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- converted:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// CellAt returns the rune and style at (row, col) of the screen buffer.
func (t *Terminal) CellAt(row, col int) (rune, core.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(col, row) //nolint:staticcheck // GetContent is the correct API
	return mainc, convertTcellStyle(style)
}

// convertStyle converts a span style to tcell. Channels are clamped
// because tcell packs them into 8 bits.
func convertStyle(s core.Style) tcell.Style {
	fg := s.Fore.Clamp()
	bg := s.Back.Clamp()
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
}

// convertTcellStyle converts a tcell style back to a span style.
func convertTcellStyle(ts tcell.Style) core.Style {
	fg, bg, _ := ts.Decompose()
	return core.Style{
		Fore: convertTcellColor(fg),
		Back: convertTcellColor(bg),
	}
}

func convertTcellColor(tc tcell.Color) core.RGB {
	if tc == tcell.ColorDefault {
		return core.Black
	}
	r, g, b := tc.RGB()
	return core.NewRGB(int(r), int(g), int(b))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Rune: e.Rune(),
			Name: e.Name(),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type: EventResize,
			Rows: h,
			Cols: w,
		}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventNone}
	}
}
