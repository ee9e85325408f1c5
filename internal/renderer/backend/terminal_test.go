package backend

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/congram/internal/renderer/core"
)

func newSimTerminal(t *testing.T, rows, cols int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(term.Shutdown)
	return term, screen
}

func TestTerminalSize(t *testing.T) {
	term, _ := newSimTerminal(t, 24, 80)
	rows, cols := term.Size()
	if rows != 24 || cols != 80 {
		t.Errorf("expected (24, 80), got (%d, %d)", rows, cols)
	}
}

func TestTerminalDraw(t *testing.T) {
	term, _ := newSimTerminal(t, 4, 12)

	style := core.NewStyle(core.NewRGB(255, 255, 255), core.NewRGB(127, 0, 64))
	term.Draw([][]core.Span{
		{core.NewSpan(0, 0, "hello", style)},
		nil,
		{core.NewSpan(2, 10, "clip", style)},
	})
	term.Show()

	r, got := term.CellAt(0, 1)
	if r != 'e' {
		t.Errorf("expected 'e', got %q", r)
	}
	if !got.Equals(style) {
		t.Errorf("expected style %v, got %v", style, got)
	}

	if r, _ := term.CellAt(2, 11); r != 'l' {
		t.Errorf("expected clipped span to keep 'l' at last column, got %q", r)
	}
}

func TestTerminalDrawClampsChannels(t *testing.T) {
	term, _ := newSimTerminal(t, 1, 4)

	term.Draw([][]core.Span{
		{core.NewSpan(0, 0, "x", core.NewStyle(core.NewRGB(300, -5, 128), core.Black))},
	})

	_, got := term.CellAt(0, 0)
	want := core.NewRGB(255, 0, 128)
	if got.Fore != want {
		t.Errorf("expected clamped %v, got %v", want, got.Fore)
	}
}

func TestTerminalKeyEvents(t *testing.T) {
	term, screen := newSimTerminal(t, 5, 5)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := term.Events(ctx)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("event channel closed early")
			}
			if ev.Type != EventKey {
				continue
			}
			if ev.Rune != 'q' {
				t.Errorf("expected 'q', got %q", ev.Rune)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for key event")
		}
	}
}

func TestConvertEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventResize(30, 10))
	if ev.Type != EventResize || ev.Rows != 10 || ev.Cols != 30 {
		t.Errorf("unexpected resize conversion %+v", ev)
	}

	ev = convertEvent(tcell.NewEventInterrupt(nil))
	if ev.Type != EventInterrupt {
		t.Errorf("expected interrupt, got %v", ev.Type)
	}
}
