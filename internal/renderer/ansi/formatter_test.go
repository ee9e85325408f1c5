package ansi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/congram/internal/renderer/core"
)

var testStyle = core.NewStyle(core.NewRGB(255, 128, 0), core.NewRGB(1, 2, 3))

func TestSequences(t *testing.T) {
	if got := Foreground(core.NewRGB(1, 22, 255)); got != "\x01\x1b[38;2;1;22;255m\x02" {
		t.Errorf("Foreground: got %q", got)
	}
	if got := Background(core.NewRGB(0, 0, 0)); got != "\x01\x1b[48;2;0;0;0m\x02" {
		t.Errorf("Background: got %q", got)
	}
	if Reset != "\x01\x1b[0m\x02" {
		t.Errorf("Reset: got %q", Reset)
	}
}

func TestFormatLine(t *testing.T) {
	fore := "\x01\x1b[38;2;255;128;0m\x02"
	back := "\x01\x1b[48;2;1;2;3m\x02"

	spans := []core.Span{
		core.NewSpan(0, 2, "ab", testStyle),
		core.NewSpan(0, 4, "c", testStyle),
	}

	tests := []struct {
		name string
		f    Formatter
		want string
	}{
		{
			name: "reset at end",
			f:    Formatter{},
			want: "  " + fore + back + "ab" + fore + back + "c" + Reset,
		},
		{
			name: "reset each span",
			f:    Formatter{ResetEachSpan: true},
			want: "  " + fore + back + "ab" + Reset + fore + back + "c" + Reset,
		},
	}

	for _, tt := range tests {
		if got := tt.f.FormatLine(spans); got != tt.want {
			t.Errorf("%s:\nexpected %q\ngot      %q", tt.name, tt.want, got)
		}
	}
}

func TestFormatLineResetEachSpanCount(t *testing.T) {
	f := Formatter{ResetEachSpan: true}
	spans := []core.Span{
		core.NewSpan(0, 0, "a", testStyle),
		core.NewSpan(0, 1, "b", testStyle),
		core.NewSpan(0, 2, "c", testStyle),
	}

	got := f.FormatLine(spans)
	if n := strings.Count(got, Reset); n != len(spans) {
		t.Errorf("expected %d resets, got %d in %q", len(spans), n, got)
	}
	if !strings.HasSuffix(got, Reset) {
		t.Errorf("expected trailing reset, got %q", got)
	}

	// Only empty spans: nothing was reset yet.
	if got := f.FormatLine([]core.Span{core.NewSpan(0, 0, "", testStyle)}); got != Reset {
		t.Errorf("expected bare reset, got %q", got)
	}
}

func TestFormatLineEmpty(t *testing.T) {
	if got := (Formatter{}).FormatLine(nil); got != Reset {
		t.Errorf("expected bare reset, got %q", got)
	}

	f := Formatter{PadEmpty: true, Width: 3}
	if got := f.FormatLine(nil); got != "   "+Reset {
		t.Errorf("expected padded line, got %q", got)
	}
}

func TestFormatLineGap(t *testing.T) {
	spans := []core.Span{
		core.NewSpan(0, 0, "a", testStyle),
		core.NewSpan(0, 3, "b", testStyle),
	}
	got := Strip((Formatter{}).FormatLine(spans))
	if got != "a  b" {
		t.Errorf("expected gap padded with spaces, got %q", got)
	}
}

func TestWriteRows(t *testing.T) {
	rows := [][]core.Span{
		{core.NewSpan(0, 0, "top", testStyle)},
		nil,
		{core.NewSpan(2, 1, "x", testStyle)},
	}

	var buf bytes.Buffer
	if err := (Formatter{}).WriteRows(&buf, rows); err != nil {
		t.Fatalf("WriteRows: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	visible := []string{"top", "", " x"}
	for i, line := range lines {
		if !strings.HasSuffix(line, Reset) {
			t.Errorf("line %d does not end with reset: %q", i, line)
		}
		if got := Strip(line); got != visible[i] {
			t.Errorf("line %d: expected %q, got %q", i, visible[i], got)
		}
	}
}
