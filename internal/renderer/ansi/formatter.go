// Package ansi serializes resolved span rows into truecolor escape-coded
// text lines.
//
// Every color sequence is wrapped in \x01 ... \x02 so readline-style
// prompts can tell the non-printing bytes apart from visible text.
package ansi

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/congram/internal/renderer/core"
)

// Escape sequences.
const (
	// Reset restores default attributes.
	Reset = "\x01\x1b[0m\x02"

	// Clear moves the cursor home and erases the screen.
	Clear = "\x1b[H\x1b[2J"

	foreground = 38
	background = 48
)

// Foreground returns the sequence that sets the foreground color.
func Foreground(c core.RGB) string {
	return colorSeq(foreground, c)
}

// Background returns the sequence that sets the background color.
func Background(c core.RGB) string {
	return colorSeq(background, c)
}

func colorSeq(layer int, c core.RGB) string {
	var b strings.Builder
	b.Grow(24)
	b.WriteString("\x01\x1b[")
	b.WriteString(strconv.Itoa(layer))
	b.WriteString(";2;")
	b.WriteString(strconv.Itoa(c.R))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(c.G))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(c.B))
	b.WriteString("m\x02")
	return b.String()
}

// Formatter turns resolved rows into text lines.
type Formatter struct {
	// ResetEachSpan appends a reset after every span instead of only at
	// the end of the line.
	ResetEachSpan bool

	// PadEmpty fills rows without spans with Width plain spaces.
	PadEmpty bool

	// Width is the canvas width, used by PadEmpty.
	Width int
}

// Stroke returns one styled span: foreground, background, then the text.
func Stroke(s core.Span) string {
	return Foreground(s.Style.Fore) + Background(s.Style.Back) + string(s.Text)
}

// FormatLine serializes one row. Spans must be sorted by column and must
// not overlap. Columns before the first span and any gaps between spans
// are filled with uncolored spaces. The line always ends with a reset.
func (f Formatter) FormatLine(spans []core.Span) string {
	var b strings.Builder

	if len(spans) == 0 {
		if f.PadEmpty && f.Width > 0 {
			b.WriteString(strings.Repeat(" ", f.Width))
		}
		b.WriteString(Reset)
		return b.String()
	}

	col := 0
	endsWithReset := false
	for _, s := range spans {
		if s.IsEmpty() {
			continue
		}
		if s.Col > col {
			b.WriteString(strings.Repeat(" ", s.Col-col))
		}
		b.WriteString(Stroke(s))
		endsWithReset = f.ResetEachSpan
		if f.ResetEachSpan {
			b.WriteString(Reset)
		}
		col = s.End()
	}

	if !endsWithReset {
		b.WriteString(Reset)
	}
	return b.String()
}

// WriteRows writes one newline-terminated line per row, top to bottom.
func (f Formatter) WriteRows(w io.Writer, rows [][]core.Span) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		if _, err := bw.WriteString(f.FormatLine(row)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Strip removes every escape sequence produced by this package,
// leaving the visible text.
func Strip(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	inSeq := false
	for _, r := range line {
		switch {
		case r == '\x01':
			inSeq = true
		case r == '\x02':
			inSeq = false
		case !inSeq:
			b.WriteRune(r)
		}
	}
	return b.String()
}
