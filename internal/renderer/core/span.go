package core

// Span is a run of styled text on a single absolute row.
// Spans exist only during a render pass.
type Span struct {
	Row   int
	Col   int
	Text  []rune
	Style Style
}

// NewSpan creates a span from a string.
func NewSpan(row, col int, text string, style Style) Span {
	return Span{Row: row, Col: col, Text: []rune(text), Style: style}
}

// Len returns the width of the span in cells.
func (s Span) Len() int {
	return len(s.Text)
}

// End returns the exclusive end column.
func (s Span) End() int {
	return s.Col + len(s.Text)
}

// IsEmpty returns true if the span covers no cells.
func (s Span) IsEmpty() bool {
	return len(s.Text) == 0
}

// Overlaps returns true if two spans share a row and at least one cell.
func (s Span) Overlaps(other Span) bool {
	return s.Row == other.Row && s.Col < other.End() && other.Col < s.End()
}

// Slice returns the part of the span covering absolute columns [from, to).
// The bounds are clipped to the span; the result may be empty.
func (s Span) Slice(from, to int) Span {
	from = max(from, s.Col)
	to = min(to, s.End())
	if to <= from {
		return Span{Row: s.Row, Col: from, Style: s.Style}
	}
	return Span{
		Row:   s.Row,
		Col:   from,
		Text:  s.Text[from-s.Col : to-s.Col],
		Style: s.Style,
	}
}

// String returns the span text.
func (s Span) String() string {
	return string(s.Text)
}
