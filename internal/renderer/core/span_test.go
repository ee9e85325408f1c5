package core

import (
	"testing"
)

func TestSpanBounds(t *testing.T) {
	s := NewSpan(0, 2, "HELLOWORLD", DefaultStyle())
	if s.Len() != 10 || s.End() != 12 {
		t.Errorf("expected len 10 end 12, got len %d end %d", s.Len(), s.End())
	}
}

func TestSpanSlice(t *testing.T) {
	s := NewSpan(3, 2, "HELLOWORLD", DefaultStyle())

	tests := []struct {
		from, to int
		col      int
		text     string
	}{
		{2, 5, 2, "HEL"},
		{7, 12, 7, "WORLD"},
		{5, 7, 5, "LO"},
		{0, 4, 2, "HE"},
		{10, 40, 10, "LD"},
		{12, 20, 12, ""},
		{6, 6, 6, ""},
	}

	for _, tt := range tests {
		got := s.Slice(tt.from, tt.to)
		if got.Col != tt.col || got.String() != tt.text {
			t.Errorf("Slice(%d, %d): expected col %d %q, got col %d %q",
				tt.from, tt.to, tt.col, tt.text, got.Col, got.String())
		}
		if got.Row != 3 || !got.Style.Equals(s.Style) {
			t.Errorf("Slice(%d, %d) should keep row and style", tt.from, tt.to)
		}
	}
}

func TestSpanOverlaps(t *testing.T) {
	a := NewSpan(0, 0, "abcd", DefaultStyle())

	tests := []struct {
		other Span
		want  bool
	}{
		{NewSpan(0, 4, "x", DefaultStyle()), false},
		{NewSpan(0, 3, "x", DefaultStyle()), true},
		{NewSpan(1, 0, "x", DefaultStyle()), false},
		{NewSpan(0, -2, "xx", DefaultStyle()), false},
		{NewSpan(0, -2, "xxx", DefaultStyle()), true},
	}

	for _, tt := range tests {
		if got := a.Overlaps(tt.other); got != tt.want {
			t.Errorf("Overlaps(row %d col %d len %d): expected %v, got %v",
				tt.other.Row, tt.other.Col, tt.other.Len(), tt.want, got)
		}
	}
}
