package occlusion

import (
	"errors"
	"fmt"

	"github.com/dshills/congram/internal/renderer/core"
)

// Invariant violations. A correct resolver never produces them.
var (
	// ErrOverlap indicates two retained spans share a cell.
	ErrOverlap = errors.New("overlapping spans")

	// ErrWidthExceeded indicates a span reaches past the row width.
	ErrWidthExceeded = errors.New("span exceeds row width")

	// ErrOutOfRow indicates a span is not on the row being checked.
	ErrOutOfRow = errors.New("span on wrong row")

	// ErrUnsorted indicates spans are not in ascending column order.
	ErrUnsorted = errors.New("spans not sorted by column")
)

// InvariantError describes a resolved row that breaks the output contract.
type InvariantError struct {
	Row   int
	Span  core.Span
	Other *core.Span
	Width int
	Err   error
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if e.Other != nil {
		return fmt.Sprintf("row %d: %v: [%d,%d) and [%d,%d)",
			e.Row, e.Err, e.Other.Col, e.Other.End(), e.Span.Col, e.Span.End())
	}
	return fmt.Sprintf("row %d: %v: [%d,%d) width %d",
		e.Row, e.Err, e.Span.Col, e.Span.End(), e.Width)
}

// Unwrap returns the sentinel error.
func (e *InvariantError) Unwrap() error {
	return e.Err
}

// Validate checks a resolved row: every span is on the row, inside
// [0, width), sorted and free of overlaps. A width <= 0 skips the width check.
func Validate(row int, spans []core.Span, width int) error {
	for i, s := range spans {
		if s.Row != row {
			return &InvariantError{Row: row, Span: s, Width: width, Err: ErrOutOfRow}
		}
		if width > 0 && (s.Col < 0 || s.End() > width) {
			return &InvariantError{Row: row, Span: s, Width: width, Err: ErrWidthExceeded}
		}
		if i == 0 {
			continue
		}
		prev := spans[i-1]
		if s.Col < prev.Col {
			return &InvariantError{Row: row, Span: s, Other: &prev, Width: width, Err: ErrUnsorted}
		}
		if s.Col < prev.End() {
			return &InvariantError{Row: row, Span: s, Other: &prev, Width: width, Err: ErrOverlap}
		}
	}
	return nil
}

// ValidateAll checks every row of a grouping.
func ValidateAll(rows map[int][]core.Span, width int) error {
	for _, r := range RowIndexes(rows) {
		if err := Validate(r, rows[r], width); err != nil {
			return err
		}
	}
	return nil
}
