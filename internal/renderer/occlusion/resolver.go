// Package occlusion resolves overlapping spans into the visible,
// non-overlapping set for each row.
//
// Spans are painted in order: a span occludes every part of an earlier span
// it shares cells with. Column extents are half-open, [Col, End), so spans
// that merely touch do not affect each other.
package occlusion

import (
	"sort"

	"github.com/dshills/congram/internal/renderer/core"
)

// Relation classifies how a fresh span affects a background span.
type Relation int

const (
	// Dodge means the spans share no cells.
	Dodge Relation = iota
	// Cover means the fresh span hides the whole background span.
	Cover
	// Split means the fresh span lies strictly inside the background span.
	Split
	// CoverLeft means the fresh span hides the left part of the background span.
	CoverLeft
	// CoverRight means the fresh span hides the right part of the background span.
	CoverRight
)

// String returns the relation name.
func (r Relation) String() string {
	switch r {
	case Dodge:
		return "dodge"
	case Cover:
		return "cover"
	case Split:
		return "split"
	case CoverLeft:
		return "cover-left"
	case CoverRight:
		return "cover-right"
	default:
		return "unknown"
	}
}

// Classify returns how fresh, painted on top, affects bg.
// Row is not considered.
func Classify(fresh, bg core.Span) Relation {
	ns, ne := fresh.Col, fresh.End()
	bs, be := bg.Col, bg.End()

	switch {
	case ne <= bs || ns >= be:
		return Dodge
	case ns <= bs && ne >= be:
		return Cover
	case ns > bs && ne < be:
		return Split
	case ns <= bs:
		return CoverLeft
	default:
		return CoverRight
	}
}

// Occlude returns what remains visible of bg after fresh is painted over it.
// Zero-length remainders are dropped. The result has 0, 1 or 2 spans.
func Occlude(fresh, bg core.Span) []core.Span {
	if fresh.Row != bg.Row || fresh.IsEmpty() {
		return []core.Span{bg}
	}

	switch Classify(fresh, bg) {
	case Dodge:
		return []core.Span{bg}
	case Cover:
		return nil
	case Split:
		return nonEmpty(
			bg.Slice(bg.Col, fresh.Col),
			bg.Slice(fresh.End(), bg.End()),
		)
	case CoverLeft:
		return nonEmpty(bg.Slice(fresh.End(), bg.End()))
	default:
		return nonEmpty(bg.Slice(bg.Col, fresh.Col))
	}
}

func nonEmpty(spans ...core.Span) []core.Span {
	out := spans[:0]
	for _, s := range spans {
		if !s.IsEmpty() {
			out = append(out, s)
		}
	}
	return out
}

// ResolveRow paints fresh over background, one span at a time.
// All spans are expected to share a row and background must already be
// non-overlapping. Every fresh span is tested against the full retained set,
// including fresh spans painted before it. The result is sorted by column.
func ResolveRow(background, fresh []core.Span) []core.Span {
	retained := make([]core.Span, 0, len(background)+len(fresh))
	for _, b := range background {
		if !b.IsEmpty() {
			retained = append(retained, b)
		}
	}

	next := make([]core.Span, 0, cap(retained))
	for _, n := range fresh {
		if n.IsEmpty() {
			continue
		}
		next = next[:0]
		for _, b := range retained {
			next = append(next, Occlude(n, b)...)
		}
		next = append(next, n)
		retained, next = next, retained
	}

	SortRow(retained)
	return retained
}

// Layer paints fresh over background across any number of rows.
// The result is grouped row-major and sorted by column within each row.
func Layer(background, fresh []core.Span) []core.Span {
	if len(fresh) == 0 {
		return background
	}

	bgRows := Rows(background)
	freshRows := Rows(fresh)

	for row, spans := range freshRows {
		bgRows[row] = ResolveRow(bgRows[row], spans)
	}

	return Flatten(bgRows)
}

// Resolve paints spans in order onto an empty row set.
func Resolve(spans []core.Span) []core.Span {
	return Layer(nil, spans)
}

// Rows groups spans by row, keeping their relative order.
func Rows(spans []core.Span) map[int][]core.Span {
	rows := make(map[int][]core.Span)
	for _, s := range spans {
		rows[s.Row] = append(rows[s.Row], s)
	}
	return rows
}

// RowIndexes returns the rows present in a grouping, ascending.
func RowIndexes(rows map[int][]core.Span) []int {
	idx := make([]int, 0, len(rows))
	for r := range rows {
		idx = append(idx, r)
	}
	sort.Ints(idx)
	return idx
}

// Flatten joins a row grouping back into a row-major slice.
func Flatten(rows map[int][]core.Span) []core.Span {
	n := 0
	for _, spans := range rows {
		n += len(spans)
	}
	out := make([]core.Span, 0, n)
	for _, r := range RowIndexes(rows) {
		out = append(out, rows[r]...)
	}
	return out
}

// SortRow sorts spans of one row by starting column.
func SortRow(spans []core.Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Col < spans[j].Col
	})
}
