// Package dataset loads numeric tables for heatmaps and histograms.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Common errors.
var (
	ErrEmpty       = errors.New("dataset is empty")
	ErrRagged      = errors.New("dataset rows have different lengths")
	ErrNotNumeric  = errors.New("value is not a number")
	ErrUnsupported = errors.New("unsupported dataset format")
)

// Table is a rectangular grid of values, row-major.
type Table [][]float64

// Rows returns the number of rows.
func (t Table) Rows() int {
	return len(t)
}

// Cols returns the number of columns.
func (t Table) Cols() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

// Flatten returns all values in row-major order.
func (t Table) Flatten() []float64 {
	out := make([]float64, 0, t.Rows()*t.Cols())
	for _, row := range t {
		out = append(out, row...)
	}
	return out
}

// CellError reports a value that could not be read.
type CellError struct {
	Row, Col int
	Value    string
	Err      error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("row %d, column %d: %q: %v", e.Row+1, e.Col+1, e.Value, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// RaggedError reports the first row whose length differs from the first row.
type RaggedError struct {
	Row       int
	Got, Want int
}

func (e *RaggedError) Error() string {
	return fmt.Sprintf("row %d has %d values, want %d", e.Row+1, e.Got, e.Want)
}

func (e *RaggedError) Unwrap() error {
	return ErrRagged
}

// check validates that t is non-empty and rectangular.
func check(t Table) error {
	if len(t) == 0 || len(t[0]) == 0 {
		return ErrEmpty
	}
	want := len(t[0])
	for i, row := range t {
		if len(row) != want {
			return &RaggedError{Row: i, Got: len(row), Want: want}
		}
	}
	return nil
}

// ReadCSV reads a table of numbers separated by comma.
// Lines starting with '#' are skipped and fields may be padded with spaces.
func ReadCSV(r io.Reader, comma rune) (Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	table := make(Table, 0, len(records))
	for r, record := range records {
		row := make([]float64, len(record))
		for c, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &CellError{Row: r, Col: c, Value: field, Err: ErrNotNumeric}
			}
			row[c] = v
		}
		table = append(table, row)
	}

	if err := check(table); err != nil {
		return nil, err
	}
	return table, nil
}

// FromJSON reads a table from a JSON document. path is a gjson path
// selecting an array of number arrays, or a flat number array which
// becomes a single row. An empty path selects the whole document.
func FromJSON(data []byte, path string) (Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("read json: %w", ErrUnsupported)
	}

	var root gjson.Result
	if path == "" {
		root = gjson.ParseBytes(data)
	} else {
		root = gjson.GetBytes(data, path)
	}
	if !root.Exists() {
		return nil, fmt.Errorf("json path %q: %w", path, ErrEmpty)
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("json path %q: %w", path, ErrNotNumeric)
	}

	items := root.Array()
	if len(items) > 0 && !items[0].IsArray() {
		row, err := numbers(0, items)
		if err != nil {
			return nil, err
		}
		table := Table{row}
		if err := check(table); err != nil {
			return nil, err
		}
		return table, nil
	}

	table := make(Table, 0, len(items))
	for r, item := range items {
		if !item.IsArray() {
			return nil, &CellError{Row: r, Col: 0, Value: item.Raw, Err: ErrNotNumeric}
		}
		row, err := numbers(r, item.Array())
		if err != nil {
			return nil, err
		}
		table = append(table, row)
	}

	if err := check(table); err != nil {
		return nil, err
	}
	return table, nil
}

func numbers(r int, items []gjson.Result) ([]float64, error) {
	row := make([]float64, len(items))
	for c, item := range items {
		if item.Type != gjson.Number {
			return nil, &CellError{Row: r, Col: c, Value: item.Raw, Err: ErrNotNumeric}
		}
		row[c] = item.Float()
	}
	return row, nil
}

// Load reads a table from a file, choosing the format by extension:
// .csv, .tsv or .json. jsonPath is only used for JSON files.
func Load(path, jsonPath string) (Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".tsv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		comma := ','
		if ext == ".tsv" {
			comma = '\t'
		}
		table, err := ReadCSV(f, comma)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return table, nil

	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		table, err := FromJSON(data, jsonPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return table, nil

	default:
		return nil, fmt.Errorf("%s: %w: %q", path, ErrUnsupported, ext)
	}
}
