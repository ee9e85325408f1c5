// Package dump exports composed frames as JSON and reads them back.
//
// The document shape is
//
//	{"width":W,"height":H,"rows":[[{"col":c,"text":"...","fore":"#rrggbb","back":"#rrggbb"}]]}
//
// with one array per canvas row, spans sorted by column.
package dump

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/congram/internal/renderer"
	"github.com/dshills/congram/internal/renderer/core"
)

// ErrInvalidDocument is returned when a dump cannot be decoded.
var ErrInvalidDocument = errors.New("invalid frame document")

// Frame encodes a frame as a JSON document.
func Frame(f *renderer.Frame) ([]byte, error) {
	doc := []byte(`{}`)
	var err error

	if doc, err = sjson.SetBytes(doc, "width", f.Width); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "height", f.Height); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetRawBytes(doc, "rows", []byte(`[]`)); err != nil {
		return nil, err
	}

	for i, row := range f.Rows {
		if doc, err = sjson.SetRawBytes(doc, "rows.-1", []byte(`[]`)); err != nil {
			return nil, err
		}
		path := "rows." + strconv.Itoa(i) + ".-1"
		for _, s := range row {
			obj, err := span(s)
			if err != nil {
				return nil, err
			}
			if doc, err = sjson.SetRawBytes(doc, path, obj); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

func span(s core.Span) ([]byte, error) {
	obj := []byte(`{}`)
	var err error
	if obj, err = sjson.SetBytes(obj, "col", s.Col); err != nil {
		return nil, err
	}
	if obj, err = sjson.SetBytes(obj, "text", string(s.Text)); err != nil {
		return nil, err
	}
	if obj, err = sjson.SetBytes(obj, "fore", s.Style.Fore.Clamp().Hex()); err != nil {
		return nil, err
	}
	return sjson.SetBytes(obj, "back", s.Style.Back.Clamp().Hex())
}

// Write encodes f and writes it to w followed by a newline.
func Write(w io.Writer, f *renderer.Frame) error {
	doc, err := Frame(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	doc = append(doc, '\n')
	_, err = w.Write(doc)
	return err
}

// Decode parses a document produced by Frame.
func Decode(data []byte) (*renderer.Frame, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}
	doc := gjson.ParseBytes(data)

	width, height := doc.Get("width"), doc.Get("height")
	if width.Type != gjson.Number || height.Type != gjson.Number {
		return nil, fmt.Errorf("%w: missing width or height", ErrInvalidDocument)
	}
	if width.Int() < 0 || height.Int() < 0 {
		return nil, fmt.Errorf("%w: negative size", ErrInvalidDocument)
	}

	rows := doc.Get("rows")
	if !rows.IsArray() {
		return nil, fmt.Errorf("%w: rows is not an array", ErrInvalidDocument)
	}

	f := &renderer.Frame{
		Width:  int(width.Int()),
		Height: int(height.Int()),
		Rows:   make([][]core.Span, int(height.Int())),
	}

	var decodeErr error
	rows.ForEach(func(key, row gjson.Result) bool {
		r := int(key.Int())
		if r >= f.Height {
			decodeErr = fmt.Errorf("%w: row %d beyond height %d", ErrInvalidDocument, r, f.Height)
			return false
		}
		row.ForEach(func(_, obj gjson.Result) bool {
			s, err := decodeSpan(r, obj)
			if err != nil {
				decodeErr = err
				return false
			}
			f.Rows[r] = append(f.Rows[r], s)
			return true
		})
		return decodeErr == nil
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return f, nil
}

func decodeSpan(row int, obj gjson.Result) (core.Span, error) {
	fore, err := core.ParseHex(obj.Get("fore").String())
	if err != nil {
		return core.Span{}, fmt.Errorf("%w: row %d: fore: %v", ErrInvalidDocument, row, err)
	}
	back, err := core.ParseHex(obj.Get("back").String())
	if err != nil {
		return core.Span{}, fmt.Errorf("%w: row %d: back: %v", ErrInvalidDocument, row, err)
	}
	return core.NewSpan(row, int(obj.Get("col").Int()), obj.Get("text").String(), core.NewStyle(fore, back)), nil
}
