package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
)

// DecodeJSON parses a JSON document, keeping the order of
// object members.
func DecodeJSON(data []byte, source string) (*Node, error) {
	d := jsonDecoder{data: data, source: source, dec: json.NewDecoder(bytes.NewReader(data))}
	d.dec.UseNumber()
	root, err := d.value()
	if err != nil {
		return nil, err
	}
	if _, err := d.dec.Token(); err != io.EOF {
		return nil, d.errorAt(d.dec.InputOffset(), "end of input expected")
	}
	return root, nil
}

type jsonDecoder struct {
	data   []byte
	source string
	dec    *json.Decoder
}

func (d *jsonDecoder) errorAt(offset int64, text string) *ParseError {
	line, col := position(d.data, offset)
	return &ParseError{Source: d.source, Line: line, Column: col, Text: text}
}

func (d *jsonDecoder) wrap(err error) error {
	var syntax *json.SyntaxError
	switch {
	case errors.As(err, &syntax):
		// the offset of a scalar error is relative to the value
		line, col := d.start()
		return &ParseError{Source: d.source, Line: line, Column: col, Text: syntax.Error()}
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return d.errorAt(int64(len(d.data)), "unexpected end of input")
	default:
		return d.errorAt(d.dec.InputOffset(), err.Error())
	}
}

// start returns the position of the next token, skipping
// blanks and separators.
func (d *jsonDecoder) start() (line, col int) {
	off := d.dec.InputOffset()
	for off < int64(len(d.data)) {
		switch d.data[off] {
		case ' ', '\t', '\r', '\n', ',', ':':
			off++
			continue
		}
		break
	}
	return position(d.data, off)
}

func (d *jsonDecoder) value() (*Node, error) {
	line, col := d.start()
	tok, err := d.dec.Token()
	if err != nil {
		return nil, d.wrap(err)
	}
	n := &Node{Line: line, Column: col}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n.Kind = Object
			for d.dec.More() {
				kt, err := d.dec.Token()
				if err != nil {
					return nil, d.wrap(err)
				}
				key, ok := kt.(string)
				if !ok {
					return nil, d.errorAt(d.dec.InputOffset(), "object key expected")
				}
				v, err := d.value()
				if err != nil {
					return nil, err
				}
				n.Members = append(n.Members, Member{Key: key, Value: v})
			}
		case '[':
			n.Kind = Array
			for d.dec.More() {
				v, err := d.value()
				if err != nil {
					return nil, err
				}
				n.Items = append(n.Items, v)
			}
		default:
			return nil, d.errorAt(d.dec.InputOffset(), "unexpected "+t.String())
		}
		// closing delimiter
		if _, err := d.dec.Token(); err != nil {
			return nil, d.wrap(err)
		}
	case string:
		n.Kind = String
		n.Str = t
	case json.Number:
		setNumber(n, string(t))
	case bool:
		n.Kind = Bool
		n.Bool = t
	case nil:
		n.Kind = Null
	}
	return n, nil
}

// setNumber stores s as an Integer when it has no fraction
// or exponent and fits in an int64.
func setNumber(n *Node, s string) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			n.Kind = Integer
			n.Int = i
			n.Num = float64(i)
			return
		}
	}
	n.Kind = Number
	n.Num, _ = strconv.ParseFloat(s, 64)
}
