// Package document provides a small typed tree (object, array,
// string, number, integer) decoded from JSON or YAML sources.
// Object members keep their source order.
package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is the type of a Node.
type Kind uint8

const (
	Null Kind = iota
	Object
	Array
	String
	Number // any number, see also Integer
	Integer
	Bool
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Object:
		return "object"
	case Array:
		return "array"
	case String:
		return "string"
	case Number:
		return "number"
	case Integer:
		return "integer"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("<unknown Kind %d>", uint8(k))
	}
}

// Member is a key/value pair of an object.
type Member struct {
	Key   string
	Value *Node
}

// Node is a decoded value. Line and Column are 1-based
// and point to the start of the value in the source.
type Node struct {
	Kind Kind

	Str  string
	Num  float64 // set for Number and Integer
	Int  int64   // set for Integer
	Bool bool

	Members []Member // for Object
	Items   []*Node  // for Array

	Line, Column int
}

func (n *Node) IsObject() bool  { return n != nil && n.Kind == Object }
func (n *Node) IsArray() bool   { return n != nil && n.Kind == Array }
func (n *Node) IsString() bool  { return n != nil && n.Kind == String }
func (n *Node) IsInteger() bool { return n != nil && n.Kind == Integer }

// IsNumber is true for integers as well.
func (n *Node) IsNumber() bool { return n != nil && (n.Kind == Number || n.Kind == Integer) }

// Get returns the value of key, or nil if n is not an
// object or has no such member. With duplicated keys,
// the last one wins.
func (n *Node) Get(key string) *Node {
	if !n.IsObject() {
		return nil
	}
	var out *Node
	for _, m := range n.Members {
		if m.Key == key {
			out = m.Value
		}
	}
	return out
}

// ParseError reports a syntax error in a source document.
type ParseError struct {
	Source       string
	Line, Column int
	Text         string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Text)
}

// Format of a source document.
type Format uint8

const (
	JSON Format = iota
	YAML
)

// FormatOf guesses the format from a file name: .yaml and .yml
// are YAML, everything else is JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Decode parses data using the given format. source is
// only used in error messages.
func Decode(data []byte, format Format, source string) (*Node, error) {
	if format == YAML {
		return DecodeYAML(data, source)
	}
	return DecodeJSON(data, source)
}

// position converts a byte offset to a 1-based line and column.
func position(data []byte, offset int64) (line, column int) {
	line, column = 1, 1
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	for _, c := range data[:offset] {
		if c == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
