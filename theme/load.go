package theme

import (
	"errors"
	"os"

	"github.com/benoitkugler/svgtheme/document"
	"github.com/benoitkugler/svgtheme/intern"
	"github.com/benoitkugler/svgtheme/logging"
)

// Load reads and parses the theme file at path. YAML files
// (.yaml, .yml) are accepted as well as JSON.
func Load(path string, in *intern.Interner, sink logging.Sink) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		sink.Report(logging.Critical, logging.CannotOpenFile, path)
		return nil, &Error{Severity: logging.Critical, Code: logging.CannotOpenFile, Message: path}
	}
	return Decode(data, document.FormatOf(path), path, in, sink)
}

// Decode parses an in-memory theme document. source is
// used in error messages.
func Decode(data []byte, format document.Format, source string, in *intern.Interner, sink logging.Sink) (*Theme, error) {
	root, err := document.Decode(data, format, source)
	if err != nil {
		p := NewParser(in, sink)
		var pe *document.ParseError
		if errors.As(err, &pe) {
			return nil, p.fail(logging.DocumentParseFailed, "Parse error - %s %d:%d %s", pe.Source, pe.Line, pe.Column, pe.Text)
		}
		return nil, p.fail(logging.DocumentParseFailed, "Parse error - %s", err)
	}
	return NewParser(in, sink).Parse(root)
}
