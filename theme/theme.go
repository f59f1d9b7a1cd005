// Package theme implements the theme documents: a named set
// of style rules, keyed either by element id or by class.
//
// A theme document looks like
//
//	{
//	  "name": "Dark",
//	  "styles": {
//	    "knob": { "fill": "#202020", "stroke": { "width": 1.5, "color": "#808080" } },
//	    ".knob-pointer": { "fill": { "gradient": [ { "index": 0, "color": "#fff" } ] } }
//	  }
//	}
//
// Rules whose name starts with a dot match element ids, the
// others match classes.
package theme

import (
	"fmt"

	"github.com/benoitkugler/svgtheme/intern"
	"github.com/benoitkugler/svgtheme/logging"
	"github.com/benoitkugler/svgtheme/style"
)

// Theme is immutable once parsed, and is shared by pointer.
type Theme struct {
	name    string
	ids     map[intern.Key]*style.Style
	classes map[intern.Key]*style.Style
}

// New returns an empty theme, matching nothing.
func New(name string) *Theme {
	return &Theme{
		name:    name,
		ids:     make(map[intern.Key]*style.Style),
		classes: make(map[intern.Key]*style.Style),
	}
}

func (t *Theme) Name() string { return t.name }

// IDStyle returns the rule for the element id k, or nil.
func (t *Theme) IDStyle(k intern.Key) *style.Style {
	if t == nil {
		return nil
	}
	return t.ids[k]
}

// ClassStyle returns the rule for the class k, or nil.
func (t *Theme) ClassStyle(k intern.Key) *style.Style {
	if t == nil {
		return nil
	}
	return t.classes[k]
}

// Len returns the number of rules.
func (t *Theme) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids) + len(t.classes)
}

// IDs and Classes return the number of rules of each kind.
func (t *Theme) IDs() int     { return len(t.ids) }
func (t *Theme) Classes() int { return len(t.classes) }

// Error is a failure of the theme loader. It is also
// reported on the sink passed to the parser.
type Error struct {
	Severity logging.Severity
	Code     logging.Code
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("theme: %s (%s): %s", e.Code, e.Severity, e.Message)
}
