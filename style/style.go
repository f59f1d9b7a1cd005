// Package style defines the paint and stroke attributes
// applied to a shape, and how theme rules override them.
package style

import "fmt"

// LineCap is the shape of open stroke ends. Bevel and Miter
// are accepted for themes and behave as Butt on most backends.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
	CapBevel
	CapMiter
)

var lineCapNames = [...]string{
	CapButt:   "butt",
	CapRound:  "round",
	CapSquare: "square",
	CapBevel:  "bevel",
	CapMiter:  "miter",
}

func (c LineCap) String() string {
	if int(c) < len(lineCapNames) {
		return lineCapNames[c]
	}
	return fmt.Sprintf("<unknown LineCap %d>", uint8(c))
}

// ParseLineCap accepts the lower case names returned by String.
func ParseLineCap(s string) (LineCap, bool) {
	for i, name := range lineCapNames {
		if name == s {
			return LineCap(i), true
		}
	}
	return 0, false
}

// LineJoin is passed through to the drawing backend.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return fmt.Sprintf("join(%d)", int(j))
	}
}

// ParseLineJoin accepts miter, round and bevel.
func ParseLineJoin(s string) (LineJoin, bool) {
	switch s {
	case "miter":
		return JoinMiter, true
	case "round":
		return JoinRound, true
	case "bevel":
		return JoinBevel, true
	}
	return 0, false
}

// presence bits for the scalar attributes
const (
	hasOpacity uint8 = 1 << iota
	hasStrokeWidth
	hasLineCap
	hasLineJoin
)

// Style is a set of independently optional attributes.
// The zero value sets nothing. Styles are values: the With
// methods return a modified copy.
type Style struct {
	fill, stroke Paint

	set         uint8
	opacity     float64
	strokeWidth float64
	lineCap     LineCap
	lineJoin    LineJoin
}

func (s Style) WithFill(p Paint) Style   { s.fill = p; return s }
func (s Style) WithStroke(p Paint) Style { s.stroke = p; return s }

func (s Style) WithOpacity(alpha float64) Style {
	s.opacity = alpha
	s.set |= hasOpacity
	return s
}

func (s Style) WithStrokeWidth(w float64) Style {
	s.strokeWidth = w
	s.set |= hasStrokeWidth
	return s
}

func (s Style) WithLineCap(c LineCap) Style {
	s.lineCap = c
	s.set |= hasLineCap
	return s
}

func (s Style) WithLineJoin(j LineJoin) Style {
	s.lineJoin = j
	s.set |= hasLineJoin
	return s
}

func (s Style) HasFill() bool        { return s.fill.IsSet() }
func (s Style) HasStroke() bool      { return s.stroke.IsSet() }
func (s Style) HasOpacity() bool     { return s.set&hasOpacity != 0 }
func (s Style) HasStrokeWidth() bool { return s.set&hasStrokeWidth != 0 }
func (s Style) HasLineCap() bool     { return s.set&hasLineCap != 0 }
func (s Style) HasLineJoin() bool    { return s.set&hasLineJoin != 0 }

func (s Style) Fill() Paint   { return s.fill }
func (s Style) Stroke() Paint { return s.stroke }

// Opacity defaults to 1.
func (s Style) Opacity() float64 {
	if !s.HasOpacity() {
		return 1
	}
	return s.opacity
}

// StrokeWidth defaults to 1.
func (s Style) StrokeWidth() float64 {
	if !s.HasStrokeWidth() {
		return 1
	}
	return s.strokeWidth
}

// LineCap defaults to CapButt.
func (s Style) LineCap() LineCap {
	if !s.HasLineCap() {
		return CapButt
	}
	return s.lineCap
}

// LineJoin defaults to JoinMiter.
func (s Style) LineJoin() LineJoin {
	if !s.HasLineJoin() {
		return JoinMiter
	}
	return s.lineJoin
}

// Combine returns base where every attribute set in overlay
// replaces the one of base. Attributes not set in overlay are kept.
func Combine(base, overlay Style) Style {
	out := base
	if overlay.HasFill() {
		out.fill = overlay.fill
	}
	if overlay.HasStroke() {
		out.stroke = overlay.stroke
	}
	if overlay.HasOpacity() {
		out = out.WithOpacity(overlay.opacity)
	}
	if overlay.HasStrokeWidth() {
		out = out.WithStrokeWidth(overlay.strokeWidth)
	}
	if overlay.HasLineCap() {
		out = out.WithLineCap(overlay.lineCap)
	}
	if overlay.HasLineJoin() {
		out = out.WithLineJoin(overlay.lineJoin)
	}
	return out
}

// Combine is a shortcut for Combine(s, overlay).
func (s Style) Combine(overlay Style) Style { return Combine(s, overlay) }

func (s Style) String() string {
	out := fmt.Sprintf("fill=%s stroke=%s", s.fill, s.stroke)
	if s.HasOpacity() {
		out += fmt.Sprintf(" opacity=%g", s.opacity)
	}
	if s.HasStrokeWidth() {
		out += fmt.Sprintf(" width=%g", s.strokeWidth)
	}
	if s.HasLineCap() {
		out += " cap=" + s.lineCap.String()
	}
	if s.HasLineJoin() {
		out += " join=" + s.lineJoin.String()
	}
	return out
}
