package style

import (
	"fmt"
	"image/color"
)

// Black is returned by Paint.Color when the paint is not a solid color.
var Black = color.NRGBA{A: 0xff}

// Magenta flags paints which could not be converted.
var Magenta = color.NRGBA{R: 0xff, B: 0xff, A: 0xff}

// PaintKind is the discriminant of a Paint.
type PaintKind uint8

const (
	Unset PaintKind = iota // not specified, inherit
	None                   // explicitly disabled
	Color
	Gradient
)

func (k PaintKind) String() string {
	switch k {
	case Unset:
		return "unset"
	case None:
		return "none"
	case Color:
		return "color"
	case Gradient:
		return "gradient"
	default:
		return fmt.Sprintf("<unknown PaintKind %d>", uint8(k))
	}
}

// Stop is one anchor of a two stops gradient.
// Index is -1 for an absent stop.
type Stop struct {
	Index  int
	Offset float64
	Color  color.NRGBA
}

// GradientStops holds at most two stops, stored
// by index. NStops is the number of populated slots.
type GradientStops struct {
	Stops  [2]Stop
	NStops int
}

// NewGradientStops returns an empty gradient, with both
// stops absent.
func NewGradientStops() GradientStops {
	return GradientStops{Stops: [2]Stop{{Index: -1}, {Index: -1}}}
}

// SetStop stores s at s.Index, which must be 0 or 1,
// and updates NStops.
func (g *GradientStops) SetStop(s Stop) {
	if s.Index != 0 && s.Index != 1 {
		return
	}
	g.Stops[s.Index] = s
	g.NStops = 0
	for _, st := range g.Stops {
		if st.Index >= 0 {
			g.NStops++
		}
	}
}

// Inner returns the first populated stop. A gradient
// holding only stop 1 uses it at both ends.
func (g GradientStops) Inner() Stop {
	if g.Stops[0].Index < 0 && g.Stops[1].Index >= 0 {
		return g.Stops[1]
	}
	return g.Stops[0]
}

// Outer returns the last populated stop.
func (g GradientStops) Outer() Stop {
	if g.Stops[1].Index < 0 {
		return g.Stops[0]
	}
	return g.Stops[1]
}

// Paint is a tagged fill or stroke value.
type Paint struct {
	kind     PaintKind
	color    color.NRGBA
	gradient GradientStops
}

// UnsetPaint returns a paint which does not override anything.
func UnsetPaint() Paint { return Paint{} }

// NonePaint returns a paint disabling the fill or the stroke.
func NonePaint() Paint { return Paint{kind: None} }

// SolidPaint returns a plain color paint.
func SolidPaint(c color.NRGBA) Paint { return Paint{kind: Color, color: c} }

// GradientPaint returns a gradient paint.
func GradientPaint(g GradientStops) Paint { return Paint{kind: Gradient, gradient: g} }

func (p Paint) Kind() PaintKind  { return p.kind }
func (p Paint) IsSet() bool      { return p.kind != Unset }
func (p Paint) IsNone() bool     { return p.kind == None }
func (p Paint) IsColor() bool    { return p.kind == Color }
func (p Paint) IsGradient() bool { return p.kind == Gradient }

// Color returns the solid color, or black
// if the paint is not a color.
func (p Paint) Color() color.NRGBA {
	if p.kind != Color {
		return Black
	}
	return p.color
}

// Gradient returns the stops, if the paint is a gradient.
func (p Paint) Gradient() (GradientStops, bool) {
	if p.kind != Gradient {
		return GradientStops{}, false
	}
	return p.gradient, true
}

func (p Paint) String() string {
	switch p.kind {
	case Color:
		return FormatHex(p.color)
	case Gradient:
		g := p.gradient
		return fmt.Sprintf("gradient(%d: %s -> %s)", g.NStops, FormatHex(g.Inner().Color), FormatHex(g.Outer().Color))
	default:
		return p.kind.String()
	}
}
