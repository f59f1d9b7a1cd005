// Package svgdraw draws parsed SVG icons with a theme applied
// on top of their authored styles.
//
// The actual drawing is delegated to a Canvas, with a
// path-then-paint model: see svgraster for a rasterizer
// producing .png images and svgpdf for a pdf writer.
package svgdraw

import (
	"fmt"
	"image/color"

	"github.com/benoitkugler/svgtheme/style"
	"github.com/benoitkugler/svgtheme/svgicon"
)

// Winding tells how a sub-path contributes to the fill of its shape.
type Winding uint8

const (
	Solid Winding = iota // counter clockwise
	Hole                 // clockwise
)

func (w Winding) String() string {
	switch w {
	case Solid:
		return "solid"
	case Hole:
		return "hole"
	default:
		return fmt.Sprintf("<unknown Winding %d>", uint8(w))
	}
}

// Paint is a two colors gradient, in user space.
// A linear gradient goes from Start to End. A radial
// gradient is centered on Start, and goes from InnerRadius
// to OuterRadius.
type Paint struct {
	Radial bool

	Start, End               svgicon.Point
	InnerRadius, OuterRadius float64

	Inner, Outer color.NRGBA
}

// Canvas is a drawing backend.
// A path is built with BeginPath, MoveTo, BezierTo and ClosePath,
// then painted by Fill and Stroke with the current state.
// Save and Restore push and pop the state: alpha, paints
// and stroke attributes.
type Canvas interface {
	Save()
	Restore()

	// GlobalAlpha sets the opacity applied to the later paints.
	GlobalAlpha(alpha float64)

	BeginPath()
	MoveTo(x, y float64)
	BezierTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
	// PathWinding sets the winding of the last sub-path.
	PathWinding(w Winding)

	FillColor(c color.NRGBA)
	FillPaint(p Paint)
	Fill()

	StrokeColor(c color.NRGBA)
	StrokePaint(p Paint)
	StrokeWidth(w float64)
	LineCap(c style.LineCap)
	LineJoin(j style.LineJoin)
	Stroke()
}
