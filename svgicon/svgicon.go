// Package svgicon parses SVG files into a flat list of shapes,
// each made of cubic bezier sub-paths in user space, with their
// fill and stroke paints resolved.
// The parsed icon is not tied to any renderer: see svgdraw for
// the themed drawing, and svgraster or svgpdf for concrete canvases.
package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/srwiley/rasterx"
	"golang.org/x/net/html/charset"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips un-handled SVG elements
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode records a warning on the Icon for each un-handled element
	WarnErrorMode
	// StrictErrorMode fails the parse on un-handled elements
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return fmt.Sprintf("<unknown ErrorMode %d>", uint8(m))
	}
}

// ParseErrorMode accepts "ignore", "warn" and "strict".
func ParseErrorMode(s string) (ErrorMode, bool) {
	for _, m := range [...]ErrorMode{IgnoreErrorMode, WarnErrorMode, StrictErrorMode} {
		if m.String() == s {
			return m, true
		}
	}
	return IgnoreErrorMode, false
}

var (
	errParamMismatch = errors.New("param mismatch")
	errZeroLengthID  = errors.New("zero length id")
	errNoSVG         = errors.New("invalid svg xml icon")
)

// Point is a position in user space.
type Point struct{ X, Y float64 }

// Bounds defines a bounding box, such as a viewport.
type Bounds struct{ X, Y, W, H float64 }

// SubPath is a sequence of cubic bezier segments: Points[0] is
// the start point, and each following triple holds the two control
// points and the end point of one segment.
type SubPath struct {
	Points []Point
	Closed bool
	Bounds Rect
}

// PaintKind is the type of a native paint.
type PaintKind uint8

const (
	PaintNone PaintKind = iota
	PaintColor
	PaintLinearGradient
	PaintRadialGradient
)

// IsGradient is true for the linear and radial kinds.
func (k PaintKind) IsGradient() bool {
	return k == PaintLinearGradient || k == PaintRadialGradient
}

func (k PaintKind) String() string {
	switch k {
	case PaintNone:
		return "none"
	case PaintColor:
		return "color"
	case PaintLinearGradient:
		return "linear"
	case PaintRadialGradient:
		return "radial"
	default:
		return fmt.Sprintf("<unknown PaintKind %d>", uint8(k))
	}
}

// Paint is the fill or stroke of a shape, as authored.
// Color alpha includes the fill or stroke opacity.
type Paint struct {
	Kind     PaintKind
	Color    color.NRGBA
	Gradient *Gradient // for gradient kinds
}

// LineCap is the authored stroke-linecap.
type LineCap uint8

const (
	ButtCap LineCap = iota
	RoundCap
	SquareCap
)

// LineJoin is the authored stroke-linejoin.
type LineJoin uint8

const (
	MiterJoin LineJoin = iota
	RoundJoin
	BevelJoin
)

// Shape is one drawable element, with its transform
// already applied to the points.
type Shape struct {
	ID      string // id attribute, may be empty
	Visible bool

	Fill, Stroke Paint
	Opacity      float64
	StrokeWidth  float64
	LineCap      LineCap
	LineJoin     LineJoin
	MiterLimit   float64

	Paths  []*SubPath
	Bounds Rect
}

// Icon holds data from parsed SVGs.
type Icon struct {
	Width, Height float64 // in pixels
	ViewBox       Bounds
	Titles        []string // Title elements collect here
	Descriptions  []string // Description elements collect here
	Shapes        []*Shape
	Warnings      []string // unhandled elements, see WarnErrorMode

	grads map[string]*gradientData
	defs  map[string][]definition
}

// NumPaths returns the number of sub-paths of all shapes.
func (icon *Icon) NumPaths() int {
	n := 0
	for _, s := range icon.Shapes {
		n += len(s.Paths)
	}
	return n
}

// NumPoints returns the number of points of all sub-paths.
func (icon *Icon) NumPoints() int {
	n := 0
	for _, s := range icon.Shapes {
		for _, p := range s.Paths {
			n += len(p.Points)
		}
	}
	return n
}

// ReadIconStream reads the Icon from the given io.Reader
// This only supports a sub-set of SVG, but
// is enough to draw many icons. errMode determines if the icon ignores, errors out, or records a warning
// if it does not handle an element found in the icon file.
func ReadIconStream(stream io.Reader, errMode ErrorMode) (*Icon, error) {
	icon := &Icon{defs: make(map[string][]definition), grads: make(map[string]*gradientData)}
	cursor := &iconCursor{styleStack: []pathStyle{defaultStyle}, icon: icon, errorMode: errMode, aspect: defaultAspect}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, errNoSVG
				}
				break
			}
			return nil, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			// Reads all recognized style attributes from the start element
			// and places it on top of the styleStack
			if err = cursor.pushStyle(se.Attr); err != nil {
				return nil, err
			}
			if err = cursor.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			// pop style
			cursor.popStyle()
			if cursor.inDefs && !cursor.inGrad && se.Name.Local != "defs" &&
				se.Name.Local != "linearGradient" && se.Name.Local != "radialGradient" {
				cursor.defDepth--
			}
			switch se.Name.Local {
			case "g":
				if cursor.inDefs {
					cursor.currentDef = append(cursor.currentDef, definition{Tag: "endg"})
				}
			case "title":
				cursor.inTitleText = false
			case "desc":
				cursor.inDescText = false
			case "defs":
				if len(cursor.currentDef) > 0 {
					cursor.icon.defs[cursor.currentDef[0].ID] = cursor.currentDef
					cursor.currentDef = nil
				}
				cursor.inDefs = false
			case "radialGradient", "linearGradient":
				cursor.inGrad = false
			}
		case xml.CharData:
			if cursor.inTitleText {
				icon.Titles[len(icon.Titles)-1] += string(se)
			}
			if cursor.inDescText {
				icon.Descriptions[len(icon.Descriptions)-1] += string(se)
			}
		}
	}
	icon.resolvePaints(cursor.pending)
	icon.scaleToViewBox(cursor.aspect)
	return icon, nil
}

// ReadIcon reads the Icon from the named file.
// See ReadIconStream for the supported features.
func ReadIcon(iconFile string, errMode ErrorMode) (*Icon, error) {
	fin, err := os.Open(iconFile)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	icon, err := ReadIconStream(fin, errMode)
	if err != nil {
		return nil, fmt.Errorf("svgicon: reading %s: %w", iconFile, err)
	}
	return icon, nil
}

// scaleToViewBox maps the view box onto the Width x Height
// viewport, and fills in missing dimensions.
func (icon *Icon) scaleToViewBox(aspect aspectRatio) {
	vb := icon.ViewBox
	if vb.W == 0 || vb.H == 0 {
		// no usable view box: use the drawing extent
		var all Rect
		for _, s := range icon.Shapes {
			all = all.Union(s.Bounds)
		}
		if !all.IsEmpty() {
			vb = Bounds{X: all.Min.X, Y: all.Min.Y, W: all.Max.X - all.Min.X, H: all.Max.Y - all.Min.Y}
		}
		if icon.Width == 0 {
			icon.Width = vb.X + vb.W
		}
		if icon.Height == 0 {
			icon.Height = vb.Y + vb.H
		}
		return
	}
	if icon.Width == 0 {
		icon.Width = vb.W
	}
	if icon.Height == 0 {
		icon.Height = vb.H
	}

	sx, sy := icon.Width/vb.W, icon.Height/vb.H
	tx, ty := -vb.X, -vb.Y
	m := rasterx.Identity
	if aspect.none {
		m = m.Scale(sx, sy).Translate(tx, ty)
	} else {
		s := sx
		if sy < s {
			s = sy
		}
		ox := aspect.alignX * (icon.Width - vb.W*s)
		oy := aspect.alignY * (icon.Height - vb.H*s)
		m = m.Translate(ox, oy).Scale(s, s).Translate(tx, ty)
	}
	if m == rasterx.Identity {
		return
	}
	scale := averageScale(m)
	for _, s := range icon.Shapes {
		s.transform(m)
		s.StrokeWidth *= scale
	}
}

// transform applies m to the points, bounds and gradients of s.
func (s *Shape) transform(m rasterx.Matrix2D) {
	s.Bounds = Rect{}
	for _, p := range s.Paths {
		for i, pt := range p.Points {
			p.Points[i].X, p.Points[i].Y = m.Transform(pt.X, pt.Y)
		}
		p.Bounds = p.computeBounds()
		s.Bounds = s.Bounds.Union(p.Bounds)
	}
	inv := m.Invert()
	for _, paint := range []*Paint{&s.Fill, &s.Stroke} {
		if paint.Kind.IsGradient() && paint.Gradient != nil {
			g := *paint.Gradient
			g.Xform = g.Xform.Mult(inv)
			paint.Gradient = &g
		}
	}
}
