package svgicon

import (
	"encoding/xml"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
)

type (
	// paintRef is a fill or stroke as authored: a color,
	// none, or a reference to a gradient
	paintRef struct {
		color  optionnalColor
		gradID string
	}

	// pathStyle holds the state of the SVG style
	pathStyle struct {
		fill, stroke                        paintRef
		fillOpacity, strokeOpacity, opacity float64
		strokeWidth                         float64
		lineCap                             LineCap
		lineJoin                            LineJoin
		miterLimit                          float64
		visible                             bool

		transform rasterx.Matrix2D // current transform
	}

	// iconCursor is used while parsing SVG files
	iconCursor struct {
		pathCursor
		icon                                    *Icon
		styleStack                              []pathStyle
		grad                                    *gradientData
		inTitleText, inDescText, inGrad, inDefs bool
		currentDef                              []definition
		defDepth                                int // nesting inside the current definition
		errorMode                               ErrorMode
		pending                                 []pendingPaint
		aspect                                  aspectRatio
	}

	// definition is used to store what's given in a def tag
	definition struct {
		ID, Tag string
		Attrs   []xml.Attr
	}

	// aspectRatio is the preserveAspectRatio attribute of the root element
	aspectRatio struct {
		none           bool
		alignX, alignY float64 // 0, 0.5 or 1
	}
)

// defaultStyle fills with black, without stroke,
// full opacity, butt line ends and miter joins.
var defaultStyle = pathStyle{
	fill:          paintRef{color: optionnalColor{set: true, color: black}},
	fillOpacity:   1,
	strokeOpacity: 1,
	opacity:       1,
	strokeWidth:   1,
	lineCap:       ButtCap,
	lineJoin:      MiterJoin,
	miterLimit:    4,
	visible:       true,
	transform:     rasterx.Identity,
}

var defaultAspect = aspectRatio{alignX: 0.5, alignY: 0.5}

func (c *iconCursor) readTransformAttr(m1 rasterx.Matrix2D, k string) (rasterx.Matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.Scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(rasterx.Matrix2D{
				A: c.points[0],
				B: c.points[1],
				C: c.points[2],
				D: c.points[3],
				E: c.points[4],
				F: c.points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// parseTransformFrom post multiplies m1 by the transform list v.
func (c *iconCursor) parseTransformFrom(m1 rasterx.Matrix2D, v string) (rasterx.Matrix2D, error) {
	ts := strings.Split(v, ")")
	for _, t := range ts {
		t = strings.TrimSpace(t)
		t = strings.TrimLeft(t, ", ")
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		err := c.getPoints(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

func (c *iconCursor) parseTransform(v string) (rasterx.Matrix2D, error) {
	return c.parseTransformFrom(c.styleStack[len(c.styleStack)-1].transform, v)
}

func readPaint(v string) (paintRef, error) {
	if v == "currentColor" {
		// the color property is not supported
		return paintRef{color: optionnalColor{set: true, color: black}}, nil
	}
	if id, ok := readGradURL(v); ok {
		return paintRef{gradID: id}, nil
	}
	col, err := parseSVGColor(v)
	return paintRef{color: col}, err
}

func (c *iconCursor) readStyleAttr(curStyle *pathStyle, k, v string) error {
	if v == "inherit" {
		return nil
	}
	switch k {
	case "fill":
		p, err := readPaint(v)
		if err != nil {
			return err
		}
		curStyle.fill = p
	case "stroke":
		p, err := readPaint(v)
		if err != nil {
			return err
		}
		curStyle.stroke = p
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.lineCap = ButtCap
		case "round":
			curStyle.lineCap = RoundCap
		case "square":
			curStyle.lineCap = SquareCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter", "miter-clip", "arcs":
			curStyle.lineJoin = MiterJoin
		case "round":
			curStyle.lineJoin = RoundJoin
		case "bevel":
			curStyle.lineJoin = BevelJoin
		}
	case "stroke-miterlimit":
		mLimit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		curStyle.miterLimit = mLimit
	case "stroke-width":
		width, err := c.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		curStyle.strokeWidth = width
	case "opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		curStyle.opacity *= op
	case "fill-opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		curStyle.fillOpacity = op
	case "stroke-opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		curStyle.strokeOpacity = op
	case "display":
		curStyle.visible = curStyle.visible && v != "none"
	case "visibility":
		switch v {
		case "hidden", "collapse":
			curStyle.visible = false
		case "visible":
			curStyle.visible = true
		}
	case "transform":
		m, err := c.parseTransform(v)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	return nil
}

// pushStyle parses the style element, and push it on the style stack.
// Note that this parses both the contents of a style attribute plus
// direct presentation attributes.
func (c *iconCursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	// Make a copy of the top style
	curStyle := c.styleStack[len(c.styleStack)-1]
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if err := c.readStyleAttr(&curStyle, k, v); err != nil {
			return err
		}
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return nil
}

func (c *iconCursor) popStyle() {
	c.styleStack = c.styleStack[:len(c.styleStack)-1]
}

// handleError applies the error mode to an unsupported element.
func (c *iconCursor) handleError(msg string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return errors.New(msg)
	case WarnErrorMode:
		c.icon.Warnings = append(c.icon.Warnings, msg)
	}
	return nil
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

func (c *iconCursor) readStartElement(se xml.StartElement) (err error) {
	var skipDef bool
	if se.Name.Local == "radialGradient" || se.Name.Local == "linearGradient" || c.inGrad {
		skipDef = true
	}
	if c.inDefs && !skipDef {
		ID := attrValue(se.Attr, "id")
		// only top level elements start a new definition
		if c.defDepth == 0 && len(c.currentDef) > 0 {
			c.icon.defs[c.currentDef[0].ID] = c.currentDef
			c.currentDef = make([]definition, 0)
		}
		c.defDepth++
		c.currentDef = append(c.currentDef, definition{
			ID:    ID,
			Tag:   se.Name.Local,
			Attrs: se.Attr,
		})
		return nil
	}
	return c.draw(se.Name.Local, se.Attr)
}

// draw runs the element function of tag, and stores the
// parsed sub-paths, if any, as a new shape.
func (c *iconCursor) draw(tag string, attrs []xml.Attr) error {
	df, ok := drawFuncs[tag]
	if !ok {
		return c.handleError("Cannot process svg element " + tag)
	}
	if err := df(c, attrs); err != nil {
		return err
	}
	c.pathBuilder.stop(false)
	if len(c.paths) == 0 {
		return nil
	}
	st := c.styleStack[len(c.styleStack)-1]
	shape := &Shape{
		ID:          attrValue(attrs, "id"),
		Visible:     st.visible,
		Opacity:     st.opacity,
		StrokeWidth: st.strokeWidth * averageScale(st.transform),
		LineCap:     st.lineCap,
		LineJoin:    st.lineJoin,
		MiterLimit:  st.miterLimit,
		Paths:       c.paths,
	}
	c.paths = nil

	var local Rect
	for _, p := range shape.Paths {
		local = local.Union(p.computeBounds())
	}
	shape.transform(st.transform)

	shape.Fill = c.paintOf(shape, st.fill, false, st.fillOpacity, local, st.transform)
	shape.Stroke = c.paintOf(shape, st.stroke, true, st.strokeOpacity, local, st.transform)
	c.icon.Shapes = append(c.icon.Shapes, shape)
	return nil
}

// paintOf resolves a color paint, and defers gradient references.
func (c *iconCursor) paintOf(shape *Shape, ref paintRef, stroke bool, opacity float64, local Rect, m rasterx.Matrix2D) Paint {
	if ref.gradID != "" {
		c.pending = append(c.pending, pendingPaint{
			shape: shape, stroke: stroke, id: ref.gradID,
			opacity: opacity, local: local, transform: m,
		})
		return Paint{Kind: PaintNone}
	}
	if !ref.color.set {
		return Paint{Kind: PaintNone}
	}
	return Paint{Kind: PaintColor, Color: withOpacity(ref.color.color, opacity)}
}

// readAspectRatio parses a preserveAspectRatio value.
// The slice mode is treated as meet.
func readAspectRatio(v string) aspectRatio {
	out := defaultAspect
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return out
	}
	align := fields[0]
	if align == "none" {
		out.none = true
		return out
	}
	if len(align) != 8 {
		return out
	}
	pos := func(s string) float64 {
		switch s {
		case "Min":
			return 0
		case "Max":
			return 1
		}
		return 0.5
	}
	out.alignX = pos(align[1:4])
	out.alignY = pos(align[5:8])
	return out
}
