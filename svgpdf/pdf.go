// Implements a PDF backend to render themed SVG images,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"image/color"

	"github.com/jung-kurt/gofpdf"

	"github.com/benoitkugler/svgtheme/style"
	"github.com/benoitkugler/svgtheme/svgdraw"
	"github.com/benoitkugler/svgtheme/svgicon"
)

var _ svgdraw.Canvas = (*Canvas)(nil) // assert interface conformance

// paint is a solid color, or a gradient when grad is not nil
type paint struct {
	color color.NRGBA
	grad  *svgdraw.Paint
}

type state struct {
	alpha        float64
	fill, stroke paint
	width        float64
	cap          style.LineCap
	join         style.LineJoin
}

var defaultState = state{
	alpha:  1,
	fill:   paint{color: color.NRGBA{A: 0xff}},
	stroke: paint{color: color.NRGBA{A: 0xff}},
	width:  1,
}

// Canvas writes to the current page of a pdf document.
// The pdf state (colors, alpha, line style) is set
// before each painting operation.
type Canvas struct {
	svgdraw.PathRecorder

	pdf   *gofpdf.Fpdf
	scale float64

	state state
	stack []state
}

// NewCanvas returns a canvas which will
// write to the given `pdf`, in its user units.
func NewCanvas(pdf *gofpdf.Fpdf) *Canvas {
	return &Canvas{pdf: pdf, scale: 1, state: defaultState}
}

// SetScale sets the factor applied to every later coordinate and width.
func (c *Canvas) SetScale(s float64) { c.scale = s }

func (c *Canvas) Save() { c.stack = append(c.stack, c.state) }

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) GlobalAlpha(alpha float64) { c.state.alpha = alpha }

func (c *Canvas) FillColor(col color.NRGBA)   { c.state.fill = paint{color: col} }
func (c *Canvas) FillPaint(p svgdraw.Paint)   { c.state.fill = paint{grad: &p} }
func (c *Canvas) StrokeColor(col color.NRGBA) { c.state.stroke = paint{color: col} }
func (c *Canvas) StrokePaint(p svgdraw.Paint) { c.state.stroke = paint{grad: &p} }
func (c *Canvas) StrokeWidth(w float64)       { c.state.width = w }
func (c *Canvas) LineCap(lc style.LineCap)    { c.state.cap = lc }
func (c *Canvas) LineJoin(j style.LineJoin)   { c.state.join = j }

func (c *Canvas) pt(p svgicon.Point) (float64, float64) { return p.X * c.scale, p.Y * c.scale }

// writePath sends the points to the pdf path
func (c *Canvas) writePath(pts []svgicon.Point, closed bool) {
	if len(pts) == 0 {
		return
	}
	c.pdf.MoveTo(c.pt(pts[0]))
	for i := 1; i+2 < len(pts); i += 3 {
		cx0, cy0 := c.pt(pts[i])
		cx1, cy1 := c.pt(pts[i+1])
		x, y := c.pt(pts[i+2])
		c.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
	}
	if closed {
		c.pdf.ClosePath()
	}
}

// Fill fills the current path with the non-zero rule,
// after orienting its sub-paths from their winding.
// Gradients are painted in each solid sub-path, holes excepted.
func (c *Canvas) Fill() {
	if len(c.Paths) == 0 {
		return
	}
	if g := c.state.fill.grad; g != nil {
		c.fillGradient(*g)
		return
	}
	col := c.state.fill.color
	c.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
	c.setAlpha(alphaOf(col))
	for _, sp := range c.Paths {
		c.writePath(sp.Oriented(), true)
	}
	c.pdf.DrawPath("f")
}

var (
	capNames = [...]string{
		style.CapButt:   "butt",
		style.CapRound:  "round",
		style.CapSquare: "square",
		style.CapBevel:  "butt",
		style.CapMiter:  "butt",
	}

	joinNames = [...]string{
		style.JoinMiter: "miter",
		style.JoinRound: "round",
		style.JoinBevel: "bevel",
	}
)

// Stroke strokes the current path. Gradients are
// replaced by their inner color.
func (c *Canvas) Stroke() {
	if len(c.Paths) == 0 {
		return
	}
	col := c.state.stroke.color
	if g := c.state.stroke.grad; g != nil {
		col = g.Inner
	}
	capName, joinName := "butt", "miter"
	if int(c.state.cap) < len(capNames) {
		capName = capNames[c.state.cap]
	}
	if c.state.join >= 0 && int(c.state.join) < len(joinNames) {
		joinName = joinNames[c.state.join]
	}
	c.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
	c.setAlpha(alphaOf(col))
	c.pdf.SetLineWidth(c.state.width * c.scale)
	c.pdf.SetLineCapStyle(capName)
	c.pdf.SetLineJoinStyle(joinName)
	for _, sp := range c.Paths {
		c.writePath(sp.Points, sp.Closed)
	}
	c.pdf.DrawPath("D")
}

func alphaOf(col color.NRGBA) float64 { return float64(col.A) / 0xff }

// setAlpha applies the global alpha times a, which gofpdf wants in [0,1]
func (c *Canvas) setAlpha(a float64) {
	a *= c.state.alpha
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.pdf.SetAlpha(a, "Normal")
}

// number of segments used to flatten a cubic bezier
const flatSteps = 8

// flatten returns the polygon through the cubic segments of pts.
func (c *Canvas) flatten(pts []svgicon.Point) []gofpdf.PointType {
	if len(pts) == 0 {
		return nil
	}
	x, y := c.pt(pts[0])
	out := []gofpdf.PointType{{X: x, Y: y}}
	for i := 1; i+2 < len(pts); i += 3 {
		p0, p1, p2, p3 := pts[i-1], pts[i], pts[i+1], pts[i+2]
		for s := 1; s <= flatSteps; s++ {
			t := float64(s) / flatSteps
			mt := 1 - t
			a, b, cc, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
			x, y := c.pt(svgicon.Point{
				X: a*p0.X + b*p1.X + cc*p2.X + d*p3.X,
				Y: a*p0.Y + b*p1.Y + cc*p2.Y + d*p3.Y,
			})
			out = append(out, gofpdf.PointType{X: x, Y: y})
		}
	}
	return out
}

func (c *Canvas) fillGradient(g svgdraw.Paint) {
	box := c.Bounds()
	if box.IsEmpty() {
		return
	}
	x, y := box.Min.X*c.scale, box.Min.Y*c.scale
	w, h := box.W()*c.scale, box.H()*c.scale
	if w == 0 || h == 0 || (!g.Radial && g.Start == g.End) || (g.Radial && g.OuterRadius <= 0) {
		// nothing to blend
		c.state.fill = paint{color: g.Outer}
		c.Fill()
		c.state.fill = paint{grad: &g}
		return
	}

	c.setAlpha(alphaOf(g.Inner))
	for _, sp := range c.Paths {
		if sp.Winding == svgdraw.Hole {
			continue
		}
		c.pdf.ClipPolygon(c.flatten(sp.Points), false)
		if g.Radial {
			// a square area keeps the normalized radius isotropic
			r := g.OuterRadius * c.scale
			cx, cy := c.pt(g.Start)
			c.pdf.RadialGradient(cx-r, cy-r, 2*r, 2*r,
				int(g.Inner.R), int(g.Inner.G), int(g.Inner.B),
				int(g.Outer.R), int(g.Outer.G), int(g.Outer.B),
				0.5, 0.5, 0.5, 0.5, 0.5)
		} else {
			// normalized coordinates have their origin at the bottom left
			sx, sy := c.pt(g.Start)
			ex, ey := c.pt(g.End)
			c.pdf.LinearGradient(x, y, w, h,
				int(g.Inner.R), int(g.Inner.G), int(g.Inner.B),
				int(g.Outer.R), int(g.Outer.G), int(g.Outer.B),
				(sx-x)/w, 1-(sy-y)/h, (ex-x)/w, 1-(ey-y)/h)
		}
		c.pdf.ClipEnd()
	}
}
