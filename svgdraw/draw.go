package svgdraw

import (
	"math"

	"github.com/benoitkugler/svgtheme/style"
	"github.com/benoitkugler/svgtheme/svgicon"
	"github.com/benoitkugler/svgtheme/theme"
	"github.com/benoitkugler/svgtheme/themecache"
)

// outer radius of the radial gradients passed to the canvas
const radialOuterRadius = 160

// nativePaint converts an authored paint to a style paint.
// Gradients keep their first and last stops only.
func nativePaint(p svgicon.Paint) style.Paint {
	switch p.Kind {
	case svgicon.PaintNone:
		return style.NonePaint()
	case svgicon.PaintColor:
		return style.SolidPaint(p.Color)
	case svgicon.PaintLinearGradient, svgicon.PaintRadialGradient:
		g := style.NewGradientStops()
		if p.Gradient == nil || len(p.Gradient.Stops) == 0 {
			return style.GradientPaint(g)
		}
		stops := p.Gradient.Stops
		n := min(len(stops), 2)
		first, last := stops[0], stops[len(stops)-1]
		g.SetStop(style.Stop{Index: 0, Offset: first.Offset, Color: first.Color})
		g.SetStop(style.Stop{Index: n - 1, Offset: last.Offset, Color: last.Color})
		return style.GradientPaint(g)
	}
	return style.SolidPaint(style.Magenta)
}

var nativeCaps = [...]style.LineCap{
	svgicon.ButtCap:   style.CapButt,
	svgicon.RoundCap:  style.CapRound,
	svgicon.SquareCap: style.CapSquare,
}

var nativeJoins = [...]style.LineJoin{
	svgicon.MiterJoin: style.JoinMiter,
	svgicon.RoundJoin: style.JoinRound,
	svgicon.BevelJoin: style.JoinBevel,
}

// nativeStyle returns the authored style of shape, with every
// attribute but the opacity set.
func nativeStyle(shape *svgicon.Shape) style.Style {
	s := style.Style{}.
		WithFill(nativePaint(shape.Fill)).
		WithStroke(nativePaint(shape.Stroke)).
		WithStrokeWidth(shape.StrokeWidth)
	if int(shape.LineCap) < len(nativeCaps) {
		s = s.WithLineCap(nativeCaps[shape.LineCap])
	}
	if int(shape.LineJoin) < len(nativeJoins) {
		s = s.WithLineJoin(nativeJoins[shape.LineJoin])
	}
	return s
}

// ResolveStyle returns the style used to draw shape: its authored
// style, overridden by the class rule of th, then by its id rule.
// A nil theme leaves the authored style untouched.
func ResolveStyle(cache *themecache.Cache, th *theme.Theme, shape *svgicon.Shape) style.Style {
	s := nativeStyle(shape)
	if th == nil {
		return s
	}
	info := cache.ShapeInfo(shape)
	if class := th.ClassStyle(info.Class); class != nil {
		s = style.Combine(s, *class)
	}
	if id := th.IDStyle(info.ID); id != nil {
		s = style.Combine(s, *id)
	}
	return s
}

// Renderer draws themed images on canvases.
type Renderer struct {
	cache *themecache.Cache
}

// NewRenderer returns a renderer resolving shape identities with cache,
// which must be the cache the drawn themes were loaded from.
func NewRenderer(cache *themecache.Cache) *Renderer {
	return &Renderer{cache: cache}
}

// Draw draws the visible shapes of img, in document order.
// Nothing is drawn without canvas, image or theme.
func (r *Renderer) Draw(c Canvas, img ThemedImage) {
	if c == nil || !img.Valid() {
		return
	}
	for _, shape := range img.Image.Shapes {
		if shape == nil || len(shape.Paths) == 0 || !shape.Visible {
			continue
		}
		r.drawShape(c, img.Theme, shape)
	}
}

func (r *Renderer) drawShape(c Canvas, th *theme.Theme, shape *svgicon.Shape) {
	c.Save()
	defer c.Restore()

	st := ResolveStyle(r.cache, th, shape)
	if alpha := shape.Opacity * st.Opacity(); alpha < 1 {
		c.GlobalAlpha(alpha)
	}

	c.BeginPath()
	for i, path := range shape.Paths {
		if len(path.Points) == 0 {
			continue
		}
		pts := path.Points
		c.MoveTo(pts[0].X, pts[0].Y)
		for j := 1; j+2 < len(pts); j += 3 {
			c.BezierTo(pts[j].X, pts[j].Y, pts[j+1].X, pts[j+1].Y, pts[j+2].X, pts[j+2].Y)
		}
		if path.Closed {
			c.ClosePath()
		}
		c.PathWinding(pathWinding(shape, i))
	}

	if fill := st.Fill(); !fill.IsNone() {
		native := shape.Fill
		switch {
		case fill.IsGradient() && !native.Kind.IsGradient():
			c.FillColor(native.Color)
		case fill.IsColor():
			c.FillColor(fill.Color())
		case fill.IsGradient() && native.Gradient != nil:
			stops, _ := fill.Gradient()
			c.FillPaint(gradientPaint(native, stops))
		}
		c.Fill()
	}

	if stroke := st.Stroke(); !stroke.IsNone() {
		c.StrokeWidth(st.StrokeWidth())
		c.LineCap(st.LineCap())
		c.LineJoin(st.LineJoin())

		native := shape.Stroke
		switch {
		case stroke.IsGradient() && !native.Kind.IsGradient():
			c.StrokeColor(native.Color)
		case stroke.IsColor():
			c.StrokeColor(stroke.Color())
		case stroke.IsGradient() && native.Gradient != nil:
			stops, _ := stroke.Gradient()
			c.StrokePaint(gradientPaint(native, stops))
		}
		c.Stroke()
	}
}

// gradientPaint places the theme stops on the geometry of
// the native gradient.
func gradientPaint(native svgicon.Paint, stops style.GradientStops) Paint {
	inv := native.Gradient.Xform.Invert()
	sx, sy := inv.Transform(0, 0)
	ex, ey := inv.Transform(0, 1)
	p := Paint{
		Start: svgicon.Point{X: sx, Y: sy},
		End:   svgicon.Point{X: ex, Y: ey},
		Inner: stops.Inner().Color,
		Outer: stops.Outer().Color,
	}
	if native.Kind == svgicon.PaintRadialGradient {
		p.Radial = true
		p.InnerRadius, p.OuterRadius = 0, radialOuterRadius
	}
	return p
}

// lineCrossing returns the parameter along p2-p3 of its intersection
// with the line p0-p1. It is false for parallel lines or equal points.
func lineCrossing(p0, p1, p2, p3 svgicon.Point) (float64, bool) {
	bx, by := p2.X-p0.X, p2.Y-p0.Y
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	ex, ey := p3.X-p2.X, p3.Y-p2.Y
	m := dx*ey - dy*ex
	if math.Abs(m) < 1e-6 {
		return 0, false
	}
	return -(dx*by - dy*bx) / m, true
}

// pathWinding tells if the sub-path i of shape is a hole, by counting
// how many chords of the other sub-paths a ray from its start point
// to outside of the shape crosses. Curves are approximated by
// their chords, and sub-paths are assumed not to intersect.
func pathWinding(shape *svgicon.Shape, i int) Winding {
	path := shape.Paths[i]
	if len(path.Points) == 0 {
		return Solid
	}
	p0 := path.Points[0]
	p1 := svgicon.Point{X: shape.Bounds.Min.X - 1, Y: shape.Bounds.Min.Y - 1}

	crossings := 0
	for j, other := range shape.Paths {
		if j == i || len(other.Points) < 4 {
			continue
		}
		pts := other.Points
		for k := 0; k < len(pts); k += 3 {
			p2 := pts[k]
			p3 := pts[0] // closing chord
			if k+3 < len(pts) {
				p3 = pts[k+3]
			}
			onChord, ok := lineCrossing(p0, p1, p2, p3)
			if !ok || onChord < 0 || onChord >= 1 {
				continue
			}
			if onRay, ok := lineCrossing(p2, p3, p0, p1); ok && onRay >= 0 {
				crossings++
			}
		}
	}
	if crossings%2 == 0 {
		return Solid
	}
	return Hole
}
