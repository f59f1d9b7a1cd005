package svgicon

import (
	"encoding/xml"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
)

// GradientStop is one color stop, with the stop opacity
// and the fill or stroke opacity applied to the alpha.
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a resolved linear or radial gradient.
// Xform maps user space to the gradient space, where a linear
// gradient runs from (0,0) to (0,1), and a radial gradient
// is centered on (0,0) with radius 1.
type Gradient struct {
	Kind   PaintKind // PaintLinearGradient or PaintRadialGradient
	Xform  rasterx.Matrix2D
	Stops  []GradientStop
	Spread rasterx.SpreadMethod
	Fx, Fy float64 // focal point, in gradient space
}

// gradCoord is a gradient coordinate, either absolute
// or a fraction of the reference box.
type gradCoord struct {
	value   float64
	percent bool
}

func readCoord(v string) (gradCoord, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		return gradCoord{value: f / 100, percent: true}, err
	}
	f, err := parseBasicFloat(v)
	return gradCoord{value: f}, err
}

// indices in gradientData.coords
const (
	gradX1 = iota // or cx
	gradY1        // or cy
	gradX2        // or r
	gradY2        // unused for radial gradients
	gradFx
	gradFy
)

// gradientData is a gradient element, as authored.
type gradientData struct {
	radial     bool
	coords     [6]gradCoord
	setFx      bool
	setFy      bool
	userSpace  bool
	transform  rasterx.Matrix2D
	spread     rasterx.SpreadMethod
	href       string
	stops      []GradientStop
	stopsFound bool
}

func newLinearGradient() *gradientData {
	g := &gradientData{transform: rasterx.Identity}
	g.coords[gradX2] = gradCoord{value: 1, percent: true}
	return g
}

func newRadialGradient() *gradientData {
	g := &gradientData{radial: true, transform: rasterx.Identity}
	half := gradCoord{value: 0.5, percent: true}
	g.coords[gradX1], g.coords[gradY1], g.coords[gradX2] = half, half, half
	return g
}

// readGradURL returns the gradient id referenced by a
// fill or stroke value like url(#id).
func readGradURL(v string) (string, bool) {
	if !strings.HasPrefix(v, "url(") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	urlStr := strings.TrimSpace(v[4 : len(v)-1])
	urlStr = strings.Trim(urlStr, `'"`)
	if !strings.HasPrefix(urlStr, "#") {
		return "", false
	}
	return urlStr[1:], true
}

// readGradAttr handles the attributes common to linear
// and radial gradients.
func (c *iconCursor) readGradAttr(attr xml.Attr) (err error) {
	switch attr.Name.Local {
	case "gradientTransform":
		c.grad.transform, err = c.parseTransformFrom(rasterx.Identity, attr.Value)
	case "gradientUnits":
		switch strings.TrimSpace(attr.Value) {
		case "userSpaceOnUse":
			c.grad.userSpace = true
		case "objectBoundingBox":
			c.grad.userSpace = false
		}
	case "spreadMethod":
		switch strings.TrimSpace(attr.Value) {
		case "pad":
			c.grad.spread = rasterx.PadSpread
		case "reflect":
			c.grad.spread = rasterx.ReflectSpread
		case "repeat":
			c.grad.spread = rasterx.RepeatSpread
		}
	case "href":
		c.grad.href = strings.TrimPrefix(strings.TrimSpace(attr.Value), "#")
	}
	return err
}

// pendingPaint is a gradient reference waiting for the end
// of the document, since gradients may be defined after use.
type pendingPaint struct {
	shape     *Shape
	stroke    bool
	id        string
	opacity   float64
	local     Rect // shape bounds before its transform
	transform rasterx.Matrix2D
}

// stopsOf follows the href chain until some stops are found.
func (icon *Icon) stopsOf(g *gradientData) []GradientStop {
	for i := 0; g != nil && i < 32; i++ {
		if g.stopsFound {
			return g.stops
		}
		g = icon.grads[g.href]
	}
	return nil
}

func (icon *Icon) resolvePaints(pending []pendingPaint) {
	for _, p := range pending {
		paint := &p.shape.Fill
		if p.stroke {
			paint = &p.shape.Stroke
		}
		*paint = Paint{Kind: PaintNone}
		data, ok := icon.grads[p.id]
		if !ok {
			continue
		}
		stops := icon.stopsOf(data)
		switch len(stops) {
		case 0:
			continue
		case 1:
			*paint = Paint{Kind: PaintColor, Color: withOpacity(stops[0].Color, p.opacity)}
			continue
		}
		grad := &Gradient{Spread: data.spread, Stops: make([]GradientStop, len(stops))}
		for i, s := range stops {
			grad.Stops[i] = GradientStop{Offset: s.Offset, Color: withOpacity(s.Color, p.opacity)}
		}
		grad.Kind = PaintLinearGradient
		if data.radial {
			grad.Kind = PaintRadialGradient
		}
		toUser := p.transform.Mult(data.transform).Mult(icon.gradientSpace(data, p.local, grad))
		if toUser.A*toUser.D-toUser.B*toUser.C == 0 {
			// degenerate gradients paint with their last color
			*paint = Paint{Kind: PaintColor, Color: grad.Stops[len(grad.Stops)-1].Color}
			continue
		}
		grad.Xform = toUser.Invert()
		*paint = Paint{Kind: grad.Kind, Gradient: grad}
	}
}

// gradientSpace returns the matrix mapping the gradient space to
// the user space of the shape, before the gradient and shape transforms.
func (icon *Icon) gradientSpace(data *gradientData, local Rect, grad *Gradient) rasterx.Matrix2D {
	var ox, oy, sw, sh float64
	if data.userSpace {
		vb := icon.ViewBox
		ox, oy, sw, sh = vb.X, vb.Y, vb.W, vb.H
	} else {
		ox, oy, sw, sh = local.Min.X, local.Min.Y, local.W(), local.H()
	}
	sl := diagonal(sw, sh)
	coord := func(i int, origin, length float64) float64 {
		c := data.coords[i]
		if !data.userSpace || c.percent {
			return origin + c.value*length
		}
		return c.value
	}
	length := func(i int) float64 {
		c := data.coords[i]
		if data.userSpace && !c.percent {
			return c.value
		}
		return c.value * sl
	}

	if !data.radial {
		x1, y1 := coord(gradX1, ox, sw), coord(gradY1, oy, sh)
		x2, y2 := coord(gradX2, ox, sw), coord(gradY2, oy, sh)
		dx, dy := x2-x1, y2-y1
		return rasterx.Matrix2D{A: dy, B: -dx, C: dx, D: dy, E: x1, F: y1}
	}

	cx, cy := coord(gradX1, ox, sw), coord(gradY1, oy, sh)
	r := length(gradX2)
	fx, fy := cx, cy
	if data.setFx {
		fx = coord(gradFx, ox, sw)
	}
	if data.setFy {
		fy = coord(gradFy, oy, sh)
	}
	if r != 0 {
		grad.Fx, grad.Fy = (fx-cx)/r, (fy-cy)/r
	}
	return rasterx.Matrix2D{A: r, D: r, E: cx, F: cy}
}

// averageScale is the mean scaling factor of m, used for stroke widths.
func averageScale(m rasterx.Matrix2D) float64 {
	sx := math.Hypot(m.A, m.B)
	sy := math.Hypot(m.C, m.D)
	return (sx + sy) / 2
}
