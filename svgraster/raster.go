// Implements a raster backend to render themed SVG images,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

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

// Canvas draws into an RGBA image.
type Canvas struct {
	svgdraw.PathRecorder

	img    *image.RGBA
	scale  float64
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	state state
	stack []state
}

// NewCanvas returns a transparent w x h canvas.
func NewCanvas(w, h int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &Canvas{
		img:    img,
		scale:  1,
		dasher: rasterx.NewDasher(w, h, scanner),
		filler: rasterx.NewFiller(w, h, scanner),
		state:  defaultState,
	}
}

// SetScale sets the factor applied to every later coordinate and width.
func (c *Canvas) SetScale(s float64) { c.scale = s }

// Background fills the whole image with col.
func (c *Canvas) Background(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Image returns the destination image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// WritePNG encodes the image as PNG.
func (c *Canvas) WritePNG(w io.Writer) error { return png.Encode(w, c.img) }

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

func (c *Canvas) toFixed(p svgicon.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X * c.scale * 64),
		Y: fixed.Int26_6(p.Y * c.scale * 64),
	}
}

// addPath sends pts to the filler or the dasher
func (c *Canvas) addPath(adder rasterx.Adder, pts []svgicon.Point, closed bool) {
	if len(pts) == 0 {
		return
	}
	adder.Start(c.toFixed(pts[0]))
	for i := 1; i+2 < len(pts); i += 3 {
		adder.CubeBezier(c.toFixed(pts[i]), c.toFixed(pts[i+1]), c.toFixed(pts[i+2]))
	}
	adder.Stop(closed)
}

// Fill fills the current path with the non-zero rule,
// after orienting its sub-paths from their winding.
func (c *Canvas) Fill() {
	c.filler.Clear()
	for _, sp := range c.Paths {
		c.addPath(c.filler, sp.Oriented(), true)
	}
	c.setColor(c.filler.Scanner, c.state.fill)
	c.filler.Draw()
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		style.JoinMiter: rasterx.Miter,
		style.JoinRound: rasterx.Round,
		style.JoinBevel: rasterx.Bevel,
	}

	capToFunc = [...]rasterx.CapFunc{
		style.CapButt:   rasterx.ButtCap,
		style.CapRound:  rasterx.RoundCap,
		style.CapSquare: rasterx.SquareCap,
		style.CapBevel:  rasterx.ButtCap,
		style.CapMiter:  rasterx.ButtCap,
	}
)

const miterLimit = 4

// Stroke strokes the current path, without dashes.
func (c *Canvas) Stroke() {
	capFunc := rasterx.ButtCap
	if int(c.state.cap) < len(capToFunc) {
		capFunc = capToFunc[c.state.cap]
	}
	join := rasterx.Miter
	if c.state.join >= 0 && int(c.state.join) < len(joinToJoin) {
		join = joinToJoin[c.state.join]
	}
	c.dasher.Clear()
	c.dasher.SetStroke(
		fixed.Int26_6(c.state.width*c.scale*64), miterLimit*64, capFunc,
		capFunc, rasterx.RoundGap, join, nil, 0,
	)
	for _, sp := range c.Paths {
		c.addPath(c.dasher, sp.Points, sp.Closed)
	}
	c.setColor(c.dasher.Scanner, c.state.stroke)
	c.dasher.Draw()
}

// resolve gradient color
func (c *Canvas) setColor(scanner rasterx.Scanner, p paint) {
	if p.grad == nil {
		scanner.SetColor(rasterx.ApplyOpacity(opaque(p.color), c.state.alpha*alphaOf(p.color)))
		return
	}
	g := p.grad
	if !g.Radial && g.Start == g.End || g.Radial && g.OuterRadius <= 0 {
		scanner.SetColor(rasterx.ApplyOpacity(opaque(g.Outer), c.state.alpha*alphaOf(g.Outer)))
		return
	}
	grad := c.toRasterxGradient(*g)
	scanner.SetColor(grad.GetColorFunction(c.state.alpha))
}

func alphaOf(col color.NRGBA) float64 { return float64(col.A) / 0xff }

// opaque drops the alpha, which rasterx expects as a separate opacity
func opaque(col color.NRGBA) color.NRGBA {
	col.A = 0xff
	return col
}

func (c *Canvas) toRasterxGradient(p svgdraw.Paint) rasterx.Gradient {
	var points [5]float64
	s := c.scale
	if p.Radial {
		// centered focus; the inner radius is always 0
		points = [5]float64{p.Start.X * s, p.Start.Y * s, p.Start.X * s, p.Start.Y * s, p.OuterRadius * s}
	} else {
		points = [5]float64{p.Start.X * s, p.Start.Y * s, p.End.X * s, p.End.Y * s}
	}
	bounds := c.img.Bounds()
	grad := rasterx.Gradient{
		Points: points,
		Stops: []rasterx.GradStop{
			{StopColor: opaque(p.Inner), Offset: 0, Opacity: alphaOf(p.Inner)},
			{StopColor: opaque(p.Outer), Offset: 1, Opacity: alphaOf(p.Outer)},
		},
		Matrix:   rasterx.Identity,
		Spread:   rasterx.PadSpread,
		Units:    rasterx.UserSpaceOnUse,
		IsRadial: p.Radial,
	}
	grad.Bounds.W, grad.Bounds.H = float64(bounds.Dx()), float64(bounds.Dy())
	return grad
}
