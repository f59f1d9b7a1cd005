package svgdraw

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgtheme/document"
	"github.com/benoitkugler/svgtheme/logging"
	"github.com/benoitkugler/svgtheme/style"
	"github.com/benoitkugler/svgtheme/svgicon"
	"github.com/benoitkugler/svgtheme/theme"
	"github.com/benoitkugler/svgtheme/themecache"
)

// op is one recorded canvas call
type op struct {
	Name    string
	Args    []float64
	Color   color.NRGBA
	Paint   Paint
	Winding Winding
	Cap     style.LineCap
	Join    style.LineJoin
}

type recorder struct{ ops []op }

func (r *recorder) add(o op) { r.ops = append(r.ops, o) }

func (r *recorder) Save()                     { r.add(op{Name: "save"}) }
func (r *recorder) Restore()                  { r.add(op{Name: "restore"}) }
func (r *recorder) GlobalAlpha(a float64)     { r.add(op{Name: "alpha", Args: []float64{a}}) }
func (r *recorder) BeginPath()                { r.add(op{Name: "begin"}) }
func (r *recorder) MoveTo(x, y float64)       { r.add(op{Name: "move", Args: []float64{x, y}}) }
func (r *recorder) ClosePath()                { r.add(op{Name: "close"}) }
func (r *recorder) PathWinding(w Winding)     { r.add(op{Name: "winding", Winding: w}) }
func (r *recorder) FillColor(c color.NRGBA)   { r.add(op{Name: "fillColor", Color: c}) }
func (r *recorder) FillPaint(p Paint)         { r.add(op{Name: "fillPaint", Paint: p}) }
func (r *recorder) Fill()                     { r.add(op{Name: "fill"}) }
func (r *recorder) StrokeColor(c color.NRGBA) { r.add(op{Name: "strokeColor", Color: c}) }
func (r *recorder) StrokePaint(p Paint)       { r.add(op{Name: "strokePaint", Paint: p}) }
func (r *recorder) StrokeWidth(w float64)     { r.add(op{Name: "strokeWidth", Args: []float64{w}}) }
func (r *recorder) LineCap(c style.LineCap)   { r.add(op{Name: "lineCap", Cap: c}) }
func (r *recorder) LineJoin(j style.LineJoin) { r.add(op{Name: "lineJoin", Join: j}) }
func (r *recorder) Stroke()                   { r.add(op{Name: "stroke"}) }

func (r *recorder) BezierTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.add(op{Name: "bezier", Args: []float64{c1x, c1y, c2x, c2y, x, y}})
}

// find returns the recorded calls named name.
func (r *recorder) find(name string) []op {
	var out []op
	for _, o := range r.ops {
		if o.Name == name {
			out = append(out, o)
		}
	}
	return out
}

func (r *recorder) names() []string {
	out := make([]string, len(r.ops))
	for i, o := range r.ops {
		out[i] = o.Name
	}
	return out
}

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	green = color.NRGBA{G: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
)

// rectPath returns a closed rectangle, made of straight cubic segments
func rectPath(x0, y0, x1, y1 float64) *svgicon.SubPath {
	corners := []svgicon.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0}}
	p := &svgicon.SubPath{Points: []svgicon.Point{corners[0]}, Closed: true}
	for i := 1; i < len(corners); i++ {
		a, b := corners[i-1], corners[i]
		p.Points = append(p.Points,
			svgicon.Point{X: a.X + (b.X-a.X)/3, Y: a.Y + (b.Y-a.Y)/3},
			svgicon.Point{X: a.X + 2*(b.X-a.X)/3, Y: a.Y + 2*(b.Y-a.Y)/3},
			b)
	}
	p.Bounds = svgicon.NewRect(x0, y0, x1, y1)
	return p
}

func newShape(id string, paths ...*svgicon.SubPath) *svgicon.Shape {
	s := &svgicon.Shape{
		ID:          id,
		Visible:     true,
		Fill:        svgicon.Paint{Kind: svgicon.PaintColor, Color: blue},
		Stroke:      svgicon.Paint{Kind: svgicon.PaintNone},
		Opacity:     1,
		StrokeWidth: 1,
		MiterLimit:  4,
		Paths:       paths,
	}
	for _, p := range paths {
		s.Bounds = s.Bounds.Union(p.Bounds)
	}
	return s
}

func decodeTheme(t *testing.T, cache *themecache.Cache, src string) *theme.Theme {
	t.Helper()
	var rec logging.Recorder
	th, err := theme.Decode([]byte(src), document.JSON, "test.json", cache.Interner(), rec.Sink())
	require.NoError(t, err)
	require.Empty(t, rec.Failures())
	return th
}

func draw(cache *themecache.Cache, th *theme.Theme, shapes ...*svgicon.Shape) *recorder {
	var rec recorder
	icon := &svgicon.Icon{Width: 10, Height: 10, Shapes: shapes}
	NewRenderer(cache).Draw(&rec, ThemedImage{Image: icon, Theme: th})
	return &rec
}

func TestWindingAnnulus(t *testing.T) {
	shape := newShape("ring", rectPath(0, 0, 10, 10), rectPath(2, 3, 8, 7))
	assert.Equal(t, Solid, pathWinding(shape, 0))
	assert.Equal(t, Hole, pathWinding(shape, 1))

	// an island inside the hole is solid again
	shape = newShape("ring", rectPath(0, 0, 10, 10), rectPath(2, 3, 8, 7), rectPath(4, 4.5, 6, 5.5))
	assert.Equal(t, Solid, pathWinding(shape, 0))
	assert.Equal(t, Hole, pathWinding(shape, 1))
	assert.Equal(t, Solid, pathWinding(shape, 2))

	// side by side sub-paths are both solid
	shape = newShape("pair", rectPath(0, 0, 4, 4), rectPath(6, 0, 10, 4))
	assert.Equal(t, Solid, pathWinding(shape, 0))
	assert.Equal(t, Solid, pathWinding(shape, 1))

	cache := themecache.New()
	rec := draw(cache, cache.NullTheme(), newShape("ring", rectPath(0, 0, 10, 10), rectPath(2, 3, 8, 7)))
	windings := rec.find("winding")
	require.Len(t, windings, 2)
	assert.Equal(t, Solid, windings[0].Winding)
	assert.Equal(t, Hole, windings[1].Winding)
}

func TestLineCrossing(t *testing.T) {
	origin, right := svgicon.Point{}, svgicon.Point{X: 2}
	down, up := svgicon.Point{X: 1, Y: -1}, svgicon.Point{X: 1, Y: 1}

	f, ok := lineCrossing(origin, right, down, up)
	require.True(t, ok)
	assert.InDelta(t, 0.5, f, 1e-12)

	f, ok = lineCrossing(down, up, origin, right)
	require.True(t, ok)
	assert.InDelta(t, 0.5, f, 1e-12)

	_, ok = lineCrossing(origin, right, svgicon.Point{Y: 1}, svgicon.Point{X: 2, Y: 1})
	assert.False(t, ok, "parallel lines")
	_, ok = lineCrossing(origin, right, up, up)
	assert.False(t, ok, "equal points")
}

func TestDrawSequence(t *testing.T) {
	cache := themecache.New()
	rec := draw(cache, cache.NullTheme(), newShape("box", rectPath(0, 0, 10, 10)))
	want := []string{"save", "begin", "move", "bezier", "bezier", "bezier", "bezier", "close", "winding", "fillColor", "fill", "restore"}
	if diff := cmp.Diff(want, rec.names()); diff != "" {
		t.Fatalf("unexpected calls (-want +got):\n%s", diff)
	}
	assert.Equal(t, blue, rec.find("fillColor")[0].Color)
	assert.Equal(t, []float64{10 / 3., 0, 20 / 3., 0, 10, 0}, rec.find("bezier")[0].Args)
}

func TestDrawSkips(t *testing.T) {
	cache := themecache.New()
	hidden := newShape("hidden", rectPath(0, 0, 1, 1))
	hidden.Visible = false
	empty := newShape("empty")
	rec := draw(cache, cache.NullTheme(), hidden, empty, nil)
	assert.Empty(t, rec.ops)

	// no theme, no image, no canvas
	shape := newShape("box", rectPath(0, 0, 1, 1))
	rec = draw(cache, nil, shape)
	assert.Empty(t, rec.ops)

	var r recorder
	NewRenderer(cache).Draw(&r, ThemedImage{Theme: cache.NullTheme()})
	assert.Empty(t, r.ops)
	NewRenderer(cache).Draw(nil, ThemedImage{Image: &svgicon.Icon{Shapes: []*svgicon.Shape{shape}}, Theme: cache.NullTheme()})
}

func TestOpacity(t *testing.T) {
	cache := themecache.New()
	shape := newShape("box", rectPath(0, 0, 1, 1))

	rec := draw(cache, cache.NullTheme(), shape)
	assert.Empty(t, rec.find("alpha"), "opaque shapes do not set the alpha")

	shape.Opacity = 0.5
	th := decodeTheme(t, cache, `{"name": "T", "styles": {".box": {"opacity": 0.5}}}`)
	rec = draw(cache, th, shape)
	alpha := rec.find("alpha")
	require.Len(t, alpha, 1)
	assert.Equal(t, []float64{0.25}, alpha[0].Args)
}

func TestPrecedence(t *testing.T) {
	cache := themecache.New()
	th := decodeTheme(t, cache, `{"name": "T", "styles": {
		"body": {"opacity": 0.2, "fill": "#00ff00"},
		".knob": {"opacity": 0.7}
	}}`)
	body := newShape("knob--body", rectPath(0, 0, 1, 1))

	st := ResolveStyle(cache, th, body)
	assert.Equal(t, 0.7, st.Opacity(), "id rules win over class rules")
	assert.Equal(t, green, st.Fill().Color(), "class rules still apply")

	// a class only shape
	other := newShape("other--body", rectPath(0, 0, 1, 1))
	assert.Equal(t, 0.2, ResolveStyle(cache, th, other).Opacity())
}

func TestResolveStyleNative(t *testing.T) {
	cache := themecache.New()
	shape := newShape("box", rectPath(0, 0, 1, 1))
	shape.Stroke = svgicon.Paint{Kind: svgicon.PaintColor, Color: red}
	shape.StrokeWidth = 3
	shape.LineCap = svgicon.RoundCap
	shape.LineJoin = svgicon.BevelJoin

	want := style.Style{}.
		WithFill(style.SolidPaint(blue)).
		WithStroke(style.SolidPaint(red)).
		WithStrokeWidth(3).
		WithLineCap(style.CapRound).
		WithLineJoin(style.JoinBevel)
	for _, th := range []*theme.Theme{nil, cache.NullTheme()} {
		got := ResolveStyle(cache, th, shape)
		if diff := cmp.Diff(want, got, cmp.AllowUnexported(style.Style{}, style.Paint{})); diff != "" {
			t.Errorf("unexpected style (-want +got):\n%s", diff)
		}
		assert.False(t, got.HasOpacity())
	}
}

func TestMinimalThemeScenario(t *testing.T) {
	cache := themecache.New()
	th := decodeTheme(t, cache, `{"name":"T","styles":{".knob":{"fill":"#FF0000"}}}`)

	for _, test := range []struct {
		id   string
		fill color.NRGBA
	}{
		{"knob", red},
		{"knob--body", red},   // element id knob
		{"other--knob", blue}, // element id other, class knob
	} {
		st := ResolveStyle(cache, th, newShape(test.id, rectPath(0, 0, 1, 1)))
		assert.Equal(t, test.fill, st.Fill().Color(), test.id)
	}
}

func linearShape(id string, xform rasterx.Matrix2D, stops ...color.NRGBA) *svgicon.Shape {
	s := newShape(id, rectPath(0, 0, 10, 10))
	g := &svgicon.Gradient{Kind: svgicon.PaintLinearGradient, Xform: xform}
	for i, c := range stops {
		g.Stops = append(g.Stops, svgicon.GradientStop{Offset: float64(i) / float64(len(stops)-1), Color: c})
	}
	s.Fill = svgicon.Paint{Kind: svgicon.PaintLinearGradient, Gradient: g}
	return s
}

func TestGradientPassthrough(t *testing.T) {
	cache := themecache.New()
	th := decodeTheme(t, cache, `{"name": "T", "styles": {
		".flat": {"fill": {"gradient": [{"index": 0, "color": "#ff0000"}, {"index": 1, "color": "#00ff00"}]}},
		".shaded": {"fill": {"gradient": [{"index": 0, "color": "#ff0000"}, {"index": 1, "color": "#00ff00"}]}},
		".recolored": {"fill": "#00ff00"}
	}}`)

	// theme gradient on a plain shape: the native color is kept
	rec := draw(cache, th, newShape("flat", rectPath(0, 0, 1, 1)))
	assert.Empty(t, rec.find("fillPaint"))
	require.Len(t, rec.find("fillColor"), 1)
	assert.Equal(t, blue, rec.find("fillColor")[0].Color)

	// theme gradient on a gradient shape: the native geometry is kept
	xform := rasterx.Matrix2D{A: 1, D: 1, E: -5, F: -5}
	rec = draw(cache, th, linearShape("shaded", xform, blue, blue, blue))
	paints := rec.find("fillPaint")
	require.Len(t, paints, 1)
	want := Paint{
		Start: svgicon.Point{X: 5, Y: 5},
		End:   svgicon.Point{X: 5, Y: 6},
		Inner: red,
		Outer: green,
	}
	if diff := cmp.Diff(want, paints[0].Paint); diff != "" {
		t.Errorf("unexpected paint (-want +got):\n%s", diff)
	}

	// theme color on a gradient shape
	rec = draw(cache, th, linearShape("recolored", xform, blue, red))
	assert.Empty(t, rec.find("fillPaint"))
	assert.Equal(t, green, rec.find("fillColor")[0].Color)

	// no rule: the native first and last stops
	rec = draw(cache, th, linearShape("native", rasterx.Identity, red, blue, green))
	paints = rec.find("fillPaint")
	require.Len(t, paints, 1)
	assert.Equal(t, red, paints[0].Paint.Inner)
	assert.Equal(t, green, paints[0].Paint.Outer)
	assert.Equal(t, svgicon.Point{X: 0, Y: 1}, paints[0].Paint.End)
}

func TestGradientSingleStop(t *testing.T) {
	cache := themecache.New()
	th := decodeTheme(t, cache, `{"name": "T", "styles": {
		".shaded": {"fill": {"gradient": [{"index": 1, "color": "#00ff00"}]}}
	}}`)

	rec := draw(cache, th, linearShape("shaded", rasterx.Identity, blue, red))
	paints := rec.find("fillPaint")
	require.Len(t, paints, 1)
	assert.Equal(t, green, paints[0].Paint.Inner)
	assert.Equal(t, green, paints[0].Paint.Outer)
}

func TestNativeGradientStops(t *testing.T) {
	p := nativePaint(linearShape("g", rasterx.Identity, red, blue, green).Fill)
	g, ok := p.Gradient()
	require.True(t, ok)
	assert.Equal(t, 2, g.NStops)
	assert.Equal(t, red, g.Inner().Color)
	assert.Equal(t, green, g.Outer().Color)

	assert.True(t, nativePaint(svgicon.Paint{Kind: svgicon.PaintNone}).IsNone())
	assert.Equal(t, style.Magenta, nativePaint(svgicon.Paint{Kind: 42}).Color())
}

func TestDrawThemedFile(t *testing.T) {
	var events logging.Recorder
	cache := themecache.New(themecache.WithSink(events.Sink()))
	img := ThemedImage{
		Image: cache.Image(filepath.Join("testdata", "knob.svg")),
		Theme: cache.Theme(filepath.Join("testdata", "dark.json")),
	}
	require.True(t, img.Valid())
	require.Empty(t, events.Failures())

	var rec recorder
	NewRenderer(cache).Draw(&rec, img)
	assert.Len(t, rec.find("save"), img.NumShapes())
	assert.Len(t, rec.find("restore"), img.NumShapes())

	windings := rec.find("winding")
	require.GreaterOrEqual(t, len(windings), 2)
	assert.Equal(t, Solid, windings[0].Winding, "outer ring")
	assert.Equal(t, Hole, windings[1].Winding, "inner ring")

	// knob body: theme stops on the native radial gradient
	paints := rec.find("fillPaint")
	require.Len(t, paints, 1)
	assert.True(t, paints[0].Paint.Radial)
	assert.Equal(t, float64(radialOuterRadius), paints[0].Paint.OuterRadius)
	assert.Equal(t, color.NRGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff}, paints[0].Paint.Inner)
	assert.Equal(t, []float64{0.9}, rec.find("alpha")[0].Args)

	// mark--min gets a square cap from its class rule
	caps := rec.find("lineCap")
	require.NotEmpty(t, caps)
	assert.Contains(t, caps, op{Name: "lineCap", Cap: style.CapSquare})
}

func TestThemedImage(t *testing.T) {
	var zero ThemedImage
	assert.False(t, zero.Valid())
	assert.Equal(t, svgicon.Point{}, zero.Size())
	assert.Zero(t, zero.NumShapes())
	assert.Zero(t, zero.NumPaths())
	assert.Zero(t, zero.NumPoints())

	cache := themecache.New()
	icon := cache.Image(filepath.Join("testdata", "knob.svg"))
	require.NotNil(t, icon)
	img := zero.WithImage(icon)
	assert.False(t, img.Valid())
	img = img.WithTheme(cache.NullTheme())
	assert.True(t, img.Valid())
	assert.Equal(t, ThemedImage{icon, cache.NullTheme()}, img)

	assert.Equal(t, svgicon.Point{X: 64, Y: 64}, img.Size())
	assert.Equal(t, len(icon.Shapes), img.NumShapes())
	assert.Equal(t, icon.NumPaths(), img.NumPaths())
	assert.Equal(t, icon.NumPoints(), img.NumPoints())
}
