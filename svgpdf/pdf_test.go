package svgpdf

import (
	"bytes"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/benoitkugler/svgtheme/logging"
	"github.com/benoitkugler/svgtheme/svgdraw"
	"github.com/benoitkugler/svgtheme/svgicon"
	"github.com/benoitkugler/svgtheme/themecache"
)

func newPDF(w, h float64) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: w, Ht: h}})
	pdf.AddPage()
	return pdf
}

func output(t *testing.T, pdf *gofpdf.Fpdf) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("can't write pdf: %s", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("invalid pdf header %q", buf.Bytes()[:min(8, buf.Len())])
	}
	return buf.Bytes()
}

func TestRenderThemedFile(t *testing.T) {
	var events logging.Recorder
	cache := themecache.New(themecache.WithSink(events.Sink()))
	dir := filepath.Join("..", "svgdraw", "testdata")
	img := svgdraw.ThemedImage{
		Image: cache.Image(filepath.Join(dir, "knob.svg")),
		Theme: cache.Theme(filepath.Join(dir, "dark.json")),
	}
	if !img.Valid() {
		t.Fatalf("can't load fixtures: %v", events.Failures())
	}

	size := img.Size()
	pdf := newPDF(size.X, size.Y)
	svgdraw.NewRenderer(cache).Draw(NewCanvas(pdf), img)
	if err := pdf.Error(); err != nil {
		t.Fatal(err)
	}
	if out := output(t, pdf); len(out) < 500 {
		t.Errorf("pdf output is suspiciously small: %d bytes", len(out))
	}
}

func TestRenderAnnulus(t *testing.T) {
	icon, err := svgicon.ReadIconStream(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" width="20" height="20">
	<path id="frame" fill="#ff0000" stroke="#000000" d="M2 2 H18 V18 H2 Z M7 8 H13 V14 H7 Z"/>
</svg>`), svgicon.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	cache := themecache.New()
	pdf := newPDF(40, 40)
	canvas := NewCanvas(pdf)
	canvas.SetScale(2)
	svgdraw.NewRenderer(cache).Draw(canvas, svgdraw.ThemedImage{Image: icon, Theme: cache.NullTheme()})
	if err := pdf.Error(); err != nil {
		t.Fatal(err)
	}
	output(t, pdf)
}

func TestGradients(t *testing.T) {
	pdf := newPDF(20, 20)
	c := NewCanvas(pdf)
	square := func() {
		c.BeginPath()
		c.MoveTo(0, 0)
		for _, p := range [][2]float64{{10, 0}, {10, 10}, {0, 10}} {
			c.BezierTo(p[0], p[1], p[0], p[1], p[0], p[1])
		}
		c.ClosePath()
		c.PathWinding(svgdraw.Solid)
	}
	red, blue := color.NRGBA{R: 0xff, A: 0xff}, color.NRGBA{B: 0xff, A: 0xff}

	square()
	c.FillPaint(svgdraw.Paint{End: svgicon.Point{X: 10}, Inner: red, Outer: blue})
	c.Fill()

	square()
	c.FillPaint(svgdraw.Paint{Radial: true, Start: svgicon.Point{X: 5, Y: 5}, OuterRadius: 160, Inner: red, Outer: blue})
	c.Fill()

	// degenerate gradients use the outer color
	square()
	c.FillPaint(svgdraw.Paint{Inner: red, Outer: blue})
	c.Fill()
	if c.state.fill.grad == nil {
		t.Error("the gradient paint should be kept")
	}

	// strokes fall back to the inner color
	c.StrokePaint(svgdraw.Paint{End: svgicon.Point{X: 10}, Inner: red, Outer: blue})
	c.StrokeWidth(2)
	c.Stroke()

	if err := pdf.Error(); err != nil {
		t.Fatal(err)
	}
	output(t, pdf)
}

func TestSaveRestore(t *testing.T) {
	c := NewCanvas(newPDF(10, 10))
	c.Save()
	c.GlobalAlpha(0.2)
	c.FillColor(color.NRGBA{G: 0xff, A: 0xff})
	c.Restore()
	if c.state != defaultState {
		t.Errorf("expected the default state, got %v", c.state)
	}
	c.Restore()

	// empty paths are ignored
	c.BeginPath()
	c.Fill()
	c.Stroke()
}
