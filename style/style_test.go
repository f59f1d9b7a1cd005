package style

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var styleCmp = cmp.AllowUnexported(Style{}, Paint{})

func fullBase() Style {
	return Style{}.
		WithFill(SolidPaint(color.NRGBA{R: 1, A: 255})).
		WithStroke(SolidPaint(color.NRGBA{G: 1, A: 255})).
		WithOpacity(0.5).
		WithStrokeWidth(3).
		WithLineCap(CapRound).
		WithLineJoin(JoinBevel)
}

func TestDefaults(t *testing.T) {
	var s Style
	assert.False(t, s.HasFill())
	assert.False(t, s.HasStroke())
	assert.False(t, s.HasOpacity())
	assert.Equal(t, 1.0, s.Opacity())
	assert.Equal(t, 1.0, s.StrokeWidth())
	assert.Equal(t, CapButt, s.LineCap())
	assert.Equal(t, JoinMiter, s.LineJoin())

	// set to the default value is still set
	s = s.WithOpacity(1)
	assert.True(t, s.HasOpacity())
}

func TestBuildersDoNotMutate(t *testing.T) {
	base := Style{}
	_ = base.WithOpacity(0.2)
	assert.False(t, base.HasOpacity())
}

func TestCombineSingleAttribute(t *testing.T) {
	base := fullBase()
	red := SolidPaint(color.NRGBA{R: 255, A: 255})

	overlays := map[string]Style{
		"fill":   Style{}.WithFill(red),
		"stroke": Style{}.WithStroke(NonePaint()),
		"opac":   Style{}.WithOpacity(0.25),
		"width":  Style{}.WithStrokeWidth(7),
		"cap":    Style{}.WithLineCap(CapSquare),
		"join":   Style{}.WithLineJoin(JoinRound),
	}
	for name, overlay := range overlays {
		got := Combine(base, overlay)

		want := base
		switch name {
		case "fill":
			want.fill = red
		case "stroke":
			want.stroke = NonePaint()
		case "opac":
			want.opacity = 0.25
		case "width":
			want.strokeWidth = 7
		case "cap":
			want.lineCap = CapSquare
		case "join":
			want.lineJoin = JoinRound
		}
		if diff := cmp.Diff(want, got, styleCmp); diff != "" {
			t.Errorf("overlay %s (-want +got):\n%s", name, diff)
		}
	}
}

func TestCombineEmptyOverlay(t *testing.T) {
	base := fullBase()
	if diff := cmp.Diff(base, base.Combine(Style{}), styleCmp); diff != "" {
		t.Errorf("empty overlay changed the style:\n%s", diff)
	}
}

func TestCombineOntoEmpty(t *testing.T) {
	overlay := Style{}.WithOpacity(0.3)
	got := Combine(Style{}, overlay)
	assert.True(t, got.HasOpacity())
	assert.Equal(t, 0.3, got.Opacity())
	assert.False(t, got.HasStrokeWidth())
}

func TestPaintAccessors(t *testing.T) {
	assert.Equal(t, Black, NonePaint().Color())
	assert.Equal(t, Black, UnsetPaint().Color())

	g := NewGradientStops()
	g.SetStop(Stop{Index: 1, Offset: 1, Color: color.NRGBA{B: 255, A: 255}})
	assert.Equal(t, 1, g.NStops)
	g.SetStop(Stop{Index: 0, Color: color.NRGBA{R: 255, A: 255}})
	assert.Equal(t, 2, g.NStops)
	g.SetStop(Stop{Index: 0, Color: color.NRGBA{G: 255, A: 255}})
	assert.Equal(t, 2, g.NStops)
	g.SetStop(Stop{Index: 2})
	assert.Equal(t, 2, g.NStops)

	p := GradientPaint(g)
	assert.True(t, p.IsGradient())
	got, ok := p.Gradient()
	assert.True(t, ok)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, got.Inner().Color)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, got.Outer().Color)

	_, ok = SolidPaint(Black).Gradient()
	assert.False(t, ok)

	// a single stop is used at both ends, whatever its index
	single := NewGradientStops()
	single.SetStop(Stop{Index: 1, Color: color.NRGBA{G: 255, A: 255}})
	assert.Equal(t, 1, single.Inner().Index)
	assert.Equal(t, 1, single.Outer().Index)
	single = NewGradientStops()
	single.SetStop(Stop{Index: 0, Color: color.NRGBA{R: 255, A: 255}})
	assert.Equal(t, 0, single.Inner().Index)
	assert.Equal(t, 0, single.Outer().Index)
}

func TestLineCapNames(t *testing.T) {
	for _, c := range []LineCap{CapButt, CapRound, CapSquare, CapBevel, CapMiter} {
		got, ok := ParseLineCap(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := ParseLineCap("arc")
	assert.False(t, ok)
}
