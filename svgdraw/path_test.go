package svgdraw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgtheme/svgicon"
)

func TestPathRecorder(t *testing.T) {
	var pr PathRecorder
	pr.ClosePath() // no sub-path yet
	pr.PathWinding(Hole)
	assert.Empty(t, pr.Paths)

	pr.BezierTo(1, 1, 2, 2, 3, 3) // implicit start
	pr.MoveTo(0, 0)
	pr.BezierTo(0, 1, 0, 2, 0, 3)
	pr.ClosePath()
	pr.PathWinding(Hole)
	require.Len(t, pr.Paths, 2)
	assert.Equal(t, svgicon.Point{X: 1, Y: 1}, pr.Paths[0].Points[0])
	assert.Len(t, pr.Paths[0].Points, 4)
	assert.False(t, pr.Paths[0].Closed)
	assert.True(t, pr.Paths[1].Closed)
	assert.Equal(t, Hole, pr.Paths[1].Winding)

	box := pr.Bounds()
	assert.Equal(t, svgicon.Point{}, box.Min)
	assert.Equal(t, svgicon.Point{X: 3, Y: 3}, box.Max)

	pr.BeginPath()
	assert.Empty(t, pr.Paths)
	assert.True(t, pr.Bounds().IsEmpty())
}

func TestOriented(t *testing.T) {
	square := rectPath(0, 0, 10, 10)
	sp := SubPath{Points: square.Points, Closed: true}
	assert.Equal(t, 100., sp.signedArea())

	sp.Winding = Solid
	assert.Equal(t, square.Points, sp.Oriented())

	sp.Winding = Hole
	reversed := sp.Oriented()
	require.Len(t, reversed, len(square.Points))
	assert.Equal(t, square.Points[len(square.Points)-1], reversed[0])
	assert.Equal(t, square.Points[1], reversed[len(reversed)-2])
	assert.Equal(t, -100., SubPath{Points: reversed}.signedArea())
}
