package svgdraw

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgtheme/svgicon"
	"github.com/benoitkugler/svgtheme/themecache"
)

func loadKnob(t *testing.T) (*themecache.Cache, *svgicon.Icon) {
	t.Helper()
	cache := themecache.New()
	icon := cache.Image(filepath.Join("testdata", "knob.svg"))
	require.NotNil(t, icon)
	return cache, icon
}

func TestForEachPrefixed(t *testing.T) {
	cache, icon := loadKnob(t)

	var ids []string
	var indices []int
	ForEachPrefixed(cache, icon, "mark", func(i int, shape *svgicon.Shape) {
		indices = append(indices, i)
		ids = append(ids, shape.ID)
	})
	assert.Equal(t, []string{"mark--min", "mark--max"}, ids)
	assert.Equal(t, []int{0, 1}, indices)

	// the class is not part of the match
	called := false
	ForEachPrefixed(cache, icon, "body", func(int, *svgicon.Shape) { called = true })
	assert.False(t, called)

	ForEachPrefixed(cache, nil, "", func(int, *svgicon.Shape) { called = true })
	assert.False(t, called)
}

func TestForEachMatched(t *testing.T) {
	cache, icon := loadKnob(t)

	var captures [][]string
	ForEachMatched(cache, icon, regexp.MustCompile(`^(r|k)(\w+)$`), func(c []string, _ *svgicon.Shape) {
		captures = append(captures, c)
	})
	assert.Equal(t, [][]string{{"r", "ing"}, {"k", "nob"}}, captures)

	n := 0
	ForEachMatched(cache, icon, regexp.MustCompile(`o`), func(c []string, _ *svgicon.Shape) {
		assert.Empty(t, c)
		n++
	})
	assert.Equal(t, 2, n) // knob and pointer
}

func TestFindNamed(t *testing.T) {
	cache, icon := loadKnob(t)

	pointer, ok := FindNamed(cache, icon, "pointer")
	require.True(t, ok)
	center := Center(pointer)
	assert.InDelta(t, 32, center.X, 1e-9)
	assert.InDelta(t, 21, center.Y, 1e-9)
	box := Bounds(pointer)
	assert.InDelta(t, 4, box.W(), 1e-9)
	assert.InDelta(t, 14, box.H(), 1e-9)

	// the last match wins
	mark, ok := FindNamed(cache, icon, "mark")
	require.True(t, ok)
	assert.Equal(t, "mark--max", mark.ID)

	_, ok = FindNamed(cache, icon, "missing")
	assert.False(t, ok)
	_, ok = FindNamed(cache, nil, "pointer")
	assert.False(t, ok)
}
