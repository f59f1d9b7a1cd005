package svgdraw

import (
	"regexp"
	"strings"

	"github.com/benoitkugler/svgtheme/svgicon"
	"github.com/benoitkugler/svgtheme/themecache"
)

// shape lookups by element id, the part of the id before
// the class separator, used to place widgets on a panel

// ForEachPrefixed calls fn for the shapes whose element id starts
// with prefix, in document order. i counts the matched shapes.
func ForEachPrefixed(cache *themecache.Cache, icon *svgicon.Icon, prefix string, fn func(i int, shape *svgicon.Shape)) {
	if icon == nil {
		return
	}
	i := 0
	for _, shape := range icon.Shapes {
		if strings.HasPrefix(cache.ShapeID(shape), prefix) {
			fn(i, shape)
			i++
		}
	}
}

// ForEachMatched calls fn for the shapes whose element id matches re,
// with the submatches of the leftmost match.
func ForEachMatched(cache *themecache.Cache, icon *svgicon.Icon, re *regexp.Regexp, fn func(captures []string, shape *svgicon.Shape)) {
	if icon == nil || re == nil {
		return
	}
	for _, shape := range icon.Shapes {
		match := re.FindStringSubmatch(cache.ShapeID(shape))
		if match == nil {
			continue
		}
		fn(match[1:], shape)
	}
}

// FindNamed returns the last shape whose element id is name.
func FindNamed(cache *themecache.Cache, icon *svgicon.Icon, name string) (*svgicon.Shape, bool) {
	if icon == nil {
		return nil, false
	}
	var found *svgicon.Shape
	for _, shape := range icon.Shapes {
		if cache.ShapeID(shape) == name {
			found = shape
		}
	}
	return found, found != nil
}

// Bounds returns the bounding box of shape, in user space.
func Bounds(shape *svgicon.Shape) svgicon.Rect { return shape.Bounds }

// Center returns the middle of the bounding box of shape.
func Center(shape *svgicon.Shape) svgicon.Point { return shape.Bounds.Center() }
