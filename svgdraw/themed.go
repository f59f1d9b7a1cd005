package svgdraw

import (
	"github.com/benoitkugler/svgtheme/svgicon"
	"github.com/benoitkugler/svgtheme/theme"
)

// ThemedImage pairs an image with the theme it is drawn with.
// Both may be nil. Two values are equal when they hold the
// same pointers.
type ThemedImage struct {
	Image *svgicon.Icon
	Theme *theme.Theme
}

// Valid is true when both the image and the theme are set.
func (ti ThemedImage) Valid() bool { return ti.Image != nil && ti.Theme != nil }

func (ti ThemedImage) WithImage(img *svgicon.Icon) ThemedImage {
	ti.Image = img
	return ti
}

func (ti ThemedImage) WithTheme(th *theme.Theme) ThemedImage {
	ti.Theme = th
	return ti
}

// Size returns the image dimensions, or zero without image.
func (ti ThemedImage) Size() svgicon.Point {
	if ti.Image == nil {
		return svgicon.Point{}
	}
	return svgicon.Point{X: ti.Image.Width, Y: ti.Image.Height}
}

func (ti ThemedImage) NumShapes() int {
	if ti.Image == nil {
		return 0
	}
	return len(ti.Image.Shapes)
}

func (ti ThemedImage) NumPaths() int {
	if ti.Image == nil {
		return 0
	}
	return ti.Image.NumPaths()
}

func (ti ThemedImage) NumPoints() int {
	if ti.Image == nil {
		return 0
	}
	return ti.Image.NumPoints()
}
