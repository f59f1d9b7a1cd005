package svgicon

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var black = color.NRGBA{A: 0xff}

// optionnalColor is either none (nil) or a color.
type optionnalColor struct {
	set   bool
	color color.NRGBA
}

// parseSVGColor parses an SVG color string in all forms
// including all SVG1.1 names, obtained from the colornames package
func parseSVGColor(colorStr string) (optionnalColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch v {
	case "none", "transparent":
		// the function (fill or stroke) is off,
		// not the same as black
		return optionnalColor{}, nil
	case "":
		return optionnalColor{}, errParamMismatch
	}
	if cn, ok := colornames.Map[v]; ok {
		return optionnalColor{set: true, color: color.NRGBA{R: cn.R, G: cn.G, B: cn.B, A: cn.A}}, nil
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		vals := strings.Split(v[4:len(v)-1], ",")
		if len(vals) != 3 {
			return optionnalColor{}, errParamMismatch
		}
		var cvals [3]uint8
		for i := range cvals {
			c, err := parseColorValue(vals[i])
			if err != nil {
				return optionnalColor{}, err
			}
			cvals[i] = c
		}
		return optionnalColor{set: true, color: color.NRGBA{R: cvals[0], G: cvals[1], B: cvals[2], A: 0xff}}, nil
	}
	if v[0] == '#' {
		r, g, b, err := parseSVGColorNum(v)
		if err != nil {
			return optionnalColor{}, err
		}
		return optionnalColor{set: true, color: color.NRGBA{R: r, G: g, B: b, A: 0xff}}, nil
	}
	return optionnalColor{}, fmt.Errorf("unsupported color %q: %w", colorStr, errParamMismatch)
}

// parseSVGColorNum reads the SVG color string e.g. #FBD9BD.
// Three digits forms duplicate each digit.
func parseSVGColorNum(colorStr string) (r, g, b uint8, err error) {
	colorStr = strings.TrimPrefix(colorStr, "#")
	switch len(colorStr) {
	case 3:
		colorStr = string([]byte{colorStr[0], colorStr[0],
			colorStr[1], colorStr[1], colorStr[2], colorStr[2]})
	case 6:
	default:
		return 0, 0, 0, errParamMismatch
	}
	for _, v := range []struct {
		c *uint8
		s string
	}{
		{&r, colorStr[0:2]},
		{&g, colorStr[2:4]},
		{&b, colorStr[4:6]},
	} {
		t, err := strconv.ParseUint(v.s, 16, 8)
		if err != nil {
			return 0, 0, 0, err
		}
		*v.c = uint8(t)
	}
	return r, g, b, nil
}

func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		n, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		if err != nil {
			return 0, err
		}
		return clampByte(n * 0xFF / 100), nil
	}
	n, err := strconv.ParseFloat(v, 64)
	return clampByte(n), err
}

func clampByte(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f + 0.5)
}

// withOpacity scales the alpha of c.
func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = clampByte(float64(c.A) * opacity)
	return c
}

func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = strconv.ParseFloat(v, 64)
	f /= d
	return
}

// units of length, in pixels (96 dpi)
var unitSizes = map[string]float64{
	"px": 1,
	"pt": 96. / 72,
	"pc": 96. / 6,
	"mm": 96. / 25.4,
	"cm": 96. / 2.54,
	"in": 96,
	"em": 16, // default font size
	"ex": 8,
}

// percentage reference for lengths
type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// parseUnit converts a length to pixels. Percentages are
// relative to the current view box.
func (c *iconCursor) parseUnit(s string, ref percentageReference) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
		if err != nil {
			return 0, err
		}
		vb := c.icon.ViewBox
		var length float64
		switch ref {
		case widthPercentage:
			length = vb.W
		case heightPercentage:
			length = vb.H
		case diagPercentage:
			length = diagonal(vb.W, vb.H)
		}
		return f / 100 * length, nil
	}
	return parseBasicFloat(s)
}

func diagonal(w, h float64) float64 {
	return math.Sqrt(w*w+h*h) / math.Sqrt2
}

// parseBasicFloat parses a length with an optional absolute unit.
func parseBasicFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	factor := 1.
	if len(s) > 2 {
		if size, ok := unitSizes[s[len(s)-2:]]; ok {
			factor = size
			s = s[:len(s)-2]
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	return f * factor, err
}
