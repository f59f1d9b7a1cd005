package svgicon

import (
	"encoding/xml"
	"errors"
	"strings"

	"github.com/srwiley/rasterx"
)

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	drawFuncs["use"] = useF
}

type svgFunc func(c *iconCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":            svgF,
	"g":              gF,
	"line":           lineF,
	"stop":           stopF,
	"rect":           rectF,
	"circle":         circleF,
	"ellipse":        circleF, //circleF handles ellipse also
	"polyline":       polylineF,
	"polygon":        polygonF,
	"path":           pathF,
	"desc":           descF,
	"defs":           defsF,
	"title":          titleF,
	"linearGradient": linearGradientF,
	"radialGradient": radialGradientF,
}

func svgF(c *iconCursor, attrs []xml.Attr) error {
	c.icon.ViewBox = Bounds{}
	var width, height float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			err = c.getPoints(attr.Value)
			if len(c.points) != 4 {
				return errParamMismatch
			}
			c.icon.ViewBox.X = c.points[0]
			c.icon.ViewBox.Y = c.points[1]
			c.icon.ViewBox.W = c.points[2]
			c.icon.ViewBox.H = c.points[3]
		case "width":
			// percentages are relative to an unknown viewport
			if !strings.HasSuffix(attr.Value, "%") {
				width, err = parseBasicFloat(attr.Value)
			}
		case "height":
			if !strings.HasSuffix(attr.Value, "%") {
				height, err = parseBasicFloat(attr.Value)
			}
		case "preserveAspectRatio":
			c.aspect = readAspectRatio(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.icon.Width, c.icon.Height = width, height
	if c.icon.ViewBox.W == 0 {
		c.icon.ViewBox.W = width
	}
	if c.icon.ViewBox.H == 0 {
		c.icon.ViewBox.H = height
	}
	return nil
}
func gF(*iconCursor, []xml.Attr) error { return nil } // g does nothing but push the style
func rectF(c *iconCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	var setRx, setRy bool
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		case "width":
			w, err = c.parseUnit(attr.Value, widthPercentage)
		case "height":
			h, err = c.parseUnit(attr.Value, heightPercentage)
		case "rx":
			setRx = true
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			setRy = true
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if w == 0 || h == 0 {
		return nil
	}
	// a single radius applies to both axis
	if setRx && !setRy {
		ry = rx
	} else if setRy && !setRx {
		rx = ry
	}
	x, y = x+c.curX, y+c.curY
	rasterx.AddRoundRect(x, y, x+w, y+h, rx, ry, 0, rasterx.RoundGap, &c.pathBuilder)
	return nil
}
func circleF(c *iconCursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = c.parseUnit(attr.Value, widthPercentage)
		case "cy":
			cy, err = c.parseUnit(attr.Value, heightPercentage)
		case "r":
			rx, err = c.parseUnit(attr.Value, diagPercentage)
			ry = rx
		case "rx":
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	rasterx.AddEllipse(cx+c.curX, cy+c.curY, rx, ry, 0, &c.pathBuilder)
	return nil
}
func lineF(c *iconCursor, attrs []xml.Attr) error {
	var x1, x2, y1, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = c.parseUnit(attr.Value, widthPercentage)
		case "x2":
			x2, err = c.parseUnit(attr.Value, widthPercentage)
		case "y1":
			y1, err = c.parseUnit(attr.Value, heightPercentage)
		case "y2":
			y2, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	c.moveTo(c.pt(x1, y1))
	c.lineTo(c.pt(x2, y2))
	return nil
}
func polylineF(c *iconCursor, attrs []xml.Attr) error {
	var err error
	c.points = c.points[:0]
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "points":
			err = c.getPoints(attr.Value)
			if len(c.points)%2 != 0 {
				return errors.New("polygon has odd number of points")
			}
		}
		if err != nil {
			return err
		}
	}
	if len(c.points) >= 4 {
		c.moveTo(c.pt(c.points[0], c.points[1]))
		for i := 2; i < len(c.points)-1; i += 2 {
			c.lineTo(c.pt(c.points[i], c.points[i+1]))
		}
	}
	return nil
}
func polygonF(c *iconCursor, attrs []xml.Attr) error {
	err := polylineF(c, attrs)
	if len(c.points) >= 4 {
		c.pathBuilder.stop(true)
	}
	return err
}
func pathF(c *iconCursor, attrs []xml.Attr) error {
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "d":
			err = c.compilePath(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
func descF(c *iconCursor, attrs []xml.Attr) error {
	c.inDescText = true
	c.icon.Descriptions = append(c.icon.Descriptions, "")
	return nil
}
func titleF(c *iconCursor, attrs []xml.Attr) error {
	c.inTitleText = true
	c.icon.Titles = append(c.icon.Titles, "")
	return nil
}
func defsF(c *iconCursor, attrs []xml.Attr) error {
	c.inDefs = true
	return nil
}

// registerGradient stores the gradient being parsed under its id.
func (c *iconCursor) registerGradient(attrs []xml.Attr) error {
	c.inGrad = true
	id, ok := "", false
	for _, attr := range attrs {
		if attr.Name.Local == "id" {
			id, ok = attr.Value, true
		}
	}
	if ok && id == "" {
		return errZeroLengthID
	}
	if id != "" {
		c.icon.grads[id] = c.grad
	}
	return nil
}

func linearGradientF(c *iconCursor, attrs []xml.Attr) error {
	c.grad = newLinearGradient()
	if err := c.registerGradient(attrs); err != nil {
		return err
	}
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
		case "x1":
			c.grad.coords[gradX1], err = readCoord(attr.Value)
		case "y1":
			c.grad.coords[gradY1], err = readCoord(attr.Value)
		case "x2":
			c.grad.coords[gradX2], err = readCoord(attr.Value)
		case "y2":
			c.grad.coords[gradY2], err = readCoord(attr.Value)
		default:
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func radialGradientF(c *iconCursor, attrs []xml.Attr) error {
	c.grad = newRadialGradient()
	if err := c.registerGradient(attrs); err != nil {
		return err
	}
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
		case "cx":
			c.grad.coords[gradX1], err = readCoord(attr.Value)
		case "cy":
			c.grad.coords[gradY1], err = readCoord(attr.Value)
		case "r":
			c.grad.coords[gradX2], err = readCoord(attr.Value)
		case "fx":
			c.grad.setFx = true
			c.grad.coords[gradFx], err = readCoord(attr.Value)
		case "fy":
			c.grad.setFy = true
			c.grad.coords[gradFy], err = readCoord(attr.Value)
		default:
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func stopF(c *iconCursor, attrs []xml.Attr) error {
	if !c.inGrad {
		return nil
	}
	var pairs [][2]string
	for _, attr := range attrs {
		if attr.Name.Local == "style" {
			for _, decl := range strings.Split(attr.Value, ";") {
				if k, v, ok := strings.Cut(decl, ":"); ok {
					pairs = append(pairs, [2]string{strings.TrimSpace(k), strings.TrimSpace(v)})
				}
			}
			continue
		}
		pairs = append(pairs, [2]string{attr.Name.Local, attr.Value})
	}
	stopColor := optionnalColor{set: true, color: black}
	opacity := 1.
	var (
		offset float64
		err    error
	)
	for _, kv := range pairs {
		switch kv[0] {
		case "offset":
			offset, err = readFraction(kv[1])
		case "stop-color":
			stopColor, err = parseSVGColor(kv[1])
		case "stop-opacity":
			opacity, err = readFraction(kv[1])
		}
		if err != nil {
			return err
		}
	}
	if offset < 0 {
		offset = 0
	} else if offset > 1 {
		offset = 1
	}
	// offsets never decrease
	if n := len(c.grad.stops); n > 0 && offset < c.grad.stops[n-1].Offset {
		offset = c.grad.stops[n-1].Offset
	}
	col := stopColor.color
	if !stopColor.set { // none
		col.A = 0
	}
	c.grad.stops = append(c.grad.stops, GradientStop{Offset: offset, Color: withOpacity(col, opacity)})
	c.grad.stopsFound = true
	return nil
}

func useF(c *iconCursor, attrs []xml.Attr) error {
	var (
		href string
		x, y float64
		err  error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "href":
			href = attr.Value
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	c.curX, c.curY = x, y
	defer func() {
		c.curX, c.curY = 0, 0
	}()
	if href == "" {
		return errors.New("only use tags with href is supported")
	}
	if !strings.HasPrefix(href, "#") {
		return errors.New("only the ID CSS selector is supported")
	}
	defs, ok := c.icon.defs[href[1:]]
	if !ok {
		return errors.New("href ID in use statement was not found in saved defs")
	}
	depth := len(c.styleStack)
	defer func() {
		// unbalanced groups in the definition
		c.styleStack = c.styleStack[:depth]
	}()
	for _, def := range defs {
		if def.Tag == "endg" {
			if len(c.styleStack) > depth {
				c.popStyle()
			}
			continue
		}
		if err = c.pushStyle(def.Attrs); err != nil {
			return err
		}
		if err = c.draw(def.Tag, def.Attrs); err != nil {
			return err
		}
		if def.Tag != "g" {
			c.popStyle()
		}
	}
	return nil
}
