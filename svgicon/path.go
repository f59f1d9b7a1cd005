package svgicon

import (
	"fmt"
	"math"
	"strconv"
	"unicode"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// pathBuilder accumulates sub-paths, converting every segment
// to the cubic form. It implements rasterx.Adder so that the
// rasterx shape helpers can feed it.
type pathBuilder struct {
	paths   []*SubPath
	current *SubPath
}

var _ rasterx.Adder = (*pathBuilder)(nil)

func fixedToPoint(a fixed.Point26_6) Point {
	return Point{X: float64(a.X) / 64, Y: float64(a.Y) / 64}
}

func (b *pathBuilder) last() Point {
	pts := b.current.Points
	return pts[len(pts)-1]
}

func (b *pathBuilder) moveTo(p Point) {
	b.stop(false)
	b.current = &SubPath{Points: []Point{p}}
}

// ensure starts a sub-path at the end of the previous one,
// for segments following a close without a move.
func (b *pathBuilder) ensure(at Point) {
	if b.current == nil {
		b.current = &SubPath{Points: []Point{at}}
	}
}

func (b *pathBuilder) lineTo(p Point) {
	a := b.last()
	dx, dy := p.X-a.X, p.Y-a.Y
	b.current.Points = append(b.current.Points,
		Point{a.X + dx/3, a.Y + dy/3},
		Point{p.X - dx/3, p.Y - dy/3},
		p)
}

func (b *pathBuilder) cubicTo(c1, c2, p Point) {
	b.current.Points = append(b.current.Points, c1, c2, p)
}

// quadTo elevates the quadratic curve to a cubic one.
func (b *pathBuilder) quadTo(c, p Point) {
	a := b.last()
	c1 := Point{a.X + 2./3*(c.X-a.X), a.Y + 2./3*(c.Y-a.Y)}
	c2 := Point{p.X + 2./3*(c.X-p.X), p.Y + 2./3*(c.Y-p.Y)}
	b.cubicTo(c1, c2, p)
}

// stop ends the current sub-path, adding the closing
// segment when needed. Lone points are dropped.
func (b *pathBuilder) stop(closed bool) {
	if b.current == nil {
		return
	}
	if closed {
		if first := b.current.Points[0]; b.last() != first {
			b.lineTo(first)
		}
		b.current.Closed = true
	}
	if len(b.current.Points) >= 4 {
		b.paths = append(b.paths, b.current)
	}
	b.current = nil
}

// rasterx.Adder implementation

func (b *pathBuilder) Start(a fixed.Point26_6) { b.moveTo(fixedToPoint(a)) }
func (b *pathBuilder) Line(a fixed.Point26_6)  { b.lineTo(fixedToPoint(a)) }
func (b *pathBuilder) QuadBezier(c, d fixed.Point26_6) {
	b.quadTo(fixedToPoint(c), fixedToPoint(d))
}
func (b *pathBuilder) CubeBezier(c, d, e fixed.Point26_6) {
	b.cubicTo(fixedToPoint(c), fixedToPoint(d), fixedToPoint(e))
}
func (b *pathBuilder) Stop(closeLoop bool) { b.stop(closeLoop) }

// pathCursor parses the path data and number lists of SVG attributes.
type pathCursor struct {
	pathBuilder
	points            []float64
	lastKey           byte
	cntlPtX, cntlPtY  float64 // reflected control point for S, T
	placeX, placeY    float64 // current point
	curX, curY        float64 // offset of <use> elements
	inPath            bool
	startX, startY    float64 // start of the current sub-path
}

// scanNumber reads one number at the start of s, returning
// the number of bytes consumed, or 0 if there is none.
func scanNumber(s string) (f float64, n int, err error) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && '0' <= s[i] && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, 0, nil
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && '0' <= s[k] && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	f, err = strconv.ParseFloat(s[:i], 64)
	return f, i, err
}

func isSeparator(r byte) bool {
	return r == ',' || unicode.IsSpace(rune(r))
}

// getPoints reads the numbers of dataPoints into c.points.
func (c *pathCursor) getPoints(dataPoints string) error {
	c.points = c.points[:0]
	s := dataPoints
	for len(s) > 0 {
		if isSeparator(s[0]) {
			s = s[1:]
			continue
		}
		f, n, err := scanNumber(s)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("invalid number list %q", dataPoints)
		}
		c.points = append(c.points, f)
		s = s[n:]
	}
	return nil
}

// commandArgs is the number of arguments of each path command
var commandArgs = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

// compilePath translates the svgPath description string into cubic sub-paths.
func (c *pathCursor) compilePath(svgPath string) error {
	c.init()
	s := svgPath
	var key byte
	for {
		for len(s) > 0 && isSeparator(s[0]) {
			s = s[1:]
		}
		if len(s) == 0 {
			break
		}
		if r := s[0]; unicode.IsLetter(rune(r)) {
			if _, ok := commandArgs[upper(r)]; !ok {
				return fmt.Errorf("unknown path command %q", r)
			}
			key = r
			s = s[1:]
		} else if key == 0 {
			return fmt.Errorf("path data must start with a command: %q", svgPath)
		}

		nargs := commandArgs[upper(key)]
		c.points = c.points[:0]
		for len(c.points) < nargs {
			for len(s) > 0 && isSeparator(s[0]) {
				s = s[1:]
			}
			// arc flags may be written without separators
			if upper(key) == 'A' && (len(c.points) == 3 || len(c.points) == 4) && len(s) > 0 && (s[0] == '0' || s[0] == '1') {
				c.points = append(c.points, float64(s[0]-'0'))
				s = s[1:]
				continue
			}
			f, n, err := scanNumber(s)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("path command %q: %w", key, errParamMismatch)
			}
			c.points = append(c.points, f)
			s = s[n:]
		}
		if err := c.addSeg(key); err != nil {
			return err
		}
		// implicit commands after a move are lines
		switch key {
		case 'M':
			key = 'L'
		case 'm':
			key = 'l'
		case 'Z', 'z':
			key = 0
		}
	}
	c.pathBuilder.stop(false)
	return nil
}

func upper(r byte) byte {
	if 'a' <= r && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func (c *pathCursor) init() {
	c.placeX, c.placeY = 0, 0
	c.points = c.points[:0]
	c.lastKey = ' '
	c.inPath = false
}

// reflectControl returns the control point reflected about the current
// point, if the previous command matches the given kind.
func (c *pathCursor) reflectControl(cubic bool) (x, y float64) {
	switch upper(c.lastKey) {
	case 'C', 'S':
		if cubic {
			return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
		}
	case 'Q', 'T':
		if !cubic {
			return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
		}
	}
	return c.placeX, c.placeY
}

func (c *pathCursor) pt(x, y float64) Point { return Point{X: x + c.curX, Y: y + c.curY} }

// addSeg decodes one path command, whose arguments are in c.points.
func (c *pathCursor) addSeg(key byte) error {
	rel := key >= 'a' && key <= 'z'
	var ox, oy float64
	if rel {
		ox, oy = c.placeX, c.placeY
	}
	p := c.points
	if upper(key) != 'M' && upper(key) != 'Z' {
		c.ensure(c.pt(c.placeX, c.placeY))
	}
	switch upper(key) {
	case 'M':
		c.placeX, c.placeY = p[0]+ox, p[1]+oy
		c.startX, c.startY = c.placeX, c.placeY
		c.moveTo(c.pt(c.placeX, c.placeY))
		c.inPath = true
	case 'Z':
		c.pathBuilder.stop(true)
		c.placeX, c.placeY = c.startX, c.startY
	case 'L':
		c.placeX, c.placeY = p[0]+ox, p[1]+oy
		c.lineTo(c.pt(c.placeX, c.placeY))
	case 'H':
		c.placeX = p[0] + ox
		c.lineTo(c.pt(c.placeX, c.placeY))
	case 'V':
		c.placeY = p[0] + oy
		c.lineTo(c.pt(c.placeX, c.placeY))
	case 'C':
		c.cntlPtX, c.cntlPtY = p[2]+ox, p[3]+oy
		c.cubicTo(c.pt(p[0]+ox, p[1]+oy), c.pt(c.cntlPtX, c.cntlPtY), c.pt(p[4]+ox, p[5]+oy))
		c.placeX, c.placeY = p[4]+ox, p[5]+oy
	case 'S':
		x1, y1 := c.reflectControl(true)
		c.cntlPtX, c.cntlPtY = p[0]+ox, p[1]+oy
		c.cubicTo(c.pt(x1, y1), c.pt(c.cntlPtX, c.cntlPtY), c.pt(p[2]+ox, p[3]+oy))
		c.placeX, c.placeY = p[2]+ox, p[3]+oy
	case 'Q':
		c.cntlPtX, c.cntlPtY = p[0]+ox, p[1]+oy
		c.quadTo(c.pt(c.cntlPtX, c.cntlPtY), c.pt(p[2]+ox, p[3]+oy))
		c.placeX, c.placeY = p[2]+ox, p[3]+oy
	case 'T':
		c.cntlPtX, c.cntlPtY = c.reflectControl(false)
		c.quadTo(c.pt(c.cntlPtX, c.cntlPtY), c.pt(p[0]+ox, p[1]+oy))
		c.placeX, c.placeY = p[0]+ox, p[1]+oy
	case 'A':
		c.arcTo(p[0], p[1], p[2], p[3] != 0, p[4] != 0, p[5]+ox, p[6]+oy)
	}
	c.lastKey = key
	return nil
}

// arcTo approximates an elliptical arc ending at (x, y).
func (c *pathCursor) arcTo(rx, ry, rot float64, largeArc, sweep bool, x, y float64) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if (c.placeX == x && c.placeY == y) || rx == 0 || ry == 0 {
		// degenerate arcs are lines
		c.placeX, c.placeY = x, y
		c.lineTo(c.pt(x, y))
		return
	}
	cx, cy := rasterx.FindEllipseCenter(&rx, &ry, rot*math.Pi/180, c.placeX, c.placeY, x, y, sweep, !largeArc)
	var la, sw float64
	if largeArc {
		la = 1
	}
	if sweep {
		sw = 1
	}
	points := []float64{rx, ry, rot, la, sw, x + c.curX, y + c.curY}
	rasterx.AddArc(points, cx+c.curX, cy+c.curY, c.placeX+c.curX, c.placeY+c.curY, &c.pathBuilder)
	c.placeX, c.placeY = x, y
}
