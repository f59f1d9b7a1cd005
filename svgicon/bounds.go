package svgicon

import "math"

// exact bounding boxes of cubic bezier curves, found by
// evaluating the curve at its extrema

// Rect is an axis aligned box. The zero value is empty.
type Rect struct {
	Min, Max Point
	valid    bool
}

// NewRect returns the box spanning the two corners.
func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{Min: Point{minX, minY}, Max: Point{maxX, maxY}, valid: true}
}

// IsEmpty is true for a box holding no point.
func (r Rect) IsEmpty() bool { return !r.valid }

func (r Rect) W() float64 { return r.Max.X - r.Min.X }
func (r Rect) H() float64 { return r.Max.Y - r.Min.Y }

// Center returns the middle of the box.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Add extends r to contain p.
func (r Rect) Add(p Point) Rect {
	if !r.valid {
		return Rect{Min: p, Max: p, valid: true}
	}
	r.Min.X = math.Min(r.Min.X, p.X)
	r.Min.Y = math.Min(r.Min.Y, p.Y)
	r.Max.X = math.Max(r.Max.X, p.X)
	r.Max.Y = math.Max(r.Max.Y, p.Y)
	return r
}

// Union returns the smallest box containing r and o.
func (r Rect) Union(o Rect) Rect {
	if !o.valid {
		return r
	}
	return r.Add(o.Min).Add(o.Max)
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// coefficients of the derivative, as at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		// bt + c: a simple line
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// CubicBounds returns the exact bounding box of the
// cubic curve p0, c1, c2, p3.
func CubicBounds(p0, c1, c2, p3 Point) Rect {
	r := NewRect(p0.X, p0.Y, p0.X, p0.Y).Add(p3)
	aX, bX, cX := cubicDerivative(p0.X, c1.X, c2.X, p3.X)
	aY, bY, cY := cubicDerivative(p0.Y, c1.Y, c2.Y, p3.Y)
	for _, t := range append(quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)...) {
		// filter invalid value
		if !(0 < t && t < 1) {
			continue
		}
		r = r.Add(Point{
			X: bezierSpline(p0.X, c1.X, c2.X, p3.X, t),
			Y: bezierSpline(p0.Y, c1.Y, c2.Y, p3.Y, t),
		})
	}
	return r
}

func (p *SubPath) computeBounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	r := NewRect(p.Points[0].X, p.Points[0].Y, p.Points[0].X, p.Points[0].Y)
	for i := 0; i+3 < len(p.Points); i += 3 {
		r = r.Union(CubicBounds(p.Points[i], p.Points[i+1], p.Points[i+2], p.Points[i+3]))
	}
	return r
}
