package svgdraw

import "github.com/benoitkugler/svgtheme/svgicon"

// SubPath is a recorded sub-path: Points[0] is the start point,
// and each following triple is one cubic bezier segment.
type SubPath struct {
	Points  []svgicon.Point
	Closed  bool
	Winding Winding
}

// signedArea returns the area of the polygon through the segment
// end points, positive for a counter clockwise polygon in a y-up basis.
func (sp SubPath) signedArea() float64 {
	var area float64
	n := len(sp.Points)
	for i := 0; i < n; i += 3 {
		a, b := sp.Points[i], sp.Points[0]
		if i+3 < n {
			b = sp.Points[i+3]
		}
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// Oriented returns the points of sp, reversed if needed so that
// solids have a positive area and holes a negative one.
// The non-zero fill rule then renders the holes.
func (sp SubPath) Oriented() []svgicon.Point {
	area := sp.signedArea()
	if (sp.Winding == Solid) == (area >= 0) {
		return sp.Points
	}
	out := make([]svgicon.Point, len(sp.Points))
	for i, p := range sp.Points {
		out[len(out)-1-i] = p
	}
	return out
}

// PathRecorder implements the path building methods of Canvas,
// for backends which need the whole path before painting it.
type PathRecorder struct {
	Paths []SubPath
}

func (pr *PathRecorder) BeginPath() { pr.Paths = nil }

func (pr *PathRecorder) MoveTo(x, y float64) {
	pr.Paths = append(pr.Paths, SubPath{Points: []svgicon.Point{{X: x, Y: y}}})
}

// BezierTo starts a sub-path at (c1x, c1y) if needed.
func (pr *PathRecorder) BezierTo(c1x, c1y, c2x, c2y, x, y float64) {
	if len(pr.Paths) == 0 {
		pr.MoveTo(c1x, c1y)
	}
	last := &pr.Paths[len(pr.Paths)-1]
	last.Points = append(last.Points, svgicon.Point{X: c1x, Y: c1y}, svgicon.Point{X: c2x, Y: c2y}, svgicon.Point{X: x, Y: y})
}

func (pr *PathRecorder) ClosePath() {
	if len(pr.Paths) != 0 {
		pr.Paths[len(pr.Paths)-1].Closed = true
	}
}

func (pr *PathRecorder) PathWinding(w Winding) {
	if len(pr.Paths) != 0 {
		pr.Paths[len(pr.Paths)-1].Winding = w
	}
}

// Bounds returns the bounding box of the recorded path.
func (pr *PathRecorder) Bounds() svgicon.Rect {
	var r svgicon.Rect
	for _, sp := range pr.Paths {
		if len(sp.Points) == 0 {
			continue
		}
		r = r.Add(sp.Points[0])
		for i := 1; i+2 < len(sp.Points); i += 3 {
			r = r.Union(svgicon.CubicBounds(sp.Points[i-1], sp.Points[i], sp.Points[i+1], sp.Points[i+2]))
		}
	}
	return r
}
