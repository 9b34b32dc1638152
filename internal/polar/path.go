package polar

import (
	"fmt"
	"math"
	"strings"
)

// SegmentKind is the drawing instruction a PathSegment carries.
type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	ArcTo
	QuadTo
	ClosePath
)

// PathSegment is one drawing instruction. Arcs are always centered on the
// chart center and run from FromDeg to ToDeg at Radius.
type PathSegment struct {
	Kind    SegmentKind
	To      Point
	Control Point
	Radius  float64
	FromDeg float64
	ToDeg   float64
}

// Path is an outline built from PathSegments.
type Path struct {
	Segments []PathSegment
}

func (p *Path) moveTo(pt Point) {
	p.Segments = append(p.Segments, PathSegment{Kind: MoveTo, To: pt})
}

func (p *Path) lineTo(pt Point) {
	p.Segments = append(p.Segments, PathSegment{Kind: LineTo, To: pt})
}

func (p *Path) arcTo(r, from, to float64) {
	p.Segments = append(p.Segments, PathSegment{Kind: ArcTo, To: PointAt(r, to), Radius: r, FromDeg: from, ToDeg: to})
}

func (p *Path) quadTo(ctrl, pt Point) {
	p.Segments = append(p.Segments, PathSegment{Kind: QuadTo, To: pt, Control: ctrl})
}

func (p *Path) close() {
	p.Segments = append(p.Segments, PathSegment{Kind: ClosePath})
}

// SVG renders the path as the value of an SVG path "d" attribute.
func (p Path) SVG() string {
	var b strings.Builder
	for i, s := range p.Segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch s.Kind {
		case MoveTo:
			fmt.Fprintf(&b, "M%.2f %.2f", s.To.X, s.To.Y)
		case LineTo:
			fmt.Fprintf(&b, "L%.2f %.2f", s.To.X, s.To.Y)
		case ArcTo:
			large := 0
			if math.Abs(s.ToDeg-s.FromDeg) > 180 {
				large = 1
			}
			sweep := 0
			if s.ToDeg > s.FromDeg {
				sweep = 1
			}
			fmt.Fprintf(&b, "A%.2f %.2f 0 %d %d %.2f %.2f", s.Radius, s.Radius, large, sweep, s.To.X, s.To.Y)
		case QuadTo:
			fmt.Fprintf(&b, "Q%.2f %.2f %.2f %.2f", s.Control.X, s.Control.Y, s.To.X, s.To.Y)
		case ClosePath:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

const (
	arcStepDegrees = 1.5
	quadSamples    = 6
)

// Outline flattens the path into a closed polygon. Arcs are sampled every
// arcStepDegrees and fillet curves at quadSamples points.
func (p Path) Outline() []Point {
	var pts []Point
	var cur Point
	for _, s := range p.Segments {
		switch s.Kind {
		case MoveTo, LineTo:
			pts = append(pts, s.To)
			cur = s.To
		case ArcTo:
			steps := int(math.Ceil(math.Abs(s.ToDeg-s.FromDeg) / arcStepDegrees))
			if steps < 1 {
				steps = 1
			}
			for i := 1; i <= steps; i++ {
				deg := s.FromDeg + (s.ToDeg-s.FromDeg)*float64(i)/float64(steps)
				pts = append(pts, PointAt(s.Radius, deg))
			}
			cur = s.To
		case QuadTo:
			for i := 1; i <= quadSamples; i++ {
				t := float64(i) / quadSamples
				u := 1 - t
				pts = append(pts, Point{
					X: u*u*cur.X + 2*u*t*s.Control.X + t*t*s.To.X,
					Y: u*u*cur.Y + 2*u*t*s.Control.Y + t*t*s.To.Y,
				})
			}
			cur = s.To
		}
	}
	return pts
}

// Contains reports whether pt lies inside the polygon (even-odd rule).
func Contains(poly []Point, pt Point) bool {
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		a, b := poly[i], poly[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Rect is an axis-aligned box in view box coordinates.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X && pt.X <= r.X+r.W && pt.Y >= r.Y && pt.Y <= r.Y+r.H
}
