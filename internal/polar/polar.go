// Package polar converts (category index, level) pairs into annular wedge
// outlines and anchor points, independent of how they are drawn.
//
// Angles are in degrees, measured clockwise from 12 o'clock. Coordinates are
// in a fixed view box with y growing downward, matching SVG.
package polar

import (
	"fmt"
	"math"

	"github.com/jbonatakis/skinwell/internal/severity"
)

// Chart dimensions in view box units.
const (
	ViewWidth  = 720.0
	ViewHeight = 560.0
	CenterX    = ViewWidth / 2
	CenterY    = ViewHeight / 2

	CenterRadius   = 36.0
	MaxPetalRadius = 150.0

	// GapDegrees is split evenly between the start and end of every segment.
	GapDegrees   = 2.0
	CornerRadius = 6.0

	MinLengthFraction = 0.15
	MaxLengthFraction = 0.92
)

// Point is a position in view box coordinates.
type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
}

// PointAt returns the point at radius r and angle deg around the chart center.
func PointAt(r, deg float64) Point {
	rad := (deg - 90) * math.Pi / 180
	return Point{X: CenterX + r*math.Cos(rad), Y: CenterY + r*math.Sin(rad)}
}

// ToPolar is the inverse of PointAt. The angle is normalized to [0,360).
func ToPolar(p Point) (r, deg float64) {
	dx := p.X - CenterX
	dy := p.Y - CenterY
	r = math.Hypot(dx, dy)
	deg = math.Atan2(dy, dx)*180/math.Pi + 90
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return r, deg
}

// SegmentAngleSpan is the angular width of one category slot. Every slot is
// equal; the registry must hold at least two categories.
func SegmentAngleSpan(n int) float64 {
	if n < 2 {
		panic(fmt.Sprintf("polar: category count %d not supported", n))
	}
	return 360 / float64(n)
}

// SegmentAngles returns the drawn start and end of slot index with half the
// gap trimmed from each side.
func SegmentAngles(index, n int) (start, end float64) {
	span := SegmentAngleSpan(n)
	if index < 0 || index >= n {
		panic(fmt.Sprintf("polar: segment index %d outside [0,%d)", index, n))
	}
	start = float64(index)*span + GapDegrees/2
	end = float64(index+1)*span - GapDegrees/2
	return start, end
}

func MidAngle(index, n int) float64 {
	span := SegmentAngleSpan(n)
	return (float64(index) + 0.5) * span
}

// LengthFraction interpolates the foreground length for a level. Level 0
// still yields a visible sliver.
func LengthFraction(level int) float64 {
	severity.MustLevel(level)
	if level == severity.MaxLevel {
		return MaxLengthFraction
	}
	return MinLengthFraction + float64(level)/float64(severity.MaxLevel)*(MaxLengthFraction-MinLengthFraction)
}

// ForegroundRadius is the outer radius of a level's colored wedge.
func ForegroundRadius(level int) float64 {
	return CenterRadius + (MaxPetalRadius-CenterRadius)*LengthFraction(level)
}
