package polar

type Align string

const (
	AlignStart  Align = "start"
	AlignMiddle Align = "middle"
	AlignEnd    Align = "end"
)

const (
	LabelRadius = MaxPetalRadius + 44

	DetailsInnerRadius = MaxPetalRadius + 14
	DetailsOuterRadius = MaxPetalRadius + 26

	ButtonRadius = 9.0
	buttonGap    = 3.0

	pillCharWidth = 6.0
	pillPadding   = 8.0
	pillHeight    = 30.0
)

// LabelOffset nudges one label away from the middle of its segment.
type LabelOffset struct {
	AngleDeg float64
	Radius   float64
}

// LabelOffsets is hand-tuned per display slot: centered placement collides
// with the increment buttons of neighbouring segments for these slots. Slots
// without an entry use the plain segment midpoint.
var LabelOffsets = map[int]LabelOffset{
	0: {AngleDeg: -4, Radius: 6},
	1: {AngleDeg: 2, Radius: 4},
	2: {AngleDeg: 0, Radius: 10},
	4: {AngleDeg: 6, Radius: 8},
	5: {AngleDeg: -6, Radius: 8},
	7: {AngleDeg: 0, Radius: 10},
	8: {AngleDeg: -2, Radius: 4},
	9: {AngleDeg: 4, Radius: 6},
}

type Anchor struct {
	Point Point
	Align Align
}

// LabelAnchor places the label pill for slot index. It depends only on the
// slot, never on the level.
func LabelAnchor(index, n int) Anchor {
	angle := MidAngle(index, n)
	radius := LabelRadius
	if off, ok := LabelOffsets[index]; ok {
		angle += off.AngleDeg
		radius += off.Radius
	}
	pt := PointAt(radius, angle)
	align := AlignMiddle
	switch {
	case pt.X > CenterX+12:
		align = AlignStart
	case pt.X < CenterX-12:
		align = AlignEnd
	}
	return Anchor{Point: pt, Align: align}
}

// PillRect is the chip behind a label whose longest line has chars runes.
func PillRect(a Anchor, chars int) Rect {
	w := float64(chars)*pillCharWidth + 2*pillPadding
	x := a.Point.X - w/2
	switch a.Align {
	case AlignStart:
		x = a.Point.X - pillPadding
	case AlignEnd:
		x = a.Point.X - w + pillPadding
	}
	return Rect{X: x, Y: a.Point.Y - pillHeight/2, W: w, H: pillHeight}
}

// Segment is everything drawn for one category slot.
type Segment struct {
	Index      int
	Start      float64
	End        float64
	Radius     float64
	Background Path
	Foreground Path
	Label      Anchor
}

func BuildSegment(index, n, level int, rounded bool) Segment {
	start, end := SegmentAngles(index, n)
	r := ForegroundRadius(level)
	return Segment{
		Index:      index,
		Start:      start,
		End:        end,
		Radius:     r,
		Background: Wedge(start, end, CenterRadius, MaxPetalRadius, rounded),
		Foreground: Wedge(start, end, CenterRadius, r, rounded),
		Label:      LabelAnchor(index, n),
	}
}

// Layout builds every segment from levels given in display order.
func Layout(levels []int, rounded bool) []Segment {
	out := make([]Segment, len(levels))
	for i, level := range levels {
		out[i] = BuildSegment(i, len(levels), level, rounded)
	}
	return out
}

// Circle is a round button.
type Circle struct {
	Center Point
	Radius float64
}

func (c Circle) Contains(pt Point) bool {
	dx := pt.X - c.Center.X
	dy := pt.Y - c.Center.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Controls are the affordances drawn only for the active segment.
type Controls struct {
	Increment Circle
	Decrement Circle
	Details   Path
}

// ControlsFor positions the increment button just past the foreground's
// outer edge, the decrement button against the inner edge and the
// details arc beyond the background wedge.
func ControlsFor(index, n, level int, rounded bool) Controls {
	start, end := SegmentAngles(index, n)
	mid := MidAngle(index, n)
	return Controls{
		Increment: Circle{Center: PointAt(ForegroundRadius(level)+ButtonRadius+buttonGap, mid), Radius: ButtonRadius},
		Decrement: Circle{Center: PointAt(CenterRadius+ButtonRadius, mid), Radius: ButtonRadius},
		Details:   Wedge(start, end, DetailsInnerRadius, DetailsOuterRadius, rounded),
	}
}
