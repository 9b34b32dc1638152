package polar

import "math"

// Wedge builds an annular sector between two angles and two radii. When
// rounded is set, each of the four corners is replaced by a quadratic
// fillet of CornerRadius, shrunk as needed so adjacent fillets never cross.
func Wedge(start, end, inner, outer float64, rounded bool) Path {
	var p Path
	c := 0.0
	if rounded {
		c = cornerRadiusFor(start, end, inner, outer)
	}
	if c <= 0 {
		p.moveTo(PointAt(outer, start))
		p.arcTo(outer, start, end)
		p.lineTo(PointAt(inner, end))
		if inner > 0 {
			p.arcTo(inner, end, start)
		}
		p.close()
		return p
	}

	outerDelta := c / outer * 180 / math.Pi
	innerDelta := c / inner * 180 / math.Pi

	p.moveTo(PointAt(outer, start+outerDelta))
	p.arcTo(outer, start+outerDelta, end-outerDelta)
	p.quadTo(PointAt(outer, end), PointAt(outer-c, end))
	p.lineTo(PointAt(inner+c, end))
	p.quadTo(PointAt(inner, end), PointAt(inner, end-innerDelta))
	p.arcTo(inner, end-innerDelta, start+innerDelta)
	p.quadTo(PointAt(inner, start), PointAt(inner+c, start))
	p.lineTo(PointAt(outer-c, start))
	p.quadTo(PointAt(outer, start), PointAt(outer, start+outerDelta))
	p.close()
	return p
}

func cornerRadiusFor(start, end, inner, outer float64) float64 {
	if inner <= 0 || outer <= inner {
		return 0
	}
	span := (end - start) * math.Pi / 180
	c := CornerRadius
	c = math.Min(c, (outer-inner)/2)
	c = math.Min(c, inner*span/2)
	c = math.Min(c, outer*span/2)
	return c
}
