package surface

import (
	"github.com/jbonatakis/skinwell/internal/polar"
)

type HitKind int

const (
	HitNone HitKind = iota
	HitBackground
	HitSegment
	HitLabel
	HitIncrement
	HitDecrement
	HitDetails
)

func (k HitKind) String() string {
	switch k {
	case HitBackground:
		return "background"
	case HitSegment:
		return "segment"
	case HitLabel:
		return "label"
	case HitIncrement:
		return "increment"
	case HitDecrement:
		return "decrement"
	case HitDetails:
		return "details"
	default:
		return "none"
	}
}

type Hit struct {
	Kind       HitKind
	CategoryID string
}

// HitTest resolves a point to the single topmost target. Controls of the
// active segment sit above labels, labels above wedges, and the chart
// background only receives points nothing else claims.
func (sc Scene) HitTest(pt polar.Point) Hit {
	if c := sc.Controls; c != nil {
		if c.Geometry.Increment.Contains(pt) {
			return Hit{Kind: HitIncrement, CategoryID: c.CategoryID}
		}
		if c.Geometry.Decrement.Contains(pt) {
			return Hit{Kind: HitDecrement, CategoryID: c.CategoryID}
		}
		if polar.Contains(c.Geometry.Details.Outline(), pt) {
			return Hit{Kind: HitDetails, CategoryID: c.CategoryID}
		}
	}
	for _, seg := range sc.Segments {
		if seg.Pill.Contains(pt) {
			return Hit{Kind: HitLabel, CategoryID: seg.Category.ID}
		}
	}
	for _, seg := range sc.Segments {
		if polar.Contains(seg.Geometry.Foreground.Outline(), pt) ||
			polar.Contains(seg.Geometry.Background.Outline(), pt) {
			return Hit{Kind: HitSegment, CategoryID: seg.Category.ID}
		}
	}
	if pt.X >= 0 && pt.X <= polar.ViewWidth && pt.Y >= 0 && pt.Y <= polar.ViewHeight {
		return Hit{Kind: HitBackground}
	}
	return Hit{}
}

// Click dispatches a pointer press. Each target handles the press itself and
// nothing falls through to the background, so a segment click never also
// clears the selection it just made.
func (s *Surface) Click(pt polar.Point) (Hit, Event) {
	hit := s.Scene().HitTest(pt)
	switch hit.Kind {
	case HitSegment, HitLabel:
		return hit, s.Select(hit.CategoryID)
	case HitIncrement:
		return hit, s.Adjust(hit.CategoryID, 1)
	case HitDecrement:
		return hit, s.Adjust(hit.CategoryID, -1)
	case HitDetails:
		return hit, Event{Kind: EventOpenDetails, CategoryID: hit.CategoryID}
	case HitBackground:
		return hit, s.Deselect()
	}
	return hit, Event{}
}
