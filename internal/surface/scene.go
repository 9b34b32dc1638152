package surface

import (
	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/polar"
	"github.com/jbonatakis/skinwell/internal/severity"
)

// SegmentView is one category slot ready to draw.
type SegmentView struct {
	Category category.Category
	Level    int
	// Fallback is set when no assessment was supplied and Level is NeutralLevel.
	Fallback bool
	Band     severity.Band
	Geometry polar.Segment
	Title    string
	Subtitle string
	Pill     polar.Rect
	Active   bool
}

// ControlsView holds the affordances of the active segment.
type ControlsView struct {
	CategoryID   string
	Geometry     polar.Controls
	CanIncrement bool
	CanDecrement bool
}

// Scene is a renderer-independent description of the chart.
type Scene struct {
	Segments []SegmentView
	Controls *ControlsView
	Rounded  bool
}

// LabelLines returns the two lines shown in a segment's label pill.
func LabelLines(c category.Category, level int) (string, string) {
	return c.Name, severity.Summary(level)
}

func pillChars(title, subtitle string) int {
	n := len([]rune(title))
	if m := len([]rune(subtitle)); m > n {
		n = m
	}
	return n
}

// Scene builds the drawable description from the current assessments and
// selection. Categories always appear in registry order.
func (s Surface) Scene() Scene {
	cats := category.Registry()
	levels, fallback := s.levels()
	segs := polar.Layout(levels, s.rounded)

	scene := Scene{Segments: make([]SegmentView, len(cats)), Rounded: s.rounded}
	for i, c := range cats {
		title, subtitle := LabelLines(c, levels[i])
		scene.Segments[i] = SegmentView{
			Category: c,
			Level:    levels[i],
			Fallback: fallback[i],
			Band:     severity.BandFor(levels[i]),
			Geometry: segs[i],
			Title:    title,
			Subtitle: subtitle,
			Pill:     polar.PillRect(segs[i].Label, pillChars(title, subtitle)),
			Active:   c.ID == s.activeID,
		}
		if c.ID == s.activeID {
			scene.Controls = &ControlsView{
				CategoryID:   c.ID,
				Geometry:     polar.ControlsFor(i, len(cats), levels[i], s.rounded),
				CanIncrement: levels[i] < severity.MaxLevel,
				CanDecrement: levels[i] > severity.MinLevel,
			}
		}
	}
	return scene
}
