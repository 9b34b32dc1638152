package report

import (
	"github.com/jbonatakis/skinwell/internal/chart"
	"github.com/jbonatakis/skinwell/internal/surface"
)

// SVG draws the report's chart with nothing selected. An empty title falls
// back to the patient name.
func SVG(r Report, cfg chart.SVGConfig, rounded bool) string {
	s := surface.New(rounded, nil)
	s.SetAssessments(r.Assessments())
	if cfg.Title == "" {
		cfg.Title = r.Session.Patient
	}
	return chart.SVG(s.Scene(), cfg)
}
