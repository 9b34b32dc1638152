// Package report turns a stored session into the documents skinwell hands
// out: a JSON export that can be imported again, a Markdown summary and the
// SVG chart.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/score"
	"github.com/jbonatakis/skinwell/internal/severity"
	"github.com/jbonatakis/skinwell/internal/store"
	"github.com/jbonatakis/skinwell/internal/surface"
)

const SchemaVersion = 1

var now = func() time.Time { return time.Now().UTC() }

type Report struct {
	SchemaVersion int           `json:"schemaVersion"`
	GeneratedAt   time.Time     `json:"generatedAt"`
	Session       store.Session `json:"session"`
	Categories    []Row         `json:"categories"`
}

// Row is one category as it appears in a report. Derived is the level the
// parameters aggregate to, which differs from Level after a manual override.
type Row struct {
	CategoryID string                    `json:"categoryId"`
	Name       string                    `json:"name"`
	Level      int                       `json:"level"`
	Band       string                    `json:"band"`
	Derived    *int                      `json:"derived,omitempty"`
	Missing    bool                      `json:"missing,omitempty"`
	Parameters []category.ParameterScore `json:"parameters,omitempty"`
}

// Build lays the assessments out in registry order. Categories without an
// assessment are reported at the neutral level and flagged as missing.
func Build(sess store.Session, assessments []category.Assessment) Report {
	byID := make(map[string]category.Assessment, len(assessments))
	for _, a := range assessments {
		byID[a.CategoryID] = a
	}

	rows := make([]Row, 0, category.Count())
	for _, c := range category.Registry() {
		a, ok := byID[c.ID]
		row := Row{CategoryID: c.ID, Name: c.Name, Level: surface.NeutralLevel, Missing: !ok}
		if ok {
			row.Level = a.Level
			row.Parameters = category.CloneParameters(a.Parameters)
			if len(a.Parameters) > 0 {
				derived := score.Aggregate(a.Parameters)
				row.Derived = &derived
			}
		}
		row.Band = severity.BandFor(row.Level).Label
		rows = append(rows, row)
	}
	return Report{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   now(),
		Session:       sess,
		Categories:    rows,
	}
}

// Assessments returns the recorded categories, leaving out missing rows.
func (r Report) Assessments() []category.Assessment {
	out := make([]category.Assessment, 0, len(r.Categories))
	for _, row := range r.Categories {
		if row.Missing {
			continue
		}
		out = append(out, category.Assessment{
			CategoryID: row.CategoryID,
			Level:      row.Level,
			Parameters: category.CloneParameters(row.Parameters),
		})
	}
	return out
}

// Validate checks what an import relies on: known categories, each at most
// once, levels on the scale and well-formed parameters.
func (r Report) Validate() error {
	if r.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported report schemaVersion %d", r.SchemaVersion)
	}
	if r.Session.Patient == "" {
		return errors.New("report session has no patient")
	}
	seen := make(map[string]bool, len(r.Categories))
	for _, row := range r.Categories {
		if _, err := category.Lookup(row.CategoryID); err != nil {
			return err
		}
		if seen[row.CategoryID] {
			return fmt.Errorf("category %s listed twice", row.CategoryID)
		}
		seen[row.CategoryID] = true
		if !severity.Valid(row.Level) {
			return fmt.Errorf("category %s: level %d outside [%d,%d]", row.CategoryID, row.Level, severity.MinLevel, severity.MaxLevel)
		}
		for _, p := range row.Parameters {
			if err := p.Validate(); err != nil {
				return fmt.Errorf("category %s: %w", row.CategoryID, err)
			}
		}
	}
	return nil
}
