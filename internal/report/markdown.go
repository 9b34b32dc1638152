package report

import (
	"fmt"
	"strings"

	"github.com/jbonatakis/skinwell/internal/severity"
)

const disclaimer = "Cosmetic documentation only. Not a medical assessment."

// Markdown renders the report as a summary table followed by one section
// per category with its parameter scores.
func Markdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Visibility report: %s\n\n", r.Session.Patient)
	fmt.Fprintf(&b, "Session `%s`, recorded %s\n\n", shortID(r.Session.ID), r.Session.CreatedAt.Format("2006-01-02 15:04"))
	if note := strings.TrimSpace(r.Session.Note); note != "" {
		fmt.Fprintf(&b, "> %s\n\n", note)
	}

	b.WriteString("| Category | Level | Band |\n")
	b.WriteString("|---|---|---|\n")
	for _, row := range r.Categories {
		level := fmt.Sprintf("%d/%d", row.Level, severity.MaxLevel)
		if row.Missing {
			level += " (not recorded)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", row.Name, level, row.Band)
	}

	for _, row := range r.Categories {
		if len(row.Parameters) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", row.Name)
		if row.Derived != nil && *row.Derived != row.Level {
			fmt.Fprintf(&b, "Level set to %d by hand; parameters suggest %d.\n\n", row.Level, *row.Derived)
		}
		for _, p := range row.Parameters {
			fmt.Fprintf(&b, "- **%s**: %s (%d/%d)", p.Label, severity.OptionLabel(p.Score, p.MaxScale), p.Score, p.MaxScale)
			if p.Baseline != nil && *p.Baseline != p.Score {
				fmt.Fprintf(&b, ", baseline %d", *p.Baseline)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n_%s_\n", disclaimer)
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
