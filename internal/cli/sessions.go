package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/report"
)

func newNewCommand(a *app) *cobra.Command {
	var note string
	var open bool
	cmd := &cobra.Command{
		Use:   "new <patient>",
		Short: "Create a session seeded from the default parameter templates",
		Args:  exactArgs(1, "<patient>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			sess, err := st.CreateSession(cmd.Context(), args[0], note)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "created session %s for %s\n", sess.ID, sess.Patient)
			if open {
				return runChart(cmd.Context(), a, sess.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "visit note")
	cmd.Flags().BoolVar(&open, "open", false, "open the chart after creating")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, most recently updated first",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 1 {
				return UsageError{Message: "--limit must be at least 1"}
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			sessions, err := st.ListSessions(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(a.out, "no sessions (run `skinwell new <patient>`)")
				return nil
			}
			w := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPATIENT\tUPDATED\tNOTE")
			for _, s := range sessions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID(s.ID), s.Patient, humanize.Time(s.UpdatedAt), truncateNote(s.Note))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum sessions to list")
	return cmd
}

func newShowCommand(a *app) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <session>",
		Short: "Print a session's report as Markdown",
		Args:  exactArgs(1, "<session>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := loadReport(cmd, a, args[0])
			if err != nil {
				return err
			}
			md := report.Markdown(rep)
			if raw {
				_, err := fmt.Fprint(a.out, md)
				return err
			}
			out, err := renderMarkdown(a.out, md)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.out, out)
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print Markdown without terminal styling")
	return cmd
}

func newHistoryCommand(a *app) *cobra.Command {
	var categoryID string
	cmd := &cobra.Command{
		Use:   "history <session>",
		Short: "List every committed level change of a session",
		Args:  exactArgs(1, "<session>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if categoryID != "" {
				if _, err := category.Lookup(categoryID); err != nil {
					return UsageError{Message: fmt.Sprintf("unknown category %q (one of: %s)", categoryID, strings.Join(category.IDs(), ", "))}
				}
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			sess, err := st.ResolveSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			changes, err := st.LevelHistory(cmd.Context(), sess.ID, categoryID)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tCATEGORY\tLEVEL\tSOURCE")
			for _, c := range changes {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.ChangedAt.Format("2006-01-02 15:04:05"), category.MustLookup(c.CategoryID).Name, c.Level, c.Source)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "only this category id")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <session>",
		Short: "Delete a session and all of its assessments",
		Args:  exactArgs(1, "<session>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return UsageError{Message: "delete is permanent; pass --yes to confirm"}
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			sess, err := st.ResolveSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := st.DeleteSession(cmd.Context(), sess.ID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted session %s (%s)\n", shortID(sess.ID), sess.Patient)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}

func loadReport(cmd *cobra.Command, a *app, ref string) (report.Report, error) {
	st, err := a.openStore()
	if err != nil {
		return report.Report{}, err
	}
	sess, err := st.ResolveSession(cmd.Context(), ref)
	if err != nil {
		return report.Report{}, err
	}
	assessments, err := st.LoadAssessments(cmd.Context(), sess.ID)
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(sess, assessments), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

const maxNoteWidth = 40

func truncateNote(note string) string {
	note = strings.Join(strings.Fields(note), " ")
	runes := []rune(note)
	if len(runes) <= maxNoteWidth {
		return note
	}
	return string(runes[:maxNoteWidth-3]) + "..."
}
