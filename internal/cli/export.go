package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jbonatakis/skinwell/internal/chart"
	"github.com/jbonatakis/skinwell/internal/config"
	"github.com/jbonatakis/skinwell/internal/report"
)

var exportFormats = []string{"svg", "json", "md"}

func newExportCommand(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export <session>",
		Short: "Write a session as an SVG chart, a JSON export or a Markdown report",
		Long: `Write a session to a file. The default file name is the short session id
with the format's extension; --out - writes to stdout. JSON exports can be
loaded again with skinwell import.`,
		Args: exactArgs(1, "<session>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if !slices.Contains(exportFormats, format) {
				return UsageError{Message: fmt.Sprintf("invalid --format %q (one of: %s)", format, strings.Join(exportFormats, ", "))}
			}
			rep, err := loadReport(cmd, a, args[0])
			if err != nil {
				return err
			}
			data, err := renderExport(rep, format, a.cfg.Chart)
			if err != nil {
				return err
			}
			if out == "-" {
				_, err := a.out.Write(data)
				return err
			}
			if out == "" {
				out = shortID(rep.Session.ID) + "." + format
			}
			if err := config.WriteFileAtomic(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.logger.Info("exported session",
				zap.String("session", rep.Session.ID),
				zap.String("format", format),
				zap.String("path", out))
			abs, err := filepath.Abs(out)
			if err != nil {
				abs = out
			}
			fmt.Fprintf(a.out, "wrote %s\n", abs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "svg, json or md")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path, - for stdout")
	return cmd
}

func renderExport(rep report.Report, format string, cfg config.ResolvedChart) ([]byte, error) {
	switch format {
	case "json":
		return report.JSON(rep)
	case "md":
		return []byte(report.Markdown(rep)), nil
	default:
		svg := chart.DefaultSVGConfig()
		svg.Width = cfg.SizePx
		return []byte(report.SVG(rep, svg, cfg.Rounded) + "\n"), nil
	}
}

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Create a session from a JSON export",
		Args:  exactArgs(1, "<file.json>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := report.Load(args[0])
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			sess, err := st.ImportSession(cmd.Context(), rep.Session.Patient, rep.Session.Note, rep.Assessments())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "imported session %s for %s (%d categories)\n", sess.ID, sess.Patient, len(rep.Assessments()))
			return nil
		},
	}
}
