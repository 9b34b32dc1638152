package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/term"
)

const defaultWrapWidth = 80

// renderMarkdown styles md for a terminal. Anything that is not a terminal
// gets the Markdown unchanged so it can be piped or redirected.
func renderMarkdown(w io.Writer, md string) (string, error) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return md, nil
	}
	width := defaultWrapWidth
	if cols, _, err := term.GetSize(f.Fd()); err == nil && cols > 0 && cols < width {
		width = cols
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
