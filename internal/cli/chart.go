package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jbonatakis/skinwell/internal/store"
	"github.com/jbonatakis/skinwell/internal/tui"
)

// startTUI is swapped in tests; the real program needs a terminal.
var startTUI = tui.Start

// runChart opens the chart for ref, or for the latest session when ref is
// empty. With no sessions at all the TUI starts on the new-session form.
func runChart(ctx context.Context, a *app, ref string) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}

	var sessionID string
	if ref != "" {
		sess, err := st.ResolveSession(ctx, ref)
		if err != nil {
			return err
		}
		sessionID = sess.ID
	} else {
		sess, err := st.LatestSession(ctx)
		switch {
		case err == nil:
			sessionID = sess.ID
		case errors.Is(err, store.ErrSessionNotFound):
		default:
			return err
		}
	}

	a.logger.Info("starting chart", zap.String("session", sessionID))
	return startTUI(tui.Options{
		Store:     st,
		SessionID: sessionID,
		Rounded:   a.cfg.Chart.Rounded,
		Mouse:     a.cfg.TUI.Mouse,
		Logger:    a.logger,
	})
}
