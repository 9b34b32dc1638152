package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbonatakis/skinwell/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve session reports and charts over HTTP",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.ListenAddr
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			srv := server.New(st, server.Options{
				Rounded: a.cfg.Chart.Rounded,
				SizePx:  a.cfg.Chart.SizePx,
				Logger:  a.logger,
			})
			fmt.Fprintf(a.out, "serving on http://%s\n", addr)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.listenAddr)")
	return cmd
}
