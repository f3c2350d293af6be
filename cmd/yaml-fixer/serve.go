package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"yaml-fixer/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the fix and validate API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.fixer(), a.cfg.Fixer.Options(), a.cfg.Server,
				server.WithLogger(a.logger),
				server.WithVersion(version),
			)

			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")

	return cmd
}
