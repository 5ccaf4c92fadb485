package main

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/rpgo/savings-projector/internal/cli"
	"github.com/rpgo/savings-projector/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections and stored scenarios over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadAndValidateConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			if cli.SetupSentry(cfg, a.logger) {
				defer sentry.Flush(2 * time.Second)
			}

			repo, err := cli.OpenRepository(cfg, a.logger)
			if err != nil {
				return err
			}
			defer repo.Close()

			srv := server.New(a.engine(), repo, a.logger)
			_, stop, done := cli.GracefulShutdown(cmd.Context(), a.logger, cfg.ShutdownTimeout, func(ctx context.Context) {
				if err := srv.Shutdown(ctx); err != nil {
					a.logger.Error("server shutdown failed", "error", err)
				}
			})
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe(cfg.Addr) }()

			select {
			case err := <-errCh:
				return err
			case <-done:
				if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from PROJECTOR_ADDR)")
	return cmd
}
