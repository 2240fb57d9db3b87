package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/octabyte/bm-social/devserver"
	"github.com/spf13/cobra"
)

func newDevServerCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run an in-memory backend for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = app.cfg.DevServer.Addr
			}
			srv, err := devserver.New(devserver.Config{
				Secret:      app.cfg.DevServer.Secret,
				ServiceName: "bm-social-devserver",
				Tracing:     app.cfg.Otel.Enabled,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start(addr) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default BM_SOCIAL_DEVSERVER_ADDR)")
	return cmd
}
