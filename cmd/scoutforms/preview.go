package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-scoutforms/internal/preview"
)

func newPreviewCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "preview <definitions>",
		Short: "Serve the record page locally with live validation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			srv, err := preview.New(doc,
				preview.WithLocalizer(a.localizer()),
				preview.WithNotificationDuration(a.cfg.NotificationDuration),
				preview.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Preview.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("preview listening", zap.String("addr", addr), zap.String("table", doc.Table))
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (config preview.addr if empty)")
	return cmd
}
