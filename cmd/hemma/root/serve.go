package root

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hemma/internal/schedule"
	"hemma/internal/server"
	"hemma/internal/tracker"
	"hemma/internal/weather"
)

func newServeCmd() *cobra.Command {
	var addr string
	var checkEvery time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			notifier := tracker.NotifierFunc(func(message string) {
				slog.Info("tracker notice", "message", message)
			})
			board, walk, cleanup, err := openServices(ctx, notifier)
			if err != nil {
				return err
			}
			defer cleanup()

			// The API has no render loop, so a background checker keeps
			// the weekly and daily rollovers current between requests.
			checker := schedule.NewChecker(checkEvery, func(now time.Time) {
				for _, svc := range []*tracker.Service{board, walk} {
					if _, _, err := svc.CheckResets(context.Background(), now); err != nil {
						slog.Error("rollover check failed", "tracker", svc.Config().Name, "error", err)
					}
				}
			})
			checker.Start()
			defer checker.Stop()

			handlers := server.NewHandlers(
				map[string]*tracker.Service{"cleaning": board, "walk": walk},
				weather.NewClient(4*time.Second),
				locationFromEnv(),
			)
			srv := http.Server{
				Handler: server.NewRouter(handlers),
				Addr:    addr,
			}

			ctrlc := make(chan os.Signal, 1)
			signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-ctrlc
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			slog.Info("listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			slog.Info("server closed")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("HEMMA_ADDR", ":8571"), "Listen address")
	cmd.Flags().DurationVar(&checkEvery, "check-every", time.Minute, "Rollover check cadence")
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
