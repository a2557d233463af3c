package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"renteasy/internal/cache"
	"renteasy/internal/cli"
	apphttp "renteasy/internal/http"
	applog "renteasy/internal/log"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), applog.ComponentHTTP)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := cli.SignalContext(cmd.Context(), a.logger.Logger)
			defer cancel()
			return serve(ctx, a)
		},
	}
	return cmd
}

func serve(ctx context.Context, a *app) error {
	srv := apphttp.NewServer(":"+a.cfg.Port, a.backend, apphttp.Options{
		AllowedOrigins:     a.cfg.CORSAllowedOrigins,
		RateLimitPerMinute: a.cfg.RateLimitPerMinute,
		Logger:             a.logger,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.InfoContext(ctx, "HTTP server listening", "addr", srv.Addr, "backend", a.backend.Type.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.logger.InfoContext(ctx, "Shutting down HTTP server")
		return cli.ShutdownWithTimeout(shutdownTimeout, srv.Shutdown)
	})
	if a.backend.Stats != nil {
		caches := cache.NewManager(a.backend.Stats)
		g.Go(func() error { return caches.Run(ctx, a.cfg.CacheTTL) })
	}
	if l := srv.Limiter(); l != nil {
		g.Go(func() error { return l.Run(ctx) })
	}

	err := g.Wait()
	a.logger.InfoContext(context.Background(), "Server stopped")
	return err
}
