package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/upi-statement-parser/internal/api"
	"github.com/insightdelivered/upi-statement-parser/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

  POST /upload   multipart form: file, password, optional format (json|csv|xlsx)
  GET  /health   liveness and version
  GET  /metrics  Prometheus metrics (unless METRICS_ENABLED=false)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	p, layout, err := a.newParser()
	if err != nil {
		return err
	}

	h := &api.Handler{
		Parser:     p,
		Open:       a.open,
		DateLayout: layout,
		Version:    Version,
	}
	opts := api.Options{
		BodyLimit: a.cfg.Server.BodyLimit(),
		Logger:    a.log,
	}
	if a.cfg.Observability.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		h.Metrics = metrics.New(reg)
		opts.Gatherer = reg
	}

	app := api.NewApp(h, opts)
	addr := a.cfg.Server.Addr()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().
			Str("addr", addr).
			Str("version", Version).
			Bool("metrics", a.cfg.Observability.MetricsEnabled).
			Msg("Starting server")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("Shutting down server")
	return app.ShutdownWithTimeout(shutdownTimeout)
}
