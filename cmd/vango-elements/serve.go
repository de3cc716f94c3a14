package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/vango-dev/elements/pkg/preview"
	"github.com/vango-dev/elements/pkg/render"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Start an HTTP server that renders the manifest's elements.

Routes:
  GET /elements               element descriptions as JSON
  GET /elements/{tag}?a=v     HTML with query parameters as attributes
  GET /elements/{tag}/live    websocket session driving one element
  GET /metrics                Prometheus metrics (preview.metrics)

With preview.tracing set, renderer spans are logged at debug level.

Examples:
  vango-elements serve
  vango-elements serve --addr=127.0.0.1:8080 --log-level=debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadManifest()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Preview.Addr = addr
			}

			if cfg.Preview.Tracing {
				tp := sdktrace.NewTracerProvider(
					sdktrace.WithSampler(sdktrace.AlwaysSample()),
					sdktrace.WithSpanProcessor(&spanLogger{logger: opts.logger}),
				)
				otel.SetTracerProvider(tp)
				defer tp.Shutdown(context.Background())
			}

			s, err := opts.define(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg.Preview.Addr, preview.New(preview.Config{
				Registry: s.registry,
				HTML:     render.NewRenderer(render.RendererConfig{Pretty: cfg.Preview.Pretty}),
				Logger:   opts.logger,
				Gatherer: s.gatherer,
			}), opts.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from the manifest)")

	return cmd
}

// serve runs srv until ctx is done, then ends live sessions and drains
// in-flight requests.
func serve(ctx context.Context, addr string, srv *preview.Server, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("preview server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	srv.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// spanLogger logs ended spans.
type spanLogger struct {
	logger *slog.Logger
}

func (l *spanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (l *spanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	attrs := []any{
		"span", s.Name(),
		"trace_id", s.SpanContext().TraceID().String(),
		"duration", s.EndTime().Sub(s.StartTime()),
		"status", s.Status().Code.String(),
	}
	if parent := s.Parent(); parent.IsValid() {
		attrs = append(attrs, "parent_id", parent.SpanID().String())
	}
	l.logger.Debug("span", attrs...)
}

func (l *spanLogger) Shutdown(context.Context) error { return nil }

func (l *spanLogger) ForceFlush(context.Context) error { return nil }
