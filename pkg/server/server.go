// Package server exposes a loaded dataset over HTTP: a JSON API, the
// rendered report pages, and health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/senkyo/pkg/config"
	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/observability"
	"github.com/Sumatoshi-tech/senkyo/pkg/report"
)

const (
	tracerName      = "senkyo"
	shutdownTimeout = 5 * time.Second
	maxImportBytes  = 8 << 20
)

// ErrNoData is reported by /readyz when nothing loaded.
var ErrNoData = errors.New("no election data loaded")

// Options configures a Server.
type Options struct {
	Dataset *dashboard.Dataset
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Theme   report.Theme
	Title   string
}

// Server serves one dataset. Filter state is shared by every client.
type Server struct {
	ds      *dashboard.Dataset
	store   *dashboard.Store
	logger  *slog.Logger
	tracer  trace.Tracer
	theme   report.Theme
	title   string
	red     *observability.REDMetrics
	metrics http.Handler
	cache   *pageCache
}

// New builds a server over opts.Dataset.
func New(opts Options) (*Server, error) {
	if opts.Dataset == nil {
		opts.Dataset = &dashboard.Dataset{}
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(tracerName)
	}

	metricsHandler, meter, err := observability.PrometheusHandler()
	if err != nil {
		return nil, err
	}

	red, err := observability.NewREDMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("create request metrics: %w", err)
	}

	store := dashboard.NewStore(opts.Dataset.Rows)
	cache := newPageCache(defaultPageCacheBytes)
	store.Subscribe(func(dashboard.Filter) { cache.clear() })

	if err := observability.NewCacheMetrics(meter, "pages", cache.stats); err != nil {
		return nil, fmt.Errorf("create page cache metrics: %w", err)
	}

	return &Server{
		ds:      opts.Dataset,
		store:   store,
		logger:  opts.Logger,
		tracer:  opts.Tracer,
		theme:   opts.Theme,
		title:   opts.Title,
		red:     red,
		metrics: metricsHandler,
		cache:   cache,
	}, nil
}

// Store returns the filter state shared by every request.
func (s *Server) Store() *dashboard.Store { return s.store }

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", observability.HealthHandler())
	mux.Handle("GET /readyz", observability.ReadyHandler(s.ready))
	mux.Handle("GET /metrics", s.metrics)

	mux.HandleFunc("GET /api/filter", s.handleGetFilter)
	mux.HandleFunc("PUT /api/filter", s.handlePutFilter)
	mux.HandleFunc("DELETE /api/filter", s.handleResetFilter)
	mux.HandleFunc("GET /api/rows", s.handleRows)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/districts", s.handleDistricts)
	mux.HandleFunc("GET /api/heatmap", s.handleHeatmap)
	mux.HandleFunc("GET /api/compare", s.handleCompare)
	mux.HandleFunc("GET /api/tilemap", s.handleTilemap)
	mux.HandleFunc("GET /api/national", s.handleNational)
	mux.HandleFunc("GET /api/trends", s.handleTrends)
	mux.HandleFunc("GET /api/precincts", s.handlePrecincts)
	mux.HandleFunc("GET /api/areas", s.handleAreas)
	mux.HandleFunc("GET /api/sources", s.handleSources)
	mux.HandleFunc("POST /api/import", s.handleImport)

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /report/{id}", s.handleReport)

	return observability.HTTPMiddleware(s.tracer, s.red, mux)
}

func (s *Server) ready(context.Context) error {
	if len(s.store.Rows()) == 0 && s.ds.National == nil && len(s.ds.Tiles) == 0 {
		return ErrNoData
	}

	return nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Serve(listener)
	}()

	s.logger.InfoContext(ctx, "serving dashboard", "addr", "http://"+listener.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.InfoContext(ctx, "dashboard stopped")

	return nil
}
