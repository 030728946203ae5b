package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrVersion = "version"
	attrEnv     = "env"
	attrMode    = "mode"
)

type opKey struct{}

// WithOp tags ctx with the operation being served, using the same name the
// RED metrics use ("cli.summary", "mcp.senkyo_heatmap", "http.GET /api/rows").
// Records logged with ctx carry it as "op".
func WithOp(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, opKey{}, op)
}

// OpFrom returns the operation ctx was tagged with, or "".
func OpFrom(ctx context.Context) string {
	op, _ := ctx.Value(opKey{}).(string)

	return op
}

// NewLogger builds the process logger writing to w. Every record carries the
// service identity; records logged with a context also carry its span and op.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var next slog.Handler
	if cfg.LogJSON {
		next = slog.NewJSONHandler(w, opts)
	} else {
		next = slog.NewTextHandler(w, opts)
	}

	return slog.New(newContextHandler(next, cfg))
}

// contextHandler lifts request-scoped values out of the context into the
// record. Identity attributes are bound before any group so they stay at the
// top level.
type contextHandler struct {
	next slog.Handler
}

func newContextHandler(next slog.Handler, cfg Config) *contextHandler {
	identity := []slog.Attr{
		slog.String(attrService, cfg.ServiceName),
		slog.String(attrMode, string(cfg.Mode)),
	}

	if cfg.ServiceVersion != "" {
		identity = append(identity, slog.String(attrVersion, cfg.ServiceVersion))
	}

	if cfg.Environment != "" {
		identity = append(identity, slog.String(attrEnv, cfg.Environment))
	}

	return &contextHandler{next: next.WithAttrs(identity)}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if op := OpFrom(ctx); op != "" {
		record.AddAttrs(slog.String(attrOp, op))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	if err := h.next.Handle(ctx, record); err != nil {
		return fmt.Errorf("log handler: %w", err)
	}

	return nil
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name)}
}
