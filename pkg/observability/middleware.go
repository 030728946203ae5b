package observability

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	httpOpPrefix   = "http."
	unmatchedRoute = "unmatched"
)

// Router is the part of [http.ServeMux] the middleware needs: it serves a
// request and can name the pattern that would serve it.
type Router interface {
	http.Handler
	Handler(r *http.Request) (h http.Handler, pattern string)
}

// statusWriter records the status sent downstream. A handler that writes a
// body without calling WriteHeader has sent 200.
type statusWriter struct {
	http.ResponseWriter

	statusCode int
	written    bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.statusCode = code
		sw.written = true
	}

	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(buf []byte) (int, error) {
	sw.written = true

	n, err := sw.ResponseWriter.Write(buf)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}

	return n, nil
}

// HTTPMiddleware traces and measures every request served by mux. Spans and
// RED series are keyed by the matched route pattern ("GET /report/{id}"), not
// the raw path, so /report/summary.html and /report/heatmap.html share one
// series; requests no pattern matches share the "http.unmatched" series. The
// op is also put on the request context for the logger. red may be nil.
func HTTPMiddleware(tracer trace.Tracer, red *REDMetrics, mux Router) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, hr *http.Request) {
		start := time.Now()

		route := unmatchedRoute
		if _, pattern := mux.Handler(hr); pattern != "" {
			route = pattern
		}

		op := httpOpPrefix + route

		ctx := otel.GetTextMapPropagator().Extract(hr.Context(), propagation.HeaderCarrier(hr.Header))
		ctx, span := tracer.Start(ctx, route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(hr.Method),
				semconv.HTTPRoute(route),
				semconv.URLPath(hr.URL.Path),
			),
		)
		defer span.End()

		ctx = WithOp(ctx, op)

		if red != nil {
			done := red.TrackInflight(ctx, op)
			defer done()
		}

		sw := &statusWriter{ResponseWriter: rw, statusCode: http.StatusOK}
		mux.ServeHTTP(sw, hr.WithContext(ctx))

		span.SetAttributes(semconv.HTTPResponseStatusCode(sw.statusCode))

		status := StatusOK
		if sw.statusCode >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(sw.statusCode))

			status = statusError
		}

		if red != nil {
			red.RecordRequest(ctx, op, status, time.Since(start))
		}
	})
}
