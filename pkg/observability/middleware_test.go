package observability_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/senkyo/pkg/observability"
)

type instrumented struct {
	spans  *tracetest.InMemoryExporter
	reader *sdkmetric.ManualReader
	tracer *sdktrace.TracerProvider
	red    *observability.REDMetrics
}

func newInstrumented(t *testing.T) *instrumented {
	t.Helper()

	spans := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(spans))

	t.Cleanup(func() { require.NoError(t, tp.Shutdown(context.Background())) })

	reader := sdkmetric.NewManualReader()

	red, err := observability.NewREDMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	require.NoError(t, err)

	return &instrumented{spans: spans, reader: reader, tracer: tp, red: red}
}

func (in *instrumented) wrap(mux *http.ServeMux) http.Handler {
	return observability.HTTPMiddleware(in.tracer.Tracer("test"), in.red, mux)
}

// requestsBy sums senkyo.requests.total per op and status.
func requestsBy(t *testing.T, reader *sdkmetric.ManualReader) map[[2]string]int64 {
	t.Helper()

	data, ok := collect(t, reader)["senkyo.requests.total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)

	out := make(map[[2]string]int64)

	for _, dp := range data.DataPoints {
		op, _ := dp.Attributes.Value("op")
		status, _ := dp.Attributes.Value("status")
		out[[2]string{op.AsString(), status.AsString()}] += dp.Value
	}

	return out
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, http.NoBody))

	return rec
}

func TestHTTPMiddleware_LabelsByRoute(t *testing.T) {
	t.Parallel()

	in := newInstrumented(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /report/{id}", func(rw http.ResponseWriter, _ *http.Request) {
		_, _ = rw.Write([]byte("<html></html>"))
	})

	h := in.wrap(mux)
	serve(h, http.MethodGet, "/report/summary.html")
	serve(h, http.MethodGet, "/report/heatmap.html")
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/wp-login.php").Code)

	assert.Equal(t, map[[2]string]int64{
		{"http.GET /report/{id}", "ok"}: 2,
		{"http.unmatched", "ok"}:        1,
	}, requestsBy(t, in.reader))

	spans := in.spans.GetSpans()
	require.Len(t, spans, 3)
	assert.Equal(t, "GET /report/{id}", spans[0].Name)
	assert.Contains(t, spans[0].Attributes, attribute.String("url.path", "/report/summary.html"))
	assert.Contains(t, spans[0].Attributes, attribute.Int("http.response.status_code", http.StatusOK))
	assert.Equal(t, "unmatched", spans[2].Name)
}

func TestHTTPMiddleware_ServerErrorMarksSpan(t *testing.T) {
	t.Parallel()

	in := newInstrumented(t)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/import", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("GET /api/rows", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusBadRequest)
	})

	h := in.wrap(mux)
	serve(h, http.MethodPost, "/api/import")
	serve(h, http.MethodGet, "/api/rows?year=x")

	assert.Equal(t, map[[2]string]int64{
		{"http.POST /api/import", "error"}: 1,
		{"http.GET /api/rows", "ok"}:       1,
	}, requestsBy(t, in.reader))
	assert.Equal(t, int64(1), sumOf(t, collect(t, in.reader)["senkyo.errors.total"]))

	spans := in.spans.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, codes.Unset, spans[1].Status.Code)
}

func TestHTTPMiddleware_TagsRequestLogs(t *testing.T) {
	t.Parallel()

	in := newInstrumented(t)

	var buf bytes.Buffer

	logger := jsonLogger(&buf, observability.ModeServe)

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/filter", func(rw http.ResponseWriter, hr *http.Request) {
		logger.InfoContext(hr.Context(), "filter updated")
		rw.WriteHeader(http.StatusOK)
	})

	serve(in.wrap(mux), http.MethodPut, "/api/filter")

	spans := in.spans.GetSpans()
	require.Len(t, spans, 1)

	record := lastRecord(t, &buf)
	assert.Equal(t, "http.PUT /api/filter", record["op"])
	assert.Equal(t, spans[0].SpanContext.TraceID().String(), record["trace_id"])
}

// Not parallel: swaps the global propagator.
func TestHTTPMiddleware_ContinuesIncomingTrace(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	in := newInstrumented(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/summary", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/summary", http.NoBody)
	req.Header.Set("Traceparent", "00-0af7651916cd43dd8448eb211c80319c-00f067aa0ba902b7-01")

	in.wrap(mux).ServeHTTP(httptest.NewRecorder(), req)

	spans := in.spans.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", spans[0].SpanContext.TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent.SpanID().String())
}
