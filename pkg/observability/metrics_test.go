package observability_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/senkyo/pkg/observability"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}

	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()

	data, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	var total int64
	for _, dp := range data.DataPoints {
		total += dp.Value
	}

	return total
}

func TestREDMetrics_RecordRequest(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	red.RecordRequest(ctx, "summary", observability.StatusOK, 10*time.Millisecond)
	red.RecordRequest(ctx, "summary", observability.StatusOf(errors.New("boom")), time.Millisecond)

	metrics := collect(t, reader)

	assert.Equal(t, int64(2), sumOf(t, metrics["senkyo.requests.total"]))
	assert.Equal(t, int64(1), sumOf(t, metrics["senkyo.errors.total"]))
	assert.Contains(t, metrics, "senkyo.request.duration.seconds")
}

func TestREDMetrics_TrackInflight(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	done := red.TrackInflight(context.Background(), "import")
	assert.Equal(t, int64(1), sumOf(t, collect(t, reader)["senkyo.inflight.requests"]))

	done()
	assert.Equal(t, int64(0), sumOf(t, collect(t, reader)["senkyo.inflight.requests"]))
}

func TestLoadMetrics_RecordLoad(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	lm, err := observability.NewLoadMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	lm.RecordLoad(ctx, "a.csv", 12, nil)
	lm.RecordLoad(ctx, "b.csv", 3, nil)
	lm.RecordLoad(ctx, "missing.csv", 0, errors.New("not found"))

	metrics := collect(t, reader)

	assert.Equal(t, int64(15), sumOf(t, metrics["senkyo.rows.loaded"]))
	assert.Equal(t, int64(1), sumOf(t, metrics["senkyo.sources.unavailable"]))
}

func TestNewCacheMetrics_ReadsOnCollect(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	var hits, misses int64

	require.NoError(t, observability.NewCacheMetrics(mp.Meter("test"), "pages", func() (int64, int64) {
		return hits, misses
	}))

	hits, misses = 3, 1
	metrics := collect(t, reader)

	assert.Equal(t, int64(3), sumOf(t, metrics["senkyo.cache.hits"]))
	assert.Equal(t, int64(1), sumOf(t, metrics["senkyo.cache.misses"]))

	data, ok := metrics["senkyo.cache.hits"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, data.DataPoints, 1)

	name, ok := data.DataPoints[0].Attributes.Value("cache")
	require.True(t, ok)
	assert.Equal(t, "pages", name.AsString())

	hits = 7
	assert.Equal(t, int64(7), sumOf(t, collect(t, reader)["senkyo.cache.hits"]))
}

func TestPrometheusHandler_ServesInstruments(t *testing.T) {
	t.Parallel()

	handler, meter, err := observability.PrometheusHandler()
	require.NoError(t, err)

	red, err := observability.NewREDMetrics(meter)
	require.NoError(t, err)

	red.RecordRequest(context.Background(), "heatmap", observability.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), "senkyo_requests_total")
}
