package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRequestsTotal    = "senkyo.requests.total"
	metricRequestDuration  = "senkyo.request.duration.seconds"
	metricErrorsTotal      = "senkyo.errors.total"
	metricInflightRequests = "senkyo.inflight.requests"

	metricRowsLoaded    = "senkyo.rows.loaded"
	metricSourcesFailed = "senkyo.sources.unavailable"
	metricCacheHits     = "senkyo.cache.hits"
	metricCacheMisses   = "senkyo.cache.misses"

	attrOp     = "op"
	attrStatus = "status"
	attrSource = "source"
	attrCache  = "cache"

	// StatusOK marks a successful request.
	StatusOK    = "ok"
	statusError = "error"
)

// StatusOf maps an error to the RED status label.
func StatusOf(err error) string {
	if err != nil {
		return statusError
	}

	return StatusOK
}

// durationBucketBoundaries covers 1ms to 30s: aggregation is in-memory, so
// anything slower is a stuck file read or an xlsx import.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// REDMetrics holds the OTel instruments for Rate, Error, Duration metrics.
type REDMetrics struct {
	requestsTotal    metric.Int64Counter
	requestDuration  metric.Float64Histogram
	errorsTotal      metric.Int64Counter
	inflightRequests metric.Int64UpDownCounter
}

// NewREDMetrics creates RED metric instruments from the given meter.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	reqTotal, err := mt.Int64Counter(metricRequestsTotal,
		metric.WithDescription("Total number of requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRequestsTotal, err)
	}

	reqDuration, err := mt.Float64Histogram(metricRequestDuration,
		metric.WithDescription("Request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRequestDuration, err)
	}

	errTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricInflightRequests,
		metric.WithDescription("Number of in-flight requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInflightRequests, err)
	}

	return &REDMetrics{
		requestsTotal:    reqTotal,
		requestDuration:  reqDuration,
		errorsTotal:      errTotal,
		inflightRequests: inflight,
	}, nil
}

// RecordRequest records a completed request with its operation, status, and duration.
func (rm *REDMetrics) RecordRequest(ctx context.Context, op, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.requestsTotal.Add(ctx, 1, attrs)
	rm.requestDuration.Record(ctx, duration.Seconds(), attrs)

	if status == statusError {
		rm.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrOp, op),
		))
	}
}

// TrackInflight increments the in-flight gauge and returns a function to decrement it.
func (rm *REDMetrics) TrackInflight(ctx context.Context, op string) func() {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflightRequests.Add(ctx, 1, attrs)

	return func() {
		rm.inflightRequests.Add(ctx, -1, attrs)
	}
}

// LoadMetrics counts rows read per source and sources that failed to load.
type LoadMetrics struct {
	rowsLoaded    metric.Int64Counter
	sourcesFailed metric.Int64Counter
}

// NewLoadMetrics creates the data-loading instruments from the given meter.
func NewLoadMetrics(mt metric.Meter) (*LoadMetrics, error) {
	rows, err := mt.Int64Counter(metricRowsLoaded,
		metric.WithDescription("Result rows read from sources"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRowsLoaded, err)
	}

	failed, err := mt.Int64Counter(metricSourcesFailed,
		metric.WithDescription("Sources that could not be loaded"),
		metric.WithUnit("{source}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSourcesFailed, err)
	}

	return &LoadMetrics{rowsLoaded: rows, sourcesFailed: failed}, nil
}

// RecordLoad records the outcome of reading one source.
func (lm *LoadMetrics) RecordLoad(ctx context.Context, source string, rows int, err error) {
	attrs := metric.WithAttributes(attribute.String(attrSource, source))

	if err != nil {
		lm.sourcesFailed.Add(ctx, 1, attrs)

		return
	}

	lm.rowsLoaded.Add(ctx, int64(rows), attrs)
}

// CacheStats reports cumulative hits and misses of one cache.
type CacheStats func() (hits, misses int64)

// NewCacheMetrics exposes a cache's counters as observable counters labelled
// with its name. They are read on each collection, so the cache keeps plain
// atomics and never touches the meter.
func NewCacheMetrics(mt metric.Meter, name string, stats CacheStats) error {
	hits, err := mt.Int64ObservableCounter(metricCacheHits,
		metric.WithDescription("Cache lookups answered from the cache"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return fmt.Errorf("create %s: %w", metricCacheHits, err)
	}

	misses, err := mt.Int64ObservableCounter(metricCacheMisses,
		metric.WithDescription("Cache lookups that had to build the value"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return fmt.Errorf("create %s: %w", metricCacheMisses, err)
	}

	attrs := metric.WithAttributes(attribute.String(attrCache, name))

	_, err = mt.RegisterCallback(func(_ context.Context, obs metric.Observer) error {
		h, m := stats()
		obs.ObserveInt64(hits, h, attrs)
		obs.ObserveInt64(misses, m, attrs)

		return nil
	}, hits, misses)
	if err != nil {
		return fmt.Errorf("register %s callback: %w", name, err)
	}

	return nil
}
