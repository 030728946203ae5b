package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/senkyo/pkg/observability"
)

func jsonLogger(buf *bytes.Buffer, mode observability.AppMode) *slog.Logger {
	cfg := observability.DefaultConfig()
	cfg.Mode = mode
	cfg.ServiceVersion = "0.4.0"
	cfg.LogJSON = true

	return observability.NewLogger(buf, cfg)
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &record))

	return record
}

func TestNewLogger_StampsIdentity(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	jsonLogger(&buf, observability.ModeMCP).Info("tools registered", "count", 9)

	record := lastRecord(t, &buf)
	assert.Equal(t, "senkyo", record["service"])
	assert.Equal(t, "mcp", record["mode"])
	assert.Equal(t, "0.4.0", record["version"])
	assert.NotContains(t, record, "env")
	assert.NotContains(t, record, "op")
	assert.NotContains(t, record, "trace_id")
}

func TestNewLogger_CarriesOpAndSpan(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))
	ctx = observability.WithOp(ctx, "cli.compare")

	jsonLogger(&buf, observability.ModeCLI).WarnContext(ctx, "source unavailable", "source", "2022.csv")

	record := lastRecord(t, &buf)
	assert.Equal(t, "cli.compare", record["op"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", record["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", record["span_id"])
	assert.Equal(t, "2022.csv", record["source"])
}

func TestNewLogger_IdentityStaysTopLevelInGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := jsonLogger(&buf, observability.ModeServe).WithGroup("ingest")
	logger.InfoContext(context.Background(), "rows read", "rows", 120)

	record := lastRecord(t, &buf)
	assert.Equal(t, "serve", record["mode"])

	ingest, ok := record["ingest"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 120, ingest["rows"], 1e-9)
}

func TestOpFrom(t *testing.T) {
	t.Parallel()

	assert.Empty(t, observability.OpFrom(context.Background()))
	assert.Equal(t, "mcp.senkyo_heatmap",
		observability.OpFrom(observability.WithOp(context.Background(), "mcp.senkyo_heatmap")))
}
