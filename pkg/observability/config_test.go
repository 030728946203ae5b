package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/senkyo/pkg/config"
	"github.com/Sumatoshi-tech/senkyo/pkg/observability"
)

func TestFromConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Logging: config.LoggingConfig{Level: "DEBUG", Format: "json"},
		Telemetry: config.TelemetryConfig{
			OTLPEndpoint: "localhost:4317",
			OTLPInsecure: true,
			SampleRatio:  0.25,
			Environment:  "staging",
		},
	}

	got := observability.FromConfig(cfg, observability.ModeServe, "1.2.3")

	assert.Equal(t, "senkyo", got.ServiceName)
	assert.Equal(t, "1.2.3", got.ServiceVersion)
	assert.Equal(t, observability.ModeServe, got.Mode)
	assert.Equal(t, slog.LevelDebug, got.LogLevel)
	assert.True(t, got.LogJSON)
	assert.True(t, got.OTLPInsecure)
	assert.Equal(t, "localhost:4317", got.OTLPEndpoint)
	assert.InDelta(t, 0.25, got.SampleRatio, 1e-9)
	assert.Equal(t, "staging", got.Environment)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelWarn, observability.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, observability.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel("loud"))
}

func TestInit_NoEndpointIsNoop(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsSampled())
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestNewLogger_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogLevel = slog.LevelWarn

	logger := observability.NewLogger(&buf, cfg)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "service=senkyo")
}
