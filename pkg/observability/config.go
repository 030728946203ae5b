// Package observability provides OpenTelemetry-based tracing, metrics, and
// structured logging for every senkyo mode (CLI, MCP, HTTP view).
package observability

import (
	"log/slog"
	"strings"

	"github.com/Sumatoshi-tech/senkyo/pkg/config"
)

// AppMode identifies the application execution mode.
type AppMode string

const (
	// ModeCLI is the one-shot command mode.
	ModeCLI AppMode = "cli"
	// ModeMCP is the MCP stdio server mode.
	ModeMCP AppMode = "mcp"
	// ModeServe is the HTTP dashboard mode.
	ModeServe AppMode = "serve"
)

const (
	defaultServiceName        = "senkyo"
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Mode           AppMode

	// OTLPEndpoint is the OTLP gRPC collector address. Empty disables export.
	OTLPEndpoint string
	OTLPHeaders  map[string]string
	OTLPInsecure bool

	// SampleRatio is the root trace sampling ratio. Zero samples everything.
	SampleRatio float64

	LogLevel slog.Level
	LogJSON  bool

	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}

// FromConfig derives observability settings from the application config.
func FromConfig(cfg *config.Config, mode AppMode, version string) Config {
	out := DefaultConfig()
	out.Mode = mode
	out.ServiceVersion = version
	out.Environment = cfg.Telemetry.Environment
	out.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	out.OTLPHeaders = cfg.Telemetry.OTLPHeaders
	out.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	out.SampleRatio = cfg.Telemetry.SampleRatio
	out.LogLevel = ParseLevel(cfg.Logging.Level)
	out.LogJSON = strings.EqualFold(cfg.Logging.Format, "json")

	return out
}

// ParseLevel maps a level name to its slog level; unknown names yield info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
