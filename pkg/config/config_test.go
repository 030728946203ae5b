package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/senkyo/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "senkyo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultHost, cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, config.DefaultYear, cfg.Data.DefaultYear)
	assert.Equal(t, config.DefaultDataDir, cfg.Data.Dir)
	assert.Equal(t, config.DefaultTheme, cfg.Report.Theme)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
	assert.InDelta(t, 1.0, cfg.Telemetry.SampleRatio, 1e-9)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, `
data:
  dir: /srv/election
  default_year: 2024
  sources:
    - tokyo-2024.csv
    - /abs/meguro.csv
  national: elections/shugiin_2024.json
server:
  port: 9000
report:
  theme: dark
logging:
  level: debug
  format: json
telemetry:
  otlp_endpoint: localhost:4317
  sample_ratio: 0.25
`))
	require.NoError(t, err)

	assert.Equal(t, 2024, cfg.Data.DefaultYear)
	assert.Equal(t, []string{"/srv/election/tokyo-2024.csv", "/abs/meguro.csv"}, cfg.Data.SourcePaths())
	assert.Equal(t, "/srv/election/elections/shugiin_2024.json", cfg.Data.Resolve(cfg.Data.National))
	assert.Empty(t, cfg.Data.Resolve(""))
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "dark", cfg.Report.Theme)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.InDelta(t, 0.25, cfg.Telemetry.SampleRatio, 1e-9)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("SENKYO_SERVER_PORT", "9090")
	t.Setenv("SENKYO_DATA_DIR", "/tmp/env-data")
	t.Setenv("SENKYO_LOGGING_LEVEL", "warn")

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/env-data", cfg.Data.Dir)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "port", content: "server:\n  port: 70000\n", want: config.ErrInvalidPort},
		{name: "year", content: "data:\n  default_year: 0\n", want: config.ErrInvalidYear},
		{name: "level", content: "logging:\n  level: loud\n", want: config.ErrInvalidLogLevel},
		{name: "format", content: "logging:\n  format: xml\n", want: config.ErrInvalidLogFormat},
		{name: "ratio", content: "telemetry:\n  sample_ratio: 2\n", want: config.ErrInvalidSampleRatio},
		{name: "theme", content: "report:\n  theme: neon\n", want: config.ErrInvalidTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadConfig_BadFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "server: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
