// Package config provides configuration loading and validation for senkyo.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidPort        = errors.New("invalid server port")
	ErrInvalidYear        = errors.New("default year must be positive")
	ErrInvalidLogLevel    = errors.New("unknown log level")
	ErrInvalidLogFormat   = errors.New("unknown log format")
	ErrInvalidSampleRatio = errors.New("sample ratio must be within [0, 1]")
	ErrInvalidTheme       = errors.New("unknown report theme")
)

// EnvPrefix prefixes every environment override, e.g. SENKYO_SERVER_PORT.
const EnvPrefix = "SENKYO"

const maxPort = 65535

// Config holds all configuration for senkyo.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Server    ServerConfig    `mapstructure:"server"`
	Report    ReportConfig    `mapstructure:"report"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// DataConfig locates the result files.
type DataConfig struct {
	Dir         string   `mapstructure:"dir"`
	DefaultYear int      `mapstructure:"default_year"`
	Sources     []string `mapstructure:"sources"`
	National    string   `mapstructure:"national"`
	Tiles       string   `mapstructure:"tiles"`
	Trend       string   `mapstructure:"trend"`
	Wards       string   `mapstructure:"wards"`
	Master      string   `mapstructure:"master"`
}

// Resolve returns path joined to Dir unless it is empty or absolute.
func (d DataConfig) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || d.Dir == "" {
		return path
	}

	return filepath.Join(d.Dir, path)
}

// SourcePaths returns the CSV sources resolved against Dir.
func (d DataConfig) SourcePaths() []string {
	out := make([]string, len(d.Sources))
	for i, s := range d.Sources {
		out[i] = d.Resolve(s)
	}

	return out
}

// ServerConfig holds HTTP view configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ReportConfig holds HTML report settings.
type ReportConfig struct {
	Theme string `mapstructure:"theme"`
	Title string `mapstructure:"title"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OpenTelemetry settings. Tracing and metrics export
// stay off while OTLPEndpoint is empty.
type TelemetryConfig struct {
	OTLPEndpoint string            `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool              `mapstructure:"otlp_insecure"`
	OTLPHeaders  map[string]string `mapstructure:"otlp_headers"`
	SampleRatio  float64           `mapstructure:"sample_ratio"`
	Environment  string            `mapstructure:"environment"`
}

// LoadConfig loads configuration from file and environment variables. An
// empty path searches for senkyo.yaml in the working directory, ./config and
// the user config directory; not finding one is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("senkyo")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")

		if home, err := os.UserHomeDir(); err == nil {
			viperCfg.AddConfigPath(filepath.Join(home, ".config", "senkyo"))
		}
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("data.dir", DefaultDataDir)
	viperCfg.SetDefault("data.default_year", DefaultYear)
	viperCfg.SetDefault("data.sources", []string{})
	viperCfg.SetDefault("data.national", "")
	viperCfg.SetDefault("data.tiles", "")
	viperCfg.SetDefault("data.trend", "")
	viperCfg.SetDefault("data.wards", "")
	viperCfg.SetDefault("data.master", "")

	viperCfg.SetDefault("server.host", DefaultHost)
	viperCfg.SetDefault("server.port", DefaultPort)
	viperCfg.SetDefault("server.read_timeout", "15s")
	viperCfg.SetDefault("server.write_timeout", "30s")
	viperCfg.SetDefault("server.idle_timeout", "60s")

	viperCfg.SetDefault("report.theme", DefaultTheme)
	viperCfg.SetDefault("report.title", DefaultTitle)

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.sample_ratio", 1.0)
	viperCfg.SetDefault("telemetry.environment", "")
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	themes     = []string{"light", "dark"}
)

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > maxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, config.Server.Port)
	}

	if config.Data.DefaultYear <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, config.Data.DefaultYear)
	}

	if !slices.Contains(logLevels, strings.ToLower(config.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	if !slices.Contains(logFormats, strings.ToLower(config.Logging.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if config.Telemetry.SampleRatio < 0 || config.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, config.Telemetry.SampleRatio)
	}

	if !slices.Contains(themes, config.Report.Theme) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, config.Report.Theme)
	}

	return nil
}
