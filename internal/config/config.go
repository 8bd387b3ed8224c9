package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "payrollcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ReportConfig contains report generation settings
type ReportConfig struct {
	// DefaultType is used when no report type is given on the command line.
	DefaultType string `yaml:"default_type" envconfig:"DEFAULT_TYPE"`
	// ParseConcurrency bounds how many input files are parsed at once.
	ParseConcurrency int `yaml:"parse_concurrency" envconfig:"PARSE_CONCURRENCY"`
	// OutputDir is prepended to relative export destinations.
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	// Strict rejects rows with negative hours or rates. Off by default: rows are only
	// checked for structure.
	Strict bool `yaml:"strict" envconfig:"STRICT"`
}

// TelemetryConfig contains tracing and metrics settings
type TelemetryConfig struct {
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	Tracing     bool   `yaml:"tracing" envconfig:"TRACING"`
	// TraceFile receives finished spans as JSON; empty means stderr.
	TraceFile string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	// MetricsFile receives a Prometheus text dump after each run; empty disables it.
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, the config file if one exists, and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit config file. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to load config from %s", path), err)
		}
	}

	// Fields carry no envconfig defaults, so unset variables leave file values intact.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg; keys missing from the file keep their value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.UnmarshalStrict(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return apperrors.NewConfigError(fmt.Sprintf("invalid log level: %q", c.Logging.Level), nil)
	}

	// Logs are always JSON
	c.Logging.Format = DefaultLogFormat

	c.Logging.Output = strings.ToLower(c.Logging.Output)
	switch c.Logging.Output {
	case LogOutputStderr:
	case LogOutputFile, LogOutputBoth:
		if c.Logging.FilePath == "" {
			return apperrors.NewConfigError(
				fmt.Sprintf("logging output %q requires a file path", c.Logging.Output), nil)
		}
	default:
		return apperrors.NewConfigError(
			fmt.Sprintf("invalid logging output %q, expected one of: stderr, file, both", c.Logging.Output), nil)
	}

	if c.Report.DefaultType == "" {
		return apperrors.NewConfigError("report default type must not be empty", nil)
	}

	if c.Report.ParseConcurrency < 1 {
		return apperrors.NewConfigError(
			fmt.Sprintf("report parse concurrency must be at least 1, got %d", c.Report.ParseConcurrency), nil)
	}

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = DefaultServiceName
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}

	for _, location := range configFileLocations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFilePath,
		},
		Report: ReportConfig{
			DefaultType:      DefaultReportType,
			ParseConcurrency: DefaultParseConcurrency,
		},
		Telemetry: TelemetryConfig{
			ServiceName: DefaultServiceName,
			Tracing:     false,
		},
	}
}
