package config

// Application constants
const (
	// AppName is the command name used in usage output
	AppName = "payroll"

	// EnvPrefix namespaces every environment variable, e.g. PAYROLL_LOGGING_LEVEL
	EnvPrefix = "PAYROLL"

	// ConfigFileEnv names an explicit config file, overriding the search locations
	ConfigFileEnv = "PAYROLL_CONFIG"

	// Report defaults
	DefaultReportType       = "payout"
	DefaultParseConcurrency = 4

	// Logging defaults
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "json"
	DefaultLogOutput   = "stderr"
	DefaultLogFilePath = "logs/payroll.log"

	// Telemetry defaults
	DefaultServiceName = "payroll"
)

// Logging outputs
const (
	LogOutputStderr = "stderr"
	LogOutputFile   = "file"
	LogOutputBoth   = "both"
)

// configFileLocations are searched in order when ConfigFileEnv is unset
var configFileLocations = []string{
	"payroll.yaml",
	"configs/payroll.yaml",
}
