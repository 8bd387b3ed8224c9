// Package config provides configuration management for the payroll CLI.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. A YAML configuration file
//  3. Default values (lowest priority)
//
// The file is PAYROLL_CONFIG when set, otherwise the first of payroll.yaml and
// configs/payroll.yaml that exists. Unknown keys in the file are rejected.
//
// # Environment Variables
//
// All environment variables follow the pattern PAYROLL_<SECTION>_<KEY>:
//
//	PAYROLL_LOGGING_LEVEL=debug
//	PAYROLL_LOGGING_OUTPUT=both
//	PAYROLL_REPORT_PARSE_CONCURRENCY=8
//	PAYROLL_REPORT_OUTPUT_DIR=out
//	PAYROLL_REPORT_STRICT=true
//	PAYROLL_TELEMETRY_TRACING=true
//	PAYROLL_TELEMETRY_METRICS_FILE=payroll.prom
//
// # Example File
//
//	logging:
//	  level: info
//	  output: both
//	  file_path: logs/payroll.log
//	report:
//	  default_type: payout
//	  parse_concurrency: 4
//	telemetry:
//	  tracing: true
//	  trace_file: traces.json
package config
