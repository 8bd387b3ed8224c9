// Package services implements the business logic layer of the payroll CLI.
//
// PayoutService runs the whole pipeline for one request:
//
//  1. Resolve the report type and validate every source name before any I/O
//  2. Parse all input files concurrently, bounded by report.parse_concurrency
//  3. Feed employees into the report in file order, then row order
//  4. Render the text report
//  5. Export the structured report when an output path is given
//
// Parse errors abort the run and no report is produced. An export error does not: the
// rendered text is still returned and the error is reported in Result.ExportErr.
//
// Each run carries a run ID in its context so every log line of the run can be
// correlated, and each stage is wrapped in a span.
package services
