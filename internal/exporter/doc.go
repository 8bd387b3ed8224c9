// Package exporter writes aggregated report data to files in a structured format.
//
// The format is chosen from the destination's file suffix (case-insensitive):
//
//	.json         indented JSON, department order preserved
//	.yaml, .yml   YAML mapping, department order preserved
//	.csv          one row per employee, UTF-8 BOM for Excel
//	.xlsx         Excel workbook with per-department totals
//
// Example usage:
//
//	exp := exporter.New(logger)
//	if err := exp.Save(ctx, "out/report.json", payout.Data()); err != nil {
//	    // unsupported suffixes fail before anything is written
//	}
//
// Writes go to a temporary file in the destination directory which is renamed over
// the destination once fully written, so an existing file is either replaced whole
// or left untouched.
package exporter
