// Package shared holds helpers used across packages that belong to no single layer.
//
// The testutil subpackage captures slog output so tests can assert on what a
// component logged:
//
//	logger, logs := testutil.NewTestLogger(t)
//	svc := services.NewPayoutService(cfg, services.WithLogger(logger))
//	...
//	testutil.AssertLogContains(t, logs, slog.LevelWarn, "Export failed")
package shared
