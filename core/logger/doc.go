// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for CLI runs, with a console encoder for
// interactive use and a JSON encoder for log shipping.
//
// # Run Correlation
//
// Every command run gets its own run id (a UUID). WithRunID attaches it to the
// logger so that all lines written during one scan or cleanup can be correlated,
// including per-asset warnings emitted from concurrent workers.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log, logger.NewRunID())
//	log.Info("Scan started")
package logger
