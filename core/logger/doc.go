// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different
// environments (development vs production).
//
// # Correlation
//
// The diary engine tags every transaction's log lines with a generated
// txn_id field via logger.With, so the load/persist/cache steps of one
// transaction can be correlated in aggregated logs.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Store opened")
package logger
