// Package logger provides a structured logging facility based on Zap.
//
// # Correlation
//
// Every invocation of the tool gets a run identifier. WithRunID attaches it to a logger so
// that all entries of one audit run can be correlated; WithBackend scopes entries to the
// backend and bucket currently being listed.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log = logger.WithRunID(log, runID)
//	logger.WithBackend(log, "ceph_a", "photos").Info("Listing bucket")
package logger
