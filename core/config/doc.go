// Package config provides configuration management for rados-compare.
//
// It utilizes godotenv and Viper for loading configuration from a .env file and
// environment variables. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - BackendA / BackendB: CEPH_A_* and CEPH_B_* endpoint and credentials
//   - OutputDir: PATH_TO_FILE_OUTPUT_DIR, must exist before the run
//   - Report: report format and file names (REPORT_*)
//   - Metrics: optional Prometheus textfile (METRICS_*)
//   - Log: logging level and format (LOG_*)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
