// Package config provides centralized configuration for the auditor.
// Defaults come from environment variables (optionally seeded from a .env
// file) and are validated up front so a bad setting fails before any input
// is read. Command-line flags override these values.
package config

// Config holds all application configuration.
type Config struct {
	Audit   AuditConfig
	Export  ExportConfig
	Logging LoggingConfig
}

// AuditConfig holds defaults for the audit run.
type AuditConfig struct {
	// SeverityThreshold is the minimum severity that is reported and blocks (default: warning)
	SeverityThreshold string `env:"DQ_SEVERITY_THRESHOLD" envDefault:"warning"`

	// FailOnWarning makes blocking issues exit with code 5 instead of 10 (default: false)
	FailOnWarning bool `env:"DQ_FAIL_ON_WARNING" envDefault:"false"`
}

// ExportConfig holds report export settings.
type ExportConfig struct {
	// CSVBOM prefixes CSV exports with a UTF-8 BOM for Excel (default: false)
	CSVBOM bool `env:"DQ_CSV_BOM" envDefault:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" envDefault:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}
