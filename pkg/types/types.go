package types

import (
	"fmt"
	"strings"
	"time"
)

// Config holds runtime configuration combining the config file, flags, and defaults
type Config struct {
	// Database
	DSN     string `yaml:"db"`     // SQLite file path or PostgreSQL connection string
	Driver  string `yaml:"driver"` // "sqlite", "postgres", or empty to detect from DSN
	MaxRows int    `yaml:"max_rows"`

	// Execution
	Timeout     time.Duration `yaml:"timeout"`  // Per-statement timeout
	Parallelism int           `yaml:"parallel"` // Max concurrent page captures

	// Rendering
	Theme      string `yaml:"theme"`
	ThemesDir  string `yaml:"themes_dir"`
	ChromePath string `yaml:"chrome"` // Empty means look up Chrome on PATH
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Quality    int    `yaml:"quality"` // JPEG quality, 1-100

	// Output
	Title   string `yaml:"title"`
	Format  string `yaml:"format"` // pdf, html, or json
	Output  string `yaml:"output"` // Output path, - for stdout
	Verbose bool   `yaml:"verbose"`
}

var (
	validDrivers = []string{"", "sqlite", "postgres"}
	validFormats = []string{"pdf", "html", "json"}
)

// Validate checks the configuration and returns a *ConfigError for the first
// invalid field
func (c *Config) Validate() error {
	if c.DSN == "" {
		return &ConfigError{
			Field:      "db",
			Value:      c.DSN,
			Message:    "no database given",
			Suggestion: "pass --db with a SQLite file path or a postgres:// connection string",
		}
	}
	if !contains(validDrivers, c.Driver) {
		return &ConfigError{
			Field:      "driver",
			Value:      c.Driver,
			Message:    fmt.Sprintf("unknown driver %q", c.Driver),
			Suggestion: "use sqlite or postgres, or leave empty to detect from --db",
		}
	}
	if !contains(validFormats, c.Format) {
		return &ConfigError{
			Field:      "format",
			Value:      c.Format,
			Message:    fmt.Sprintf("unsupported format %q", c.Format),
			Suggestion: "use one of: " + strings.Join(validFormats, ", "),
		}
	}
	if c.Quality < 1 || c.Quality > 100 {
		return &ConfigError{
			Field:      "quality",
			Value:      c.Quality,
			Message:    "must be between 1 and 100",
			Suggestion: "use --quality 100 for the sharpest pages",
		}
	}
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Value: c.Width, Message: "must be positive"}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "height", Value: c.Height, Message: "must be positive"}
	}
	if c.Parallelism < 1 {
		return &ConfigError{
			Field:      "parallel",
			Value:      c.Parallelism,
			Message:    "must be at least 1",
			Suggestion: "use --parallel 1 to capture pages one at a time",
		}
	}
	if c.Timeout < 0 {
		return &ConfigError{Field: "timeout", Value: c.Timeout, Message: "must not be negative"}
	}
	if c.MaxRows < 0 {
		return &ConfigError{
			Field:      "max-rows",
			Value:      c.MaxRows,
			Message:    "must not be negative",
			Suggestion: "use 0 to keep every row",
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ConfigError describes an invalid configuration value
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	if e.Suggestion != "" {
		msg += "\nSuggestion: " + e.Suggestion
	}
	return msg
}
