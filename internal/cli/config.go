package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/enix403/gen-sql-pdf/internal/browser"
	"github.com/enix403/gen-sql-pdf/internal/render"
	"github.com/enix403/gen-sql-pdf/pkg/types"
	"gopkg.in/yaml.v3"
)

// Config is an alias for the shared Config type
type Config = types.Config

// ConfigError is an alias for the shared ConfigError type
type ConfigError = types.ConfigError

// DefaultConfigFile is read when present and no --config flag is given
const DefaultConfigFile = "sqlpdf.yaml"

// DefaultConfig returns a configuration populated with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		Parallelism: 1,
		Theme:       render.DefaultTheme,
		Width:       browser.DefaultWidth,
		Height:      browser.DefaultHeight,
		Quality:     browser.DefaultQuality,
		Format:      "pdf",
		Output:      "output.pdf",
	}
}

// Flags holds the command-line values that may override the configuration.
// Zero values leave the configuration untouched.
type Flags struct {
	DSN        string
	Driver     string
	Output     string
	Format     string
	Title      string
	Theme      string
	ThemesDir  string
	ChromePath string
	Width      int
	Height     int
	Quality    int
	Parallel   int
	Timeout    time.Duration
	MaxRows    int
	Verbose    bool
}

// LoadConfig builds the configuration from defaults and, if one exists, a YAML
// config file. An explicitly named file must exist.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil {
		if len(bytes.TrimSpace(data)) == 0 {
			return config, nil
		}
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// ApplyFlagsToConfig applies command-line flag values to configuration
func ApplyFlagsToConfig(c *Config, f Flags) {
	if f.DSN != "" {
		c.DSN = f.DSN
	}
	if f.Driver != "" {
		c.Driver = f.Driver
	}
	if f.Output != "" {
		c.Output = f.Output
	}
	if f.Format != "" {
		c.Format = f.Format
	}
	if f.Title != "" {
		c.Title = f.Title
	}
	if f.Theme != "" {
		c.Theme = f.Theme
	}
	if f.ThemesDir != "" {
		c.ThemesDir = f.ThemesDir
	}
	if f.ChromePath != "" {
		c.ChromePath = f.ChromePath
	}
	if f.Width != 0 {
		c.Width = f.Width
	}
	if f.Height != 0 {
		c.Height = f.Height
	}
	if f.Quality != 0 {
		c.Quality = f.Quality
	}
	if f.Parallel != 0 {
		c.Parallelism = f.Parallel
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if f.MaxRows != 0 {
		c.MaxRows = f.MaxRows
	}
	if f.Verbose {
		c.Verbose = true
	}
}
