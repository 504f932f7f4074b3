package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"parsecheck/internal/core/errors"
)

type Config struct {
	Version       int                 `toml:"version"`
	Paths         []string            `toml:"paths"`
	Languages     map[string]Language `toml:"languages"`
	Exclude       Exclude             `toml:"exclude"`
	Watch         Watch               `toml:"watch"`
	Limits        Limits              `toml:"limits"`
	Observability Observability       `toml:"observability"`
}

type Language struct {
	Enabled    *bool    `toml:"enabled"`
	Extensions []string `toml:"extensions"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce       time.Duration `toml:"debounce"`
	MaxRevalidates float64       `toml:"max_revalidates_per_second"`
}

type Limits struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Version: 1,
		Paths:   []string{"."},
		Exclude: Exclude{
			Dirs: []string{".git", "node_modules", "vendor"},
		},
		Watch: Watch{
			Debounce:       500 * time.Millisecond,
			MaxRevalidates: 10,
		},
		Limits: Limits{
			MaxDiagnostics: 100,
		},
	}
}

// Load reads and validates a TOML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeNotFound, "read config file")
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that TOML decoding cannot express.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return errors.New(errors.CodeValidationError, "unsupported config version")
	}
	if len(c.Paths) == 0 {
		return errors.New(errors.CodeValidationError, "at least one path is required")
	}
	if c.Limits.MaxDiagnostics < 0 {
		return errors.New(errors.CodeValidationError, "limits.max_diagnostics must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return errors.New(errors.CodeValidationError, "watch.debounce must not be negative")
	}
	if c.Watch.MaxRevalidates < 0 {
		return errors.New(errors.CodeValidationError, "watch.max_revalidates_per_second must not be negative")
	}
	return nil
}
