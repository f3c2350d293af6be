// Package config loads yaml-fixer settings from defaults, a TOML file and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"yaml-fixer/internal/common"
	"yaml-fixer/internal/fixer"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = ".yaml-fixer.toml"

// Config holds all settings.
type Config struct {
	Fixer     FixerConfig     `toml:"fixer"`
	Server    ServerConfig    `toml:"server"`
	Workspace WorkspaceConfig `toml:"workspace"`
	Log       LogConfig       `toml:"log"`
}

// FixerConfig mirrors fixer.Options.
type FixerConfig struct {
	IndentUnit          int     `toml:"indent_unit"`
	Aggressive          bool    `toml:"aggressive"`
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	MaxIterations       int     `toml:"max_iterations"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// MaxBodyBytes limits the size of a request document.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
	// TimeoutSeconds bounds the handling of one request.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// WorkspaceConfig configures multi-file runs and watch mode.
type WorkspaceConfig struct {
	// Jobs is the number of files fixed concurrently; 0 means one per CPU.
	Jobs int `toml:"jobs"`
	// Patterns are the globs matched under a directory argument.
	Patterns []string `toml:"patterns"`
	// DebounceMillis delays refixing a file after its last write event.
	DebounceMillis int `toml:"debounce_ms"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	opts := fixer.DefaultOptions()

	return Config{
		Fixer: FixerConfig{
			IndentUnit:          opts.IndentUnit,
			Aggressive:          opts.Aggressive,
			ConfidenceThreshold: opts.ConfidenceThreshold,
			MaxIterations:       opts.MaxIterations,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxBodyBytes:   1 << 20,
			TimeoutSeconds: 10,
		},
		Workspace: WorkspaceConfig{
			Patterns:       []string{"**/*.yaml", "**/*.yml"},
			DebounceMillis: 200,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds and validates the configuration. See Read.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read builds the configuration without validating it, so callers can
// apply further overrides first. path names a TOML file; when empty,
// DefaultFile is used if it exists. A .env file in the working directory
// is loaded into the environment first if present.
func Read(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile overlays the settings defined in a TOML file. Keys the file
// does not define keep their current value; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}

		return fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("workspace", "patterns") && len(c.Workspace.Patterns) == 0 {
		return fmt.Errorf("config %s: workspace.patterns must not be empty", path)
	}

	return nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Fixer.IndentUnit < 1 {
		return fmt.Errorf("fixer.indent_unit must be at least 1, got %d", c.Fixer.IndentUnit)
	}

	if !common.IsInRange(0, c.Fixer.ConfidenceThreshold, 1) {
		return fmt.Errorf("fixer.confidence_threshold must be within [0, 1], got %g", c.Fixer.ConfidenceThreshold)
	}

	if c.Fixer.MaxIterations < 1 {
		return fmt.Errorf("fixer.max_iterations must be at least 1, got %d", c.Fixer.MaxIterations)
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is required")
	}

	if c.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}

	if c.Workspace.Jobs < 0 {
		return fmt.Errorf("workspace.jobs must not be negative, got %d", c.Workspace.Jobs)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// Options converts the fixer settings.
func (c FixerConfig) Options() fixer.Options {
	return fixer.Options{
		IndentUnit:          c.IndentUnit,
		Aggressive:          c.Aggressive,
		ConfidenceThreshold: c.ConfidenceThreshold,
		MaxIterations:       c.MaxIterations,
	}
}
