// Package config loads shoebox settings from an optional YAML file with
// SHOEBOX_* environment overrides, and wires the global logger.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"shoebox/internal/domain"
)

// DefaultConcurrency bounds how many renames may be in flight at once.
const DefaultConcurrency = 200

// DefaultExtensions lists the media types handled out of the box.
var DefaultExtensions = []string{
	"jpg", "jpeg", "png", "gif", "tiff", "heic", "mov", "mp4", "raw",
}

// Config carries every tunable the application reads at startup.
type Config struct {
	// MaxFileNameLength bounds a synthesized filename including extension,
	// collision suffix and sort prefix.
	MaxFileNameLength int `yaml:"max_file_name_length"`
	// Concurrency is the rename admission width.
	Concurrency int `yaml:"concurrency"`
	// Extensions is the media file allowlist, matched case-insensitively.
	Extensions []string `yaml:"extensions"`
	// CachePath locates the metadata cache database; empty selects the
	// platform default under the XDG data directory.
	CachePath string `yaml:"cache_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is either text or json.
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxFileNameLength: domain.DefaultMaxFileNameLength,
		Concurrency:       DefaultConcurrency,
		Extensions:        DefaultExtensions,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load builds the configuration: defaults first, then the YAML file if one
// exists, then environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(Path()); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Path returns the config file location under the XDG config directory
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "shoebox.yaml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "shoebox", "config.yaml")
}

// loadFile merges the YAML file at path into the configuration. A missing
// file is not an error.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// loadEnv merges SHOEBOX_* environment variables into the configuration.
func (c *Config) loadEnv() error {
	if v := os.Getenv("SHOEBOX_MAX_FILE_NAME_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SHOEBOX_MAX_FILE_NAME_LENGTH: invalid integer %q", v)
		}
		c.MaxFileNameLength = n
	}
	if v := os.Getenv("SHOEBOX_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SHOEBOX_CONCURRENCY: invalid integer %q", v)
		}
		c.Concurrency = n
	}
	if v := os.Getenv("SHOEBOX_EXTENSIONS"); v != "" {
		c.Extensions = strings.Split(v, ",")
	}
	if v := os.Getenv("SHOEBOX_CACHE_PATH"); v != "" {
		c.CachePath = v
	}
	if v := os.Getenv("SHOEBOX_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SHOEBOX_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	return nil
}

// Validate checks for values the engine cannot run with
func (c *Config) Validate() error {
	if c.MaxFileNameLength < 1 {
		return fmt.Errorf("max_file_name_length must be positive, got %d", c.MaxFileNameLength)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must list at least one media type")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("log_format must be json or text, got %q", c.LogFormat)
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ExtensionSet returns the allowlist as a domain set
func (c *Config) ExtensionSet() domain.ExtensionSet {
	return domain.NewExtensionSet(c.Extensions)
}

// SetupLogger configures the global slog logger from the configuration.
// Logs go to stderr so they never interleave with command output or the
// terminal UI.
func SetupLogger(cfg *Config) *slog.Logger {
	level, _ := parseLogLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts a level name into a slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q, valid: debug, info, warn, error", level)
	}
}
