// Package config loads snipcheck configuration from YAML and merges CLI
// flag overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents snipcheck configuration options.
type Config struct {
	// MaxConcurrency is the maximum number of snippets evaluated in
	// parallel within a document (0 = one worker per snippet)
	MaxConcurrency int `yaml:"max_concurrency"`

	// SnippetTimeout is the execution budget per snippet
	SnippetTimeout time.Duration `yaml:"snippet_timeout"`

	// RunDeadline bounds the whole run (0 = unbounded)
	RunDeadline time.Duration `yaml:"run_deadline"`

	// LogLevel sets logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is where per-run log files are written (empty = disabled)
	LogDir string `yaml:"log_dir"`

	// Include is a regex matched against document filenames (without
	// extension); empty includes everything
	Include string `yaml:"include"`

	// Exclude is a regex that removes matching documents after Include
	Exclude string `yaml:"exclude"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		MaxConcurrency: 0,
		SnippetTimeout: 5 * time.Second,
		RunDeadline:    0,
		LogLevel:       "info",
		LogDir:         "",
		Include:        "",
		Exclude:        "",
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file returns defaults without error; a malformed file is an
// error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations arrive as strings ("5s", "2m") in YAML
	type yamlConfig struct {
		MaxConcurrency int    `yaml:"max_concurrency"`
		SnippetTimeout string `yaml:"snippet_timeout"`
		RunDeadline    string `yaml:"run_deadline"`
		LogLevel       string `yaml:"log_level"`
		LogDir         string `yaml:"log_dir"`
		Include        string `yaml:"include"`
		Exclude        string `yaml:"exclude"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.MaxConcurrency != 0 {
		cfg.MaxConcurrency = yamlCfg.MaxConcurrency
	}
	if yamlCfg.SnippetTimeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.SnippetTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid snippet_timeout %q: %w", yamlCfg.SnippetTimeout, err)
		}
		cfg.SnippetTimeout = timeout
	}
	if yamlCfg.RunDeadline != "" {
		deadline, err := time.ParseDuration(yamlCfg.RunDeadline)
		if err != nil {
			return nil, fmt.Errorf("invalid run_deadline %q: %w", yamlCfg.RunDeadline, err)
		}
		cfg.RunDeadline = deadline
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.Include != "" {
		cfg.Include = yamlCfg.Include
	}
	if yamlCfg.Exclude != "" {
		cfg.Exclude = yamlCfg.Exclude
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .snipcheck/config.yaml in the
// specified directory, falling back to defaults when absent.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".snipcheck", "config.yaml"))
}

// MergeWithFlags merges CLI flag values into the configuration. Non-nil
// pointers override file values, so flags take precedence.
func (c *Config) MergeWithFlags(maxConcurrency *int, snippetTimeout, runDeadline *time.Duration, logDir, include, exclude *string) {
	if maxConcurrency != nil {
		c.MaxConcurrency = *maxConcurrency
	}
	if snippetTimeout != nil {
		c.SnippetTimeout = *snippetTimeout
	}
	if runDeadline != nil {
		c.RunDeadline = *runDeadline
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if include != nil {
		c.Include = *include
	}
	if exclude != nil {
		c.Exclude = *exclude
	}
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be >= 0, got %d", c.MaxConcurrency)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.SnippetTimeout < 0 {
		return fmt.Errorf("snippet_timeout must be >= 0, got %v", c.SnippetTimeout)
	}
	if c.RunDeadline < 0 {
		return fmt.Errorf("run_deadline must be >= 0, got %v", c.RunDeadline)
	}

	return nil
}
