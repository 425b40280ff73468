package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0, cfg.MaxConcurrency)
	assert.Equal(t, 5*time.Second, cfg.SnippetTimeout)
	assert.Equal(t, time.Duration(0), cfg.RunDeadline)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
max_concurrency: 4
snippet_timeout: 2s
run_deadline: 10m
log_level: debug
log_dir: /tmp/snipcheck-logs
include: guide
exclude: draft
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, 2*time.Second, cfg.SnippetTimeout)
	assert.Equal(t, 10*time.Minute, cfg.RunDeadline)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/snipcheck-logs", cfg.LogDir)
	assert.Equal(t, "guide", cfg.Include)
	assert.Equal(t, "draft", cfg.Exclude)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "max_concurrency: 2\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.Equal(t, 5*time.Second, cfg.SnippetTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "max_concurrency: [not an int\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	path := writeConfig(t, "snippet_timeout: soon\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snippet_timeout")
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".snipcheck"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".snipcheck", "config.yaml"),
		[]byte("log_level: warn\n"), 0644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()

	maxConcurrency := 8
	timeout := 30 * time.Second
	logDir := "logs"
	cfg.MergeWithFlags(&maxConcurrency, &timeout, nil, &logDir, nil, nil)

	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, 30*time.Second, cfg.SnippetTimeout)
	assert.Equal(t, "logs", cfg.LogDir)
	// nil pointers leave file values untouched
	assert.Equal(t, time.Duration(0), cfg.RunDeadline)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "negative concurrency", mutate: func(c *Config) { c.MaxConcurrency = -1 }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.SnippetTimeout = -time.Second }, wantErr: true},
		{name: "negative deadline", mutate: func(c *Config) { c.RunDeadline = -time.Minute }, wantErr: true},
		{name: "bogus log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "trace level accepted", mutate: func(c *Config) { c.LogLevel = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
