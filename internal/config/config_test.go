package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4000, cfg.Chunker.MaxChunkSize)
	assert.Equal(t, "gemini", cfg.Translator.Provider)
	assert.Equal(t, "Arabic", cfg.Translator.SourceLang)
	assert.Equal(t, "Italian", cfg.Translator.TargetLang)
	assert.Equal(t, []string{"ara", "ita"}, cfg.OCR.Languages)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.GreaterOrEqual(t, cfg.Parallel.MaxWorkers, 1)

	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"zero chunk size", func(c *Config) { c.Chunker.MaxChunkSize = 0 }},
		{"negative chunk size", func(c *Config) { c.Chunker.MaxChunkSize = -1 }},
		{"unknown provider", func(c *Config) { c.Translator.Provider = "deepl" }},
		{"missing target language", func(c *Config) { c.Translator.TargetLang = "" }},
		{"same languages", func(c *Config) { c.Translator.TargetLang = "arabic" }},
		{"no models", func(c *Config) { c.Translator.Models = nil }},
		{"zero workers", func(c *Config) { c.Parallel.MaxWorkers = 0 }},
		{"bad output format", func(c *Config) { c.Output.Format = "xml" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"auth without credentials", func(c *Config) {
			c.Auth.Enabled = true
			c.Auth.CredentialsFile = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoader_LoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "translater.yaml")
	content := []byte(`
log_level: debug
chunker:
  max_chunk_size: 2500
translator:
  target_lang: English
server:
  port: 9090
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	loader := &Loader{v: viper.New()}
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2500, cfg.Chunker.MaxChunkSize)
	assert.Equal(t, "English", cfg.Translator.TargetLang)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, "Arabic", cfg.Translator.SourceLang)
}

func TestLoader_LoadWithFile_Missing(t *testing.T) {
	loader := &Loader{v: viper.New()}
	_, err := loader.LoadWithFile("/nonexistent/translater.yaml")
	assert.Error(t, err)
}

func TestLoader_LoadWithFile_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "translater.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunker:\n  max_chunk_size: -5\n"), 0o600))

	loader := &Loader{v: viper.New()}
	_, err := loader.LoadWithFile(path)
	assert.Error(t, err)
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	require.NoError(t, GenerateDefaultConfigFile(path))

	loader := &Loader{v: viper.New()}
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Chunker.MaxChunkSize)
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	assert.Contains(t, paths, ".")
	assert.Contains(t, paths, "/etc/translater")
}
