package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Config represents the complete configuration for the translater
// application. It covers all commands (pdf, image, docx, chunk, serve) and
// supports loading from configuration files, environment variables, and
// command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Chunking configuration
	Chunker ChunkerConfig `mapstructure:"chunker" yaml:"chunker" json:"chunker"`

	// OCR configuration
	OCR OCRConfig `mapstructure:"ocr" yaml:"ocr" json:"ocr"`

	// Translation backend configuration
	Translator TranslatorConfig `mapstructure:"translator" yaml:"translator" json:"translator"`

	// Parallel processing configuration
	Parallel ParallelConfig `mapstructure:"parallel" yaml:"parallel" json:"parallel"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Authentication configuration (for serve command)
	Auth AuthConfig `mapstructure:"auth" yaml:"auth" json:"auth"`
}

// ChunkerConfig contains text chunking settings.
type ChunkerConfig struct {
	MaxChunkSize int `mapstructure:"max_chunk_size" yaml:"max_chunk_size" json:"max_chunk_size"`
}

// OCRConfig contains recognition settings. DPI is passed to tesseract as
// user_defined_dpi; zero leaves the engine's own estimate in place.
type OCRConfig struct {
	Enabled   bool     `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Languages []string `mapstructure:"languages" yaml:"languages" json:"languages"`
	DPI       int      `mapstructure:"dpi" yaml:"dpi" json:"dpi"`
}

// TranslatorConfig contains translation backend settings. The API key is
// never read from configuration files; it comes from the environment only.
type TranslatorConfig struct {
	Provider    string   `mapstructure:"provider" yaml:"provider" json:"provider"`
	SourceLang  string   `mapstructure:"source_lang" yaml:"source_lang" json:"source_lang"`
	TargetLang  string   `mapstructure:"target_lang" yaml:"target_lang" json:"target_lang"`
	Models      []string `mapstructure:"models" yaml:"models" json:"models"`
	Temperature float32  `mapstructure:"temperature" yaml:"temperature" json:"temperature"`
}

// ParallelConfig contains worker pool settings for chunk translation.
type ParallelConfig struct {
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers" json:"max_workers"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	RateLimitPerMin int    `mapstructure:"rate_limit_per_min" yaml:"rate_limit_per_min" json:"rate_limit_per_min"`
}

// AuthConfig contains authentication settings for the HTTP server.
type AuthConfig struct {
	Enabled         bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file" json:"credentials_file"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Chunker: ChunkerConfig{
			MaxChunkSize: 4000,
		},
		OCR: OCRConfig{
			Enabled:   true,
			Languages: []string{"ara", "ita"},
			DPI:       300,
		},
		Translator: TranslatorConfig{
			Provider:    "gemini",
			SourceLang:  "Arabic",
			TargetLang:  "Italian",
			Models:      []string{"gemini-2.0-flash-exp", "gemini-1.5-flash"},
			Temperature: 0.1,
		},
		Parallel: ParallelConfig{
			MaxWorkers: runtime.NumCPU(),
		},
		Output: OutputConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     50,
			TimeoutSec:      300,
			ShutdownTimeout: 10,
			RateLimitPerMin: 30,
		},
		Auth: AuthConfig{
			Enabled:         false,
			CredentialsFile: "credentials.json",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if c.LogLevel != "" && !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.Chunker.MaxChunkSize <= 0 {
		return fmt.Errorf("chunker max_chunk_size must be positive, got %d", c.Chunker.MaxChunkSize)
	}

	if c.Translator.Provider != "gemini" {
		return fmt.Errorf("unsupported translation provider: %s", c.Translator.Provider)
	}
	if c.Translator.SourceLang == "" || c.Translator.TargetLang == "" {
		return fmt.Errorf("source and target languages must be set")
	}
	if strings.EqualFold(c.Translator.SourceLang, c.Translator.TargetLang) {
		return fmt.Errorf("source and target languages must differ")
	}
	if len(c.Translator.Models) == 0 {
		return fmt.Errorf("at least one translation model must be configured")
	}

	if c.OCR.DPI < 0 {
		return fmt.Errorf("ocr dpi must not be negative, got %d", c.OCR.DPI)
	}

	if c.Parallel.MaxWorkers < 1 {
		return fmt.Errorf("parallel max_workers must be at least 1, got %d", c.Parallel.MaxWorkers)
	}

	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server max_upload_mb must be at least 1, got %d", c.Server.MaxUploadMB)
	}

	if c.Auth.Enabled && c.Auth.CredentialsFile == "" {
		return fmt.Errorf("auth is enabled but no credentials file is configured")
	}

	return nil
}
