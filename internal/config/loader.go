package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "translater"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "TRANSLATER"

	// APIKeyEnv names the environment variable holding the Gemini API key.
	// The key deliberately lives outside the config file hierarchy.
	APIKeyEnv = "GEMINI_API_KEY"
)

// Loader handles loading configuration from files, environment variables,
// and defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader on the global viper instance
// so that cobra flag bindings take effect.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load reads configuration from the search paths, applies environment
// variables and defaults, and validates the result. A missing config file is
// not an error.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return l.unmarshalAndValidate()
}

// LoadWithFile loads configuration from a specific file path. An empty path
// falls back to the standard search behavior.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}

	return l.unmarshalAndValidate()
}

func (l *Loader) unmarshalAndValidate() (*Config, error) {
	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// Set sets a value in the configuration, overriding files and environment.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// GetViper returns the underlying viper instance for flag binding.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}

	l.v.AddConfigPath("/etc/translater")

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "translater"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "translater"))
	}
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("chunker.max_chunk_size", defaults.Chunker.MaxChunkSize)

	l.v.SetDefault("ocr.enabled", defaults.OCR.Enabled)
	l.v.SetDefault("ocr.languages", defaults.OCR.Languages)
	l.v.SetDefault("ocr.dpi", defaults.OCR.DPI)

	l.v.SetDefault("translator.provider", defaults.Translator.Provider)
	l.v.SetDefault("translator.source_lang", defaults.Translator.SourceLang)
	l.v.SetDefault("translator.target_lang", defaults.Translator.TargetLang)
	l.v.SetDefault("translator.models", defaults.Translator.Models)
	l.v.SetDefault("translator.temperature", defaults.Translator.Temperature)

	l.v.SetDefault("parallel.max_workers", defaults.Parallel.MaxWorkers)

	l.v.SetDefault("output.format", defaults.Output.Format)

	l.v.SetDefault("server.host", defaults.Server.Host)
	l.v.SetDefault("server.port", defaults.Server.Port)
	l.v.SetDefault("server.cors_origin", defaults.Server.CORSOrigin)
	l.v.SetDefault("server.max_upload_mb", defaults.Server.MaxUploadMB)
	l.v.SetDefault("server.timeout_sec", defaults.Server.TimeoutSec)
	l.v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	l.v.SetDefault("server.rate_limit_per_min", defaults.Server.RateLimitPerMin)

	l.v.SetDefault("auth.enabled", defaults.Auth.Enabled)
	l.v.SetDefault("auth.credentials_file", defaults.Auth.CredentialsFile)
}

// APIKey reads the translation API key from the environment.
func APIKey() string {
	return os.Getenv(APIKeyEnv)
}

// GetConfigSearchPaths returns the paths where configuration files are
// searched, for diagnostics.
func GetConfigSearchPaths() []string {
	paths := []string{"."}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home, filepath.Join(home, ".config", "translater"))
	}
	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		paths = append(paths, filepath.Join(configDir, "translater"))
	}
	paths = append(paths, "/etc/translater")

	return paths
}

// GenerateDefaultConfigFile writes a config file populated with defaults.
func GenerateDefaultConfigFile(filename string) error {
	loader := &Loader{v: viper.New()}
	loader.setDefaults()

	if filename == "" {
		filename = "translater.yaml"
	}
	return loader.v.WriteConfigAs(filename)
}
