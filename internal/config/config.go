// Package config provides configuration loading and structs for the askdoc server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable holding the completion API credential.
const APIKeyEnv = "GROQ_API_KEY"

// ErrMissingAPIKey is returned by Validate when no credential is configured.
var ErrMissingAPIKey = errors.New(APIKeyEnv + " is not set")

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Completion CompletionConfig `yaml:"completion"`
	Scrape     ScrapeConfig     `yaml:"scrape"`
	Upload     UploadConfig     `yaml:"upload"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host                  string `yaml:"host"`
	Port                  int    `yaml:"port"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// CompletionConfig holds the chat completion endpoint settings.
type CompletionConfig struct {
	BaseURL         string `yaml:"base_url"`
	Model           string `yaml:"model"`
	APIKey          string `yaml:"api_key"`
	MaxContextChars int    `yaml:"max_context_chars"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"` // negative disables
}

// ScrapeConfig holds web page fetch settings.
type ScrapeConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"` // negative disables
}

// UploadConfig holds temporary upload settings.
type UploadConfig struct {
	Dir      string `yaml:"dir"`
	MaxBytes int64  `yaml:"max_bytes"`
}

// LogConfig holds optional rotating log file settings.
type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Load builds the configuration. When path is empty only defaults and the
// environment are used; otherwise the YAML file at path must exist and parse.
// A .env file in the working directory is loaded first if present.
// The result is validated: a missing API key is an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)

	if path != "" {
		cfg.Upload.Dir = expandPath(cfg.Upload.Dir, filepath.Dir(path))
		if cfg.Log.File != "" {
			cfg.Log.File = expandPath(cfg.Log.File, filepath.Dir(path))
		}
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports configuration that prevents the server from starting.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Completion.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	return nil
}

// applyEnv overrides file values with environment variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv(APIKeyEnv); v != "" {
		cfg.Completion.APIKey = v
	}
	if v := os.Getenv("ASKDOC_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("ASKDOC_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ASKDOC_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("ASKDOC_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ASKDOC_DEBUG %q: %w", v, err)
		}
		cfg.Debug = debug
	}
	return nil
}

// expandPath makes a relative path absolute. Paths starting with "./" are relative
// to configDir; other relative paths are left to the process working directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	return path
}
