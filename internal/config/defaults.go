package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultBaseURL is the OpenAI-compatible Groq endpoint root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the model identifier sent with every completion request.
	DefaultModel = "llama3-8b-8192"
	// DefaultMaxContextChars is how much extracted text goes into a prompt.
	DefaultMaxContextChars = 3000
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.RequestTimeoutSeconds == 0 {
		cfg.Server.RequestTimeoutSeconds = 120
	}
	if cfg.Completion.BaseURL == "" {
		cfg.Completion.BaseURL = DefaultBaseURL
	}
	if cfg.Completion.Model == "" {
		cfg.Completion.Model = DefaultModel
	}
	if cfg.Completion.MaxContextChars == 0 {
		cfg.Completion.MaxContextChars = DefaultMaxContextChars
	}
	if cfg.Completion.TimeoutSeconds == 0 {
		cfg.Completion.TimeoutSeconds = 60
	}
	if cfg.Scrape.TimeoutSeconds == 0 {
		cfg.Scrape.TimeoutSeconds = 60
	}
	if cfg.Upload.Dir == "" {
		cfg.Upload.Dir = filepath.Join(os.TempDir(), "askdoc-uploads")
	}
	if cfg.Upload.MaxBytes == 0 {
		cfg.Upload.MaxBytes = 32 << 20
	}
	if cfg.Log.File != "" {
		if cfg.Log.MaxSizeMB == 0 {
			cfg.Log.MaxSizeMB = 100
		}
		if cfg.Log.MaxBackups == 0 {
			cfg.Log.MaxBackups = 3
		}
		if cfg.Log.MaxAgeDays == 0 {
			cfg.Log.MaxAgeDays = 28
		}
	}
}
