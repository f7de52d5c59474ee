// Package config loads service settings from an optional TOML file with
// environment overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Addr     string `toml:"addr"`
	LogLevel string `toml:"log_level"`

	MaxFileSizeMB  int `toml:"max_file_size_mb"`
	MaxOutputWidth int `toml:"max_output_width"`

	DefaultWidth       int     `toml:"default_width"`
	DefaultStyle       string  `toml:"default_style"`
	DefaultSmoothing   float64 `toml:"default_smoothing"`
	DefaultAspectRatio float64 `toml:"default_aspect_ratio"`

	SupportedTypes []string `toml:"supported_types"`

	OpenRouter OpenRouter `toml:"openrouter"`
}

type OpenRouter struct {
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Default returns the built-in settings; the aspect ratio default is the
// golden ratio.
func Default() Config {
	return Config{
		Addr:               ":8080",
		LogLevel:           "info",
		MaxFileSizeMB:      50,
		MaxOutputWidth:     4096,
		DefaultWidth:       1200,
		DefaultStyle:       "gradient-fill",
		DefaultSmoothing:   0.7,
		DefaultAspectRatio: 1.618,
		SupportedTypes: []string{
			"image/jpeg", "image/png", "image/webp", "image/tiff",
		},
		OpenRouter: OpenRouter{
			Model:          "google/gemini-2.5-flash-image-preview",
			TimeoutSeconds: 90,
		},
	}
}

// Load reads the TOML file at path (skipped when path is empty) over the
// defaults, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if v := os.Getenv("CHROMAGLYPH_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CHROMAGLYPH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.OpenRouter.APIKey = v
	}
	if v := os.Getenv("OPENROUTER_MODEL"); v != "" {
		cfg.OpenRouter.Model = v
	}

	return cfg, nil
}

// MaxFileSizeBytes converts the configured megabyte cap.
func (c Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) << 20
}
