// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr" default:":5000"`
}

// StorageConfig represents catalog persistence configuration.
type StorageConfig struct {
	Driver    string `yaml:"driver" default:"file" validate:"oneof=file sqlite"`
	Path      string `yaml:"path" default:"data"`
	StateName string `yaml:"state_name" default:"estado" validate:"required"`
}

// EnrichmentConfig represents external metadata configuration.
type EnrichmentConfig struct {
	AlbumSources []SourceConfig `yaml:"album_sources" validate:"dive"`
	Lyrics       LyricsConfig   `yaml:"lyrics"`
}

// SourceConfig represents a single album source configuration.
type SourceConfig struct {
	Type     string         `yaml:"type" validate:"required,oneof=spotify lastfm"`
	Settings map[string]any `yaml:"settings"`
}

// LyricsConfig represents the lyrics provider configuration.
type LyricsConfig struct {
	APIKey     string  `yaml:"api_key"`
	RateLimit  float64 `yaml:"rate_limit" default:"2" validate:"gt=0"`
	TimeoutSec int     `yaml:"timeout_sec" default:"10" validate:"gte=1,lte=120"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values for credentials.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return Parse(data)
}

// Parse builds a configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// Default returns a configuration with every default applied and no album sources.
func Default() *Config {
	var cfg Config
	cfg.overrideFromEnv()
	// defaults.Set only fails on malformed tags.
	_ = defaults.Set(&cfg)
	return &cfg
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.sourceSettings("spotify")["client_id"] = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.sourceSettings("spotify")["client_secret"] = v
	}
	if v := os.Getenv("LASTFM_API_KEY"); v != "" {
		c.sourceSettings("lastfm")["api_key"] = v
	}
	if v := os.Getenv("MUSIXMATCH_API_KEY"); v != "" {
		c.Enrichment.Lyrics.APIKey = v
	}
	if v := os.Getenv("UNQFY_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
}

// sourceSettings returns the settings of the first album source of the given type.
// Returns a throwaway map if the source is not configured.
func (c *Config) sourceSettings(sourceType string) map[string]any {
	for i := range c.Enrichment.AlbumSources {
		if c.Enrichment.AlbumSources[i].Type == sourceType {
			if c.Enrichment.AlbumSources[i].Settings == nil {
				c.Enrichment.AlbumSources[i].Settings = make(map[string]any)
			}
			return c.Enrichment.AlbumSources[i].Settings
		}
	}
	return make(map[string]any)
}

// LyricsEnabled reports whether a lyrics provider can be created.
func (c *Config) LyricsEnabled() bool {
	return c.Enrichment.Lyrics.APIKey != ""
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
