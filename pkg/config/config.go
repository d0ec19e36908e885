package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Service  ServiceConfig  `koanf:"service"`
	Logger   LoggerConfig   `koanf:"logger"`
	Provider ProviderConfig `koanf:"provider"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Storage  StorageConfig  `koanf:"storage"`
}

// ServiceConfig contains service metadata.
type ServiceConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // dev, staging, production
}

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level       string `koanf:"level"`  // debug, info, warn, error
	Format      string `koanf:"format"` // json, console
	Development bool   `koanf:"development"`
}

// ProviderConfig contains remote movie metadata provider settings.
type ProviderConfig struct {
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	APIKey       string        `koanf:"api_key"`
	Language     string        `koanf:"language"`
	Region       string        `koanf:"region"`
	Timeout      time.Duration `koanf:"timeout"`
}

// CatalogConfig contains catalog engine tuning.
type CatalogConfig struct {
	SearchDebounce time.Duration `koanf:"search_debounce"`
	DetailCacheTTL time.Duration `koanf:"detail_cache_ttl"`
}

// StorageConfig contains local persistent storage settings.
type StorageConfig struct {
	Path string `koanf:"path"` // sqlite database file
}

// Default returns the default application configuration.
func Default() *AppConfig {
	return &AppConfig{
		Service: ServiceConfig{
			Name:        "kino",
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			Development: true,
		},
		Provider: ProviderConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Language:     "pt-BR",
			Region:       "BR",
			Timeout:      10 * time.Second,
		},
		Catalog: CatalogConfig{
			SearchDebounce: 500 * time.Millisecond,
			DetailCacheTTL: 5 * time.Minute,
		},
		Storage: StorageConfig{
			Path: "kino.db",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *AppConfig) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.Region == "" {
		return fmt.Errorf("provider.region is required")
	}
	if c.Catalog.SearchDebounce < 0 {
		return fmt.Errorf("catalog.search_debounce cannot be negative")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	return nil
}

// Manager handles configuration loading and parsing.
type Manager struct {
	k           *koanf.Koanf
	configPaths []string
}

// NewManager creates a new configuration manager.
func NewManager(configPath string) *Manager {
	paths := []string{
		"config.yaml",
		"config.json",
		"configs/kino.yaml",
		"configs/kino.json",
	}
	if configPath != "" {
		paths = append([]string{configPath}, paths...)
	}

	return &Manager{
		k:           koanf.New("."),
		configPaths: paths,
	}
}

// Load loads configuration from defaults, files and environment, in
// increasing order of precedence.
func Load(configPath string) (*AppConfig, error) {
	m := NewManager(configPath)
	cfg := Default()

	if err := m.k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	for _, path := range m.configPaths {
		if err := m.loadFromFile(path); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		}
	}

	if err := m.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := m.k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a file.
func (m *Manager) loadFromFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	return m.k.Load(file.Provider(path), parser)
}

// loadFromEnv loads configuration from environment variables.
func (m *Manager) loadFromEnv() error {
	const prefix = "KINO_"

	// Convert KINO_PROVIDER_API_KEY to provider.api_key
	return m.k.Load(env.Provider(prefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, prefix))
		parts := strings.SplitN(key, "_", 2)
		if len(parts) == 2 {
			return parts[0] + "." + parts[1]
		}
		return key
	}), nil)
}
