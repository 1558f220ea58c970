package corpus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// CacheConfig describes the cache tiers a session should use. The zero
// value disables everything except the in-memory tier.
type CacheConfig struct {
	Memory     bool             `toml:"memory"`
	Persistent PersistentConfig `toml:"persistent"`
	Remote     RemoteConfig     `toml:"remote"`
}

// PersistentConfig configures the local SQLite tier
type PersistentConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// RemoteConfig configures the shared HTTP tier
type RemoteConfig struct {
	Enabled           bool    `toml:"enabled"`
	BaseURL           string  `toml:"base_url"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// DefaultCacheConfig returns the memory-only default configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Memory: true,
		Persistent: PersistentConfig{
			Path: defaultDatabasePath(),
		},
		Remote: RemoteConfig{
			TimeoutSeconds:    10,
			RequestsPerSecond: 4,
			Burst:             2,
		},
	}
}

// LoadCacheConfig reads a TOML cache configuration. A missing file yields
// the defaults.
func LoadCacheConfig(path string) (CacheConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultCacheConfig(), nil
	}
	if err != nil {
		return CacheConfig{}, fmt.Errorf("read cache config: %w", err)
	}

	config := DefaultCacheConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return CacheConfig{}, fmt.Errorf("parse cache config: %w", err)
	}
	return config, nil
}

// SaveCacheConfig writes a TOML cache configuration, creating parent
// directories as needed.
func SaveCacheConfig(path string, config CacheConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode cache config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache config: %w", err)
	}
	return nil
}

// BuildTiers constructs the configured tiers in consultation order:
// memory, then persistent, then remote. Callers close closable tiers when
// the owning session shuts down.
func (c CacheConfig) BuildTiers(logger *slog.Logger) ([]Tier, error) {
	var tiers []Tier

	if c.Memory {
		tiers = append(tiers, NewMemoryTier())
	}
	if c.Persistent.Enabled {
		path := c.Persistent.Path
		if path == "" {
			path = defaultDatabasePath()
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create cache directory: %w", err)
			}
		}
		tier, err := NewSQLiteTier(path)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}
	if c.Remote.Enabled {
		tiers = append(tiers, NewRemoteTierWithConfig(c.Remote.BaseURL, RemoteTierConfig{
			Timeout:           time.Duration(c.Remote.TimeoutSeconds) * time.Second,
			RequestsPerSecond: c.Remote.RequestsPerSecond,
			Burst:             c.Remote.Burst,
		}))
	}

	if logger != nil {
		names := make([]string, 0, len(tiers))
		for _, tier := range tiers {
			names = append(names, tier.Name())
		}
		logger.Debug("cache tiers configured", slog.Any("tiers", names))
	}
	return tiers, nil
}

// defaultDatabasePath places the corpus database under the user's cache
// directory, falling back to the working directory.
func defaultDatabasePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "textlayer.db"
	}
	return filepath.Join(dir, "textlayer", "corpus.db")
}
