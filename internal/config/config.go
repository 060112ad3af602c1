// Package config handles configuration loading for stockscope.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`
	Screener ScreenerConfig `mapstructure:"screener" yaml:"screener"`
	News     NewsConfig     `mapstructure:"news"     yaml:"news"`
	Cache    CacheConfig    `mapstructure:"cache"    yaml:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// ProviderConfig selects and tunes the market data source.
type ProviderConfig struct {
	Name          string `mapstructure:"name"            yaml:"name"` // "yahoo" or "synthetic"
	SyntheticSeed int64  `mapstructure:"synthetic_seed"  yaml:"synthetic_seed"`
	RatePerSecond int    `mapstructure:"rate_per_second" yaml:"rate_per_second"`
}

// ScreenerConfig tunes the top-losers scan.
type ScreenerConfig struct {
	// Universe is the symbol list to scan. Empty means the provider's
	// own universe (synthetic) or the built-in large-cap list (yahoo).
	Universe     []string `mapstructure:"universe"      yaml:"universe"`
	BatchSize    int      `mapstructure:"batch_size"    yaml:"batch_size"`
	DefaultLimit int      `mapstructure:"default_limit" yaml:"default_limit"`
}

// NewsConfig configures the RSS fallback news source.
type NewsConfig struct {
	Enabled bool         `mapstructure:"enabled" yaml:"enabled"`
	Feeds   []FeedConfig `mapstructure:"feeds"   yaml:"feeds"`
}

// FeedConfig is one RSS feed entry.
type FeedConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url"  yaml:"url"`
}

// CacheConfig holds quote/news cache settings.
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" yaml:"ttl_seconds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.stockscope/config.yaml (home directory)
//  3. /etc/stockscope/config.yaml (system)
//
// Environment variables override config file values.
// Format: STOCKSCOPE_<SECTION>_<KEY>, e.g., STOCKSCOPE_PROVIDER_NAME
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".stockscope"))
	v.AddConfigPath("/etc/stockscope")

	v.SetEnvPrefix("STOCKSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("STOCKSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.name", "synthetic")
	v.SetDefault("provider.synthetic_seed", 0)
	v.SetDefault("provider.rate_per_second", 5)

	v.SetDefault("screener.batch_size", 10)
	v.SetDefault("screener.default_limit", 20)

	v.SetDefault("news.enabled", true)

	v.SetDefault("cache.ttl_seconds", 300) // 5 minutes

	v.SetDefault("logging.level", "info")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
