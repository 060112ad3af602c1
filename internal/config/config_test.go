package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.Name != "synthetic" {
		t.Errorf("provider.name = %s, want synthetic", cfg.Provider.Name)
	}
	if cfg.Screener.DefaultLimit != 20 {
		t.Errorf("screener.default_limit = %d, want 20", cfg.Screener.DefaultLimit)
	}
	if cfg.Screener.BatchSize != 10 {
		t.Errorf("screener.batch_size = %d, want 10", cfg.Screener.BatchSize)
	}
	if cfg.Cache.TTLSeconds != 300 {
		t.Errorf("cache.ttl_seconds = %d, want 300", cfg.Cache.TTLSeconds)
	}
	if !cfg.News.Enabled {
		t.Error("news.enabled should default to true")
	}
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
provider:
  name: yahoo
  rate_per_second: 2
screener:
  universe: ["AAPL", "MSFT", "NVDA"]
  batch_size: 2
news:
  enabled: false
  feeds:
    - name: Test Feed
      url: https://example.com/rss
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Provider.Name != "yahoo" {
		t.Errorf("provider.name = %s, want yahoo", cfg.Provider.Name)
	}
	if cfg.Provider.RatePerSecond != 2 {
		t.Errorf("provider.rate_per_second = %d, want 2", cfg.Provider.RatePerSecond)
	}
	if len(cfg.Screener.Universe) != 3 || cfg.Screener.Universe[0] != "AAPL" {
		t.Errorf("screener.universe = %v", cfg.Screener.Universe)
	}
	if cfg.News.Enabled {
		t.Error("news.enabled should be false")
	}
	if len(cfg.News.Feeds) != 1 || cfg.News.Feeds[0].Name != "Test Feed" {
		t.Errorf("news.feeds = %v", cfg.News.Feeds)
	}
	// Defaults still apply for keys the file omits.
	if cfg.Screener.DefaultLimit != 20 {
		t.Errorf("screener.default_limit = %d, want default 20", cfg.Screener.DefaultLimit)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("STOCKSCOPE_PROVIDER_NAME", "yahoo")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.Name != "yahoo" {
		t.Errorf("provider.name = %s, want yahoo from env", cfg.Provider.Name)
	}
}
