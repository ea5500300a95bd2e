package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
http_server_addr: ":9090"
session_id: s1
api:
  base_url: https://shop.example.com/rest/v1
  timeout: 3s
  retry_attempts: 5
shopping:
  items_per_page: 24
  suggest_debounce: 250ms
  navigation_depth: 2
broker:
  seed_brokers: [kafka-0:9092, kafka-1:9092]
  schema_registry_urls: [http://sr:8081]
  topics:
    intents: storefront-intents
    catalog_updates: catalog-products
  consumers:
    catalog_group: storefront
valkey:
  addr: valkey:6379
  db: 2
  token_ttl: 1h
postgres:
  dsn: postgres://storefront@postgres:5432/storefront
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, ":9090", cfg.HTTPServerAddr)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
		assert.Equal(t, 5, cfg.API.RetryAttempts)
		assert.Equal(t, 100*time.Millisecond, cfg.API.RetryDelay)
		assert.Equal(t, 24, cfg.Shopping.ItemsPerPage)
		assert.Equal(t, 250*time.Millisecond, cfg.Shopping.SuggestDebounce)
		assert.Equal(t, 2, cfg.Shopping.NavigationDepth)
		assert.Equal(t, []string{"kafka-0:9092", "kafka-1:9092"}, cfg.Broker.SeedBrokers)
		assert.Equal(t, "catalog-products", cfg.Broker.Topics.CatalogUpdates)
		assert.Equal(t, time.Hour, cfg.Valkey.TokenTTL)
		assert.False(t, cfg.Broker.TLS.Enabled())
		assert.True(t, cfg.JournalEnabled())
		assert.True(t, cfg.CatalogFeedEnabled())
		assert.True(t, cfg.DatabaseJournalEnabled())
	})

	t.Run("Defaults", func(t *testing.T) {
		path := writeConfig(t, "api:\n  base_url: http://localhost:8000\n")
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, ":8080", cfg.HTTPServerAddr)
		assert.Equal(t, 12, cfg.Shopping.ItemsPerPage)
		assert.Equal(t, 1, cfg.Shopping.NavigationDepth)
		assert.Equal(t, 30*time.Minute, cfg.Valkey.TokenTTL)
		assert.False(t, cfg.JournalEnabled())
		assert.False(t, cfg.CatalogFeedEnabled())
		assert.False(t, cfg.DatabaseJournalEnabled())
	})

	t.Run("EnvOverride", func(t *testing.T) {
		path := writeConfig(t, "api:\n  base_url: http://localhost:8000\n")
		t.Setenv("STOREFRONT_API_BASE_URL", "http://override:8000")

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "http://override:8000", cfg.API.BaseURL)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := writeConfig(t, "sql_db: postgres://\n")
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("ZeroRetryDelay", func(t *testing.T) {
		path := writeConfig(t, "api:\n  base_url: http://localhost:8000\n")
		t.Setenv("STOREFRONT_API_RETRY_DELAY", "0s")

		_, err := LoadFile(path)
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.ErrorContains(t, err, "api.retry_delay")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
