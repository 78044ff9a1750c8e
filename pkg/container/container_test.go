package container

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotes-api/internal/config"
	quotemodel "quotes-api/internal/domains/quote/model"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		App:   config.AppConfig{Name: "Quotes API", Environment: "test", Port: "0", Version: "test"},
		Store: config.StoreConfig{Backend: backend},
		Redis: config.RedisConfig{CacheTTL: time.Minute},
	}
}

func TestNewWithConfigMemorySeeded(t *testing.T) {
	cfg := testConfig(config.BackendMemory)
	cfg.Store.SeedData = true

	c, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Cleanup()

	require.NoError(t, c.HealthCheck(context.Background()))
	n, err := c.QuoteService.Count(context.Background())
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Nil(t, c.Cache)
}

func TestNewWithConfigSQLiteFile(t *testing.T) {
	cfg := testConfig(config.BackendSQLite)
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "nested", "quotes.db")

	c, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Cleanup()

	require.NoError(t, c.HealthCheck(context.Background()))
	list, err := c.QuoteService.List(context.Background(), quotemodel.QuoteFilter{SortBy: quotemodel.SortByID})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.FileExists(t, cfg.Store.SQLitePath)
}

func TestNewWithConfigWiresCache(t *testing.T) {
	srv := miniredis.RunT(t)
	cfg := testConfig(config.BackendMemory)
	cfg.Redis.Addr = srv.Addr()
	require.NoError(t, srv.Set("author:1", `{"id":1,"name":"stale"}`))

	c, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Cleanup()
	require.NotNil(t, c.Cache)
	assert.False(t, srv.Exists("author:1"))
}

func TestNewWithConfigSkipsUnreachableCache(t *testing.T) {
	cfg := testConfig(config.BackendMemory)
	cfg.Redis.Addr = "127.0.0.1:1"

	c, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Cleanup()
	assert.Nil(t, c.Cache)
}

func TestNewWithConfigUnknownBackend(t *testing.T) {
	_, err := NewWithConfig(context.Background(), testConfig("mongo"))
	assert.Error(t, err)
}
