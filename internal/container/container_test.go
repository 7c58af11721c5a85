package container

import (
	"context"
	"testing"

	"portfolio-api/internal/config"
	"portfolio-api/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(redisURL string) *config.Config {
	return &config.Config{
		Environment:       "test",
		GitHubAPIURL:      "http://127.0.0.1:1",
		IPInfoURL:         "http://127.0.0.1:1",
		DatabaseURL:       "sqlite::memory:",
		DatabaseAdminURL:  "sqlite::memory:",
		VisitorQueryLimit: 1000,
		RedisURL:          redisURL,
	}
}

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name        string
		redisURL    string
		expectRedis bool
	}{
		{
			name:        "Container with Redis configured",
			redisURL:    "redis://" + mr.Addr(),
			expectRedis: true,
		},
		{
			name:        "Container without Redis configured",
			redisURL:    "",
			expectRedis: false,
		},
		{
			name:        "Container with invalid Redis URL",
			redisURL:    "invalid://redis-url",
			expectRedis: false, // Redis client initialization fails but container creation succeeds
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(context.Background(), testConfig(tt.redisURL), logger.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { c.Close() })

			assert.NotNil(t, c.Services.Projects)
			assert.NotNil(t, c.Services.Visitor)
			assert.Equal(t, tt.expectRedis, c.HasRedis())
			assert.Equal(t, tt.expectRedis, c.GetCacheService() != nil)

			assert.NoError(t, c.CheckDatabase(context.Background()))
			assert.NoError(t, c.CheckCache(context.Background()))
		})
	}
}

func TestNew_InvalidDatabase(t *testing.T) {
	cfg := testConfig("")
	cfg.DatabaseURL = "postgres://%zz"
	cfg.DatabaseAdminURL = cfg.DatabaseURL

	c, err := New(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestContainer_CheckCacheReportsOutage(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := New(context.Background(), testConfig("redis://"+mr.Addr()), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	mr.Close()
	assert.Error(t, c.CheckCache(context.Background()))
}
