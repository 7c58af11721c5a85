package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCacheService(t *testing.T) (*miniredis.Miniredis, *CacheService) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := redis.NewClient("redis://"+mr.Addr(), "production", nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return mr, NewCacheService(client, zap.NewNop(), time.Minute)
}

func TestCacheService_GetProjectsWithCache_MissThenHit(t *testing.T) {
	mr, cache := setupCacheService(t)
	ctx := context.Background()

	calls := 0
	fallback := func(ctx context.Context, username string) ([]domain.Project, error) {
		calls++
		return []domain.Project{{Title: "Hello World", Technologies: []string{"Go"}}}, nil
	}

	projects, err := cache.GetProjectsWithCache(ctx, "OctoCat", fallback)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, 1, calls)

	// The write happens in the background
	assert.Eventually(t, func() bool {
		return mr.Exists("prod:github:projects:octocat")
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, time.Minute, mr.TTL("prod:github:projects:octocat"))

	projects, err = cache.GetProjectsWithCache(ctx, "octocat", fallback)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Hello World", projects[0].Title)
	assert.Equal(t, 1, calls)
}

func TestCacheService_GetProjectsWithCache_CorruptedEntry(t *testing.T) {
	mr, cache := setupCacheService(t)
	mr.Set("prod:github:projects:octocat", "{not json")

	projects, err := cache.GetProjectsWithCache(context.Background(), "octocat", func(ctx context.Context, username string) ([]domain.Project, error) {
		return []domain.Project{{Title: "Rebuilt"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Rebuilt", projects[0].Title)

	assert.Eventually(t, func() bool {
		raw, err := mr.Get("prod:github:projects:octocat")
		if err != nil {
			return false
		}
		var cached []domain.Project
		return json.Unmarshal([]byte(raw), &cached) == nil && len(cached) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCacheService_GetProjectsWithCache_FallbackError(t *testing.T) {
	mr, cache := setupCacheService(t)
	fallbackErr := errors.New("upstream down")

	projects, err := cache.GetProjectsWithCache(context.Background(), "octocat", func(ctx context.Context, username string) ([]domain.Project, error) {
		return nil, fallbackErr
	})
	assert.ErrorIs(t, err, fallbackErr)
	assert.Nil(t, projects)

	time.Sleep(20 * time.Millisecond)
	assert.False(t, mr.Exists("prod:github:projects:octocat"))
}

func TestCacheService_GetProjectsWithCache_RedisDown(t *testing.T) {
	mr, cache := setupCacheService(t)
	mr.Close()

	projects, err := cache.GetProjectsWithCache(context.Background(), "octocat", func(ctx context.Context, username string) ([]domain.Project, error) {
		return []domain.Project{{Title: "Live"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Live", projects[0].Title)
}

func TestCacheService_InvalidateProjects(t *testing.T) {
	mr, cache := setupCacheService(t)
	mr.Set("prod:github:projects:octocat", "[]")

	require.NoError(t, cache.InvalidateProjects(context.Background(), "octocat"))
	assert.False(t, mr.Exists("prod:github:projects:octocat"))
}

func TestCacheService_HealthCheck(t *testing.T) {
	mr, cache := setupCacheService(t)
	assert.NoError(t, cache.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, cache.HealthCheck(context.Background()))
}
