package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/pkg/redis"

	"go.uber.org/zap"
)

// DefaultProjectCacheTTL is used when no TTL is configured
const DefaultProjectCacheTTL = 10 * time.Minute

// CacheService caches built project lists in Redis using cache-aside
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = DefaultProjectCacheTTL
	}
	return &CacheService{
		redis:  redisClient,
		logger: logger,
		ttl:    ttl,
	}
}

// GetProjectsWithCache returns the cached project list of username, building it
// with fallback on a miss. Cache errors never fail the request.
func (c *CacheService) GetProjectsWithCache(ctx context.Context, username string, fallback func(ctx context.Context, username string) ([]domain.Project, error)) ([]domain.Project, error) {
	cacheKey := c.redis.KeyBuilder.KeyProjects(username)

	// Try cache first
	cachedData, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cachedData != "" {
		var projects []domain.Project
		if unmarshalErr := json.Unmarshal([]byte(cachedData), &projects); unmarshalErr == nil {
			c.logger.Debug("Project cache hit", zap.String("username", username))
			return projects, nil
		} else {
			c.logger.Warn("Project cache corrupted, rebuilding",
				zap.String("username", username),
				zap.Error(unmarshalErr))
		}
	} else if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("Project cache error, rebuilding",
			zap.String("username", username),
			zap.Error(err))
	}

	c.logger.Debug("Project cache miss", zap.String("username", username))
	projects, err := fallback(ctx, username)
	if err != nil {
		return nil, err
	}

	// Cache the result asynchronously (fire and forget)
	go c.cacheProjectsAsync(cacheKey, projects)

	return projects, nil
}

// InvalidateProjects removes the cached project list of username
func (c *CacheService) InvalidateProjects(ctx context.Context, username string) error {
	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyProjects(username)); err != nil {
		return fmt.Errorf("failed to invalidate project cache: %w", err)
	}
	return nil
}

// HealthCheck performs a health check on the cache system
func (c *CacheService) HealthCheck(ctx context.Context) error {
	start := time.Now()
	err := c.redis.Health(ctx)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Cache health check failed",
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Cache health check passed", zap.Duration("duration", duration))
	return nil
}

func (c *CacheService) cacheProjectsAsync(cacheKey string, projects []domain.Project) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(projects)
	if err != nil {
		c.logger.Error("Failed to marshal projects for caching", zap.Error(err))
		return
	}

	if err := c.redis.Set(ctx, cacheKey, string(data), c.ttl); err != nil {
		c.logger.Error("Failed to cache projects", zap.Error(err))
	} else {
		c.logger.Debug("Projects cached successfully", zap.Int("count", len(projects)))
	}
}
