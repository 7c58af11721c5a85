package container

import (
	"context"
	"database/sql"
	"fmt"

	"portfolio-api/internal/config"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/service"
	"portfolio-api/internal/service/geolocation"
	"portfolio-api/internal/service/github"
	"portfolio-api/pkg/database"
	"portfolio-api/pkg/logger"
	"portfolio-api/pkg/redis"

	"github.com/juju/clock"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	Clock        clock.Clock
	RedisClient  *redis.Client
	Repositories *repository.Repositories
	Services     *service.Services
}

// New creates a new dependency injection container. The visitor store is picked
// from the scheme of DATABASE_URL; Redis is optional.
func New(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*Container, error) {
	visitorRepo, err := newVisitorRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without caching")
	}

	clk := clock.WallClock

	githubClient := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, logger)
	if cfg.GitHubToken == "" {
		logger.Warn("GITHUB_TOKEN not configured, GitHub requests are subject to the anonymous rate limit")
	}

	ipinfo := geolocation.NewIPInfoClient(cfg.IPInfoURL, cfg.IPInfoToken, logger)
	if !ipinfo.Enabled() {
		logger.Info("IPINFO_TOKEN not configured, visits are stored without location")
	}

	services := &service.Services{
		Projects: service.NewProjectService(githubClient, clk, logger, service.ProjectServiceConfig{
			ReadmeDelay: cfg.ReadmeFetchDelay,
			Stagger:     cfg.ProjectStagger,
			Concurrency: cfg.EnrichConcurrency,
		}),
		Visitor: service.NewVisitorService(visitorRepo, ipinfo, clk, logger, cfg.VisitorQueryLimit),
	}
	if redisClient != nil {
		services.Cache = service.NewCacheService(redisClient, logger.Logger, cfg.ProjectCacheTTL)
	}

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Clock:        clk,
		RedisClient:  redisClient,
		Repositories: &repository.Repositories{Visitor: visitorRepo},
		Services:     services,
	}, nil
}

// newVisitorRepository connects the pgx pools for postgres URLs and the
// database/sql store for everything else.
func newVisitorRepository(ctx context.Context, cfg *config.Config, logger *logger.Logger) (repository.VisitorRepository, error) {
	if database.IsPostgresURL(cfg.DatabaseURL) {
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DatabaseAdminURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		logger.Info("Visitor store: postgres")
		return repository.NewVisitorRepository(db), nil
	}

	db, err := database.OpenSQL(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	var adminDB *sql.DB
	if cfg.DatabaseAdminURL != "" && cfg.DatabaseAdminURL != cfg.DatabaseURL {
		adminDB, err = database.OpenSQL(ctx, cfg.DatabaseAdminURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to open admin database: %w", err)
		}
	}

	repo, err := repository.NewSQLVisitorRepository(ctx, db, adminDB)
	if err != nil {
		db.Close()
		if adminDB != nil {
			adminDB.Close()
		}
		return nil, err
	}

	logger.WithField("driver", database.DriverForURL(cfg.DatabaseURL)).Info("Visitor store: embedded SQL")
	return repo, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// GetCacheService returns the project cache (nil if Redis is not available)
func (c *Container) GetCacheService() *service.CacheService {
	return c.Services.Cache
}

// CheckDatabase pings the visitor store
func (c *Container) CheckDatabase(ctx context.Context) error {
	return c.Repositories.Visitor.Health(ctx)
}

// CheckCache pings Redis. It reports nil when caching is disabled.
func (c *Container) CheckCache(ctx context.Context) error {
	if c.Services.Cache == nil {
		return nil
	}
	return c.Services.Cache.HealthCheck(ctx)
}

// Close releases the database and Redis connections
func (c *Container) Close() error {
	var firstErr error
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			firstErr = fmt.Errorf("redis close: %w", err)
		}
	}
	if err := c.Repositories.Visitor.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("database close: %w", err)
	}
	return firstErr
}
