package service

import (
	"context"

	"portfolio-api/internal/domain"
)

// RepositoryFetcher retrieves repository metadata from the source-hosting API
type RepositoryFetcher interface {
	// ListRepositories returns all repositories owned by username
	ListRepositories(ctx context.Context, username string) ([]domain.Repository, error)

	// GetLanguages returns the language histogram of a repository
	GetLanguages(ctx context.Context, fullName string) (domain.LanguageStats, error)

	// GetReadme returns the decoded content of one README file
	GetReadme(ctx context.Context, fullName, filename string) (string, error)
}

// GeoLocator resolves an IP address to a location. A nil result means unknown.
type GeoLocator interface {
	Lookup(ctx context.Context, ip string) (*domain.Geolocation, error)
}

// ProjectService builds the portfolio project list
type ProjectService interface {
	// BuildProjects fetches, enriches and orders the repositories of username
	BuildProjects(ctx context.Context, username string) ([]domain.Project, error)
}

// VisitorService defines the interface for visitor tracking operations
type VisitorService interface {
	// RecordVisit persists a visit unless it comes from an internal address
	RecordVisit(ctx context.Context, visit domain.Visit) (*domain.VisitResult, error)

	// GetStats aggregates the most recent visit records
	GetStats(ctx context.Context) (*domain.VisitorStats, error)
}

// Services aggregates all service interfaces
type Services struct {
	Projects ProjectService
	Visitor  VisitorService
	Cache    *CacheService // nil when Redis is not configured
}
