package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/service/github"
	"portfolio-api/pkg/logger"

	"github.com/juju/clock"
	"golang.org/x/sync/errgroup"
)

// ProjectServiceConfig controls request pacing of the aggregator
type ProjectServiceConfig struct {
	ReadmeDelay time.Duration // pause between README filename attempts
	Stagger     time.Duration // repository i starts after i*Stagger
	Concurrency int           // 0 means one goroutine per repository
}

// projectService turns repositories into portfolio projects
type projectService struct {
	fetcher RepositoryFetcher
	clock   clock.Clock
	logger  *logger.Logger
	config  ProjectServiceConfig
}

// NewProjectService creates a new project aggregator
func NewProjectService(fetcher RepositoryFetcher, clk clock.Clock, logger *logger.Logger, config ProjectServiceConfig) ProjectService {
	if clk == nil {
		clk = clock.WallClock
	}
	return &projectService{
		fetcher: fetcher,
		clock:   clk,
		logger:  logger,
		config:  config,
	}
}

// BuildProjects fails only when the repository list cannot be fetched.
// Enrichment failures drop the affected repository.
func (s *projectService) BuildProjects(ctx context.Context, username string) ([]domain.Project, error) {
	repositories, err := s.fetcher.ListRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	showcase := make([]domain.Repository, 0, len(repositories))
	for _, repo := range repositories {
		if repo.IsShowcase() {
			showcase = append(showcase, repo)
		}
	}

	results := make([]*domain.Project, len(showcase))

	var g errgroup.Group
	if s.config.Concurrency > 0 {
		g.SetLimit(s.config.Concurrency)
	}

	for i, repo := range showcase {
		i, repo := i, repo
		g.Go(func() error {
			project, err := s.enrich(ctx, i, repo)
			if err != nil {
				s.logger.WithError(err).WithField("repository", repo.FullName).Warn("Dropping repository from project list")
				return nil
			}
			results[i] = project
			return nil
		})
	}
	_ = g.Wait()

	projects := make([]domain.Project, 0, len(showcase))
	for _, project := range results {
		if project != nil {
			projects = append(projects, *project)
		}
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})

	s.logger.WithFields(map[string]interface{}{
		"username":     username,
		"repositories": len(repositories),
		"projects":     len(projects),
	}).Info("Built project list")

	return projects, nil
}

func (s *projectService) enrich(ctx context.Context, index int, repo domain.Repository) (project *domain.Project, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("enrichment of %s panicked: %v", repo.FullName, r)
		}
	}()

	if err := s.pause(ctx, time.Duration(index)*s.config.Stagger); err != nil {
		return nil, err
	}

	description, err := s.resolveDescription(ctx, repo)
	if err != nil {
		return nil, err
	}

	built := NewProject(repo, description, s.resolveTechnologies(ctx, repo))
	return &built, nil
}

// resolveDescription prefers the repository description, then the README.
// It only errors when ctx is cancelled while pacing.
func (s *projectService) resolveDescription(ctx context.Context, repo domain.Repository) (string, error) {
	if repo.Description != nil && *repo.Description != "" {
		return *repo.Description, nil
	}

	for i, filename := range github.ReadmeFilenames {
		if i > 0 {
			if err := s.pause(ctx, s.config.ReadmeDelay); err != nil {
				return "", err
			}
		}

		content, err := s.fetcher.GetReadme(ctx, repo.FullName, filename)
		if err != nil {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"repository": repo.FullName,
				"filename":   filename,
			}).Debug("README not available")
			continue
		}

		if description, ok := github.ExtractDescription(content); ok {
			return description, nil
		}
	}

	return FallbackDescription, nil
}

func (s *projectService) resolveTechnologies(ctx context.Context, repo domain.Repository) []string {
	languages, err := s.fetcher.GetLanguages(ctx, repo.FullName)
	if err != nil {
		s.logger.WithError(err).WithField("repository", repo.FullName).Debug("Failed to fetch languages")
	} else if len(languages) > 0 {
		return SortedLanguages(languages)
	}

	if repo.Language != nil && *repo.Language != "" {
		return []string{*repo.Language}
	}
	return []string{FallbackTechnology}
}

func (s *projectService) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(d):
		return nil
	}
}
