package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/service"
	"portfolio-api/internal/service/github"
	apperrors "portfolio-api/pkg/errors"
	"portfolio-api/pkg/logger"
)

// GitHubHandler serves the portfolio project list
type GitHubHandler struct {
	projectService service.ProjectService
	cacheService   *service.CacheService
	logger         *logger.Logger
}

// NewGitHubHandler creates a new GitHub handler. cacheService may be nil.
func NewGitHubHandler(projectService service.ProjectService, cacheService *service.CacheService, logger *logger.Logger) *GitHubHandler {
	return &GitHubHandler{
		projectService: projectService,
		cacheService:   cacheService,
		logger:         logger,
	}
}

// GetProjects handles GET /api/github?username=. refresh=true drops the cached
// list before building.
func (h *GitHubHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		writeError(w, apperrors.NewValidationError("Username parameter is required"), h.logger)
		return
	}

	var (
		projects []domain.Project
		err      error
	)
	if h.cacheService != nil {
		if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
			if err := h.cacheService.InvalidateProjects(ctx, username); err != nil {
				h.logger.WithError(err).WithField("username", username).Warn("Failed to invalidate project cache")
			}
		}
		projects, err = h.cacheService.GetProjectsWithCache(ctx, username, h.projectService.BuildProjects)
	} else {
		projects, err = h.projectService.BuildProjects(ctx, username)
	}
	if err != nil {
		writeError(w, mapGitHubError(err), h.logger)
		return
	}

	if projects == nil {
		projects = []domain.Project{}
	}

	writeJSON(w, http.StatusOK, domain.ProjectsResponse{Projects: projects}, h.logger)

	h.logger.WithFields(map[string]interface{}{
		"username": username,
		"projects": len(projects),
	}).Debug("Projects served")
}

// mapGitHubError converts an upstream failure into the status the caller sees
func mapGitHubError(err error) *apperrors.AppError {
	var upstreamErr *github.UpstreamError
	if !errors.As(err, &upstreamErr) {
		return apperrors.NewInternalError("Failed to fetch GitHub projects", err)
	}

	switch upstreamErr.Kind {
	case github.KindNotFound:
		return apperrors.NewNotFoundError(upstreamErr.Message)
	case github.KindRateLimited:
		return apperrors.NewRateLimitError(github.RateLimitMessage, http.StatusForbidden)
	default:
		return apperrors.NewUpstreamError(upstreamErr.Message, upstreamErr.StatusCode, err)
	}
}
