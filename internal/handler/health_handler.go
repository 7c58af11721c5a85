package handler

import (
	"context"
	"net/http"
	"time"

	"portfolio-api/pkg/logger"
)

const (
	serviceName    = "portfolio-api"
	serviceVersion = "1.0.0"
)

// HealthChecker reports the state of the service's dependencies
type HealthChecker interface {
	CheckDatabase(ctx context.Context) error
	CheckCache(ctx context.Context) error
	HasRedis() bool
}

// HealthHandler handles health check requests
type HealthHandler struct {
	checker HealthChecker
	logger  *logger.Logger
	now     func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checker HealthChecker, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		logger:  logger,
		now:     time.Now,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
}

// Check handles GET /health. A failing database makes the service unhealthy;
// a failing cache only degrades it.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Version:   serviceVersion,
		Service:   serviceName,
		Checks:    map[string]string{"database": "healthy", "cache": "disabled"},
	}
	statusCode := http.StatusOK

	if err := h.checker.CheckDatabase(ctx); err != nil {
		h.logger.WithError(err).Error("Database health check failed")
		response.Checks["database"] = "unhealthy"
		response.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	if h.checker.HasRedis() {
		response.Checks["cache"] = "healthy"
		if err := h.checker.CheckCache(ctx); err != nil {
			response.Checks["cache"] = "unhealthy"
			if statusCode == http.StatusOK {
				response.Status = "degraded"
			}
		}
	}

	writeJSON(w, statusCode, response, h.logger)
}
