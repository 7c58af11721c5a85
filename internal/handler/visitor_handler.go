package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/service"
	apperrors "portfolio-api/pkg/errors"
	"portfolio-api/pkg/logger"
)

const maxVisitBodyBytes = 1 << 16

// VisitorHandler handles visitor tracking HTTP requests
type VisitorHandler struct {
	visitorService service.VisitorService
	logger         *logger.Logger
}

// NewVisitorHandler creates a new visitor handler
func NewVisitorHandler(visitorService service.VisitorService, logger *logger.Logger) *VisitorHandler {
	return &VisitorHandler{
		visitorService: visitorService,
		logger:         logger,
	}
}

// VisitResponse represents the response for visit recording
type VisitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// StatsResponse wraps the analytics payload
type StatsResponse struct {
	Success bool                 `json:"success"`
	Data    *domain.VisitorStats `json:"data"`
}

// RecordView handles POST /api/views
func (h *VisitorHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visit := domain.Visit{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
		Page:      h.readPage(w, r),
	}

	result, err := h.visitorService.RecordVisit(ctx, visit)
	if err != nil {
		writeError(w, apperrors.NewInternalError("Failed to track visit", err), h.logger)
		return
	}

	if result.Skipped {
		writeJSON(w, http.StatusOK, VisitResponse{Success: true, Message: "Skipped tracking internal IP"}, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, VisitResponse{Success: true}, h.logger)
}

// GetVisitors handles GET /api/admin/visitors
func (h *VisitorHandler) GetVisitors(w http.ResponseWriter, r *http.Request) {
	stats, err := h.visitorService.GetStats(r.Context())
	if err != nil {
		writeError(w, apperrors.NewInternalError("Failed to fetch visitor data", err), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{Success: true, Data: stats}, h.logger)

	h.logger.WithFields(map[string]interface{}{
		"total_visits": stats.TotalVisits,
		"unique_ips":   stats.UniqueIPs,
	}).Debug("Visitor stats served")
}

// readPage returns the page named in the body. Missing or malformed bodies
// fall back to the root page.
func (h *VisitorHandler) readPage(w http.ResponseWriter, r *http.Request) string {
	if r.Body == nil {
		return service.DefaultPage
	}

	var req domain.VisitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxVisitBodyBytes)).Decode(&req); err != nil {
		h.logger.WithError(err).Debug("Unreadable visit body, using default page")
		return service.DefaultPage
	}

	if req.Page == nil || *req.Page == "" {
		return service.DefaultPage
	}
	return *req.Page
}

// clientIP extracts the caller address from proxy headers (in order of preference)
func clientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}

	// X-Forwarded-For can contain multiple IPs, take the first one
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}

	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	return service.UnknownIP
}
