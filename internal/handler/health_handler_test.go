package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	dbErr    error
	cacheErr error
	hasRedis bool
}

func (f fakeChecker) CheckDatabase(ctx context.Context) error { return f.dbErr }
func (f fakeChecker) CheckCache(ctx context.Context) error    { return f.cacheErr }
func (f fakeChecker) HasRedis() bool                          { return f.hasRedis }

func TestHealthHandler_Check(t *testing.T) {
	tests := []struct {
		name           string
		checker        fakeChecker
		expectedStatus int
		expectedState  string
		expectedChecks map[string]string
	}{
		{
			name:           "all healthy",
			checker:        fakeChecker{hasRedis: true},
			expectedStatus: http.StatusOK,
			expectedState:  "healthy",
			expectedChecks: map[string]string{"database": "healthy", "cache": "healthy"},
		},
		{
			name:           "cache disabled",
			checker:        fakeChecker{},
			expectedStatus: http.StatusOK,
			expectedState:  "healthy",
			expectedChecks: map[string]string{"database": "healthy", "cache": "disabled"},
		},
		{
			name:           "cache down degrades",
			checker:        fakeChecker{hasRedis: true, cacheErr: errors.New("connection refused")},
			expectedStatus: http.StatusOK,
			expectedState:  "degraded",
			expectedChecks: map[string]string{"database": "healthy", "cache": "unhealthy"},
		},
		{
			name:           "database down",
			checker:        fakeChecker{dbErr: errors.New("connection refused")},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unhealthy",
			expectedChecks: map[string]string{"database": "unhealthy", "cache": "disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.checker, logger.NewNop())
			h.now = func() time.Time { return time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC) }

			rec := httptest.NewRecorder()
			h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedState, body.Status)
			assert.Equal(t, "portfolio-api", body.Service)
			assert.Equal(t, "1.0.0", body.Version)
			assert.True(t, body.Timestamp.Equal(time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)))
			assert.Equal(t, tt.expectedChecks, body.Checks)
		})
	}
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(logger.NewNop())(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Endpoint not found"}`, rec.Body.String())
}
