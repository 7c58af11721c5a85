package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"portfolio-api/pkg/errors"
	"portfolio-api/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/collections/set"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// AdminContextKey is the key for verified admin claims in context
	AdminContextKey ContextKey = "admin"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// SessionCookieName is the cookie the hosted auth service stores its access token in
const SessionCookieName = "sb-access-token"

// AdminClaims are the claims of a hosted-auth session token
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuthConfig configures AdminAuth
type AdminAuthConfig struct {
	JWTSecret     string
	AllowedEmails []string // empty allows any authenticated user
}

// AdminAuth verifies the session token issued by the hosted auth service.
// Without a secret every request is let through.
func AdminAuth(config AdminAuthConfig, logger *logger.Logger) func(http.Handler) http.Handler {
	if config.JWTSecret == "" {
		logger.Warn("SUPABASE_JWT_SECRET not configured, admin routes are not protected")
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	secret := []byte(config.JWTSecret)
	allowedEmails := set.NewStrings()
	for _, email := range config.AllowedEmails {
		allowedEmails.Add(strings.ToLower(email))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Authentication required"), logger)
				return
			}

			claims := &AdminClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.WithError(err).Debug("Admin token validation failed")
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid or expired token"), logger)
				return
			}

			if !allowedEmails.IsEmpty() && !allowedEmails.Contains(strings.ToLower(claims.Email)) {
				logger.WithField("email", claims.Email).Warn("Admin access denied")
				writeErrorResponse(w, errors.NewAuthorizationError("Access denied"), logger)
				return
			}

			ctx := context.WithValue(r.Context(), AdminContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminClaims returns the verified claims, or nil when the route is unprotected
func GetAdminClaims(ctx context.Context) *AdminClaims {
	claims, _ := ctx.Value(AdminContextKey).(*AdminClaims)
	return claims
}

// extractToken reads a bearer token, falling back to the session cookie
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}
		return ""
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// writeErrorResponse writes an error response to the client
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithField("status", appErr.StatusCode).Debug(appErr.Error())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	if err := json.NewEncoder(w).Encode(errors.ErrorResponse{Error: appErr.Message}); err != nil {
		logger.WithError(err).Error("Failed to encode error response")
	}
}
