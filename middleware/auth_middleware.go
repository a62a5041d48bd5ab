package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/upb/legaltech-api/backend/internal/auth"
	"github.com/upb/legaltech-api/backend/internal/observability"
	"github.com/upb/legaltech-api/backend/utils"
	"go.uber.org/zap"
)

// AccessTokenCookie is the session cookie carrying "Bearer <token>"
const AccessTokenCookie = "access_token"

// unauthenticatedMessage is the only reason given for any rejected
// credential, so responses do not reveal why verification failed
const unauthenticatedMessage = "Could not validate credentials"

// TokenValidator defines the interface for validating credentials
type TokenValidator interface {
	// ValidateToken verifies a token and returns its claims
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// RequireAuth is a middleware that requires a valid credential. The token is
// verified before any handler runs, so invalid tokens never reach the store.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		// Authorization header first, then the access_token cookie
		token := extractToken(r)
		if token == "" {
			m.logger.Debug("missing token",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, unauthenticatedMessage)
			return
		}

		claims, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, unauthenticatedMessage)
			return
		}

		ctx = WithClaims(ctx, claims)

		m.logger.Debug("authentication successful",
			observability.RequestFields(requestID, claims.Subject)...)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken extracts the token from the Authorization header ("Bearer
// TOKEN") or the access_token cookie. The header takes precedence when both
// are present.
func extractToken(r *http.Request) string {
	if token := extractBearerToken(r); token != "" {
		return token
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return stripBearer(cookie.Value)
	}
	return ""
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// stripBearer accepts cookie values with or without the "Bearer " prefix
func stripBearer(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "bearer") {
		return ""
	}
	if len(value) >= 7 && strings.EqualFold(value[:7], "bearer ") {
		return strings.TrimSpace(value[7:])
	}
	return value
}
