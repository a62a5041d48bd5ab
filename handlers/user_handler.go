package handlers

import (
	"context"
	"net/http"

	"github.com/upb/legaltech-api/backend/internal/auth"
	"github.com/upb/legaltech-api/backend/middleware"
	"github.com/upb/legaltech-api/backend/services"
	"github.com/upb/legaltech-api/backend/utils"
	"go.uber.org/zap"
)

// ProfileReader rebuilds the caller's profile from verified claims
type ProfileReader interface {
	Me(ctx context.Context, claims *auth.Claims) (*services.Profile, error)
}

// UserHandler handles self-service user requests
type UserHandler struct {
	identity ProfileReader
	logger   *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(identity ProfileReader, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		identity: identity,
		logger:   logger,
	}
}

// HandleMe handles GET /api/v1/users/me. It runs behind RequireAuth.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		HandleServiceError(w, services.ErrUnauthenticated, h.logger)
		return
	}

	profile, err := h.identity.Me(r.Context(), claims)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteOK(w, profile); err != nil {
		h.logger.Error("failed to write profile response", zap.Error(err))
	}
}
