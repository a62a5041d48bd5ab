package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/upb/legaltech-api/backend/config"
	"github.com/upb/legaltech-api/backend/utils"
	"go.uber.org/zap"
)

// readinessTimeout bounds the database checks behind /readyz
const readinessTimeout = 5 * time.Second

// DatabaseChecker reports whether the database can serve queries
type DatabaseChecker interface {
	HealthCheck(ctx context.Context) error
	Stats() sql.DBStats
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message,omitempty"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
	Pool      *PoolStats        `json:"pool,omitempty"`
}

// PoolStats is the connection pool snapshot reported on readiness
type PoolStats struct {
	MaxOpen      int   `json:"max_open"`
	Open         int   `json:"open"`
	InUse        int   `json:"in_use"`
	Idle         int   `json:"idle"`
	WaitCount    int64 `json:"wait_count"`
	WaitDuration int64 `json:"wait_duration_ms"`
}

func newPoolStats(s sql.DBStats) *PoolStats {
	return &PoolStats{
		MaxOpen:      s.MaxOpenConnections,
		Open:         s.OpenConnections,
		InUse:        s.InUse,
		Idle:         s.Idle,
		WaitCount:    s.WaitCount,
		WaitDuration: s.WaitDuration.Milliseconds(),
	}
}

// WelcomeResponse is the body of GET /
type WelcomeResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Docs      string   `json:"docs,omitempty"`
	Endpoints []string `json:"endpoints,omitempty"`
}

// publicEndpoints is listed on the root endpoint in debug mode
var publicEndpoints = []string{
	"POST /api/v1/auth/register",
	"POST /api/v1/auth/login",
	"POST /api/v1/auth/logout",
	"GET /api/v1/users/me",
	"GET /api/v1/health",
	"GET /readyz",
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	db     DatabaseChecker
	app    config.AppConfig
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. db may be nil, in which
// case the service never reports ready.
func NewHealthHandler(db DatabaseChecker, app config.AppConfig, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		app:    app,
		logger: logger,
	}
}

// HandleRoot handles GET /
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	response := WelcomeResponse{
		Message: "Welcome to " + h.app.Name,
		Version: h.app.Version,
	}
	if h.app.Debug {
		response.Endpoints = publicEndpoints
	} else {
		response.Docs = "Documentation disabled in production"
	}

	_ = utils.WriteOK(w, response)
}

// HandleHealth handles GET /healthz and GET /api/v1/health
// Basic health check - always returns 200 if service is running
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Message:   h.app.Name + " is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_ = utils.WriteOK(w, response)
}

// HandleReadiness handles GET /readyz
// Readiness check - validates that the database is reachable
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := make(map[string]string)
	ready := true
	var pool *PoolStats

	switch {
	case h.db == nil:
		checks["database"] = "not_initialized"
		ready = false
	default:
		if err := h.db.HealthCheck(ctx); err != nil {
			h.logger.Warn("database health check failed", zap.Error(err))
			checks["database"] = "unhealthy"
			ready = false
		} else {
			checks["database"] = "healthy"
		}
		pool = newPoolStats(h.db.Stats())
	}

	status := "ready"
	httpStatus := http.StatusOK
	if !ready {
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Pool:      pool,
	}

	if err := utils.WriteJSON(w, httpStatus, response); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}
