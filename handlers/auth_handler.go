package handlers

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"

	"github.com/upb/legaltech-api/backend/middleware"
	"github.com/upb/legaltech-api/backend/models"
	"github.com/upb/legaltech-api/backend/services"
	"github.com/upb/legaltech-api/backend/utils"
	"go.uber.org/zap"
)

// maxBodyBytes caps auth request bodies
const maxBodyBytes = 1 << 20

// Registrar creates accounts
type Registrar interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.RegistrationResult, error)
}

// SessionIssuer authenticates credentials and issues sessions
type SessionIssuer interface {
	Login(ctx context.Context, email, password string) (*services.Session, error)
}

// LoginRequest is the JSON login body. Form posts use "username" for the
// email, as OAuth2 password clients do. The email is not format-checked; an
// unknown address is reported as user not found.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserSummary is the public part of a user record
type UserSummary struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	PhoneNumber       *string `json:"phone_number"`
	PrimaryProfession string  `json:"primary_profession"`
}

// OrganizationSummary is the public part of an organization record
type OrganizationSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// RegisterResponse is the body of a successful registration. Organization
// is null for clerk registrations.
type RegisterResponse struct {
	Message      string               `json:"message"`
	User         UserSummary          `json:"user"`
	Organization *OrganizationSummary `json:"organization"`
}

// AuthHandler handles registration and session HTTP requests
type AuthHandler struct {
	registrar     Registrar
	sessions      SessionIssuer
	secureCookies bool
	logger        *zap.Logger
}

// NewAuthHandler creates a new AuthHandler. secureCookies marks the session
// cookie Secure and is set in production.
func NewAuthHandler(registrar Registrar, sessions SessionIssuer, secureCookies bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		registrar:     registrar,
		sessions:      sessions,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// HandleRegister handles POST /api/v1/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("invalid register body", zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	result, err := h.registrar.Register(r.Context(), req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	response := RegisterResponse{
		Message: "Registration successful",
		User:    newUserSummary(result.User),
	}
	if result.Organization != nil {
		response.Organization = &OrganizationSummary{
			ID:   result.Organization.ID,
			Name: result.Organization.Name,
			Type: string(result.Organization.Kind),
		}
	}

	if err := utils.WriteCreated(w, response); err != nil {
		h.logger.Error("failed to write register response", zap.Error(err))
	}
}

// HandleLogin handles POST /api/v1/auth/login. The token is returned in the
// body and set as the access_token cookie.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := h.readLogin(w, r)
	if err != nil {
		h.logger.Debug("invalid login body", zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	session, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	http.SetCookie(w, h.sessionCookie(session))
	if err := utils.WriteOK(w, session); err != nil {
		h.logger.Error("failed to write login response", zap.Error(err))
	}
}

// HandleLogout handles POST /api/v1/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	_ = utils.WriteMessage(w, "Successfully logged out")
}

// sessionCookie serialises a session as the access_token cookie
func (h *AuthHandler) sessionCookie(s *services.Session) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "Bearer " + s.Token,
		Path:     "/",
		MaxAge:   int(s.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// readLogin accepts a JSON body or an OAuth2 password form
func (h *AuthHandler) readLogin(w http.ResponseWriter, r *http.Request) (*LoginRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		email := r.PostForm.Get("username")
		if email == "" {
			email = r.PostForm.Get("email")
		}
		return &LoginRequest{Email: email, Password: r.PostForm.Get("password")}, nil
	}

	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func newUserSummary(u *models.User) UserSummary {
	return UserSummary{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		PhoneNumber:       u.PhoneNumber,
		PrimaryProfession: string(u.PrimaryProfession),
	}
}

// decodeJSON reads a single JSON object from the request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
