package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/upb/legaltech-api/backend/internal/auth"
	"github.com/upb/legaltech-api/backend/models"
	"github.com/upb/legaltech-api/backend/repositories"
	"go.uber.org/zap"
)

// TokenTypeBearer is the token_type reported with every issued credential
const TokenTypeBearer = "bearer"

// NoTenant is the org_type reported for users without an ACTIVE membership
const NoTenant = "NONE"

// TokenIssuer mints signed credentials
type TokenIssuer interface {
	Issue(claims auth.Claims, ttl time.Duration) (string, time.Time, error)
}

// LoginState is a step of a single login attempt
type LoginState string

const (
	StateStart          LoginState = "START"
	StateAuthenticated  LoginState = "AUTHENTICATED"
	StateTenantResolved LoginState = "TENANT_RESOLVED"
	StateTokenIssued    LoginState = "TOKEN_ISSUED"
	StateRejected       LoginState = "REJECTED"
)

// Session is an issued credential and the context it was issued for. The
// same token is delivered in the response body and in the session cookie.
type Session struct {
	Token      string        `json:"access_token"`
	TokenType  string        `json:"token_type"`
	OrgType    string        `json:"org_type"`
	Profession string        `json:"primary_profession"`
	ExpiresAt  time.Time     `json:"expires_at"`
	Claims     auth.Claims   `json:"-"`
	TTL        time.Duration `json:"-"`
}

// SessionService authenticates users and issues credentials
type SessionService struct {
	users       repositories.UserRepository
	memberships repositories.MembershipRepository
	hasher      PasswordHasher
	issuer      TokenIssuer
	ttl         time.Duration
	logger      *zap.Logger
}

// NewSessionService creates a new SessionService instance
func NewSessionService(
	repos *repositories.Repositories,
	hasher PasswordHasher,
	issuer TokenIssuer,
	ttl time.Duration,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		users:       repos.Users,
		memberships: repos.Memberships,
		hasher:      hasher,
		issuer:      issuer,
		ttl:         ttl,
		logger:      logger,
	}
}

// TTL returns the lifetime of issued credentials
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Login runs START → AUTHENTICATED → TENANT_RESOLVED → TOKEN_ISSUED,
// ending in REJECTED when the user is unknown, the password is wrong or the
// account is inactive.
func (s *SessionService) Login(ctx context.Context, email, password string) (*Session, error) {
	s.transition(StateStart)

	user, err := s.users.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, s.reject(ErrUserNotFound)
		}
		return nil, WrapInternal("failed to load user", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, s.reject(ErrInvalidCredentials, zap.Int64("user_id", user.ID))
	}
	if !user.IsActive {
		return nil, s.reject(ErrInactiveAccount, zap.Int64("user_id", user.ID))
	}
	s.transition(StateAuthenticated, zap.Int64("user_id", user.ID))

	tenant, err := resolveTenant(ctx, s.memberships, user.ID)
	if err != nil {
		return nil, err
	}

	claims := auth.Claims{
		Subject:    strconv.FormatInt(user.ID, 10),
		Profession: auth.StringPtr(string(user.PrimaryProfession)),
	}
	orgType := NoTenant
	if tenant != nil {
		claims.TenantID = auth.StringPtr(strconv.FormatInt(tenant.Organization.ID, 10))
		claims.TenantKind = auth.StringPtr(string(tenant.Organization.Kind))
		orgType = string(tenant.Organization.Kind)
		s.transition(StateTenantResolved,
			zap.Int64("user_id", user.ID),
			zap.Int64("organization_id", tenant.Organization.ID),
		)
	} else {
		s.transition(StateTenantResolved, zap.Int64("user_id", user.ID), zap.String("org_type", NoTenant))
	}

	token, expiresAt, err := s.issuer.Issue(claims, s.ttl)
	if err != nil {
		return nil, WrapInternal("failed to issue token", err)
	}
	claims.ExpiresAt = expiresAt
	s.transition(StateTokenIssued, zap.Int64("user_id", user.ID), zap.Time("expires_at", expiresAt))

	return &Session{
		Token:      token,
		TokenType:  TokenTypeBearer,
		OrgType:    orgType,
		Profession: string(user.PrimaryProfession),
		ExpiresAt:  expiresAt,
		Claims:     claims,
		TTL:        s.ttl,
	}, nil
}

func (s *SessionService) transition(state LoginState, fields ...zap.Field) {
	s.logger.Debug("login state", append([]zap.Field{zap.String("state", string(state))}, fields...)...)
}

func (s *SessionService) reject(err *DomainError, fields ...zap.Field) error {
	s.logger.Warn("login rejected", append([]zap.Field{
		zap.String("state", string(StateRejected)),
		zap.String("reason", err.Code),
	}, fields...)...)
	return err
}

// resolveTenant returns the user's oldest ACTIVE membership with its
// organization, or nil when the user has none
func resolveTenant(ctx context.Context, memberships repositories.MembershipRepository, userID int64) (*models.ActiveMembership, error) {
	active, err := memberships.FirstActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, WrapInternal("failed to resolve tenant", err)
	}
	return active, nil
}
