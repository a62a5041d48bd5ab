package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/upb/legaltech-api/backend/internal/auth"
	"github.com/upb/legaltech-api/backend/repositories"
	"go.uber.org/zap"
)

// Profile is the caller's view of themselves. Organization fields are nil
// for users without an ACTIVE membership.
type Profile struct {
	ID                int64    `json:"id"`
	Name              string   `json:"user_name"`
	Email             string   `json:"user_email"`
	OrganizationID    *int64   `json:"org_id"`
	OrganizationName  *string  `json:"org_name"`
	OrganizationKind  *string  `json:"org_type"`
	PrimaryProfession string   `json:"primary_profession"`
	Roles             []string `json:"user_roles"`
}

// IdentityService rebuilds the caller's profile from verified claims
type IdentityService struct {
	users       repositories.UserRepository
	memberships repositories.MembershipRepository
	roles       repositories.RoleRepository
	logger      *zap.Logger
}

// NewIdentityService creates a new IdentityService instance
func NewIdentityService(repos *repositories.Repositories, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		users:       repos.Users,
		memberships: repos.Memberships,
		roles:       repos.Roles,
		logger:      logger,
	}
}

// Me loads the user named by the claims' subject, their oldest ACTIVE
// membership and its role names. Tenant claims are not trusted; the
// membership is resolved again from the store.
func (s *IdentityService) Me(ctx context.Context, claims *auth.Claims) (*Profile, error) {
	if claims == nil {
		return nil, ErrUnauthenticated
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Info("token subject no longer exists", zap.Int64("user_id", userID))
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to load user", err)
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	profile := &Profile{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		PrimaryProfession: string(user.PrimaryProfession),
		Roles:             []string{},
	}

	tenant, err := resolveTenant(ctx, s.memberships, user.ID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return profile, nil
	}

	orgID := tenant.Organization.ID
	orgName := tenant.Organization.Name
	orgKind := string(tenant.Organization.Kind)
	profile.OrganizationID = &orgID
	profile.OrganizationName = &orgName
	profile.OrganizationKind = &orgKind

	names, err := s.roles.NamesForMembership(ctx, tenant.Membership.ID)
	if err != nil {
		return nil, WrapInternal("failed to load roles", err)
	}
	profile.Roles = dedupe(names)

	return profile, nil
}

// dedupe drops repeated names, keeping the first occurrence
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
