package services

import (
	"context"

	"github.com/upb/legaltech-api/backend/models"
	"github.com/upb/legaltech-api/backend/repositories"
	"go.uber.org/zap"
)

// MembershipGuard enforces the integrity rules checked before a user or
// membership row is written. The database unique constraints back up every
// check except exclusivity, which only exists here.
type MembershipGuard struct {
	users       repositories.UserRepository
	memberships repositories.MembershipRepository
	logger      *zap.Logger
}

// NewMembershipGuard creates a new MembershipGuard instance
func NewMembershipGuard(users repositories.UserRepository, memberships repositories.MembershipRepository, logger *zap.Logger) *MembershipGuard {
	return &MembershipGuard{
		users:       users,
		memberships: memberships,
		logger:      logger,
	}
}

// EnsureEmailAvailable fails with ErrDuplicateEmail when the email is taken
func (g *MembershipGuard) EnsureEmailAvailable(ctx context.Context, email string) error {
	exists, err := g.users.ExistsByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		return WrapInternal("failed to check email", err)
	}
	if exists {
		return ErrDuplicateEmail
	}
	return nil
}

// EnsurePhoneAvailable fails with ErrDuplicatePhone when the E.164 number is taken
func (g *MembershipGuard) EnsurePhoneAvailable(ctx context.Context, phone string) error {
	exists, err := g.users.ExistsByPhone(ctx, phone)
	if err != nil {
		return WrapInternal("failed to check phone number", err)
	}
	if exists {
		return ErrDuplicatePhone
	}
	return nil
}

// EnsureMembershipUnique fails with ErrDuplicateMembership when any row,
// whatever its status, already binds the user to the organization
func (g *MembershipGuard) EnsureMembershipUnique(ctx context.Context, orgID, userID int64) error {
	exists, err := g.memberships.Exists(ctx, orgID, userID)
	if err != nil {
		return WrapInternal("failed to check membership", err)
	}
	if exists {
		return ErrDuplicateMembership
	}
	return nil
}

// EnsureExclusivity walks the user's ACTIVE memberships. A new exclusive
// membership is rejected if any ACTIVE membership exists, and any new
// membership is rejected if an ACTIVE one is itself exclusive.
func (g *MembershipGuard) EnsureExclusivity(ctx context.Context, userID int64, exclusive bool) error {
	active, err := g.memberships.ListActiveByUser(ctx, userID)
	if err != nil {
		return WrapInternal("failed to list memberships", err)
	}

	for _, m := range active {
		if exclusive || m.IsExclusive {
			g.logger.Debug("exclusive membership conflict",
				zap.Int64("user_id", userID),
				zap.Int64("membership_id", m.ID),
				zap.Int64("organization_id", m.OrganizationID),
			)
			return ErrExclusiveMembership.
				WithDetail("organization_id", m.OrganizationID)
		}
	}
	return nil
}
