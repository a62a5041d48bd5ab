package services

import (
	"context"
	"errors"
	"strings"

	"github.com/upb/legaltech-api/backend/internal/auth"
	"github.com/upb/legaltech-api/backend/models"
	"github.com/upb/legaltech-api/backend/repositories"
	"github.com/upb/legaltech-api/backend/utils"
	"go.uber.org/zap"
)

// maxPasswordBytes is the longest input bcrypt accepts
const maxPasswordBytes = 72

// RegistrationMode selects how a registration creates (or skips) a tenant
type RegistrationMode string

const (
	ModeFirm       RegistrationMode = "FIRM"
	ModeSoloLawyer RegistrationMode = "SOLO_LAWYER"
	ModeClerk      RegistrationMode = "CLERK"
)

// tenantPolicy describes the organization a registration mode creates
type tenantPolicy struct {
	kind      models.OrgKind
	role      string
	exclusive bool
}

// registrationPolicy is one row of the mode policy table
type registrationPolicy struct {
	profession models.Profession
	tenant     *tenantPolicy
}

var registrationPolicies = map[RegistrationMode]registrationPolicy{
	ModeFirm: {
		profession: models.ProfessionLawyer,
		tenant:     &tenantPolicy{kind: models.OrgKindFirm, role: models.RoleFirmAdmin, exclusive: true},
	},
	ModeSoloLawyer: {
		profession: models.ProfessionLawyer,
		tenant:     &tenantPolicy{kind: models.OrgKindSolo, role: models.RoleSoloPractitioner, exclusive: true},
	},
	ModeClerk: {
		profession: models.ProfessionClerk,
	},
}

// PasswordHasher hashes and checks passwords
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// RegisterInput is a registration request. Exactly one of the mode flags
// must be set; the display name is read from the field matching the mode.
type RegisterInput struct {
	Email           string  `json:"email" validate:"required,email,max=255"`
	Password        string  `json:"password" validate:"required,min=8"`
	ConfirmPassword string  `json:"confirm_password" validate:"required"`
	PhoneNumber     *string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	IsLawFirm       bool    `json:"is_law_firm"`
	IsSoloLawyer    bool    `json:"is_solo_lawyer"`
	IsClerk         bool    `json:"is_clerk"`
	FirmName        string  `json:"firm_name,omitempty" validate:"max=255"`
	AdminName       string  `json:"admin_name,omitempty" validate:"max=100"`
	LawyerName      string  `json:"lawyer_name,omitempty" validate:"max=100"`
	ClerkName       string  `json:"clerk_name,omitempty" validate:"max=100"`
}

// Mode resolves the selected registration mode. It fails unless exactly
// one mode flag is set.
func (in RegisterInput) Mode() (RegistrationMode, error) {
	var modes []RegistrationMode
	if in.IsLawFirm {
		modes = append(modes, ModeFirm)
	}
	if in.IsSoloLawyer {
		modes = append(modes, ModeSoloLawyer)
	}
	if in.IsClerk {
		modes = append(modes, ModeClerk)
	}
	if len(modes) != 1 {
		return "", ErrModeSelection
	}
	return modes[0], nil
}

// DisplayName returns the trimmed name field required by mode
func (in RegisterInput) DisplayName(mode RegistrationMode) string {
	switch mode {
	case ModeFirm:
		return strings.TrimSpace(in.AdminName)
	case ModeSoloLawyer:
		return strings.TrimSpace(in.LawyerName)
	case ModeClerk:
		return strings.TrimSpace(in.ClerkName)
	}
	return ""
}

// RegistrationResult is what a successful registration created.
// Organization, Membership and Role are nil for CLERK registrations.
type RegistrationResult struct {
	User         *models.User
	Organization *models.Organization
	Membership   *models.Membership
	Role         *models.Role
}

// registrationPlan is a validated request ready to be written
type registrationPlan struct {
	mode     RegistrationMode
	policy   registrationPolicy
	name     string
	email    string
	password string
	phone    *string
	orgName  string
}

// RegistrationService creates users and, depending on mode, their tenant
type RegistrationService struct {
	txMgr         repositories.TransactionManager
	users         repositories.UserRepository
	organizations repositories.OrganizationRepository
	memberships   repositories.MembershipRepository
	roles         repositories.RoleRepository
	guard         *MembershipGuard
	hasher        PasswordHasher
	phoneRegion   string
	logger        *zap.Logger
}

// NewRegistrationService creates a new RegistrationService instance.
// phoneRegion is the region assumed for phone numbers given without a
// country code.
func NewRegistrationService(
	txMgr repositories.TransactionManager,
	repos *repositories.Repositories,
	hasher PasswordHasher,
	phoneRegion string,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		txMgr:         txMgr,
		users:         repos.Users,
		organizations: repos.Organizations,
		memberships:   repos.Memberships,
		roles:         repos.Roles,
		guard:         NewMembershipGuard(repos.Users, repos.Memberships, logger),
		hasher:        hasher,
		phoneRegion:   phoneRegion,
		logger:        logger,
	}
}

// Register validates the request and writes the user, and for tenant modes
// the organization, membership, role and role assignment, in a single
// transaction. Nothing is written when any step fails.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (*RegistrationResult, error) {
	plan, err := s.plan(in)
	if err != nil {
		return nil, err
	}

	result, err := WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) (*RegistrationResult, error) {
		return s.apply(ctx, plan)
	})
	if err != nil {
		err = translateStoreError("failed to register user", err)
		if IsInternalError(err) {
			s.logger.Error("registration failed", zap.String("mode", string(plan.mode)), zap.Error(err))
		} else {
			s.logger.Info("registration rejected",
				zap.String("mode", string(plan.mode)),
				zap.String("reason", GetErrorCode(err)),
			)
		}
		return nil, err
	}

	fields := []zap.Field{
		zap.Int64("user_id", result.User.ID),
		zap.String("mode", string(plan.mode)),
	}
	if result.Organization != nil {
		fields = append(fields, zap.Int64("organization_id", result.Organization.ID))
	}
	s.logger.Info("user registered", fields...)

	return result, nil
}

// plan checks every precondition that can be decided without the store
func (s *RegistrationService) plan(in RegisterInput) (*registrationPlan, error) {
	mode, err := in.Mode()
	if err != nil {
		return nil, err
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	email := models.NormalizeEmail(in.Email)
	if email == "" {
		return nil, ErrValidation.WithDetail("email", "email is required")
	}

	name := in.DisplayName(mode)
	if name == "" {
		return nil, ErrMissingDisplayName.WithDetail("mode", string(mode))
	}

	plan := &registrationPlan{
		mode:     mode,
		policy:   registrationPolicies[mode],
		name:     name,
		email:    email,
		password: in.Password,
	}

	switch mode {
	case ModeFirm:
		plan.orgName = strings.TrimSpace(in.FirmName)
		if plan.orgName == "" {
			return nil, ErrMissingFirmName
		}
	case ModeSoloLawyer:
		plan.orgName = models.SoloPracticeName(name)
	}

	if in.PhoneNumber != nil && strings.TrimSpace(*in.PhoneNumber) != "" {
		phone, err := utils.NormalizePhone(*in.PhoneNumber, s.phoneRegion)
		if err != nil {
			return nil, ErrInvalidPhone.Wrap(err)
		}
		plan.phone = &phone
	}

	return plan, nil
}

// apply performs the writes of a plan. ctx carries the transaction.
func (s *RegistrationService) apply(ctx context.Context, plan *registrationPlan) (*RegistrationResult, error) {
	if err := s.guard.EnsureEmailAvailable(ctx, plan.email); err != nil {
		return nil, err
	}
	if plan.phone != nil {
		if err := s.guard.EnsurePhoneAvailable(ctx, *plan.phone); err != nil {
			return nil, err
		}
	}

	digest, err := s.hasher.Hash(plan.password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, WrapInternal("failed to hash password", err)
	}

	user := models.NewUser(plan.name, plan.email, plan.phone, digest, plan.policy.profession)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, translateStoreError("failed to create user", err)
	}

	result := &RegistrationResult{User: user}
	tenant := plan.policy.tenant
	if tenant == nil {
		return result, nil
	}

	org := models.NewOrganization(plan.orgName, tenant.kind)
	if err := s.organizations.Create(ctx, org); err != nil {
		return nil, translateStoreError("failed to create organization", err)
	}

	if err := s.guard.EnsureMembershipUnique(ctx, org.ID, user.ID); err != nil {
		return nil, err
	}
	if err := s.guard.EnsureExclusivity(ctx, user.ID, tenant.exclusive); err != nil {
		return nil, err
	}

	membership := models.NewMembership(org.ID, user.ID, tenant.exclusive)
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, translateStoreError("failed to create membership", err)
	}

	role := models.NewRole(org.ID, tenant.role)
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, translateStoreError("failed to create role", err)
	}
	if err := s.roles.Assign(ctx, membership.ID, role.ID); err != nil {
		return nil, translateStoreError("failed to assign role", err)
	}

	result.Organization = org
	result.Membership = membership
	result.Role = role
	return result, nil
}
