package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/upb/legaltech-api/backend/internal/auth"
	"github.com/upb/legaltech-api/backend/models"
	"github.com/upb/legaltech-api/backend/repositories"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

// MockOrganizationRepository is a mock implementation of OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

// MockMembershipRepository is a mock implementation of MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Exists(ctx context.Context, orgID, userID int64) (bool, error) {
	args := m.Called(ctx, orgID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepository) ListActiveByUser(ctx context.Context, userID int64) ([]*models.Membership, error) {
	args := m.Called(ctx, userID)
	if l := args.Get(0); l != nil {
		return l.([]*models.Membership), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMembershipRepository) FirstActiveByUser(ctx context.Context, userID int64) (*models.ActiveMembership, error) {
	args := m.Called(ctx, userID)
	if a := args.Get(0); a != nil {
		return a.(*models.ActiveMembership), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRoleRepository is a mock implementation of RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Create(ctx context.Context, role *models.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) Assign(ctx context.Context, membershipID, roleID int64) error {
	args := m.Called(ctx, membershipID, roleID)
	return args.Error(0)
}

func (m *MockRoleRepository) NamesForMembership(ctx context.Context, membershipID int64) ([]string, error) {
	args := m.Called(ctx, membershipID)
	if l := args.Get(0); l != nil {
		return l.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPasswordHasher is a mock implementation of PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(plaintext, digest string) bool {
	args := m.Called(plaintext, digest)
	return args.Bool(0)
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(claims auth.Claims, ttl time.Duration) (string, time.Time, error) {
	args := m.Called(claims, ttl)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// repoMocks bundles one mock per repository
type repoMocks struct {
	users         *MockUserRepository
	organizations *MockOrganizationRepository
	memberships   *MockMembershipRepository
	roles         *MockRoleRepository
}

func newRepoMocks() *repoMocks {
	return &repoMocks{
		users:         new(MockUserRepository),
		organizations: new(MockOrganizationRepository),
		memberships:   new(MockMembershipRepository),
		roles:         new(MockRoleRepository),
	}
}

func (r *repoMocks) repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Users:         r.users,
		Organizations: r.organizations,
		Memberships:   r.memberships,
		Roles:         r.roles,
	}
}

func (r *repoMocks) assertExpectations(t mock.TestingT) {
	r.users.AssertExpectations(t)
	r.organizations.AssertExpectations(t)
	r.memberships.AssertExpectations(t)
	r.roles.AssertExpectations(t)
}
