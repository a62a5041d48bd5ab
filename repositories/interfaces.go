package repositories

import (
	"context"

	"github.com/upb/legaltech-api/backend/models"
)

// TransactionManager manages database transactions. Repositories pick up the
// active transaction from the transaction's Context.
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// UserRepository handles user data operations
type UserRepository interface {
	// Create inserts a user and sets its ID and timestamps
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ExistsByEmail reports whether the email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByPhone reports whether the phone number is already registered
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}

// OrganizationRepository handles organization data operations
type OrganizationRepository interface {
	// Create inserts an organization and sets its ID
	Create(ctx context.Context, org *models.Organization) error
}

// MembershipRepository handles organization membership data operations
type MembershipRepository interface {
	// Create inserts a membership and sets its ID
	Create(ctx context.Context, m *models.Membership) error

	// Exists reports whether any membership row exists for the pair
	Exists(ctx context.Context, orgID, userID int64) (bool, error)

	// ListActiveByUser returns the user's ACTIVE memberships, oldest first
	ListActiveByUser(ctx context.Context, userID int64) ([]*models.Membership, error)

	// FirstActiveByUser returns the user's oldest ACTIVE membership joined
	// with its organization, or ErrNotFound
	FirstActiveByUser(ctx context.Context, userID int64) (*models.ActiveMembership, error)
}

// RoleRepository handles organization role data operations
type RoleRepository interface {
	// Create inserts a role and sets its ID
	Create(ctx context.Context, role *models.Role) error

	// Assign grants a role to a membership
	Assign(ctx context.Context, membershipID, roleID int64) error

	// NamesForMembership returns the distinct role names held by a
	// membership, ordered by role ID
	NamesForMembership(ctx context.Context, membershipID int64) ([]string, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users         UserRepository
	Organizations OrganizationRepository
	Memberships   MembershipRepository
	Roles         RoleRepository
}
