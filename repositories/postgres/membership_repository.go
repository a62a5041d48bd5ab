package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upb/legaltech-api/backend/models"
	"github.com/upb/legaltech-api/backend/repositories"
	"go.uber.org/zap"
)

// MembershipRepository implements the repositories.MembershipRepository interface
type MembershipRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *DB, logger *zap.Logger) repositories.MembershipRepository {
	return &MembershipRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new membership
func (r *MembershipRepository) Create(ctx context.Context, m *models.Membership) error {
	query := `
		INSERT INTO organization_members (organization_id, user_id, is_exclusive, status, joined_at, left_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query,
		m.OrganizationID,
		m.UserID,
		m.IsExclusive,
		m.Status,
		m.JoinedAt,
		m.LeftAt,
	).Scan(&m.ID)

	if err != nil {
		return fmt.Errorf("failed to create membership: %w", translateError(err))
	}

	r.logger.Debug("membership created",
		zap.Int64("id", m.ID),
		zap.Int64("organization_id", m.OrganizationID),
		zap.Int64("user_id", m.UserID),
		zap.Bool("exclusive", m.IsExclusive))
	return nil
}

// Exists reports whether a membership row exists for the pair, in any status
func (r *MembershipRepository) Exists(ctx context.Context, orgID, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM organization_members WHERE organization_id = $1 AND user_id = $2)`

	var exists bool
	if err := GetExecutor(ctx, r.db).QueryRowContext(ctx, query, orgID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// ListActiveByUser returns the user's ACTIVE memberships, oldest first
func (r *MembershipRepository) ListActiveByUser(ctx context.Context, userID int64) ([]*models.Membership, error) {
	query := `
		SELECT id, organization_id, user_id, is_exclusive, status, joined_at, left_at
		FROM organization_members
		WHERE user_id = $1 AND status = $2
		ORDER BY id ASC
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, userID, models.MembershipActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*models.Membership
	for rows.Next() {
		m := &models.Membership{}
		var leftAt sql.NullTime
		err := rows.Scan(
			&m.ID,
			&m.OrganizationID,
			&m.UserID,
			&m.IsExclusive,
			&m.Status,
			&m.JoinedAt,
			&leftAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		if leftAt.Valid {
			m.LeftAt = &leftAt.Time
		}
		memberships = append(memberships, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}

	return memberships, nil
}

// FirstActiveByUser returns the user's oldest ACTIVE membership together with
// its organization. The lowest membership id wins.
func (r *MembershipRepository) FirstActiveByUser(ctx context.Context, userID int64) (*models.ActiveMembership, error) {
	query := `
		SELECT m.id, m.organization_id, m.user_id, m.is_exclusive, m.status, m.joined_at, m.left_at,
		       o.id, o.name, o.org_type, o.is_active, o.created_at
		FROM organization_members m
		JOIN organizations o ON o.id = m.organization_id
		WHERE m.user_id = $1 AND m.status = $2
		ORDER BY m.id ASC
		LIMIT 1
	`

	executor := GetExecutor(ctx, r.db)
	am := &models.ActiveMembership{}
	var leftAt sql.NullTime

	err := executor.QueryRowContext(ctx, query, userID, models.MembershipActive).Scan(
		&am.Membership.ID,
		&am.Membership.OrganizationID,
		&am.Membership.UserID,
		&am.Membership.IsExclusive,
		&am.Membership.Status,
		&am.Membership.JoinedAt,
		&leftAt,
		&am.Organization.ID,
		&am.Organization.Name,
		&am.Organization.Kind,
		&am.Organization.IsActive,
		&am.Organization.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active membership for user %d: %w", userID, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get active membership: %w", err)
	}
	if leftAt.Valid {
		am.Membership.LeftAt = &leftAt.Time
	}

	return am, nil
}
