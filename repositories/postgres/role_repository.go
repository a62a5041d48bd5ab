package postgres

import (
	"context"
	"fmt"

	"github.com/upb/legaltech-api/backend/models"
	"github.com/upb/legaltech-api/backend/repositories"
	"go.uber.org/zap"
)

// RoleRepository implements the repositories.RoleRepository interface
type RoleRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *DB, logger *zap.Logger) repositories.RoleRepository {
	return &RoleRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new organization-scoped role
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO roles (organization_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	executor := GetExecutor(ctx, r.db)
	if err := executor.QueryRowContext(ctx, query, role.OrganizationID, role.Name).Scan(&role.ID); err != nil {
		return fmt.Errorf("failed to create role: %w", translateError(err))
	}

	r.logger.Debug("role created",
		zap.Int64("id", role.ID),
		zap.Int64("organization_id", role.OrganizationID),
		zap.String("name", role.Name))
	return nil
}

// Assign grants a role to a membership
func (r *RoleRepository) Assign(ctx context.Context, membershipID, roleID int64) error {
	query := `INSERT INTO member_roles (member_id, role_id) VALUES ($1, $2)`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query, membershipID, roleID); err != nil {
		return fmt.Errorf("failed to assign role: %w", translateError(err))
	}

	r.logger.Debug("role assigned",
		zap.Int64("member_id", membershipID),
		zap.Int64("role_id", roleID))
	return nil
}

// NamesForMembership returns the distinct role names held by a membership,
// ordered by the lowest role id carrying each name
func (r *RoleRepository) NamesForMembership(ctx context.Context, membershipID int64) ([]string, error) {
	query := `
		SELECT r.name
		FROM member_roles mr
		JOIN roles r ON r.id = mr.role_id
		WHERE mr.member_id = $1
		GROUP BY r.name
		ORDER BY MIN(r.id) ASC
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to query role names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan role name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", err)
	}

	return names, nil
}
