package postgres

import (
	"context"
	"fmt"

	"github.com/upb/legaltech-api/backend/models"
	"github.com/upb/legaltech-api/backend/repositories"
	"go.uber.org/zap"
)

// OrganizationRepository implements the repositories.OrganizationRepository interface
type OrganizationRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *DB, logger *zap.Logger) repositories.OrganizationRepository {
	return &OrganizationRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (name, org_type, is_active, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query,
		org.Name,
		org.Kind,
		org.IsActive,
		org.CreatedAt,
	).Scan(&org.ID)

	if err != nil {
		return fmt.Errorf("failed to create organization: %w", translateError(err))
	}

	r.logger.Debug("organization created", zap.Int64("id", org.ID), zap.String("type", string(org.Kind)))
	return nil
}
