package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/upb/legaltech-api/backend/repositories"
)

// SQLSTATE codes for integrity constraint violations
const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
	checkViolation      pq.ErrorCode = "23514"
)

var constraintSentinels = map[pq.ErrorCode]error{
	uniqueViolation:     repositories.ErrDuplicate,
	foreignKeyViolation: repositories.ErrForeignKey,
	checkViolation:      repositories.ErrCheckViolation,
}

// translateError maps driver errors onto the repository sentinels. Other
// errors are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repositories.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if sentinel, ok := constraintSentinels[pqErr.Code]; ok {
			return &repositories.ConstraintError{
				Constraint: pqErr.Constraint,
				Err:        sentinel,
			}
		}
	}
	return err
}
