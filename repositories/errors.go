package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write violates a unique constraint
	ErrDuplicate = errors.New("duplicate record")

	// ErrForeignKey is returned when a write references a missing row
	ErrForeignKey = errors.New("foreign key violation")

	// ErrCheckViolation is returned when a write fails a CHECK constraint
	ErrCheckViolation = errors.New("check constraint violation")
)

// Constraint names from the schema that callers translate into domain errors
const (
	ConstraintUserEmail        = "users_email_key"
	ConstraintUserPhone        = "users_phone_number_key"
	ConstraintOrganizationUser = "uq_organization_member"
)

// ConstraintError reports which constraint a write violated. Err is one of
// ErrDuplicate, ErrForeignKey or ErrCheckViolation.
type ConstraintError struct {
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Constraint)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// ViolatedConstraint returns the constraint name when err is a ConstraintError
func ViolatedConstraint(err error) (string, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint, true
	}
	return "", false
}
