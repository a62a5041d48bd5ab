package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintError(t *testing.T) {
	err := fmt.Errorf("failed to create user: %w", &ConstraintError{
		Constraint: ConstraintUserEmail,
		Err:        ErrDuplicate,
	})

	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "users_email_key")

	name, ok := ViolatedConstraint(err)
	assert.True(t, ok)
	assert.Equal(t, ConstraintUserEmail, name)
}

func TestViolatedConstraint_NotConstraintError(t *testing.T) {
	name, ok := ViolatedConstraint(ErrNotFound)
	assert.False(t, ok)
	assert.Empty(t, name)
}
