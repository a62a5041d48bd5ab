package services

import (
	"errors"
	"fmt"

	"github.com/upb/legaltech-api/backend/repositories"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeInactive     ErrorType = "inactive"
	ErrorTypeInternal     ErrorType = "internal"
)

// DomainError represents a structured error with additional context.
// Code and Message are safe to show to callers; Err never is.
type DomainError struct {
	Type    ErrorType
	Code    string
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors of the same type and code, so a sentinel still
// matches after Wrap or WithDetail
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if e.Type != t.Type {
		return false
	}
	if e.Code != "" || t.Code != "" {
		return e.Code == t.Code
	}
	return e.Message == t.Message
}

// Wrap returns a copy of e carrying err as its cause
func (e *DomainError) Wrap(err error) *DomainError {
	c := e.clone()
	c.Err = err
	return c
}

// WithDetail returns a copy of e with an added detail
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	c := e.clone()
	c.Details[key] = value
	return c
}

func (e *DomainError) clone() *DomainError {
	details := make(map[string]interface{}, len(e.Details))
	for k, v := range e.Details {
		details[k] = v
	}
	return &DomainError{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
		Details: details,
	}
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, code, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Code:    code,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Domain error variables

var (
	// Validation Errors
	ErrValidation         = NewDomainError(ErrorTypeValidation, "validation_error", "Invalid request", nil)
	ErrPasswordMismatch   = NewDomainError(ErrorTypeValidation, "password_mismatch", "Passwords do not match", nil)
	ErrModeSelection      = NewDomainError(ErrorTypeValidation, "invalid_registration_type", "Select exactly one of law firm, solo lawyer or clerk", nil)
	ErrMissingDisplayName = NewDomainError(ErrorTypeValidation, "missing_display_name", "A name is required for the selected registration type", nil)
	ErrMissingFirmName    = NewDomainError(ErrorTypeValidation, "missing_firm_name", "Firm name is required", nil)
	ErrInvalidPhone       = NewDomainError(ErrorTypeValidation, "invalid_phone_number", "Invalid phone number", nil)
	ErrPasswordTooLong    = NewDomainError(ErrorTypeValidation, "password_too_long", "Password must be at most 72 bytes", nil)

	// Conflict Errors
	ErrDuplicateEmail      = NewDomainError(ErrorTypeConflict, "duplicate_email", "Email already registered", nil)
	ErrDuplicatePhone      = NewDomainError(ErrorTypeConflict, "duplicate_phone_number", "Phone number already registered", nil)
	ErrDuplicateMembership = NewDomainError(ErrorTypeConflict, "duplicate_membership", "User is already a member of this organization", nil)
	ErrExclusiveMembership = NewDomainError(ErrorTypeConflict, "exclusive_membership", "User already holds an exclusive membership", nil)

	// Not Found Errors
	ErrUserNotFound = NewDomainError(ErrorTypeNotFound, "user_not_found", "User not found", nil)

	// Authentication Errors
	ErrInvalidCredentials = NewDomainError(ErrorTypeUnauthorized, "invalid_credentials", "Incorrect email or password", nil)
	ErrUnauthenticated    = NewDomainError(ErrorTypeUnauthorized, "unauthenticated", "Could not validate credentials", nil)

	// Account State Errors
	ErrInactiveAccount = NewDomainError(ErrorTypeInactive, "inactive_account", "Inactive user", nil)

	// Internal Errors
	ErrInternal           = NewDomainError(ErrorTypeInternal, "internal_error", "Internal server error", nil)
	ErrIntegrityViolation = NewDomainError(ErrorTypeInternal, "integrity_violation", "Internal server error", nil)
)

// Error type checking helper functions

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return GetErrorType(err) == ErrorTypeNotFound
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return GetErrorType(err) == ErrorTypeValidation
}

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return GetErrorType(err) == ErrorTypeUnauthorized
}

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool {
	return GetErrorType(err) == ErrorTypeConflict
}

// IsInactiveError checks if an error is an inactive account error
func IsInactiveError(err error) bool {
	return GetErrorType(err) == ErrorTypeInactive
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return GetErrorType(err) == ErrorTypeInternal
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorCode returns the public code of a domain error, or empty string if not a domain error
func GetErrorCode(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, ErrInternal.Code, ErrInternal.Message, fmt.Errorf("%s: %w", message, err))
}

// translateStoreError maps repository failures onto domain errors. Unique
// violations are resolved by constraint name so a duplicate detected at
// insert or commit time reads the same as one caught by a pre-check. Any
// other constraint violation is an integrity_violation.
func translateStoreError(message string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	if constraint, ok := repositories.ViolatedConstraint(err); ok {
		switch constraint {
		case repositories.ConstraintUserEmail:
			return ErrDuplicateEmail.Wrap(err)
		case repositories.ConstraintUserPhone:
			return ErrDuplicatePhone.Wrap(err)
		case repositories.ConstraintOrganizationUser:
			return ErrDuplicateMembership.Wrap(err)
		}
		return ErrIntegrityViolation.Wrap(fmt.Errorf("%s: %w", message, err))
	}
	return WrapInternal(message, err)
}
