package models

import (
	"strings"
	"time"
)

// Profession is the global classification of a user. It drives client-side
// routing and is not scoped to any organization.
type Profession string

const (
	ProfessionLawyer     Profession = "LAWYER"
	ProfessionClerk      Profession = "CLERK"
	ProfessionAdminStaff Profession = "ADMIN_STAFF"
)

// Valid reports whether p is a known profession
func (p Profession) Valid() bool {
	switch p {
	case ProfessionLawyer, ProfessionClerk, ProfessionAdminStaff:
		return true
	}
	return false
}

// User is an identity record. A user may exist without any organization
// relationship (unaffiliated clerk).
type User struct {
	ID                int64      `json:"id" db:"id"`
	Name              string     `json:"name" db:"name"`
	Email             string     `json:"email" db:"email"`
	PhoneNumber       *string    `json:"phone_number,omitempty" db:"phone_number"` // E.164
	HashedPassword    string     `json:"-" db:"hashed_password"`                  // Never expose in JSON
	PrimaryProfession Profession `json:"primary_profession" db:"primary_profession"`
	IsActive          bool       `json:"is_active" db:"is_active"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active User. Email is lower-cased and trimmed since
// it is the login key and immutable after creation.
func NewUser(name, email string, phone *string, hashedPassword string, profession Profession) *User {
	now := time.Now().UTC()
	return &User{
		Name:              name,
		Email:             NormalizeEmail(email),
		PhoneNumber:       phone,
		HashedPassword:    hashedPassword,
		PrimaryProfession: profession,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// NormalizeEmail returns the canonical storage form of an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
