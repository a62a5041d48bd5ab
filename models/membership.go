package models

import (
	"time"
)

// MembershipStatus tracks the lifecycle of a membership. Memberships are never
// deleted; they are retired through LEFT or REMOVED.
type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "ACTIVE"
	MembershipInvited MembershipStatus = "INVITED"
	MembershipLeft    MembershipStatus = "LEFT"
	MembershipRemoved MembershipStatus = "REMOVED"
)

// Valid reports whether s is a known membership status
func (s MembershipStatus) Valid() bool {
	switch s {
	case MembershipActive, MembershipInvited, MembershipLeft, MembershipRemoved:
		return true
	}
	return false
}

// Membership binds a user to an organization. At most one row exists per
// (organization, user) pair.
type Membership struct {
	ID             int64            `json:"id" db:"id"`
	OrganizationID int64            `json:"organization_id" db:"organization_id"`
	UserID         int64            `json:"user_id" db:"user_id"`
	IsExclusive    bool             `json:"is_exclusive" db:"is_exclusive"`
	Status         MembershipStatus `json:"status" db:"status"`
	JoinedAt       time.Time        `json:"joined_at" db:"joined_at"`
	LeftAt         *time.Time       `json:"left_at,omitempty" db:"left_at"`
}

// TableName returns the table name for the Membership model
func (Membership) TableName() string {
	return "organization_members"
}

// NewMembership creates an ACTIVE membership joined now
func NewMembership(orgID, userID int64, exclusive bool) *Membership {
	return &Membership{
		OrganizationID: orgID,
		UserID:         userID,
		IsExclusive:    exclusive,
		Status:         MembershipActive,
		JoinedAt:       time.Now().UTC(),
	}
}

// IsActive returns true if the membership is in ACTIVE status
func (m *Membership) IsActive() bool {
	return m.Status == MembershipActive
}

// ActiveMembership is an ACTIVE membership joined with its organization
type ActiveMembership struct {
	Membership   Membership
	Organization Organization
}
