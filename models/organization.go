package models

import (
	"time"
)

// OrgKind distinguishes a solo practice from a law firm. It is fixed at creation.
type OrgKind string

const (
	OrgKindSolo OrgKind = "SOLO"
	OrgKindFirm OrgKind = "FIRM"
)

// Valid reports whether k is a known organization kind
func (k OrgKind) Valid() bool {
	return k == OrgKindSolo || k == OrgKindFirm
}

// Organization represents a tenant in the multi-tenant system
type Organization struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Kind      OrgKind   `json:"type" db:"org_type"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Organization model
func (Organization) TableName() string {
	return "organizations"
}

// NewOrganization creates a new active Organization instance
func NewOrganization(name string, kind OrgKind) *Organization {
	return &Organization{
		Name:      name,
		Kind:      kind,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// SoloPracticeName is the organization name given to a solo lawyer's tenant
func SoloPracticeName(lawyerName string) string {
	return lawyerName + "'s Practice"
}
