package models

// Role names created at registration
const (
	RoleFirmAdmin        = "FIRM_ADMIN"
	RoleSoloPractitioner = "SOLO_PRACTITIONER"
)

// Role is an organization-scoped named permission group. Names only have
// meaning inside the owning organization.
type Role struct {
	ID             int64  `json:"id" db:"id"`
	OrganizationID int64  `json:"organization_id" db:"organization_id"`
	Name           string `json:"name" db:"name"`
}

// TableName returns the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a new Role for an organization
func NewRole(orgID int64, name string) *Role {
	return &Role{OrganizationID: orgID, Name: name}
}

// RoleAssignment grants a Role to a Membership
type RoleAssignment struct {
	MembershipID int64 `json:"member_id" db:"member_id"`
	RoleID       int64 `json:"role_id" db:"role_id"`
}

// TableName returns the table name for the RoleAssignment model
func (RoleAssignment) TableName() string {
	return "member_roles"
}

// Permission and RolePermission exist in the schema for a future
// authorization layer. Nothing reads them yet.
type Permission struct {
	ID          int64  `json:"id" db:"id"`
	Code        string `json:"code" db:"code"`
	Description string `json:"description" db:"description"`
}

// TableName returns the table name for the Permission model
func (Permission) TableName() string {
	return "permissions"
}

type RolePermission struct {
	RoleID       int64 `json:"role_id" db:"role_id"`
	PermissionID int64 `json:"permission_id" db:"permission_id"`
}

// TableName returns the table name for the RolePermission model
func (RolePermission) TableName() string {
	return "role_permissions"
}
