package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session payload shared by every transport representation of
// a credential. Nil tenant fields mean the subject has no tenant; they are
// encoded as JSON null, never as an empty string.
type Claims struct {
	Subject    string
	TenantID   *string
	TenantKind *string
	Profession *string
	ID         string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// HasTenant reports whether the claims carry a tenant context
func (c *Claims) HasTenant() bool {
	return c.TenantID != nil
}

// StringPtr returns a pointer to s. It exists for building optional claims.
func StringPtr(s string) *string {
	return &s
}

// tokenClaims is the on-the-wire JWT payload
type tokenClaims struct {
	jwt.RegisteredClaims
	TenantID   *string `json:"org_id"`
	TenantKind *string `json:"org_type"`
	Profession *string `json:"primary_profession"`
}

func (c Claims) toToken() *tokenClaims {
	return &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Subject,
			ID:        c.ID,
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
		TenantID:   c.TenantID,
		TenantKind: c.TenantKind,
		Profession: c.Profession,
	}
}

func (t *tokenClaims) toClaims() *Claims {
	c := &Claims{
		Subject:    t.Subject,
		ID:         t.ID,
		TenantID:   t.TenantID,
		TenantKind: t.TenantKind,
		Profession: t.Profession,
	}
	if t.IssuedAt != nil {
		c.IssuedAt = t.IssuedAt.Time.UTC()
	}
	if t.ExpiresAt != nil {
		c.ExpiresAt = t.ExpiresAt.Time.UTC()
	}
	return c
}
