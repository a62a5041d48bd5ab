package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/legaltech-api/backend/internal/auth"
	"github.com/upb/legaltech-api/backend/repositories"
	"go.uber.org/zap/zaptest"
)

func newIdentityService(t *testing.T) (*IdentityService, *repoMocks) {
	repos := newRepoMocks()
	return NewIdentityService(repos.repositories(), zaptest.NewLogger(t)), repos
}

func TestIdentityService_Me(t *testing.T) {
	t.Run("profile with tenant and ordered roles", func(t *testing.T) {
		svc, repos := newIdentityService(t)
		repos.users.On("GetByID", mock.Anything, int64(42)).Return(activeLawyer(), nil)
		repos.memberships.On("FirstActiveByUser", mock.Anything, int64(42)).Return(firmMembership(42), nil)
		repos.roles.On("NamesForMembership", mock.Anything, int64(7)).
			Return([]string{"FIRM_ADMIN", "BILLING", "FIRM_ADMIN"}, nil)

		profile, err := svc.Me(context.Background(), &auth.Claims{Subject: "42"})

		require.NoError(t, err)
		assert.Equal(t, int64(42), profile.ID)
		assert.Equal(t, "Ada Lovelace", profile.Name)
		assert.Equal(t, "ada@example.com", profile.Email)
		assert.Equal(t, "LAWYER", profile.PrimaryProfession)
		require.NotNil(t, profile.OrganizationID)
		assert.Equal(t, int64(9), *profile.OrganizationID)
		assert.Equal(t, "Lovelace & Babbage", *profile.OrganizationName)
		assert.Equal(t, "FIRM", *profile.OrganizationKind)
		assert.Equal(t, []string{"FIRM_ADMIN", "BILLING"}, profile.Roles)
		repos.assertExpectations(t)
	})

	t.Run("profile without tenant", func(t *testing.T) {
		svc, repos := newIdentityService(t)
		repos.users.On("GetByID", mock.Anything, int64(42)).Return(activeLawyer(), nil)
		repos.memberships.On("FirstActiveByUser", mock.Anything, int64(42)).Return(nil, repositories.ErrNotFound)

		profile, err := svc.Me(context.Background(), &auth.Claims{Subject: "42", TenantID: auth.StringPtr("9")})

		require.NoError(t, err)
		assert.Nil(t, profile.OrganizationID)
		assert.Nil(t, profile.OrganizationName)
		assert.Nil(t, profile.OrganizationKind)
		assert.NotNil(t, profile.Roles)
		assert.Empty(t, profile.Roles)
		repos.roles.AssertNotCalled(t, "NamesForMembership", mock.Anything, mock.Anything)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		svc, repos := newIdentityService(t)
		repos.users.On("GetByID", mock.Anything, int64(42)).Return(nil, repositories.ErrNotFound)

		_, err := svc.Me(context.Background(), &auth.Claims{Subject: "42"})

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.False(t, IsInternalError(err))
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, repos := newIdentityService(t)
		user := activeLawyer()
		user.IsActive = false
		repos.users.On("GetByID", mock.Anything, int64(42)).Return(user, nil)

		_, err := svc.Me(context.Background(), &auth.Claims{Subject: "42"})

		assert.ErrorIs(t, err, ErrInactiveAccount)
	})

	t.Run("unusable subject", func(t *testing.T) {
		svc, repos := newIdentityService(t)

		for _, claims := range []*auth.Claims{nil, {Subject: ""}, {Subject: "abc"}, {Subject: "-3"}} {
			_, err := svc.Me(context.Background(), claims)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		}
		repos.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("role lookup failure", func(t *testing.T) {
		svc, repos := newIdentityService(t)
		repos.users.On("GetByID", mock.Anything, int64(42)).Return(activeLawyer(), nil)
		repos.memberships.On("FirstActiveByUser", mock.Anything, int64(42)).Return(firmMembership(42), nil)
		repos.roles.On("NamesForMembership", mock.Anything, int64(7)).Return(nil, errors.New("timeout"))

		_, err := svc.Me(context.Background(), &auth.Claims{Subject: "42"})

		assert.True(t, IsInternalError(err))
	})
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{}, dedupe(nil))
	assert.Equal(t, []string{"A", "B", "C"}, dedupe([]string{"A", "B", "A", "C", "B"}))
}
