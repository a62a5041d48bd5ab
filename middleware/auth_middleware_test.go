package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/legaltech-api/backend/internal/auth"
	"github.com/upb/legaltech-api/backend/utils"
	"go.uber.org/zap"
)

// MockTokenValidator is a mock implementation of TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func okHandler(t *testing.T, want *auth.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := GetClaimsFromContext(r.Context())
		require.NotNil(t, got)
		assert.Equal(t, want.Subject, got.Subject)
		w.WriteHeader(http.StatusOK)
	})
}

func assertUnauthenticated(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "unauthorized", body.Error)
	assert.Equal(t, "Could not validate credentials", body.Message)
}

func TestRequireAuth(t *testing.T) {
	logger := zap.NewNop()
	claims := &auth.Claims{Subject: "42", TenantID: auth.StringPtr("9")}

	t.Run("valid token in Authorization header allows request", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		mockValidator.On("ValidateToken", mock.Anything, "valid-token").Return(claims, nil)

		handler := NewAuthMiddleware(mockValidator, logger).RequireAuth(okHandler(t, claims))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockValidator.AssertExpectations(t)
	})

	t.Run("cookie with Bearer prefix allows request", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		mockValidator.On("ValidateToken", mock.Anything, "cookie-token").Return(claims, nil)

		handler := NewAuthMiddleware(mockValidator, logger).RequireAuth(okHandler(t, claims))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "Bearer cookie-token"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockValidator.AssertExpectations(t)
	})

	t.Run("cookie without prefix allows request", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		mockValidator.On("ValidateToken", mock.Anything, "cookie-token").Return(claims, nil)

		handler := NewAuthMiddleware(mockValidator, logger).RequireAuth(okHandler(t, claims))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-token"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("header takes precedence over cookie", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		mockValidator.On("ValidateToken", mock.Anything, "header-token").Return(claims, nil)

		handler := NewAuthMiddleware(mockValidator, logger).RequireAuth(okHandler(t, claims))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "Bearer cookie-token"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockValidator.AssertNotCalled(t, "ValidateToken", mock.Anything, "cookie-token")
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		handler := NewAuthMiddleware(mockValidator, logger).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assertUnauthenticated(t, w)
		mockValidator.AssertNotCalled(t, "ValidateToken", mock.Anything, mock.Anything)
	})

	t.Run("invalid authorization header format returns 401", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		handler := NewAuthMiddleware(mockValidator, logger).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assertUnauthenticated(t, w)
	})

	t.Run("every verification failure reads the same", func(t *testing.T) {
		for _, verifyErr := range []error{auth.ErrInvalidSignature, auth.ErrExpired, auth.ErrMalformed} {
			mockValidator := new(MockTokenValidator)
			mockValidator.On("ValidateToken", mock.Anything, "bad-token").Return(nil, verifyErr)

			handler := NewAuthMiddleware(mockValidator, logger).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be called")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			req.Header.Set("Authorization", "Bearer bad-token")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assertUnauthenticated(t, w)
		}
	})
}

func TestRequireAuth_WithCodec(t *testing.T) {
	now := time.Now()
	codec, err := auth.NewCodec([]byte("0123456789abcdef0123456789abcdef"), "HS256",
		auth.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	token, _, err := codec.Issue(auth.Claims{Subject: "42"}, time.Minute)
	require.NoError(t, err)

	handler := NewAuthMiddleware(codec, zap.NewNop()).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int64(42), id)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("issued token is accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		tampered := []byte(token)
		last := len(tampered) - 2
		if tampered[last] == 'A' {
			tampered[last] = 'B'
		} else {
			tampered[last] = 'A'
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+string(tampered))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assertUnauthenticated(t, w)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		defer func() { now = now.Add(-2 * time.Minute) }()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "Bearer " + token})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assertUnauthenticated(t, w)
	})
}

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "abc", stripBearer("Bearer abc"))
	assert.Equal(t, "abc", stripBearer("bearer abc"))
	assert.Equal(t, "abc", stripBearer("abc"))
	assert.Equal(t, "", stripBearer("Bearer "))
	assert.Equal(t, "", stripBearer("Bearer"))
	assert.Equal(t, "", stripBearer(" bearer "))
	assert.Equal(t, "", stripBearer(""))
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestIDFromContext(ctx))
	assert.Equal(t, "req-1", GetRequestIDFromContext(WithRequestID(ctx, "req-1")))

	assert.Nil(t, GetClaimsFromContext(ctx))
	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)

	_, ok = GetUserIDFromContext(WithClaims(ctx, &auth.Claims{Subject: "not-a-number"}))
	assert.False(t, ok)

	id, ok := GetUserIDFromContext(WithClaims(ctx, &auth.Claims{Subject: "7"}))
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}
