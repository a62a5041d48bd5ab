package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidSignature is returned when the token was not signed with the
	// configured secret and algorithm
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrExpired is returned when the token expiry has passed
	ErrExpired = errors.New("token expired")

	// ErrMalformed is returned when the token cannot be parsed or lacks a subject
	ErrMalformed = errors.New("malformed token")
)

var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Codec issues and verifies HMAC-signed session credentials. The secret and
// algorithm are fixed at construction.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// CodecOption configures a Codec
type CodecOption func(*Codec)

// WithClock overrides the time source used for issuing and expiry checks
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec creates a Codec for one of HS256, HS384 or HS512
func NewCodec(secret []byte, algorithm string, opts ...CodecOption) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("signing secret is required")
	}
	method, ok := signingMethods[strings.ToUpper(algorithm)]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	c := &Codec{
		secret: secret,
		method: method,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Algorithm returns the configured signing algorithm name
func (c *Codec) Algorithm() string {
	return c.method.Alg()
}

// Issue signs claims with an expiry of now+ttl and returns the token and its
// expiry. A fresh token id is assigned to every credential.
func (c *Codec) Issue(claims Claims, ttl time.Duration) (string, time.Time, error) {
	if claims.Subject == "" {
		return "", time.Time{}, fmt.Errorf("%w: subject is required", ErrMalformed)
	}
	if ttl <= 0 {
		return "", time.Time{}, errors.New("token ttl must be positive")
	}

	// NumericDate has second precision
	now := c.now().UTC().Truncate(time.Second)
	claims.IssuedAt = now
	claims.ExpiresAt = now.Add(ttl)
	claims.ID = uuid.NewString()

	token := jwt.NewWithClaims(c.method, claims.toToken())
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims.ExpiresAt, nil
}

// Verify checks the signature and expiry of token and returns its claims.
// Errors are always one of ErrMalformed, ErrInvalidSignature or ErrExpired.
func (c *Codec) Verify(token string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	parsed := &tokenClaims{}
	_, err := parser.ParseWithClaims(token, parsed, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if parsed.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformed)
	}
	return parsed.toClaims(), nil
}

// ValidateToken adapts Verify to the request-scoped validator used by the
// HTTP middleware
func (c *Codec) ValidateToken(_ context.Context, token string) (*Claims, error) {
	return c.Verify(token)
}

// classify maps jwt parser errors onto the codec's three failure kinds
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
