package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind discriminates access tokens from refresh tokens. A token of one
// kind must never be accepted where the other is required: an access token
// cannot mint a new pair, and a refresh token cannot authorize a resource call.
type TokenKind string

const (
	// TokenKindAccess is the short-lived credential presented on API calls.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is the long-lived credential used only to mint new access tokens.
	TokenKindRefresh TokenKind = "refresh"
)

// Claims is the only supported JWT claims shape for this service.
type Claims struct {
	jwt.RegisteredClaims

	Role   Role      `json:"role"`
	Active bool      `json:"active"`
	Kind   TokenKind `json:"token_kind"`
}

// TokenPair is the access/refresh pair returned on login and registration.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Issuer mints signed access and refresh tokens bound to a principal.
// Issuance is pure computation; issued tokens are never persisted and remain
// valid until natural expiry (revocation is an explicit non-goal).
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewIssuer constructs an Issuer. A missing secret is fatal at construction
// time so that misconfiguration surfaces at process start, not per-request.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrNoSigningSecret
	}
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// WithClock overrides the issuer's time source. Used by tests to control expiry.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue mints a fresh access/refresh pair for the given principal.
func (i *Issuer) Issue(principal Principal) (TokenPair, error) {
	access, err := i.sign(principal, TokenKindAccess, i.accessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := i.sign(principal, TokenKindRefresh, i.refreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess mints a new access token only. Used by the refresh flow;
// the presented refresh token is not rotated.
func (i *Issuer) IssueAccess(principal Principal) (string, error) {
	access, err := i.sign(principal, TokenKindAccess, i.accessTTL)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

func (i *Issuer) sign(principal Principal, kind TokenKind, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Role:   principal.Role,
		Active: principal.Active,
		Kind:   kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verifier validates bearer tokens and extracts the identity claims.
// Verification is stateless and idempotent: the same token yields the same
// result until it expires. The verifier does not re-fetch the user record.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier constructs a Verifier sharing the issuer's signing secret.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, ErrNoSigningSecret
	}
	return &Verifier{secret: []byte(secret), now: time.Now}, nil
}

// WithClock overrides the verifier's time source. Used by tests.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// Verify checks the raw token's structure, signature, expiry and kind, and
// returns the Principal reconstructed from its claims.
func (v *Verifier) Verify(raw string, expectedKind TokenKind) (Principal, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)

	_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Principal{}, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Principal{}, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return Principal{}, ErrTokenExpired
		default:
			return Principal{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
	}

	if claims.Kind != expectedKind {
		return Principal{}, ErrWrongTokenKind
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return Principal{}, ErrMalformedToken
	}

	return Principal{
		ID:     claims.Subject,
		Role:   claims.Role,
		Active: claims.Active,
	}, nil
}
