package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func testPrincipal() Principal {
	return Principal{
		ID:     "4f5c6b2e-aaaa-bbbb-cccc-000000000001",
		Role:   RoleFounder,
		Active: true,
	}
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour, 7*24*time.Hour)
	assert.ErrorIs(t, err, ErrNoSigningSecret)

	_, err = NewVerifier("")
	assert.ErrorIs(t, err, ErrNoSigningSecret)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	verifier, err := NewVerifier(testSecret)
	require.NoError(t, err)

	principal := testPrincipal()
	pair, err := issuer.Issue(principal)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	got, err := verifier.Verify(pair.Access, TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, principal, got)

	got, err = verifier.Verify(pair.Refresh, TokenKindRefresh)
	require.NoError(t, err)
	assert.Equal(t, principal, got)
}

func TestVerify_RejectsWrongKind(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	verifier, err := NewVerifier(testSecret)
	require.NoError(t, err)

	pair, err := issuer.Issue(testPrincipal())
	require.NoError(t, err)

	// Refresh token presented where an access token is required, and the
	// reverse: both must fail with the kind error, not a generic one.
	_, err = verifier.Verify(pair.Refresh, TokenKindAccess)
	assert.ErrorIs(t, err, ErrWrongTokenKind)

	_, err = verifier.Verify(pair.Access, TokenKindRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenKind)
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	issuer, err := NewIssuer(testSecret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	issuer.WithClock(func() time.Time { return start })

	verifier, err := NewVerifier(testSecret)
	require.NoError(t, err)

	pair, err := issuer.Issue(testPrincipal())
	require.NoError(t, err)

	// Just inside the access window.
	verifier.WithClock(func() time.Time { return start.Add(59 * time.Minute) })
	_, err = verifier.Verify(pair.Access, TokenKindAccess)
	assert.NoError(t, err)

	// Just past it.
	verifier.WithClock(func() time.Time { return start.Add(61 * time.Minute) })
	_, err = verifier.Verify(pair.Access, TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// The refresh token outlives the access token.
	_, err = verifier.Verify(pair.Refresh, TokenKindRefresh)
	assert.NoError(t, err)

	verifier.WithClock(func() time.Time { return start.Add(8 * 24 * time.Hour) })
	_, err = verifier.Verify(pair.Refresh, TokenKindRefresh)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_RejectsMalformedToken(t *testing.T) {
	verifier, err := NewVerifier(testSecret)
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := verifier.Verify(raw, TokenKindAccess)
		assert.ErrorIs(t, err, ErrMalformedToken, "raw=%q", raw)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	pair, err := issuer.Issue(testPrincipal())
	require.NoError(t, err)

	other, err := NewVerifier("a-different-secret")
	require.NoError(t, err)

	_, err = other.Verify(pair.Access, TokenKindAccess)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	verifier, err := NewVerifier(testSecret)
	require.NoError(t, err)

	pair, err := issuer.Issue(testPrincipal())
	require.NoError(t, err)

	// Swap the payload for one from a token with a different subject; the
	// original signature no longer covers it.
	pair2, err := issuer.Issue(Principal{ID: "someone-else", Role: RoleTalent, Active: true})
	require.NoError(t, err)

	parts := strings.Split(pair.Access, ".")
	otherParts := strings.Split(pair2.Access, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = verifier.Verify(tampered, TokenKindAccess)
	assert.Error(t, err)
}

func TestVerify_NoneAlgorithmRejected(t *testing.T) {
	verifier, err := NewVerifier(testSecret)
	require.NoError(t, err)

	// header {"alg":"none","typ":"JWT"} with an arbitrary payload.
	raw := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiJ4IiwidG9rZW5fa2luZCI6ImFjY2VzcyJ9."
	_, err = verifier.Verify(raw, TokenKindAccess)
	assert.Error(t, err)
}
