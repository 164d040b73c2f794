package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
)

const testSecret = "middleware-test-secret"

func newTestHandler(t *testing.T) (http.Handler, *auth.Issuer, *auth.Principal) {
	t.Helper()

	issuer, err := auth.NewIssuer(testSecret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	verifier, err := auth.NewVerifier(testSecret)
	require.NoError(t, err)

	var seen auth.Principal
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.PrincipalFromContext(r.Context())
		require.True(t, ok)
		seen = p
		w.WriteHeader(http.StatusOK)
	})

	return RequireAuth(verifier)(inner), issuer, &seen
}

func TestRequireAuth_ValidToken(t *testing.T) {
	handler, issuer, seen := newTestHandler(t)

	principal := auth.Principal{ID: "u1", Role: auth.RoleTalent, Active: true}
	pair, err := issuer.Issue(principal)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, principal, *seen)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header=%q", header)
	}
}

func TestRequireAuth_MalformedTokenIs400(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "malformed")
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	handler, issuer, _ := newTestHandler(t)

	pair, err := issuer.Issue(auth.Principal{ID: "u1", Role: auth.RoleTalent, Active: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Refresh)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_CustomErrorResponder(t *testing.T) {
	verifier, err := auth.NewVerifier(testSecret)
	require.NoError(t, err)

	handler := RequireAuth(verifier, WithErrorResponder(func(w http.ResponseWriter, _ *http.Request, _ error) {
		w.WriteHeader(http.StatusTeapot)
	}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
