// Package middleware provides the HTTP authentication middleware that turns
// bearer tokens into request-scoped principals.
package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
)

const bearerPrefix = "Bearer "

// ErrorResponder writes authentication failures to the response writer.
type ErrorResponder func(http.ResponseWriter, *http.Request, error)

type authnOptions struct {
	errorResponder ErrorResponder
}

// Option customises the behaviour of the authentication middleware.
type Option func(*authnOptions)

// WithErrorResponder overrides the default error responder.
func WithErrorResponder(responder ErrorResponder) Option {
	return func(o *authnOptions) {
		if responder != nil {
			o.errorResponder = responder
		}
	}
}

// RequireAuth constructs a chi-compatible middleware that extracts the
// "Authorization: Bearer <token>" header, verifies it as an access token and
// stores the resulting Principal on the request context. Requests without a
// valid access token never reach the wrapped handler.
func RequireAuth(verifier *auth.Verifier, opts ...Option) func(http.Handler) http.Handler {
	o := authnOptions{errorResponder: defaultErrorResponder}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := extractBearerToken(r)
			if err != nil {
				o.errorResponder(w, r, err)
				return
			}

			principal, err := verifier.Verify(raw, auth.TokenKindAccess)
			if err != nil {
				o.errorResponder(w, r, err)
				return
			}

			ctx := auth.SetPrincipalContext(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var errNoBearerToken = errors.New("missing bearer token")

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", errNoBearerToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", errNoBearerToken
	}
	return token, nil
}

// defaultErrorResponder maps verification failures to the platform's error
// envelope. Malformed tokens are a 400-class failure; everything else
// (missing, expired, bad signature, wrong kind) is unauthenticated.
func defaultErrorResponder(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusUnauthorized
	kind := "unauthenticated"
	message := "authentication credentials were not provided or are invalid"

	switch {
	case errors.Is(err, auth.ErrMalformedToken):
		status = http.StatusBadRequest
		kind = "malformed"
		message = "token is malformed"
	case errors.Is(err, auth.ErrTokenExpired):
		message = "token has expired"
	case errors.Is(err, auth.ErrWrongTokenKind):
		message = "an access token is required"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"kind":    kind,
			"message": message,
		},
	})
}
