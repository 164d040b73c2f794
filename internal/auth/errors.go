package auth

import "errors"

// Errors returned by token verification. The HTTP layer maps these to the
// status taxonomy: ErrMalformedToken is a 400-class failure, the rest are 401.
var (
	// ErrMalformedToken is returned when the raw token is not structurally decodable.
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidSignature is returned when the token signature does not verify.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrWrongTokenKind is returned when an access token is presented where a
	// refresh token is required, or vice versa.
	ErrWrongTokenKind = errors.New("wrong token kind")

	// ErrNoSigningSecret is returned when the issuer or verifier is constructed
	// without a signing secret. This is a process-start failure, never per-request.
	ErrNoSigningSecret = errors.New("signing secret is not configured")
)
