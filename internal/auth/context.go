package auth

import "context"

type principalContextKey struct{}

// SetPrincipalContext stores the authenticated principal on the context
// for downstream consumers.
func SetPrincipalContext(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext retrieves the authenticated principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(Principal)
	return principal, ok
}
