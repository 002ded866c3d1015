package auth

import "context"

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	UserID int
	Role   string
}

type identityKey struct{}

// WithIdentity adds the caller identity to ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the caller identity from ctx.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
