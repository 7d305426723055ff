package middleware

import (
	"context"

	"github.com/baharkarakas/store-ratings/internal/auth"
)

type userKey struct{}

func WithUser(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// FromCtx returns the identity attached by Require.
func FromCtx(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(userKey{}).(auth.Identity)
	return id, ok
}
