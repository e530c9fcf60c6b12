package auth

import (
	"context"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

type ctxKey string

const userKey ctxKey = "authUser"

// WithUser returns a new context carrying the authenticated user
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext extracts the authenticated user, if any
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}
