package auth

import (
	"context"

	pkgerrors "snapboard-backend/pkg/errors"
)

// contextKey is a private type to avoid context key collisions
type contextKey string

const userContextKey contextKey = "auth.user"

// UserContext is the authenticated principal attached to a request.
// Identity is explicit: a handler either gets a UserContext or an error,
// never a nil that falls through to anonymous behavior.
type UserContext struct {
	UserID string
	Email  string
	Roles  []string
}

// SetUserInContext attaches the authenticated user to the context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, pkgerrors.NewUnauthorizedError("no authenticated user in context")
	}
	return user, nil
}
