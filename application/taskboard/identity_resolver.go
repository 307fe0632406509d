package taskboard

import (
	"context"

	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/taskboard"
	pkgerrors "snapboard-backend/pkg/errors"
)

// IdentityResolver maps an externally authenticated principal email to a
// local user, creating one on first sight
type IdentityResolver struct {
	users  ports.UserRepository
	logger *zap.Logger
}

// NewIdentityResolver creates a new identity resolver
func NewIdentityResolver(users ports.UserRepository, logger *zap.Logger) *IdentityResolver {
	return &IdentityResolver{
		users:  users,
		logger: logger,
	}
}

// Resolve returns the user for a principal email
func (r *IdentityResolver) Resolve(ctx context.Context, email string) (*taskboard.User, error) {
	if email == "" {
		return nil, pkgerrors.NewValidationError("principal email cannot be empty")
	}

	user, err := r.users.GetOrCreateByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to resolve identity")
	}

	return user, nil
}
