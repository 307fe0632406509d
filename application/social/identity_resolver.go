package social

import (
	"context"

	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/social"
	pkgerrors "snapboard-backend/pkg/errors"
)

// IdentityResolver maps an externally authenticated principal email to a
// local account, creating one on first sight. Anonymous requests never
// reach this point; the auth middleware rejects them first.
type IdentityResolver struct {
	accounts ports.AccountRepository
	logger   *zap.Logger
}

// NewIdentityResolver creates a new identity resolver
func NewIdentityResolver(accounts ports.AccountRepository, logger *zap.Logger) *IdentityResolver {
	return &IdentityResolver{
		accounts: accounts,
		logger:   logger,
	}
}

// Resolve returns the account for a principal email
func (r *IdentityResolver) Resolve(ctx context.Context, email string) (*social.Account, error) {
	if email == "" {
		return nil, pkgerrors.NewValidationError("principal email cannot be empty")
	}

	account, err := r.accounts.GetOrCreateByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to resolve identity")
	}

	return account, nil
}
