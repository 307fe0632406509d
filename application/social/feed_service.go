package social

import (
	"context"

	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/social"
	pkgerrors "snapboard-backend/pkg/errors"
)

// FeedPageSize caps the feed at a fixed number of posts. There is no
// pagination beyond the cap; every call recomputes a fresh snapshot.
const FeedPageSize = 50

// FeedService assembles the recency-ordered set of posts visible to an
// account: its own posts plus those of every account it follows.
type FeedService struct {
	accounts ports.AccountRepository
	posts    ports.PostRepository
	logger   *zap.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(
	accounts ports.AccountRepository,
	posts ports.PostRepository,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		accounts: accounts,
		posts:    posts,
		logger:   logger,
	}
}

// FeedFor computes the feed for an account, newest first
func (s *FeedService) FeedFor(ctx context.Context, accountID string) ([]*social.Post, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load account")
	}

	// Own posts are always visible, regardless of follow state
	owners := append(account.FollowingIDs(), account.ID())

	posts, err := s.posts.GetByOwners(ctx, owners, FeedPageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to query feed posts")
	}

	s.logger.Debug("feed assembled",
		zap.String("accountID", accountID),
		zap.Int("owners", len(owners)),
		zap.Int("posts", len(posts)),
	)

	return posts, nil
}
