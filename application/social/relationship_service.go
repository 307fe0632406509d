package social

import (
	"context"

	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/social"
	pkgerrors "snapboard-backend/pkg/errors"
)

// RelationshipService is the relationship ledger: it maintains the
// symmetric follow/follower edges between accounts. Both halves of an
// edge are committed in one transaction so the mirrored lists can never
// diverge into a half-edge.
type RelationshipService struct {
	accounts   ports.AccountRepository
	uowFactory ports.UnitOfWorkFactory
	logger     *zap.Logger
}

// NewRelationshipService creates a new relationship service
func NewRelationshipService(
	accounts ports.AccountRepository,
	uowFactory ports.UnitOfWorkFactory,
	logger *zap.Logger,
) *RelationshipService {
	return &RelationshipService{
		accounts:   accounts,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Follow creates the symmetric edge follower->followee. Following an
// account that is already followed is a no-op. Self-follow is rejected:
// the feed always contains the account's own posts, so a self-edge would
// only double-count them.
func (s *RelationshipService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == "" || followeeID == "" {
		return pkgerrors.NewValidationError("follower and followee are required")
	}
	if followerID == followeeID {
		return pkgerrors.NewValidationError("an account cannot follow itself")
	}

	follower, err := s.accounts.GetByID(ctx, followerID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load follower")
	}
	followee, err := s.accounts.GetByID(ctx, followeeID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load followee")
	}

	if follower.IsFollowing(followeeID) {
		return nil
	}

	edge := social.FollowEdge{FollowerID: followerID, FolloweeID: followeeID}
	if err := follower.AddFollowing(edge); err != nil {
		return err
	}
	if err := followee.AddFollower(edge); err != nil {
		return err
	}

	uow := s.uowFactory.New()
	if err := uow.Begin(ctx); err != nil {
		return pkgerrors.Wrap(err, "failed to begin transaction")
	}

	if err := s.accounts.SaveWithUoW(ctx, follower, uow); err != nil {
		uow.Rollback()
		return pkgerrors.Wrap(err, "failed to register follower update")
	}
	if err := s.accounts.SaveWithUoW(ctx, followee, uow); err != nil {
		uow.Rollback()
		return pkgerrors.Wrap(err, "failed to register followee update")
	}

	if err := uow.Commit(ctx); err != nil {
		if pkgerrors.IsConflict(err) {
			return pkgerrors.NewConflictError("account was modified concurrently, retry the request")
		}
		return pkgerrors.Wrap(err, "failed to commit follow")
	}

	s.logger.Info("follow edge created",
		zap.String("followerID", followerID),
		zap.String("followeeID", followeeID),
	)

	return nil
}

// Unfollow removes the symmetric edge follower->followee. Unfollowing an
// account that is not followed is a no-op.
func (s *RelationshipService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if followerID == "" || followeeID == "" {
		return pkgerrors.NewValidationError("follower and followee are required")
	}
	if followerID == followeeID {
		return pkgerrors.NewValidationError("an account cannot follow itself")
	}

	follower, err := s.accounts.GetByID(ctx, followerID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load follower")
	}
	followee, err := s.accounts.GetByID(ctx, followeeID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load followee")
	}

	edge := social.FollowEdge{FollowerID: followerID, FolloweeID: followeeID}
	removedOut := follower.RemoveFollowing(edge)
	removedIn := followee.RemoveFollower(edge)
	if !removedOut && !removedIn {
		return nil
	}

	// A one-sided hit means a previous write escaped its transaction;
	// removing both halves here restores the mirror invariant.
	if removedOut != removedIn {
		s.logger.Warn("repairing asymmetric follow edge",
			zap.String("followerID", followerID),
			zap.String("followeeID", followeeID),
		)
	}

	uow := s.uowFactory.New()
	if err := uow.Begin(ctx); err != nil {
		return pkgerrors.Wrap(err, "failed to begin transaction")
	}

	if err := s.accounts.SaveWithUoW(ctx, follower, uow); err != nil {
		uow.Rollback()
		return pkgerrors.Wrap(err, "failed to register follower update")
	}
	if err := s.accounts.SaveWithUoW(ctx, followee, uow); err != nil {
		uow.Rollback()
		return pkgerrors.Wrap(err, "failed to register followee update")
	}

	if err := uow.Commit(ctx); err != nil {
		if pkgerrors.IsConflict(err) {
			return pkgerrors.NewConflictError("account was modified concurrently, retry the request")
		}
		return pkgerrors.Wrap(err, "failed to commit unfollow")
	}

	s.logger.Info("follow edge removed",
		zap.String("followerID", followerID),
		zap.String("followeeID", followeeID),
	)

	return nil
}

// IsFollowing reports whether follower currently follows followee. Pure
// lookup, no mutation.
func (s *RelationshipService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	follower, err := s.accounts.GetByID(ctx, followerID)
	if err != nil {
		return false, pkgerrors.Wrap(err, "failed to load follower")
	}
	return follower.IsFollowing(followeeID), nil
}
