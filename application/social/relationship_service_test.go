package social

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"snapboard-backend/domain/social"
	pkgerrors "snapboard-backend/pkg/errors"
)

func reconstructedAccount(id string, following, followers []social.FollowEdge) *social.Account {
	return social.ReconstructAccount(id, id+"@example.com", following, followers, 0, time.Now())
}

func TestFollow(t *testing.T) {
	ctx := context.Background()

	t.Run("creates both halves in one transaction", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		uow := &fakeUnitOfWork{}
		svc := NewRelationshipService(accounts, &fakeUoWFactory{uow: uow}, zap.NewNop())

		follower := reconstructedAccount("alice", nil, nil)
		followee := reconstructedAccount("bob", nil, nil)

		accounts.On("GetByID", ctx, "alice").Return(follower, nil)
		accounts.On("GetByID", ctx, "bob").Return(followee, nil)
		accounts.On("SaveWithUoW", ctx, follower, uow).Return(nil)
		accounts.On("SaveWithUoW", ctx, followee, uow).Return(nil)

		require.NoError(t, svc.Follow(ctx, "alice", "bob"))

		assert.True(t, uow.began)
		assert.True(t, uow.committed)
		assert.True(t, follower.IsFollowing("bob"))
		assert.Equal(t, []string{"alice"}, followee.FollowerIDs())
		accounts.AssertNumberOfCalls(t, "SaveWithUoW", 2)
	})

	t.Run("already following is a no-op", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		uow := &fakeUnitOfWork{}
		svc := NewRelationshipService(accounts, &fakeUoWFactory{uow: uow}, zap.NewNop())

		edge := social.FollowEdge{FollowerID: "alice", FolloweeID: "bob"}
		follower := reconstructedAccount("alice", []social.FollowEdge{edge}, nil)
		followee := reconstructedAccount("bob", nil, []social.FollowEdge{edge})

		accounts.On("GetByID", ctx, "alice").Return(follower, nil)
		accounts.On("GetByID", ctx, "bob").Return(followee, nil)

		require.NoError(t, svc.Follow(ctx, "alice", "bob"))

		assert.False(t, uow.began)
		accounts.AssertNotCalled(t, "SaveWithUoW", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("self-follow is rejected", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		svc := NewRelationshipService(accounts, &fakeUoWFactory{uow: &fakeUnitOfWork{}}, zap.NewNop())

		err := svc.Follow(ctx, "alice", "alice")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
		accounts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("concurrent edge update surfaces a conflict", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		uow := &fakeUnitOfWork{commitErr: pkgerrors.NewConflictError("transaction conflict")}
		svc := NewRelationshipService(accounts, &fakeUoWFactory{uow: uow}, zap.NewNop())

		follower := reconstructedAccount("alice", nil, nil)
		followee := reconstructedAccount("bob", nil, nil)

		accounts.On("GetByID", ctx, "alice").Return(follower, nil)
		accounts.On("GetByID", ctx, "bob").Return(followee, nil)
		accounts.On("SaveWithUoW", ctx, follower, uow).Return(nil)
		accounts.On("SaveWithUoW", ctx, followee, uow).Return(nil)

		err := svc.Follow(ctx, "alice", "bob")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsConflict(err))
		assert.Contains(t, err.Error(), "modified concurrently")
	})

	t.Run("missing followee surfaces not found", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		svc := NewRelationshipService(accounts, &fakeUoWFactory{uow: &fakeUnitOfWork{}}, zap.NewNop())

		follower := reconstructedAccount("alice", nil, nil)
		accounts.On("GetByID", ctx, "alice").Return(follower, nil)
		accounts.On("GetByID", ctx, "ghost").Return(nil, pkgerrors.NewNotFoundError("account"))

		err := svc.Follow(ctx, "alice", "ghost")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestUnfollow(t *testing.T) {
	ctx := context.Background()

	t.Run("removes both halves in one transaction", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		uow := &fakeUnitOfWork{}
		svc := NewRelationshipService(accounts, &fakeUoWFactory{uow: uow}, zap.NewNop())

		edge := social.FollowEdge{FollowerID: "alice", FolloweeID: "bob"}
		follower := reconstructedAccount("alice", []social.FollowEdge{edge}, nil)
		followee := reconstructedAccount("bob", nil, []social.FollowEdge{edge})

		accounts.On("GetByID", ctx, "alice").Return(follower, nil)
		accounts.On("GetByID", ctx, "bob").Return(followee, nil)
		accounts.On("SaveWithUoW", ctx, follower, uow).Return(nil)
		accounts.On("SaveWithUoW", ctx, followee, uow).Return(nil)

		require.NoError(t, svc.Unfollow(ctx, "alice", "bob"))

		assert.True(t, uow.committed)
		assert.False(t, follower.IsFollowing("bob"))
		assert.Empty(t, followee.FollowerIDs())
	})

	t.Run("not following is a no-op", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		uow := &fakeUnitOfWork{}
		svc := NewRelationshipService(accounts, &fakeUoWFactory{uow: uow}, zap.NewNop())

		follower := reconstructedAccount("alice", nil, nil)
		followee := reconstructedAccount("bob", nil, nil)

		accounts.On("GetByID", ctx, "alice").Return(follower, nil)
		accounts.On("GetByID", ctx, "bob").Return(followee, nil)

		require.NoError(t, svc.Unfollow(ctx, "alice", "bob"))

		assert.False(t, uow.began)
		accounts.AssertNotCalled(t, "SaveWithUoW", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent edge update surfaces a conflict", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		uow := &fakeUnitOfWork{commitErr: pkgerrors.NewConflictError("transaction conflict")}
		svc := NewRelationshipService(accounts, &fakeUoWFactory{uow: uow}, zap.NewNop())

		edge := social.FollowEdge{FollowerID: "alice", FolloweeID: "bob"}
		follower := reconstructedAccount("alice", []social.FollowEdge{edge}, nil)
		followee := reconstructedAccount("bob", nil, []social.FollowEdge{edge})

		accounts.On("GetByID", ctx, "alice").Return(follower, nil)
		accounts.On("GetByID", ctx, "bob").Return(followee, nil)
		accounts.On("SaveWithUoW", ctx, follower, uow).Return(nil)
		accounts.On("SaveWithUoW", ctx, followee, uow).Return(nil)

		err := svc.Unfollow(ctx, "alice", "bob")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsConflict(err))
		assert.Contains(t, err.Error(), "modified concurrently")
	})

	t.Run("repairs a one-sided edge", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		uow := &fakeUnitOfWork{}
		svc := NewRelationshipService(accounts, &fakeUoWFactory{uow: uow}, zap.NewNop())

		edge := social.FollowEdge{FollowerID: "alice", FolloweeID: "bob"}
		// Only the outgoing half exists
		follower := reconstructedAccount("alice", []social.FollowEdge{edge}, nil)
		followee := reconstructedAccount("bob", nil, nil)

		accounts.On("GetByID", ctx, "alice").Return(follower, nil)
		accounts.On("GetByID", ctx, "bob").Return(followee, nil)
		accounts.On("SaveWithUoW", ctx, follower, uow).Return(nil)
		accounts.On("SaveWithUoW", ctx, followee, uow).Return(nil)

		require.NoError(t, svc.Unfollow(ctx, "alice", "bob"))

		assert.True(t, uow.committed)
		assert.False(t, follower.IsFollowing("bob"))
	})
}

func TestIsFollowing(t *testing.T) {
	ctx := context.Background()
	accounts := new(mockAccountRepository)
	svc := NewRelationshipService(accounts, &fakeUoWFactory{uow: &fakeUnitOfWork{}}, zap.NewNop())

	edge := social.FollowEdge{FollowerID: "alice", FolloweeID: "bob"}
	follower := reconstructedAccount("alice", []social.FollowEdge{edge}, nil)
	accounts.On("GetByID", ctx, "alice").Return(follower, nil)

	following, err := svc.IsFollowing(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, following)

	following, err = svc.IsFollowing(ctx, "alice", "carol")
	require.NoError(t, err)
	assert.False(t, following)
}
