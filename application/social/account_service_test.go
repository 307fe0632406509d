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

func TestProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("marks a followed profile as followed", func(t *testing.T) {
		profile := reconstructedAccount("bob", nil, []social.FollowEdge{{FollowerID: "alice", FolloweeID: "bob"}})
		viewer := reconstructedAccount("alice", []social.FollowEdge{{FollowerID: "alice", FolloweeID: "bob"}}, nil)

		accounts := new(mockAccountRepository)
		accounts.On("GetByID", mock.Anything, "bob").Return(profile, nil)
		accounts.On("GetByID", mock.Anything, "alice").Return(viewer, nil)

		posts := new(mockPostRepository)
		posts.On("GetByOwner", mock.Anything, "bob").Return([]*social.Post{
			reconstructedPost("post-1", "bob", time.Now()),
		}, nil)

		svc := NewAccountService(accounts, posts, zap.NewNop())

		view, err := svc.Profile(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", view.Account.ID())
		assert.True(t, view.Followed)
		assert.False(t, view.MyProfile)
		require.Len(t, view.Posts, 1)
	})

	t.Run("marks the viewer's own profile", func(t *testing.T) {
		alice := reconstructedAccount("alice", nil, nil)

		accounts := new(mockAccountRepository)
		accounts.On("GetByID", mock.Anything, "alice").Return(alice, nil)

		posts := new(mockPostRepository)
		posts.On("GetByOwner", mock.Anything, "alice").Return([]*social.Post{}, nil)

		svc := NewAccountService(accounts, posts, zap.NewNop())

		view, err := svc.Profile(ctx, "alice", "alice")
		require.NoError(t, err)
		assert.True(t, view.MyProfile)
		assert.False(t, view.Followed)
	})

	t.Run("propagates a missing profile", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		accounts.On("GetByID", mock.Anything, "ghost").Return(nil, pkgerrors.NewNotFoundError("account"))

		svc := NewAccountService(accounts, new(mockPostRepository), zap.NewNop())

		_, err := svc.Profile(ctx, "alice", "ghost")
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestFollowersAndFollowing(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves follower edges to id and email pairs", func(t *testing.T) {
		profile := reconstructedAccount("bob", nil, []social.FollowEdge{
			{FollowerID: "alice", FolloweeID: "bob"},
			{FollowerID: "carol", FolloweeID: "bob"},
		})

		accounts := new(mockAccountRepository)
		accounts.On("GetByID", mock.Anything, "bob").Return(profile, nil)
		accounts.On("GetByID", mock.Anything, "alice").Return(reconstructedAccount("alice", nil, nil), nil)
		accounts.On("GetByID", mock.Anything, "carol").Return(reconstructedAccount("carol", nil, nil), nil)

		svc := NewAccountService(accounts, new(mockPostRepository), zap.NewNop())

		refs, err := svc.Followers(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, refs, 2)
		assert.Equal(t, AccountRef{ID: "alice", Email: "alice@example.com"}, refs[0])
		assert.Equal(t, AccountRef{ID: "carol", Email: "carol@example.com"}, refs[1])
	})

	t.Run("skips an edge whose target cannot be resolved", func(t *testing.T) {
		profile := reconstructedAccount("alice", []social.FollowEdge{
			{FollowerID: "alice", FolloweeID: "bob"},
			{FollowerID: "alice", FolloweeID: "gone"},
		}, nil)

		accounts := new(mockAccountRepository)
		accounts.On("GetByID", mock.Anything, "alice").Return(profile, nil)
		accounts.On("GetByID", mock.Anything, "bob").Return(reconstructedAccount("bob", nil, nil), nil)
		accounts.On("GetByID", mock.Anything, "gone").Return(nil, pkgerrors.NewNotFoundError("account"))

		svc := NewAccountService(accounts, new(mockPostRepository), zap.NewNop())

		refs, err := svc.Following(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "bob", refs[0].ID)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns matches for a non-empty query", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		accounts.On("SearchByEmail", mock.Anything, "bob").Return([]*social.Account{
			reconstructedAccount("bob", nil, nil),
		}, nil)

		svc := NewAccountService(accounts, new(mockPostRepository), zap.NewNop())

		refs, err := svc.Search(ctx, "  bob  ")
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "bob@example.com", refs[0].Email)
	})

	t.Run("an empty query yields no results and no lookup", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		svc := NewAccountService(accounts, new(mockPostRepository), zap.NewNop())

		refs, err := svc.Search(ctx, "   ")
		require.NoError(t, err)
		assert.Empty(t, refs)
		accounts.AssertNotCalled(t, "SearchByEmail", mock.Anything, mock.Anything)
	})
}
