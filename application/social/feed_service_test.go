package social

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"snapboard-backend/domain/social"
	pkgerrors "snapboard-backend/pkg/errors"
)

func reconstructedPost(id, ownerID string, createdAt time.Time) *social.Post {
	return social.ReconstructPost(id, ownerID, "photo.png", "caption", nil, createdAt)
}

func TestFeedFor(t *testing.T) {
	ctx := context.Background()

	t.Run("includes own and followed posts", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		posts := new(mockPostRepository)
		svc := NewFeedService(accounts, posts, zap.NewNop())

		edges := []social.FollowEdge{
			{FollowerID: "alice", FolloweeID: "bob"},
			{FollowerID: "alice", FolloweeID: "carol"},
		}
		account := reconstructedAccount("alice", edges, nil)
		accounts.On("GetByID", ctx, "alice").Return(account, nil)

		now := time.Now()
		feedPosts := []*social.Post{
			reconstructedPost("p3", "carol", now),
			reconstructedPost("p2", "alice", now.Add(-time.Minute)),
			reconstructedPost("p1", "bob", now.Add(-time.Hour)),
		}
		posts.On("GetByOwners", ctx, []string{"bob", "carol", "alice"}, FeedPageSize).Return(feedPosts, nil)

		got, err := svc.FeedFor(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "p3", got[0].ID())
		assert.Equal(t, "p1", got[2].ID())
	})

	t.Run("no follows still shows own posts", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		posts := new(mockPostRepository)
		svc := NewFeedService(accounts, posts, zap.NewNop())

		account := reconstructedAccount("alice", nil, nil)
		accounts.On("GetByID", ctx, "alice").Return(account, nil)
		posts.On("GetByOwners", ctx, []string{"alice"}, FeedPageSize).
			Return([]*social.Post{reconstructedPost("p1", "alice", time.Now())}, nil)

		got, err := svc.FeedFor(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("missing account surfaces not found", func(t *testing.T) {
		accounts := new(mockAccountRepository)
		posts := new(mockPostRepository)
		svc := NewFeedService(accounts, posts, zap.NewNop())

		accounts.On("GetByID", ctx, "ghost").Return(nil, pkgerrors.NewNotFoundError("account"))

		_, err := svc.FeedFor(ctx, "ghost")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}
