package social

import (
	"context"

	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/social"
	pkgerrors "snapboard-backend/pkg/errors"
)

// PostService handles post creation and commenting
type PostService struct {
	posts  ports.PostRepository
	logger *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(posts ports.PostRepository, logger *zap.Logger) *PostService {
	return &PostService{
		posts:  posts,
		logger: logger,
	}
}

// CreatePost stores a new post for the owning account. The image
// reference must carry an allow-listed extension (png, jpg, jpeg); the
// blob itself lives outside this system.
func (s *PostService) CreatePost(ctx context.Context, ownerID, imageRef, caption string) (*social.Post, error) {
	post, err := social.NewPost(ownerID, imageRef, caption)
	if err != nil {
		return nil, err
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to save post")
	}

	s.logger.Info("post created",
		zap.String("postID", post.ID()),
		zap.String("ownerID", ownerID),
	)

	return post, nil
}

// GetPost retrieves a single post
func (s *PostService) GetPost(ctx context.Context, postID string) (*social.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load post")
	}
	return post, nil
}

// AddComment appends a comment to a post, newest first. Text is truncated
// per the bounded-length rule before it is stored.
func (s *PostService) AddComment(ctx context.Context, authorID, postID, text string) (social.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return social.Comment{}, pkgerrors.Wrap(err, "failed to load post")
	}

	comment, err := post.AddComment(authorID, text)
	if err != nil {
		return social.Comment{}, err
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return social.Comment{}, pkgerrors.Wrap(err, "failed to save comment")
	}

	s.logger.Debug("comment added",
		zap.String("postID", postID),
		zap.String("authorID", authorID),
	)

	return comment, nil
}
