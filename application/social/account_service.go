package social

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/social"
	pkgerrors "snapboard-backend/pkg/errors"
)

// AccountRef is the {id, identity} pair handed to follower/following
// listings and search results
type AccountRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ProfileView bundles what a profile page needs: the account, its posts
// newest first, and the viewer-relative flags
type ProfileView struct {
	Account   *social.Account
	Posts     []*social.Post
	MyProfile bool
	Followed  bool
}

// AccountService serves profile views, follower/following listings, and
// account search
type AccountService struct {
	accounts ports.AccountRepository
	posts    ports.PostRepository
	logger   *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	accounts ports.AccountRepository,
	posts ports.PostRepository,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		posts:    posts,
		logger:   logger,
	}
}

// Profile assembles the profile view of profileID as seen by viewerID
func (s *AccountService) Profile(ctx context.Context, viewerID, profileID string) (*ProfileView, error) {
	profile, err := s.accounts.GetByID(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load profile account")
	}

	viewer, err := s.accounts.GetByID(ctx, viewerID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load viewer account")
	}

	posts, err := s.posts.GetByOwner(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load profile posts")
	}

	return &ProfileView{
		Account:   profile,
		Posts:     posts,
		MyProfile: viewerID == profileID,
		Followed:  viewer.IsFollowing(profileID),
	}, nil
}

// Followers lists the accounts following profileID as {id, email} pairs
func (s *AccountService) Followers(ctx context.Context, profileID string) ([]AccountRef, error) {
	profile, err := s.accounts.GetByID(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load profile account")
	}
	return s.resolveRefs(ctx, profile.FollowerIDs())
}

// Following lists the accounts profileID follows as {id, email} pairs
func (s *AccountService) Following(ctx context.Context, profileID string) ([]AccountRef, error) {
	profile, err := s.accounts.GetByID(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load profile account")
	}
	return s.resolveRefs(ctx, profile.FollowingIDs())
}

// Search finds accounts whose email sorts at or after the query string.
// An empty query yields an empty result, not the full account list.
func (s *AccountService) Search(ctx context.Context, query string) ([]AccountRef, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []AccountRef{}, nil
	}

	accounts, err := s.accounts.SearchByEmail(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to search accounts")
	}

	refs := make([]AccountRef, 0, len(accounts))
	for _, a := range accounts {
		refs = append(refs, AccountRef{ID: a.ID(), Email: a.Email()})
	}
	return refs, nil
}

func (s *AccountService) resolveRefs(ctx context.Context, ids []string) ([]AccountRef, error) {
	refs := make([]AccountRef, 0, len(ids))
	for _, id := range ids {
		account, err := s.accounts.GetByID(ctx, id)
		if err != nil {
			// A dangling edge points at a record that should exist; skip it
			// rather than failing the whole listing.
			s.logger.Warn("skipping unresolvable edge target", zap.String("accountID", id))
			continue
		}
		refs = append(refs, AccountRef{ID: account.ID(), Email: account.Email()})
	}
	return refs, nil
}
