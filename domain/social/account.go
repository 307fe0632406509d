package social

import (
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "snapboard-backend/pkg/errors"
)

// FollowEdge is the ordered pair behind a follow relationship. The same
// value appears in the follower's following list and the followee's
// followers list; the two lists are mirrored views of one logical edge.
type FollowEdge struct {
	FollowerID string
	FolloweeID string
}

// Account is a local identity created lazily on first authenticated
// request. Accounts are never deleted; they mutate only through their
// edge lists.
type Account struct {
	id        string
	email     string
	following []FollowEdge
	followers []FollowEdge
	version   int
	createdAt time.Time
}

// NewAccount creates an account for a newly seen principal email
func NewAccount(email string) (*Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}

	return &Account{
		id:        uuid.New().String(),
		email:     email,
		following: []FollowEdge{},
		followers: []FollowEdge{},
		createdAt: time.Now(),
	}, nil
}

// ReconstructAccount restores an account from repository data with
// preserved timestamps, edge lists, and record version
func ReconstructAccount(id, email string, following, followers []FollowEdge, version int, createdAt time.Time) *Account {
	if following == nil {
		following = []FollowEdge{}
	}
	if followers == nil {
		followers = []FollowEdge{}
	}
	return &Account{
		id:        id,
		email:     email,
		following: following,
		followers: followers,
		version:   version,
		createdAt: createdAt,
	}
}

func (a *Account) ID() string           { return a.id }
func (a *Account) Email() string        { return a.email }
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// Version is the record version the account was loaded at. The
// repository conditions transactional saves on it, so two transactions
// that both read the same edge lists cannot silently overwrite each
// other's writes.
func (a *Account) Version() int { return a.version }

// Following returns a copy of the outgoing edge list
func (a *Account) Following() []FollowEdge {
	out := make([]FollowEdge, len(a.following))
	copy(out, a.following)
	return out
}

// Followers returns a copy of the incoming edge list
func (a *Account) Followers() []FollowEdge {
	out := make([]FollowEdge, len(a.followers))
	copy(out, a.followers)
	return out
}

// FollowingIDs returns the IDs of accounts this account follows
func (a *Account) FollowingIDs() []string {
	ids := make([]string, 0, len(a.following))
	for _, e := range a.following {
		ids = append(ids, e.FolloweeID)
	}
	return ids
}

// FollowerIDs returns the IDs of accounts following this account
func (a *Account) FollowerIDs() []string {
	ids := make([]string, 0, len(a.followers))
	for _, e := range a.followers {
		ids = append(ids, e.FollowerID)
	}
	return ids
}

// IsFollowing reports whether an outgoing edge to followeeID exists
func (a *Account) IsFollowing(followeeID string) bool {
	for _, e := range a.following {
		if e.FolloweeID == followeeID {
			return true
		}
	}
	return false
}

// AddFollowing records the outgoing half of an edge. At most one edge per
// ordered pair; adding an existing edge is a conflict the caller screens
// for, so it is reported rather than silently absorbed.
func (a *Account) AddFollowing(e FollowEdge) error {
	if e.FollowerID != a.id {
		return pkgerrors.NewValidationError("edge follower does not match account")
	}
	for _, existing := range a.following {
		if existing == e {
			return pkgerrors.NewConflictError("already following this account")
		}
	}
	a.following = append(a.following, e)
	return nil
}

// AddFollower records the incoming half of an edge
func (a *Account) AddFollower(e FollowEdge) error {
	if e.FolloweeID != a.id {
		return pkgerrors.NewValidationError("edge followee does not match account")
	}
	for _, existing := range a.followers {
		if existing == e {
			return pkgerrors.NewConflictError("follower edge already present")
		}
	}
	a.followers = append(a.followers, e)
	return nil
}

// RemoveFollowing removes the outgoing half of an edge, reporting whether
// it was present
func (a *Account) RemoveFollowing(e FollowEdge) bool {
	for i, existing := range a.following {
		if existing == e {
			a.following = append(a.following[:i], a.following[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveFollower removes the incoming half of an edge, reporting whether
// it was present
func (a *Account) RemoveFollower(e FollowEdge) bool {
	for i, existing := range a.followers {
		if existing == e {
			a.followers = append(a.followers[:i], a.followers[i+1:]...)
			return true
		}
	}
	return false
}
