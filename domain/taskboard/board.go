package taskboard

import (
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "snapboard-backend/pkg/errors"
)

// Board is owned by its immutable creator. TaskCount and MemberCount
// mirror how many task and membership records reference the board; the
// repository maintains them transactionally alongside those records so a
// delete can be conditioned on both being zero.
type Board struct {
	id          string
	title       string
	creatorID   string
	taskCount   int
	memberCount int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewBoard creates a board owned by creatorID
func NewBoard(title, creatorID string) (*Board, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, pkgerrors.NewValidationError("board title cannot be empty")
	}
	if creatorID == "" {
		return nil, pkgerrors.NewValidationError("creatorID cannot be empty")
	}

	now := time.Now()
	return &Board{
		id:        uuid.New().String(),
		title:     title,
		creatorID: creatorID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBoard restores a board from repository data
func ReconstructBoard(id, title, creatorID string, taskCount, memberCount int, createdAt, updatedAt time.Time) *Board {
	return &Board{
		id:          id,
		title:       title,
		creatorID:   creatorID,
		taskCount:   taskCount,
		memberCount: memberCount,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (b *Board) ID() string           { return b.id }
func (b *Board) Title() string        { return b.title }
func (b *Board) CreatorID() string    { return b.creatorID }
func (b *Board) TaskCount() int       { return b.taskCount }
func (b *Board) MemberCount() int     { return b.memberCount }
func (b *Board) CreatedAt() time.Time { return b.createdAt }
func (b *Board) UpdatedAt() time.Time { return b.updatedAt }

// IsCreator reports whether userID owns this board
func (b *Board) IsCreator(userID string) bool {
	return userID != "" && b.creatorID == userID
}

// Rename changes the board title
func (b *Board) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return pkgerrors.NewValidationError("board title cannot be empty")
	}
	b.title = title
	b.updatedAt = time.Now()
	return nil
}

// IsDeletable reports whether the board holds no tasks and no membership
// edges, the referential-integrity precondition for deletion. The counter
// check is advisory; the repository re-checks it under a transaction
// condition at delete time.
func (b *Board) IsDeletable() bool {
	return b.taskCount == 0 && b.memberCount == 0
}
