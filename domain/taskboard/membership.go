package taskboard

import (
	"time"

	pkgerrors "snapboard-backend/pkg/errors"
)

// MembershipEdge joins a board and an invited user. The pair is the whole
// identity; the creator is implicitly privileged and never holds an edge.
type MembershipEdge struct {
	BoardID   string
	UserID    string
	CreatedAt time.Time
}

// NewMembershipEdge creates a membership edge for an invited user
func NewMembershipEdge(boardID, userID string) (MembershipEdge, error) {
	if boardID == "" || userID == "" {
		return MembershipEdge{}, pkgerrors.NewValidationError("boardID and userID are required")
	}
	return MembershipEdge{
		BoardID:   boardID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}, nil
}
