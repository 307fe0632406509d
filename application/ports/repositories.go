package ports

import (
	"context"

	"snapboard-backend/domain/social"
	"snapboard-backend/domain/taskboard"
)

// AccountRepository defines the interface for social account persistence.
// This is a port in hexagonal architecture - the domain doesn't know about
// the implementation.
type AccountRepository interface {
	// Save persists an account (create or update)
	Save(ctx context.Context, account *social.Account) error

	// SaveWithUoW registers an account save in a transaction. Used by the
	// relationship ledger so both halves of a mirrored edge commit together.
	SaveWithUoW(ctx context.Context, account *social.Account, uow UnitOfWork) error

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id string) (*social.Account, error)

	// GetByEmail retrieves an account by its email
	GetByEmail(ctx context.Context, email string) (*social.Account, error)

	// GetOrCreateByEmail resolves a principal email to an account, creating
	// one on first sight
	GetOrCreateByEmail(ctx context.Context, email string) (*social.Account, error)

	// SearchByEmail finds accounts whose email sorts at or after the query
	SearchByEmail(ctx context.Context, query string) ([]*social.Account, error)
}

// PostRepository defines the interface for post persistence
type PostRepository interface {
	// Save persists a post (create or update)
	Save(ctx context.Context, post *social.Post) error

	// GetByID retrieves a post by its ID
	GetByID(ctx context.Context, id string) (*social.Post, error)

	// GetByOwner retrieves all posts of one account, newest first
	GetByOwner(ctx context.Context, ownerID string) ([]*social.Post, error)

	// GetByOwners retrieves posts owned by any of the given accounts,
	// newest first, capped at limit
	GetByOwners(ctx context.Context, ownerIDs []string, limit int) ([]*social.Post, error)
}

// UserRepository defines the interface for taskboard user persistence
type UserRepository interface {
	// Save persists a user
	Save(ctx context.Context, user *taskboard.User) error

	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id string) (*taskboard.User, error)

	// GetByEmail retrieves a user by its email
	GetByEmail(ctx context.Context, email string) (*taskboard.User, error)

	// GetOrCreateByEmail resolves a principal email to a user, creating one
	// on first sight
	GetOrCreateByEmail(ctx context.Context, email string) (*taskboard.User, error)

	// ListOthers retrieves every user except the given one, for invite
	// candidate listings
	ListOthers(ctx context.Context, excludeUserID string) ([]*taskboard.User, error)
}

// BoardRepository defines the interface for board persistence
type BoardRepository interface {
	// Save persists a board (create or update)
	Save(ctx context.Context, board *taskboard.Board) error

	// GetByID retrieves a board by its ID
	GetByID(ctx context.Context, id string) (*taskboard.Board, error)

	// GetByCreator retrieves all boards created by a user
	GetByCreator(ctx context.Context, creatorID string) ([]*taskboard.Board, error)

	// AdjustCountersWithUoW registers a counter update for the board's
	// task/member reference counts inside a transaction. Deltas ride the
	// same commit as the record that changes them.
	AdjustCountersWithUoW(ctx context.Context, boardID string, taskDelta, memberDelta int, uow UnitOfWork) error

	// DeleteWithUoW registers a board delete conditioned on zero tasks and
	// zero members. The condition failing cancels the whole transaction.
	DeleteWithUoW(ctx context.Context, boardID string, uow UnitOfWork) error
}

// MembershipRepository defines the interface for board membership edges
type MembershipRepository interface {
	// Save persists a membership edge
	Save(ctx context.Context, edge taskboard.MembershipEdge) error

	// Get retrieves the membership edge for a (board, user) pair, or a
	// not-found error
	Get(ctx context.Context, boardID, userID string) (*taskboard.MembershipEdge, error)

	// Exists reports whether the (board, user) edge is present
	Exists(ctx context.Context, boardID, userID string) (bool, error)

	// ListByBoard retrieves all membership edges of a board
	ListByBoard(ctx context.Context, boardID string) ([]taskboard.MembershipEdge, error)

	// ListByUser retrieves all membership edges a user holds
	ListByUser(ctx context.Context, userID string) ([]taskboard.MembershipEdge, error)

	// SaveWithUoW registers a membership save in a transaction
	SaveWithUoW(ctx context.Context, edge taskboard.MembershipEdge, uow UnitOfWork) error

	// DeleteWithUoW registers a membership delete in a transaction, so the
	// revoke commits together with its cascade
	DeleteWithUoW(ctx context.Context, boardID, userID string, uow UnitOfWork) error
}

// TaskRepository defines the interface for task persistence
type TaskRepository interface {
	// GetByID retrieves a task by its ID
	GetByID(ctx context.Context, id string) (*taskboard.Task, error)

	// GetByBoard retrieves all tasks of a board
	GetByBoard(ctx context.Context, boardID string) ([]*taskboard.Task, error)

	// GetByTitle retrieves the task currently holding a title anywhere in
	// the system, or a not-found error
	GetByTitle(ctx context.Context, title string) (*taskboard.Task, error)

	// GetAssignedOnBoard retrieves tasks on a board assigned to a user
	GetAssignedOnBoard(ctx context.Context, boardID, userID string) ([]*taskboard.Task, error)

	// SaveWithUoW registers a task save in a transaction
	SaveWithUoW(ctx context.Context, task *taskboard.Task, uow UnitOfWork) error

	// DeleteWithUoW registers a task delete in a transaction
	DeleteWithUoW(ctx context.Context, task *taskboard.Task, uow UnitOfWork) error

	// ClaimTitleWithUoW registers a title-claim write that fails the
	// transaction if another task already holds the title. Backs the
	// system-wide uniqueness rule atomically.
	ClaimTitleWithUoW(ctx context.Context, title, taskID string, uow UnitOfWork) error

	// ReleaseTitleWithUoW registers removal of a title claim
	ReleaseTitleWithUoW(ctx context.Context, title string, uow UnitOfWork) error
}
