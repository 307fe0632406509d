package ports

import "context"

// UnitOfWork batches writes registered by the *WithUoW repository methods
// and commits them as one atomic transaction. Every multi-record invariant
// in the system rides one of these: the mirrored follow-edge update, the
// revoke-then-cascade-unassign sequence, and the zero-reference board
// delete.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit executes all registered operations atomically. A failed
	// precondition on any item cancels every item.
	Commit(ctx context.Context) error

	// Rollback discards all registered operations
	Rollback() error
}

// UnitOfWorkFactory creates a fresh unit of work per operation. Units of
// work are stateful and must not be shared across requests.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
