package taskboard

import (
	"context"

	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/taskboard"
	pkgerrors "snapboard-backend/pkg/errors"
)

// BoardView bundles a board with its tasks and creator for display
type BoardView struct {
	Board   *taskboard.Board
	Creator *taskboard.User
	Tasks   []*taskboard.Task
}

// BoardService handles board lifecycle: create, rename, list, view, and
// the reference-guarded delete.
type BoardService struct {
	boards      ports.BoardRepository
	memberships ports.MembershipRepository
	users       ports.UserRepository
	uowFactory  ports.UnitOfWorkFactory
	tasks       ports.TaskRepository
	logger      *zap.Logger
}

// NewBoardService creates a new board service
func NewBoardService(
	boards ports.BoardRepository,
	memberships ports.MembershipRepository,
	tasks ports.TaskRepository,
	users ports.UserRepository,
	uowFactory ports.UnitOfWorkFactory,
	logger *zap.Logger,
) *BoardService {
	return &BoardService{
		boards:      boards,
		memberships: memberships,
		tasks:       tasks,
		users:       users,
		uowFactory:  uowFactory,
		logger:      logger,
	}
}

// CreateBoard creates a board owned by the caller
func (s *BoardService) CreateBoard(ctx context.Context, callerID, title string) (*taskboard.Board, error) {
	board, err := taskboard.NewBoard(title, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.boards.Save(ctx, board); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to save board")
	}

	s.logger.Info("board created",
		zap.String("boardID", board.ID()),
		zap.String("creatorID", callerID),
	)

	return board, nil
}

// RenameBoard changes a board's title. Creator only.
func (s *BoardService) RenameBoard(ctx context.Context, callerID, boardID, title string) (*taskboard.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load board")
	}

	if !board.IsCreator(callerID) {
		return nil, pkgerrors.NewAuthorizationError("only the board creator can rename it")
	}

	if err := board.Rename(title); err != nil {
		return nil, err
	}

	if err := s.boards.Save(ctx, board); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to save board")
	}

	return board, nil
}

// BoardsFor lists the boards a user created plus every board the user is
// invited into
func (s *BoardService) BoardsFor(ctx context.Context, userID string) ([]*taskboard.Board, error) {
	boards, err := s.boards.GetByCreator(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load created boards")
	}

	edges, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load memberships")
	}

	for _, edge := range edges {
		board, err := s.boards.GetByID(ctx, edge.BoardID)
		if err != nil {
			s.logger.Warn("skipping membership edge to missing board",
				zap.String("boardID", edge.BoardID),
				zap.String("userID", userID),
			)
			continue
		}
		boards = append(boards, board)
	}

	return boards, nil
}

// ViewBoard returns a board with its tasks. Creator or invited member only.
func (s *BoardService) ViewBoard(ctx context.Context, callerID, boardID string) (*BoardView, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load board")
	}

	if err := s.authorize(ctx, callerID, board); err != nil {
		return nil, err
	}

	creator, err := s.users.GetByID(ctx, board.CreatorID())
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load board creator")
	}

	tasks, err := s.tasks.GetByBoard(ctx, boardID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load board tasks")
	}

	return &BoardView{Board: board, Creator: creator, Tasks: tasks}, nil
}

// DeleteBoard removes a board. Creator only, and only when the board has
// zero tasks and zero membership edges. The delete is conditioned on the
// board's reference counters inside the transaction, so a concurrent task
// or invite between check and delete cancels the commit instead of
// orphaning records.
func (s *BoardService) DeleteBoard(ctx context.Context, callerID, boardID string) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load board")
	}

	if !board.IsCreator(callerID) {
		return pkgerrors.NewAuthorizationError("only the board creator can delete it")
	}

	// Fast path for the common conflict; the transaction condition is the
	// authoritative check.
	if !board.IsDeletable() {
		return pkgerrors.NewConflictError("board still has tasks or members")
	}

	uow := s.uowFactory.New()
	if err := uow.Begin(ctx); err != nil {
		return pkgerrors.Wrap(err, "failed to begin transaction")
	}

	if err := s.boards.DeleteWithUoW(ctx, boardID, uow); err != nil {
		uow.Rollback()
		return pkgerrors.Wrap(err, "failed to register board delete")
	}

	if err := uow.Commit(ctx); err != nil {
		if pkgerrors.IsConflict(err) {
			return pkgerrors.NewConflictError("board still has tasks or members")
		}
		return pkgerrors.Wrap(err, "failed to commit board delete")
	}

	s.logger.Info("board deleted",
		zap.String("boardID", boardID),
		zap.String("creatorID", callerID),
	)

	return nil
}

// authorize admits the board creator or an invited member
func (s *BoardService) authorize(ctx context.Context, callerID string, board *taskboard.Board) error {
	if board.IsCreator(callerID) {
		return nil
	}

	isMember, err := s.memberships.Exists(ctx, board.ID(), callerID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to check membership")
	}
	if !isMember {
		return pkgerrors.NewAuthorizationError("caller is neither the board creator nor a member")
	}
	return nil
}
