package taskboard

import (
	"context"

	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/taskboard"
	pkgerrors "snapboard-backend/pkg/errors"
)

// MembershipService is the membership ledger: it maintains the
// board/user invitation edges and keeps task assignments consistent with
// them. Revoking a member atomically unassigns that member from every
// task on the board, so a task is never left assigned to a non-member.
type MembershipService struct {
	boards      ports.BoardRepository
	memberships ports.MembershipRepository
	tasks       ports.TaskRepository
	users       ports.UserRepository
	uowFactory  ports.UnitOfWorkFactory
	logger      *zap.Logger
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	boards ports.BoardRepository,
	memberships ports.MembershipRepository,
	tasks ports.TaskRepository,
	users ports.UserRepository,
	uowFactory ports.UnitOfWorkFactory,
	logger *zap.Logger,
) *MembershipService {
	return &MembershipService{
		boards:      boards,
		memberships: memberships,
		tasks:       tasks,
		users:       users,
		uowFactory:  uowFactory,
		logger:      logger,
	}
}

// Invite adds membership edges for the given users. Creator only. Users
// already invited are skipped; the operation is idempotent per pair.
func (s *MembershipService) Invite(ctx context.Context, callerID, boardID string, userIDs []string) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load board")
	}

	if !board.IsCreator(callerID) {
		return pkgerrors.NewAuthorizationError("only the board creator can invite users")
	}

	var edges []taskboard.MembershipEdge
	for _, userID := range userIDs {
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			return pkgerrors.Wrap(err, "failed to load invited user")
		}

		exists, err := s.memberships.Exists(ctx, boardID, userID)
		if err != nil {
			return pkgerrors.Wrap(err, "failed to check membership")
		}
		if exists {
			continue
		}

		edge, err := taskboard.NewMembershipEdge(boardID, userID)
		if err != nil {
			return err
		}
		edges = append(edges, edge)
	}

	if len(edges) == 0 {
		return nil
	}

	uow := s.uowFactory.New()
	if err := uow.Begin(ctx); err != nil {
		return pkgerrors.Wrap(err, "failed to begin transaction")
	}

	for _, edge := range edges {
		if err := s.memberships.SaveWithUoW(ctx, edge, uow); err != nil {
			uow.Rollback()
			return pkgerrors.Wrap(err, "failed to register membership")
		}
	}
	if err := s.boards.AdjustCountersWithUoW(ctx, boardID, 0, len(edges), uow); err != nil {
		uow.Rollback()
		return pkgerrors.Wrap(err, "failed to register member count update")
	}

	if err := uow.Commit(ctx); err != nil {
		return pkgerrors.Wrap(err, "failed to commit invites")
	}

	s.logger.Info("users invited to board",
		zap.String("boardID", boardID),
		zap.Int("invited", len(edges)),
	)

	return nil
}

// Revoke removes a user's membership edge and unassigns that user from
// every task on the board, in one transaction. Creator only. Revoking a
// user who is not a member is a no-op.
func (s *MembershipService) Revoke(ctx context.Context, callerID, boardID, userID string) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load board")
	}

	if !board.IsCreator(callerID) {
		return pkgerrors.NewAuthorizationError("only the board creator can revoke membership")
	}

	exists, err := s.memberships.Exists(ctx, boardID, userID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to check membership")
	}
	if !exists {
		return nil
	}

	assigned, err := s.tasks.GetAssignedOnBoard(ctx, boardID, userID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load assigned tasks")
	}

	uow := s.uowFactory.New()
	if err := uow.Begin(ctx); err != nil {
		return pkgerrors.Wrap(err, "failed to begin transaction")
	}

	for _, task := range assigned {
		task.Unassign()
		if err := s.tasks.SaveWithUoW(ctx, task, uow); err != nil {
			uow.Rollback()
			return pkgerrors.Wrap(err, "failed to register task unassignment")
		}
	}

	if err := s.memberships.DeleteWithUoW(ctx, boardID, userID, uow); err != nil {
		uow.Rollback()
		return pkgerrors.Wrap(err, "failed to register membership delete")
	}
	if err := s.boards.AdjustCountersWithUoW(ctx, boardID, 0, -1, uow); err != nil {
		uow.Rollback()
		return pkgerrors.Wrap(err, "failed to register member count update")
	}

	if err := uow.Commit(ctx); err != nil {
		return pkgerrors.Wrap(err, "failed to commit revoke")
	}

	s.logger.Info("membership revoked",
		zap.String("boardID", boardID),
		zap.String("userID", userID),
		zap.Int("tasksUnassigned", len(assigned)),
	)

	return nil
}

// IsMember reports whether the user holds a membership edge on the board.
// The creator is implicitly authorized for board operations but is not a
// member in this sense.
func (s *MembershipService) IsMember(ctx context.Context, boardID, userID string) (bool, error) {
	return s.memberships.Exists(ctx, boardID, userID)
}

// Members lists the invited users of a board. Creator only; this backs
// the invite management view.
func (s *MembershipService) Members(ctx context.Context, callerID, boardID string) ([]*taskboard.User, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load board")
	}

	if !board.IsCreator(callerID) {
		return nil, pkgerrors.NewAuthorizationError("only the board creator can list members")
	}

	edges, err := s.memberships.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load memberships")
	}

	members := make([]*taskboard.User, 0, len(edges))
	for _, edge := range edges {
		user, err := s.users.GetByID(ctx, edge.UserID)
		if err != nil {
			s.logger.Warn("skipping membership edge to missing user",
				zap.String("boardID", boardID),
				zap.String("userID", edge.UserID),
			)
			continue
		}
		members = append(members, user)
	}

	return members, nil
}

// InviteCandidates lists every user other than the caller, for the
// invite form. Creator only.
func (s *MembershipService) InviteCandidates(ctx context.Context, callerID, boardID string) ([]*taskboard.User, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load board")
	}

	if !board.IsCreator(callerID) {
		return nil, pkgerrors.NewAuthorizationError("only the board creator can invite users")
	}

	return s.users.ListOthers(ctx, callerID)
}
