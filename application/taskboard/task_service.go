package taskboard

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/taskboard"
	pkgerrors "snapboard-backend/pkg/errors"
)

// UpdateTaskParams carries the full replacement state for a task update.
// All fields apply in one write; there is no partial application. The
// completion timestamp is derived from Completed and cannot be supplied.
type UpdateTaskParams struct {
	Title      string
	DueDate    *time.Time
	AssigneeID string
	Completed  bool
}

// TaskService is the task consistency engine. It gates every task
// mutation on board membership, enforces the system-wide title
// uniqueness rule, and keeps the board's task counter in step.
//
// Title uniqueness is deliberately system-wide rather than per-board,
// matching the observed behavior of the system this replaces.
type TaskService struct {
	boards      ports.BoardRepository
	memberships ports.MembershipRepository
	tasks       ports.TaskRepository
	uowFactory  ports.UnitOfWorkFactory
	logger      *zap.Logger
}

// NewTaskService creates a new task service
func NewTaskService(
	boards ports.BoardRepository,
	memberships ports.MembershipRepository,
	tasks ports.TaskRepository,
	uowFactory ports.UnitOfWorkFactory,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		boards:      boards,
		memberships: memberships,
		tasks:       tasks,
		uowFactory:  uowFactory,
		logger:      logger,
	}
}

// CreateTask creates a task on a board. Caller must be the board creator
// or an invited member. An assignee, if given, must currently be a board
// member.
func (s *TaskService) CreateTask(
	ctx context.Context,
	callerID, boardID, title string,
	dueDate *time.Time,
	assigneeID string,
) (*taskboard.Task, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load board")
	}

	if err := s.authorize(ctx, callerID, board); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if err := s.checkTitleAvailable(ctx, title, ""); err != nil {
		return nil, err
	}

	if assigneeID != "" {
		if err := s.checkAssignee(ctx, boardID, assigneeID); err != nil {
			return nil, err
		}
	}

	task, err := taskboard.NewTask(boardID, title, dueDate, assigneeID)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	if err := uow.Begin(ctx); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to begin transaction")
	}

	if err := s.tasks.ClaimTitleWithUoW(ctx, title, task.ID(), uow); err != nil {
		uow.Rollback()
		return nil, pkgerrors.Wrap(err, "failed to register title claim")
	}
	if err := s.tasks.SaveWithUoW(ctx, task, uow); err != nil {
		uow.Rollback()
		return nil, pkgerrors.Wrap(err, "failed to register task save")
	}
	if err := s.boards.AdjustCountersWithUoW(ctx, boardID, 1, 0, uow); err != nil {
		uow.Rollback()
		return nil, pkgerrors.Wrap(err, "failed to register task count update")
	}

	if err := uow.Commit(ctx); err != nil {
		if pkgerrors.IsConflict(err) {
			return nil, pkgerrors.NewConflictError("a task with this title already exists")
		}
		return nil, pkgerrors.Wrap(err, "failed to commit task creation")
	}

	s.logger.Info("task created",
		zap.String("taskID", task.ID()),
		zap.String("boardID", boardID),
		zap.String("title", title),
	)

	return task, nil
}

// UpdateTask applies a full-field update. The uniqueness check excludes
// the task's own identity, so renaming a task to its current title
// succeeds. Toggling completed derives the completion timestamp.
func (s *TaskService) UpdateTask(ctx context.Context, callerID, taskID string, params UpdateTaskParams) (*taskboard.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load task")
	}

	board, err := s.boards.GetByID(ctx, task.BoardID())
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load board")
	}

	if err := s.authorize(ctx, callerID, board); err != nil {
		return nil, err
	}

	newTitle := strings.TrimSpace(params.Title)
	oldTitle := task.Title()
	renamed := newTitle != oldTitle
	if renamed {
		if err := s.checkTitleAvailable(ctx, newTitle, task.ID()); err != nil {
			return nil, err
		}
	}

	if params.AssigneeID != "" {
		if err := s.checkAssignee(ctx, task.BoardID(), params.AssigneeID); err != nil {
			return nil, err
		}
	}

	// Validate everything before touching the entity so a rejected update
	// leaves no partial state.
	if err := task.Rename(newTitle); err != nil {
		return nil, err
	}
	task.SetDueDate(params.DueDate)
	if params.AssigneeID == "" {
		task.Unassign()
	} else {
		if err := task.Assign(params.AssigneeID); err != nil {
			return nil, err
		}
	}
	task.SetCompleted(params.Completed)

	uow := s.uowFactory.New()
	if err := uow.Begin(ctx); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to begin transaction")
	}

	if renamed {
		if err := s.tasks.ReleaseTitleWithUoW(ctx, oldTitle, uow); err != nil {
			uow.Rollback()
			return nil, pkgerrors.Wrap(err, "failed to register title release")
		}
		if err := s.tasks.ClaimTitleWithUoW(ctx, newTitle, task.ID(), uow); err != nil {
			uow.Rollback()
			return nil, pkgerrors.Wrap(err, "failed to register title claim")
		}
	}
	if err := s.tasks.SaveWithUoW(ctx, task, uow); err != nil {
		uow.Rollback()
		return nil, pkgerrors.Wrap(err, "failed to register task save")
	}

	if err := uow.Commit(ctx); err != nil {
		if pkgerrors.IsConflict(err) {
			return nil, pkgerrors.NewConflictError("a task with this title already exists")
		}
		return nil, pkgerrors.Wrap(err, "failed to commit task update")
	}

	s.logger.Info("task updated",
		zap.String("taskID", task.ID()),
		zap.String("boardID", task.BoardID()),
		zap.Bool("completed", task.IsCompleted()),
	)

	return task, nil
}

// DeleteTask removes a task. Tasks are leaves; nothing references them,
// so removal is unconditional for an authorized caller.
func (s *TaskService) DeleteTask(ctx context.Context, callerID, taskID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load task")
	}

	board, err := s.boards.GetByID(ctx, task.BoardID())
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load board")
	}

	if err := s.authorize(ctx, callerID, board); err != nil {
		return err
	}

	uow := s.uowFactory.New()
	if err := uow.Begin(ctx); err != nil {
		return pkgerrors.Wrap(err, "failed to begin transaction")
	}

	if err := s.tasks.DeleteWithUoW(ctx, task, uow); err != nil {
		uow.Rollback()
		return pkgerrors.Wrap(err, "failed to register task delete")
	}
	if err := s.tasks.ReleaseTitleWithUoW(ctx, task.Title(), uow); err != nil {
		uow.Rollback()
		return pkgerrors.Wrap(err, "failed to register title release")
	}
	if err := s.boards.AdjustCountersWithUoW(ctx, task.BoardID(), -1, 0, uow); err != nil {
		uow.Rollback()
		return pkgerrors.Wrap(err, "failed to register task count update")
	}

	if err := uow.Commit(ctx); err != nil {
		return pkgerrors.Wrap(err, "failed to commit task delete")
	}

	s.logger.Info("task deleted",
		zap.String("taskID", taskID),
		zap.String("boardID", task.BoardID()),
	)

	return nil
}

// GetTask retrieves a task for an authorized caller
func (s *TaskService) GetTask(ctx context.Context, callerID, taskID string) (*taskboard.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load task")
	}

	board, err := s.boards.GetByID(ctx, task.BoardID())
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load board")
	}

	if err := s.authorize(ctx, callerID, board); err != nil {
		return nil, err
	}

	return task, nil
}

// authorize admits the board creator or an invited member
func (s *TaskService) authorize(ctx context.Context, callerID string, board *taskboard.Board) error {
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

// checkTitleAvailable pre-screens the system-wide uniqueness rule for a
// friendly error; the title claim in the commit is the atomic backstop.
func (s *TaskService) checkTitleAvailable(ctx context.Context, title, selfID string) error {
	if title == "" {
		return pkgerrors.NewValidationError("task title cannot be empty")
	}

	existing, err := s.tasks.GetByTitle(ctx, title)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil
		}
		return pkgerrors.Wrap(err, "failed to check title uniqueness")
	}
	if existing.ID() == selfID {
		return nil
	}
	return pkgerrors.NewConflictError("a task with this title already exists")
}

// checkAssignee requires the assignee to hold a current membership edge
// on the board
func (s *TaskService) checkAssignee(ctx context.Context, boardID, assigneeID string) error {
	isMember, err := s.memberships.Exists(ctx, boardID, assigneeID)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to check assignee membership")
	}
	if !isMember {
		return pkgerrors.NewValidationError("assignee must be a member of the board")
	}
	return nil
}
