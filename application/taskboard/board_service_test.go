package taskboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"snapboard-backend/domain/taskboard"
	pkgerrors "snapboard-backend/pkg/errors"
)

func boardWithCounters(id, creatorID string, taskCount, memberCount int) *taskboard.Board {
	now := time.Now()
	return taskboard.ReconstructBoard(id, "Sprint 12", creatorID, taskCount, memberCount, now, now)
}

func newBoardService(
	boards *mockBoardRepository,
	memberships *mockMembershipRepository,
	tasks *mockTaskRepository,
	users *mockUserRepository,
	uow *fakeUnitOfWork,
) *BoardService {
	return NewBoardService(boards, memberships, tasks, users, &fakeUoWFactory{uow: uow}, zap.NewNop())
}

func TestCreateBoard(t *testing.T) {
	t.Run("creates a board owned by the caller", func(t *testing.T) {
		boards := new(mockBoardRepository)
		boards.On("Save", mock.Anything, mock.AnythingOfType("*taskboard.Board")).Return(nil)

		svc := newBoardService(boards, new(mockMembershipRepository), new(mockTaskRepository), new(mockUserRepository), &fakeUnitOfWork{})

		board, err := svc.CreateBoard(context.Background(), "alice", "  Sprint 12  ")
		require.NoError(t, err)
		assert.Equal(t, "Sprint 12", board.Title())
		assert.Equal(t, "alice", board.CreatorID())
		assert.True(t, board.IsDeletable())
		boards.AssertExpectations(t)
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		svc := newBoardService(new(mockBoardRepository), new(mockMembershipRepository), new(mockTaskRepository), new(mockUserRepository), &fakeUnitOfWork{})

		_, err := svc.CreateBoard(context.Background(), "alice", "   ")
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestRenameBoard(t *testing.T) {
	t.Run("renames for the creator", func(t *testing.T) {
		boards := new(mockBoardRepository)
		boards.On("GetByID", mock.Anything, "board-1").Return(boardWithCounters("board-1", "alice", 2, 1), nil)
		boards.On("Save", mock.Anything, mock.AnythingOfType("*taskboard.Board")).Return(nil)

		svc := newBoardService(boards, new(mockMembershipRepository), new(mockTaskRepository), new(mockUserRepository), &fakeUnitOfWork{})

		board, err := svc.RenameBoard(context.Background(), "alice", "board-1", "Sprint 13")
		require.NoError(t, err)
		assert.Equal(t, "Sprint 13", board.Title())
		boards.AssertExpectations(t)
	})

	t.Run("rejects a non-creator even if they are a member", func(t *testing.T) {
		boards := new(mockBoardRepository)
		boards.On("GetByID", mock.Anything, "board-1").Return(boardWithCounters("board-1", "alice", 0, 1), nil)

		svc := newBoardService(boards, new(mockMembershipRepository), new(mockTaskRepository), new(mockUserRepository), &fakeUnitOfWork{})

		_, err := svc.RenameBoard(context.Background(), "bob", "board-1", "Sprint 13")
		assert.True(t, pkgerrors.IsAuthorization(err))
		boards.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestBoardsFor(t *testing.T) {
	t.Run("returns created boards plus invited boards", func(t *testing.T) {
		created := boardWithCounters("board-1", "alice", 0, 0)
		invited := boardWithCounters("board-2", "bob", 1, 2)

		boards := new(mockBoardRepository)
		boards.On("GetByCreator", mock.Anything, "alice").Return([]*taskboard.Board{created}, nil)
		boards.On("GetByID", mock.Anything, "board-2").Return(invited, nil)

		memberships := new(mockMembershipRepository)
		memberships.On("ListByUser", mock.Anything, "alice").Return([]taskboard.MembershipEdge{
			{BoardID: "board-2", UserID: "alice", CreatedAt: time.Now()},
		}, nil)

		svc := newBoardService(boards, memberships, new(mockTaskRepository), new(mockUserRepository), &fakeUnitOfWork{})

		result, err := svc.BoardsFor(context.Background(), "alice")
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "board-1", result[0].ID())
		assert.Equal(t, "board-2", result[1].ID())
	})

	t.Run("skips a membership edge whose board is gone", func(t *testing.T) {
		boards := new(mockBoardRepository)
		boards.On("GetByCreator", mock.Anything, "alice").Return([]*taskboard.Board{}, nil)
		boards.On("GetByID", mock.Anything, "board-gone").Return(nil, pkgerrors.NewNotFoundError("board"))

		memberships := new(mockMembershipRepository)
		memberships.On("ListByUser", mock.Anything, "alice").Return([]taskboard.MembershipEdge{
			{BoardID: "board-gone", UserID: "alice", CreatedAt: time.Now()},
		}, nil)

		svc := newBoardService(boards, memberships, new(mockTaskRepository), new(mockUserRepository), &fakeUnitOfWork{})

		result, err := svc.BoardsFor(context.Background(), "alice")
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestViewBoard(t *testing.T) {
	t.Run("admits an invited member", func(t *testing.T) {
		boards := new(mockBoardRepository)
		boards.On("GetByID", mock.Anything, "board-1").Return(boardWithCounters("board-1", "alice", 1, 1), nil)

		memberships := new(mockMembershipRepository)
		memberships.On("Exists", mock.Anything, "board-1", "bob").Return(true, nil)

		users := new(mockUserRepository)
		users.On("GetByID", mock.Anything, "alice").Return(taskboard.ReconstructUser("alice", "alice@example.com", time.Now()), nil)

		task := taskboard.ReconstructTask("task-1", "board-1", "Write release notes", nil, "", false, nil, time.Now(), time.Now())
		tasks := new(mockTaskRepository)
		tasks.On("GetByBoard", mock.Anything, "board-1").Return([]*taskboard.Task{task}, nil)

		svc := newBoardService(boards, memberships, tasks, users, &fakeUnitOfWork{})

		view, err := svc.ViewBoard(context.Background(), "bob", "board-1")
		require.NoError(t, err)
		assert.Equal(t, "board-1", view.Board.ID())
		assert.Equal(t, "alice@example.com", view.Creator.Email())
		require.Len(t, view.Tasks, 1)
		assert.Equal(t, "task-1", view.Tasks[0].ID())
	})

	t.Run("rejects a caller with no relationship to the board", func(t *testing.T) {
		boards := new(mockBoardRepository)
		boards.On("GetByID", mock.Anything, "board-1").Return(boardWithCounters("board-1", "alice", 0, 0), nil)

		memberships := new(mockMembershipRepository)
		memberships.On("Exists", mock.Anything, "board-1", "mallory").Return(false, nil)

		svc := newBoardService(boards, memberships, new(mockTaskRepository), new(mockUserRepository), &fakeUnitOfWork{})

		_, err := svc.ViewBoard(context.Background(), "mallory", "board-1")
		assert.True(t, pkgerrors.IsAuthorization(err))
	})
}

func TestDeleteBoard(t *testing.T) {
	t.Run("deletes an empty board in a transaction", func(t *testing.T) {
		uow := &fakeUnitOfWork{}
		boards := new(mockBoardRepository)
		boards.On("GetByID", mock.Anything, "board-1").Return(boardWithCounters("board-1", "alice", 0, 0), nil)
		boards.On("DeleteWithUoW", mock.Anything, "board-1", uow).Return(nil)

		svc := newBoardService(boards, new(mockMembershipRepository), new(mockTaskRepository), new(mockUserRepository), uow)

		err := svc.DeleteBoard(context.Background(), "alice", "board-1")
		require.NoError(t, err)
		assert.True(t, uow.began)
		assert.True(t, uow.committed)
		boards.AssertExpectations(t)
	})

	t.Run("rejects a non-creator", func(t *testing.T) {
		uow := &fakeUnitOfWork{}
		boards := new(mockBoardRepository)
		boards.On("GetByID", mock.Anything, "board-1").Return(boardWithCounters("board-1", "alice", 0, 0), nil)

		svc := newBoardService(boards, new(mockMembershipRepository), new(mockTaskRepository), new(mockUserRepository), uow)

		err := svc.DeleteBoard(context.Background(), "bob", "board-1")
		assert.True(t, pkgerrors.IsAuthorization(err))
		assert.False(t, uow.began)
	})

	t.Run("refuses while tasks or members still reference the board", func(t *testing.T) {
		uow := &fakeUnitOfWork{}
		boards := new(mockBoardRepository)
		boards.On("GetByID", mock.Anything, "board-1").Return(boardWithCounters("board-1", "alice", 3, 0), nil)

		svc := newBoardService(boards, new(mockMembershipRepository), new(mockTaskRepository), new(mockUserRepository), uow)

		err := svc.DeleteBoard(context.Background(), "alice", "board-1")
		assert.True(t, pkgerrors.IsConflict(err))
		assert.False(t, uow.began)
		boards.AssertNotCalled(t, "DeleteWithUoW", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("maps a cancelled commit to a conflict", func(t *testing.T) {
		// A concurrent task creation between the counter check and the
		// commit fails the delete condition.
		uow := &fakeUnitOfWork{commitErr: pkgerrors.NewConflictError("transaction rejected by a condition check")}
		boards := new(mockBoardRepository)
		boards.On("GetByID", mock.Anything, "board-1").Return(boardWithCounters("board-1", "alice", 0, 0), nil)
		boards.On("DeleteWithUoW", mock.Anything, "board-1", uow).Return(nil)

		svc := newBoardService(boards, new(mockMembershipRepository), new(mockTaskRepository), new(mockUserRepository), uow)

		err := svc.DeleteBoard(context.Background(), "alice", "board-1")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsConflict(err))
		assert.Contains(t, err.Error(), "board still has tasks or members")
	})
}
