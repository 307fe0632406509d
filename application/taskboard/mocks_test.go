package taskboard

import (
	"context"

	"github.com/stretchr/testify/mock"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/taskboard"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Save(ctx context.Context, user *taskboard.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*taskboard.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskboard.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*taskboard.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskboard.User), args.Error(1)
}

func (m *mockUserRepository) GetOrCreateByEmail(ctx context.Context, email string) (*taskboard.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskboard.User), args.Error(1)
}

func (m *mockUserRepository) ListOthers(ctx context.Context, excludeUserID string) ([]*taskboard.User, error) {
	args := m.Called(ctx, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taskboard.User), args.Error(1)
}

type mockBoardRepository struct {
	mock.Mock
}

func (m *mockBoardRepository) Save(ctx context.Context, board *taskboard.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *mockBoardRepository) GetByID(ctx context.Context, id string) (*taskboard.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskboard.Board), args.Error(1)
}

func (m *mockBoardRepository) GetByCreator(ctx context.Context, creatorID string) ([]*taskboard.Board, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taskboard.Board), args.Error(1)
}

func (m *mockBoardRepository) AdjustCountersWithUoW(ctx context.Context, boardID string, taskDelta, memberDelta int, uow ports.UnitOfWork) error {
	args := m.Called(ctx, boardID, taskDelta, memberDelta, uow)
	return args.Error(0)
}

func (m *mockBoardRepository) DeleteWithUoW(ctx context.Context, boardID string, uow ports.UnitOfWork) error {
	args := m.Called(ctx, boardID, uow)
	return args.Error(0)
}

type mockMembershipRepository struct {
	mock.Mock
}

func (m *mockMembershipRepository) Save(ctx context.Context, edge taskboard.MembershipEdge) error {
	args := m.Called(ctx, edge)
	return args.Error(0)
}

func (m *mockMembershipRepository) Get(ctx context.Context, boardID, userID string) (*taskboard.MembershipEdge, error) {
	args := m.Called(ctx, boardID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskboard.MembershipEdge), args.Error(1)
}

func (m *mockMembershipRepository) Exists(ctx context.Context, boardID, userID string) (bool, error) {
	args := m.Called(ctx, boardID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMembershipRepository) ListByBoard(ctx context.Context, boardID string) ([]taskboard.MembershipEdge, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taskboard.MembershipEdge), args.Error(1)
}

func (m *mockMembershipRepository) ListByUser(ctx context.Context, userID string) ([]taskboard.MembershipEdge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taskboard.MembershipEdge), args.Error(1)
}

func (m *mockMembershipRepository) SaveWithUoW(ctx context.Context, edge taskboard.MembershipEdge, uow ports.UnitOfWork) error {
	args := m.Called(ctx, edge, uow)
	return args.Error(0)
}

func (m *mockMembershipRepository) DeleteWithUoW(ctx context.Context, boardID, userID string, uow ports.UnitOfWork) error {
	args := m.Called(ctx, boardID, userID, uow)
	return args.Error(0)
}

type mockTaskRepository struct {
	mock.Mock
}

func (m *mockTaskRepository) GetByID(ctx context.Context, id string) (*taskboard.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskboard.Task), args.Error(1)
}

func (m *mockTaskRepository) GetByBoard(ctx context.Context, boardID string) ([]*taskboard.Task, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taskboard.Task), args.Error(1)
}

func (m *mockTaskRepository) GetByTitle(ctx context.Context, title string) (*taskboard.Task, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskboard.Task), args.Error(1)
}

func (m *mockTaskRepository) GetAssignedOnBoard(ctx context.Context, boardID, userID string) ([]*taskboard.Task, error) {
	args := m.Called(ctx, boardID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taskboard.Task), args.Error(1)
}

func (m *mockTaskRepository) SaveWithUoW(ctx context.Context, task *taskboard.Task, uow ports.UnitOfWork) error {
	args := m.Called(ctx, task, uow)
	return args.Error(0)
}

func (m *mockTaskRepository) DeleteWithUoW(ctx context.Context, task *taskboard.Task, uow ports.UnitOfWork) error {
	args := m.Called(ctx, task, uow)
	return args.Error(0)
}

func (m *mockTaskRepository) ClaimTitleWithUoW(ctx context.Context, title, taskID string, uow ports.UnitOfWork) error {
	args := m.Called(ctx, title, taskID, uow)
	return args.Error(0)
}

func (m *mockTaskRepository) ReleaseTitleWithUoW(ctx context.Context, title string, uow ports.UnitOfWork) error {
	args := m.Called(ctx, title, uow)
	return args.Error(0)
}

// fakeUnitOfWork records transaction lifecycle calls
type fakeUnitOfWork struct {
	began      bool
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error {
	f.began = true
	return nil
}

func (f *fakeUnitOfWork) Commit(ctx context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeUnitOfWork) Rollback() error {
	f.rolledBack = true
	return nil
}

type fakeUoWFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUoWFactory) New() ports.UnitOfWork {
	return f.uow
}
