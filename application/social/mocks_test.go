package social

import (
	"context"

	"github.com/stretchr/testify/mock"

	"snapboard-backend/application/ports"
	"snapboard-backend/domain/social"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Save(ctx context.Context, account *social.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepository) SaveWithUoW(ctx context.Context, account *social.Account, uow ports.UnitOfWork) error {
	args := m.Called(ctx, account, uow)
	return args.Error(0)
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id string) (*social.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.Account), args.Error(1)
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*social.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.Account), args.Error(1)
}

func (m *mockAccountRepository) GetOrCreateByEmail(ctx context.Context, email string) (*social.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.Account), args.Error(1)
}

func (m *mockAccountRepository) SearchByEmail(ctx context.Context, query string) ([]*social.Account, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*social.Account), args.Error(1)
}

type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) Save(ctx context.Context, post *social.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepository) GetByID(ctx context.Context, id string) (*social.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.Post), args.Error(1)
}

func (m *mockPostRepository) GetByOwner(ctx context.Context, ownerID string) ([]*social.Post, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*social.Post), args.Error(1)
}

func (m *mockPostRepository) GetByOwners(ctx context.Context, ownerIDs []string, limit int) ([]*social.Post, error) {
	args := m.Called(ctx, ownerIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*social.Post), args.Error(1)
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
