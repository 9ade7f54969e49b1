package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"userapi/internal/http-api/dto"
	"userapi/internal/http-api/models"
	"userapi/internal/http-api/repository"
)

// MockUserRepository mocks the UserRepository interface.
// FindByEmail and FindAll also accept a func as their return value so a test
// can hand back what an earlier Create stored.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if fn, ok := args.Get(0).(func() ([]models.User, error)); ok {
		return fn()
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if fn, ok := args.Get(0).(func(string) (*models.User, error)); ok {
		return fn(email)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockPhoneRepository mocks the PhoneRepository interface
type MockPhoneRepository struct {
	mock.Mock
}

func (m *MockPhoneRepository) FindByUserID(ctx context.Context, userID string) ([]models.Phone, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Phone), args.Error(1)
}

func (m *MockPhoneRepository) ReplaceForUser(ctx context.Context, userID string, phones []models.Phone) error {
	args := m.Called(ctx, userID, phones)
	return args.Error(0)
}

// MockStore hands its own repositories to the transaction callback.
type MockStore struct {
	mock.Mock
	users  *MockUserRepository
	phones *MockPhoneRepository
}

func newMockStore() *MockStore {
	return &MockStore{
		users:  new(MockUserRepository),
		phones: new(MockPhoneRepository),
	}
}

func (m *MockStore) Users() repository.UserRepository {
	return m.users
}

func (m *MockStore) Phones() repository.PhoneRepository {
	return m.phones
}

func (m *MockStore) WithinTransaction(ctx context.Context, fn func(tx repository.Store) error) error {
	m.Called(ctx)
	return fn(m)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUserListCache mocks the cache.UserListCache interface
type MockUserListCache struct {
	mock.Mock
}

func (m *MockUserListCache) Get(ctx context.Context) ([]dto.UserResponse, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]dto.UserResponse), args.Bool(1), args.Error(2)
}

func (m *MockUserListCache) Version(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserListCache) Set(ctx context.Context, version int64, users []dto.UserResponse) error {
	args := m.Called(ctx, version, users)
	return args.Error(0)
}

func (m *MockUserListCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
