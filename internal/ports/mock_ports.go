package ports

import (
	"context"

	"merchant-admin-layer/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBadgeRepository is a mock implementation of BadgeRepository
type MockBadgeRepository struct {
	mock.Mock
}

func (m *MockBadgeRepository) Create(ctx context.Context, badge *domain.Badge) error {
	args := m.Called(ctx, badge)
	return args.Error(0)
}

func (m *MockBadgeRepository) GetByID(ctx context.Context, id string) (*domain.Badge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Badge), args.Error(1)
}

func (m *MockBadgeRepository) List(ctx context.Context) ([]*domain.Badge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Badge), args.Error(1)
}

func (m *MockBadgeRepository) Update(ctx context.Context, badge *domain.Badge) error {
	args := m.Called(ctx, badge)
	return args.Error(0)
}

func (m *MockBadgeRepository) Delete(ctx context.Context, id string) (*domain.Badge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Badge), args.Error(1)
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) ListByShop(ctx context.Context, shop string) ([]*domain.Task, error) {
	args := m.Called(ctx, shop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, shop string, id string) error {
	args := m.Called(ctx, shop, id)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteCompleted(ctx context.Context, shop string) (int64, error) {
	args := m.Called(ctx, shop)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) DeleteAllForShop(ctx context.Context, shop string) (int64, error) {
	args := m.Called(ctx, shop)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Store(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Load(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) DeleteByShop(ctx context.Context, shop string) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

// MockAdminGateway is a mock implementation of AdminGateway
type MockAdminGateway struct {
	mock.Mock
}

func (m *MockAdminGateway) ProductCursors(ctx context.Context, shop string, accessToken string, first int, after string) (*domain.CursorPage, error) {
	args := m.Called(ctx, shop, accessToken, first, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CursorPage), args.Error(1)
}

func (m *MockAdminGateway) ProductsPage(ctx context.Context, shop string, accessToken string, first int, after string) (*domain.ProductPage, error) {
	args := m.Called(ctx, shop, accessToken, first, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPage), args.Error(1)
}

func (m *MockAdminGateway) ProductOptions(ctx context.Context, shop string, accessToken string, first int) ([]domain.ProductOption, error) {
	args := m.Called(ctx, shop, accessToken, first)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductOption), args.Error(1)
}

func (m *MockAdminGateway) ProductMetafield(ctx context.Context, shop string, accessToken string, productID string, namespace string, key string) (*string, error) {
	args := m.Called(ctx, shop, accessToken, productID, namespace, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockAdminGateway) SetMetafield(ctx context.Context, shop string, accessToken string, input domain.MetafieldInput) error {
	args := m.Called(ctx, shop, accessToken, input)
	return args.Error(0)
}

// MockSessionTokenVerifier is a mock implementation of SessionTokenVerifier
type MockSessionTokenVerifier struct {
	mock.Mock
}

func (m *MockSessionTokenVerifier) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
