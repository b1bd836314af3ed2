package ports

import (
	"context"

	"merchant-admin-layer/internal/domain"
)

// BadgeRepository defines the interface for badge persistence.
// Update and Delete return a *domain.NotFoundError when the id is unknown.
type BadgeRepository interface {
	Create(ctx context.Context, badge *domain.Badge) error
	GetByID(ctx context.Context, id string) (*domain.Badge, error)
	List(ctx context.Context) ([]*domain.Badge, error)
	Update(ctx context.Context, badge *domain.Badge) error
	Delete(ctx context.Context, id string) (*domain.Badge, error)
}

// TaskRepository defines the interface for task persistence.
// Every method is scoped to a shop; rows of other shops are invisible.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	ListByShop(ctx context.Context, shop string) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, shop string, id string) error
	DeleteCompleted(ctx context.Context, shop string) (int64, error)
	DeleteAllForShop(ctx context.Context, shop string) (int64, error)
}

// SessionRepository defines the interface for Admin API session storage
type SessionRepository interface {
	Store(ctx context.Context, session *domain.Session) error
	Load(ctx context.Context, id string) (*domain.Session, error)
	DeleteByShop(ctx context.Context, shop string) error
}

// HealthChecker is implemented by backing stores that can report connectivity
type HealthChecker interface {
	Ping(ctx context.Context) error
}
