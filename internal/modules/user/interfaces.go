package user

import (
	"context"

	"sportarea/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateFields(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
}
