package repository

import (
	"context"

	"github.com/zonekids/zonekids-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, limit int) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
