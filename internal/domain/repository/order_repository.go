package repository

import (
	"context"

	"github.com/zonekids/zonekids-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes y su detalle.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	List(ctx context.Context, limit int) ([]*entity.Order, error)
	// TransitionStatus cambia el estado solo si la orden sigue en from.
	// ErrOrderNotFound si no existe; ErrOrderNotPending si ya cambió de estado.
	TransitionStatus(ctx context.Context, id, from, to string) error
}
