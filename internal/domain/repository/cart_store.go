package repository

import (
	"context"

	"github.com/zonekids/zonekids-api/internal/domain/cart"
)

// CartStore guarda carritos por dueño ("user:<id>" o "guest:<token>").
// Load devuelve nil, nil si no existe.
type CartStore interface {
	Load(ctx context.Context, owner string) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, owner string) error
}
