package repository

import (
	"context"

	"github.com/zonekids/zonekids-api/internal/domain/entity"
)

// ProductFilter criterios de búsqueda del catálogo. Campos vacíos/nil no filtran.
type ProductFilter struct {
	Category string
	Query    string // busca en nombre y descripción
	Status   string
	IsNew    *bool
	OnSale   *bool
	Limit    int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateImages(ctx context.Context, id string, urls []string) error
	// DecrementStock descuenta qty solo si hay stock suficiente; si no, ErrInsufficientStock.
	DecrementStock(ctx context.Context, id string, qty int) error
	IncrementStock(ctx context.Context, id string, qty int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
