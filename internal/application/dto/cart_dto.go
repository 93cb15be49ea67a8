package dto

import (
	"time"

	"github.com/zonekids/zonekids-api/internal/domain/cart"
)

// AddCartItemRequest agrega una unidad del producto.
type AddCartItemRequest struct {
	ProductID string `json:"productoId" validate:"required"`
}

// UpdateCartItemRequest fija la cantidad; 0 o menos quita el producto.
type UpdateCartItemRequest struct {
	Quantity int `json:"cantidad"`
}

// CartResponse estado del carrito con su cuenta regresiva.
type CartResponse struct {
	Owner      string          `json:"-"`
	Items      []cart.Item     `json:"items"`
	Count      int             `json:"cantidadTotal"`
	Total      int64           `json:"total"`
	TotalLabel string          `json:"totalFormateado"`
	Open       bool            `json:"abierto"`
	Expired    bool            `json:"vencido"`
	ExpiresAt  *time.Time      `json:"venceEn,omitempty"`
	Remaining  *cart.Countdown `json:"tiempoRestante,omitempty"`
}
