package entity

import "time"

// Estados de producto.
const (
	ProductStatusActive   = "activo"
	ProductStatusInactive = "inactivo"
)

// Product representa un artículo del catálogo. Precio en pesos enteros (sin decimales).
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         int64
	OriginalPrice *int64 // precio antes de la oferta; nil si no aplica
	Stock         int
	Category      string
	Status        string // activo, inactivo
	IsNew         bool
	OnSale        bool
	ImageURLs     []string // 2 a 3 URLs
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive indica si el producto se muestra en la tienda.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
