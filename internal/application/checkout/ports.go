package checkout

import (
	"context"

	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Crear o cancelar una orden y mover el stock ocurre todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		orders repository.OrderRepository,
	) error) error
}

// VoucherPDFGenerator genera la boleta en PDF.
type VoucherPDFGenerator interface {
	GenerateVoucherPDF(ctx context.Context, order *entity.Order) ([]byte, error)
}

// VoucherHTMLRenderer genera la boleta imprimible en HTML.
type VoucherHTMLRenderer interface {
	RenderVoucherHTML(ctx context.Context, order *entity.Order) ([]byte, error)
}
