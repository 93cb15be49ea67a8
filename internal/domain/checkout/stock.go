package checkout

import (
	"fmt"

	"github.com/zonekids/zonekids-api/internal/domain"
)

// StockError detalla qué producto no alcanza. errors.Is(err, domain.ErrInsufficientStock) es true.
type StockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponibles %d, solicitados %d", e.Name, e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return domain.ErrInsufficientStock }

// CheckStock verifica cada línea contra el stock disponible (por id de producto).
// Un producto ausente del mapa cuenta como stock 0.
func CheckStock(lines []Line, available map[string]int) error {
	for _, l := range lines {
		if l.Quantity < 1 {
			return fmt.Errorf("%w: cantidad inválida para %s", domain.ErrInvalidInput, l.Name)
		}
		if stock := available[l.ProductID]; l.Quantity > stock {
			return &StockError{ProductID: l.ProductID, Name: l.Name, Requested: l.Quantity, Available: stock}
		}
	}
	return nil
}
