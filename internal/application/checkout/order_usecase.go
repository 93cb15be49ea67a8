package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
	"github.com/zonekids/zonekids-api/pkg/logger"
)

// OrderUseCase consulta y ciclo de vida de las órdenes (pendiente -> pagada | cancelada).
type OrderUseCase struct {
	orders repository.OrderRepository
	tx     TxRunner
	log    *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders repository.OrderRepository, tx TxRunner, log *logger.Logger) *OrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{orders: orders, tx: tx, log: log.Named("ordenes")}
}

// ListAll todas las órdenes, más recientes primero (panel).
func (uc *OrderUseCase) ListAll(ctx context.Context, limit int) ([]dto.OrderResponse, error) {
	list, err := uc.orders.List(ctx, dto.ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return toOrderList(list), nil
}

// ListMine historial de compras del usuario.
func (uc *OrderUseCase) ListMine(ctx context.Context, userID string) ([]dto.OrderResponse, error) {
	list, err := uc.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOrderList(list), nil
}

// Get devuelve la orden si pertenece al usuario o si quien consulta es admin/vendedor.
func (uc *OrderUseCase) Get(ctx context.Context, userID, role, id string) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// MarkPaid pasa una orden pendiente a pagada.
func (uc *OrderUseCase) MarkPaid(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !o.IsPending() {
		return nil, domain.ErrOrderNotPending
	}
	if err := uc.orders.TransitionStatus(ctx, id, entity.OrderStatusPending, entity.OrderStatusPaid); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatusPaid
	o.UpdatedAt = time.Now()
	uc.log.Info().Str("order", o.Number).Msg("orden pagada")
	return toOrderResponse(o), nil
}

// Cancel cancela una orden pendiente y devuelve el stock en la misma transacción.
// El cambio de estado va primero: bloquea la fila y una cancelación concurrente falla con ErrOrderNotPending.
// Las líneas de productos ya eliminados no devuelven stock.
func (uc *OrderUseCase) Cancel(ctx context.Context, id string) (*dto.OrderResponse, error) {
	var order *entity.Order
	var skipped []string
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, orders repository.OrderRepository) error {
		skipped = skipped[:0]
		o, err := orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		if !o.IsPending() {
			return domain.ErrOrderNotPending
		}
		if err := orders.TransitionStatus(ctx, id, entity.OrderStatusPending, entity.OrderStatusCancelled); err != nil {
			return err
		}
		for _, d := range o.Details {
			err := products.IncrementStock(ctx, d.ProductID, d.Quantity)
			if errors.Is(err, domain.ErrProductNotFound) {
				skipped = append(skipped, d.ProductID)
				continue
			}
			if err != nil {
				return err
			}
		}
		o.Status = entity.OrderStatusCancelled
		o.UpdatedAt = time.Now()
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, pid := range skipped {
		uc.log.Warn().Str("order", order.Number).Str("product_id", pid).Msg("producto eliminado, stock no restituido")
	}
	uc.log.Info().Str("order", order.Number).Msg("orden cancelada, stock restituido")
	return toOrderResponse(order), nil
}

func (uc *OrderUseCase) load(ctx context.Context, userID, role, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	staff := role == entity.RoleAdmin || role == entity.RoleVendedor
	if o.UserID != userID && !staff {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func toOrderList(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out
}
