package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, number, user_id, user_name, user_email, status,
	buyer_name, buyer_email, buyer_rut, buyer_address, payment_method,
	subtotal, iva, subtotal_with_iva, discount_percent, discount, free_shipping, shipping,
	coupon_code, total, created_at, updated_at`

// OrderRepo persistencia de órdenes (cabecera + detalle).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el repositorio. Pasar pool o tx.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera y sus líneas. Llamar dentro de una tx para que sea atómico.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Number, o.UserID, o.UserName, o.UserEmail, o.Status,
		o.Buyer.Name, o.Buyer.Email, o.Buyer.RUT, o.Buyer.Address, o.Buyer.Payment,
		o.Subtotal, o.IVA, o.SubtotalWithIVA, o.DiscountPercent, o.Discount, o.FreeShipping, o.Shipping,
		o.CouponCode, o.Total, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert order: %w", err)
	}

	detailQuery := `
		INSERT INTO order_details (order_id, line, product_id, product_name, unit_price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, d := range o.Details {
		if _, err := r.q.Exec(ctx, detailQuery, o.ID, i+1, d.ProductID, d.ProductName, d.UnitPrice, d.Quantity, d.Subtotal); err != nil {
			return fmt.Errorf("insert order detail: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con su detalle. nil, nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadDetails(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByUser historial de compras de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// List todas las órdenes (panel admin).
func (r *OrderRepo) List(ctx context.Context, limit int) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
}

// TransitionStatus actualiza el estado con la condición status = from en el mismo UPDATE.
// Dos transacciones concurrentes se serializan en el lock de la fila: la segunda ve 0 filas.
func (r *OrderRepo) TransitionStatus(ctx context.Context, id, from, to string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check order: %w", err)
	}
	if !exists {
		return domain.ErrOrderNotFound
	}
	return domain.ErrOrderNotPending
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := r.loadDetails(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadDetails carga las líneas de todas las órdenes en una sola consulta.
func (r *OrderRepo) loadDetails(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT order_id, product_id, product_name, unit_price, quantity, subtotal
		FROM order_details WHERE order_id = ANY($1) ORDER BY order_id, line`, ids)
	if err != nil {
		return fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			orderID string
			d       entity.OrderDetail
		)
		if err := rows.Scan(&orderID, &d.ProductID, &d.ProductName, &d.UnitPrice, &d.Quantity, &d.Subtotal); err != nil {
			return fmt.Errorf("scan order detail: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Details = append(o.Details, d)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.Number, &o.UserID, &o.UserName, &o.UserEmail, &o.Status,
		&o.Buyer.Name, &o.Buyer.Email, &o.Buyer.RUT, &o.Buyer.Address, &o.Buyer.Payment,
		&o.Subtotal, &o.IVA, &o.SubtotalWithIVA, &o.DiscountPercent, &o.Discount, &o.FreeShipping, &o.Shipping,
		&o.CouponCode, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
