package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zonekids/zonekids-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas para el panel (solo lectura).
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el repositorio.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) CountProducts(ctx context.Context) (total, active int, err error) {
	err = r.q.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'activo') FROM products`,
	).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("count products: %w", err)
	}
	return total, active, nil
}

func (r *DashboardRepo) CountLowStock(ctx context.Context, threshold int) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE stock <= $1`, threshold).Scan(&n); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

func (r *DashboardRepo) CountUsersByRole(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
}

func (r *DashboardRepo) CountOrdersByStatus(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
}

// Revenue suma el total de las órdenes en los estados indicados.
func (r *DashboardRepo) Revenue(ctx context.Context, statuses []string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = ANY($1)`, statuses).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("revenue: %w", err)
	}
	return total, nil
}

func (r *DashboardRepo) countBy(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count by: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[key] = n
	}
	return out, rows.Err()
}
