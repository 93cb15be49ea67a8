package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardRepository consultas read-only para el panel de administración.
type DashboardRepository interface {
	CountProducts(ctx context.Context) (total, active int, err error)
	CountLowStock(ctx context.Context, threshold int) (int, error)
	CountUsersByRole(ctx context.Context) (map[string]int, error)
	CountOrdersByStatus(ctx context.Context) (map[string]int, error)
	Revenue(ctx context.Context, statuses []string) (decimal.Decimal, error)
}
