// Package analytics contiene el resumen del panel de administración.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
	"github.com/zonekids/zonekids-api/pkg/money"
)

// LowStockThreshold productos con stock igual o menor se marcan como stock bajo.
const LowStockThreshold = 5

// revenueStatuses estados que cuentan como ingreso (pagadas y pendientes).
var revenueStatuses = []string{entity.OrderStatusPaid, entity.OrderStatusPending}

// DashboardUseCase genera el resumen del panel.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco consultas en paralelo; la primera que falla cancela el resto:
//  1. CountProducts        → total y activos
//  2. CountLowStock(5)     → stock bajo
//  3. CountUsersByRole     → usuarios
//  4. CountOrdersByStatus  → órdenes
//  5. Revenue(pagada, pendiente)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var (
		total, active, lowStock int
		usersByRole             map[string]int
		ordersByStatus          map[string]int
		revenue                 decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, active, err = uc.repo.CountProducts(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		lowStock, err = uc.repo.CountLowStock(gctx, LowStockThreshold)
		if err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		usersByRole, err = uc.repo.CountUsersByRole(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: usuarios: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ordersByStatus, err = uc.repo.CountOrdersByStatus(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: órdenes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		revenue, err = uc.repo.Revenue(gctx, revenueStatuses)
		if err != nil {
			return fmt.Errorf("dashboard: ingresos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := uc.now()
	return &dto.DashboardSummaryDTO{
		Products: dto.ProductStatsDTO{
			Total:             total,
			Active:            active,
			LowStock:          lowStock,
			LowStockThreshold: LowStockThreshold,
		},
		Users:        countBy(usersByRole),
		Orders:       countBy(ordersByStatus),
		Revenue:      revenue,
		RevenueLabel: money.FormatCLP(revenue),
		Period:       monthLabel(now),
		GeneratedAt:  now,
	}, nil
}

func countBy(m map[string]int) dto.CountByDTO {
	if m == nil {
		m = map[string]int{}
	}
	total := 0
	for _, n := range m {
		total += n
	}
	return dto.CountByDTO{Total: total, By: m}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Noviembre 2025".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
