package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /admin/dashboard.
type DashboardSummaryDTO struct {
	Products ProductStatsDTO `json:"productos"`
	Users    CountByDTO      `json:"usuarios"`
	Orders   CountByDTO      `json:"ordenes"`

	// Ingresos de órdenes pagadas y pendientes
	Revenue      decimal.Decimal `json:"ingresos"`
	RevenueLabel string          `json:"ingresosFormateado"`

	Period      string    `json:"periodo"` // ej: "Noviembre 2025"
	GeneratedAt time.Time `json:"generadoEn"`
}

// ProductStatsDTO conteos del catálogo.
type ProductStatsDTO struct {
	Total             int `json:"total"`
	Active            int `json:"activos"`
	LowStock          int `json:"stockBajo"`
	LowStockThreshold int `json:"umbralStockBajo"`
}

// CountByDTO total y desglose (por rol o por estado).
type CountByDTO struct {
	Total int            `json:"total"`
	By    map[string]int `json:"detalle"`
}
