package dto

import (
	"github.com/shopspring/decimal"

	"github.com/zonekids/zonekids-api/internal/domain/cart"
)

// CouponRequest body de POST /checkout/cupon.
type CouponRequest struct {
	Code string `json:"codigo"`
}

// CouponResponse efecto del cupón aplicado.
type CouponResponse struct {
	Code            string `json:"codigo"`
	FreeShipping    bool   `json:"envioGratis"`
	DiscountPercent int64  `json:"descuentoPorcentaje"`
	Message         string `json:"mensaje"`
}

// CheckoutSummaryRequest body de POST /checkout/resumen.
type CheckoutSummaryRequest struct {
	Coupon string `json:"cupon"`
}

// TotalsResponse desglose del cobro.
type TotalsResponse struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	IVA             decimal.Decimal `json:"iva"`
	SubtotalWithIVA decimal.Decimal `json:"subtotalConIva"`
	DiscountPercent decimal.Decimal `json:"descuentoPorcentaje"`
	Discount        decimal.Decimal `json:"descuento"`
	FreeShipping    bool            `json:"envioGratis"`
	Shipping        decimal.Decimal `json:"envio"`
	Coupon          string          `json:"cupon,omitempty"`
	Total           decimal.Decimal `json:"total"`
	TotalLabel      string          `json:"totalFormateado"`
}

// CheckoutSummaryResponse carrito más totales.
type CheckoutSummaryResponse struct {
	Items  []cart.Item    `json:"items"`
	Totals TotalsResponse `json:"totales"`
}

// BuyerRequest datos del comprador.
type BuyerRequest struct {
	Name    string `json:"nombre" validate:"required,personname,max=200"`
	Email   string `json:"email" validate:"required,email"`
	RUT     string `json:"rut" validate:"required,rut"`
	Address string `json:"direccion" validate:"required,min=5,max=300"`
	Payment string `json:"metodoPago" validate:"required,payment"`
}

// CheckoutItemRequest línea explícita de la orden.
type CheckoutItemRequest struct {
	ProductID string `json:"productoId" validate:"required"`
	Quantity  int    `json:"cantidad" validate:"gte=1"`
}

// PlaceOrderRequest body de POST /checkout. Si Items viene vacío se usa el carrito del usuario.
type PlaceOrderRequest struct {
	Buyer  BuyerRequest          `json:"comprador"`
	Coupon string                `json:"cupon"`
	Items  []CheckoutItemRequest `json:"items" validate:"omitempty,dive"`
}
