package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden.
const (
	OrderStatusPending   = "pendiente"
	OrderStatusPaid      = "pagada"
	OrderStatusCancelled = "cancelada"
)

// Métodos de pago aceptados en el checkout.
const (
	PaymentCard     = "tarjeta"
	PaymentTransfer = "transferencia"
	PaymentCash     = "efectivo"
)

// Buyer datos del comprador capturados en el checkout.
type Buyer struct {
	Name    string
	Email   string
	RUT     string
	Address string
	Payment string
}

// OrderDetail línea de la orden con el precio congelado al momento de la compra.
type OrderDetail struct {
	ProductID   string
	ProductName string
	UnitPrice   int64
	Quantity    int
	Subtotal    int64
}

// Order compra confirmada. El backend es la autoridad sobre el stock: crearla descuenta inventario.
type Order struct {
	ID              string
	Number          string // número de boleta visible al cliente
	UserID          string
	UserName        string
	UserEmail       string
	Status          string
	Buyer           Buyer
	Details         []OrderDetail
	Subtotal        decimal.Decimal
	IVA             decimal.Decimal
	SubtotalWithIVA decimal.Decimal
	DiscountPercent decimal.Decimal
	Discount        decimal.Decimal
	FreeShipping    bool
	Shipping        decimal.Decimal
	CouponCode      string
	Total           decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPending indica si la orden admite pago o cancelación.
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// PaymentLabel nombre del método de pago para mostrar en la boleta.
func PaymentLabel(method string) string {
	switch method {
	case PaymentCard:
		return "Tarjeta de crédito/débito"
	case PaymentTransfer:
		return "Transferencia bancaria"
	case PaymentCash:
		return "Efectivo"
	}
	return method
}

// StatusLabel estado de la orden en mayúsculas para la boleta.
func (o *Order) StatusLabel() string {
	switch o.Status {
	case OrderStatusPaid:
		return "PAGADA"
	case OrderStatusCancelled:
		return "CANCELADA"
	}
	return "PENDIENTE DE PAGO"
}
