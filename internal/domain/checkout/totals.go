package checkout

import (
	"github.com/shopspring/decimal"
)

// Rates constantes de cálculo: IVA como fracción (0.05) y envío base en pesos.
type Rates struct {
	IVA      decimal.Decimal
	Shipping decimal.Decimal
}

// DefaultRates IVA 5% y envío $3.000.
func DefaultRates() Rates {
	return Rates{
		IVA:      decimal.RequireFromString("0.05"),
		Shipping: decimal.NewFromInt(3000),
	}
}

// Line producto a cobrar.
type Line struct {
	ProductID string
	Name      string
	UnitPrice int64
	Quantity  int
}

// Subtotal precio × cantidad.
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Totals desglose del cobro.
type Totals struct {
	Subtotal        decimal.Decimal
	IVA             decimal.Decimal
	SubtotalWithIVA decimal.Decimal
	DiscountPercent decimal.Decimal
	Discount        decimal.Decimal
	FreeShipping    bool
	Shipping        decimal.Decimal
	CouponCode      string
	Total           decimal.Decimal
}

// Calculate aplica: subtotal → +IVA → −descuento del cupón → +envío.
//
//	total = subtotal·(1+IVA) − subtotal·(1+IVA)·pct/100 + envío
func Calculate(lines []Line, coupon *Coupon, rates Rates) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromInt(l.Subtotal()))
	}
	iva := subtotal.Mul(rates.IVA)
	withIVA := subtotal.Add(iva)

	t := Totals{
		Subtotal:        subtotal,
		IVA:             iva,
		SubtotalWithIVA: withIVA,
		DiscountPercent: decimal.Zero,
		Discount:        decimal.Zero,
		Shipping:        rates.Shipping,
	}
	if coupon != nil {
		t.CouponCode = coupon.Code
		t.FreeShipping = coupon.FreeShipping
		if coupon.DiscountPercent > 0 {
			t.DiscountPercent = decimal.NewFromInt(coupon.DiscountPercent)
			t.Discount = withIVA.Mul(t.DiscountPercent).Div(decimal.NewFromInt(100))
		}
	}
	if t.FreeShipping {
		t.Shipping = decimal.Zero
	}
	t.Total = withIVA.Sub(t.Discount).Add(t.Shipping)
	return t
}
