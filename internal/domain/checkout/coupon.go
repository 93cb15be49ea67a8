package checkout

import (
	"strconv"
	"strings"

	"github.com/zonekids/zonekids-api/internal/domain"
)

// Coupon efecto de un código promocional.
type Coupon struct {
	Code            string
	FreeShipping    bool
	DiscountPercent int64 // 0..100 sobre el subtotal con IVA
}

// Message texto para mostrar al aplicar el cupón.
func (c *Coupon) Message() string {
	switch {
	case c.FreeShipping:
		return "Envío gratis aplicado"
	case c.DiscountPercent > 0:
		return "Descuento del " + strconv.FormatInt(c.DiscountPercent, 10) + "% aplicado"
	}
	return "Cupón aplicado"
}

// coupons tabla fija de códigos vigentes.
var coupons = map[string]Coupon{
	"PROFEVIVIAN": {Code: "PROFEVIVIAN", FreeShipping: true},
	"SACO7":       {Code: "SACO7", DiscountPercent: 50},
}

// NormalizeCode recorta espacios y pasa a mayúsculas.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LookupCoupon resuelve un código. Código vacío = sin cupón (nil, nil);
// cualquier otro código desconocido devuelve ErrInvalidCoupon.
func LookupCoupon(code string) (*Coupon, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, nil
	}
	c, ok := coupons[code]
	if !ok {
		return nil, domain.ErrInvalidCoupon
	}
	return &c, nil
}
