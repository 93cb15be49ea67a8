package checkout_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/internal/domain/checkout"
)

var sampleLines = []checkout.Line{
	{ProductID: "p1", Name: "Polera", UnitPrice: 100, Quantity: 2},
	{ProductID: "p2", Name: "Short", UnitPrice: 50, Quantity: 1},
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate_SinCupon(t *testing.T) {
	tot := checkout.Calculate(sampleLines, nil, checkout.DefaultRates())

	assert.True(t, tot.Subtotal.Equal(dec("250")), tot.Subtotal.String())
	assert.True(t, tot.IVA.Equal(dec("12.5")), tot.IVA.String())
	assert.True(t, tot.SubtotalWithIVA.Equal(dec("262.5")))
	assert.True(t, tot.Shipping.Equal(dec("3000")))
	// total = subtotal*1.05 + envío
	assert.True(t, tot.Total.Equal(dec("250").Mul(dec("1.05")).Add(dec("3000"))), tot.Total.String())
	assert.False(t, tot.FreeShipping)
	assert.Empty(t, tot.CouponCode)
}

func TestCalculate_PROFEVIVIAN_EnvioGratis(t *testing.T) {
	c, err := checkout.LookupCoupon("PROFEVIVIAN")
	require.NoError(t, err)

	tot := checkout.Calculate(sampleLines, c, checkout.DefaultRates())
	assert.True(t, tot.FreeShipping)
	assert.True(t, tot.Shipping.IsZero())
	assert.True(t, tot.Discount.IsZero())
	assert.True(t, tot.Total.Equal(dec("262.5")), tot.Total.String())
	assert.Equal(t, "PROFEVIVIAN", tot.CouponCode)
}

func TestCalculate_SACO7_CincuentaPorCiento(t *testing.T) {
	c, err := checkout.LookupCoupon("SACO7")
	require.NoError(t, err)

	tot := checkout.Calculate(sampleLines, c, checkout.DefaultRates())
	assert.True(t, tot.DiscountPercent.Equal(dec("50")))
	assert.True(t, tot.Discount.Equal(dec("131.25")), tot.Discount.String())
	assert.True(t, tot.Shipping.Equal(dec("3000")))
	assert.True(t, tot.Total.Equal(dec("3131.25")), tot.Total.String())
}

func TestCalculate_CarritoVacio(t *testing.T) {
	tot := checkout.Calculate(nil, nil, checkout.DefaultRates())
	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.Total.Equal(dec("3000")))
}

func TestLookupCoupon(t *testing.T) {
	cases := []struct {
		code    string
		want    string
		wantErr error
	}{
		{"PROFEVIVIAN", "PROFEVIVIAN", nil},
		{"  profevivian ", "PROFEVIVIAN", nil},
		{"saco7", "SACO7", nil},
		{"", "", nil},
		{"   ", "", nil},
		{"DESCUENTO10", "", domain.ErrInvalidCoupon},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			c, err := checkout.LookupCoupon(tc.code)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			if tc.want == "" {
				assert.Nil(t, c)
				return
			}
			require.NotNil(t, c)
			assert.Equal(t, tc.want, c.Code)
		})
	}
}

func TestCoupon_Message(t *testing.T) {
	free, _ := checkout.LookupCoupon("PROFEVIVIAN")
	half, _ := checkout.LookupCoupon("SACO7")
	assert.Equal(t, "Envío gratis aplicado", free.Message())
	assert.Equal(t, "Descuento del 50% aplicado", half.Message())

	custom := checkout.Coupon{Code: "X", DiscountPercent: 15}
	assert.Equal(t, "Descuento del 15% aplicado", custom.Message())
	plain := checkout.Coupon{Code: "Y"}
	assert.Equal(t, "Cupón aplicado", plain.Message())
}

func TestCheckStock(t *testing.T) {
	err := checkout.CheckStock(sampleLines, map[string]int{"p1": 5, "p2": 1})
	assert.NoError(t, err)

	err = checkout.CheckStock(sampleLines, map[string]int{"p1": 1, "p2": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var se *checkout.StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "p1", se.ProductID)
	assert.Equal(t, 1, se.Available)
	assert.Equal(t, 2, se.Requested)

	err = checkout.CheckStock([]checkout.Line{{ProductID: "x", Name: "X", UnitPrice: 1, Quantity: 1}}, nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	err = checkout.CheckStock([]checkout.Line{{ProductID: "p1", Quantity: 0}}, map[string]int{"p1": 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
