package checkout

import (
	"github.com/zonekids/zonekids-api/internal/application/dto"
	domcheckout "github.com/zonekids/zonekids-api/internal/domain/checkout"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/pkg/money"
)

func toTotalsResponse(t domcheckout.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{
		Subtotal:        t.Subtotal,
		IVA:             t.IVA,
		SubtotalWithIVA: t.SubtotalWithIVA,
		DiscountPercent: t.DiscountPercent,
		Discount:        t.Discount,
		FreeShipping:    t.FreeShipping,
		Shipping:        t.Shipping,
		Coupon:          t.CouponCode,
		Total:           t.Total,
		TotalLabel:      money.FormatCLP(t.Total),
	}
}

func orderTotals(o *entity.Order) domcheckout.Totals {
	return domcheckout.Totals{
		Subtotal:        o.Subtotal,
		IVA:             o.IVA,
		SubtotalWithIVA: o.SubtotalWithIVA,
		DiscountPercent: o.DiscountPercent,
		Discount:        o.Discount,
		FreeShipping:    o.FreeShipping,
		Shipping:        o.Shipping,
		CouponCode:      o.CouponCode,
		Total:           o.Total,
	}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	details := make([]dto.OrderDetailResponse, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, dto.OrderDetailResponse{
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			UnitPrice:   d.UnitPrice,
			Quantity:    d.Quantity,
			Subtotal:    d.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:        o.ID,
		Number:    o.Number,
		UserID:    o.UserID,
		UserName:  o.UserName,
		UserEmail: o.UserEmail,
		Status:    o.Status,
		Buyer: dto.BuyerResponse{
			Name:    o.Buyer.Name,
			Email:   o.Buyer.Email,
			RUT:     o.Buyer.RUT,
			Address: o.Buyer.Address,
			Payment: o.Buyer.Payment,
		},
		Details:   details,
		Totals:    toTotalsResponse(orderTotals(o)),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
