// Package checkout casos de uso de la compra: cupones, resumen, creación de órdenes, historial y boleta.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	cartuc "github.com/zonekids/zonekids-api/internal/application/cart"
	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/domain"
	domaincart "github.com/zonekids/zonekids-api/internal/domain/cart"
	domcheckout "github.com/zonekids/zonekids-api/internal/domain/checkout"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
	"github.com/zonekids/zonekids-api/internal/domain/validation"
	"github.com/zonekids/zonekids-api/pkg/logger"
	"github.com/zonekids/zonekids-api/pkg/money"
)

// CheckoutUseCase cálculo de totales y confirmación de la compra.
// Los precios y el stock de la orden salen de la base de datos, no del carrito.
type CheckoutUseCase struct {
	carts    *cartuc.CartUseCase
	products repository.ProductRepository
	users    repository.UserRepository
	tx       TxRunner
	rates    domcheckout.Rates
	now      func() time.Time
	log      *logger.Logger
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	carts *cartuc.CartUseCase,
	products repository.ProductRepository,
	users repository.UserRepository,
	tx TxRunner,
	rates domcheckout.Rates,
	log *logger.Logger,
) *CheckoutUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CheckoutUseCase{
		carts:    carts,
		products: products,
		users:    users,
		tx:       tx,
		rates:    rates,
		now:      time.Now,
		log:      log.Named("checkout"),
	}
}

// ApplyCoupon valida el código y devuelve su efecto. Código vacío -> ErrInvalidInput.
func (uc *CheckoutUseCase) ApplyCoupon(code string) (*dto.CouponResponse, error) {
	if domcheckout.NormalizeCode(code) == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := domcheckout.LookupCoupon(code)
	if err != nil {
		return nil, err
	}
	return &dto.CouponResponse{
		Code:            c.Code,
		FreeShipping:    c.FreeShipping,
		DiscountPercent: c.DiscountPercent,
		Message:         c.Message(),
	}, nil
}

// Preview totales del carrito actual con el cupón indicado (puede ir vacío).
func (uc *CheckoutUseCase) Preview(ctx context.Context, owner, couponCode string) (*dto.CheckoutSummaryResponse, error) {
	coupon, err := domcheckout.LookupCoupon(couponCode)
	if err != nil {
		return nil, err
	}
	c, err := uc.carts.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	items, lines, err := uc.repriceCart(ctx, c.Items)
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutSummaryResponse{
		Items:  items,
		Totals: toTotalsResponse(domcheckout.Calculate(lines, coupon, uc.rates)),
	}, nil
}

// repriceCart actualiza los items del carrito con los datos vigentes del catálogo.
// Los productos eliminados o inactivos quedan fuera: la compra los rechazaría.
// El stock no se verifica aquí; lo hace PlaceOrder.
func (uc *CheckoutUseCase) repriceCart(ctx context.Context, cartItems []domaincart.Item) ([]domaincart.Item, []domcheckout.Line, error) {
	items := make([]domaincart.Item, 0, len(cartItems))
	lines := make([]domcheckout.Line, 0, len(cartItems))
	if len(cartItems) == 0 {
		return items, lines, nil
	}
	ids := make([]string, 0, len(cartItems))
	for _, it := range cartItems {
		ids = append(ids, it.ProductID)
	}
	products, err := uc.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for _, it := range cartItems {
		p, ok := products[it.ProductID]
		if !ok || !p.IsActive() {
			continue
		}
		fresh := domaincart.ItemFromProduct(p)
		fresh.Quantity = it.Quantity
		items = append(items, fresh)
		lines = append(lines, domcheckout.Line{ProductID: p.ID, Name: p.Name, UnitPrice: p.Price, Quantity: it.Quantity})
	}
	return items, lines, nil
}

// PlaceOrder confirma la compra del usuario. Si in.Items viene vacío se compra el carrito,
// que se vacía al terminar. La orden nace pendiente y descuenta stock en la misma transacción.
func (uc *CheckoutUseCase) PlaceOrder(ctx context.Context, userID string, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	buyer := entity.Buyer{
		Name:    strings.TrimSpace(in.Buyer.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Buyer.Email)),
		RUT:     validation.FormatRUT(in.Buyer.RUT),
		Address: strings.TrimSpace(in.Buyer.Address),
		Payment: in.Buyer.Payment,
	}
	if errs := validation.ValidateBuyer(buyer); len(errs) > 0 {
		return nil, &validation.Error{Fields: errs}
	}
	coupon, err := domcheckout.LookupCoupon(in.Coupon)
	if err != nil {
		return nil, err
	}

	owner := cartuc.OwnerForUser(userID)
	fromCart := len(in.Items) == 0
	requested, err := uc.requestedQuantities(ctx, owner, in.Items)
	if err != nil {
		return nil, err
	}

	lines, err := uc.priceLines(ctx, requested)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	totals := domcheckout.Calculate(lines, coupon, uc.rates)
	now := uc.now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		Number:          orderNumber(now),
		UserID:          user.ID,
		UserName:        user.Name,
		UserEmail:       user.Email,
		Status:          entity.OrderStatusPending,
		Buyer:           buyer,
		Details:         make([]entity.OrderDetail, 0, len(lines)),
		Subtotal:        totals.Subtotal,
		IVA:             totals.IVA,
		SubtotalWithIVA: totals.SubtotalWithIVA,
		DiscountPercent: totals.DiscountPercent,
		Discount:        totals.Discount,
		FreeShipping:    totals.FreeShipping,
		Shipping:        totals.Shipping,
		CouponCode:      totals.CouponCode,
		Total:           totals.Total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, l := range lines {
		order.Details = append(order.Details, entity.OrderDetail{
			ProductID:   l.ProductID,
			ProductName: l.Name,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal(),
		})
	}

	err = uc.tx.Run(ctx, func(products repository.ProductRepository, orders repository.OrderRepository) error {
		for _, l := range lines {
			if err := products.DecrementStock(ctx, l.ProductID, l.Quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, l.Name)
				}
				return err
			}
		}
		return orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	if fromCart {
		if err := uc.carts.Clear(ctx, owner); err != nil {
			uc.log.Warn().Err(err).Str("order", order.Number).Msg("orden creada pero no se pudo vaciar el carrito")
		}
	}
	uc.log.Info().
		Str("order", order.Number).
		Str("user_id", user.ID).
		Int("lineas", len(lines)).
		Str("total", money.FormatCLP(order.Total)).
		Msg("orden creada")
	return toOrderResponse(order), nil
}

// requestedQuantities cantidades por producto, desde el body o desde el carrito.
func (uc *CheckoutUseCase) requestedQuantities(ctx context.Context, owner string, items []dto.CheckoutItemRequest) ([]domcheckout.Line, error) {
	var out []domcheckout.Line
	if len(items) > 0 {
		index := map[string]int{}
		for _, it := range items {
			if it.Quantity < 1 {
				return nil, domain.ErrInvalidInput
			}
			if i, ok := index[it.ProductID]; ok {
				out[i].Quantity += it.Quantity
				continue
			}
			index[it.ProductID] = len(out)
			out = append(out, domcheckout.Line{ProductID: it.ProductID, Quantity: it.Quantity})
		}
		return out, nil
	}
	c, err := uc.carts.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	for _, it := range c.Items {
		out = append(out, domcheckout.Line{ProductID: it.ProductID, Name: it.Name, Quantity: it.Quantity})
	}
	return out, nil
}

// priceLines completa nombre y precio vigentes y verifica stock.
func (uc *CheckoutUseCase) priceLines(ctx context.Context, lines []domcheckout.Line) ([]domcheckout.Line, error) {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := uc.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	stock := make(map[string]int, len(products))
	out := make([]domcheckout.Line, 0, len(lines))
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, l.ProductID)
		}
		if !p.IsActive() {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductInactive, p.Name)
		}
		stock[p.ID] = p.Stock
		out = append(out, domcheckout.Line{ProductID: p.ID, Name: p.Name, UnitPrice: p.Price, Quantity: l.Quantity})
	}
	if err := domcheckout.CheckStock(out, stock); err != nil {
		return nil, err
	}
	return out, nil
}

// orderNumber número de boleta legible: BOL-20251124-1A2B3C4D.
func orderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return "BOL-" + now.Format("20060102") + "-" + suffix
}
