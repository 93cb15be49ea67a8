package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zonekids/zonekids-api/internal/application/checkout"
	"github.com/zonekids/zonekids-api/internal/application/dto"
)

// CheckoutHandler cupones, resumen de totales y confirmación de compra.
type CheckoutHandler struct {
	uc *checkout.CheckoutUseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// ApplyCoupon godoc
// @Summary      Validar cupón
// @Description  PROFEVIVIAN = envío gratis, SACO7 = 50% de descuento. Sin distinguir mayúsculas.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CouponRequest  true  "codigo"
// @Success      200  {object}  dto.APIResponse{data=dto.CouponResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/v1/checkout/cupon [post]
func (h *CheckoutHandler) ApplyCoupon(c *fiber.Ctx) error {
	var in dto.CouponRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.ApplyCoupon(in.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, out.Message))
}

// Summary godoc
// @Summary      Resumen de compra
// @Description  Totales del carrito actual (subtotal, IVA, descuento, envío, total).
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        X-Cart-Token  header  string  false  "Token de invitado"
// @Param        body  body  dto.CheckoutSummaryRequest  false  "cupon"
// @Success      200  {object}  dto.APIResponse{data=dto.CheckoutSummaryResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/v1/checkout/resumen [post]
func (h *CheckoutHandler) Summary(c *fiber.Ctx) error {
	var in dto.CheckoutSummaryRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.Preview(c.UserContext(), cartOwner(c), in.Coupon)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// PlaceOrder godoc
// @Summary      Confirmar compra
// @Description  Sin items en el cuerpo se compra el carrito del usuario. Descuenta stock y crea la orden pendiente.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "comprador, cupon, items"
// @Success      201  {object}  dto.APIResponse{data=dto.OrderResponse}
// @Failure      400  {object}  dto.APIResponse
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/v1/checkout [post]
func (h *CheckoutHandler) PlaceOrder(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.PlaceOrder(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "Compra realizada con éxito"))
}
