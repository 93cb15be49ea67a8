package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zonekids/zonekids-api/internal/application/checkout"
	"github.com/zonekids/zonekids-api/internal/application/dto"
)

// OrderHandler historial de compras, gestión de órdenes y boletas.
type OrderHandler struct {
	orders   *checkout.OrderUseCase
	vouchers *checkout.VoucherUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *checkout.OrderUseCase, vouchers *checkout.VoucherUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, vouchers: vouchers}
}

// ListAll godoc
// @Summary      Listar todas las órdenes
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(100)
// @Success      200  {object}  dto.APIResponse{data=[]dto.OrderResponse}
// @Router       /api/v1/ordenes [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.orders.ListAll(c.UserContext(), c.QueryInt("limit", dto.DefaultListLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// ListMine godoc
// @Summary      Mis compras
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.OrderResponse}
// @Router       /api/v1/ordenes/mias [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.orders.ListMine(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// Get godoc
// @Summary      Detalle de orden
// @Description  El dueño de la orden o el staff.
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.APIResponse{data=dto.OrderResponse}
// @Failure      403  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/v1/ordenes/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.orders.Get(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// MarkPaid godoc
// @Summary      Marcar orden como pagada
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.APIResponse{data=dto.OrderResponse}
// @Failure      404  {object}  dto.APIResponse
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/v1/ordenes/{id}/pagar [patch]
func (h *OrderHandler) MarkPaid(c *fiber.Ctx) error {
	out, err := h.orders.MarkPaid(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, "Orden pagada"))
}

// Cancel godoc
// @Summary      Cancelar orden
// @Description  Solo órdenes pendientes; devuelve el stock.
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.APIResponse{data=dto.OrderResponse}
// @Failure      404  {object}  dto.APIResponse
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/v1/ordenes/{id}/cancelar [patch]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.orders.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, "Orden cancelada"))
}

// VoucherPDF godoc
// @Summary      Boleta en PDF
// @Tags         ordenes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/v1/ordenes/{id}/boleta.pdf [get]
func (h *OrderHandler) VoucherPDF(c *fiber.Ctx) error {
	b, filename, err := h.vouchers.PDF(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(b)
}

// VoucherHTML godoc
// @Summary      Boleta imprimible
// @Description  Página HTML que abre el diálogo de impresión del navegador.
// @Tags         ordenes
// @Security     Bearer
// @Produce      html
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/v1/ordenes/{id}/boleta.html [get]
func (h *OrderHandler) VoucherHTML(c *fiber.Ctx) error {
	b, err := h.vouchers.HTML(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(b)
}
