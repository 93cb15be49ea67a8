package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	cartuc "github.com/zonekids/zonekids-api/internal/application/cart"
	"github.com/zonekids/zonekids-api/internal/application/dto"
)

// HeaderCartToken identifica el carrito de un invitado. El servidor lo genera si falta
// y lo devuelve en la respuesta; el cliente lo reenvía en cada petición.
const HeaderCartToken = "X-Cart-Token"

// CartHandler carrito del usuario autenticado o del invitado.
type CartHandler struct {
	uc *cartuc.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cartuc.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// cartOwner dueño del carrito: el usuario del token o el token de invitado.
func cartOwner(c *fiber.Ctx) string {
	if id := GetUserID(c); id != "" {
		return cartuc.OwnerForUser(id)
	}
	token := strings.TrimSpace(c.Get(HeaderCartToken))
	if _, err := uuid.Parse(token); err != nil {
		token = uuid.New().String()
	}
	c.Set(HeaderCartToken, token)
	return cartuc.OwnerForGuest(token)
}

// Get godoc
// @Summary      Ver carrito
// @Description  Incluye el tiempo restante antes de que el carrito venza (24h sin actividad).
// @Tags         carrito
// @Produce      json
// @Param        X-Cart-Token  header  string  false  "Token de invitado"
// @Success      200  {object}  dto.APIResponse{data=dto.CartResponse}
// @Router       /api/v1/carrito [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), cartOwner(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// Add godoc
// @Summary      Agregar producto al carrito
// @Description  Si ya está, incrementa la cantidad en 1.
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Param        X-Cart-Token  header  string  false  "Token de invitado"
// @Param        body  body  dto.AddCartItemRequest  true  "productoId"
// @Success      200  {object}  dto.APIResponse{data=dto.CartResponse}
// @Failure      404  {object}  dto.APIResponse
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/v1/carrito/items [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Add(c.UserContext(), cartOwner(c), in.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, "Producto agregado al carrito"))
}

// UpdateQuantity godoc
// @Summary      Cambiar cantidad
// @Description  Cantidad 0 o negativa elimina el producto.
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Param        X-Cart-Token  header  string  false  "Token de invitado"
// @Param        productoId  path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateCartItemRequest  true  "cantidad"
// @Success      200  {object}  dto.APIResponse{data=dto.CartResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/v1/carrito/items/{productoId} [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), cartOwner(c), c.Params("productoId"), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// Remove godoc
// @Summary      Quitar producto
// @Tags         carrito
// @Produce      json
// @Param        X-Cart-Token  header  string  false  "Token de invitado"
// @Param        productoId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse{data=dto.CartResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/v1/carrito/items/{productoId} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	out, err := h.uc.Remove(c.UserContext(), cartOwner(c), c.Params("productoId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, "Producto eliminado del carrito"))
}

// Open godoc
// @Summary      Abrir carrito
// @Description  Abrir el panel del carrito reinicia la ventana de 24h si tiene productos.
// @Tags         carrito
// @Produce      json
// @Param        X-Cart-Token  header  string  false  "Token de invitado"
// @Success      200  {object}  dto.APIResponse{data=dto.CartResponse}
// @Router       /api/v1/carrito/abrir [post]
func (h *CartHandler) Open(c *fiber.Ctx) error {
	out, err := h.uc.Open(c.UserContext(), cartOwner(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         carrito
// @Produce      json
// @Param        X-Cart-Token  header  string  false  "Token de invitado"
// @Success      200  {object}  dto.APIResponse
// @Router       /api/v1/carrito [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.UserContext(), cartOwner(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(nil, "Carrito vaciado"))
}

// Merge godoc
// @Summary      Fusionar carrito de invitado
// @Description  Suma el carrito del token de invitado al del usuario autenticado.
// @Tags         carrito
// @Security     Bearer
// @Produce      json
// @Param        X-Cart-Token  header  string  true  "Token de invitado"
// @Success      200  {object}  dto.APIResponse{data=dto.CartResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/v1/carrito/fusionar [post]
func (h *CartHandler) Merge(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Get(HeaderCartToken))
	if _, err := uuid.Parse(token); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("MISSING_CART_TOKEN", "X-Cart-Token requerido"))
	}
	out, err := h.uc.Merge(c.UserContext(), cartuc.OwnerForGuest(token), cartuc.OwnerForUser(GetUserID(c)))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, "Carrito fusionado"))
}
