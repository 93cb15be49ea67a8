package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/application/usecase"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
)

// ProductHandler catálogo: lectura pública, escritura para admin y vendedor.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func isStaff(c *fiber.Ctx) bool {
	role := GetRole(c)
	return role == entity.RoleAdmin || role == entity.RoleVendedor
}

// List godoc
// @Summary      Listar productos
// @Description  Sin rol de staff solo se listan productos activos.
// @Tags         productos
// @Produce      json
// @Param        categoria  query  string  false  "Categoría"
// @Param        q          query  string  false  "Búsqueda en nombre y descripción"
// @Param        estado     query  string  false  "activo | inactivo"
// @Param        nuevo      query  bool    false  "Solo nuevos"
// @Param        oferta     query  bool    false  "Solo en oferta"
// @Param        limit      query  int     false  "Límite"  default(100)
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProductResponse}
// @Router       /api/v1/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_QUERY", "parámetros inválidos"))
	}
	if errs := dto.Validate(&q); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION_ERROR", "parámetros inválidos", errs...))
	}
	if !isStaff(c) {
		q.Status = entity.ProductStatusActive
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/v1/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil || (out.Status != entity.ProductStatusActive && !isStaff(c)) {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.OK(out, ""))
}

// Similar godoc
// @Summary      Productos similares
// @Description  Hasta 5 productos activos ordenados por puntaje de similitud. Un producto inactivo solo lo consulta staff.
// @Tags         productos
// @Produce      json
// @Param        id   path  string  true  "ID del producto de referencia"
// @Success      200  {object}  dto.APIResponse{data=[]dto.SimilarProductResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/v1/productos/{id}/similares [get]
func (h *ProductHandler) Similar(c *fiber.Ctx) error {
	out, err := h.uc.Similar(c.UserContext(), c.Params("id"), isStaff(c))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.OK(out, ""))
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      403   {object}  dto.APIResponse
// @Router       /api/v1/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "Producto creado"))
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos completos"
// @Success      200   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/v1/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.OK(out, "Producto actualizado"))
}

// SetStatus godoc
// @Summary      Activar / desactivar producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ProductStatusRequest  true  "estado"
// @Success      200   {object}  dto.APIResponse{data=dto.ProductStatusResponse}
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/v1/productos/{id}/estado [patch]
func (h *ProductHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.ProductStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, "Estado actualizado"))
}

// SetImages godoc
// @Summary      Reemplazar imágenes del producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ProductImagesRequest  true  "2 a 3 URLs"
// @Success      200   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/v1/productos/{id}/imagenes [patch]
func (h *ProductHandler) SetImages(c *fiber.Ctx) error {
	var in dto.ProductImagesRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetImages(c.UserContext(), c.Params("id"), in.ImageURLs)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.OK(out, "Imágenes actualizadas"))
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/v1/productos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(nil, "Producto eliminado"))
}
