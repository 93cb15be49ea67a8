package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/application/usecase"
)

// PersonalDataHandler datos de despacho del usuario autenticado.
type PersonalDataHandler struct {
	uc *usecase.PersonalDataUseCase
}

// NewPersonalDataHandler construye el handler.
func NewPersonalDataHandler(uc *usecase.PersonalDataUseCase) *PersonalDataHandler {
	return &PersonalDataHandler{uc: uc}
}

// Get godoc
// @Summary      Mis datos personales
// @Tags         datos-personales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.PersonalDataResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/v1/datos-personales [get]
func (h *PersonalDataHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "aún no hay datos personales registrados")
	}
	return c.JSON(dto.OK(out, ""))
}

// Save godoc
// @Summary      Guardar datos personales
// @Tags         datos-personales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PersonalDataRequest  true  "Datos"
// @Success      200  {object}  dto.APIResponse{data=dto.PersonalDataResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/v1/datos-personales [put]
func (h *PersonalDataHandler) Save(c *fiber.Ctx) error {
	var in dto.PersonalDataRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out, "Datos guardados"))
}
