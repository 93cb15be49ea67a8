package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/domain"
	domcheckout "github.com/zonekids/zonekids-api/internal/domain/checkout"
	"github.com/zonekids/zonekids-api/internal/domain/validation"
	"github.com/zonekids/zonekids-api/pkg/logger"
)

// writeError traduce los errores de dominio a status HTTP y al sobre APIResponse.
// Lo no reconocido es 500 y se registra; el detalle interno no sale al cliente.
func writeError(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	var serr *domcheckout.StockError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION_ERROR", "datos inválidos", dto.FromValidation(verr.Fields)...))
	case errors.As(err, &serr):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("INSUFFICIENT_STOCK", serr.Error()))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("INSUFFICIENT_STOCK", err.Error()))
	case errors.Is(err, domain.ErrInvalidCoupon):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_COUPON", domain.ErrInvalidCoupon.Error()))
	case errors.Is(err, domain.ErrInvalidFile):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_FILE", err.Error()))
	case errors.Is(err, domain.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("EMPTY_CART", domain.ErrEmptyCart.Error()))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION_ERROR", err.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHORIZED", "credenciales inválidas"))
	case errors.Is(err, domain.ErrOwnerOnly):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("OWNER_ONLY", domain.ErrOwnerOnly.Error()))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("FORBIDDEN", domain.ErrForbidden.Error()))
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", err.Error()))
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("EMAIL_EXISTS", domain.ErrEmailAlreadyExists.Error()))
	case errors.Is(err, domain.ErrProductInactive):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("PRODUCT_INACTIVE", domain.ErrProductInactive.Error()))
	case errors.Is(err, domain.ErrOrderNotPending):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("ORDER_NOT_PENDING", domain.ErrOrderNotPending.Error()))
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("CONFLICT", domain.ErrConflict.Error()))
	}
	logger.FromContext(c.UserContext(), nil).Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL", "error interno del servidor"))
}

// parseBody decodifica y valida el cuerpo. Si falla, ya respondió y devuelve false.
func parseBody(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	if errs := dto.Validate(out); len(errs) > 0 {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION_ERROR", "datos inválidos", errs...))
	}
	return true, nil
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", message))
}

// ErrorHandler handler global de Fiber: errores de ruta y panics recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		if fe.Code == fiber.StatusNotFound {
			code = "NOT_FOUND"
		}
		return c.Status(fe.Code).JSON(dto.Fail(code, fe.Message))
	}
	return writeError(c, err)
}
