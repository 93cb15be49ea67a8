package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrOrderNotFound      = errors.New("orden no encontrada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrOwnerOnly          = errors.New("solo el administrador jefe puede asignar el rol admin")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrProductInactive    = errors.New("producto no disponible")
	ErrInvalidCoupon      = errors.New("código de descuento inválido")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrOrderNotPending    = errors.New("solo se pueden modificar órdenes pendientes")
	ErrInvalidFile        = errors.New("archivo inválido")
)
