package dto

import "time"

// Límites de listados. No hay paginación: se corta en MaxListLimit.
const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// ClampLimit aplica los límites de listado.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// APIResponse sobre común de todas las respuestas JSON.
type APIResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
	Code      string       `json:"code,omitempty"` // código estable del error (VALIDATION_ERROR, NOT_FOUND, ...)
	Timestamp time.Time    `json:"timestamp"`
}

// FieldError error de validación de un campo.
type FieldError struct {
	Field          string `json:"field"`
	DefaultMessage string `json:"defaultMessage"`
}

// OK respuesta exitosa.
func OK(data interface{}, message string) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data, Timestamp: time.Now()}
}

// Fail respuesta de error.
func Fail(code, message string, errs ...FieldError) APIResponse {
	return APIResponse{Success: false, Code: code, Message: message, Errors: errs, Timestamp: time.Now()}
}
