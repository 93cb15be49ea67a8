package dto

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/zonekids/zonekids-api/internal/domain/validation"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator instancia compartida con las reglas propias de la tienda:
// rut, personname (solo letras, mínimo 3) y payment (tarjeta|transferencia|efectivo).
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("rut", func(fl validator.FieldLevel) bool {
			return validation.ValidRUT(fl.Field().String())
		})
		_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
			return validation.ValidName(fl.Field().String())
		})
		_ = v.RegisterValidation("payment", func(fl validator.FieldLevel) bool {
			return validation.ValidPayment(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Validate ejecuta los tags validate: de s. Devuelve nil si es válido.
func Validate(s interface{}) []FieldError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", DefaultMessage: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), DefaultMessage: message(fe)})
	}
	return out
}

// FromValidation convierte errores de dominio al formato de respuesta.
func FromValidation(errs []validation.FieldError) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, FieldError{Field: e.Field, DefaultMessage: e.Message})
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "ProductRequest.imagenesUrl[0]" -> "imagenesUrl[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	isList := fe.Kind() == reflect.Slice
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "email":
		return "El email no es válido"
	case "rut":
		return "El RUT debe tener al menos 8 dígitos"
	case "personname":
		return "Debe tener al menos 3 letras y solo letras"
	case "payment":
		return "Método de pago inválido"
	case "oneof":
		return "Debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		switch {
		case isText:
			return fmt.Sprintf("Debe tener al menos %s caracteres", fe.Param())
		case isList:
			return fmt.Sprintf("Debe tener al menos %s elementos", fe.Param())
		}
		return "Debe ser mayor o igual a " + fe.Param()
	case "max":
		switch {
		case isText:
			return fmt.Sprintf("Debe tener como máximo %s caracteres", fe.Param())
		case isList:
			return fmt.Sprintf("Debe tener como máximo %s elementos", fe.Param())
		}
		return "Debe ser menor o igual a " + fe.Param()
	case "gt":
		return "Debe ser mayor a " + fe.Param()
	case "gte":
		return "Debe ser mayor o igual a " + fe.Param()
	}
	return "Valor inválido"
}
