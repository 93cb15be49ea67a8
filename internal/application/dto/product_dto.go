package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/zonekids/zonekids-api/internal/domain/validation"
)

// Price precio en pesos enteros. Acepta número o texto ("$12.990" -> 12990);
// un número con decimales se rechaza.
type Price int64

// UnmarshalJSON acepta 12990 o "12.990".
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		digits := validation.SanitizePrice(s)
		if digits == "" {
			*p = 0
			return nil
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return err
		}
		*p = Price(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("el precio debe ser un número entero")
	}
	*p = Price(n)
	return nil
}

// ProductRequest alta o edición completa de un producto.
type ProductRequest struct {
	Name          string   `json:"nombre" validate:"required,min=3,max=200"`
	Description   string   `json:"descripcion" validate:"max=2000"`
	Price         Price    `json:"precio" validate:"gt=0"`
	OriginalPrice *Price   `json:"precioOriginal" validate:"omitempty,gt=0"`
	Stock         int      `json:"stock" validate:"gte=0"`
	Category      string   `json:"categoria" validate:"required,max=100"`
	Status        string   `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	IsNew         bool     `json:"esNuevo"`
	OnSale        bool     `json:"enOferta"`
	ImageURLs     []string `json:"imagenesUrl" validate:"min=2,max=3,dive,required"`
}

// ProductStatusRequest body de PATCH /productos/:id/estado.
type ProductStatusRequest struct {
	Status string `json:"estado" validate:"required,oneof=activo inactivo"`
}

// ProductImagesRequest body de PATCH /productos/:id/imagenes.
type ProductImagesRequest struct {
	ImageURLs []string `json:"imagenesUrl" validate:"min=2,max=3,dive,required"`
}

// ProductQuery filtros de GET /productos. nuevo y oferta aceptan "true"/"false".
type ProductQuery struct {
	Category string `query:"categoria"`
	Q        string `query:"q"`
	Status   string `query:"estado" validate:"omitempty,oneof=activo inactivo"`
	IsNew    string `query:"nuevo" validate:"omitempty,oneof=true false"`
	OnSale   string `query:"oferta" validate:"omitempty,oneof=true false"`
	Limit    int    `query:"limit" validate:"gte=0"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"nombre"`
	Description   string    `json:"descripcion"`
	Price         int64     `json:"precio"`
	PriceLabel    string    `json:"precioFormateado"`
	OriginalPrice *int64    `json:"precioOriginal"`
	Stock         int       `json:"stock"`
	Category      string    `json:"categoria"`
	Status        string    `json:"estado"`
	IsNew         bool      `json:"esNuevo"`
	OnSale        bool      `json:"enOferta"`
	ImageURLs     []string  `json:"imagenesUrl"`
	CreatedAt     time.Time `json:"fechaCreacion"`
	UpdatedAt     time.Time `json:"fechaActualizacion"`
}

// SimilarProductResponse sugerencia con su puntaje.
type SimilarProductResponse struct {
	ProductResponse
	Score int `json:"puntaje"`
}

// ProductStatusResponse nuevo estado tras el toggle.
type ProductStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"estado"`
}
