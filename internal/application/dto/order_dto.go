package dto

import "time"

// BuyerResponse comprador registrado en la orden.
type BuyerResponse struct {
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	RUT     string `json:"rut"`
	Address string `json:"direccion"`
	Payment string `json:"metodoPago"`
}

// OrderDetailResponse línea de la orden.
type OrderDetailResponse struct {
	ProductID   string `json:"productoId"`
	ProductName string `json:"productoNombre"`
	UnitPrice   int64  `json:"precioUnitario"`
	Quantity    int    `json:"cantidad"`
	Subtotal    int64  `json:"subtotal"`
}

// OrderResponse orden completa (también es el historial de compras del usuario).
type OrderResponse struct {
	ID        string                `json:"id"`
	Number    string                `json:"numero"`
	UserID    string                `json:"usuarioId"`
	UserName  string                `json:"usuarioNombre"`
	UserEmail string                `json:"usuarioEmail"`
	Status    string                `json:"estado"`
	Buyer     BuyerResponse         `json:"comprador"`
	Details   []OrderDetailResponse `json:"detalles"`
	Totals    TotalsResponse        `json:"totales"`
	CreatedAt time.Time             `json:"fecha"`
	UpdatedAt time.Time             `json:"fechaActualizacion"`
}
