// Package cart modela el carrito de compras y su vencimiento por inactividad.
//
// El carrito vence DefaultTTL después del último evento de apertura o modificación.
// No es una garantía de consistencia: el stock real lo decide la orden.
package cart

import (
	"time"

	"github.com/zonekids/zonekids-api/internal/domain/entity"
)

// DefaultTTL ventana de vida del carrito desde el último evento.
const DefaultTTL = 24 * time.Hour

// Item producto dentro del carrito (copia del catálogo al momento de agregarlo) más la cantidad.
type Item struct {
	ProductID     string   `json:"id"`
	Name          string   `json:"nombre"`
	Price         int64    `json:"precio"`
	OriginalPrice *int64   `json:"precioOriginal,omitempty"`
	Stock         int      `json:"stock"`
	Category      string   `json:"categoria"`
	ImageURLs     []string `json:"imagenesUrl"`
	IsNew         bool     `json:"esNuevo"`
	OnSale        bool     `json:"enOferta"`
	Quantity      int      `json:"cantidad"`
}

// Subtotal precio × cantidad.
func (i Item) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart carrito de un dueño. Timestamp es cero mientras el carrito está vacío.
type Cart struct {
	Owner     string    `json:"owner"`
	Items     []Item    `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}

// Countdown tiempo restante antes del vencimiento, desglosado para mostrar.
type Countdown struct {
	Hours   int   `json:"horas"`
	Minutes int   `json:"minutos"`
	Seconds int   `json:"segundos"`
	TotalMs int64 `json:"total"`
}

// New crea un carrito vacío.
func New(owner string) *Cart {
	return &Cart{Owner: owner, Items: []Item{}}
}

// ItemFromProduct toma la foto del producto que se guarda en el carrito.
func ItemFromProduct(p *entity.Product) Item {
	images := make([]string, len(p.ImageURLs))
	copy(images, p.ImageURLs)
	return Item{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Stock:         p.Stock,
		Category:      p.Category,
		ImageURLs:     images,
		IsNew:         p.IsNew,
		OnSale:        p.OnSale,
	}
}

// Add incrementa la cantidad si el producto ya está; si no, lo agrega con cantidad 1.
func (c *Cart) Add(item Item, now time.Time) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity++
			c.Timestamp = now
			return
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
	c.Timestamp = now
}

// Remove quita el producto. Devuelve false si no estaba.
func (c *Cart) Remove(productID string, now time.Time) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.afterChange(now)
			return true
		}
	}
	return false
}

// UpdateQuantity fija la cantidad; qty <= 0 elimina el producto. Devuelve false si no estaba.
func (c *Cart) UpdateQuantity(productID string, qty int, now time.Time) bool {
	if qty <= 0 {
		return c.Remove(productID, now)
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			c.afterChange(now)
			return true
		}
	}
	return false
}

// Touch registra la apertura del carrito: extiende la ventana si tiene productos.
func (c *Cart) Touch(now time.Time) {
	if !c.IsEmpty() {
		c.Timestamp = now
	}
}

// Merge suma los productos de other (p. ej. el carrito de invitado al iniciar sesión).
func (c *Cart) Merge(other *Cart, now time.Time) {
	if other == nil || other.IsEmpty() {
		return
	}
	for _, it := range other.Items {
		found := false
		for i := range c.Items {
			if c.Items[i].ProductID == it.ProductID {
				c.Items[i].Quantity += it.Quantity
				found = true
				break
			}
		}
		if !found {
			c.Items = append(c.Items, it)
		}
	}
	c.Timestamp = now
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.Timestamp = time.Time{}
}

// IsEmpty indica si no hay productos.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Count cantidad total de unidades.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Total suma precio × cantidad de todos los productos.
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

// Find devuelve el item del producto, si está.
func (c *Cart) Find(productID string) (Item, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return Item{}, false
}

// ExpiresAt instante de vencimiento; cero si el carrito está vacío.
func (c *Cart) ExpiresAt(ttl time.Duration) time.Time {
	if c.Timestamp.IsZero() {
		return time.Time{}
	}
	return c.Timestamp.Add(ttl)
}

// Expired indica si pasaron ttl o más desde el último evento.
func (c *Cart) Expired(now time.Time, ttl time.Duration) bool {
	if c.Timestamp.IsZero() {
		return false
	}
	return now.Sub(c.Timestamp) >= ttl
}

// Remaining calcula la cuenta regresiva. ok=false si está vacío o vencido.
func (c *Cart) Remaining(now time.Time, ttl time.Duration) (Countdown, bool) {
	if c.Timestamp.IsZero() {
		return Countdown{}, false
	}
	remaining := ttl - now.Sub(c.Timestamp)
	if remaining <= 0 {
		return Countdown{}, false
	}
	return Countdown{
		Hours:   int(remaining / time.Hour),
		Minutes: int((remaining % time.Hour) / time.Minute),
		Seconds: int((remaining % time.Minute) / time.Second),
		TotalMs: remaining.Milliseconds(),
	}, true
}

func (c *Cart) afterChange(now time.Time) {
	if c.IsEmpty() {
		c.Timestamp = time.Time{}
		return
	}
	c.Timestamp = now
}
