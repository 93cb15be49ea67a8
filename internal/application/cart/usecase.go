// Package cart casos de uso del carrito: agregar, quitar, abrir, fusionar y vencimiento.
package cart

import (
	"context"
	"strings"
	"time"

	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/domain"
	domaincart "github.com/zonekids/zonekids-api/internal/domain/cart"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
	"github.com/zonekids/zonekids-api/pkg/logger"
	"github.com/zonekids/zonekids-api/pkg/money"
)

// OwnerForUser clave del carrito de un usuario autenticado.
func OwnerForUser(userID string) string { return "user:" + userID }

// OwnerForGuest clave del carrito de un visitante (token del header X-Cart-Token).
func OwnerForGuest(token string) string { return "guest:" + strings.TrimSpace(token) }

// CartUseCase orquesta el carrito sobre un CartStore. El stock no se reserva:
// la orden es la que descuenta inventario.
type CartUseCase struct {
	store    repository.CartStore
	products repository.ProductRepository
	ttl      time.Duration
	now      func() time.Time
	log      *logger.Logger
}

// NewCartUseCase construye el caso de uso. ttl <= 0 usa 24h.
func NewCartUseCase(store repository.CartStore, products repository.ProductRepository, ttl time.Duration, log *logger.Logger) *CartUseCase {
	if ttl <= 0 {
		ttl = domaincart.DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CartUseCase{store: store, products: products, ttl: ttl, now: time.Now, log: log.Named("carrito")}
}

// WithClock reemplaza el reloj (tests).
func (uc *CartUseCase) WithClock(now func() time.Time) *CartUseCase {
	uc.now = now
	return uc
}

// TTL ventana de vida configurada.
func (uc *CartUseCase) TTL() time.Duration { return uc.ttl }

// Load carga el carrito del dueño. Un carrito vencido se borra y se devuelve vacío.
func (uc *CartUseCase) Load(ctx context.Context, owner string) (*domaincart.Cart, error) {
	c, err := uc.store.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return domaincart.New(owner), nil
	}
	if c.Expired(uc.now(), uc.ttl) {
		if err := uc.store.Delete(ctx, owner); err != nil {
			return nil, err
		}
		uc.log.Info().Str("owner", owner).Int("items", len(c.Items)).Msg("carrito vencido eliminado")
		return domaincart.New(owner), nil
	}
	return c, nil
}

// Get devuelve el carrito con su cuenta regresiva.
func (uc *CartUseCase) Get(ctx context.Context, owner string) (*dto.CartResponse, error) {
	c, err := uc.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(c, false), nil
}

// Add agrega una unidad del producto (o suma uno si ya estaba) y abre el carrito.
func (uc *CartUseCase) Add(ctx context.Context, owner, productID string) (*dto.CartResponse, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if !product.IsActive() {
		return nil, domain.ErrProductInactive
	}
	c, err := uc.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	c.Add(domaincart.ItemFromProduct(product), uc.now())
	if err := uc.persist(ctx, c); err != nil {
		return nil, err
	}
	return uc.toResponse(c, true), nil
}

// Remove quita el producto del carrito.
func (uc *CartUseCase) Remove(ctx context.Context, owner, productID string) (*dto.CartResponse, error) {
	c, err := uc.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !c.Remove(productID, uc.now()) {
		return nil, domain.ErrProductNotFound
	}
	if err := uc.persist(ctx, c); err != nil {
		return nil, err
	}
	return uc.toResponse(c, false), nil
}

// UpdateQuantity fija la cantidad; qty <= 0 quita el producto.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, owner, productID string, qty int) (*dto.CartResponse, error) {
	c, err := uc.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !c.UpdateQuantity(productID, qty, uc.now()) {
		return nil, domain.ErrProductNotFound
	}
	if err := uc.persist(ctx, c); err != nil {
		return nil, err
	}
	return uc.toResponse(c, false), nil
}

// Open marca la apertura del carrito: reinicia la ventana de 24h si tiene productos.
func (uc *CartUseCase) Open(ctx context.Context, owner string) (*dto.CartResponse, error) {
	c, err := uc.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !c.IsEmpty() {
		c.Touch(uc.now())
		if err := uc.persist(ctx, c); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(c, true), nil
}

// Clear vacía el carrito.
func (uc *CartUseCase) Clear(ctx context.Context, owner string) error {
	return uc.store.Delete(ctx, owner)
}

// Merge pasa el carrito de visitante al del usuario al iniciar sesión y borra el de visitante.
func (uc *CartUseCase) Merge(ctx context.Context, guestOwner, userOwner string) (*dto.CartResponse, error) {
	guest, err := uc.Load(ctx, guestOwner)
	if err != nil {
		return nil, err
	}
	user, err := uc.Load(ctx, userOwner)
	if err != nil {
		return nil, err
	}
	if !guest.IsEmpty() {
		user.Merge(guest, uc.now())
		if err := uc.persist(ctx, user); err != nil {
			return nil, err
		}
		if err := uc.store.Delete(ctx, guestOwner); err != nil {
			return nil, err
		}
		uc.log.Info().Str("owner", userOwner).Int("items", len(guest.Items)).Msg("carrito de visitante fusionado")
	}
	return uc.toResponse(user, false), nil
}

// persist guarda el carrito; uno vacío se borra del store.
func (uc *CartUseCase) persist(ctx context.Context, c *domaincart.Cart) error {
	if c.IsEmpty() {
		return uc.store.Delete(ctx, c.Owner)
	}
	return uc.store.Save(ctx, c)
}

func (uc *CartUseCase) toResponse(c *domaincart.Cart, open bool) *dto.CartResponse {
	items := c.Items
	if items == nil {
		items = []domaincart.Item{}
	}
	total := c.Total()
	out := &dto.CartResponse{
		Owner:      c.Owner,
		Items:      items,
		Count:      c.Count(),
		Total:      total,
		TotalLabel: money.FormatInt(total),
		Open:       open,
	}
	now := uc.now()
	if remaining, ok := c.Remaining(now, uc.ttl); ok {
		exp := c.ExpiresAt(uc.ttl)
		out.ExpiresAt = &exp
		out.Remaining = &remaining
	} else if !c.Timestamp.IsZero() {
		out.Expired = true
	}
	return out
}
