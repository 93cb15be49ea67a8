package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/zonekids/zonekids-api/internal/domain/cart"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
)

var _ repository.CartStore = (*CartStore)(nil)

const cartKeyPrefix = "cart:"

// CartStore carritos serializados en JSON bajo "cart:<owner>". La expiración de la
// clave sigue al vencimiento del carrito, así Redis limpia los abandonados sin janitor.
type CartStore struct {
	client *goredis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewCartStore construye el store con la ventana de vida del carrito.
func NewCartStore(client *goredis.Client, ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = cart.DefaultTTL
	}
	return &CartStore{client: client, ttl: ttl, now: time.Now}
}

// Load nil, nil si no hay carrito.
func (s *CartStore) Load(ctx context.Context, owner string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+owner).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cart get: %w", err)
	}
	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("cart unmarshal: %w", err)
	}
	if c.Items == nil {
		c.Items = []cart.Item{}
	}
	return &c, nil
}

// Save guarda el carrito. Un carrito sin timestamp (vacío) se guarda con la ventana completa.
func (s *CartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart marshal: %w", err)
	}
	if err := s.client.Set(ctx, cartKeyPrefix+c.Owner, data, s.expiration(c)).Err(); err != nil {
		return fmt.Errorf("cart set: %w", err)
	}
	return nil
}

// Delete borra el carrito; no falla si no existe.
func (s *CartStore) Delete(ctx context.Context, owner string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+owner).Err(); err != nil {
		return fmt.Errorf("cart delete: %w", err)
	}
	return nil
}

func (s *CartStore) expiration(c *cart.Cart) time.Duration {
	if c.Timestamp.IsZero() {
		return s.ttl
	}
	left := c.ExpiresAt(s.ttl).Sub(s.now())
	if left < time.Second {
		// Redis rechaza TTL <= 0; el caso de uso descarta el carrito vencido al leerlo
		return time.Second
	}
	return left
}
