// Package memory almacenamiento de carritos en proceso, para desarrollo sin Redis y tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/zonekids/zonekids-api/internal/domain/cart"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
	"github.com/zonekids/zonekids-api/pkg/logger"
)

var _ repository.CartStore = (*CartStore)(nil)

// CartStore carritos en un map protegido por mutex. Guarda copias: el llamador
// puede modificar lo que recibe sin afectar lo almacenado.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart
	ttl   time.Duration
	now   func() time.Time
	log   *logger.Logger
}

// NewCartStore crea el store. ttl es la ventana que usa el janitor para borrar vencidos.
func NewCartStore(ttl time.Duration, log *logger.Logger) *CartStore {
	if ttl <= 0 {
		ttl = cart.DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CartStore{carts: make(map[string]*cart.Cart), ttl: ttl, now: time.Now, log: log.Named("cart_store")}
}

// WithClock reemplaza el reloj (tests).
func (s *CartStore) WithClock(now func() time.Time) *CartStore {
	s.now = now
	return s
}

// Load devuelve una copia del carrito o nil, nil si no existe.
func (s *CartStore) Load(_ context.Context, owner string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[owner]
	if !ok {
		return nil, nil
	}
	return clone(c), nil
}

// Save reemplaza el carrito del dueño.
func (s *CartStore) Save(_ context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.Owner] = clone(c)
	return nil
}

// Delete borra el carrito del dueño (no falla si no existe).
func (s *CartStore) Delete(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, owner)
	return nil
}

// Len cantidad de carritos guardados.
func (s *CartStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// Sweep borra los carritos vencidos y devuelve cuántos eliminó.
func (s *CartStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for owner, c := range s.carts {
		if c.Expired(now, s.ttl) {
			delete(s.carts, owner)
			removed++
		}
	}
	return removed
}

// JanitorInterval frecuencia de barrido de carritos vencidos.
const JanitorInterval = time.Second

// StartJanitor revisa vencimientos cada interval hasta que ctx se cancele.
func (s *CartStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = JanitorInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					s.log.Debug().Int("carritos", n).Msg("carritos vencidos eliminados")
				}
			}
		}
	}()
}

func clone(c *cart.Cart) *cart.Cart {
	cp := *c
	cp.Items = make([]cart.Item, len(c.Items))
	for i, it := range c.Items {
		it.ImageURLs = append([]string(nil), it.ImageURLs...)
		cp.Items[i] = it
	}
	return &cp
}
