package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonekids/zonekids-api/internal/domain/cart"
)

func sampleCart(owner string, ts time.Time) *cart.Cart {
	c := cart.New(owner)
	c.Add(cart.Item{ProductID: "p1", Name: "Polera", Price: 5000, ImageURLs: []string{"/a.png"}}, ts)
	return c
}

func TestCartStore_SaveLoadCopia(t *testing.T) {
	s := NewCartStore(cart.DefaultTTL, nil)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Save(ctx, sampleCart("user:1", now)))

	got, err := s.Load(ctx, "user:1")
	require.NoError(t, err)
	require.NotNil(t, got)
	got.Items[0].Quantity = 99
	got.Items[0].ImageURLs[0] = "/cambiada.png"

	again, _ := s.Load(ctx, "user:1")
	assert.Equal(t, 1, again.Items[0].Quantity)
	assert.Equal(t, "/a.png", again.Items[0].ImageURLs[0])

	missing, err := s.Load(ctx, "user:2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCartStore_SweepBorraVencidos(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	s := NewCartStore(24*time.Hour, nil).WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleCart("guest:viejo", now.Add(-25*time.Hour))))
	require.NoError(t, s.Save(ctx, sampleCart("guest:nuevo", now.Add(-time.Hour))))

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
	c, _ := s.Load(ctx, "guest:nuevo")
	assert.NotNil(t, c)
}

func TestCartStore_JanitorCorreHastaCancelar(t *testing.T) {
	now := time.Now()
	s := NewCartStore(time.Hour, nil)
	require.NoError(t, s.Save(context.Background(), sampleCart("guest:x", now.Add(-2*time.Hour))))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartJanitor(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestCartStore_JanitorPorDefectoCadaSegundo(t *testing.T) {
	assert.Equal(t, time.Second, JanitorInterval)

	now := time.Now()
	s := NewCartStore(time.Hour, nil)
	require.NoError(t, s.Save(context.Background(), sampleCart("guest:y", now.Add(-2*time.Hour))))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartJanitor(ctx, JanitorInterval)

	assert.Eventually(t, func() bool { return s.Len() == 0 }, 3*JanitorInterval, 50*time.Millisecond)
}
