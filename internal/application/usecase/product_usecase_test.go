package usecase_test

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonekids/zonekids-api/internal/application/apptest"
	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/application/usecase"
	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
)

// mapCache caché en memoria con JSON, igual que el de Redis.
type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	hits    int
	deletes int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dest)
}

func (c *mapCache) Set(_ context.Context, key string, v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *mapCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
			c.deletes++
		}
	}
	return nil
}

func sampleProduct(id, name, cat string, price int64) *entity.Product {
	return &entity.Product{
		ID: id, Name: name, Category: cat, Price: price, Stock: 10,
		Status: entity.ProductStatusActive, ImageURLs: []string{"/uploads/a.png", "/uploads/b.png"},
	}
}

func validRequest() dto.ProductRequest {
	return dto.ProductRequest{
		Name:      "Polera rayas",
		Price:     9990,
		Stock:     3,
		Category:  "Niño",
		ImageURLs: []string{"/uploads/1.png", "/uploads/2.png"},
	}
}

func TestProductUseCase_CreateYGet(t *testing.T) {
	repo := apptest.NewProducts()
	uc := usecase.NewProductUseCase(repo, nil, nil)
	ctx := context.Background()

	out, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.ProductStatusActive, out.Status)
	assert.Equal(t, "$9.990", out.PriceLabel)

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Polera rayas", got.Name)

	missing, err := uc.GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductUseCase_UpdateConservaEstado(t *testing.T) {
	p := sampleProduct("p1", "Short", "Niño", 5000)
	p.Status = entity.ProductStatusInactive
	uc := usecase.NewProductUseCase(apptest.NewProducts(p), nil, nil)

	out, err := uc.Update(context.Background(), "p1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "Polera rayas", out.Name)
	assert.Equal(t, entity.ProductStatusInactive, out.Status)
}

func TestProductUseCase_ListUsaCacheEInvalida(t *testing.T) {
	cache := newMapCache()
	uc := usecase.NewProductUseCase(apptest.NewProducts(sampleProduct("p1", "Polera", "Niño", 5000)), cache, nil)
	ctx := context.Background()

	first, err := uc.List(ctx, dto.ProductQuery{Category: "niño"})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := uc.List(ctx, dto.ProductQuery{Category: "niño"})
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 1, cache.hits)

	_, err = uc.SetStatus(ctx, "p1", entity.ProductStatusInactive)
	require.NoError(t, err)
	assert.Empty(t, cache.data)
}

func TestProductUseCase_ListFiltros(t *testing.T) {
	a := sampleProduct("a", "Polera", "Niño", 5000)
	a.IsNew = true
	b := sampleProduct("b", "Vestido", "Niña", 8000)
	b.OnSale = true
	uc := usecase.NewProductUseCase(apptest.NewProducts(a, b), nil, nil)
	ctx := context.Background()

	got, err := uc.List(ctx, dto.ProductQuery{IsNew: "true"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	got, err = uc.List(ctx, dto.ProductQuery{Q: "vest"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestProductUseCase_SetStatusInvalido(t *testing.T) {
	uc := usecase.NewProductUseCase(apptest.NewProducts(), nil, nil)
	_, err := uc.SetStatus(context.Background(), "p1", "borrado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_SetImages(t *testing.T) {
	uc := usecase.NewProductUseCase(apptest.NewProducts(sampleProduct("p1", "Polera", "Niño", 5000)), nil, nil)
	ctx := context.Background()

	out, err := uc.SetImages(ctx, "p1", []string{"/x/1.png", "/x/2.png", "/x/3.png"})
	require.NoError(t, err)
	assert.Len(t, out.ImageURLs, 3)

	_, err = uc.SetImages(ctx, "p1", []string{"/x/1.png"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_Similar(t *testing.T) {
	ref := sampleProduct("ref", "Polera", "Niño", 10000)
	near := sampleProduct("near", "Polera azul", "niño", 11000)
	far := sampleProduct("far", "Set calcetines bebé recién nacido", "Bebé", 40000)
	off := sampleProduct("off", "Polera", "Niño", 10000)
	off.Status = entity.ProductStatusInactive
	uc := usecase.NewProductUseCase(apptest.NewProducts(ref, near, far, off), nil, nil)

	got, err := uc.Similar(context.Background(), "ref", false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].ID)
	assert.Equal(t, 85, got[0].Score)
	assert.Equal(t, "far", got[1].ID)

	none, err := uc.Similar(context.Background(), "nope", true)
	require.NoError(t, err)
	assert.Nil(t, none)

	hidden, err := uc.Similar(context.Background(), "off", false)
	require.NoError(t, err)
	assert.Nil(t, hidden)

	staff, err := uc.Similar(context.Background(), "off", true)
	require.NoError(t, err)
	require.NotEmpty(t, staff)
	assert.Equal(t, "ref", staff[0].ID)
}
