package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
	"github.com/zonekids/zonekids-api/pkg/config"
)

// Requiere PostgreSQL en TEST_DATABASE_URL; sin ella los tests se omiten.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definida")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	if err != nil {
		t.Skipf("PostgreSQL no disponible: %v", err)
	}
	require.NoError(t, EnsureSchema(ctx, pool))
	t.Cleanup(pool.Close)
	return pool
}

func newTestProduct(t *testing.T, pool *pgxpool.Pool, category string, stock int) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.NewString(), Name: "Polera test", Price: 9990, Stock: stock, Category: category,
		Status: entity.ProductStatusActive, ImageURLs: []string{"/a.png", "/b.png"}, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewProductRepository(pool).Create(context.Background(), p))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, p.ID) })
	return p
}

func newTestOrder(t *testing.T, pool *pgxpool.Pool, p *entity.Product) *entity.Order {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	u := &entity.User{
		ID: uuid.NewString(), Name: "Ana", Email: uuid.NewString() + "@zonekids.cl", PasswordHash: "x",
		Role: entity.RoleCliente, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewUserRepository(pool).Create(ctx, u))
	o := &entity.Order{
		ID: uuid.NewString(), Number: "BOL-TEST-" + uuid.NewString()[:8], UserID: u.ID, UserName: u.Name, UserEmail: u.Email,
		Status: entity.OrderStatusPending,
		Buyer:  entity.Buyer{Name: "Ana", Email: u.Email, RUT: "12345678-5", Address: "Av. Matta 100", Payment: entity.PaymentTransfer},
		Details: []entity.OrderDetail{
			{ProductID: p.ID, ProductName: p.Name, UnitPrice: p.Price, Quantity: 1, Subtotal: p.Price},
		},
		Subtotal: decimal.NewFromInt(p.Price), IVA: decimal.Zero, SubtotalWithIVA: decimal.NewFromInt(p.Price),
		DiscountPercent: decimal.Zero, Discount: decimal.Zero, Shipping: decimal.NewFromInt(3000),
		Total: decimal.NewFromInt(p.Price + 3000), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewOrderRepository(pool).Create(ctx, o))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, o.ID)
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return o
}

func TestProductRepo_DecrementStockNoBajaDeCero(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := NewProductRepository(pool)
	p := newTestProduct(t, pool, "test-"+uuid.NewString(), 2)

	require.NoError(t, repo.DecrementStock(ctx, p.ID, 2))
	assert.ErrorIs(t, repo.DecrementStock(ctx, p.ID, 1), domain.ErrInsufficientStock)
	assert.ErrorIs(t, repo.DecrementStock(ctx, uuid.NewString(), 1), domain.ErrInsufficientStock)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	require.NoError(t, repo.IncrementStock(ctx, p.ID, 3))
	assert.ErrorIs(t, repo.IncrementStock(ctx, uuid.NewString(), 1), domain.ErrProductNotFound)
}

func TestProductRepo_GetByIDs(t *testing.T) {
	pool := setupPool(t)
	cat := "test-" + uuid.NewString()
	a := newTestProduct(t, pool, cat, 1)
	b := newTestProduct(t, pool, cat, 1)

	got, err := NewProductRepository(pool).GetByIDs(context.Background(), []string{a.ID, b.ID, uuid.NewString()})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"/a.png", "/b.png"}, got[a.ID].ImageURLs)

	empty, err := NewProductRepository(pool).GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
}

func TestProductRepo_ListFiltros(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := NewProductRepository(pool)
	cat := "Test-" + uuid.NewString()
	active := newTestProduct(t, pool, cat, 1)
	inactive := newTestProduct(t, pool, cat, 1)
	require.NoError(t, repo.UpdateStatus(ctx, inactive.ID, entity.ProductStatusInactive))

	all, err := repo.List(ctx, repository.ProductFilter{Category: cat})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyActive, err := repo.List(ctx, repository.ProductFilter{Category: cat, Status: entity.ProductStatusActive})
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, active.ID, onlyActive[0].ID)

	// la categoría no distingue mayúsculas
	lower, err := repo.List(ctx, repository.ProductFilter{Category: "test-" + cat[len("Test-"):], Query: "polera", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, lower, 1)
}

func TestOrderRepo_TransitionStatus(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := NewOrderRepository(pool)
	o := newTestOrder(t, pool, newTestProduct(t, pool, "test-"+uuid.NewString(), 1))

	require.NoError(t, repo.TransitionStatus(ctx, o.ID, entity.OrderStatusPending, entity.OrderStatusPaid))
	assert.ErrorIs(t, repo.TransitionStatus(ctx, o.ID, entity.OrderStatusPending, entity.OrderStatusCancelled), domain.ErrOrderNotPending)
	assert.ErrorIs(t, repo.TransitionStatus(ctx, uuid.NewString(), entity.OrderStatusPending, entity.OrderStatusPaid), domain.ErrOrderNotFound)

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, got.Status)
	require.Len(t, got.Details, 1)
}

func TestTxRunner_CancelacionConcurrenteUnaSolaGana(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	p := newTestProduct(t, pool, "test-"+uuid.NewString(), 0)
	o := newTestOrder(t, pool, p)
	tx := NewTxRunner(pool)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = tx.Run(ctx, func(products repository.ProductRepository, orders repository.OrderRepository) error {
				if err := orders.TransitionStatus(ctx, o.ID, entity.OrderStatusPending, entity.OrderStatusCancelled); err != nil {
					return err
				}
				return products.IncrementStock(ctx, p.ID, 1)
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrOrderNotPending)
	}
	assert.Equal(t, 1, ok)

	got, err := NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)
}

func TestTxRunner_RollbackAlFallar(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	p := newTestProduct(t, pool, "test-"+uuid.NewString(), 3)
	boom := errors.New("falla después de descontar")

	err := NewTxRunner(pool).Run(ctx, func(products repository.ProductRepository, _ repository.OrderRepository) error {
		require.NoError(t, products.DecrementStock(ctx, p.ID, 2))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}
