// Package apptest repositorios en memoria para los tests de la capa de aplicación.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository      = (*Products)(nil)
	_ repository.UserRepository         = (*Users)(nil)
	_ repository.OrderRepository        = (*Orders)(nil)
	_ repository.PersonalDataRepository = (*PersonalData)(nil)
)

// Products catálogo en memoria. Orden de List = orden de inserción.
type Products struct {
	mu    sync.Mutex
	items map[string]*entity.Product
	order []string
}

func NewProducts(ps ...*entity.Product) *Products {
	r := &Products{items: map[string]*entity.Product{}}
	for _, p := range ps {
		_ = r.Create(context.Background(), p)
	}
	return r
}

func (r *Products) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *Products) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *Products) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, _ := r.GetByID(ctx, id)
		if p != nil {
			out[id] = p
		}
	}
	return out, nil
}

func (r *Products) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *Products) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Status = status
	return nil
}

func (r *Products) UpdateImages(_ context.Context, id string, urls []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.ImageURLs = urls
	return nil
}

func (r *Products) DecrementStock(_ context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *Products) IncrementStock(_ context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

func (r *Products) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, id := range r.order {
		p, ok := r.items[id]
		if !ok {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.IsNew != nil && p.IsNew != *f.IsNew {
			continue
		}
		if f.OnSale != nil && p.OnSale != *f.OnSale {
			continue
		}
		if f.Query != "" {
			q := strings.ToLower(f.Query)
			if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
				continue
			}
		}
		cp := *p
		out = append(out, &cp)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *Products) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// Users usuarios en memoria.
type Users struct {
	mu    sync.Mutex
	items map[string]*entity.User
}

func NewUsers(us ...*entity.User) *Users {
	r := &Users{items: map[string]*entity.User{}}
	for _, u := range us {
		_ = r.Create(context.Background(), u)
	}
	return r
}

func (r *Users) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.items {
		if e.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *Users) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *Users) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *Users) List(_ context.Context, limit int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.items))
	for _, u := range r.items {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Users) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// Orders órdenes en memoria.
type Orders struct {
	mu    sync.Mutex
	items map[string]*entity.Order
	order []string
}

func NewOrders() *Orders {
	return &Orders{items: map[string]*entity.Order{}}
}

func (r *Orders) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.items[o.ID] = &cp
	r.order = append(r.order, o.ID)
	return nil
}

func (r *Orders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *Orders) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for i := len(r.order) - 1; i >= 0; i-- {
		if o := r.items[r.order[i]]; o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *Orders) List(_ context.Context, limit int) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for i := len(r.order) - 1; i >= 0; i-- {
		cp := *r.items[r.order[i]]
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *Orders) TransitionStatus(_ context.Context, id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != from {
		return domain.ErrOrderNotPending
	}
	o.Status = to
	return nil
}

// PersonalData datos personales en memoria.
type PersonalData struct {
	mu    sync.Mutex
	items map[string]*entity.PersonalData
}

func NewPersonalData() *PersonalData {
	return &PersonalData{items: map[string]*entity.PersonalData{}}
}

func (r *PersonalData) GetByUser(_ context.Context, userID string) (*entity.PersonalData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[userID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *PersonalData) Upsert(_ context.Context, d *entity.PersonalData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.items[d.UserID] = &cp
	return nil
}

// TxRunner ejecuta fn sobre los repos en memoria. Sin rollback real: los tests
// que fallan a mitad de la transacción validan que no se haya escrito nada antes del error.
type TxRunner struct {
	Products *Products
	Orders   *Orders
}

func (t *TxRunner) Run(ctx context.Context, fn func(products repository.ProductRepository, orders repository.OrderRepository) error) error {
	return fn(t.Products, t.Orders)
}

// Dashboard conteos fijos.
type Dashboard struct {
	Total, Active, LowStock int
	UsersByRole             map[string]int
	OrdersByStatus          map[string]int
	RevenueValue            decimal.Decimal
	Err                     error
}

func (d *Dashboard) CountProducts(context.Context) (int, int, error) {
	return d.Total, d.Active, d.Err
}

func (d *Dashboard) CountLowStock(context.Context, int) (int, error) {
	return d.LowStock, d.Err
}

func (d *Dashboard) CountUsersByRole(context.Context) (map[string]int, error) {
	return d.UsersByRole, d.Err
}

func (d *Dashboard) CountOrdersByStatus(context.Context) (map[string]int, error) {
	return d.OrdersByStatus, d.Err
}

func (d *Dashboard) Revenue(context.Context, []string) (decimal.Decimal, error) {
	return d.RevenueValue, d.Err
}
