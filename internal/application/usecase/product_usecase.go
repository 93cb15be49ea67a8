package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
	"github.com/zonekids/zonekids-api/internal/domain/similarity"
	"github.com/zonekids/zonekids-api/pkg/logger"
	"github.com/zonekids/zonekids-api/pkg/money"
)

// CatalogCache caché cache-aside de los listados del catálogo.
// Un error del caché nunca corta la lectura: se cae a la base de datos.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeletePattern(ctx context.Context, pattern string) error
}

const catalogKeyPrefix = "productos:"

// ProductUseCase casos de uso del catálogo: lectura pública y CRUD del panel.
type ProductUseCase struct {
	repo  repository.ProductRepository
	cache CatalogCache // opcional
	log   *logger.Logger
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, cache CatalogCache, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, cache: cache, log: log.Named("productos")}
}

// Create crea un producto. Estado por defecto: activo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	applyProductRequest(product, in)
	product.UpdatedAt = now
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update reemplaza todos los campos editables. Gana la última escritura.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	status := product.Status
	applyProductRequest(product, in)
	if in.Status == "" {
		product.Status = status
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toProductResponse(product), nil
}

// SetStatus activa o desactiva el producto y devuelve el nuevo estado.
func (uc *ProductUseCase) SetStatus(ctx context.Context, id, status string) (*dto.ProductStatusResponse, error) {
	if status != entity.ProductStatusActive && status != entity.ProductStatusInactive {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return &dto.ProductStatusResponse{ID: id, Status: status}, nil
}

// SetImages reemplaza las imágenes (2 a 3 URLs).
func (uc *ProductUseCase) SetImages(ctx context.Context, id string, urls []string) (*dto.ProductResponse, error) {
	if len(urls) < 2 || len(urls) > 3 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.UpdateImages(ctx, id, urls); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return uc.GetByID(ctx, id)
}

// List lista el catálogo con filtros. Los resultados pasan por el caché si está configurado.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductQuery) ([]dto.ProductResponse, error) {
	filter := repository.ProductFilter{
		Category: strings.TrimSpace(q.Category),
		Query:    strings.TrimSpace(q.Q),
		Status:   q.Status,
		IsNew:    parseBool(q.IsNew),
		OnSale:   parseBool(q.OnSale),
		Limit:    dto.ClampLimit(q.Limit),
	}
	key := catalogKey(filter)

	if uc.cache != nil {
		var cached []dto.ProductResponse
		hit, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("caché de catálogo no disponible")
		} else if hit {
			return cached, nil
		}
	}

	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, items); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el catálogo en caché")
		}
	}
	return items, nil
}

// Similar sugiere hasta 5 productos activos parecidos al producto id.
// nil, nil si no existe, o si está inactivo y withInactive es false.
func (uc *ProductUseCase) Similar(ctx context.Context, id string, withInactive bool) ([]dto.SimilarProductResponse, error) {
	ref, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ref == nil || (!ref.IsActive() && !withInactive) {
		return nil, nil
	}
	all, err := uc.repo.List(ctx, repository.ProductFilter{Status: entity.ProductStatusActive, Limit: dto.MaxListLimit})
	if err != nil {
		return nil, err
	}
	ranked := similarity.Rank(ref, all, similarity.DefaultLimit)
	out := make([]dto.SimilarProductResponse, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, dto.SimilarProductResponse{ProductResponse: *toProductResponse(s.Product), Score: s.Score})
	}
	return out, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(ctx, catalogKeyPrefix+"*"); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el caché de catálogo")
	}
}

func catalogKey(f repository.ProductFilter) string {
	b := func(v *bool) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprint(*v)
	}
	return fmt.Sprintf("%scat=%s|q=%s|estado=%s|nuevo=%s|oferta=%s|limit=%d",
		catalogKeyPrefix, strings.ToLower(f.Category), strings.ToLower(f.Query), f.Status, b(f.IsNew), b(f.OnSale), f.Limit)
}

func parseBool(s string) *bool {
	switch s {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func applyProductRequest(p *entity.Product, in dto.ProductRequest) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.Price = int64(in.Price)
	p.OriginalPrice = nil
	if in.OriginalPrice != nil {
		v := int64(*in.OriginalPrice)
		p.OriginalPrice = &v
	}
	p.Stock = in.Stock
	p.Category = strings.TrimSpace(in.Category)
	p.Status = in.Status
	if p.Status == "" {
		p.Status = entity.ProductStatusActive
	}
	p.IsNew = in.IsNew
	p.OnSale = in.OnSale
	p.ImageURLs = append([]string(nil), in.ImageURLs...)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	images := p.ImageURLs
	if images == nil {
		images = []string{}
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		PriceLabel:    money.FormatInt(p.Price),
		OriginalPrice: p.OriginalPrice,
		Stock:         p.Stock,
		Category:      p.Category,
		Status:        p.Status,
		IsNew:         p.IsNew,
		OnSale:        p.OnSale,
		ImageURLs:     images,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
