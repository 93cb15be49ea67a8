// seed crea la cuenta dueña (ADMIN_OWNER_EMAIL) y un catálogo de demostración.
//
// Uso: go run ./cmd/seed [--sin-catalogo]
// Es idempotente: si el dueño existe se asegura de que tenga rol admin y esté activo;
// el catálogo solo se carga cuando la tabla de productos está vacía.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
	"github.com/zonekids/zonekids-api/internal/infrastructure/postgres"
	"github.com/zonekids/zonekids-api/pkg/config"
	"github.com/zonekids/zonekids-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	if err := seedOwner(ctx, postgres.NewUserRepository(pool), cfg.Admin); err != nil {
		log.Fatal().Err(err).Msg("cuenta dueña")
	}
	log.Info().Str("email", cfg.Admin.OwnerEmail).Msg("cuenta dueña lista")

	if len(os.Args) > 1 && os.Args[1] == "--sin-catalogo" {
		return
	}
	n, err := seedCatalog(ctx, postgres.NewProductRepository(pool))
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de demostración")
	}
	log.Info().Int("productos", n).Msg("catálogo cargado")
}

func seedOwner(ctx context.Context, users repository.UserRepository, cfg config.AdminConfig) error {
	if cfg.OwnerEmail == "" || cfg.OwnerPassword == "" {
		return fmt.Errorf("ADMIN_OWNER_EMAIL y ADMIN_OWNER_PASSWORD son obligatorios")
	}
	existing, err := users.GetByEmail(ctx, cfg.OwnerEmail)
	if err != nil {
		return err
	}
	now := time.Now()
	if existing != nil {
		if existing.Role == entity.RoleAdmin && existing.IsActive() {
			return nil
		}
		existing.Role = entity.RoleAdmin
		existing.Status = entity.UserStatusActive
		existing.UpdatedAt = now
		return users.Update(ctx, existing)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash contraseña: %w", err)
	}
	return users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Name:         cfg.OwnerName,
		Email:        cfg.OwnerEmail,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

type demoProduct struct {
	name, description, category string
	price, original, stock      int64
	isNew, onSale               bool
}

var demoCatalog = []demoProduct{
	{"Polera Dino Explorador", "Polera de algodón con estampado de dinosaurios.", "Poleras", 8990, 0, 25, true, false},
	{"Polera Rayas Marinas", "Polera manga corta a rayas, ideal para el verano.", "Poleras", 7990, 9990, 18, false, true},
	{"Vestido Flores de Campo", "Vestido liviano con estampado floral.", "Vestidos", 15990, 0, 10, true, false},
	{"Vestido Tul Princesa", "Vestido de fiesta con falda de tul.", "Vestidos", 19990, 24990, 6, false, true},
	{"Jeans Elasticado", "Pantalón de mezclilla con cintura elasticada.", "Pantalones", 12990, 0, 20, false, false},
	{"Buzo Deportivo", "Buzo de polar con puños ajustables.", "Pantalones", 10990, 13990, 14, false, true},
	{"Polerón Osito", "Polerón con capucha y orejitas de oso.", "Polerones", 16990, 0, 12, true, false},
	{"Short Cargo", "Short con bolsillos laterales.", "Shorts", 8490, 0, 15, false, false},
	{"Gorro de Lana Pompón", "Gorro tejido con pompón.", "Accesorios", 4990, 0, 30, false, false},
	{"Pijama Estrellas", "Pijama de dos piezas que brilla en la oscuridad.", "Pijamas", 13990, 0, 9, true, false},
}

func seedCatalog(ctx context.Context, products repository.ProductRepository) (int, error) {
	current, err := products.List(ctx, repository.ProductFilter{Limit: 1})
	if err != nil {
		return 0, err
	}
	if len(current) > 0 {
		return 0, nil
	}
	now := time.Now()
	for i, d := range demoCatalog {
		p := &entity.Product{
			ID:          uuid.New().String(),
			Name:        d.name,
			Description: d.description,
			Price:       d.price,
			Stock:       int(d.stock),
			Category:    d.category,
			Status:      entity.ProductStatusActive,
			IsNew:       d.isNew,
			OnSale:      d.onSale,
			ImageURLs: []string{
				fmt.Sprintf("/uploads/demo/%02d-a.jpg", i+1),
				fmt.Sprintf("/uploads/demo/%02d-b.jpg", i+1),
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if d.original > 0 {
			orig := d.original
			p.OriginalPrice = &orig
		}
		if err := products.Create(ctx, p); err != nil {
			return i, fmt.Errorf("producto %q: %w", d.name, err)
		}
	}
	return len(demoCatalog), nil
}
