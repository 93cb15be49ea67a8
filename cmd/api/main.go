package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/zonekids/zonekids-api/internal/application/analytics"
	"github.com/zonekids/zonekids-api/internal/application/auth"
	cartuc "github.com/zonekids/zonekids-api/internal/application/cart"
	"github.com/zonekids/zonekids-api/internal/application/checkout"
	"github.com/zonekids/zonekids-api/internal/application/usecase"
	domcheckout "github.com/zonekids/zonekids-api/internal/domain/checkout"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
	infrahtml "github.com/zonekids/zonekids-api/internal/infrastructure/html"
	"github.com/zonekids/zonekids-api/internal/infrastructure/memory"
	infrapdf "github.com/zonekids/zonekids-api/internal/infrastructure/pdf"
	"github.com/zonekids/zonekids-api/internal/infrastructure/postgres"
	infraredis "github.com/zonekids/zonekids-api/internal/infrastructure/redis"
	"github.com/zonekids/zonekids-api/internal/infrastructure/storage"
	httpRouter "github.com/zonekids/zonekids-api/internal/interfaces/http"
	"github.com/zonekids/zonekids-api/pkg/config"
	"github.com/zonekids/zonekids-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	personalRepo := postgres.NewPersonalDataRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	checks := map[string]httpRouter.Pinger{"postgres": pool}
	var stats func() interface{}

	// Carrito y caché: Redis si está configurado; si no, carrito en memoria y sin caché.
	var cartStore repository.CartStore
	var catalogCache usecase.CatalogCache
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()

		cache := infraredis.NewCatalogCache(rdb, "zonekids:", cfg.Redis.CatalogCacheTTL)
		cartStore = infraredis.NewCartStore(rdb, cfg.Store.CartTTL)
		catalogCache = cache
		checks["redis"] = cache
		stats = func() interface{} { return cache.Stats() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("carrito y caché de catálogo en Redis")
	} else {
		mem := memory.NewCartStore(cfg.Store.CartTTL, log)
		mem.StartJanitor(ctx, memory.JanitorInterval)
		cartStore = mem
		log.Warn().Msg("REDIS_ADDR vacío: carrito en memoria, se pierde al reiniciar")
	}

	images, err := storage.NewImageStore(cfg.Uploads.Dir, cfg.Uploads.MaxBytes, log)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Uploads.Dir).Msg("directorio de imágenes")
	}

	rates := domcheckout.Rates{IVA: cfg.Store.IVARate, Shipping: cfg.Store.ShippingCost}

	authUC := auth.NewAuthUseCase(userRepo, personalRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Admin.OwnerEmail, log)
	productUC := usecase.NewProductUseCase(productRepo, catalogCache, log)
	userUC := usecase.NewUserUseCase(userRepo, cfg.Admin.OwnerEmail, log)
	personalUC := usecase.NewPersonalDataUseCase(personalRepo)
	cartUC := cartuc.NewCartUseCase(cartStore, productRepo, cfg.Store.CartTTL, log)
	checkoutUC := checkout.NewCheckoutUseCase(cartUC, productRepo, userRepo, txRunner, rates, log)
	orderUC := checkout.NewOrderUseCase(orderRepo, txRunner, log)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo)

	// Boleta: PDF con maroto y HTML imprimible
	renderer, err := infrahtml.NewVoucherRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("plantilla de boleta")
	}
	voucherUC := checkout.NewVoucherUseCase(orderUC, infrapdf.NewMarotoPDFGenerator(), renderer)

	loginLimiter := httpRouter.NewIPRateLimiter(cfg.Login.RatePerSec, cfg.Login.Burst)
	loginLimiter.StartCleanup(ctx, 5*time.Minute)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Uploads.MaxBytes) * 4,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderCartToken + ", " + httpRouter.HeaderRequestID,
		ExposeHeaders: httpRouter.HeaderCartToken + ", " + httpRouter.HeaderRequestID,
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ZoneKids API",
	}))

	app.Static(storage.PublicPrefix, images.Dir())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		UserUC:         userUC,
		PersonalDataUC: personalUC,
		CartUC:         cartUC,
		CheckoutUC:     checkoutUC,
		OrderUC:        orderUC,
		VoucherUC:      voucherUC,
		DashboardUC:    dashboardUC,
		Images:         images,
		Health:         httpRouter.NewHealthHandler(checks, stats),
		LoginLimiter:   loginLimiter,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
