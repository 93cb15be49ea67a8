package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/zonekids/zonekids-api/internal/application/analytics"
	"github.com/zonekids/zonekids-api/internal/application/auth"
	cartuc "github.com/zonekids/zonekids-api/internal/application/cart"
	"github.com/zonekids/zonekids-api/internal/application/checkout"
	"github.com/zonekids/zonekids-api/internal/application/usecase"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	UserUC         *usecase.UserUseCase
	PersonalDataUC *usecase.PersonalDataUseCase
	CartUC         *cartuc.CartUseCase
	CheckoutUC     *checkout.CheckoutUseCase
	OrderUC        *checkout.OrderUseCase
	VoucherUC      *checkout.VoucherUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	Images         imageSaver
	Health         *HealthHandler
	LoginLimiter   *IPRateLimiter
	JWTSecret      string
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Health)
	}

	api := app.Group("/api/v1")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	optionalAuth := OptionalAuth(deps.JWTSecret)
	staff := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	if deps.LoginLimiter != nil {
		authGroup.Post("/login", deps.LoginLimiter.Middleware(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Catálogo (lectura pública; el token solo amplía lo visible para staff)
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/productos")
	products.Get("/", optionalAuth, productHandler.List)
	products.Get("/:id", optionalAuth, productHandler.GetByID)
	products.Get("/:id/similares", optionalAuth, productHandler.Similar)
	products.Post("/", requireAuth, staff, productHandler.Create)
	products.Put("/:id", requireAuth, staff, productHandler.Update)
	products.Patch("/:id/estado", requireAuth, staff, productHandler.SetStatus)
	products.Patch("/:id/imagenes", requireAuth, staff, productHandler.SetImages)
	products.Delete("/:id", requireAuth, staff, productHandler.Delete)

	// Upload de imágenes
	if deps.Images != nil {
		uploadHandler := NewUploadHandler(deps.Images)
		upload := api.Group("/upload", requireAuth, staff)
		upload.Post("/imagen", uploadHandler.UploadOne)
		upload.Post("/imagenes", uploadHandler.UploadMany)
	}

	// Usuarios (admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/usuarios", requireAuth, adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/estado", userHandler.SetStatus)
	users.Delete("/:id", userHandler.Delete)

	// Carrito (invitado con X-Cart-Token o usuario autenticado)
	cartHandler := NewCartHandler(deps.CartUC)
	cart := api.Group("/carrito")
	cart.Get("/", optionalAuth, cartHandler.Get)
	cart.Delete("/", optionalAuth, cartHandler.Clear)
	cart.Post("/abrir", optionalAuth, cartHandler.Open)
	cart.Post("/items", optionalAuth, cartHandler.Add)
	cart.Put("/items/:productoId", optionalAuth, cartHandler.UpdateQuantity)
	cart.Delete("/items/:productoId", optionalAuth, cartHandler.Remove)
	cart.Post("/fusionar", requireAuth, cartHandler.Merge)

	// Checkout
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	co := api.Group("/checkout")
	co.Post("/cupon", checkoutHandler.ApplyCoupon)
	co.Post("/resumen", optionalAuth, checkoutHandler.Summary)
	co.Post("/", requireAuth, checkoutHandler.PlaceOrder)

	// Órdenes e historial de compras
	orderHandler := NewOrderHandler(deps.OrderUC, deps.VoucherUC)
	orders := api.Group("/ordenes", requireAuth)
	orders.Get("/", adminOnly, orderHandler.ListAll)
	orders.Get("/mias", orderHandler.ListMine)
	orders.Get("/:id", orderHandler.Get)
	orders.Get("/:id/boleta.pdf", orderHandler.VoucherPDF)
	orders.Get("/:id/boleta.html", orderHandler.VoucherHTML)
	orders.Patch("/:id/pagar", adminOnly, orderHandler.MarkPaid)
	orders.Patch("/:id/cancelar", adminOnly, orderHandler.Cancel)

	// Datos personales
	personalHandler := NewPersonalDataHandler(deps.PersonalDataUC)
	personal := api.Group("/datos-personales", requireAuth)
	personal.Get("/", personalHandler.Get)
	personal.Put("/", personalHandler.Save)

	// Panel
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/admin/dashboard", requireAuth, adminOnly, dashboardHandler.GetSummary)
}
