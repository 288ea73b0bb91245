package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/application/receipt"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CatalogUC   *usecase.CatalogUseCase
	AccountUC   *usecase.AccountUseCase
	OrderUC     *ordering.OrderUseCase
	ReceiptUC   *receipt.ReceiptUseCase
	Tokens      TokenVerifier
	Revocations RevocationChecker
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	productHandler := NewProductHandler(deps.CatalogUC)
	userHandler := NewUserHandler(deps.AccountUC)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)

	access := AuthMiddleware(deps.Tokens, deps.Revocations)
	active := RequireActiveAccount(deps.AccountUC)
	admin := RequireRole(entity.RoleAdmin)

	// Auth
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", access, authHandler.Logout)
	authGroup.Post("/refresh", RefreshMiddleware(deps.Tokens, deps.Revocations), authHandler.Refresh)

	// Catálogo público: solo productos visibles. Las rutas fijas van antes de /:id.
	products := app.Group("/productos")
	products.Get("/", productHandler.List(true))
	products.Get("/categoria", productHandler.Categories)
	products.Get("/categoria/:categoria", productHandler.SearchByCategory(true))
	products.Get("/destacado", productHandler.Featured(true))
	products.Get("/nombre/:nombre", productHandler.SearchByName(true))
	products.Get("/:id", productHandler.GetByID)

	// Cuenta propia
	me := app.Group("/usuarios", access, active)
	me.Get("/me", userHandler.Me)
	me.Put("/me", userHandler.UpdateMe)

	// Administración
	adminGroup := app.Group("/admin", access, active, admin)

	adminProducts := adminGroup.Group("/productos")
	adminProducts.Get("/", productHandler.List(false))
	adminProducts.Post("/", productHandler.Create)
	adminProducts.Get("/nombre/:nombre", productHandler.SearchByName(false))
	adminProducts.Get("/categoria/:categoria", productHandler.SearchByCategory(false))
	adminProducts.Get("/destacado", productHandler.Featured(false))
	adminProducts.Get("/:id", productHandler.GetByID)
	adminProducts.Put("/:id", productHandler.Update)
	adminProducts.Delete("/:id", productHandler.Delete)

	adminUsers := adminGroup.Group("/usuarios")
	adminUsers.Get("/", userHandler.List)
	adminUsers.Get("/:id", userHandler.GetByID)
	adminUsers.Put("/:id", userHandler.Update)
	adminUsers.Delete("/:id", userHandler.Deactivate)

	// Pedidos
	orders := app.Group("/pedidos", access, active)
	orders.Post("/", orderHandler.Create)
	orders.Get("/me", orderHandler.Mine)
	orders.Get("/", admin, orderHandler.List)
	orders.Get("/usuario/:id", admin, orderHandler.ByUser)
	orders.Get("/producto/:codigo", admin, orderHandler.ByProduct)
	orders.Get("/:id/comprobante", orderHandler.Receipt)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", admin, orderHandler.Update)
	orders.Delete("/:id/cancelar", orderHandler.Cancel)
	orders.Delete("/:id", admin, orderHandler.Delete)
}

// Health responde el estado del servicio.
func Health(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}

// NewApp construye la aplicación Fiber con el manejador de errores de la API.
// UnescapePath permite buscar por nombres con tildes o espacios codificados en la URL.
func NewApp(name string, bodyLimitMB int) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      name,
		ErrorHandler: ErrorHandler,
		BodyLimit:    bodyLimitMB * 1024 * 1024,
		UnescapePath: true,
	})
}
