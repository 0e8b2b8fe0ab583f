package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	RecordMovement   *inventory.RecordMovementUseCase
	StockQuery       *inventory.StockQueryUseCase
	JWTSecret        string // vacío = rutas administrativas abiertas
	Log              *logger.Logger
}

// Router registra las rutas de la API bajo "/" y "/api": el frontend original
// consume ambos prefijos.
func Router(app *fiber.App, deps RouterDeps) {
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	transactionHandler := NewTransactionHandler(deps.RecordMovement, deps.StockQuery, deps.Log)
	inventoryHandler := NewInventoryHandler(deps.StockQuery, deps.Log)

	register := func(r fiber.Router) {
		// Products (catálogo)
		products := r.Group("/products")
		products.Get("/", productHandler.List)
		products.Post("/", productHandler.Create)
		products.Get("/:id", productHandler.GetByID)
		// Mutaciones administrativas: protegidas solo si hay secret configurado.
		if deps.JWTSecret != "" {
			admin := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole("admin")}
			products.Put("/:id", append(admin, productHandler.Update)...)
			products.Delete("/:id", append(admin, productHandler.Delete)...)
		} else {
			products.Put("/:id", productHandler.Update)
			products.Delete("/:id", productHandler.Delete)
		}

		// Transactions (libro de movimientos, inmutable: sin PUT/DELETE)
		transactions := r.Group("/transactions")
		transactions.Get("/", transactionHandler.List)
		transactions.Post("/", transactionHandler.Create)
		// history debe registrarse antes de /:id para no colisionar.
		transactions.Get("/history/:product_name", transactionHandler.History)
		transactions.Get("/:id", transactionHandler.GetByID)

		// Vistas agregadas
		r.Get("/inventory-summary", inventoryHandler.Summary)
		r.Get("/inventory", inventoryHandler.StockLevels)
	}

	register(app)
	register(app.Group("/api"))
}
