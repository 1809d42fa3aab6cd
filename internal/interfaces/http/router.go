package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cafeteria-stock/internal/application/auth"
	"github.com/tu-usuario/cafeteria-stock/internal/application/inventory"
	"github.com/tu-usuario/cafeteria-stock/internal/application/usecase"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	TransferUC  *inventory.TransferUseCase
	EntryUC     *inventory.EntryUseCase
	SaleUC      *inventory.SaleUseCase
	ShrinkageUC *inventory.ShrinkageUseCase
	QueryUC     *inventory.QueryUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (protegido; el borrado en cascada solo para admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Traslados + libro de transacciones (protegido)
	transferHandler := NewTransferHandler(deps.TransferUC, deps.EntryUC, deps.QueryUC)
	transfers := protected.Group("/transfers")
	transfers.Post("/", transferHandler.Transfer)
	transfers.Get("/", transferHandler.ListLedger)
	protected.Post("/entries", transferHandler.RegisterEntry)

	// Ventas (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.QueryUC)
	sales.Post("/", saleHandler.Record)
	sales.Get("/", saleHandler.List)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Reverse)

	// Mermas (protegido)
	losses := protected.Group("/losses")
	shrinkageHandler := NewShrinkageHandler(deps.ShrinkageUC, deps.QueryUC)
	losses.Post("/", shrinkageHandler.Record)
	losses.Get("/", shrinkageHandler.List)
	losses.Delete("/:id", shrinkageHandler.Reverse)

	// Saldos y gastos (protegido)
	stockHandler := NewStockHandler(deps.QueryUC)
	stock := protected.Group("/stock")
	stock.Get("/locations/:location", stockHandler.LocationBalances)
	stock.Get("/products/:id", stockHandler.ProductStock)
	protected.Get("/expenses", stockHandler.ListExpenses)
}
