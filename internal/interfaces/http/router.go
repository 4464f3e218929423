package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TransactionUC  *billing.TransactionUseCase
	DocumentUC     *billing.DocumentUseCase
	CustomerUC     *billing.CustomerUseCase
	ProductUC      *usecase.ProductUseCase
	StoreProfileUC *usecase.StoreProfileUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Impuestos (sin persistencia)
	taxHandler := NewTaxHandler()
	api.Post("/taxes/preview", taxHandler.Preview)

	// Transacciones y emisión de documentos
	transactions := api.Group("/transactions")
	trxHandler := NewTransactionHandler(deps.TransactionUC)
	docHandler := NewDocumentHandler(deps.DocumentUC)
	transactions.Post("/", trxHandler.Create)
	transactions.Get("/", trxHandler.List)
	transactions.Get("/:id", trxHandler.GetByID)
	transactions.Post("/:id/documents", docHandler.Issue)

	api.Get("/documents/:id/content", docHandler.Content)

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Delete("/:id", productHandler.Delete)

	// Clientes
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Perfil de la tienda
	storeHandler := NewStoreProfileHandler(deps.StoreProfileUC)
	api.Get("/store-profile", storeHandler.Get)
	api.Put("/store-profile", storeHandler.Upsert)
}
