package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reinierstore/store-api/internal/application/analytics"
	"github.com/reinierstore/store-api/internal/application/auth"
	"github.com/reinierstore/store-api/internal/application/catalog"
	"github.com/reinierstore/store-api/internal/application/history"
	"github.com/reinierstore/store-api/internal/application/inventory"
	"github.com/reinierstore/store-api/internal/application/sales"
	"github.com/reinierstore/store-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	TransferUC    *inventory.TransferUseCase
	SaleUC        *sales.SaleUseCase
	ReturnUC      *sales.ReturnUseCase
	RegisterUC    *sales.RegisterUseCase
	HistoryUC     *history.HistoryUseCase
	CatalogUC     *catalog.CatalogUseCase
	DashboardUC   *analytics.DashboardUseCase
	SessionDays   int
	SecureCookies bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Protección por prefijo de área (/admin, /empleado), páginas y API
	app.Use(SessionMiddleware(deps.AuthUC))

	api := app.Group("/api")

	// Auth por cookie (los logins y endpoints de sesión son exentos)
	authHandler := NewAuthHandler(deps.AuthUC, deps.SessionDays, deps.SecureCookies)
	api.Post("/empleado/login", authHandler.EmployeeLogin)
	api.Post("/admin/auth/login", authHandler.AdminLogin)
	api.Get("/empleado/auth/session", authHandler.Session)
	api.Post("/empleado/auth/refresh", authHandler.Refresh)
	api.Post("/empleado/logout", authHandler.Logout)

	// Storefront (público)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/almacen-ventas", catalogHandler.Products)
	api.Get("/offers", catalogHandler.Offers)
	api.Get("/currencies", catalogHandler.Currencies)

	// Operación de tienda (empleado o admin, cookie requerida)
	staff := api.Group("/", RequireSession(deps.AuthUC))

	inventoryHandler := NewInventoryHandler(deps.TransferUC)
	staff.Post("/stock/move-to-store", inventoryHandler.MoveToStore)
	staff.Post("/warehouse-transfer/fill", inventoryHandler.Fill)
	staff.Get("/warehouse-transfer/products", inventoryHandler.ListProducts)

	salesHandler := NewSalesHandler(deps.SaleUC)
	staff.Get("/sales", salesHandler.List)
	staff.Post("/sales", salesHandler.Create)
	staff.Put("/sales/:id", salesHandler.Update)
	staff.Delete("/sales/:id", salesHandler.Delete)
	staff.Get("/sales/:id/receipt", salesHandler.Receipt)

	returnsHandler := NewReturnsHandler(deps.ReturnUC)
	staff.Get("/returns", returnsHandler.List)
	staff.Post("/returns", returnsHandler.Create)

	registerHandler := NewRegisterHandler(deps.RegisterUC)
	staff.Get("/cash-register", registerHandler.Today)
	staff.Post("/cash-register", registerHandler.Snapshot)

	// Back-office (solo admin)
	admin := staff.Group("/", RequireRole(entity.RoleAdmin))
	admin.Put("/returns/:id", returnsHandler.Update)
	admin.Get("/cash-register/history", registerHandler.History)
	admin.Post("/currencies/refresh", catalogHandler.RefreshRates)
	admin.Get("/historial", NewHistoryHandler(deps.HistoryUC).Latest)
	admin.Get("/dashboard/stats", NewDashboardHandler(deps.DashboardUC).Stats)
	admin.Get("/users", authHandler.ListUsers)
}
