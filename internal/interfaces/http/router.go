package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/erp-lite/internal/application/auth"
	"github.com/tu-usuario/erp-lite/internal/application/sales"
	appsession "github.com/tu-usuario/erp-lite/internal/application/session"
	"github.com/tu-usuario/erp-lite/internal/application/usecase"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
	"github.com/tu-usuario/erp-lite/internal/domain/rbac"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CreateSale  *sales.CreateSaleUseCase
	InvoiceUC   *usecase.InvoiceUseCase
	LedgerUC    *usecase.LedgerUseCase
	CustomerUC  *usecase.CustomerUseCase
	SupplierUC  *usecase.SupplierUseCase
	WarehouseUC *usecase.WarehouseUseCase
	DashboardUC *usecase.DashboardUseCase
	Sessions    *appsession.Bridge
	JWTSecret   string
	Cookie      CookieConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público: signup, login, session; signout solo necesita la cookie)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/session", authHandler.SetSession)
	authGroup.Post("/signout", authHandler.Signout)

	// Rutas protegidas: identidad resuelta por sesión de cookie en cada petición.
	protected := api.Group("/", SessionMiddleware(deps.Sessions, deps.JWTSecret, deps.Cookie.Name))

	protected.Get("/auth/me", authHandler.Me)

	// Dashboard (no visible para staff)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", RequireModule(rbac.ModuleDashboard), dashboardHandler.Metrics)

	// Products (inventario)
	products := protected.Group("/products", RequireModule(rbac.ModuleInventory))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Sales (venta compuesta) e invoices
	saleHandler := NewSaleHandler(deps.CreateSale)
	protected.Post("/sales", RequireModule(rbac.ModuleSales), saleHandler.Create)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	protected.Get("/invoices", RequireModule(rbac.ModuleSales), invoiceHandler.List)

	// Ledger (finanzas: módulo oculto para staff y rutas restringidas por rol)
	ledger := protected.Group("/ledger",
		RequireModule(rbac.ModuleFinance),
		RequireRole(entity.RoleAdmin, entity.RoleManager),
	)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledger.Post("/", ledgerHandler.Create)
	ledger.Get("/", ledgerHandler.List)
	ledger.Get("/summary", ledgerHandler.Summary)

	// Customers (CRM)
	customers := protected.Group("/customers", RequireModule(rbac.ModuleCustomers))
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers", RequireModule(rbac.ModuleSuppliers))
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Warehouses
	warehouses := protected.Group("/warehouses", RequireModule(rbac.ModuleWarehouses))
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)
}
