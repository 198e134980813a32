package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/erp-lite/internal/application/auth"
	"github.com/tu-usuario/erp-lite/internal/application/sales"
	appsession "github.com/tu-usuario/erp-lite/internal/application/session"
	"github.com/tu-usuario/erp-lite/internal/application/usecase"
	infracache "github.com/tu-usuario/erp-lite/internal/infrastructure/cache"
	"github.com/tu-usuario/erp-lite/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/erp-lite/internal/interfaces/http"
	"github.com/tu-usuario/erp-lite/pkg/config"
	"github.com/tu-usuario/erp-lite/pkg/currency"
	"github.com/tu-usuario/erp-lite/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	sessionRepo := postgres.NewSessionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de sesiones opcional: sin SESSION_REDIS_ADDR el puente va directo a la DB.
	var sessionCache appsession.Cache
	if cfg.Session.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Session.RedisAddr,
			DB:   cfg.Session.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, sesiones sin cache")
		} else {
			sessionCache = infracache.NewSessionCache(rdb, time.Duration(cfg.Session.CacheTTL)*time.Second)
			log.Info().Str("addr", cfg.Session.RedisAddr).Msg("cache de sesiones habilitado")
		}
	}
	sessionBridge := appsession.NewBridge(sessionRepo, sessionCache)

	money := currency.New(cfg.App.Currency)

	authUC := auth.NewAuthUseCase(userRepo, sessionBridge, auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, productRepo)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, money)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	dashboardUC := usecase.NewDashboardUseCase(productRepo, invoiceRepo, ledgerRepo, money)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Guard de páginas: redirige por presencia de cookie, antes de cualquier ruta.
	app.Use(httpRouter.RouteGuard(cfg.Session.CookieName))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CreateSale:  createSaleUC,
		InvoiceUC:   invoiceUC,
		LedgerUC:    ledgerUC,
		CustomerUC:  customerUC,
		SupplierUC:  supplierUC,
		WarehouseUC: warehouseUC,
		DashboardUC: dashboardUC,
		Sessions:    sessionBridge,
		JWTSecret:   cfg.JWT.Secret,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
