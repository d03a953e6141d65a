package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/MartinMaldo592/Mitiendaonline2026/docs"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/access"
	appanalytics "github.com/MartinMaldo592/Mitiendaonline2026/internal/application/analytics"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/auth"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/listing"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/orders"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/storefront"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/viewstate"
	infrapdf "github.com/MartinMaldo592/Mitiendaonline2026/internal/infrastructure/pdf"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/infrastructure/postgres"
	httpRouter "github.com/MartinMaldo592/Mitiendaonline2026/internal/interfaces/http"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/config"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/logger"
)

const (
	storeName    = "Blama Shop"
	writeTimeout = 10 * time.Second
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

	loc, err := time.LoadLocation(cfg.Store.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.Store.Timezone).Msg("zona horaria inválida, se usa la local")
		loc = time.Local
	}

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.DB); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	sessions := auth.NewSessionService(sessionRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
		RefreshTTL: time.Duration(cfg.JWT.RefreshTTLHours) * time.Hour,
		ReuseGrace: time.Duration(cfg.JWT.ReuseGraceSecs) * time.Second,
	})
	authUC := auth.NewAuthUseCase(userRepo, profileRepo, sessions, txRunner)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial verificado")
	}

	guard := access.NewGuard(sessions, access.NewProfileRoleResolver(profileRepo, log.Component("roles")), log.Component("access"))
	tracker := viewstate.NewTracker()

	dashboardUC := appanalytics.NewDashboardUseCase(orderRepo, customerRepo, productRepo, tracker, loc, log.Component("dashboard"))
	pendingUC := listing.NewPendingOrdersUseCase(orderRepo, tracker, log.Component("pendientes"))
	lowStockUC := listing.NewLowStockUseCase(productRepo, tracker, cfg.Store.LowStockThreshold, log.Component("stock-bajo"))
	catalogUC := storefront.NewCatalogUseCase(productRepo)
	ticketUC := orders.NewTicketUseCase(orderRepo, infrapdf.NewMarotoPDFGenerator(), storeName, loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: writeTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestContext(ctx, writeTimeout))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Store.SiteURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderRefreshToken,
		ExposeHeaders:    httpRouter.HeaderAccessToken,
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Blama Shop API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Guard:       guard,
		AuthUC:      authUC,
		DashboardUC: dashboardUC,
		PendingUC:   pendingUC,
		LowStockUC:  lowStockUC,
		CatalogUC:   catalogUC,
		TicketUC:    ticketUC,
		SiteURL:     cfg.Store.SiteURL,
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
