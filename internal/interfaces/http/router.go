package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/analytics"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/auth"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/listing"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/orders"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/storefront"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Guard       accessResolver
	AuthUC      *auth.AuthUseCase
	DashboardUC *analytics.DashboardUseCase
	PendingUC   *listing.PendingOrdersUseCase
	LowStockUC  *listing.LowStockUseCase
	CatalogUC   *storefront.CatalogUseCase
	TicketUC    *orders.TicketUseCase
	SiteURL     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)

	// Catálogo (público). El canonical sólo aplica al listado; la ficha se indexa con su propia URL.
	products := api.Group("/productos")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", CanonicalCatalog(deps.SiteURL), productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Panel: cada vista declara los roles que admite.
	anyRole := RequireAccess(deps.Guard, entity.RoleAdmin, entity.RoleWorker)
	adminOnly := RequireAccess(deps.Guard, entity.RoleAdmin)

	admin := api.Group("/admin")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	admin.Get("/session", anyRole, dashboardHandler.Session)
	admin.Get("/dashboard", anyRole, dashboardHandler.GetDashboard)

	listingHandler := NewListingHandler(deps.PendingUC, deps.LowStockUC)
	admin.Get("/dashboard/pedidos-pendientes", adminOnly, listingHandler.PendingOrders)
	admin.Get("/dashboard/stock-bajo", adminOnly, listingHandler.LowStock)

	ticketHandler := NewTicketHandler(deps.TicketUC)
	admin.Get("/pedidos/:id/ticket", anyRole, ticketHandler.Download)
}
