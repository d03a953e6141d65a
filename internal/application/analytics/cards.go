package analytics

import (
	"strconv"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/format"
)

// BuildDashboardResponse arma las tarjetas visibles para el rol. El objeto numérico
// completo sólo viaja en la respuesta de administradores.
func BuildDashboardResponse(stats *dto.DashboardStats, role entity.Role) dto.DashboardResponse {
	if stats == nil {
		stats = &dto.DashboardStats{}
	}

	if role != entity.RoleAdmin {
		return dto.DashboardResponse{
			Role:     string(role),
			Title:    "Mi Panel",
			Subtitle: "Resumen de tus pedidos asignados",
			Cards: []dto.StatCardDTO{
				{Key: "asignados", Title: "Pedidos Asignados", Value: itoa(stats.AssignedToMeCount), Hint: "Pendientes de gestionar", Href: "/admin/pedidos"},
			},
			QuickLinks: []dto.NavLinkDTO{
				{Label: "Mis Pedidos", Href: "/admin/pedidos"},
			},
		}
	}

	return dto.DashboardResponse{
		Role:     string(role),
		Title:    "Dashboard General",
		Subtitle: "Resumen general de tu tienda",
		Cards: []dto.StatCardDTO{
			{Key: "ventas", Title: "Ventas (Entregado)", Value: format.Currency(stats.TotalRevenue), Hint: "Hoy: " + format.Currency(stats.TodayRevenue), Href: "/admin/dashboard/ventas"},
			{Key: "pendientes", Title: "Pedidos Pendientes", Value: itoa(stats.PendingCount), Hint: "Por atender", Href: "/admin/dashboard/pedidos-pendientes"},
			{Key: "en_proceso", Title: "En Proceso", Value: itoa(stats.InProgressCount), Hint: "Confirmado / Preparando / Enviado", Href: "/admin/dashboard/pedidos-en-proceso"},
			{Key: "stock_bajo", Title: "Stock Bajo", Value: itoa(stats.LowStockProducts), Hint: "Productos < 5 un.", Href: "/admin/dashboard/stock-bajo"},
			{Key: "clientes", Title: "Clientes Totales", Value: itoa(stats.TotalCustomers), Hint: "Base de datos", Href: "/admin/clientes"},
			{Key: "entregados", Title: "Pedidos Entregados", Value: itoa(stats.DeliveredCount), Hint: "Ventas completadas", Href: "/admin/dashboard/ventas"},
		},
		QuickLinks: []dto.NavLinkDTO{
			{Label: "Gestionar Pedidos", Href: "/admin/pedidos"},
			{Label: "Inventario", Href: "/admin/productos"},
		},
		Stats: stats,
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
