package access

import (
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
)

// Textos de la pantalla de acceso restringido.
const (
	DeniedTitle   = "Acceso Restringido"
	DeniedMessage = "No tienes permisos para acceder a esta sección. Esta sección está disponible solo para administradores."
)

var adminSidebar = []dto.NavLinkDTO{
	{Label: "Dashboard", Href: DashboardRoute},
	{Label: "Pedidos", Href: "/admin/pedidos"},
	{Label: "Productos", Href: "/admin/productos"},
	{Label: "Clientes", Href: "/admin/clientes"},
}

var workerSidebar = []dto.NavLinkDTO{
	{Label: "Dashboard", Href: DashboardRoute},
	{Label: "Mis Pedidos", Href: "/admin/pedidos"},
}

// Sidebar enlaces del menú lateral para el rol. Devuelve una copia.
func Sidebar(role entity.Role) []dto.NavLinkDTO {
	src := workerSidebar
	if role == entity.RoleAdmin {
		src = adminSidebar
	}
	out := make([]dto.NavLinkDTO, len(src))
	copy(out, src)
	return out
}

// DeniedAction única acción de la pantalla de acceso restringido.
func DeniedAction() dto.ActionDTO {
	return dto.ActionDTO{Label: "Volver al Dashboard", Href: DashboardRoute}
}
