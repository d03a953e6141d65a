package dto

import "github.com/shopspring/decimal"

// DashboardStats métricas del panel; se calculan completas en cada consulta.
type DashboardStats struct {
	TotalRevenue            decimal.Decimal `json:"total_revenue"` // suma de pedidos Entregado
	TodayRevenue            decimal.Decimal `json:"today_revenue"`
	PendingCount            int             `json:"pending_count"`
	InProgressCount         int             `json:"in_progress_count"` // Confirmado / Preparando / Enviado
	DeliveredCount          int             `json:"delivered_count"`
	AssignedToMeCount       int             `json:"assigned_to_me_count"`
	TotalCustomers          int             `json:"total_customers"`    // sólo admin
	LowStockProducts        int             `json:"low_stock_products"` // sólo admin
	TotalOrders             int             `json:"total_orders"`
	UnrecognizedStatusCount int             `json:"unrecognized_status_count"`
}

// StatCardDTO tarjeta del dashboard, ya formateada para mostrar.
type StatCardDTO struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value string `json:"value"`
	Hint  string `json:"hint"`
	Href  string `json:"href"`
}

// DashboardResponse respuesta de GET /api/admin/dashboard.
// Stats sólo se incluye para administradores.
type DashboardResponse struct {
	Role       string          `json:"role"`
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	Cards      []StatCardDTO   `json:"cards"`
	QuickLinks []NavLinkDTO    `json:"quick_links"`
	Stats      *DashboardStats `json:"stats,omitempty"`
}
