package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingOrderDTO fila de la vista de pedidos pendientes.
type PendingOrderDTO struct {
	ID             int64           `json:"id"`
	Number         string          `json:"number"` // id con relleno a 6 dígitos
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone"`
	CustomerDNI    string          `json:"customer_dni"`
}

// PendingSummary resumen local de la vista de pendientes.
type PendingSummary struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// PendingOrdersResponse respuesta de GET /api/admin/dashboard/pedidos-pendientes.
type PendingOrdersResponse struct {
	Orders     []PendingOrderDTO `json:"orders"`
	Summary    PendingSummary    `json:"summary"`
	Generation uint64            `json:"generation"`
}

// LowStockProductDTO fila de la vista de stock bajo.
type LowStockProductDTO struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	ImageURL string          `json:"image_url,omitempty"`
}

// LowStockSummary resumen local de la vista de stock bajo.
type LowStockSummary struct {
	Count                  int             `json:"count"`
	OutOfStockCount        int             `json:"out_of_stock_count"`
	ApproximateValueAtRisk decimal.Decimal `json:"approximate_value_at_risk"` // Σ precio × stock
}

// LowStockQuery parámetros de la vista de stock bajo.
type LowStockQuery struct {
	Threshold int `query:"threshold" validate:"min=0,max=100000"`
}

// LowStockResponse respuesta de GET /api/admin/dashboard/stock-bajo.
type LowStockResponse struct {
	Threshold  int                  `json:"threshold"`
	Products   []LowStockProductDTO `json:"products"`
	Summary    LowStockSummary      `json:"summary"`
	Generation uint64               `json:"generation"`
}
