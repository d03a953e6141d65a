// Package listing implementa las vistas filtradas del dashboard: pedidos pendientes y
// productos con stock bajo. Cada carga se registra en el tracker de vistas; una carga
// superada no publica su resultado.
package listing

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/viewstate"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/format"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/logger"
)

const (
	ViewPendingOrders = "pedidos-pendientes"
	ViewLowStock      = "stock-bajo"
)

// DefaultLowStockThreshold umbral usado cuando la configuración no define otro.
const DefaultLowStockThreshold = 5

// ─── Pedidos pendientes ────────────────────────────────────────────────────────

// PendingOrdersUseCase vista de pedidos en estado Pendiente.
type PendingOrdersUseCase struct {
	orders  repository.OrderRepository
	tracker *viewstate.Tracker
	log     zerolog.Logger
}

func NewPendingOrdersUseCase(orders repository.OrderRepository, tracker *viewstate.Tracker, log zerolog.Logger) *PendingOrdersUseCase {
	return &PendingOrdersUseCase{orders: orders, tracker: tracker, log: log}
}

// Fetch carga los pendientes más recientes primero. Un error de consulta deja la lista vacía.
func (uc *PendingOrdersUseCase) Fetch(ctx context.Context, viewerID string) (*dto.PendingOrdersResponse, error) {
	ctx, ticket := uc.tracker.Begin(ctx, viewstate.Key{View: ViewPendingOrders, Viewer: viewerID})

	orders, err := uc.orders.ListPending(ctx)
	if err != nil {
		logger.QueryFailure(ctx, uc.log).Err(err).Str("view", ViewPendingOrders).Msg("listing: consulta falló, se muestra vacío")
		orders = nil
	}

	rows := make([]dto.PendingOrderDTO, 0, len(orders))
	for i := range orders {
		rows = append(rows, toPendingOrderDTO(&orders[i]))
	}

	if err := uc.tracker.Finish(ticket); err != nil {
		return nil, err
	}
	return &dto.PendingOrdersResponse{
		Orders:     rows,
		Summary:    SummarizePending(rows),
		Generation: ticket.Generation,
	}, nil
}

// SummarizePending cantidad y suma de totales de la lista cargada.
func SummarizePending(rows []dto.PendingOrderDTO) dto.PendingSummary {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Total)
	}
	return dto.PendingSummary{Count: len(rows), Total: total}
}

func toPendingOrderDTO(o *entity.Order) dto.PendingOrderDTO {
	out := dto.PendingOrderDTO{
		ID:             o.ID,
		Number:         format.OrderNumber(o.ID),
		Total:          o.Total,
		TotalFormatted: format.Currency(o.Total),
		Status:         o.RawStatus,
		CreatedAt:      o.CreatedAt,
	}
	if o.Customer != nil {
		out.CustomerName = o.Customer.Name
		out.CustomerPhone = o.Customer.Phone
		out.CustomerDNI = o.Customer.DNI
	}
	return out
}

// ─── Stock bajo ────────────────────────────────────────────────────────────────

// LowStockUseCase vista de productos con stock por debajo del umbral.
type LowStockUseCase struct {
	products         repository.ProductRepository
	tracker          *viewstate.Tracker
	defaultThreshold int
	log              zerolog.Logger
}

func NewLowStockUseCase(products repository.ProductRepository, tracker *viewstate.Tracker, defaultThreshold int, log zerolog.Logger) *LowStockUseCase {
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultLowStockThreshold
	}
	return &LowStockUseCase{products: products, tracker: tracker, defaultThreshold: defaultThreshold, log: log}
}

// Fetch carga productos con stock < threshold, de menor a mayor stock.
// threshold <= 0 usa el umbral configurado.
func (uc *LowStockUseCase) Fetch(ctx context.Context, viewerID string, threshold int) (*dto.LowStockResponse, error) {
	if threshold <= 0 {
		threshold = uc.defaultThreshold
	}
	ctx, ticket := uc.tracker.Begin(ctx, viewstate.Key{View: ViewLowStock, Viewer: viewerID})

	products, err := uc.products.ListBelowStock(ctx, threshold)
	if err != nil {
		logger.QueryFailure(ctx, uc.log).Err(err).Str("view", ViewLowStock).Int("threshold", threshold).Msg("listing: consulta falló, se muestra vacío")
		products = nil
	}

	rows := make([]dto.LowStockProductDTO, 0, len(products))
	for _, p := range products {
		rows = append(rows, dto.LowStockProductDTO{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Stock:    p.Stock,
			ImageURL: p.ImageURL,
		})
	}

	if err := uc.tracker.Finish(ticket); err != nil {
		return nil, err
	}
	return &dto.LowStockResponse{
		Threshold:  threshold,
		Products:   rows,
		Summary:    SummarizeLowStock(rows),
		Generation: ticket.Generation,
	}, nil
}

// SummarizeLowStock cantidad, agotados (stock <= 0) y valor aproximado Σ precio × stock.
func SummarizeLowStock(rows []dto.LowStockProductDTO) dto.LowStockSummary {
	s := dto.LowStockSummary{Count: len(rows), ApproximateValueAtRisk: decimal.Zero}
	for _, r := range rows {
		if r.Stock <= 0 {
			s.OutOfStockCount++
		}
		s.ApproximateValueAtRisk = s.ApproximateValueAtRisk.Add(r.Price.Mul(decimal.NewFromInt(int64(r.Stock))))
	}
	return s
}
