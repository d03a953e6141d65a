// Package analytics contiene el cálculo de las métricas del dashboard del panel.
package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/viewstate"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/logger"
)

// ViewDashboard nombre de la vista en el tracker de cargas.
const ViewDashboard = "dashboard"

// dashboardLowStockThreshold umbral fijo de la tarjeta "Stock Bajo".
const dashboardLowStockThreshold = 5

// DashboardUseCase calcula DashboardStats a partir de los pedidos, clientes y productos.
//
// Cada consulta que falla deja su métrica en cero y se registra; el cálculo nunca aborta.
type DashboardUseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	tracker   *viewstate.Tracker
	loc       *time.Location
	now       func() time.Time
	log       zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso. loc es la zona horaria de la tienda.
func NewDashboardUseCase(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	tracker *viewstate.Tracker,
	loc *time.Location,
	log zerolog.Logger,
) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{
		orders:    orders,
		customers: customers,
		products:  products,
		tracker:   tracker,
		loc:       loc,
		now:       time.Now,
		log:       log,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// ComputeStats calcula todas las métricas para el rol y usuario indicados.
//
//  1. Todos los pedidos, sin filtro, reducidos en memoria.
//  2. Sólo admin: total de clientes y productos con stock < 5, en paralelo.
//
// El objeto se construye completo al final. Si otra carga del mismo usuario empezó
// mientras tanto, devuelve viewstate.ErrSuperseded y ningún resultado.
func (uc *DashboardUseCase) ComputeStats(ctx context.Context, role entity.Role, userID string) (*dto.DashboardStats, error) {
	ctx, ticket := uc.tracker.Begin(ctx, viewstate.Key{View: ViewDashboard, Viewer: userID})

	type countResult struct {
		n   int
		err error
	}
	var customersCh, lowStockCh chan countResult
	if role == entity.RoleAdmin {
		customersCh = make(chan countResult, 1)
		lowStockCh = make(chan countResult, 1)
		go func() {
			n, err := uc.customers.Count(ctx)
			customersCh <- countResult{n, err}
		}()
		go func() {
			n, err := uc.products.CountBelowStock(ctx, dashboardLowStockThreshold)
			lowStockCh <- countResult{n, err}
		}()
	}

	orders, err := uc.orders.ListAll(ctx)
	if err != nil {
		logger.QueryFailure(ctx, uc.log).Err(err).Str("metric", "pedidos").Msg("dashboard: consulta falló, métricas de pedidos en cero")
		orders = nil
	}
	agg := AggregateOrders(orders, userID, uc.now(), uc.loc)
	if len(agg.Unrecognized) > 0 {
		uc.log.Warn().
			Ints64("order_ids", agg.Unrecognized).
			Msg("dashboard: pedidos con estado desconocido excluidos de las métricas")
	}

	var totalCustomers, lowStock int
	if role == entity.RoleAdmin {
		c := <-customersCh
		if c.err != nil {
			logger.QueryFailure(ctx, uc.log).Err(c.err).Str("metric", "clientes").Msg("dashboard: consulta falló, métrica en cero")
		} else {
			totalCustomers = c.n
		}
		l := <-lowStockCh
		if l.err != nil {
			logger.QueryFailure(ctx, uc.log).Err(l.err).Str("metric", "stock_bajo").Msg("dashboard: consulta falló, métrica en cero")
		} else {
			lowStock = l.n
		}
	}

	if err := uc.tracker.Finish(ticket); err != nil {
		return nil, err
	}

	return &dto.DashboardStats{
		TotalRevenue:            agg.TotalRevenue.Round(2),
		TodayRevenue:            agg.TodayRevenue.Round(2),
		PendingCount:            agg.PendingCount,
		InProgressCount:         agg.InProgressCount,
		DeliveredCount:          agg.DeliveredCount,
		AssignedToMeCount:       agg.AssignedToMeCount,
		TotalCustomers:          totalCustomers,
		LowStockProducts:        lowStock,
		TotalOrders:             agg.TotalOrders,
		UnrecognizedStatusCount: len(agg.Unrecognized),
	}, nil
}
