package analytics_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/analytics"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/viewstate"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
)

// ────────────────────────────────────────────────────────────────
// Fakes
// ────────────────────────────────────────────────────────────────

type fakeOrders struct {
	orders []entity.Order
	err    error
	calls  int
}

func (f *fakeOrders) ListAll(context.Context) ([]entity.Order, error) {
	f.calls++
	return f.orders, f.err
}
func (f *fakeOrders) ListPending(context.Context) ([]entity.Order, error) { return nil, nil }
func (f *fakeOrders) GetWithCustomer(context.Context, int64) (*entity.Order, error) {
	return nil, nil
}

type fakeCustomers struct {
	n     int
	err   error
	calls int
}

func (f *fakeCustomers) Count(context.Context) (int, error) {
	f.calls++
	return f.n, f.err
}

type fakeProducts struct {
	lowStock  int
	err       error
	calls     int
	threshold int
}

func (f *fakeProducts) CountBelowStock(_ context.Context, threshold int) (int, error) {
	f.calls++
	f.threshold = threshold
	return f.lowStock, f.err
}
func (f *fakeProducts) ListBelowStock(context.Context, int) ([]entity.Product, error) {
	return nil, nil
}
func (f *fakeProducts) GetByID(context.Context, int64) (*entity.Product, error) { return nil, nil }
func (f *fakeProducts) ListCatalog(context.Context, repository.CatalogFilter) ([]entity.Product, error) {
	return nil, nil
}

// ────────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────────

var (
	lima = time.FixedZone("America/Lima", -5*60*60)
	now  = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC) // 10:00 en Lima
)

func order(id int64, status string, total int64, created time.Time, assigned string) entity.Order {
	st, ok := entity.ParseOrderStatus(status)
	o := entity.Order{
		ID:        id,
		Total:     decimal.NewFromInt(total),
		Status:    st,
		RawStatus: status,
		StatusOK:  ok,
		CreatedAt: created,
	}
	if assigned != "" {
		o.AssignedTo = &assigned
	}
	return o
}

func newUseCase(o *fakeOrders, c *fakeCustomers, p *fakeProducts) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(o, c, p, viewstate.NewTracker(), lima, zerolog.Nop()).
		WithClock(func() time.Time { return now })
}

// ────────────────────────────────────────────────────────────────
// AggregateOrders
// ────────────────────────────────────────────────────────────────

func TestAggregateOrders_Escenario1(t *testing.T) {
	orders := []entity.Order{
		order(1, "Entregado", 100, now, ""),
		order(2, "Entregado", 50, now.Add(-24*time.Hour), ""),
		order(3, "Pendiente", 30, now, ""),
	}

	st := analytics.AggregateOrders(orders, "", now, lima)

	assert.True(t, st.TotalRevenue.Equal(decimal.NewFromInt(150)))
	assert.True(t, st.TodayRevenue.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, st.PendingCount)
	assert.Equal(t, 2, st.DeliveredCount)
	assert.Equal(t, 3, st.TotalOrders)
}

// Un pedido creado a las 23:30 de Lima ya es "mañana" en UTC; cuenta para el día de Lima.
func TestAggregateOrders_HoyEnZonaDeLaTienda(t *testing.T) {
	late := time.Date(2026, 3, 11, 4, 30, 0, 0, time.UTC) // 23:30 del 10 en Lima
	nowLate := time.Date(2026, 3, 11, 4, 45, 0, 0, time.UTC)

	st := analytics.AggregateOrders([]entity.Order{order(1, "Entregado", 80, late, "")}, "", nowLate, lima)
	assert.True(t, st.TodayRevenue.Equal(decimal.NewFromInt(80)))

	st = analytics.AggregateOrders([]entity.Order{order(1, "Entregado", 80, late, "")}, "", now.Add(-48*time.Hour), lima)
	assert.True(t, st.TodayRevenue.IsZero())
}

func TestAggregateOrders_Conmutativo(t *testing.T) {
	orders := []entity.Order{
		order(1, "Entregado", 100, now, "w1"),
		order(2, "Entregado", 75, now.Add(-72*time.Hour), ""),
		order(3, "Pendiente", 30, now, "w1"),
		order(4, "Enviado", 12, now, "w1"),
		order(5, "Fallido", 99, now, "w1"),
		order(6, "Confirmado", 40, now, ""),
		order(7, "Anulado", 20, now, "w1"),
	}
	base := analytics.AggregateOrders(orders, "w1", now, lima)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]entity.Order(nil), orders...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := analytics.AggregateOrders(shuffled, "w1", now, lima)

		assert.True(t, got.TotalRevenue.Equal(base.TotalRevenue))
		assert.True(t, got.TodayRevenue.Equal(base.TodayRevenue))
		assert.Equal(t, base.PendingCount, got.PendingCount)
		assert.Equal(t, base.InProgressCount, got.InProgressCount)
		assert.Equal(t, base.AssignedToMeCount, got.AssignedToMeCount)
		assert.ElementsMatch(t, base.Unrecognized, got.Unrecognized)
	}
}

func TestAggregateOrders_Cotas(t *testing.T) {
	orders := []entity.Order{
		order(1, "Entregado", 100, now, ""),
		order(2, "Devuelto", 10, now, ""),
		order(3, "Preparando", 30, now, ""),
		order(4, "Pendiente", 5, now, ""),
		order(5, "pendiente", 5, now, ""), // no reconocido: distingue mayúsculas
	}
	st := analytics.AggregateOrders(orders, "", now, lima)

	assert.True(t, st.TodayRevenue.LessThanOrEqual(st.TotalRevenue))
	assert.LessOrEqual(t, st.PendingCount+st.InProgressCount+st.DeliveredCount, st.TotalOrders)
	assert.Equal(t, []int64{5}, st.Unrecognized)
}

func TestAggregateOrders_AsignadosExcluyeCerrados(t *testing.T) {
	orders := []entity.Order{
		order(1, "Pendiente", 1, now, "w1"),
		order(2, "Enviado", 1, now, "w1"),
		order(3, "Entregado", 1, now, "w1"),
		order(4, "Fallido", 1, now, "w1"),
		order(5, "Devuelto", 1, now, "w1"),
		order(6, "Pendiente", 1, now, "otro"),
		order(7, "Pendiente", 1, now, ""),
	}
	st := analytics.AggregateOrders(orders, "w1", now, lima)
	assert.Equal(t, 2, st.AssignedToMeCount)

	// Sin usuario nunca hay asignados.
	assert.Zero(t, analytics.AggregateOrders(orders, "", now, lima).AssignedToMeCount)
}

func TestAggregateOrders_Vacio(t *testing.T) {
	st := analytics.AggregateOrders(nil, "w1", now, lima)
	assert.True(t, st.TotalRevenue.IsZero())
	assert.Zero(t, st.TotalOrders)
	assert.Empty(t, st.Unrecognized)
}

// ────────────────────────────────────────────────────────────────
// ComputeStats
// ────────────────────────────────────────────────────────────────

func TestComputeStats_Admin(t *testing.T) {
	o := &fakeOrders{orders: []entity.Order{
		order(1, "Entregado", 100, now, ""),
		order(2, "Pendiente", 30, now, ""),
		order(3, "Raro", 30, now, ""),
	}}
	c := &fakeCustomers{n: 12}
	p := &fakeProducts{lowStock: 3}

	stats, err := newUseCase(o, c, p).ComputeStats(context.Background(), entity.RoleAdmin, "a1")
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalCustomers)
	assert.Equal(t, 3, stats.LowStockProducts)
	assert.Equal(t, 5, p.threshold)
	assert.Equal(t, 1, stats.UnrecognizedStatusCount)
	assert.Equal(t, "100", stats.TotalRevenue.String())
}

func TestComputeStats_WorkerNoConsultaConteosDeAdmin(t *testing.T) {
	o := &fakeOrders{orders: []entity.Order{order(1, "Pendiente", 30, now, "w1")}}
	c := &fakeCustomers{n: 12}
	p := &fakeProducts{lowStock: 3}

	stats, err := newUseCase(o, c, p).ComputeStats(context.Background(), entity.RoleWorker, "w1")
	require.NoError(t, err)

	assert.Zero(t, stats.TotalCustomers)
	assert.Zero(t, stats.LowStockProducts)
	assert.Zero(t, c.calls)
	assert.Zero(t, p.calls)
	assert.Equal(t, 1, stats.AssignedToMeCount)
}

func TestComputeStats_ErroresDegradanACero(t *testing.T) {
	o := &fakeOrders{err: errors.New("db caída")}
	c := &fakeCustomers{err: errors.New("timeout")}
	p := &fakeProducts{lowStock: 4}

	stats, err := newUseCase(o, c, p).ComputeStats(context.Background(), entity.RoleAdmin, "a1")
	require.NoError(t, err)

	assert.Zero(t, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Zero(t, stats.TotalCustomers)
	assert.Equal(t, 4, stats.LowStockProducts, "un fallo no afecta las otras métricas")
}

func TestComputeStats_Idempotente(t *testing.T) {
	o := &fakeOrders{orders: []entity.Order{
		order(1, "Entregado", 100, now, ""),
		order(2, "Confirmado", 30, now, "a1"),
	}}
	uc := newUseCase(o, &fakeCustomers{n: 2}, &fakeProducts{lowStock: 1})

	first, err := uc.ComputeStats(context.Background(), entity.RoleAdmin, "a1")
	require.NoError(t, err)
	second, err := uc.ComputeStats(context.Background(), entity.RoleAdmin, "a1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// ────────────────────────────────────────────────────────────────
// BuildDashboardResponse
// ────────────────────────────────────────────────────────────────

// Escenario: perfil ausente -> worker -> sólo la tarjeta de asignados.
func TestBuildDashboardResponse_Worker(t *testing.T) {
	resp := analytics.BuildDashboardResponse(&dto.DashboardStats{AssignedToMeCount: 4}, entity.ResolveRole("", false))

	require.Len(t, resp.Cards, 1)
	assert.Equal(t, "Pedidos Asignados", resp.Cards[0].Title)
	assert.Equal(t, "4", resp.Cards[0].Value)
	assert.Equal(t, "Mi Panel", resp.Title)
	assert.Nil(t, resp.Stats)
}

func TestBuildDashboardResponse_Admin(t *testing.T) {
	stats := &dto.DashboardStats{TotalRevenue: decimal.NewFromInt(150), PendingCount: 1}
	resp := analytics.BuildDashboardResponse(stats, entity.RoleAdmin)

	require.Len(t, resp.Cards, 6)
	assert.Equal(t, "Ventas (Entregado)", resp.Cards[0].Title)
	assert.Contains(t, resp.Cards[0].Hint, "Hoy:")
	assert.Equal(t, "Dashboard General", resp.Title)
	assert.Same(t, stats, resp.Stats)
}
