package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/orders"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
)

type fakeOrders struct {
	byID map[int64]*entity.Order
	err  error
}

func (f *fakeOrders) ListAll(context.Context) ([]entity.Order, error)     { return nil, nil }
func (f *fakeOrders) ListPending(context.Context) ([]entity.Order, error) { return nil, nil }
func (f *fakeOrders) GetWithCustomer(_ context.Context, id int64) (*entity.Order, error) {
	return f.byID[id], f.err
}

type fakeRenderer struct {
	last  orders.Ticket
	calls int
}

func (f *fakeRenderer) RenderTicket(_ context.Context, t orders.Ticket) ([]byte, error) {
	f.calls++
	f.last = t
	return []byte("%PDF-1.3"), nil
}

func sampleOrder(assigned string) *entity.Order {
	o := &entity.Order{
		ID:        123,
		Total:     decimal.RequireFromString("89.5"),
		Status:    entity.OrderPreparing,
		RawStatus: "Preparando",
		StatusOK:  true,
		CreatedAt: time.Date(2026, 3, 10, 20, 30, 0, 0, time.UTC),
		Customer:  &entity.Customer{Name: "Luis", Phone: "+51 987 654 321", DNI: "44556677"},
	}
	if assigned != "" {
		o.AssignedTo = &assigned
	}
	return o
}

func newUseCase(o *fakeOrders, r *fakeRenderer) *orders.TicketUseCase {
	return orders.NewTicketUseCase(o, r, "Blama Shop", time.FixedZone("America/Lima", -5*60*60))
}

func TestDownload_Admin(t *testing.T) {
	r := &fakeRenderer{}
	uc := newUseCase(&fakeOrders{byID: map[int64]*entity.Order{123: sampleOrder("")}}, r)

	doc, name, err := uc.Download(context.Background(), "123", entity.RoleAdmin, "a1")
	require.NoError(t, err)

	assert.NotEmpty(t, doc)
	assert.Equal(t, "ticket_000123.pdf", name)
	assert.Equal(t, "#000123", r.last.Number)
	assert.Equal(t, "10/03/2026 15:30", r.last.Date)
	assert.Equal(t, "https://wa.me/51987654321", r.last.WhatsAppURL)
}

func TestDownload_WorkerSoloAsignados(t *testing.T) {
	r := &fakeRenderer{}
	repo := &fakeOrders{byID: map[int64]*entity.Order{
		1: sampleOrder("w1"),
		2: sampleOrder("w2"),
	}}
	uc := newUseCase(repo, r)

	_, _, err := uc.Download(context.Background(), "1", entity.RoleWorker, "w1")
	require.NoError(t, err)

	_, _, err = uc.Download(context.Background(), "2", entity.RoleWorker, "w1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 1, r.calls)
}

func TestDownload_NoEncontrado(t *testing.T) {
	uc := newUseCase(&fakeOrders{}, &fakeRenderer{})

	_, _, err := uc.Download(context.Background(), "abc", entity.RoleAdmin, "a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = uc.Download(context.Background(), "77", entity.RoleAdmin, "a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownload_ErrorDeRepositorio(t *testing.T) {
	uc := newUseCase(&fakeOrders{err: errors.New("db")}, &fakeRenderer{})
	_, _, err := uc.Download(context.Background(), "1", entity.RoleAdmin, "a1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestWhatsAppURL(t *testing.T) {
	assert.Equal(t, "https://wa.me/999888777", orders.WhatsAppURL("999-888-777"))
	assert.Empty(t, orders.WhatsAppURL(""))
	assert.Empty(t, orders.WhatsAppURL("sin teléfono"))
}
