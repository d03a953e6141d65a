package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
)

func TestResolveRole(t *testing.T) {
	assert.Equal(t, entity.RoleAdmin, entity.ResolveRole("admin", true))
	assert.Equal(t, entity.RoleWorker, entity.ResolveRole("worker", true))
	assert.Equal(t, entity.RoleWorker, entity.ResolveRole("", false), "sin perfil -> worker")
	assert.Equal(t, entity.RoleWorker, entity.ResolveRole("superuser", true), "rol desconocido -> worker")
	assert.Equal(t, entity.RoleWorker, entity.ResolveRole("Admin", true), "sensible a mayúsculas")
}

func TestParseOrderStatus(t *testing.T) {
	s, ok := entity.ParseOrderStatus("Entregado")
	assert.True(t, ok)
	assert.Equal(t, entity.OrderDelivered, s)
	assert.True(t, s.Closed())

	_, ok = entity.ParseOrderStatus("Cancelado")
	assert.False(t, ok)

	assert.True(t, entity.OrderShipped.InProgress())
	assert.False(t, entity.OrderPending.InProgress())
	assert.False(t, entity.OrderPending.Closed())
}

func TestProductGallery(t *testing.T) {
	p := entity.Product{ImageURL: "cover.jpg"}
	assert.Equal(t, []string{"cover.jpg"}, p.Gallery())

	p.Images = []string{"", "a.jpg", "b.jpg"}
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Gallery())

	p.Images = make([]string, 15)
	for i := range p.Images {
		p.Images[i] = "img.jpg"
	}
	assert.Len(t, p.Gallery(), 10)

	empty := entity.Product{}
	assert.Empty(t, empty.Gallery())
}

func TestSessionActive(t *testing.T) {
	now := time.Now()
	s := entity.Session{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, s.Active(now))

	revoked := now
	s.RevokedAt = &revoked
	assert.False(t, s.Active(now))

	assert.False(t, (&entity.Session{ExpiresAt: now.Add(-time.Second)}).Active(now))
}

func TestAmountOrZero(t *testing.T) {
	assert.True(t, entity.AmountOrZero(decimal.NullDecimal{}).IsZero())
	assert.Equal(t, "12.5", entity.AmountOrZero(decimal.NewNullDecimal(decimal.RequireFromString("12.5"))).String())
}
