package repository

import (
	"context"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
)

// OrderRepository define el puerto de lectura de pedidos (DIP).
// Los pedidos se crean y modifican fuera de este servicio.
type OrderRepository interface {
	// ListAll devuelve todos los pedidos sin filtro (id, total, status, asignado_a, created_at).
	ListAll(ctx context.Context) ([]entity.Order, error)
	// ListPending pedidos en estado Pendiente, más recientes primero, con datos del cliente.
	ListPending(ctx context.Context) ([]entity.Order, error)
	// GetWithCustomer obtiene un pedido con su cliente; nil si no existe.
	GetWithCustomer(ctx context.Context, id int64) (*entity.Order, error)
}
