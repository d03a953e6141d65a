package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre la tabla pedidos.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// ListAll trae todos los pedidos con las columnas que usa el dashboard.
func (r *OrderRepo) ListAll(ctx context.Context) ([]entity.Order, error) {
	query := `
		SELECT id, total, status, asignado_a::text, created_at
		FROM pedidos`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("orders.ListAll: %w", err)
	}
	defer rows.Close()

	var list []entity.Order
	for rows.Next() {
		var (
			o      entity.Order
			total  decimal.NullDecimal
			status string
		)
		if err := rows.Scan(&o.ID, &total, &status, &o.AssignedTo, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("orders.ListAll scan: %w", err)
		}
		setOrderFields(&o, total, status)
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders.ListAll: %w", err)
	}
	return list, nil
}

// ListPending pedidos Pendiente con su cliente, más recientes primero.
func (r *OrderRepo) ListPending(ctx context.Context) ([]entity.Order, error) {
	query := `
		SELECT p.id, p.total, p.status, p.asignado_a::text, p.created_at,
		       c.id, c.nombre, c.telefono, c.dni
		FROM pedidos p
		LEFT JOIN clientes c ON c.id = p.cliente_id
		WHERE p.status = $1
		ORDER BY p.created_at DESC`
	rows, err := r.q.Query(ctx, query, string(entity.OrderPending))
	if err != nil {
		return nil, fmt.Errorf("orders.ListPending: %w", err)
	}
	defer rows.Close()

	var list []entity.Order
	for rows.Next() {
		o, err := scanOrderWithCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("orders.ListPending scan: %w", err)
		}
		list = append(list, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders.ListPending: %w", err)
	}
	return list, nil
}

// GetWithCustomer obtiene un pedido y su cliente; nil, nil si no existe.
func (r *OrderRepo) GetWithCustomer(ctx context.Context, id int64) (*entity.Order, error) {
	query := `
		SELECT p.id, p.total, p.status, p.asignado_a::text, p.created_at,
		       c.id, c.nombre, c.telefono, c.dni
		FROM pedidos p
		LEFT JOIN clientes c ON c.id = p.cliente_id
		WHERE p.id = $1`
	o, err := scanOrderWithCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("orders.GetWithCustomer: %w", err)
	}
	return o, nil
}

func scanOrderWithCustomer(row pgx.Row) (*entity.Order, error) {
	var (
		o          entity.Order
		total      decimal.NullDecimal
		status     string
		customerID *int64
		name       *string
		phone      *string
		dni        *string
	)
	if err := row.Scan(&o.ID, &total, &status, &o.AssignedTo, &o.CreatedAt,
		&customerID, &name, &phone, &dni); err != nil {
		return nil, err
	}
	setOrderFields(&o, total, status)
	if customerID != nil {
		o.CustomerID = customerID
		o.Customer = &entity.Customer{
			ID:    *customerID,
			Name:  derefString(name),
			Phone: derefString(phone),
			DNI:   derefString(dni),
		}
	}
	return &o, nil
}

func setOrderFields(o *entity.Order, total decimal.NullDecimal, status string) {
	o.Total = entity.AmountOrZero(total)
	o.RawStatus = status
	o.Status, o.StatusOK = entity.ParseOrderStatus(status)
}
