package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido. Los valores se guardan tal cual en la columna pedidos.status.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pendiente"
	OrderConfirmed OrderStatus = "Confirmado"
	OrderPreparing OrderStatus = "Preparando"
	OrderShipped   OrderStatus = "Enviado"
	OrderDelivered OrderStatus = "Entregado"
	OrderFailed    OrderStatus = "Fallido"
	OrderReturned  OrderStatus = "Devuelto"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderPending:   {},
	OrderConfirmed: {},
	OrderPreparing: {},
	OrderShipped:   {},
	OrderDelivered: {},
	OrderFailed:    {},
	OrderReturned:  {},
}

// ParseOrderStatus valida el texto almacenado. ok=false para valores fuera del catálogo.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(raw)
	_, ok := orderStatuses[s]
	return s, ok
}

// InProgress pedidos confirmados que aún no llegan al cliente.
func (s OrderStatus) InProgress() bool {
	return s == OrderConfirmed || s == OrderPreparing || s == OrderShipped
}

// Closed estados en los que el pedido ya no requiere gestión del trabajador.
func (s OrderStatus) Closed() bool {
	return s == OrderFailed || s == OrderReturned || s == OrderDelivered
}

// Order pedido recibido desde la tienda (tabla pedidos).
type Order struct {
	ID         int64
	Total      decimal.Decimal // NULL en la DB se lee como 0
	Status     OrderStatus
	RawStatus  string // valor original, útil cuando Status no es reconocido
	StatusOK   bool
	AssignedTo *string
	CustomerID *int64
	CreatedAt  time.Time
	Customer   *Customer
}

// IsAssignedTo indica si el pedido está asignado al usuario.
func (o *Order) IsAssignedTo(userID string) bool {
	return userID != "" && o.AssignedTo != nil && *o.AssignedTo == userID
}

// AmountOrZero normaliza montos opcionales leídos de la DB.
func AmountOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
