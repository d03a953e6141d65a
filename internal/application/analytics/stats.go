package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
)

// OrderStats métricas derivadas sólo de la lista de pedidos.
type OrderStats struct {
	TotalRevenue      decimal.Decimal
	TodayRevenue      decimal.Decimal
	PendingCount      int
	InProgressCount   int
	DeliveredCount    int
	AssignedToMeCount int
	TotalOrders       int
	// Unrecognized ids de pedidos con un estado fuera del catálogo.
	Unrecognized []int64
}

// AggregateOrders reduce los pedidos en memoria. Es una función pura: el resultado no
// depende del orden de entrada. "Hoy" se evalúa en loc sobre la fecha de creación.
func AggregateOrders(orders []entity.Order, userID string, now time.Time, loc *time.Location) OrderStats {
	if loc == nil {
		loc = time.Local
	}
	today := dateKey(now.In(loc))

	st := OrderStats{
		TotalRevenue: decimal.Zero,
		TodayRevenue: decimal.Zero,
		TotalOrders:  len(orders),
	}
	for i := range orders {
		o := &orders[i]
		if !o.StatusOK {
			st.Unrecognized = append(st.Unrecognized, o.ID)
			continue
		}

		switch {
		case o.Status == entity.OrderDelivered:
			st.DeliveredCount++
			st.TotalRevenue = st.TotalRevenue.Add(o.Total)
			if !o.CreatedAt.IsZero() && dateKey(o.CreatedAt.In(loc)) == today {
				st.TodayRevenue = st.TodayRevenue.Add(o.Total)
			}
		case o.Status == entity.OrderPending:
			st.PendingCount++
		case o.Status.InProgress():
			st.InProgressCount++
		}

		if o.IsAssignedTo(userID) && !o.Status.Closed() {
			st.AssignedToMeCount++
		}
	}
	return st
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
