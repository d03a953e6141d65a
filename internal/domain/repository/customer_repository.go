package repository

import "context"

// CustomerRepository puerto de persistencia para clientes. Este servicio sólo los cuenta.
type CustomerRepository interface {
	Count(ctx context.Context) (int, error)
}
