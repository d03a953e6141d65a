package entity

// Customer cliente que hizo un pedido (tabla clientes).
type Customer struct {
	ID    int64
	Name  string
	Phone string
	DNI   string // documento nacional de identidad
}
