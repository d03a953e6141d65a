// Package orders reúne operaciones sobre un pedido individual del panel.
package orders

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/format"
)

// Ticket datos ya formateados para imprimir el ticket de un pedido.
type Ticket struct {
	StoreName     string
	Number        string
	Date          string
	Status        string
	CustomerName  string
	CustomerPhone string
	CustomerDNI   string
	Total         string
	WhatsAppURL   string // vacío si el cliente no tiene teléfono
}

// TicketRenderer genera el documento del ticket.
type TicketRenderer interface {
	RenderTicket(ctx context.Context, t Ticket) ([]byte, error)
}

// TicketUseCase arma e imprime el ticket de un pedido.
type TicketUseCase struct {
	orders    repository.OrderRepository
	renderer  TicketRenderer
	storeName string
	loc       *time.Location
}

func NewTicketUseCase(orders repository.OrderRepository, renderer TicketRenderer, storeName string, loc *time.Location) *TicketUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &TicketUseCase{orders: orders, renderer: renderer, storeName: storeName, loc: loc}
}

// Download devuelve el PDF del ticket y su nombre de archivo.
//
//   - domain.ErrNotFound   si el id no es válido o el pedido no existe.
//   - domain.ErrForbidden  si un worker pide un pedido que no tiene asignado.
func (uc *TicketUseCase) Download(ctx context.Context, rawID string, role entity.Role, userID string) ([]byte, string, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || id <= 0 {
		return nil, "", domain.ErrNotFound
	}

	o, err := uc.orders.GetWithCustomer(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("orders.Download: %w", err)
	}
	if o == nil {
		return nil, "", domain.ErrNotFound
	}
	if role != entity.RoleAdmin && !o.IsAssignedTo(userID) {
		return nil, "", domain.ErrForbidden
	}

	doc, err := uc.renderer.RenderTicket(ctx, uc.BuildTicket(o))
	if err != nil {
		return nil, "", fmt.Errorf("orders.Download: render: %w", err)
	}
	return doc, fmt.Sprintf("ticket_%s.pdf", format.OrderNumber(o.ID)), nil
}

// BuildTicket formatea el pedido para impresión.
func (uc *TicketUseCase) BuildTicket(o *entity.Order) Ticket {
	t := Ticket{
		StoreName: uc.storeName,
		Number:    "#" + format.OrderNumber(o.ID),
		Status:    o.RawStatus,
		Total:     format.Currency(o.Total),
	}
	if !o.CreatedAt.IsZero() {
		t.Date = o.CreatedAt.In(uc.loc).Format("02/01/2006 15:04")
	}
	if c := o.Customer; c != nil {
		t.CustomerName = c.Name
		t.CustomerPhone = c.Phone
		t.CustomerDNI = c.DNI
		t.WhatsAppURL = WhatsAppURL(c.Phone)
	}
	return t
}

// WhatsAppURL enlace wa.me con sólo los dígitos del teléfono; vacío si no hay dígitos.
func WhatsAppURL(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}
