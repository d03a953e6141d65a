package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/orders"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain"
)

// TicketHandler descarga del ticket imprimible de un pedido.
type TicketHandler struct {
	uc *orders.TicketUseCase
}

// NewTicketHandler construye el handler.
func NewTicketHandler(uc *orders.TicketUseCase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

// Download godoc
// @Summary      Ticket del pedido (PDF)
// @Description  Admin ve cualquier pedido; worker sólo los que tiene asignados.
// @Tags         admin
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/pedidos/{id}/ticket [get]
func (h *TicketHandler) Download(c *fiber.Ctx) error {
	doc, filename, err := h.uc.Download(c.UserContext(), c.Params("id"), GetRole(c), GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el pedido no está asignado a tu usuario"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(doc)
}
