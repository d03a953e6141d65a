package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/listing"
)

// ListingHandler vistas filtradas del dashboard (sólo admin).
type ListingHandler struct {
	pending  *listing.PendingOrdersUseCase
	lowStock *listing.LowStockUseCase
}

// NewListingHandler construye el handler.
func NewListingHandler(pending *listing.PendingOrdersUseCase, lowStock *listing.LowStockUseCase) *ListingHandler {
	return &ListingHandler{pending: pending, lowStock: lowStock}
}

// PendingOrders godoc
// @Summary      Pedidos pendientes
// @Description  Pedidos en estado Pendiente, más recientes primero, con datos del cliente.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PendingOrdersResponse
// @Failure      401  {object}  dto.RedirectResponse
// @Failure      403  {object}  dto.AccessDeniedResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/dashboard/pedidos-pendientes [get]
func (h *ListingHandler) PendingOrders(c *fiber.Ctx) error {
	out, err := h.pending.Fetch(c.UserContext(), GetUserID(c))
	if err != nil {
		return viewError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos con stock menor al umbral, de menor a mayor stock.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral (default LOW_STOCK_THRESHOLD, 5)"
// @Success      200  {object}  dto.LowStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.RedirectResponse
// @Failure      403  {object}  dto.AccessDeniedResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/dashboard/stock-bajo [get]
func (h *ListingHandler) LowStock(c *fiber.Ctx) error {
	var q dto.LowStockQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "threshold debe ser un entero"})
	}
	if ok, err := validateInput(c, q); !ok {
		return err
	}
	out, err := h.lowStock.Fetch(c.UserContext(), GetUserID(c), q.Threshold)
	if err != nil {
		return viewError(c, err)
	}
	return c.JSON(out)
}
