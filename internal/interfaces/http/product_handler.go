package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/storefront"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain"
)

// ProductHandler catálogo público de la tienda.
type ProductHandler struct {
	uc *storefront.CatalogUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *storefront.CatalogUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// GetByID godoc
// @Summary      Ficha de producto
// @Tags         productos
// @Produce      json
// @Param        id   path  string  true  "ID numérico del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByRawID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Catálogo de productos
// @Description  Con query string la respuesta lleva X-Robots-Tag noindex y Link canonical.
// @Tags         productos
// @Produce      json
// @Param        limit      query  int     false  "Límite (default 20, max 100)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Param        categoria  query  string  false  "Nombre o slug de la categoría"
// @Success      200  {object}  dto.CatalogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.CatalogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if ok, err := validateInput(c, q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
