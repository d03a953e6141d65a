package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/access"
	appanalytics "github.com/MartinMaldo592/Mitiendaonline2026/internal/application/analytics"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/viewstate"
)

// DashboardHandler maneja el layout del panel y el dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Session godoc
// @Summary      Verificación del layout del panel
// @Description  Devuelve el rol del usuario y el menú lateral que le corresponde.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminSessionResponse
// @Failure      401  {object}  dto.RedirectResponse
// @Router       /api/admin/session [get]
func (h *DashboardHandler) Session(c *fiber.Ctx) error {
	role := GetRole(c)
	return c.JSON(dto.AdminSessionResponse{
		UserID:  GetUserID(c),
		Role:    string(role),
		Sidebar: access.Sidebar(role),
	})
}

// GetDashboard godoc
// @Summary      Dashboard del panel
// @Description  Tarjetas según rol. El objeto stats completo sólo se incluye para admin.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      401  {object}  dto.RedirectResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	role := GetRole(c)
	stats, err := h.uc.ComputeStats(c.UserContext(), role, GetUserID(c))
	if err != nil {
		return viewError(c, err)
	}
	return c.JSON(appanalytics.BuildDashboardResponse(stats, role))
}

// viewError traduce errores de las vistas del panel.
func viewError(c *fiber.Ctx, err error) error {
	if errors.Is(err, viewstate.ErrSuperseded) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "SUPERSEDED", Message: "hay una carga más reciente de esta vista",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
