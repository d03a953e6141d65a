package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/access"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	apphttp "github.com/MartinMaldo592/Mitiendaonline2026/internal/interfaces/http"
)

func TestRequestContext_TieneLimite(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestContext(context.Background(), time.Minute))

	var hasDeadline bool
	app.Get("/ping", func(c *fiber.Ctx) error {
		_, hasDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.True(t, hasDeadline)
}

// Escenario: el contexto de la petición ya venció cuando termina la verificación.
func TestRequestContext_CanceladoDescartaLaVerificacion(t *testing.T) {
	base, cancel := context.WithCancel(context.Background())
	cancel()

	guard := access.NewGuard(&fakeSessions{}, fakeRoles{adminID: entity.RoleAdmin}, zerolog.Nop())
	app := fiber.New()
	app.Use(apphttp.RequestContext(base, time.Minute))

	var ran bool
	app.Get("/vista", apphttp.RequireAccess(guard, entity.RoleAdmin), func(c *fiber.Ctx) error {
		ran = true
		return c.SendStatus(fiber.StatusOK)
	})

	resp := doRequest(t, app, "/vista", "admin")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "REQUEST_CANCELLED", decode[dto.ErrorResponse](t, resp).Code)
	assert.False(t, ran, "la vista no se ejecuta")
}
