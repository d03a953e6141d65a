package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/access"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/auth"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain"
)

// AuthHandler maneja login, renovación y cierre de sesión.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if ok, err := validateInput(c, in); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	setRefreshCookie(c, out.RefreshToken, out.RefreshExpiresAt)
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Renovar sesión
// @Description  Usa la cookie de refresh o el campo refresh_token. El refresh token es de un solo uso.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  false  "refresh_token"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.RedirectResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token := c.Cookies(RefreshCookie)
	if token == "" {
		var in dto.RefreshRequest
		_ = c.BodyParser(&in)
		token = in.RefreshToken
	}
	out, err := h.uc.Refresh(c.UserContext(), token)
	if err != nil {
		if auth.IsInvalidRefreshToken(err) {
			clearRefreshCookie(c)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.RedirectResponse{
				Code:       "SESSION_EXPIRED",
				Message:    err.Error(),
				RedirectTo: access.LoginRoute,
				SignedOut:  true,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out.RefreshToken != "" {
		setRefreshCookie(c, out.RefreshToken, out.RefreshExpiresAt)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), CredentialsFromRequest(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	clearRefreshCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}
