package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/access"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/auth"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
)

// Locals keys que deja RequireAccess en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalSessionID = "session_id"
)

// Transporte de tokens.
const (
	RefreshCookie      = "blama_refresh"
	HeaderRefreshToken = "X-Refresh-Token"
	HeaderAccessToken  = "X-Access-Token"
)

// accessResolver es el contrato mínimo que necesita el middleware. Lo implementa *access.Guard.
type accessResolver interface {
	Resolve(ctx context.Context, creds auth.Credentials, allowed ...entity.Role) (access.Result, error)
}

// CredentialsFromRequest lee el access token del header Authorization (Bearer) y el
// refresh token de la cookie o del header X-Refresh-Token. Un header mal formado
// cuenta como ausente.
func CredentialsFromRequest(c *fiber.Ctx) auth.Credentials {
	var creds auth.Credentials
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			creds.AccessToken = strings.TrimSpace(parts[1])
		}
	}
	creds.RefreshToken = c.Cookies(RefreshCookie)
	if creds.RefreshToken == "" {
		creds.RefreshToken = strings.TrimSpace(c.Get(HeaderRefreshToken))
	}
	return creds
}

// RequireAccess verifica sesión y rol antes de la vista. Se agrega ruta por ruta con
// los roles que esa vista admite.
//
// Comportamiento:
//   - 401 + redirect_to → sin sesión o sesión inválida (la cookie se borra si se cerró la sesión).
//   - 403 ACCESS_DENIED → sesión válida pero el rol no alcanza; la vista no se ejecuta.
//   - 503 REQUEST_CANCELLED → la petición se canceló antes de decidir.
func RequireAccess(guard accessResolver, roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := guard.Resolve(c.UserContext(), CredentialsFromRequest(c), roles...)
		if err != nil {
			if errors.Is(err, access.ErrDiscarded) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Code: "REQUEST_CANCELLED", Message: "la verificación de sesión se canceló",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}

		switch res.Decision {
		case access.DecisionRedirect:
			if res.SignedOut {
				clearRefreshCookie(c)
			}
			code := "SESSION_REQUIRED"
			if res.Expired {
				code = "SESSION_EXPIRED"
			} else if res.Notice != "" {
				code = "SESSION_CHECK_FAILED"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.RedirectResponse{
				Code:       code,
				Message:    res.Notice,
				RedirectTo: res.RedirectTo,
				SignedOut:  res.SignedOut,
			})
		case access.DecisionDenied:
			return c.Status(fiber.StatusForbidden).JSON(dto.AccessDeniedResponse{
				Code:         "ACCESS_DENIED",
				Title:        access.DeniedTitle,
				Message:      access.DeniedMessage,
				AccessDenied: true,
				Role:         string(res.Role),
				Action:       access.DeniedAction(),
			})
		}

		if res.Session.Rotated != nil {
			c.Set(HeaderAccessToken, res.Session.Rotated.AccessToken)
			if res.Session.Rotated.RefreshToken != "" {
				setRefreshCookie(c, res.Session.Rotated.RefreshToken, res.Session.Rotated.ExpiresAt)
			}
		}
		c.Locals(LocalUserID, res.Session.UserID)
		c.Locals(LocalSessionID, res.Session.ID)
		c.Locals(LocalRole, res.Role)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después de RequireAccess).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol resuelto; sin verificación previa es el rol por defecto.
func GetRole(c *fiber.Ctx) entity.Role {
	if r, ok := c.Locals(LocalRole).(entity.Role); ok {
		return r
	}
	return entity.DefaultRole
}

// GetSessionID devuelve el id de la sesión verificada.
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}

func setRefreshCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookie,
		Value:    token,
		Path:     "/api",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/api",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
