package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestContext da a cada petición un contexto derivado de base que se cancela al vencer
// timeout. Los handlers lo leen con c.UserContext().
func RequestContext(base context.Context, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
