package http

import (
	"github.com/gofiber/fiber/v2"
)

// Cabeceras de indexación del catálogo.
const (
	HeaderRobotsTag = "X-Robots-Tag"
	HeaderLink      = "Link"
)

// CanonicalCatalog marca como no indexables las variantes del listado con query string
// (filtros, paginación) y apunta a la URL canónica del catálogo. Sin query string no
// toca la respuesta.
func CanonicalCatalog(siteURL string) fiber.Handler {
	canonical := siteURL + "/productos"
	return func(c *fiber.Ctx) error {
		if len(c.Request().URI().QueryString()) > 0 {
			c.Set(HeaderRobotsTag, "noindex,follow")
			c.Set(HeaderLink, "<"+canonical+`>; rel="canonical"`)
		}
		return c.Next()
	}
}
