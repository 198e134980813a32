package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Rutas de página públicas (no requieren cookie de sesión).
var publicPages = map[string]bool{
	"/":       true,
	"/login":  true,
	"/signup": true,
}

// RouteGuard protege las rutas de página por PRESENCIA de cookie, no por
// validez: es un filtro barato de primera línea. La validación real de la
// sesión ocurre en SessionMiddleware cuando la página llama a la API.
//
//   - Página protegida sin cookie  → 302 a /login?redirect=<ruta original>.
//   - /login o /signup con cookie  → 302 a /dashboard (ya hay sesión aparente).
//   - Las rutas /api y assets estáticos no pasan por aquí.
func RouteGuard(cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if strings.HasPrefix(path, "/api") || strings.Contains(path, ".") {
			return c.Next()
		}
		hasCookie := c.Cookies(cookieName) != ""

		if publicPages[path] {
			// Usuario aparentemente autenticado no tiene nada que hacer en login/signup.
			if hasCookie && (path == "/login" || path == "/signup") {
				return c.Redirect("/dashboard", fiber.StatusFound)
			}
			return c.Next()
		}

		if !hasCookie {
			return c.Redirect("/login?redirect="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
		}
		return c.Next()
	}
}
