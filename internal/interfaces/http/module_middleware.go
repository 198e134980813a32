package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/erp-lite/internal/application/dto"
	"github.com/tu-usuario/erp-lite/internal/domain/rbac"
)

// RequireModule devuelve un middleware que verifica si el rol de la sesión
// tiene visible el módulo dado. Debe usarse DESPUÉS de SessionMiddleware
// (necesita LocalRole).
//
//   - 401 → no hay rol resuelto (el middleware de sesión debió ponerlo).
//   - 403 → el rol no tiene el módulo (ej. staff en finance o dashboard).
func RequireModule(module string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "rol no resuelto en la sesión",
			})
		}
		if !rbac.CanAccessModule(role, module) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el módulo '" + module + "' no está disponible para el rol '" + role + "'",
			})
		}
		return c.Next()
	}
}
