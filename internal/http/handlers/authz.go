package handlers

import (
	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates a route on a live session cookie. Enforced at the
// edge, before any page or API handler runs.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if !auth.IsAdmin(sid) {
			applog.Security(c, "access.denied.admin", nil)
			return jsonErr(c, fiber.StatusUnauthorized, "admin session required")
		}
		return c.Next()
	}
}
