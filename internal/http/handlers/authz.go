package handlers

import (
	"promostore/internal/domain"
	applog "promostore/internal/log"
	"promostore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Session gives every request a sid cookie and attaches the logged-in user,
// if any, to locals.
func Session(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := ensureSID(c)
		if u, err := auth.CurrentUser(c.UserContext(), sid); err == nil && u != nil {
			c.Locals("user", u)
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// RequireAdmin rejects anonymous sessions with 401 and non-admins with 403.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		u, err := auth.CurrentUser(c.UserContext(), sid)
		if err != nil {
			return err
		}
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
