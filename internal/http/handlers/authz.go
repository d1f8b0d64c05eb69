package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shoplite/internal/domain"
	applog "shoplite/internal/log"
	"shoplite/internal/services"
)

// RequireUser resolves the session cookie to a user and stores it in
// Locals; requests without a live session get 401.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return jsonError(c, fiber.StatusUnauthorized, "authentication required")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return jsonError(c, fiber.StatusUnauthorized, "authentication required")
		}
		c.Locals("user", u)
		c.Locals("userID", u.ID)
		return c.Next()
	}
}

// RequireSeller additionally enforces the seller/admin role.
func RequireSeller(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return jsonError(c, fiber.StatusUnauthorized, "authentication required")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return jsonError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !u.CanManageOrders() {
			applog.Security(c, "access.denied.seller", map[string]any{"user": u.ID})
			return jsonError(c, fiber.StatusForbidden, "forbidden")
		}
		c.Locals("user", u)
		c.Locals("userID", u.ID)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
