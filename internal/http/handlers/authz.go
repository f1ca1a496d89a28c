package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopforge/internal/domain"
	applog "shopforge/internal/log"
	"shopforge/internal/services"
)

// sessionToken accepts the sid cookie or an Authorization bearer token; the
// bearer value is the same session id, issued at login.
func sessionToken(c *fiber.Ctx) string {
	if sid := c.Cookies("sid"); sid != "" {
		return sid
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := sessionToken(c)
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(envelope{Success: false, Message: "authentication required"})
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.user", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(envelope{Success: false, Message: "authentication required"})
		}
		c.Locals("user", u)
		c.Locals("userID", u.ID)
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := sessionToken(c)
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(envelope{Success: false, Message: "authentication required"})
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(envelope{Success: false, Message: "authentication required"})
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return c.Status(fiber.StatusForbidden).JSON(envelope{Success: false, Message: "admin access required"})
		}
		c.Locals("user", u)
		c.Locals("userID", u.ID)
		return c.Next()
	}
}
