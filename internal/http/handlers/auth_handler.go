package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "suraah/internal/log"
	"suraah/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// Login issues the admin session token (24h expiry by default). Failures are
// security-logged; the route is rate-limited at the router.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid login payload")
	}

	token, expires, err := h.Auth.Login(body.Username, body.Password)
	if err != nil {
		applog.Security(c, "admin.login.fail", map[string]any{"username": body.Username})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "admin_token",
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	applog.Audit(c, "admin.login", map[string]any{"username": body.Username})
	return c.JSON(fiber.Map{
		"token":     token,
		"expiresAt": expires.UTC().Format(time.RFC3339),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "admin_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"ok": true})
}
