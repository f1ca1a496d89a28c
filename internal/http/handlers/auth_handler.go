package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "shopforge/internal/log"
	"shopforge/internal/services"
	"shopforge/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentialsBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func setSIDCookie(c *fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // set true behind HTTPS
	})
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body credentialsBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}
	name, okName := validate.Name(body.Name)
	email, okEmail := validate.Email(body.Email)
	var problems []string
	if !okName {
		problems = append(problems, "name is required (max 60 characters)")
	}
	if !okEmail {
		problems = append(problems, "a valid email is required")
	}
	if !validate.Password(body.Password) {
		problems = append(problems, "password must be 8-64 characters with upper, lower, digit and symbol")
	}
	if len(problems) > 0 {
		applog.Security(c, "auth.register.invalid", map[string]any{"email": body.Email})
		return badRequest(c, problems...)
	}

	u, err := h.Auth.Register(name, email, body.Password)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "auth.register", map[string]any{"user_id": u.ID})
	return okMsg(c, fiber.StatusCreated, "account created", u)
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body credentialsBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}
	email, okEmail := validate.Email(body.Email)
	if !okEmail || body.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return fail(c, services.ErrBadCreds)
	}

	sid := uuid.NewString()
	u, err := h.Auth.Login(sid, email, body.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, err)
	}
	setSIDCookie(c, sid)

	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return ok(c, fiber.StatusOK, fiber.Map{"token": sid, "user": u})
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := sessionToken(c)
	if sid != "" {
		_ = h.Auth.Logout(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return okMsg(c, fiber.StatusOK, "logged out", nil)
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, currentUser(c))
}
