package handlers

import (
	"errors"
	"time"

	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks the admin credentials and sets the opaque session cookie:
// 7 days, http-only, lax same-site.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := payload.Struct(req); err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return jsonErr(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	sid, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return jsonErr(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(h.Auth.SessionTTL),
	})
	applog.Audit(c, "auth.login.success", map[string]any{"email": req.Email})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
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
	return c.JSON(fiber.Map{"ok": true})
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// ChangePassword runs behind RequireAdmin. The new password's length is
// checked before any database write.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := payload.Struct(req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "current and new password required")
	}

	err := h.Auth.ChangePassword(req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrWeakPassword):
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrBadCreds):
		applog.Security(c, "auth.password.fail", nil)
		return jsonErr(c, fiber.StatusUnauthorized, "current password is incorrect")
	case err != nil:
		applog.Error(c, "auth.password.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	applog.Audit(c, "auth.password.change", nil)
	return c.JSON(fiber.Map{"ok": true})
}
