package handlers

import (
	applog "tienda/internal/log"
	"tienda/internal/repos"

	"github.com/gofiber/fiber/v2"
)

type StatusHandler struct {
	Statuses *repos.StatusRepo
}

// List returns active statuses in display order.
func (h *StatusHandler) List(c *fiber.Ctx) error {
	sts, err := h.Statuses.ListActive()
	if err != nil {
		applog.Error(c, "statuses.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"statuses": sts})
}
