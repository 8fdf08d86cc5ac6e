package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var payload = validator.New()

func jsonErr(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx) error {
	return jsonErr(c, fiber.StatusNotFound, "not found")
}
