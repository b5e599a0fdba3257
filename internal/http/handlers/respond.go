package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"suraah/internal/domain"
	applog "suraah/internal/log"
	"suraah/internal/services"
)

// fail maps service errors onto the API error surface: validation → 400 with
// the offending field(s), missing document → 404, anything else → 500 with a
// non-leaking message.
func fail(c *fiber.Ctx, action string, err error) error {
	var fieldErrs services.FieldErrors
	if errors.As(err, &fieldErrs) {
		applog.Security(c, action+".validation", map[string]any{"fields": fieldErrs})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": fieldErrs,
		})
	}
	if ve, ok := domain.AsValidation(err); ok {
		applog.Security(c, action+".validation", map[string]any{"field": ve.Field})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Message,
			"field": ve.Field,
		})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "something went wrong, please try again",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
