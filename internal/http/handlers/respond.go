package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "shoplite/internal/log"
	"shoplite/internal/repos"
	"shoplite/internal/services"
)

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// fail maps service errors onto the HTTP taxonomy: validation 400,
// missing rows 404, role problems 403, stock conflicts 409 (with
// productId and available so the client can re-prompt), everything
// else a generic 500.
func fail(c *fiber.Ctx, action string, err error) error {
	var stockErr *repos.InsufficientStockError
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return jsonError(c, fiber.StatusBadRequest, "cart is empty")
	case errors.Is(err, services.ErrInvalidTransition):
		return jsonError(c, fiber.StatusBadRequest, "invalid status transition")
	case errors.Is(err, services.ErrForbidden):
		applog.Security(c, action+".denied", nil)
		return jsonError(c, fiber.StatusForbidden, "forbidden")
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     "insufficient stock",
			"productId": stockErr.ProductID,
			"available": stockErr.Available,
		})
	case errors.Is(err, sql.ErrNoRows):
		return jsonError(c, fiber.StatusNotFound, "not found")
	}
	applog.Error(c, action, err, nil)
	return jsonError(c, fiber.StatusInternalServerError, "something went wrong")
}
