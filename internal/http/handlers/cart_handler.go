package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "shoplite/internal/log"
	"shoplite/internal/repos"
	"shoplite/internal/services"
	"shoplite/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(currentUser(c).ID)
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(cv.Items)
}

type addCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// POST /api/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addCartRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	productID, ok := validate.ID(req.ProductID)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid productId")
	}
	if !validate.Quantity(req.Quantity) {
		return jsonError(c, fiber.StatusBadRequest, "invalid quantity")
	}

	item, err := h.Cart.Add(currentUser(c).ID, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonError(c, fiber.StatusBadRequest, "unknown product")
		}
		return fail(c, "cart.add", err)
	}
	applog.Info(c, "cart.add", map[string]any{"product_id": productID, "quantity": req.Quantity})
	return c.Status(fiber.StatusCreated).JSON(item)
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// PUT /api/cart/:id
func (h *CartHandler) Update(c *fiber.Ctx) error {
	itemID, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var req updateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	// Below-1 quantities are rejected, not floored.
	if !validate.Quantity(req.Quantity) {
		return jsonError(c, fiber.StatusBadRequest, "invalid quantity")
	}

	item, err := h.Cart.UpdateQuantity(currentUser(c).ID, itemID, req.Quantity)
	if err != nil {
		// The route contract has no 409: a stale stock check here is a
		// plain validation failure.
		var stockErr *repos.InsufficientStockError
		if errors.As(err, &stockErr) {
			return jsonError(c, fiber.StatusBadRequest, stockErr.Error())
		}
		return fail(c, "cart.update", err)
	}
	return c.JSON(item)
}

// DELETE /api/cart/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	itemID, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Cart.Remove(currentUser(c).ID, itemID); err != nil {
		return fail(c, "cart.remove", err)
	}
	return c.JSON(fiber.Map{"message": "removed"})
}
