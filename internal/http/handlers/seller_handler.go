package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shoplite/internal/services"
)

type SellerHandler struct {
	Seller *services.SellerService
}

// GET /api/seller/dashboard
func (h *SellerHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Seller.Dashboard(currentUser(c).ID)
	if err != nil {
		return fail(c, "seller.dashboard", err)
	}
	return c.JSON(stats)
}

// GET /api/seller/orders
func (h *SellerHandler) Orders(c *fiber.Ctx) error {
	orders, err := h.Seller.ListOrders(currentUser(c).ID)
	if err != nil {
		return fail(c, "seller.orders", err)
	}
	return c.JSON(orders)
}

// GET /api/seller/products
func (h *SellerHandler) Products(c *fiber.Ctx) error {
	prods, err := h.Seller.Products(currentUser(c).ID)
	if err != nil {
		return fail(c, "seller.products", err)
	}
	return c.JSON(prods)
}
