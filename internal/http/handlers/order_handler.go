package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shoplite/internal/domain"
	applog "shoplite/internal/log"
	"shoplite/internal/services"
	"shoplite/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type placeOrderRequest struct {
	// Items is accepted for wire compatibility but deliberately ignored:
	// checkout trusts only the server-side cart snapshot.
	Items           []any  `json:"items"`
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
	Note            string `json:"note"`
}

// POST /api/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	address, ok := validate.Text(req.ShippingAddress, 300)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid shippingAddress")
	}
	payment, ok := validate.Text(req.PaymentMethod, 40)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid paymentMethod")
	}
	note, _ := validate.Text(req.Note, 500)

	u := currentUser(c)
	o, err := h.Orders.Place(u.ID, address, payment, note)
	if err != nil {
		return fail(c, "order.place", err)
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "total": o.TotalAmount})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": o})
}

// GET /api/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.ListForUser(currentUser(c))
	if err != nil {
		return fail(c, "order.list", err)
	}
	return c.JSON(orders)
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	orderID, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	o, err := h.Orders.GetForUser(orderID, currentUser(c))
	if err != nil {
		return fail(c, "order.get", err)
	}
	return c.JSON(o)
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}

	o, err := h.Orders.Transition(orderID, domain.OrderStatus(req.Status), currentUser(c))
	if err != nil {
		return fail(c, "order.status", err)
	}
	applog.Audit(c, "order.status", map[string]any{"order_id": o.ID, "status": o.Status})
	return c.JSON(fiber.Map{"orderId": o.ID, "status": o.Status})
}
