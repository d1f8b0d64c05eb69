package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shoplite/internal/domain"
	applog "shoplite/internal/log"
	"shoplite/internal/services"
	"shoplite/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	prods, err := h.Catalog.List()
	if err != nil {
		return fail(c, "product.list", err)
	}
	return c.JSON(prods)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, "product.get", err)
	}
	return c.JSON(p)
}

// GET /api/products/category/:category
func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	category, ok := validate.Category(c.Params("category"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid category")
	}
	prods, err := h.Catalog.ListByCategory(category)
	if err != nil {
		return fail(c, "product.by_category", err)
	}
	return c.JSON(prods)
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

func (r *productRequest) valid() bool {
	if _, ok := validate.Text(r.Name, 120); !ok {
		return false
	}
	if _, ok := validate.Category(r.Category); !ok {
		return false
	}
	return r.Price >= 0 && r.Stock >= 0
}

// POST /api/products (seller)
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil || !req.valid() {
		return jsonError(c, fiber.StatusBadRequest, "invalid product")
	}
	u := currentUser(c)
	p, err := h.Catalog.Create(u.ID, domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		return fail(c, "product.create", err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/products/:id (seller; owner or admin)
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil || !req.valid() {
		return jsonError(c, fiber.StatusBadRequest, "invalid product")
	}
	p, err := h.Catalog.Update(currentUser(c), domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		return fail(c, "product.update", err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": p.ID})
	return c.JSON(p)
}

// DELETE /api/products/:id (seller; soft-delete)
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Catalog.Delete(currentUser(c), id); err != nil {
		return fail(c, "product.delete", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "product deactivated"})
}
