package handlers

import (
	"strings"

	"promostore/internal/log"
	"promostore/internal/repos"
	"promostore/internal/services"
	"promostore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/products?category&brand&search&page&limit
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var f repos.ProductFilter
	if raw := strings.TrimSpace(c.Query("search")); raw != "" {
		q, ok := validate.Q(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "search", "value": raw})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Enter a valid keyword"})
		}
		f.Search = q
	}
	if raw := c.Query("category"); raw != "" && raw != "all" {
		cat, ok := validate.Name(raw)
		if !ok {
			return badRequest(c, "category", "Invalid category")
		}
		f.Category = cat
	}
	if raw := c.Query("brand"); raw != "" {
		brand, ok := validate.Name(raw)
		if !ok {
			return badRequest(c, "brand", "Invalid brand")
		}
		f.Brand = brand
	}

	page, err := h.Catalog.ListProducts(c.UserContext(), f, c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		log.Error(c, "products.list.fail", err, nil)
		return err
	}
	return c.JSON(page)
}

// GET /api/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}
