package handlers

import (
	"promostore/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(cats)
}

// GET /api/branding-methods
func (h *CategoryHandler) BrandingMethods(c *fiber.Ctx) error {
	methods, err := h.Catalog.ListBrandingMethods(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(methods)
}
