package handlers

import (
	"promostore/internal/log"
	"promostore/internal/services"
	"promostore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type BrandingHandler struct {
	Pricing *services.PricingService
}

type calculateBody struct {
	ProductID        string `json:"productId"`
	Quantity         int    `json:"quantity"`
	BrandingMethodID string `json:"brandingMethodId"`
	Colors           int    `json:"colors"`
}

// POST /api/branding/calculate
func (h *BrandingHandler) Calculate(c *fiber.Ctx) error {
	var body calculateBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	pid, ok := validate.ID(body.ProductID)
	if !ok {
		return badRequest(c, "productId", "productId is required")
	}
	mid, ok := validate.ID(body.BrandingMethodID)
	if !ok {
		return badRequest(c, "brandingMethodId", "brandingMethodId is required")
	}
	if !validate.Qty(body.Quantity) {
		return badRequest(c, "quantity", "quantity must be at least 1")
	}
	if !validate.Colors(body.Colors) {
		return badRequest(c, "colors", "invalid number of colors")
	}

	q, err := h.Pricing.Calculate(c.UserContext(), pid, mid, body.Quantity, body.Colors)
	if err != nil {
		return fail(c, err)
	}
	log.Info(c, "branding.calculate", map[string]any{"product": pid, "method": mid, "qty": body.Quantity})
	return c.JSON(q)
}
