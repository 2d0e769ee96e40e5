package handlers

import (
	"promostore/internal/log"
	"promostore/internal/services"
	"promostore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartBody struct {
	ProductID        string `json:"productId"`
	Quantity         int    `json:"quantity"`
	SelectedColor    string `json:"selectedColor"`
	SelectedSize     string `json:"selectedSize"`
	BrandingMethodID string `json:"brandingMethodId"`
	BrandingColors   int    `json:"brandingColors"`
	CustomBranding   string `json:"customBranding"`
}

type cartPatch struct {
	Quantity         *int    `json:"quantity"`
	SelectedColor    *string `json:"selectedColor"`
	SelectedSize     *string `json:"selectedSize"`
	BrandingMethodID *string `json:"brandingMethodId"`
	BrandingColors   *int    `json:"brandingColors"`
	CustomBranding   *string `json:"customBranding"`
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(c.UserContext(), ensureSID(c))
	if err != nil {
		return err
	}
	return c.JSON(cv)
}

// POST /api/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var body cartBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	pid, ok := validate.ID(body.ProductID)
	if !ok {
		return badRequest(c, "productId", "missing productId")
	}
	if !validate.Qty(body.Quantity) {
		return badRequest(c, "quantity", "quantity must be at least 1")
	}
	mid, ok := validate.OptionalID(body.BrandingMethodID)
	if !ok {
		return badRequest(c, "brandingMethodId", "invalid brandingMethodId")
	}
	if !validate.Colors(body.BrandingColors) {
		return badRequest(c, "brandingColors", "invalid number of colors")
	}
	custom, ok := validate.Text(body.CustomBranding)
	if !ok {
		return badRequest(c, "customBranding", "customBranding is too long")
	}

	it, err := h.Cart.Add(c.UserContext(), sid, services.CartInput{
		ProductID:        pid,
		Quantity:         body.Quantity,
		Color:            body.SelectedColor,
		Size:             body.SelectedSize,
		BrandingMethodID: mid,
		BrandingColors:   body.BrandingColors,
		CustomBranding:   custom,
	})
	if err != nil {
		return fail(c, err)
	}
	log.Info(c, "cart.add", map[string]any{"product": pid, "qty": it.Quantity})
	return c.Status(fiber.StatusCreated).JSON(it)
}

// PUT /api/cart/:id
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var body cartPatch
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	if body.Quantity != nil && !validate.Qty(*body.Quantity) {
		return badRequest(c, "quantity", "quantity must be at least 1")
	}
	if body.BrandingMethodID != nil {
		mid, ok := validate.OptionalID(*body.BrandingMethodID)
		if !ok {
			return badRequest(c, "brandingMethodId", "invalid brandingMethodId")
		}
		body.BrandingMethodID = &mid
	}
	if body.BrandingColors != nil && !validate.Colors(*body.BrandingColors) {
		return badRequest(c, "brandingColors", "invalid number of colors")
	}
	if body.CustomBranding != nil {
		if _, ok := validate.Text(*body.CustomBranding); !ok {
			return badRequest(c, "customBranding", "customBranding is too long")
		}
	}

	it, err := h.Cart.Update(c.UserContext(), sid, id, services.CartUpdate{
		Quantity:         body.Quantity,
		Color:            body.SelectedColor,
		Size:             body.SelectedSize,
		BrandingMethodID: body.BrandingMethodID,
		BrandingColors:   body.BrandingColors,
		CustomBranding:   body.CustomBranding,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(it)
}

// DELETE /api/cart/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	if err := h.Cart.Remove(c.UserContext(), ensureSID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(c.UserContext(), ensureSID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
