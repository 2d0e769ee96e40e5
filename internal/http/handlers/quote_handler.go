package handlers

import (
	applog "promostore/internal/log"
	"promostore/internal/services"
	"promostore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type QuoteHandler struct {
	Quotes *services.QuoteService
}

type quoteBody struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	CompanyName   string `json:"companyName"`
	Notes         string `json:"notes"`
}

// POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var body quoteBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	name, ok := validate.Name(body.CustomerName)
	if !ok {
		return badRequest(c, "customerName", "name must be 1-100 characters")
	}
	email, ok := validate.Email(body.CustomerEmail)
	if !ok {
		return badRequest(c, "customerEmail", "invalid email")
	}
	phone, ok := validate.Phone(body.CustomerPhone)
	if !ok {
		return badRequest(c, "customerPhone", "invalid phone number")
	}
	company, ok := validate.Text(body.CompanyName)
	if !ok {
		return badRequest(c, "companyName", "company name is too long")
	}
	notes, ok := validate.Text(body.Notes)
	if !ok {
		return badRequest(c, "notes", "notes are too long")
	}

	q, err := h.Quotes.Request(c.UserContext(), sid, services.Contact{
		Name: name, Email: email, Phone: phone, Company: company, Notes: notes,
	})
	if err != nil {
		applog.Warn(c, "quote.create.fail", err, nil)
		return fail(c, err)
	}
	applog.Audit(c, "quote.create", map[string]any{"quote_id": q.ID, "total": q.TotalAmount.StringFixed(2), "items": len(q.Items)})
	return c.Status(fiber.StatusCreated).JSON(q)
}

// GET /api/quotes/:id
func (h *QuoteHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quote not found"})
	}
	q, err := h.Quotes.Get(c.UserContext(), id, ensureSID(c), currentUser(c).IsAdmin())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(q)
}
