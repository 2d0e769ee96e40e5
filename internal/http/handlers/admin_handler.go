package handlers

import (
	"context"

	"promostore/internal/domain"
	applog "promostore/internal/log"
	"promostore/internal/services"
	"promostore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// Syncer runs a full catalog sync.
type Syncer interface {
	SyncAll(ctx context.Context) error
}

type SyncLogReader interface {
	ListLatest(ctx context.Context, limit int) ([]domain.SyncRunLog, error)
}

type AdminHandler struct {
	Sync   Syncer
	Logs   SyncLogReader
	Quotes *services.QuoteService
}

// POST /api/sync runs a full sync in the request. The client sees only
// success or failure; details go to the run log.
func (h *AdminHandler) TriggerSync(c *fiber.Ctx) error {
	applog.Audit(c, "admin.sync.trigger", nil)
	if err := h.Sync.SyncAll(c.UserContext()); err != nil {
		applog.Error(c, "admin.sync.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Sync failed"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Sync completed"})
}

// GET /api/sync/logs?limit
func (h *AdminHandler) SyncLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	logs, err := h.Logs.ListLatest(c.UserContext(), limit)
	if err != nil {
		applog.Error(c, "admin.sync.logs.fail", err, nil)
		return err
	}
	return c.JSON(logs)
}

// GET /api/quotes
func (h *AdminHandler) ListQuotes(c *fiber.Ctx) error {
	qs, err := h.Quotes.List(c.UserContext(), 100)
	if err != nil {
		applog.Error(c, "admin.quotes.list.fail", err, nil)
		return err
	}
	return c.JSON(qs)
}

type statusBody struct {
	Status string `json:"status"`
}

// PUT /api/quotes/:id/status
func (h *AdminHandler) UpdateQuoteStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quote not found"})
	}
	var body statusBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	if err := h.Quotes.SetStatus(c.UserContext(), id, body.Status); err != nil {
		applog.Warn(c, "admin.quotes.update.fail", err, map[string]any{"quote_id": id})
		return fail(c, err)
	}
	applog.Audit(c, "admin.quotes.update", map[string]any{"quote_id": id, "status": body.Status})
	return c.JSON(fiber.Map{"success": true})
}
