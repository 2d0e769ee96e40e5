package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "promostore/internal/log"
	"promostore/internal/metrics"
)

// Routes mounts the JSON API on app. Global middleware (request ids, access
// log, helmet, global limiter) is the caller's concern.
func Routes(app *fiber.App, d *Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api", Session(d.Auth))

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Detail)
	availLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/products/:id/availability", availLimiter, d.InventoryHandler.Check)
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/branding-methods", d.CategoryHandler.BrandingMethods)
	api.Post("/branding/calculate", d.BrandingHandler.Calculate)

	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart", d.CartHandler.Add)
	api.Delete("/cart", d.CartHandler.Clear)
	api.Put("/cart/:id", d.CartHandler.Update)
	api.Delete("/cart/:id", d.CartHandler.Remove)

	admin := RequireAdmin(d.Auth)
	api.Post("/quotes", d.QuoteHandler.Create)
	api.Get("/quotes", admin, d.AdminHandler.ListQuotes)
	api.Get("/quotes/:id", d.QuoteHandler.View)
	api.Put("/quotes/:id/status", admin, d.AdminHandler.UpdateQuoteStatus)

	api.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	api.Post("/logout", d.AuthHandler.Logout)

	api.Post("/sync", admin, d.AdminHandler.TriggerSync)
	api.Get("/sync/logs", admin, d.AdminHandler.SyncLogs)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Page not found"})
	})
}
