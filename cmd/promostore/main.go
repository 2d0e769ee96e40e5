package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"promostore/internal/cache"
	"promostore/internal/catalogsync"
	"promostore/internal/config"
	"promostore/internal/http/handlers"
	applog "promostore/internal/log"
	"promostore/internal/metrics"
	"promostore/internal/repos"
	"promostore/internal/services"
	"promostore/internal/vendor"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if cfg.AdminPassword != "" {
		if err := repos.EnsureAdmin(db, cfg.AdminEmail, "Administrator", cfg.AdminPassword); err != nil {
			log.Fatal(err)
		}
	} else {
		applog.Warn(nil, "admin.disabled", nil, map[string]any{"reason": "ADMIN_PASSWORD not set"})
	}

	store := repos.NewCatalogRepo(db)
	if cfg.SeedSampleData {
		if _, err := repos.SeedSampleData(context.Background(), store); err != nil {
			log.Fatal(err)
		}
	}

	// Cache: redis when configured, otherwise in-process
	var kv cache.Cache = cache.NewMemory()
	if cfg.Redis != "" {
		rc, err := cache.NewRedis(cfg.Redis, "promostore:")
		if err != nil {
			applog.Warn(nil, "cache.redis.unavailable", err, map[string]any{"addr": cfg.Redis})
		} else {
			defer rc.Close()
			kv = rc
		}
	}
	catalog := services.NewCatalogService(store, kv, cfg.CacheTTL)

	client := vendor.NewClient(vendor.Config{
		BaseURL:       cfg.Vendor.BaseURL,
		AuthURL:       cfg.Vendor.AuthURL,
		Username:      cfg.Vendor.Username,
		Password:      cfg.Vendor.Password,
		CustomerCode:  cfg.Vendor.CustomerCode,
		HTTPClient:    &http.Client{Timeout: cfg.Vendor.Timeout},
		RatePerMinute: cfg.Vendor.RatePerMinute,
	})
	scheduler := catalogsync.NewScheduler(client, store, repos.NewSyncLogRepo(db),
		catalogsync.WithInterval(cfg.Sync.Interval),
		catalogsync.WithAfterSync(func() { catalog.Invalidate(context.Background()) }),
	)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(metrics.Middleware())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/healthz" || p == "/metrics"
		},
	}))

	handlers.Routes(app, handlers.NewDeps(db, catalog, scheduler))

	if cfg.Vendor.HasCredentials() && cfg.Sync.OnStart {
		scheduler.Start()
	} else {
		applog.Info(nil, "sync.scheduler.disabled", map[string]any{"has_credentials": cfg.Vendor.HasCredentials()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- app.Listen(":" + cfg.Port) }()

	select {
	case err := <-errCh:
		scheduler.Stop()
		scheduler.Wait()
		log.Fatal(err)
	case <-ctx.Done():
	}

	log.Println("shutting down...")
	if err := app.ShutdownWithTimeout(20 * time.Second); err != nil {
		log.Printf("[warn] shutdown: %v", err)
	}
	scheduler.Stop()
	scheduler.Wait()
	log.Println("stopped")
}
