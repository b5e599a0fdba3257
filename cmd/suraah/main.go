package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"suraah/internal/config"
	"suraah/internal/http/handlers"
	applog "suraah/internal/log"
	"suraah/internal/metrics"
	"suraah/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	store := repos.NewStore(db)
	if err := repos.SeedIfEmpty(store); err != nil {
		log.Fatal(err)
	}

	m := metrics.NewStoreMetrics()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/media/")
		},
	}))

	// ---------- Static media ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /media -> %s", mediaDir)

	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(store, cfg, m)

	api := app.Group("/api/v1")

	// Storefront
	api.Get("/products", deps.CatalogHandler.Products)
	api.Get("/products/watch", deps.CatalogHandler.WatchProducts)
	api.Get("/products/:id", deps.CatalogHandler.Product)
	api.Get("/categories", deps.CatalogHandler.Categories)
	api.Get("/categories/watch", deps.CatalogHandler.WatchCategories)

	// Order intent ("buy now" selection)
	api.Get("/intent", deps.IntentHandler.Get)
	api.Put("/intent", deps.IntentHandler.Set)
	api.Patch("/intent/quantity", deps.IntentHandler.UpdateQuantity)
	api.Delete("/intent", deps.IntentHandler.Clear)

	// Checkout & confirmation
	api.Get("/checkout", deps.CheckoutHandler.Summary)
	api.Post("/checkout", deps.CheckoutHandler.Submit)
	api.Get("/orders/:id", deps.CheckoutHandler.Confirmation)

	// Admin login (throttled)
	api.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)
	api.Post("/admin/logout", deps.AuthHandler.Logout)

	// Admin back office
	admin := api.Group("/admin", handlers.RequireAdmin(deps.Auth))
	admin.Get("/dashboard", deps.AdminHandler.DashboardStats)

	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Put("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Delete("/products/:id", deps.AdminHandler.DeleteProduct)
	admin.Post("/products/:id/stock", deps.AdminHandler.UpdateStock)

	admin.Post("/categories", deps.AdminHandler.CreateCategory)
	admin.Put("/categories/:id", deps.AdminHandler.UpdateCategory)
	admin.Delete("/categories/:id", deps.AdminHandler.DeleteCategory)

	admin.Get("/orders", deps.AdminHandler.ListOrders)
	admin.Get("/orders/watch", deps.AdminHandler.WatchOrders)
	admin.Get("/orders/:id", deps.AdminHandler.GetOrder)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Post("/orders/:id/payment", deps.AdminHandler.UpdatePaymentStatus)
	admin.Delete("/orders/:id", deps.AdminHandler.DeleteOrder)

	// Metrics (admin only)
	app.Get("/metrics", handlers.RequireAdmin(deps.Auth), adaptor.HTTPHandler(promhttp.Handler()))

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
