package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shopforge/internal/cache"
	"shopforge/internal/config"
	"shopforge/internal/http/handlers"
	applog "shopforge/internal/log"
	"shopforge/internal/repos"
	"shopforge/internal/services"
)

func main() {
	cfg := config.Load()

	if err := applog.Init(cfg.LogFile); err != nil {
		log.Fatal(err)
	}
	defer applog.Sync()

	db, err := repos.OpenDB(cfg.DBDSN, cfg.SeedDemo)
	if err != nil {
		log.Fatal(err)
	}

	var stats cache.StatsCache = cache.Nop{}
	if cfg.RedisAddr != "" {
		stats = cache.NewRedis(cfg.RedisAddr)
		log.Printf("[cache] order stats cached via redis at %s", cfg.RedisAddr)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Avoid leaking internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Something went wrong. Please try again.",
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
			p := c.Path()
			return p == "/healthz" || p == "/metrics"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "message": "rate limit exceeded, retry soon",
			})
		},
	}))

	deps := handlers.NewDeps(db, authSvc, stats)
	requireUser := handlers.RequireUser(authSvc)
	requireAdmin := handlers.RequireAdmin(authSvc)

	api := app.Group("/api/v1")

	// Auth (login throttled)
	auth := api.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "message": "Too many attempts. Please try again later.",
			})
		},
	}), deps.AuthHandler.Login)
	auth.Post("/logout", deps.AuthHandler.Logout)
	auth.Get("/me", requireUser, deps.AuthHandler.Me)

	// Catalog (public reads, admin writes)
	api.Get("/products/featured", deps.ProductHandler.Featured)
	api.Get("/products", deps.ProductHandler.List)
	api.Post("/products", requireAdmin, deps.AdminHandler.CreateProduct)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Put("/products/:id/stock", requireAdmin, deps.AdminHandler.SetStock)
	api.Put("/products/:id", requireAdmin, deps.AdminHandler.UpdateProduct)
	api.Delete("/products/:id", requireAdmin, deps.AdminHandler.DeleteProduct)
	api.Post("/products/:id/reviews", requireUser, deps.ProductHandler.AddReview)

	// Cart
	cart := api.Group("/cart", requireUser)
	cart.Get("/", deps.CartHandler.Get)
	cart.Delete("/", deps.CartHandler.Clear)
	cart.Post("/items", deps.CartHandler.AddItem)
	cart.Put("/items/:productId", deps.CartHandler.UpdateItem)
	cart.Delete("/items/:productId", deps.CartHandler.RemoveItem)
	cart.Post("/validate", deps.CartHandler.Validate)

	// Orders (admin routes before :id so "admin" is not captured as an id)
	api.Get("/orders/admin/stats", requireAdmin, deps.OrderHandler.Stats)
	api.Get("/orders/admin", requireAdmin, deps.OrderHandler.ListAll)
	api.Put("/orders/admin/:id/status", requireAdmin, deps.OrderHandler.UpdateStatus)
	api.Post("/orders", requireUser, deps.OrderHandler.Create)
	api.Get("/orders", requireUser, deps.OrderHandler.List)
	api.Get("/orders/:id", requireUser, deps.OrderHandler.Get)
	api.Put("/orders/:id/pay", requireUser, deps.OrderHandler.Pay)
	api.Put("/orders/:id/cancel", requireUser, deps.OrderHandler.Cancel)

	// Wishlist
	wish := api.Group("/wishlist", requireUser)
	wish.Get("/", deps.WishlistHandler.List)
	wish.Post("/", deps.WishlistHandler.Save)
	wish.Delete("/:productId", deps.WishlistHandler.Unsave)

	// Users (admin)
	admin := api.Group("/admin", requireAdmin)
	admin.Get("/users", deps.AdminHandler.ListUsers)
	admin.Delete("/users/:id", deps.AdminHandler.DeleteUser)

	// Health & metrics
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 404
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "message": "not found",
		})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
