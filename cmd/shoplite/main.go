package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shoplite/internal/config"
	"shoplite/internal/http/handlers"
	applog "shoplite/internal/log"
	"shoplite/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and hide internals behind a generic message
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong",
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
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db)
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, retry later"})
		},
	}), deps.AuthHandler.Login)
	auth.Post("/logout", deps.AuthHandler.Logout)
	auth.Get("/me", handlers.RequireUser(deps.Auth), deps.AuthHandler.Me)

	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/category/:category", deps.ProductHandler.ByCategory)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", handlers.RequireSeller(deps.Auth), deps.ProductHandler.Create)
	api.Put("/products/:id", handlers.RequireSeller(deps.Auth), deps.ProductHandler.Update)
	api.Delete("/products/:id", handlers.RequireSeller(deps.Auth), deps.ProductHandler.Delete)

	cart := api.Group("/cart", handlers.RequireUser(deps.Auth))
	cart.Get("/", deps.CartHandler.View)
	cart.Post("/", deps.CartHandler.Add)
	cart.Put("/:id", deps.CartHandler.Update)
	cart.Delete("/:id", deps.CartHandler.Remove)

	orders := api.Group("/orders", handlers.RequireUser(deps.Auth))
	orders.Post("/", deps.OrderHandler.Place)
	orders.Get("/", deps.OrderHandler.List)
	orders.Get("/:id", deps.OrderHandler.Get)
	orders.Put("/:id/status", deps.OrderHandler.UpdateStatus)

	seller := api.Group("/seller", handlers.RequireSeller(deps.Auth))
	seller.Get("/dashboard", deps.SellerHandler.Dashboard)
	seller.Get("/orders", deps.SellerHandler.Orders)
	seller.Get("/products", deps.SellerHandler.Products)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
