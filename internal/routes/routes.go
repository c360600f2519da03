package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/mathaussantos/funipro-backend/internal/apps"
	"github.com/mathaussantos/funipro-backend/internal/config"
	"github.com/mathaussantos/funipro-backend/internal/handlers"
	"github.com/mathaussantos/funipro-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	moduleHandler *handlers.ModuleHandler,
	healthHandler *handlers.HealthHandler,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no auth required)
	api.Get("/health", healthHandler.Check)

	// Public auth endpoints, stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	// Admin user management (JWT + admin role required)
	users := api.Group("/auth/users",
		middleware.JWTProtected(cfg),
		middleware.RequireUser(db),
		middleware.AdminRequired(),
	)
	users.Get("/", authHandler.ListUsers)
	users.Delete("/:userId", authHandler.DeleteUser)
	users.Put("/:userId/password", authHandler.UpdateUserPassword)
	api.Post("/auth/admin/register",
		middleware.JWTProtected(cfg),
		middleware.RequireUser(db),
		middleware.AdminRequired(),
		authHandler.AdminRegister,
	)

	// Module catalog and per-user entitlements (admin only)
	modules := api.Group("/module",
		middleware.JWTProtected(cfg),
		middleware.RequireUser(db),
		middleware.AdminRequired(),
	)
	modules.Get("/", moduleHandler.ListModules)
	modules.Get("/user/:userId", moduleHandler.GetUserModules)
	modules.Put("/user/:userId", moduleHandler.UpdateUserModules)

	// Feature plugins mount their own auth and entitlement gates.
	for _, p := range plugins {
		p.RegisterRoutes(api, db, cfg)
	}
}
