package routes

import (
	"time"

	"github.com/anotherclass/colortherock/internal/config"
	"github.com/anotherclass/colortherock/internal/handlers"
	"github.com/anotherclass/colortherock/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
	Board  *handlers.BoardHandler
	Report *handlers.ReportHandler
}

// LimiterStorage returns shared Redis storage for the rate limiters, or nil
// for the limiter's in-memory default when Redis is not configured.
func LimiterStorage(cfg *config.Config) fiber.Storage {
	if !cfg.RedisEnabled() {
		return nil
	}
	return redis.New(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		Database: cfg.RedisDB,
		Reset:    false,
	})
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers, storage fiber.Storage) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Storage:           storage,
	}))

	api.Get("/health", h.Health.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return "auth:" + c.IP() },
		Storage:           storage,
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", middleware.JWTProtected(cfg), h.Auth.Logout)

	// Board
	api.Get("/posts", h.Board.ListPosts)
	api.Get("/posts/mine", middleware.JWTProtected(cfg), h.Board.ListMine)
	api.Get("/posts/:id", h.Board.GetPost)
	api.Post("/posts", middleware.JWTProtected(cfg), h.Board.CreatePost)
	api.Delete("/posts/:id", middleware.JWTProtected(cfg), h.Board.DeletePost)

	// Reports
	api.Post("/reports", middleware.JWTProtected(cfg), h.Report.CreateReport)

	// Admin moderation panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/posts/hidden", h.Board.ListHidden)
	admin.Get("/posts/:id/report-count", h.Report.ReportCount)
	admin.Post("/posts/:id/evaluate", h.Report.Evaluate)
}
