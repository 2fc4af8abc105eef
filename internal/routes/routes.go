package routes

import (
	"time"

	"github.com/gingerhq/ginger-backend/internal/config"
	"github.com/gingerhq/ginger-backend/internal/handlers"
	"github.com/gingerhq/ginger-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	matchHandler *handlers.MatchHandler,
	chatHandler *handlers.ChatHandler,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Signup/login get a stricter limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/signup", authLimiter, authHandler.Signup)
	api.Post("/verify-otp", authLimiter, authHandler.VerifyOtp)
	api.Post("/login", authLimiter, authHandler.Login)

	// Protected routes (JWT required)
	jwt := middleware.JWTProtected(cfg)
	api.Post("/logout", jwt, authHandler.Logout)
	api.Get("/user", jwt, profileHandler.GetUser)
	api.Get("/random-match", jwt, matchHandler.RandomCandidate)
	api.Post("/vibe-decision", jwt, matchHandler.RecordDecision)
	api.Get("/matches", jwt, matchHandler.ListMatches)
	api.Get("/messages/:matchId", jwt, chatHandler.GetMessages)
	api.Post("/send-message", jwt, chatHandler.SendMessage)
	api.Get("/profile", jwt, profileHandler.GetProfile)
	api.Put("/profile", jwt, profileHandler.UpdateProfile)
}
