package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/rideboard/site/config"
)

// GlobalRateLimiter limits every visitor by IP
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.ServerRateLimitMax,
		Expiration: config.ServerRateLimitExp,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests. Please slow down.")
		},
	})
}

// FavoriteRateLimiter is stricter, since every toggle writes to the database
func FavoriteRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.ServerRateLimitMax / 4,
		Expiration: config.ServerRateLimitExp,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	})
}
