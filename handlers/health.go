package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/rideboard/site/db"
	"github.com/rideboard/site/vehicle"
)

// HandleHealth returns the health status of the application
func HandleHealth(c *fiber.Ctx) error {
	health := map[string]interface{}{
		"status": "ok",
	}

	// Check database connectivity
	if err := db.Get().PingContext(c.UserContext()); err != nil {
		health["status"] = "unhealthy"
		health["database"] = "down"
		c.Status(fiber.StatusServiceUnavailable)
	} else {
		health["database"] = "up"
	}

	if stats := vehicle.CacheStats(); stats != nil {
		health["vehicle_cache"] = stats
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return json.NewEncoder(c).Encode(health)
}
