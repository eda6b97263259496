package cookie

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rideboard/site/config"
	"github.com/rideboard/site/filter"
)

const (
	visitorCookie = "visitor_id"
	sortCookie    = "listing_sort"
)

// GetVisitorID returns the visitor id, or "" when absent or malformed. An id
// issued earlier in the same request counts.
func GetVisitorID(c *fiber.Ctx) string {
	if id, ok := c.Locals(visitorCookie).(string); ok {
		return id
	}
	id := c.Cookies(visitorCookie)
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

// EnsureVisitorID returns the visitor id, issuing a new one if needed
func EnsureVisitorID(c *fiber.Ctx) string {
	if id := GetVisitorID(c); id != "" {
		return id
	}
	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     visitorCookie,
		Value:    id,
		MaxAge:   config.VisitorCookieMaxAge,
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Lax",
	})
	c.Locals(visitorCookie, id)
	return id
}

func GetSort(c *fiber.Ctx) filter.SortKey {
	return filter.ParseSortKey(c.Cookies(sortCookie))
}

func SetSort(c *fiber.Ctx, key filter.SortKey) {
	c.Cookie(&fiber.Cookie{
		Name:     sortCookie,
		Value:    string(key),
		MaxAge:   30 * 24 * 60 * 60, // 30 days
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Strict",
	})
}
