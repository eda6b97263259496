package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// queryValues parses the raw query string. Malformed pairs are dropped.
func queryValues(c *fiber.Ctx) url.Values {
	values, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	return values
}

func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}
