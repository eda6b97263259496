package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rideboard/site/cookie"
	"github.com/rideboard/site/search"
	"github.com/rideboard/site/ui"
)

// HandleDeleteSearch removes one term from the visitor's recent searches
func HandleDeleteSearch(c *fiber.Ctx) error {
	searchID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid search id")
	}
	visitorID := cookie.GetVisitorID(c)
	if visitorID != "" {
		if err := search.DeleteSearch(searchID, visitorID); err != nil {
			log.Printf("[search] Failed to delete search %d: %v", searchID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete search")
		}
	}
	return render(c, ui.RecentSearches(recentSearches(visitorID)))
}

// HandleClearSearches empties the visitor's recent searches
func HandleClearSearches(c *fiber.Ctx) error {
	if visitorID := cookie.GetVisitorID(c); visitorID != "" {
		if err := search.DeleteAllSearches(visitorID); err != nil {
			log.Printf("[search] Failed to clear searches: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear searches")
		}
	}
	return render(c, ui.RecentSearches(nil))
}
