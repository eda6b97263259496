package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rideboard/site/cookie"
	"github.com/rideboard/site/ui"
	"github.com/rideboard/site/vehicle"
)

// HandleAddFavorite saves a vehicle for the visitor, issuing a visitor id if needed
func HandleAddFavorite(c *fiber.Ctx) error {
	v, err := lookupVehicle(c)
	if err != nil {
		return err
	}
	visitorID := cookie.EnsureVisitorID(c)
	if err := vehicle.AddFavorite(visitorID, v.ID); err != nil {
		log.Printf("[favorites] Failed to add %s: %v", v.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save favorite")
	}
	return render(c, ui.FavoriteButton(v.ID, true))
}

func HandleRemoveFavorite(c *fiber.Ctx) error {
	vehicleID := c.Params("id")
	if visitorID := cookie.GetVisitorID(c); visitorID != "" {
		if err := vehicle.RemoveFavorite(visitorID, vehicleID); err != nil {
			log.Printf("[favorites] Failed to remove %s: %v", vehicleID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove favorite")
		}
	}
	return render(c, ui.FavoriteButton(vehicleID, false))
}

func HandleFavorites(c *fiber.Ctx) error {
	var vehicles []vehicle.Vehicle
	if visitorID := cookie.GetVisitorID(c); visitorID != "" {
		var err error
		vehicles, err = vehicle.Favorites(c.UserContext(), visitorID)
		if err != nil {
			return err
		}
	}
	return render(c, ui.FavoritesPage(vehicles, c.Path()))
}
