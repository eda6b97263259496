package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rideboard/site/cookie"
	"github.com/rideboard/site/ui"
	"github.com/rideboard/site/vehicle"
)

// lookupVehicle loads the active vehicle named by the :id route param
func lookupVehicle(c *fiber.Ctx) (vehicle.Vehicle, error) {
	v, err := vehicle.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, vehicle.ErrNotFound) {
		return v, fiber.NewError(fiber.StatusNotFound, "Vehicle not found")
	}
	if err != nil {
		return v, err
	}
	return v, nil
}

func HandleVehicleDetail(c *fiber.Ctx) error {
	v, err := lookupVehicle(c)
	if err != nil {
		return err
	}
	favorited := false
	if visitorID := cookie.GetVisitorID(c); visitorID != "" {
		favorited, _ = vehicle.IsFavorite(visitorID, v.ID)
	}
	return render(c, ui.VehicleDetailPage(v, favorited, c.Path()))
}

// HandleContact sends the visitor to a WhatsApp chat with the seller
func HandleContact(c *fiber.Ctx) error {
	v, err := lookupVehicle(c)
	if err != nil {
		return err
	}
	url, ok := v.ContactURL()
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "This seller has no WhatsApp number")
	}
	return c.Redirect(url, fiber.StatusFound)
}
