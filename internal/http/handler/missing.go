package handler

import (
	"github.com/gofiber/fiber/v2"

	"petcareapi/internal/service"
)

// GetAllMissingPets lists every active missing report, fully resolved.
func GetAllMissingPets(svc service.MissingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListActive(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(list)
	}
}

// GetMissingByID returns one report with pet, owner and sightings inline.
func GetMissingByID(svc service.MissingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := svc.Get(c.UserContext(), c.Params("missingId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(d)
	}
}

// AddMissing files a report from a multipart form; the last-seen photo is
// sent under "lastSeenImage". A pet with an active report is rejected.
func AddMissing(svc service.MissingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lastSeen, err := formTime(c, "lastSeenDateTime")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid lastSeenDateTime")
		}
		lat, err := formFloat(c, "latitude")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid latitude")
		}
		lng, err := formFloat(c, "longitude")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid longitude")
		}
		in := service.MissingInput{
			PetID:               c.FormValue("petId"),
			OwnerID:             c.FormValue("ownerId"),
			LastSeenAt:          lastSeen,
			LastSeenDescription: c.FormValue("lastSeenDescription"),
			Latitude:            lat,
			Longitude:           lng,
		}

		image, closeFn, err := formUpload(c, "lastSeenImage")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer closeFn()

		d, err := svc.Create(c.UserContext(), in, image)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(d)
	}
}

// MarkFound closes a report. Calling it again on a closed report succeeds.
func MarkFound(svc service.MissingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.MarkFound(c.UserContext(), c.Params("missingId")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Pet marked as found"})
	}
}
