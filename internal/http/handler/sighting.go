package handler

import (
	"github.com/gofiber/fiber/v2"

	"petcareapi/internal/service"
)

// GetAllSightings lists every sighting with the reporter resolved.
func GetAllSightings(svc service.SightingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.GetAll(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(list)
	}
}

// AddSighting reports a sighting from a multipart form; the photo is sent
// under "sightingImage".
func AddSighting(svc service.SightingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		occurred, err := formTime(c, "sightingDateTime")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid sightingDateTime")
		}
		lat, err := formFloat(c, "latitude")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid latitude")
		}
		lng, err := formFloat(c, "longitude")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid longitude")
		}
		in := service.SightingInput{
			MissingID:   c.FormValue("missingId"),
			ReporterID:  c.FormValue("reporterId"),
			OccurredAt:  occurred,
			Description: c.FormValue("sightingDescription"),
			Latitude:    lat,
			Longitude:   lng,
		}

		image, closeFn, err := formUpload(c, "sightingImage")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer closeFn()

		d, err := svc.Add(c.UserContext(), in, image)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(d)
	}
}
