package handler

import (
	"github.com/gofiber/fiber/v2"

	"petcareapi/internal/service"
)

// GetAllAdoptions lists every adoption listing with signed image URLs.
func GetAllAdoptions(svc service.AdoptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.GetAll(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(list)
	}
}

// GetAdoptionsByLister lists the adoption listings of one user.
func GetAdoptionsByLister(svc service.AdoptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.GetByLister(c.UserContext(), c.Params("userId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(list)
	}
}

// GetAdoption returns one listing by id.
func GetAdoption(svc service.AdoptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Get(c.UserContext(), c.Params("petId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	}
}

func adoptionInputFromForm(c *fiber.Ctx) service.AdoptionInput {
	return service.AdoptionInput{
		PetName:     c.FormValue("petName"),
		Sex:         c.FormValue("sex"),
		Breed:       c.FormValue("breed"),
		Age:         c.FormValue("age"),
		Species:     c.FormValue("species"),
		Description: c.FormValue("description"),
		CoatColor:   c.FormValue("coatColor"),
		OwnerID:     c.FormValue("ownerId"),
	}
}

// AddAdoption creates a listing from a multipart form; images are sent
// under "images".
func AddAdoption(svc service.AdoptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		images, closeFn, err := formUploads(c, "images")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer closeFn()

		a, err := svc.Create(c.UserContext(), adoptionInputFromForm(c), images)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// EditAdoption rewrites a listing from a multipart form.
func EditAdoption(svc service.AdoptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		images, closeFn, err := formUploads(c, "images")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer closeFn()

		a, err := svc.Edit(c.UserContext(), c.Params("petId"), adoptionInputFromForm(c), images)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	}
}

// DeleteAdoption removes a listing and its stored images.
func DeleteAdoption(svc service.AdoptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("petId")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
