package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"petcareapi/internal/model"
	"petcareapi/internal/service"
)

// ListPetsByUser returns all pets of one owner, fully resolved.
func ListPetsByUser(svc service.PetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pets, err := svc.ListByOwner(c.UserContext(), c.Params("userId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(pets)
	}
}

// AddPet creates a pet profile from a multipart form; the photo is sent
// under "petImage".
func AddPet(svc service.PetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		weight, err := formFloat(c, "weight")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid weight")
		}
		dob, err := formTime(c, "dateOfBirth")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid dateOfBirth")
		}
		in := service.PetInput{
			PetName:        c.FormValue("petName"),
			Sex:            c.FormValue("sex"),
			Breed:          c.FormValue("breed"),
			Weight:         weight,
			DateOfBirth:    dob,
			MedicCondition: c.FormValue("medicCondition"),
			Markings:       c.FormValue("markings"),
			CoatColor:      c.FormValue("coatColor"),
			OwnerID:        c.FormValue("ownerId"),
		}

		image, closeFn, err := formUpload(c, "petImage")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer closeFn()

		p, err := svc.Create(c.UserContext(), in, image)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

type petUpdateRequest struct {
	ID             string     `json:"id"`
	PetName        *string    `json:"petName"`
	Sex            *string    `json:"sex"`
	Breed          *string    `json:"breed"`
	Weight         *float64   `json:"weight"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	MedicCondition *string    `json:"medicCondition"`
	Markings       *string    `json:"markings"`
	CoatColor      *string    `json:"coatColor"`
}

// UpdatePet applies a partial update; absent JSON fields are left unchanged.
func UpdatePet(svc service.PetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req petUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		upd := model.PetUpdate{
			PetName:        req.PetName,
			Sex:            req.Sex,
			Breed:          req.Breed,
			Weight:         req.Weight,
			DateOfBirth:    req.DateOfBirth,
			MedicCondition: req.MedicCondition,
			Markings:       req.Markings,
			CoatColor:      req.CoatColor,
		}
		if err := svc.Update(c.UserContext(), req.ID, upd); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Pet updated successfully"})
	}
}

// DeletePet removes a pet profile and its stored photo.
func DeletePet(svc service.PetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("petId")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
