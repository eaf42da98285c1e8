package handler

import (
	"github.com/gofiber/fiber/v2"

	"petcareapi/internal/model"
	"petcareapi/internal/service"
)

// Register creates an account: provider credential plus profile document.
func Register(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		u, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// Login verifies a provider-issued ID token and returns the profile.
func Login(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			IDToken string `json:"idToken"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		u, err := svc.Login(c.UserContext(), body.IDToken)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// GetUser returns one profile by id.
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Get(c.UserContext(), c.Params("userId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// UpdateUser applies a partial profile update from a multipart form. The
// optional replacement picture is sent under "profilePicUrl".
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var upd model.UserUpdate
		if v := c.FormValue("userName"); v != "" {
			upd.UserName = &v
		}
		if v := c.FormValue("address"); v != "" {
			upd.Address = &v
		}
		if v := c.FormValue("phoneNumber"); v != "" {
			upd.PhoneNumber = &v
		}
		if v := c.FormValue("status"); v != "" {
			upd.Status = &v
		}

		picture, closeFn, err := formUpload(c, "profilePicUrl")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer closeFn()

		u, err := svc.Update(c.UserContext(), c.Params("userId"), upd, picture)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// SendResetPassword mails a password reset link to the given address.
func SendResetPassword(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Email string `json:"email"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.SendPasswordReset(c.UserContext(), body.Email); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Reset password link sent"})
	}
}
